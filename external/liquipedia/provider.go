package liquipedia

import (
	"context"

	"github.com/playrift/esports-ingest/internal/usecase"
)

// Pages holds the wiki paths each import kind reads from.
type Pages struct {
	Tournaments string
	Teams       string
	Matches     string
}

func DefaultPages() Pages {
	return Pages{
		Tournaments: "/Portal:Tournaments",
		Teams:       "/Portal:Teams",
		Matches:     "/Liquipedia:Matches",
	}
}

// Provider glues the page client and the extractor into the shape the
// import pipeline consumes. Fetch failures surface as errors; extraction
// problems only shrink the result.
type Provider struct {
	client    *Client
	extractor *Extractor
	pages     Pages
}

func NewProvider(client *Client, extractor *Extractor, pages Pages) *Provider {
	defaults := DefaultPages()
	if pages.Tournaments == "" {
		pages.Tournaments = defaults.Tournaments
	}
	if pages.Teams == "" {
		pages.Teams = defaults.Teams
	}
	if pages.Matches == "" {
		pages.Matches = defaults.Matches
	}

	return &Provider{
		client:    client,
		extractor: extractor,
		pages:     pages,
	}
}

func (p *Provider) FetchTournaments(ctx context.Context) ([]usecase.ExternalTournament, error) {
	html, err := p.client.FetchPage(ctx, p.pages.Tournaments)
	if err != nil {
		return nil, err
	}

	records := p.extractor.ExtractTournaments(html)
	out := make([]usecase.ExternalTournament, 0, len(records))
	for _, record := range records {
		out = append(out, usecase.ExternalTournament{
			Name:    record.Name,
			LogoURL: record.LogoURL,
		})
	}
	return out, nil
}

func (p *Provider) FetchTeams(ctx context.Context) ([]usecase.ExternalTeam, error) {
	html, err := p.client.FetchPage(ctx, p.pages.Teams)
	if err != nil {
		return nil, err
	}

	records := p.extractor.ExtractTeams(html)
	out := make([]usecase.ExternalTeam, 0, len(records))
	for _, record := range records {
		out = append(out, usecase.ExternalTeam{
			Name:    record.Name,
			LogoURL: record.LogoURL,
		})
	}
	return out, nil
}

func (p *Provider) FetchMatches(ctx context.Context) ([]usecase.ExternalMatch, error) {
	html, err := p.client.FetchPage(ctx, p.pages.Matches)
	if err != nil {
		return nil, err
	}

	records := p.extractor.ExtractMatches(html)
	out := make([]usecase.ExternalMatch, 0, len(records))
	for _, record := range records {
		streams := make([]usecase.ExternalStreamLink, 0, len(record.Streams))
		for _, stream := range record.Streams {
			streams = append(streams, usecase.ExternalStreamLink{
				Platform: stream.Platform,
				URL:      stream.URL,
			})
		}
		out = append(out, usecase.ExternalMatch{
			TeamAName:      record.TeamA,
			TeamBName:      record.TeamB,
			TeamALogoURL:   record.TeamALogo,
			TeamBLogoURL:   record.TeamBLogo,
			TournamentName: record.Tournament,
			ScheduledAt:    record.ScheduledAt,
			Streams:        streams,
		})
	}
	return out, nil
}
