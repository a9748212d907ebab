package liquipedia

import (
	"errors"
	"net/http"
	"testing"
)

func newTestProvider(t *testing.T, pagesByPath map[string]string) *Provider {
	t.Helper()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		html, ok := pagesByPath[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(html))
	}, ClientConfig{})

	return NewProvider(client, newTestExtractor(), Pages{})
}

func TestProvider_FetchMatches(t *testing.T) {
	provider := newTestProvider(t, map[string]string{
		"/Liquipedia:Matches": matchBoxesHTML,
	})

	matches, err := provider.FetchMatches(t.Context())
	if err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}
	if matches[0].TeamAName != "T1" || matches[0].TeamBName != "Gen.G" {
		t.Fatalf("unexpected teams: %+v", matches[0])
	}
	if matches[0].TournamentName != "LCK Summer 2026" {
		t.Fatalf("unexpected tournament: %q", matches[0].TournamentName)
	}
	if len(matches[0].Streams) != 2 {
		t.Fatalf("expected stream links to carry over, got %d", len(matches[0].Streams))
	}
}

func TestProvider_FetchTeams_DefaultPage(t *testing.T) {
	provider := newTestProvider(t, map[string]string{
		"/Portal:Teams": `<span class="team-template-team-standard"><span class="team-template-text">T1</span></span>`,
	})

	teams, err := provider.FetchTeams(t.Context())
	if err != nil {
		t.Fatalf("fetch teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "T1" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}

func TestProvider_FetchTournaments_PropagatesFetchErrors(t *testing.T) {
	provider := newTestProvider(t, map[string]string{})

	_, err := provider.FetchTournaments(t.Context())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}
