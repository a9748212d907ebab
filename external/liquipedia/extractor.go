package liquipedia

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playrift/esports-ingest/internal/platform/logging"
)

const defaultOrigin = "https://liquipedia.net"

// MatchRecord is one raw match row lifted from page markup. Names are
// trimmed but not yet reconciled against stored entities.
type MatchRecord struct {
	TeamA       string
	TeamB       string
	TeamALogo   string
	TeamBLogo   string
	Tournament  string
	ScheduledAt time.Time
	Streams     []StreamRecord
}

type StreamRecord struct {
	Platform string
	URL      string
}

type TeamRecord struct {
	Name    string
	LogoURL string
}

type TournamentRecord struct {
	Name    string
	LogoURL string
}

// Placeholder names the source uses for unannounced participants. Records
// carrying one of these are dropped before emission.
var placeholderNames = map[string]struct{}{
	"unknown team": {},
	"team a":       {},
	"team b":       {},
	"tbd":          {},
}

type ExtractorConfig struct {
	// Origin prefixes relative asset URLs found in the markup.
	Origin string
	Logger *logging.Logger
	// Now supplies the fallback timestamp for rows without one.
	Now func() time.Time
}

// Extractor lifts match, team and tournament records out of wiki HTML.
// Each kind runs an ordered strategy list: a selector set for the known
// page layout first, then a generic table walk. The first strategy that
// yields records wins, so adding a layout never touches call sites.
type Extractor struct {
	origin string
	logger *logging.Logger
	now    func() time.Time
}

func NewExtractor(cfg ExtractorConfig) *Extractor {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	origin := strings.TrimRight(strings.TrimSpace(cfg.Origin), "/")
	if origin == "" {
		origin = defaultOrigin
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Extractor{
		origin: origin,
		logger: logger,
		now:    now,
	}
}

type matchStrategy struct {
	name string
	run  func(e *Extractor, doc *goquery.Document) []MatchRecord
}

type entityStrategy struct {
	name string
	run  func(e *Extractor, doc *goquery.Document) []TeamRecord
}

var matchStrategies = []matchStrategy{
	{name: "match-boxes", run: (*Extractor).matchesFromBoxes},
	{name: "generic-table", run: (*Extractor).matchesFromTables},
}

var teamStrategies = []entityStrategy{
	{name: "team-templates", run: (*Extractor).teamsFromTemplates},
	{name: "generic-table", run: (*Extractor).teamsFromTables},
}

var tournamentStrategies = []entityStrategy{
	{name: "tournament-grid", run: (*Extractor).tournamentsFromGrid},
	{name: "generic-table", run: (*Extractor).tournamentsFromTables},
}

// ExtractMatches returns every recognizable match on the page. Unparseable
// markup yields an empty slice, never an error.
func (e *Extractor) ExtractMatches(html string) []MatchRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("parse match page markup failed", "error", err)
		return nil
	}

	for _, strategy := range matchStrategies {
		if records := e.dedupMatches(strategy.run(e, doc)); len(records) > 0 {
			return records
		}
	}
	return nil
}

func (e *Extractor) ExtractTeams(html string) []TeamRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("parse team page markup failed", "error", err)
		return nil
	}

	for _, strategy := range teamStrategies {
		if records := dedupEntities(strategy.run(e, doc)); len(records) > 0 {
			return records
		}
	}
	return nil
}

func (e *Extractor) ExtractTournaments(html string) []TournamentRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("parse tournament page markup failed", "error", err)
		return nil
	}

	for _, strategy := range tournamentStrategies {
		if records := dedupEntities(strategy.run(e, doc)); len(records) > 0 {
			out := make([]TournamentRecord, 0, len(records))
			for _, record := range records {
				out = append(out, TournamentRecord(record))
			}
			return out
		}
	}
	return nil
}

func (e *Extractor) matchesFromBoxes(doc *goquery.Document) []MatchRecord {
	var records []MatchRecord
	doc.Find(".infobox_matches_content").Each(func(_ int, box *goquery.Selection) {
		record, ok := e.matchFromBox(box)
		if !ok {
			return
		}
		records = append(records, record)
	})
	return records
}

func (e *Extractor) matchFromBox(box *goquery.Selection) (MatchRecord, bool) {
	teamA := cleanName(box.Find(".team-left .team-template-text").First().Text())
	teamB := cleanName(box.Find(".team-right .team-template-text").First().Text())
	if !usableName(teamA) || !usableName(teamB) {
		return MatchRecord{}, false
	}

	record := MatchRecord{
		TeamA:      teamA,
		TeamB:      teamB,
		TeamALogo:  e.logoURL(box.Find(".team-left img").First()),
		TeamBLogo:  e.logoURL(box.Find(".team-right img").First()),
		Tournament: cleanName(box.Find(".tournament-text a").First().Text()),
	}

	record.ScheduledAt = e.scheduledAt(box, teamA, teamB)

	box.Find(".match-streams a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		platform := cleanName(link.Text())
		if platform == "" {
			platform = "stream"
		}
		record.Streams = append(record.Streams, StreamRecord{
			Platform: platform,
			URL:      e.absoluteURL(href),
		})
	})

	return record, true
}

// matchesFromTables is the degraded layout path: any wikitable whose data
// rows lead with two team cells.
func (e *Extractor) matchesFromTables(doc *goquery.Document) []MatchRecord {
	var records []MatchRecord
	doc.Find("table.wikitable tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		teamA := cleanName(cells.Eq(0).Text())
		teamB := cleanName(cells.Eq(1).Text())
		if !usableName(teamA) || !usableName(teamB) {
			return
		}

		records = append(records, MatchRecord{
			TeamA:       teamA,
			TeamB:       teamB,
			TeamALogo:   e.logoURL(cells.Eq(0).Find("img").First()),
			TeamBLogo:   e.logoURL(cells.Eq(1).Find("img").First()),
			ScheduledAt: e.scheduledAt(row, teamA, teamB),
		})
	})
	return records
}

func (e *Extractor) teamsFromTemplates(doc *goquery.Document) []TeamRecord {
	var records []TeamRecord
	doc.Find(".team-template-team-standard").Each(func(_ int, node *goquery.Selection) {
		name := cleanName(node.Find(".team-template-text").First().Text())
		if !usableName(name) {
			return
		}
		records = append(records, TeamRecord{
			Name:    name,
			LogoURL: e.logoURL(node.Find("img").First()),
		})
	})
	return records
}

func (e *Extractor) teamsFromTables(doc *goquery.Document) []TeamRecord {
	var records []TeamRecord
	doc.Find("table.wikitable tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		name := cleanName(cells.Eq(0).Text())
		if !usableName(name) {
			return
		}
		records = append(records, TeamRecord{
			Name:    name,
			LogoURL: e.logoURL(cells.Eq(0).Find("img").First()),
		})
	})
	return records
}

func (e *Extractor) tournamentsFromGrid(doc *goquery.Document) []TeamRecord {
	var records []TeamRecord
	doc.Find(".gridTable.tournamentCard .gridRow").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find(".gridCell.Tournament.Header")
		name := cleanName(cell.Find("a").Last().Text())
		if !usableName(name) {
			return
		}
		records = append(records, TeamRecord{
			Name:    name,
			LogoURL: e.logoURL(cell.Find("img").First()),
		})
	})
	return records
}

func (e *Extractor) tournamentsFromTables(doc *goquery.Document) []TeamRecord {
	return e.teamsFromTables(doc)
}

// scheduledAt reads the epoch-seconds attribute off the row's timer node.
// Rows without one get the extraction time; that approximation is logged
// so fabricated dates stay observable.
func (e *Extractor) scheduledAt(node *goquery.Selection, teamA, teamB string) time.Time {
	raw, ok := node.Find(".timer-object").First().Attr("data-timestamp")
	if !ok {
		raw, ok = node.Find("[data-timestamp]").First().Attr("data-timestamp")
	}
	if ok {
		if seconds, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && seconds > 0 {
			return time.Unix(seconds, 0).UTC()
		}
		e.logger.Warn("unparsable match timestamp, using extraction time", "team_a", teamA, "team_b", teamB, "raw", raw)
	} else {
		e.logger.Warn("match row has no timestamp, using extraction time", "team_a", teamA, "team_b", teamB)
	}
	return e.now().UTC()
}

func (e *Extractor) logoURL(img *goquery.Selection) string {
	src, ok := img.Attr("src")
	if !ok {
		return ""
	}
	return e.absoluteURL(src)
}

func (e *Extractor) absoluteURL(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "http") {
		return value
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	return e.origin + value
}

func (e *Extractor) dedupMatches(records []MatchRecord) []MatchRecord {
	if len(records) == 0 {
		return records
	}

	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, record := range records {
		key := record.TeamA + "|" + record.TeamB + "|" + record.ScheduledAt.Format(time.RFC3339)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, record)
	}
	return out
}

func dedupEntities(records []TeamRecord) []TeamRecord {
	if len(records) == 0 {
		return records
	}

	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, record := range records {
		if _, ok := seen[record.Name]; ok {
			continue
		}
		seen[record.Name] = struct{}{}
		out = append(out, record)
	}
	return out
}

func cleanName(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func usableName(name string) bool {
	if name == "" {
		return false
	}
	_, placeholder := placeholderNames[strings.ToLower(name)]
	return !placeholder
}
