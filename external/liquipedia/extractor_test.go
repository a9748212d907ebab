package liquipedia

import (
	"testing"
	"time"

	"github.com/playrift/esports-ingest/internal/platform/logging"
)

var extractionTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return NewExtractor(ExtractorConfig{
		Origin: "https://liquipedia.net",
		Logger: logging.NewNop(),
		Now:    func() time.Time { return extractionTime },
	})
}

const matchBoxesHTML = `
<div class="infobox_matches_content">
  <div class="team-left"><span class="team-template-text">T1</span><img src="/commons/images/t1.png"></div>
  <div class="team-right"><span class="team-template-text">Gen.G</span><img src="https://cdn.example.com/geng.png"></div>
  <div class="tournament-text"><a href="/leagueoflegends/LCK">LCK Summer 2026</a></div>
  <span class="timer-object" data-timestamp="1757059200"></span>
  <div class="match-streams">
    <a href="https://twitch.tv/lck">Twitch</a>
    <a href="/special/stream"></a>
  </div>
</div>
<div class="infobox_matches_content">
  <div class="team-left"><span class="team-template-text">TBD</span></div>
  <div class="team-right"><span class="team-template-text">Cloud9</span></div>
</div>
`

func TestExtractor_ExtractMatches_FromBoxes(t *testing.T) {
	extractor := newTestExtractor()

	records := extractor.ExtractMatches(matchBoxesHTML)
	if len(records) != 1 {
		t.Fatalf("expected the placeholder match to be dropped, got %d records", len(records))
	}

	record := records[0]
	if record.TeamA != "T1" || record.TeamB != "Gen.G" {
		t.Fatalf("unexpected teams: %q vs %q", record.TeamA, record.TeamB)
	}
	if record.Tournament != "LCK Summer 2026" {
		t.Fatalf("unexpected tournament: %q", record.Tournament)
	}
	if record.TeamALogo != "https://liquipedia.net/commons/images/t1.png" {
		t.Fatalf("expected relative logo to be absolutized, got %q", record.TeamALogo)
	}
	if record.TeamBLogo != "https://cdn.example.com/geng.png" {
		t.Fatalf("absolute logo must stay untouched, got %q", record.TeamBLogo)
	}
	if want := time.Unix(1757059200, 0).UTC(); !record.ScheduledAt.Equal(want) {
		t.Fatalf("unexpected scheduled time: %v want %v", record.ScheduledAt, want)
	}
	if len(record.Streams) != 2 {
		t.Fatalf("expected two stream links, got %d", len(record.Streams))
	}
	if record.Streams[0].Platform != "Twitch" || record.Streams[0].URL != "https://twitch.tv/lck" {
		t.Fatalf("unexpected first stream: %+v", record.Streams[0])
	}
	// A link without text still yields a usable entry.
	if record.Streams[1].Platform != "stream" || record.Streams[1].URL != "https://liquipedia.net/special/stream" {
		t.Fatalf("unexpected second stream: %+v", record.Streams[1])
	}
}

func TestExtractor_ExtractMatches_TableFallback(t *testing.T) {
	extractor := newTestExtractor()

	html := `
<table class="wikitable">
  <tr><th>Team A</th><th>Team B</th></tr>
  <tr><td>Fnatic</td><td>G2 Esports</td></tr>
  <tr><td>TBD</td><td>Cloud9</td></tr>
  <tr><td>Unknown Team</td><td>Fnatic</td></tr>
</table>
`
	records := extractor.ExtractMatches(html)
	if len(records) != 1 {
		t.Fatalf("expected one usable row, got %d", len(records))
	}
	if records[0].TeamA != "Fnatic" || records[0].TeamB != "G2 Esports" {
		t.Fatalf("unexpected teams: %+v", records[0])
	}
	if !records[0].ScheduledAt.Equal(extractionTime) {
		t.Fatalf("row without timestamp must use extraction time, got %v", records[0].ScheduledAt)
	}
}

func TestExtractor_ExtractMatches_DeduplicatesRows(t *testing.T) {
	extractor := newTestExtractor()

	html := `
<table class="wikitable">
  <tr><td>Fnatic</td><td>G2 Esports</td></tr>
  <tr><td>Fnatic</td><td>G2 Esports</td></tr>
</table>
`
	records := extractor.ExtractMatches(html)
	if len(records) != 1 {
		t.Fatalf("expected duplicate rows to collapse, got %d", len(records))
	}
}

func TestExtractor_ExtractMatches_EmptyPage(t *testing.T) {
	extractor := newTestExtractor()

	if records := extractor.ExtractMatches(""); len(records) != 0 {
		t.Fatalf("expected no records from empty markup, got %d", len(records))
	}
	if records := extractor.ExtractMatches("<html><body><p>maintenance</p></body></html>"); len(records) != 0 {
		t.Fatalf("expected no records from unrelated markup, got %d", len(records))
	}
}

func TestExtractor_ExtractTeams_FromTemplates(t *testing.T) {
	extractor := newTestExtractor()

	html := `
<span class="team-template-team-standard"><span class="team-template-text">T1</span><img src="/commons/t1.png"></span>
<span class="team-template-team-standard"><span class="team-template-text">T1</span></span>
<span class="team-template-team-standard"><span class="team-template-text">TBD</span></span>
<span class="team-template-team-standard"><span class="team-template-text">Gen.G</span></span>
`
	records := extractor.ExtractTeams(html)
	if len(records) != 2 {
		t.Fatalf("expected dedup and placeholder discard, got %d records", len(records))
	}
	if records[0].Name != "T1" || records[0].LogoURL != "https://liquipedia.net/commons/t1.png" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Name != "Gen.G" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestExtractor_ExtractTeams_TableFallback(t *testing.T) {
	extractor := newTestExtractor()

	html := `
<table class="wikitable">
  <tr><th>Team</th></tr>
  <tr><td>  Hanwha   Life   Esports </td></tr>
</table>
`
	records := extractor.ExtractTeams(html)
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].Name != "Hanwha Life Esports" {
		t.Fatalf("expected whitespace to be collapsed, got %q", records[0].Name)
	}
}

func TestExtractor_ExtractTournaments_FromGrid(t *testing.T) {
	extractor := newTestExtractor()

	html := `
<div class="gridTable tournamentCard">
  <div class="gridRow">
    <div class="gridCell Tournament Header"><img src="/commons/lck.png"><a href="/leagueoflegends/LCK/2026">LCK 2026 Summer</a></div>
  </div>
  <div class="gridRow">
    <div class="gridCell Tournament Header"><a href="/leagueoflegends/LEC/2026">LEC 2026 Summer</a></div>
  </div>
</div>
`
	records := extractor.ExtractTournaments(html)
	if len(records) != 2 {
		t.Fatalf("expected two tournaments, got %d", len(records))
	}
	if records[0].Name != "LCK 2026 Summer" {
		t.Fatalf("unexpected first tournament: %+v", records[0])
	}
	if records[0].LogoURL != "https://liquipedia.net/commons/lck.png" {
		t.Fatalf("unexpected logo: %q", records[0].LogoURL)
	}
	if records[1].Name != "LEC 2026 Summer" {
		t.Fatalf("unexpected second tournament: %+v", records[1])
	}
}

func TestExtractor_ScheduledAt_UnparsableTimestamp(t *testing.T) {
	extractor := newTestExtractor()

	html := `
<div class="infobox_matches_content">
  <div class="team-left"><span class="team-template-text">T1</span></div>
  <div class="team-right"><span class="team-template-text">Gen.G</span></div>
  <span class="timer-object" data-timestamp="not-a-number"></span>
</div>
`
	records := extractor.ExtractMatches(html)
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if !records[0].ScheduledAt.Equal(extractionTime) {
		t.Fatalf("unparsable timestamp must fall back to extraction time, got %v", records[0].ScheduledAt)
	}
}
