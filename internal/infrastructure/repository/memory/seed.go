package memory

import (
	"time"

	"github.com/playrift/esports-ingest/internal/domain/league"
	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
)

const (
	LeagueIDLCK = "lck-2026"
	LeagueIDLEC = "lec-2026"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:     LeagueIDLCK,
			Name:   "LCK",
			Region: "Korea",
		},
		{
			ID:     LeagueIDLEC,
			Name:   "LEC",
			Region: "Europe",
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "lck-t1", LeagueID: LeagueIDLCK, Name: "T1", WinRate: 0.68},
		{ID: "lck-geng", LeagueID: LeagueIDLCK, Name: "Gen.G", WinRate: 0.71},
		{ID: "lck-hle", LeagueID: LeagueIDLCK, Name: "Hanwha Life Esports", WinRate: 0.55},
		{ID: "lck-dk", LeagueID: LeagueIDLCK, Name: "Dplus KIA", WinRate: 0.52},
		{ID: "lec-g2", LeagueID: LeagueIDLEC, Name: "G2 Esports", WinRate: 0.66},
		{ID: "lec-fnc", LeagueID: LeagueIDLEC, Name: "Fnatic", WinRate: 0.58},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          "mt-lck-001",
			LeagueID:    LeagueIDLCK,
			TeamAID:     "lck-t1",
			TeamBID:     "lck-geng",
			ScheduledAt: time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC),
			OddsA:       1.52,
			OddsB:       1.41,
			Status:      match.StatusUpcoming,
			StreamLinks: []match.StreamLink{
				{Platform: "twitch.tv", URL: "https://twitch.tv/lck"},
			},
		},
		{
			ID:          "mt-lck-002",
			LeagueID:    LeagueIDLCK,
			TeamAID:     "lck-hle",
			TeamBID:     "lck-dk",
			ScheduledAt: time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC),
			OddsA:       1.85,
			OddsB:       1.96,
			Status:      match.StatusUpcoming,
		},
		{
			ID:          "mt-lec-001",
			LeagueID:    LeagueIDLEC,
			TeamAID:     "lec-g2",
			TeamBID:     "lec-fnc",
			ScheduledAt: time.Date(2026, 9, 6, 17, 0, 0, 0, time.UTC),
			OddsA:       1.55,
			OddsB:       1.74,
			Status:      match.StatusUpcoming,
			StreamLinks: []match.StreamLink{
				{Platform: "twitch.tv", URL: "https://twitch.tv/lec"},
				{Platform: "youtube.com", URL: "https://youtube.com/lolesports"},
			},
		},
	}
}
