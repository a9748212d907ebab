package usecase

import (
	"strings"
	"time"

	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
)

// liveWindow covers a typical best-of series; matches that started within
// it are assumed to still be running.
const liveWindow = 3 * time.Hour

// MatchStatus derives the lifecycle status from the scheduled time. The
// window lower bound is inclusive, so a match at exactly now-3h is live.
func MatchStatus(scheduledAt, now time.Time) string {
	cutoff := now.Add(-liveWindow)
	switch {
	case scheduledAt.Before(cutoff):
		return match.StatusCompleted
	case scheduledAt.After(now):
		return match.StatusUpcoming
	default:
		return match.StatusLive
	}
}

// Odds converts a win rate into a payout multiplier with a +-10% jitter.
// roll must be in [0, 1); a non-positive win rate falls back to the
// default so the result stays bounded.
func Odds(winRate, roll float64) float64 {
	if winRate <= 0 {
		winRate = team.DefaultWinRate
	}
	return (1 / winRate) * (0.9 + roll*0.2)
}

var regionKeywords = []struct {
	keyword string
	region  string
}{
	{keyword: "LCK", region: "Korea"},
	{keyword: "LPL", region: "China"},
	{keyword: "LEC", region: "Europe"},
	{keyword: "LCS", region: "North America"},
	{keyword: "CBLOL", region: "Brazil"},
	{keyword: "LJL", region: "Japan"},
	{keyword: "PCS", region: "Pacific"},
	{keyword: "VCS", region: "Vietnam"},
	{keyword: "LLA", region: "Latin America"},
	{keyword: "MSI", region: "International"},
	{keyword: "Worlds", region: "International"},
}

// RegionFromLeagueName maps a league name onto a region by keyword,
// defaulting to International for anything unrecognized.
func RegionFromLeagueName(name string) string {
	for _, entry := range regionKeywords {
		if strings.Contains(name, entry.keyword) {
			return entry.region
		}
	}
	return "International"
}
