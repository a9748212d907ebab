package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusUpcoming  = "upcoming"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// StreamLink points at a live broadcast of a match.
type StreamLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Match represents one scheduled series between two teams.
type Match struct {
	ID           string
	LeagueID     string
	TeamAID      string
	TeamBID      string
	ScheduledAt  time.Time
	OddsA        float64
	OddsB        float64
	Status       string
	WinnerTeamID string
	StreamLinks  []StreamLink
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusUpcoming
	}
	return status
}

func IsValidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusUpcoming, StatusLive, StatusCompleted:
		return true
	default:
		return false
	}
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TeamAID == "" || m.TeamBID == "" {
		return fmt.Errorf("match team ids are required")
	}
	if m.ScheduledAt.IsZero() {
		return fmt.Errorf("match scheduled time is required")
	}
	if !IsValidStatus(m.Status) {
		return fmt.Errorf("match status %q is not recognized", m.Status)
	}

	return nil
}
