package team

import "fmt"

// DefaultWinRate is assigned to newly discovered teams with no match
// history of their own.
const DefaultWinRate = 0.5

// Team is an esports organisation competing inside a league.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	LogoURL  string
	WinRate  float64
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.WinRate < 0 || t.WinRate > 1 {
		return fmt.Errorf("team win rate must be between 0 and 1")
	}

	return nil
}
