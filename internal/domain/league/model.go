package league

import "fmt"

// League is an esports competition tracked by the betting platform.
type League struct {
	ID      string
	Name    string
	Region  string
	LogoURL string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Region == "" {
		return fmt.Errorf("league region is required")
	}

	return nil
}
