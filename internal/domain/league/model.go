package league

import (
	"fmt"
	"time"
)

// League groups fantasy teams drafting from one season's contestants.
type League struct {
	ID        string
	SeasonID  string
	Name      string
	RuleSetID string
	CreatedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.SeasonID == "" {
		return fmt.Errorf("league season id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.RuleSetID == "" {
		return fmt.Errorf("league rule set id is required")
	}

	return nil
}
