package team

import "fmt"

// Team is a fantasy team inside a league. DraftOrder is the 1-based draft rank.
type Team struct {
	ID           string
	LeagueID     string
	Name         string
	OwnerUserIDs []string
	DraftOrder   int
	FAAB         int
	TotalScore   int
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.DraftOrder < 1 {
		return fmt.Errorf("team draft order must be >= 1")
	}
	if t.FAAB < 0 {
		return fmt.Errorf("team faab cannot be negative")
	}

	return nil
}

func (t Team) IsOwnedBy(userID string) bool {
	for _, owner := range t.OwnerUserIDs {
		if owner == userID {
			return true
		}
	}
	return false
}
