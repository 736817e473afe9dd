package draft

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotYourTurn              = errors.New("team is not on the clock")
	ErrContestantAlreadyDrafted = errors.New("contestant already drafted")
	ErrDraftComplete            = errors.New("draft is complete")
	ErrNoPicks                  = errors.New("no picks to undo")
)

// Pick records one drafted contestant. Pick is the global 1-based position in the league.
type Pick struct {
	ID           string
	LeagueID     string
	TeamID       string
	ContestantID string
	Pick         int
	Round        int
	CreatedAt    time.Time
}

func (p Pick) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pick id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("pick league id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("pick team id is required")
	}
	if p.ContestantID == "" {
		return fmt.Errorf("pick contestant id is required")
	}
	if p.Pick < 1 {
		return fmt.Errorf("pick number must be >= 1")
	}
	if p.Round < 1 {
		return fmt.Errorf("pick round must be >= 1")
	}
	return nil
}

// RoundForPick returns ceil(pick/teamCount).
func RoundForPick(pick, teamCount int) int {
	if teamCount <= 0 || pick <= 0 {
		return 0
	}
	return (pick + teamCount - 1) / teamCount
}
