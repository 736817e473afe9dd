package season

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CardAction selects which field of a competition event a status card shows.
type CardAction string

const (
	ActionSetWinner           CardAction = "setWinner"
	ActionSetEvictee          CardAction = "setEvictee"
	ActionSetNominees         CardAction = "setNominees"
	ActionSetSavedByVeto      CardAction = "setSavedByVeto"
	ActionSetReplacementNomID CardAction = "setReplacementNomId"
)

func (a CardAction) Valid() bool {
	switch a {
	case ActionSetWinner, ActionSetEvictee, ActionSetNominees, ActionSetSavedByVeto, ActionSetReplacementNomID:
		return true
	default:
		return false
	}
}

// StatusCard is one tile on the weekly status board.
type StatusCard struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	RuleCode string     `yaml:"ruleCode"`
	Action   CardAction `yaml:"action"`
}

func (c StatusCard) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("status card id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("status card %s title is required", c.ID)
	}
	if strings.TrimSpace(c.RuleCode) == "" {
		return fmt.Errorf("status card %s rule code is required", c.ID)
	}
	if !c.Action.Valid() {
		return fmt.Errorf("status card %s has unknown action %q", c.ID, c.Action)
	}
	return nil
}

// Season is one broadcast season of the show.
type Season struct {
	ID                  string
	Name                string
	Number              int
	StartsAt            time.Time
	CurrentWeek         int
	WeeklyStatusDisplay map[string][]StatusCard
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.CurrentWeek < 1 {
		return fmt.Errorf("season current week must be >= 1")
	}
	return nil
}

// CardsForWeek returns the configured cards for week and whether any were set.
func (s Season) CardsForWeek(week int) ([]StatusCard, bool) {
	cards, ok := s.WeeklyStatusDisplay[WeekKey(week)]
	if !ok || len(cards) == 0 {
		return nil, false
	}
	return append([]StatusCard(nil), cards...), true
}

func WeekKey(week int) string {
	return "week-" + strconv.Itoa(week)
}
