package competition

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Type identifies a competition event. Rule codes are matched against it verbatim.
type Type string

const (
	TypeHOH          Type = "HOH"
	TypeVeto         Type = "VETO"
	TypeNominations  Type = "NOMINATIONS"
	TypeEviction     Type = "EVICTION"
	TypeBlockBuster  Type = "BLOCK_BUSTER"
	TypeSpecialEvent Type = "SPECIAL_EVENT"
)

func (t Type) Valid() bool {
	switch t {
	case TypeHOH, TypeVeto, TypeNominations, TypeEviction, TypeBlockBuster, TypeSpecialEvent:
		return true
	default:
		return false
	}
}

// Competition is a single in-game occurrence recorded for a season week.
type Competition struct {
	ID               string
	SeasonID         string
	Week             int
	Type             Type
	WinnerID         string
	Nominees         []string
	EvictedID        string
	UsedOnID         string
	ReplacementNomID string
	SpecialEventCode string
	AirDate          time.Time
	CreatedAt        time.Time
}

func (c Competition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("competition id is required")
	}
	if c.SeasonID == "" {
		return fmt.Errorf("competition season id is required")
	}
	if c.Week < 1 {
		return fmt.Errorf("competition week must be >= 1")
	}

	switch c.Type {
	case TypeHOH, TypeVeto, TypeBlockBuster:
		if strings.TrimSpace(c.WinnerID) == "" {
			return fmt.Errorf("%s competition requires winner id", c.Type)
		}
	case TypeNominations:
		if len(c.Nominees) == 0 {
			return fmt.Errorf("nominations require at least one nominee")
		}
	case TypeEviction:
		if strings.TrimSpace(c.EvictedID) == "" {
			return fmt.Errorf("eviction requires evicted id")
		}
	case TypeSpecialEvent:
		if strings.TrimSpace(c.SpecialEventCode) == "" {
			return fmt.Errorf("special event requires special event code")
		}
	default:
		return fmt.Errorf("competition type %q is invalid", c.Type)
	}

	seen := make(map[string]struct{}, len(c.Nominees))
	for _, id := range c.Nominees {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("nominee id cannot be empty")
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("nominee %s listed twice", id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

func (c Competition) IsNominee(contestantID string) bool {
	return slices.Contains(c.Nominees, contestantID)
}

// ContestantIDs returns every contestant referenced by the event, without duplicates.
func (c Competition) ContestantIDs() []string {
	out := make([]string, 0, len(c.Nominees)+4)
	add := func(id string) {
		if id == "" || slices.Contains(out, id) {
			return
		}
		out = append(out, id)
	}
	add(c.WinnerID)
	for _, id := range c.Nominees {
		add(id)
	}
	add(c.EvictedID)
	add(c.UsedOnID)
	add(c.ReplacementNomID)
	return out
}

// InWeek filters events down to one week, keeping input order.
func InWeek(events []Competition, week int) []Competition {
	out := make([]Competition, 0, len(events))
	for _, e := range events {
		if e.Week == week {
			out = append(out, e)
		}
	}
	return out
}
