package contestant

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusEvicted Status = "evicted"
	StatusJury    Status = "jury"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusEvicted, StatusJury:
		return true
	default:
		return false
	}
}

// Contestant is a houseguest competing in a season.
type Contestant struct {
	ID         string
	SeasonID   string
	FirstName  string
	LastName   string
	Nickname   string
	Status     Status
	PhotoURL   string
	EnteredDay int
	EvictedDay *int
}

func (c Contestant) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Contestant) DisplayName() string {
	if nick := strings.TrimSpace(c.Nickname); nick != "" {
		return nick
	}
	return c.FullName()
}

// IsActive reports whether the contestant is still in the house.
func (c Contestant) IsActive() bool {
	return c.Status == StatusActive
}

// EvictionWeek is ceil(evictedDay/7), or nil while not evicted.
func (c Contestant) EvictionWeek() *int {
	if c.EvictedDay == nil {
		return nil
	}
	week := (*c.EvictedDay + 6) / 7
	return &week
}

func (c Contestant) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contestant id is required")
	}
	if c.SeasonID == "" {
		return fmt.Errorf("contestant season id is required")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		return fmt.Errorf("contestant first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("contestant last name is required")
	}
	if !c.Status.Valid() {
		return fmt.Errorf("contestant status %q is invalid", c.Status)
	}
	if c.EnteredDay < 0 {
		return fmt.Errorf("contestant entered day cannot be negative")
	}
	if c.EvictedDay != nil && *c.EvictedDay < c.EnteredDay {
		return fmt.Errorf("contestant evicted day must be >= entered day")
	}
	if c.Status != StatusActive && c.EvictedDay == nil {
		return fmt.Errorf("contestant with status %s requires evicted day", c.Status)
	}

	return nil
}
