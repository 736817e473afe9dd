package challenge

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DaysPerTrack is the length of every challenge track.
const DaysPerTrack = 30

var (
	ErrCodeAlreadyRedeemed = errors.New("unlock code already redeemed")
	ErrTrackLocked         = errors.New("track is locked")
	ErrDayNotAvailable     = errors.New("day is not available yet")
)

type Track struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Days        int
	IsPremium   bool
	CreatedAt   time.Time
}

type Prompt struct {
	TrackID string
	Day     int
	Title   string
	Body    string
}

func (p Prompt) Validate() error {
	if p.TrackID == "" {
		return fmt.Errorf("prompt track id is required")
	}
	if p.Day < 1 || p.Day > DaysPerTrack {
		return fmt.Errorf("prompt day must be between 1 and %d", DaysPerTrack)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("prompt title is required")
	}
	return nil
}

// UnlockCode grants a premium track to the first user redeeming it.
type UnlockCode struct {
	Code       string
	TrackID    string
	Email      string
	CreatedAt  time.Time
	RedeemedBy string
	RedeemedAt *time.Time
}

func (c UnlockCode) IsRedeemed() bool {
	return c.RedeemedBy != ""
}

type UserSettings struct {
	UserID           string
	Email            string
	ActiveTrackID    string
	StartedAt        time.Time
	ReminderHour     int
	Timezone         string
	ReminderEnabled  bool
	UnlockedTrackIDs []string
	UpdatedAt        time.Time
}

func (s UserSettings) Validate() error {
	if s.UserID == "" {
		return fmt.Errorf("settings user id is required")
	}
	if s.ReminderHour < 0 || s.ReminderHour > 23 {
		return fmt.Errorf("reminder hour must be between 0 and 23")
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("timezone %q is invalid", s.Timezone)
		}
	}
	return nil
}

func (s UserSettings) HasUnlocked(trackID string) bool {
	for _, id := range s.UnlockedTrackIDs {
		if id == trackID {
			return true
		}
	}
	return false
}

// Location returns the user's timezone, defaulting to UTC.
func (s UserSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type JournalEntry struct {
	UserID    string
	TrackID   string
	Day       int
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e JournalEntry) Validate() error {
	if e.UserID == "" || e.TrackID == "" {
		return fmt.Errorf("journal entry user and track are required")
	}
	if e.Day < 1 || e.Day > DaysPerTrack {
		return fmt.Errorf("journal day must be between 1 and %d", DaysPerTrack)
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Errorf("journal body is required")
	}
	return nil
}
