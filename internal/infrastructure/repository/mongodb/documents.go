package mongodb

import (
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
)

type trackDocument struct {
	ID          string    `bson:"_id"`
	Slug        string    `bson:"slug"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Days        int       `bson:"days"`
	IsPremium   bool      `bson:"is_premium"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d trackDocument) toDomain() challenge.Track {
	return challenge.Track{
		ID:          d.ID,
		Slug:        d.Slug,
		Title:       d.Title,
		Description: d.Description,
		Days:        d.Days,
		IsPremium:   d.IsPremium,
		CreatedAt:   d.CreatedAt,
	}
}

func trackFromDomain(t challenge.Track) trackDocument {
	return trackDocument{
		ID:          t.ID,
		Slug:        t.Slug,
		Title:       t.Title,
		Description: t.Description,
		Days:        t.Days,
		IsPremium:   t.IsPremium,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

type promptDocument struct {
	TrackID string `bson:"track_id"`
	Day     int    `bson:"day"`
	Title   string `bson:"title"`
	Body    string `bson:"body"`
}

func (d promptDocument) toDomain() challenge.Prompt {
	return challenge.Prompt{TrackID: d.TrackID, Day: d.Day, Title: d.Title, Body: d.Body}
}

type unlockCodeDocument struct {
	Code       string     `bson:"_id"`
	TrackID    string     `bson:"track_id"`
	Email      string     `bson:"email,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
	RedeemedBy string     `bson:"redeemed_by,omitempty"`
	RedeemedAt *time.Time `bson:"redeemed_at,omitempty"`
}

func (d unlockCodeDocument) toDomain() challenge.UnlockCode {
	return challenge.UnlockCode{
		Code:       d.Code,
		TrackID:    d.TrackID,
		Email:      d.Email,
		CreatedAt:  d.CreatedAt,
		RedeemedBy: d.RedeemedBy,
		RedeemedAt: d.RedeemedAt,
	}
}

func unlockCodeFromDomain(c challenge.UnlockCode) unlockCodeDocument {
	return unlockCodeDocument{
		Code:       c.Code,
		TrackID:    c.TrackID,
		Email:      c.Email,
		CreatedAt:  c.CreatedAt.UTC(),
		RedeemedBy: c.RedeemedBy,
		RedeemedAt: c.RedeemedAt,
	}
}

type settingsDocument struct {
	UserID           string    `bson:"_id"`
	Email            string    `bson:"email,omitempty"`
	ActiveTrackID    string    `bson:"active_track_id,omitempty"`
	StartedAt        time.Time `bson:"started_at"`
	ReminderHour     int       `bson:"reminder_hour"`
	Timezone         string    `bson:"timezone"`
	ReminderEnabled  bool      `bson:"reminder_enabled"`
	UnlockedTrackIDs []string  `bson:"unlocked_track_ids"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func (d settingsDocument) toDomain() challenge.UserSettings {
	return challenge.UserSettings{
		UserID:           d.UserID,
		Email:            d.Email,
		ActiveTrackID:    d.ActiveTrackID,
		StartedAt:        d.StartedAt,
		ReminderHour:     d.ReminderHour,
		Timezone:         d.Timezone,
		ReminderEnabled:  d.ReminderEnabled,
		UnlockedTrackIDs: append([]string(nil), d.UnlockedTrackIDs...),
		UpdatedAt:        d.UpdatedAt,
	}
}

func settingsFromDomain(s challenge.UserSettings) settingsDocument {
	unlocked := s.UnlockedTrackIDs
	if unlocked == nil {
		unlocked = []string{}
	}
	return settingsDocument{
		UserID:           s.UserID,
		Email:            s.Email,
		ActiveTrackID:    s.ActiveTrackID,
		StartedAt:        s.StartedAt.UTC(),
		ReminderHour:     s.ReminderHour,
		Timezone:         s.Timezone,
		ReminderEnabled:  s.ReminderEnabled,
		UnlockedTrackIDs: unlocked,
		UpdatedAt:        s.UpdatedAt.UTC(),
	}
}

type journalDocument struct {
	UserID    string    `bson:"user_id"`
	TrackID   string    `bson:"track_id"`
	Day       int       `bson:"day"`
	Body      string    `bson:"body"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d journalDocument) toDomain() challenge.JournalEntry {
	return challenge.JournalEntry{
		UserID:    d.UserID,
		TrackID:   d.TrackID,
		Day:       d.Day,
		Body:      d.Body,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
