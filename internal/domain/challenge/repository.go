package challenge

import (
	"context"
	"time"
)

type TrackRepository interface {
	List(ctx context.Context) ([]Track, error)
	GetByID(ctx context.Context, trackID string) (Track, bool, error)
	GetPrompt(ctx context.Context, trackID string, day int) (Prompt, bool, error)
}

type UnlockCodeRepository interface {
	CreateMany(ctx context.Context, codes []UnlockCode) error
	GetByCode(ctx context.Context, code string) (UnlockCode, bool, error)
	// MarkRedeemed claims an unredeemed code; false means someone else got there first.
	MarkRedeemed(ctx context.Context, code, userID string, at time.Time) (bool, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, userID string) (UserSettings, bool, error)
	Save(ctx context.Context, settings UserSettings) error
}

type JournalRepository interface {
	Upsert(ctx context.Context, entry JournalEntry) error
	ListByTrack(ctx context.Context, userID, trackID string) ([]JournalEntry, error)
}
