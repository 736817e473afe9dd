package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
)

type challengeFixture struct {
	service  *ChallengeService
	clock    *clockwork.FakeClock
	codes    *stubUnlockCodeRepository
	settings *stubSettingsRepository
	journal  *stubJournalRepository
	mail     *sentMail
	queue    *recordingQueue
}

type upperRenderer struct{}

func (upperRenderer) Render(source string) (string, error) {
	return "<p>" + strings.ToUpper(source) + "</p>", nil
}

func newChallengeFixture() challengeFixture {
	prompts := map[string]challenge.Prompt{}
	for day := 1; day <= challenge.DaysPerTrack; day++ {
		for _, trackID := range []string{"gratitude", "superfan"} {
			prompts[promptKey(trackID, day)] = challenge.Prompt{TrackID: trackID, Day: day, Title: "Prompt", Body: "write it down"}
		}
	}
	tracks := &stubTrackRepository{
		tracks: []challenge.Track{
			{ID: "gratitude", Title: "Gratitude", Days: challenge.DaysPerTrack},
			{ID: "superfan", Title: "Superfan", Days: challenge.DaysPerTrack, IsPremium: true},
		},
		prompts: prompts,
	}

	f := challengeFixture{
		clock:    clockwork.NewFakeClockAt(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)),
		codes:    &stubUnlockCodeRepository{},
		settings: &stubSettingsRepository{},
		journal:  &stubJournalRepository{},
		mail:     &sentMail{},
		queue:    &recordingQueue{},
	}
	f.service = NewChallengeService(
		tracks,
		f.codes,
		f.settings,
		f.journal,
		upperRenderer{},
		f.mail,
		f.queue,
		f.clock,
		ChallengeConfig{CodeRandom: bytes.NewReader(bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, 8))},
		nil,
	)
	return f
}

func TestChallengeService_GetPrompt_DayGating(t *testing.T) {
	t.Parallel()

	f := newChallengeFixture()
	ctx := context.Background()

	if _, err := f.service.UpdateSettings(ctx, SettingsInput{UserID: "u1", ActiveTrackID: "gratitude", ReminderHour: intPtr(8)}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	got, err := f.service.GetPrompt(ctx, "u1", "gratitude", 1)
	if err != nil {
		t.Fatalf("get day 1: %v", err)
	}
	if got.HTML != "<p>WRITE IT DOWN</p>" || got.CurrentDay != 1 {
		t.Fatalf("unexpected prompt view: %+v", got)
	}

	_, err = f.service.GetPrompt(ctx, "u1", "gratitude", 2)
	if !errors.Is(err, challenge.ErrDayNotAvailable) {
		t.Fatalf("expected ErrDayNotAvailable, got %v", err)
	}

	f.clock.Advance(24 * time.Hour)
	if _, err := f.service.GetPrompt(ctx, "u1", "gratitude", 2); err != nil {
		t.Fatalf("day 2 should open after a day: %v", err)
	}

	_, err = f.service.GetPrompt(ctx, "u1", "superfan", 1)
	if !errors.Is(err, challenge.ErrTrackLocked) {
		t.Fatalf("expected ErrTrackLocked, got %v", err)
	}
}

func TestChallengeService_UnlockCodes(t *testing.T) {
	t.Parallel()

	f := newChallengeFixture()
	ctx := context.Background()

	codes, err := f.service.GenerateUnlockCodes(ctx, "superfan", 2, "buyer@example.com")
	if err != nil {
		t.Fatalf("generate codes: %v", err)
	}
	if len(codes) != 2 || codes[0].Code == codes[1].Code {
		t.Fatalf("expected two distinct codes, got %+v", codes)
	}
	if len(f.mail.msgs) != 1 || !strings.Contains(f.mail.msgs[0].HTML, codes[0].Code) {
		t.Fatalf("expected codes to be mailed, got %+v", f.mail.msgs)
	}

	lower := strings.ToLower(codes[0].Code)

	t.Run("redeem unlocks track", func(t *testing.T) {
		got, err := f.service.RedeemUnlockCode(ctx, "u1", lower)
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if !got.HasUnlocked("superfan") {
			t.Fatalf("expected superfan unlocked, got %+v", got)
		}
	})

	t.Run("same user again is a no-op", func(t *testing.T) {
		got, err := f.service.RedeemUnlockCode(ctx, "u1", codes[0].Code)
		if err != nil {
			t.Fatalf("redeem again: %v", err)
		}
		if len(got.UnlockedTrackIDs) != 1 {
			t.Fatalf("unlocked list should not grow: %v", got.UnlockedTrackIDs)
		}
	})

	t.Run("another user is rejected", func(t *testing.T) {
		_, err := f.service.RedeemUnlockCode(ctx, "u2", codes[0].Code)
		if !errors.Is(err, challenge.ErrCodeAlreadyRedeemed) {
			t.Fatalf("expected ErrCodeAlreadyRedeemed, got %v", err)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := f.service.RedeemUnlockCode(ctx, "u2", "ZZZZ-ZZZZ")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("count bounds", func(t *testing.T) {
		if _, err := f.service.GenerateUnlockCodes(ctx, "superfan", 0, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestChallengeService_Journal(t *testing.T) {
	t.Parallel()

	f := newChallengeFixture()
	ctx := context.Background()

	if _, err := f.service.UpdateSettings(ctx, SettingsInput{UserID: "u1", ActiveTrackID: "gratitude", ReminderHour: intPtr(8)}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	if _, err := f.service.SaveJournalEntry(ctx, "u1", "gratitude", 1, "first"); err != nil {
		t.Fatalf("save entry: %v", err)
	}
	if _, err := f.service.SaveJournalEntry(ctx, "u1", "gratitude", 1, "edited"); err != nil {
		t.Fatalf("overwrite entry: %v", err)
	}
	if _, err := f.service.SaveJournalEntry(ctx, "u1", "gratitude", 5, "too early"); !errors.Is(err, challenge.ErrDayNotAvailable) {
		t.Fatalf("expected ErrDayNotAvailable, got %v", err)
	}
	if _, err := f.service.SaveJournalEntry(ctx, "u1", "gratitude", 1, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank body, got %v", err)
	}

	entries, err := f.service.ListJournalEntries(ctx, "u1", "gratitude")
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Body != "edited" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestChallengeService_SendDailyReminder(t *testing.T) {
	t.Parallel()

	t.Run("skips when disabled", func(t *testing.T) {
		f := newChallengeFixture()

		got, err := f.service.SendDailyReminder(context.Background(), "u1")
		if err != nil {
			t.Fatalf("send reminder: %v", err)
		}
		if got.Sent || got.Skipped == "" {
			t.Fatalf("expected skip, got %+v", got)
		}
	})

	t.Run("mails prompt and queues next", func(t *testing.T) {
		f := newChallengeFixture()
		ctx := context.Background()

		_, err := f.service.UpdateSettings(ctx, SettingsInput{
			UserID:          "u1",
			Email:           "fan@example.com",
			ActiveTrackID:   "gratitude",
			ReminderHour:    intPtr(8),
			Timezone:        "UTC",
			ReminderEnabled: true,
		})
		if err != nil {
			t.Fatalf("update settings: %v", err)
		}
		if len(f.queue.jobs) != 1 {
			t.Fatalf("enabling reminders should queue the first one, got %d jobs", len(f.queue.jobs))
		}

		f.clock.Advance(22 * time.Hour)
		got, err := f.service.SendDailyReminder(ctx, "u1")
		if err != nil {
			t.Fatalf("send reminder: %v", err)
		}
		if !got.Sent || got.Day != 2 || got.MessageID == "" {
			t.Fatalf("unexpected result: %+v", got)
		}
		if len(f.mail.msgs) != 1 || f.mail.msgs[0].To != "fan@example.com" {
			t.Fatalf("unexpected mail: %+v", f.mail.msgs)
		}
		next := f.queue.jobs[len(f.queue.jobs)-1]
		if next.path != sendReminderJobPath || next.delay != 24*time.Hour {
			t.Fatalf("unexpected next job: %+v", next)
		}
	})
}
