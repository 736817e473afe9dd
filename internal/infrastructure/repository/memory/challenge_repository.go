package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
)

type TrackRepository struct {
	mu      sync.RWMutex
	tracks  []challenge.Track
	prompts map[string]challenge.Prompt
}

func NewTrackRepository(tracks []challenge.Track, prompts []challenge.Prompt) *TrackRepository {
	r := &TrackRepository{
		tracks:  append([]challenge.Track(nil), tracks...),
		prompts: make(map[string]challenge.Prompt, len(prompts)),
	}
	for _, p := range prompts {
		r.prompts[promptKey(p.TrackID, p.Day)] = p
	}
	return r
}

func (r *TrackRepository) List(_ context.Context) ([]challenge.Track, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]challenge.Track(nil), r.tracks...), nil
}

func (r *TrackRepository) GetByID(_ context.Context, trackID string) (challenge.Track, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tracks {
		if t.ID == trackID {
			return t, true, nil
		}
	}
	return challenge.Track{}, false, nil
}

func (r *TrackRepository) GetPrompt(_ context.Context, trackID string, day int) (challenge.Prompt, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prompts[promptKey(trackID, day)]
	return p, ok, nil
}

func promptKey(trackID string, day int) string {
	return fmt.Sprintf("%s#%d", trackID, day)
}

type UnlockCodeRepository struct {
	mu    sync.Mutex
	codes map[string]challenge.UnlockCode
}

func NewUnlockCodeRepository() *UnlockCodeRepository {
	return &UnlockCodeRepository{codes: make(map[string]challenge.UnlockCode)}
}

// CreateMany inserts all codes or none.
func (r *UnlockCodeRepository) CreateMany(_ context.Context, codes []challenge.UnlockCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range codes {
		if _, exists := r.codes[c.Code]; exists {
			return fmt.Errorf("unlock code %s already exists", c.Code)
		}
	}
	for _, c := range codes {
		r.codes[c.Code] = c
	}
	return nil
}

func (r *UnlockCodeRepository) GetByCode(_ context.Context, code string) (challenge.UnlockCode, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[code]
	return c, ok, nil
}

func (r *UnlockCodeRepository) MarkRedeemed(_ context.Context, code, userID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[code]
	if !ok || c.IsRedeemed() {
		return false, nil
	}
	c.RedeemedBy = userID
	c.RedeemedAt = &at
	r.codes[code] = c
	return true, nil
}

type SettingsRepository struct {
	mu    sync.RWMutex
	items map[string]challenge.UserSettings
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{items: make(map[string]challenge.UserSettings)}
}

func (r *SettingsRepository) Get(_ context.Context, userID string) (challenge.UserSettings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[userID]
	if !ok {
		return challenge.UserSettings{}, false, nil
	}
	s.UnlockedTrackIDs = append([]string(nil), s.UnlockedTrackIDs...)
	return s, true, nil
}

func (r *SettingsRepository) Save(_ context.Context, settings challenge.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings.UnlockedTrackIDs = append([]string(nil), settings.UnlockedTrackIDs...)
	r.items[settings.UserID] = settings
	return nil
}

type JournalRepository struct {
	mu      sync.RWMutex
	entries map[string]challenge.JournalEntry
}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{entries: make(map[string]challenge.JournalEntry)}
}

// Upsert keeps the first CreatedAt of an entry.
func (r *JournalRepository) Upsert(_ context.Context, entry challenge.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entry.UserID + "|" + promptKey(entry.TrackID, entry.Day)
	if existing, ok := r.entries[key]; ok {
		entry.CreatedAt = existing.CreatedAt
	}
	r.entries[key] = entry
	return nil
}

func (r *JournalRepository) ListByTrack(_ context.Context, userID, trackID string) ([]challenge.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]challenge.JournalEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID && e.TrackID == trackID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}
