package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
)

type ContestantRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]contestant.Contestant
}

func NewContestantRepository(items []contestant.Contestant) *ContestantRepository {
	r := &ContestantRepository{bySeason: make(map[string][]contestant.Contestant)}
	for _, c := range items {
		r.bySeason[c.SeasonID] = append(r.bySeason[c.SeasonID], cloneContestant(c))
	}
	return r
}

func (r *ContestantRepository) ListBySeason(_ context.Context, seasonID string) ([]contestant.Contestant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[seasonID]
	out := make([]contestant.Contestant, 0, len(items))
	for _, c := range items {
		out = append(out, cloneContestant(c))
	}
	return out, nil
}

func (r *ContestantRepository) GetByID(_ context.Context, seasonID, contestantID string) (contestant.Contestant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.bySeason[seasonID] {
		if c.ID == contestantID {
			return cloneContestant(c), true, nil
		}
	}
	return contestant.Contestant{}, false, nil
}

func (r *ContestantRepository) Create(_ context.Context, c contestant.Contestant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.bySeason[c.SeasonID] {
		if item.ID == c.ID {
			return fmt.Errorf("contestant %s already exists", c.ID)
		}
	}
	r.bySeason[c.SeasonID] = append(r.bySeason[c.SeasonID], cloneContestant(c))
	return nil
}

func (r *ContestantRepository) Update(_ context.Context, c contestant.Contestant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.bySeason[c.SeasonID]
	for i, item := range items {
		if item.ID == c.ID {
			items[i] = cloneContestant(c)
			return nil
		}
	}
	return fmt.Errorf("contestant %s not found", c.ID)
}

func cloneContestant(c contestant.Contestant) contestant.Contestant {
	if c.EvictedDay != nil {
		day := *c.EvictedDay
		c.EvictedDay = &day
	}
	return c
}
