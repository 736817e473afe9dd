package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
)

type CompetitionRepository struct {
	mu       sync.RWMutex
	bySeason map[string][]competition.Competition
}

func NewCompetitionRepository(items []competition.Competition) *CompetitionRepository {
	r := &CompetitionRepository{bySeason: make(map[string][]competition.Competition)}
	for _, c := range items {
		r.bySeason[c.SeasonID] = append(r.bySeason[c.SeasonID], cloneCompetition(c))
	}
	return r
}

// ListBySeason orders events by week, then by insertion.
func (r *CompetitionRepository) ListBySeason(_ context.Context, seasonID string) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[seasonID]
	out := make([]competition.Competition, 0, len(items))
	for _, c := range items {
		out = append(out, cloneCompetition(c))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, seasonID, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.bySeason[seasonID] {
		if c.ID == competitionID {
			return cloneCompetition(c), true, nil
		}
	}
	return competition.Competition{}, false, nil
}

func (r *CompetitionRepository) Create(_ context.Context, c competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeason[c.SeasonID] = append(r.bySeason[c.SeasonID], cloneCompetition(c))
	return nil
}

func (r *CompetitionRepository) Delete(_ context.Context, seasonID, competitionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.bySeason[seasonID]
	for i, c := range items {
		if c.ID == competitionID {
			r.bySeason[seasonID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func cloneCompetition(c competition.Competition) competition.Competition {
	c.Nominees = append([]string(nil), c.Nominees...)
	return c
}
