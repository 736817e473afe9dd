package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	orders []string
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	r := &SeasonRepository{items: make(map[string]season.Season, len(seasons))}
	for _, s := range seasons {
		r.items[s.ID] = cloneSeason(s)
		r.orders = append(r.orders, s.ID)
	}
	return r
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneSeason(r.items[id]))
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}
	return cloneSeason(s), true, nil
}

func (r *SeasonRepository) UpdateCurrentWeek(_ context.Context, seasonID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return fmt.Errorf("season %s not found", seasonID)
	}
	s.CurrentWeek = week
	r.items[seasonID] = s
	return nil
}

func (r *SeasonRepository) SaveWeeklyStatusCards(_ context.Context, seasonID, weekKey string, cards []season.StatusCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return fmt.Errorf("season %s not found", seasonID)
	}
	s = cloneSeason(s)
	if len(cards) == 0 {
		delete(s.WeeklyStatusDisplay, weekKey)
	} else {
		if s.WeeklyStatusDisplay == nil {
			s.WeeklyStatusDisplay = make(map[string][]season.StatusCard)
		}
		s.WeeklyStatusDisplay[weekKey] = append([]season.StatusCard(nil), cards...)
	}
	r.items[seasonID] = s
	return nil
}

func cloneSeason(s season.Season) season.Season {
	if s.WeeklyStatusDisplay == nil {
		return s
	}
	display := make(map[string][]season.StatusCard, len(s.WeeklyStatusDisplay))
	for k, v := range s.WeeklyStatusDisplay {
		display[k] = append([]season.StatusCard(nil), v...)
	}
	s.WeeklyStatusDisplay = display
	return s
}
