package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/draft"
)

// DraftRepository enforces the same uniqueness as the draft_picks table:
// one pick number and one contestant per league.
type DraftRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]draft.Pick
}

func NewDraftRepository(items []draft.Pick) *DraftRepository {
	r := &DraftRepository{byLeague: make(map[string][]draft.Pick)}
	for _, p := range items {
		r.byLeague[p.LeagueID] = append(r.byLeague[p.LeagueID], p)
	}
	return r
}

func (r *DraftRepository) ListByLeague(_ context.Context, leagueID string) ([]draft.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]draft.Pick(nil), r.byLeague[leagueID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Pick < out[j].Pick })
	return out, nil
}

func (r *DraftRepository) Create(_ context.Context, p draft.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.byLeague[p.LeagueID] {
		if item.ContestantID == p.ContestantID {
			return fmt.Errorf("insert draft pick: %w", draft.ErrContestantAlreadyDrafted)
		}
		if item.Pick == p.Pick {
			return fmt.Errorf("insert draft pick: %w", draft.ErrNotYourTurn)
		}
	}
	r.byLeague[p.LeagueID] = append(r.byLeague[p.LeagueID], p)
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, leagueID, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.byLeague[leagueID]
	for i, p := range items {
		if p.ID == pickID {
			r.byLeague[leagueID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}
