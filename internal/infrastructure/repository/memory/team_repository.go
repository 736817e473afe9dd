package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

type TeamRepository struct {
	mu            sync.RWMutex
	teamsByLeague map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	teamsByLeague := make(map[string][]team.Team)
	for _, item := range teams {
		teamsByLeague[item.LeagueID] = append(teamsByLeague[item.LeagueID], cloneTeam(item))
	}

	return &TeamRepository{teamsByLeague: teamsByLeague}
}

// ListByLeague returns teams by draft order, ties broken by id.
func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.teamsByLeague[leagueID]
	out := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		out = append(out, cloneTeam(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DraftOrder != out[j].DraftOrder {
			return out[i].DraftOrder < out[j].DraftOrder
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, leagueID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teamsByLeague[leagueID] {
		if item.ID == teamID {
			return cloneTeam(item), true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.teamsByLeague[t.LeagueID] {
		if item.ID == t.ID {
			return fmt.Errorf("team %s already exists", t.ID)
		}
	}
	r.teamsByLeague[t.LeagueID] = append(r.teamsByLeague[t.LeagueID], cloneTeam(t))
	return nil
}

// Update keeps the stored total score; totals only change through UpdateTotalScores.
func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	teams := r.teamsByLeague[t.LeagueID]
	for i, item := range teams {
		if item.ID != t.ID {
			continue
		}
		next := cloneTeam(t)
		next.TotalScore = item.TotalScore
		teams[i] = next
		return nil
	}
	return fmt.Errorf("team %s not found", t.ID)
}

func (r *TeamRepository) UpdateTotalScores(_ context.Context, leagueID string, totals map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	teams := r.teamsByLeague[leagueID]
	for i := range teams {
		if total, ok := totals[teams[i].ID]; ok {
			teams[i].TotalScore = total
		}
	}
	return nil
}

func cloneTeam(t team.Team) team.Team {
	t.OwnerUserIDs = append([]string(nil), t.OwnerUserIDs...)
	return t
}
