package cache

import (
	"context"

	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
	basecache "github.com/riskibarqy/eviction-league/internal/platform/cache"
)

// found pairs a cached lookup result with its existence flag so misses are cached too.
type found[T any] struct {
	value  T
	exists bool
}

func loadFound[T any](ctx context.Context, store *basecache.Store, key string, get func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := basecache.Load(ctx, store, key, func(ctx context.Context) (found[T], error) {
		item, exists, err := get(ctx)
		if err != nil {
			return found[T]{}, err
		}
		return found[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.value, v.exists, nil
}

func loadList[T any](ctx context.Context, store *basecache.Store, key string, list func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, store, key, func(ctx context.Context) ([]T, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return loadList(ctx, r.cache, "league:list", r.next.List)
}

func (r *LeagueRepository) ListBySeason(ctx context.Context, seasonID string) ([]league.League, error) {
	return loadList(ctx, r.cache, "league:season:"+seasonID, func(ctx context.Context) ([]league.League, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return loadFound(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByID(ctx, leagueID)
	})
}

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

// List is not cached; season rows carry the mutable status display map.
func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	return r.next.List(ctx)
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	item, exists, err := loadFound(ctx, r.cache, seasonKey(seasonID), func(ctx context.Context) (season.Season, bool, error) {
		return r.next.GetByID(ctx, seasonID)
	})
	if err != nil || item.WeeklyStatusDisplay == nil {
		return item, exists, err
	}
	display := make(map[string][]season.StatusCard, len(item.WeeklyStatusDisplay))
	for k, v := range item.WeeklyStatusDisplay {
		display[k] = append([]season.StatusCard(nil), v...)
	}
	item.WeeklyStatusDisplay = display
	return item, exists, nil
}

func (r *SeasonRepository) UpdateCurrentWeek(ctx context.Context, seasonID string, week int) error {
	if err := r.next.UpdateCurrentWeek(ctx, seasonID, week); err != nil {
		return err
	}
	r.cache.Delete(ctx, seasonKey(seasonID))
	return nil
}

func (r *SeasonRepository) SaveWeeklyStatusCards(ctx context.Context, seasonID, weekKey string, cards []season.StatusCard) error {
	if err := r.next.SaveWeeklyStatusCards(ctx, seasonID, weekKey, cards); err != nil {
		return err
	}
	r.cache.Delete(ctx, seasonKey(seasonID))
	return nil
}

func seasonKey(seasonID string) string {
	return "season:id:" + seasonID
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	return loadList(ctx, r.cache, teamPrefix(leagueID)+"list", func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	return loadFound(ctx, r.cache, teamPrefix(leagueID)+"id:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, leagueID, teamID)
	})
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix(t.LeagueID))
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	if err := r.next.Update(ctx, t); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix(t.LeagueID))
	return nil
}

func (r *TeamRepository) UpdateTotalScores(ctx context.Context, leagueID string, totals map[string]int) error {
	if err := r.next.UpdateTotalScores(ctx, leagueID, totals); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix(leagueID))
	return nil
}

func teamPrefix(leagueID string) string {
	return "team:" + leagueID + ":"
}

type ContestantRepository struct {
	next  contestant.Repository
	cache *basecache.Store
}

func NewContestantRepository(next contestant.Repository, cache *basecache.Store) *ContestantRepository {
	return &ContestantRepository{next: next, cache: cache}
}

func (r *ContestantRepository) ListBySeason(ctx context.Context, seasonID string) ([]contestant.Contestant, error) {
	return loadList(ctx, r.cache, contestantPrefix(seasonID)+"list", func(ctx context.Context) ([]contestant.Contestant, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
}

func (r *ContestantRepository) GetByID(ctx context.Context, seasonID, contestantID string) (contestant.Contestant, bool, error) {
	return loadFound(ctx, r.cache, contestantPrefix(seasonID)+"id:"+contestantID, func(ctx context.Context) (contestant.Contestant, bool, error) {
		return r.next.GetByID(ctx, seasonID, contestantID)
	})
}

func (r *ContestantRepository) Create(ctx context.Context, c contestant.Contestant) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, contestantPrefix(c.SeasonID))
	return nil
}

func (r *ContestantRepository) Update(ctx context.Context, c contestant.Contestant) error {
	if err := r.next.Update(ctx, c); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, contestantPrefix(c.SeasonID))
	return nil
}

func contestantPrefix(seasonID string) string {
	return "contestant:" + seasonID + ":"
}

type RuleSetRepository struct {
	next  scoring.RuleSetRepository
	cache *basecache.Store
}

func NewRuleSetRepository(next scoring.RuleSetRepository, cache *basecache.Store) *RuleSetRepository {
	return &RuleSetRepository{next: next, cache: cache}
}

func (r *RuleSetRepository) GetByID(ctx context.Context, ruleSetID string) (scoring.RuleSet, bool, error) {
	set, exists, err := loadFound(ctx, r.cache, "rule-set:id:"+ruleSetID, func(ctx context.Context) (scoring.RuleSet, bool, error) {
		return r.next.GetByID(ctx, ruleSetID)
	})
	if err != nil {
		return scoring.RuleSet{}, false, err
	}
	set.Rules = append([]scoring.Rule(nil), set.Rules...)
	return set, exists, nil
}

func (r *RuleSetRepository) Save(ctx context.Context, set scoring.RuleSet) error {
	if err := r.next.Save(ctx, set); err != nil {
		return err
	}
	r.cache.Delete(ctx, "rule-set:id:"+set.ID)
	return nil
}
