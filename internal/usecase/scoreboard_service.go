package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

const defaultRecalcWorkers = 4

type ScoreboardConfig struct {
	RecalcWorkers int
}

type Scoreboard struct {
	League    league.League
	Season    season.Season
	Week      int
	Stats     []scoring.ContestantStats
	Standings []scoring.TeamStanding
}

type RecalculateResult struct {
	SeasonID     string `json:"season_id"`
	LeagueCount  int    `json:"league_count"`
	UpdatedCount int    `json:"updated_count"`
	FailedCount  int    `json:"failed_count"`
	DurationMs   int64  `json:"duration_ms"`
}

type ScoreboardService struct {
	leagueRepo      league.Repository
	seasonRepo      season.Repository
	teamRepo        team.Repository
	contestantRepo  contestant.Repository
	competitionRepo competition.Repository
	draftRepo       draft.Repository
	ruleSetRepo     scoring.RuleSetRepository
	publisher       live.Publisher
	cfg             ScoreboardConfig
	logger          *logging.Logger
}

func NewScoreboardService(
	leagueRepo league.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	contestantRepo contestant.Repository,
	competitionRepo competition.Repository,
	draftRepo draft.Repository,
	ruleSetRepo scoring.RuleSetRepository,
	publisher live.Publisher,
	cfg ScoreboardConfig,
	logger *logging.Logger,
) *ScoreboardService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RecalcWorkers <= 0 {
		cfg.RecalcWorkers = defaultRecalcWorkers
	}
	return &ScoreboardService{
		leagueRepo:      leagueRepo,
		seasonRepo:      seasonRepo,
		teamRepo:        teamRepo,
		contestantRepo:  contestantRepo,
		competitionRepo: competitionRepo,
		draftRepo:       draftRepo,
		ruleSetRepo:     ruleSetRepo,
		publisher:       publisher,
		cfg:             cfg,
		logger:          logger,
	}
}

type leagueInputs struct {
	season       season.Season
	teams        []team.Team
	contestants  []contestant.Contestant
	competitions []competition.Competition
	picks        []draft.Pick
	rules        []scoring.Rule
}

// GetScoreboard scores a league. An explicit week scores events up to that
// week; a week below 1 scores the full event log, the same totals
// RecalculateSeason persists, and ranks against the season's current week.
func (s *ScoreboardService) GetScoreboard(ctx context.Context, leagueID string, week int) (Scoreboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.GetScoreboard")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return Scoreboard{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	lg, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return Scoreboard{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return Scoreboard{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	in, err := s.loadLeagueInputs(ctx, lg)
	if err != nil {
		return Scoreboard{}, err
	}
	events := in.competitions
	if week < 1 {
		week = in.season.CurrentWeek
	} else {
		events = competitionsUpTo(in.competitions, week)
	}

	stats := scoring.ComputeContestantStats(in.contestants, events, in.rules, in.picks, in.teams)
	scoring.SortContestantStats(stats, events, week)

	return Scoreboard{
		League:    lg,
		Season:    in.season,
		Week:      week,
		Stats:     stats,
		Standings: scoring.ComputeTeamStandings(stats, in.teams),
	}, nil
}

// RecalculateSeason persists team totals for every league of the season.
func (s *ScoreboardService) RecalculateSeason(ctx context.Context, seasonID string) (RecalculateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.RecalculateSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return RecalculateResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	start := time.Now()
	leagues, err := s.leagueRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return RecalculateResult{}, fmt.Errorf("list leagues by season: %w", err)
	}
	result := RecalculateResult{SeasonID: seasonID, LeagueCount: len(leagues)}
	if len(leagues) == 0 {
		return result, nil
	}

	workerCount := s.cfg.RecalcWorkers
	if workerCount > len(leagues) {
		workerCount = len(leagues)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculateResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var updated atomic.Int32
	var failed atomic.Int32
	var workers sync.WaitGroup
	for _, lg := range leagues {
		lg := lg
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			if err := s.recalculateLeague(ctx, lg); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "recalculate league scores failed", "league_id", lg.ID, "error", err)
				return
			}
			updated.Add(1)
		}); err != nil {
			workers.Done()
			return RecalculateResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.UpdatedCount = int(updated.Load())
	result.FailedCount = int(failed.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "season scores recalculated",
		"season_id", seasonID,
		"league_count", result.LeagueCount,
		"updated_count", result.UpdatedCount,
		"failed_count", result.FailedCount,
	)
	publishBestEffort(ctx, s.publisher, live.Event{Kind: live.KindScoresChanged, SeasonID: seasonID, At: time.Now().UTC()})
	return result, nil
}

func (s *ScoreboardService) recalculateLeague(ctx context.Context, lg league.League) error {
	in, err := s.loadLeagueInputs(ctx, lg)
	if err != nil {
		return err
	}

	stats := scoring.ComputeContestantStats(in.contestants, in.competitions, in.rules, in.picks, in.teams)
	standings := scoring.ComputeTeamStandings(stats, in.teams)
	if err := s.teamRepo.UpdateTotalScores(ctx, lg.ID, scoring.TotalsByTeam(standings)); err != nil {
		return fmt.Errorf("update total scores: %w", err)
	}
	return nil
}

func (s *ScoreboardService) loadLeagueInputs(ctx context.Context, lg league.League) (leagueInputs, error) {
	var in leagueInputs

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		item, exists, err := s.seasonRepo.GetByID(ctx, lg.SeasonID)
		if err != nil {
			return fmt.Errorf("get season: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: season=%s", ErrNotFound, lg.SeasonID)
		}
		in.season = item
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.ListByLeague(ctx, lg.ID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		in.teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.contestantRepo.ListBySeason(ctx, lg.SeasonID)
		if err != nil {
			return fmt.Errorf("list contestants: %w", err)
		}
		in.contestants = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.competitionRepo.ListBySeason(ctx, lg.SeasonID)
		if err != nil {
			return fmt.Errorf("list competitions: %w", err)
		}
		in.competitions = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.draftRepo.ListByLeague(ctx, lg.ID)
		if err != nil {
			return fmt.Errorf("list picks: %w", err)
		}
		in.picks = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		rules, err := s.loadRules(ctx, lg)
		if err != nil {
			return err
		}
		in.rules = rules
		return nil
	})
	if err := p.Wait(); err != nil {
		return leagueInputs{}, err
	}

	return in, nil
}

func (s *ScoreboardService) loadRules(ctx context.Context, lg league.League) ([]scoring.Rule, error) {
	if lg.RuleSetID == "" {
		return nil, nil
	}
	set, exists, err := s.ruleSetRepo.GetByID(ctx, lg.RuleSetID)
	if err != nil {
		return nil, fmt.Errorf("get rule set: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "league rule set missing, scoring without rules",
			"league_id", lg.ID,
			"rule_set_id", lg.RuleSetID,
		)
		return nil, nil
	}
	return set.Rules, nil
}

func competitionsUpTo(events []competition.Competition, week int) []competition.Competition {
	out := make([]competition.Competition, 0, len(events))
	for _, e := range events {
		if e.Week <= week {
			out = append(out, e)
		}
	}
	return out
}
