package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

type draftBoardReader interface {
	GetBoard(ctx context.Context, leagueID string) (DraftBoard, error)
}

type scoreboardReader interface {
	GetScoreboard(ctx context.Context, leagueID string, week int) (Scoreboard, error)
}

// LeagueSnapshot is the full derived state of a league at one point in time.
type LeagueSnapshot struct {
	Cause      *live.Event
	Draft      DraftBoard
	Scoreboard Scoreboard
}

type LiveService struct {
	leagueRepo  league.Repository
	subscriber  live.Subscriber
	drafts      draftBoardReader
	scoreboards scoreboardReader
	logger      *logging.Logger
}

func NewLiveService(
	leagueRepo league.Repository,
	subscriber live.Subscriber,
	drafts draftBoardReader,
	scoreboards scoreboardReader,
	logger *logging.Logger,
) *LiveService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveService{
		leagueRepo:  leagueRepo,
		subscriber:  subscriber,
		drafts:      drafts,
		scoreboards: scoreboards,
		logger:      logger,
	}
}

// Watch streams a snapshot immediately and again after every change event
// touching the league. The channel closes when ctx ends or the feed closes.
func (s *LiveService) Watch(ctx context.Context, leagueID string) (<-chan LeagueSnapshot, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if s.subscriber == nil {
		return nil, fmt.Errorf("%w: change feed is not configured", ErrDependencyUnavailable)
	}

	lg, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	first, err := s.snapshot(ctx, lg.ID, nil)
	if err != nil {
		return nil, err
	}
	events, err := s.subscriber.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: subscribe change feed: %v", ErrDependencyUnavailable, err)
	}

	out := make(chan LeagueSnapshot, 1)
	out <- first
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if !event.Affects(lg.ID, lg.SeasonID) {
					continue
				}
				snap, err := s.snapshot(ctx, lg.ID, &event)
				if err != nil {
					s.logger.WarnContext(ctx, "build live snapshot failed", "league_id", lg.ID, "error", err)
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *LiveService) snapshot(ctx context.Context, leagueID string, cause *live.Event) (LeagueSnapshot, error) {
	board, err := s.drafts.GetBoard(ctx, leagueID)
	if err != nil {
		return LeagueSnapshot{}, fmt.Errorf("get draft board: %w", err)
	}
	scoreboard, err := s.scoreboards.GetScoreboard(ctx, leagueID, 0)
	if err != nil {
		return LeagueSnapshot{}, fmt.Errorf("get scoreboard: %w", err)
	}
	return LeagueSnapshot{Cause: cause, Draft: board, Scoreboard: scoreboard}, nil
}
