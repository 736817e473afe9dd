package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
	"github.com/riskibarqy/eviction-league/internal/platform/id"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

type DraftBoard struct {
	League      league.League
	Slots       []draft.Slot
	PicksByTeam map[string][]int
	Picks       []draft.Pick
	Next        *draft.Slot
	Complete    bool
}

type DraftService struct {
	leagueRepo     league.Repository
	teamRepo       team.Repository
	contestantRepo contestant.Repository
	draftRepo      draft.Repository
	recalculator   seasonRecalculator
	idGen          id.Generator
	publisher      live.Publisher
	logger         *logging.Logger
	now            func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDraftService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	contestantRepo contestant.Repository,
	draftRepo draft.Repository,
	recalculator seasonRecalculator,
	idGen id.Generator,
	publisher live.Publisher,
	logger *logging.Logger,
) *DraftService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftService{
		leagueRepo:     leagueRepo,
		teamRepo:       teamRepo,
		contestantRepo: contestantRepo,
		draftRepo:      draftRepo,
		recalculator:   recalculator,
		idGen:          idGen,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
		locks:          make(map[string]*sync.Mutex),
	}
}

type draftState struct {
	league      league.League
	teams       []team.Team
	contestants []contestant.Contestant
	picks       []draft.Pick
	slots       []draft.Slot
}

func (s *DraftService) GetBoard(ctx context.Context, leagueID string) (DraftBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetBoard")
	defer span.End()

	state, err := s.loadState(ctx, leagueID)
	if err != nil {
		return DraftBoard{}, err
	}
	return boardFromState(state), nil
}

func (s *DraftService) MakePick(ctx context.Context, leagueID, teamID, contestantID string) (draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MakePick")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	contestantID = strings.TrimSpace(contestantID)
	if teamID == "" || contestantID == "" {
		return draft.Pick{}, fmt.Errorf("%w: team id and contestant id are required", ErrInvalidInput)
	}

	unlock := s.lockLeague(strings.TrimSpace(leagueID))
	defer unlock()

	state, err := s.loadState(ctx, leagueID)
	if err != nil {
		return draft.Pick{}, err
	}

	next, ok := draft.NextPick(state.slots, len(state.picks))
	if !ok {
		return draft.Pick{}, draft.ErrDraftComplete
	}
	if next.Team.ID != teamID {
		return draft.Pick{}, fmt.Errorf("%w: pick %d belongs to team=%s", draft.ErrNotYourTurn, next.Pick, next.Team.ID)
	}
	if !containsContestant(state.contestants, contestantID) {
		return draft.Pick{}, fmt.Errorf("%w: contestant=%s", ErrNotFound, contestantID)
	}
	for _, p := range state.picks {
		if p.ContestantID == contestantID {
			return draft.Pick{}, fmt.Errorf("%w: contestant=%s pick=%d", draft.ErrContestantAlreadyDrafted, contestantID, p.Pick)
		}
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return draft.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}
	item := draft.Pick{
		ID:           pickID,
		LeagueID:     state.league.ID,
		TeamID:       teamID,
		ContestantID: contestantID,
		Pick:         next.Pick,
		Round:        draft.RoundForPick(next.Pick, len(state.teams)),
		CreatedAt:    s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return draft.Pick{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.draftRepo.Create(ctx, item); err != nil {
		return draft.Pick{}, fmt.Errorf("create pick: %w", err)
	}

	s.logger.InfoContext(ctx, "draft pick made",
		"league_id", item.LeagueID,
		"team_id", item.TeamID,
		"contestant_id", item.ContestantID,
		"pick", item.Pick,
	)
	s.recalculate(ctx, state.league.SeasonID)
	publishBestEffort(ctx, s.publisher, live.Event{Kind: live.KindDraftChanged, LeagueID: item.LeagueID, At: item.CreatedAt})
	return item, nil
}

func (s *DraftService) UndoLastPick(ctx context.Context, leagueID string) (draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.UndoLastPick")
	defer span.End()

	unlock := s.lockLeague(strings.TrimSpace(leagueID))
	defer unlock()

	lg, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return draft.Pick{}, err
	}
	picks, err := s.draftRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return draft.Pick{}, fmt.Errorf("list picks: %w", err)
	}
	if len(picks) == 0 {
		return draft.Pick{}, draft.ErrNoPicks
	}

	last := picks[0]
	for _, p := range picks[1:] {
		if p.Pick > last.Pick {
			last = p
		}
	}
	if err := s.draftRepo.Delete(ctx, lg.ID, last.ID); err != nil {
		return draft.Pick{}, fmt.Errorf("delete pick: %w", err)
	}

	s.logger.InfoContext(ctx, "draft pick undone", "league_id", lg.ID, "pick", last.Pick)
	s.recalculate(ctx, lg.SeasonID)
	publishBestEffort(ctx, s.publisher, live.Event{Kind: live.KindDraftChanged, LeagueID: lg.ID, At: s.now().UTC()})
	return last, nil
}

// recalculate refreshes persisted team totals, since a pick moves a
// contestant's points onto a team.
func (s *DraftService) recalculate(ctx context.Context, seasonID string) {
	if s.recalculator == nil {
		return
	}
	if _, err := s.recalculator.RecalculateSeason(ctx, seasonID); err != nil {
		s.logger.WarnContext(ctx, "recalculate after draft change failed", "season_id", seasonID, "error", err)
	}
}

func (s *DraftService) loadState(ctx context.Context, leagueID string) (draftState, error) {
	lg, err := s.getLeague(ctx, leagueID)
	if err != nil {
		return draftState{}, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return draftState{}, fmt.Errorf("list teams: %w", err)
	}
	contestants, err := s.contestantRepo.ListBySeason(ctx, lg.SeasonID)
	if err != nil {
		return draftState{}, fmt.Errorf("list contestants: %w", err)
	}
	picks, err := s.draftRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return draftState{}, fmt.Errorf("list picks: %w", err)
	}

	return draftState{
		league:      lg,
		teams:       teams,
		contestants: contestants,
		picks:       picks,
		slots:       draft.ComputeSnakeDraftOrder(teams, len(contestants)),
	}, nil
}

func (s *DraftService) getLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	lg, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return lg, nil
}

// lockLeague serializes pick mutations per league within this process.
func (s *DraftService) lockLeague(leagueID string) func() {
	s.mu.Lock()
	l, ok := s.locks[leagueID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[leagueID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func boardFromState(state draftState) DraftBoard {
	board := DraftBoard{
		League:      state.league,
		Slots:       state.slots,
		PicksByTeam: draft.PicksByTeam(state.slots),
		Picks:       state.picks,
	}
	if next, ok := draft.NextPick(state.slots, len(state.picks)); ok {
		board.Next = &next
	} else {
		board.Complete = len(state.slots) > 0
	}
	return board
}

func containsContestant(items []contestant.Contestant, contestantID string) bool {
	for _, c := range items {
		if c.ID == contestantID {
			return true
		}
	}
	return false
}
