package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
	"github.com/riskibarqy/eviction-league/internal/platform/id"
)

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	idGen      id.Generator
	publisher  live.Publisher
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	idGen id.Generator,
	publisher live.Publisher,
) *LeagueService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
		publisher:  publisher,
		now:        time.Now,
	}
}

type TeamInput struct {
	LeagueID     string
	TeamID       string
	Name         string
	OwnerUserIDs []string
	DraftOrder   int
	FAAB         int
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return s.mustGetLeague(ctx, leagueID)
}

func (s *LeagueService) ListTeamsByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeamsByLeague")
	defer span.End()

	if _, err := s.mustGetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, strings.TrimSpace(leagueID))
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	return teams, nil
}

func (s *LeagueService) CreateTeam(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateTeam")
	defer span.End()

	lg, err := s.mustGetLeague(ctx, input.LeagueID)
	if err != nil {
		return team.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:           teamID,
		LeagueID:     lg.ID,
		Name:         strings.TrimSpace(input.Name),
		OwnerUserIDs: normalizeIDs(input.OwnerUserIDs),
		DraftOrder:   input.DraftOrder,
		FAAB:         input.FAAB,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.publish(ctx, live.Event{Kind: live.KindRosterChanged, LeagueID: lg.ID})
	return item, nil
}

func (s *LeagueService) UpdateTeam(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.UpdateTeam")
	defer span.End()

	lg, err := s.mustGetLeague(ctx, input.LeagueID)
	if err != nil {
		return team.Team{}, err
	}

	teamID := strings.TrimSpace(input.TeamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	current, exists, err := s.teamRepo.GetByID(ctx, lg.ID, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	current.Name = strings.TrimSpace(input.Name)
	current.OwnerUserIDs = normalizeIDs(input.OwnerUserIDs)
	current.DraftOrder = input.DraftOrder
	current.FAAB = input.FAAB
	if err := current.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Update(ctx, current); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	s.publish(ctx, live.Event{Kind: live.KindRosterChanged, LeagueID: lg.ID})
	return current, nil
}

func (s *LeagueService) mustGetLeague(ctx context.Context, leagueID string) (league.League, error) {
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

func (s *LeagueService) publish(ctx context.Context, event live.Event) {
	event.At = s.now().UTC()
	publishBestEffort(ctx, s.publisher, event)
}
