package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/platform/id"
)

type SeasonService struct {
	seasonRepo     season.Repository
	contestantRepo contestant.Repository
	idGen          id.Generator
	publisher      live.Publisher
	now            func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	contestantRepo contestant.Repository,
	idGen id.Generator,
	publisher live.Publisher,
) *SeasonService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &SeasonService{
		seasonRepo:     seasonRepo,
		contestantRepo: contestantRepo,
		idGen:          idGen,
		publisher:      publisher,
		now:            time.Now,
	}
}

type ContestantInput struct {
	SeasonID     string
	ContestantID string
	FirstName    string
	LastName     string
	Nickname     string
	Status       string
	PhotoURL     string
	EnteredDay   int
	EvictedDay   *int
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListSeasons")
	defer span.End()

	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return items, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetSeason")
	defer span.End()

	return getSeason(ctx, s.seasonRepo, seasonID)
}

func (s *SeasonService) SetCurrentWeek(ctx context.Context, seasonID string, week int) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SetCurrentWeek")
	defer span.End()

	if week < 1 {
		return season.Season{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	item, err := getSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return season.Season{}, err
	}
	if err := s.seasonRepo.UpdateCurrentWeek(ctx, item.ID, week); err != nil {
		return season.Season{}, fmt.Errorf("update current week: %w", err)
	}
	item.CurrentWeek = week

	s.publish(ctx, live.Event{Kind: live.KindScoresChanged, SeasonID: item.ID})
	return item, nil
}

func (s *SeasonService) ListContestants(ctx context.Context, seasonID string) ([]contestant.Contestant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListContestants")
	defer span.End()

	item, err := getSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	contestants, err := s.contestantRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list contestants: %w", err)
	}
	return contestants, nil
}

func (s *SeasonService) CreateContestant(ctx context.Context, input ContestantInput) (contestant.Contestant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateContestant")
	defer span.End()

	item, err := getSeason(ctx, s.seasonRepo, input.SeasonID)
	if err != nil {
		return contestant.Contestant{}, err
	}

	contestantID, err := s.idGen.NewID()
	if err != nil {
		return contestant.Contestant{}, fmt.Errorf("generate contestant id: %w", err)
	}

	c := contestantFromInput(input)
	c.ID = contestantID
	c.SeasonID = item.ID
	if c.Status == "" {
		c.Status = contestant.StatusActive
	}
	if err := c.Validate(); err != nil {
		return contestant.Contestant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.contestantRepo.Create(ctx, c); err != nil {
		return contestant.Contestant{}, fmt.Errorf("create contestant: %w", err)
	}

	s.publish(ctx, live.Event{Kind: live.KindRosterChanged, SeasonID: item.ID})
	return c, nil
}

func (s *SeasonService) UpdateContestant(ctx context.Context, input ContestantInput) (contestant.Contestant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.UpdateContestant")
	defer span.End()

	item, err := getSeason(ctx, s.seasonRepo, input.SeasonID)
	if err != nil {
		return contestant.Contestant{}, err
	}

	contestantID := strings.TrimSpace(input.ContestantID)
	if contestantID == "" {
		return contestant.Contestant{}, fmt.Errorf("%w: contestant id is required", ErrInvalidInput)
	}
	_, exists, err := s.contestantRepo.GetByID(ctx, item.ID, contestantID)
	if err != nil {
		return contestant.Contestant{}, fmt.Errorf("get contestant: %w", err)
	}
	if !exists {
		return contestant.Contestant{}, fmt.Errorf("%w: contestant=%s", ErrNotFound, contestantID)
	}

	c := contestantFromInput(input)
	c.ID = contestantID
	c.SeasonID = item.ID
	if err := c.Validate(); err != nil {
		return contestant.Contestant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.contestantRepo.Update(ctx, c); err != nil {
		return contestant.Contestant{}, fmt.Errorf("update contestant: %w", err)
	}

	s.publish(ctx, live.Event{Kind: live.KindRosterChanged, SeasonID: item.ID})
	return c, nil
}

func (s *SeasonService) publish(ctx context.Context, event live.Event) {
	event.At = s.now().UTC()
	publishBestEffort(ctx, s.publisher, event)
}

func contestantFromInput(input ContestantInput) contestant.Contestant {
	return contestant.Contestant{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Nickname:   strings.TrimSpace(input.Nickname),
		Status:     contestant.Status(strings.ToLower(strings.TrimSpace(input.Status))),
		PhotoURL:   strings.TrimSpace(input.PhotoURL),
		EnteredDay: input.EnteredDay,
		EvictedDay: input.EvictedDay,
	}
}

func getSeason(ctx context.Context, repo season.Repository, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}
