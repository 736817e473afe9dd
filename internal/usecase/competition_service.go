package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/platform/id"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

type CompetitionInput struct {
	SeasonID         string
	Week             int
	Type             string
	WinnerID         string
	Nominees         []string
	EvictedID        string
	UsedOnID         string
	ReplacementNomID string
	SpecialEventCode string
	AirDate          time.Time
	// EvictedDay marks the evicted contestant as out of the house when set.
	EvictedDay *int
}

type CompetitionService struct {
	seasonRepo      season.Repository
	contestantRepo  contestant.Repository
	competitionRepo competition.Repository
	recalculator    seasonRecalculator
	idGen           id.Generator
	publisher       live.Publisher
	logger          *logging.Logger
	now             func() time.Time
}

func NewCompetitionService(
	seasonRepo season.Repository,
	contestantRepo contestant.Repository,
	competitionRepo competition.Repository,
	recalculator seasonRecalculator,
	idGen id.Generator,
	publisher live.Publisher,
	logger *logging.Logger,
) *CompetitionService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CompetitionService{
		seasonRepo:      seasonRepo,
		contestantRepo:  contestantRepo,
		competitionRepo: competitionRepo,
		recalculator:    recalculator,
		idGen:           idGen,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

// List returns the season's events, restricted to one week when week is set.
func (s *CompetitionService) List(ctx context.Context, seasonID string, week *int) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.List")
	defer span.End()

	item, err := getSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return nil, err
	}
	events, err := s.competitionRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	if week == nil {
		return events, nil
	}
	if *week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	return competition.InWeek(events, *week), nil
}

func (s *CompetitionService) Record(ctx context.Context, input CompetitionInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Record")
	defer span.End()

	item, err := getSeason(ctx, s.seasonRepo, input.SeasonID)
	if err != nil {
		return competition.Competition{}, err
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("generate competition id: %w", err)
	}
	event := competition.Competition{
		ID:               eventID,
		SeasonID:         item.ID,
		Week:             input.Week,
		Type:             competition.Type(strings.ToUpper(strings.TrimSpace(input.Type))),
		WinnerID:         strings.TrimSpace(input.WinnerID),
		Nominees:         trimAll(input.Nominees),
		EvictedID:        strings.TrimSpace(input.EvictedID),
		UsedOnID:         strings.TrimSpace(input.UsedOnID),
		ReplacementNomID: strings.TrimSpace(input.ReplacementNomID),
		SpecialEventCode: strings.TrimSpace(input.SpecialEventCode),
		AirDate:          input.AirDate,
		CreatedAt:        s.now().UTC(),
	}
	if err := event.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.EvictedDay != nil && event.Type != competition.TypeEviction {
		return competition.Competition{}, fmt.Errorf("%w: evicted day only applies to %s", ErrInvalidInput, competition.TypeEviction)
	}

	contestants, err := s.contestantRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("list contestants: %w", err)
	}
	byID := make(map[string]contestant.Contestant, len(contestants))
	for _, c := range contestants {
		byID[c.ID] = c
	}
	for _, ref := range event.ContestantIDs() {
		if _, ok := byID[ref]; !ok {
			return competition.Competition{}, fmt.Errorf("%w: contestant=%s is not in season=%s", ErrInvalidInput, ref, item.ID)
		}
	}

	// The evictee update is checked before anything is written.
	var evictee *contestant.Contestant
	if event.Type == competition.TypeEviction && input.EvictedDay != nil {
		updated := byID[event.EvictedID]
		day := *input.EvictedDay
		updated.EvictedDay = &day
		if updated.Status == contestant.StatusActive {
			updated.Status = contestant.StatusEvicted
		}
		if err := updated.Validate(); err != nil {
			return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		evictee = &updated
	}

	if err := s.competitionRepo.Create(ctx, event); err != nil {
		return competition.Competition{}, fmt.Errorf("create competition: %w", err)
	}
	if evictee != nil {
		if err := s.contestantRepo.Update(ctx, *evictee); err != nil {
			return competition.Competition{}, fmt.Errorf("mark contestant evicted: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "competition recorded",
		"season_id", event.SeasonID,
		"competition_id", event.ID,
		"type", string(event.Type),
		"week", event.Week,
	)
	s.afterChange(ctx, item.ID)
	return event, nil
}

func (s *CompetitionService) Delete(ctx context.Context, seasonID, competitionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Delete")
	defer span.End()

	item, err := getSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return err
	}
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	event, exists, err := s.competitionRepo.GetByID(ctx, item.ID, competitionID)
	if err != nil {
		return fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	if err := s.competitionRepo.Delete(ctx, item.ID, competitionID); err != nil {
		return fmt.Errorf("delete competition: %w", err)
	}

	if event.Type == competition.TypeEviction {
		if err := s.restoreEvictee(ctx, item.ID, event.EvictedID); err != nil {
			return err
		}
	}

	s.afterChange(ctx, item.ID)
	return nil
}

// restoreEvictee puts an evicted contestant back in the house. Jury members keep their status.
func (s *CompetitionService) restoreEvictee(ctx context.Context, seasonID, contestantID string) error {
	c, exists, err := s.contestantRepo.GetByID(ctx, seasonID, contestantID)
	if err != nil {
		return fmt.Errorf("get contestant: %w", err)
	}
	if !exists || c.Status != contestant.StatusEvicted {
		return nil
	}
	c.Status = contestant.StatusActive
	c.EvictedDay = nil
	if err := s.contestantRepo.Update(ctx, c); err != nil {
		return fmt.Errorf("restore contestant: %w", err)
	}
	return nil
}

func (s *CompetitionService) afterChange(ctx context.Context, seasonID string) {
	if s.recalculator != nil {
		if _, err := s.recalculator.RecalculateSeason(ctx, seasonID); err != nil {
			s.logger.WarnContext(ctx, "recalculate after competition change failed", "season_id", seasonID, "error", err)
		}
	}
	publishBestEffort(ctx, s.publisher, live.Event{Kind: live.KindCompetitionChanged, SeasonID: seasonID, At: s.now().UTC()})
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return slices.Clip(out)
}
