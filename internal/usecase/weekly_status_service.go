package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/domain/weeklystatus"
)

type WeeklyStatus struct {
	SeasonID   string
	Week       int
	Configured bool
	Cards      []weeklystatus.CardView
}

type WeeklyStatusService struct {
	seasonRepo      season.Repository
	contestantRepo  contestant.Repository
	competitionRepo competition.Repository
	publisher       live.Publisher
}

func NewWeeklyStatusService(
	seasonRepo season.Repository,
	contestantRepo contestant.Repository,
	competitionRepo competition.Repository,
	publisher live.Publisher,
) *WeeklyStatusService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &WeeklyStatusService{
		seasonRepo:      seasonRepo,
		contestantRepo:  contestantRepo,
		competitionRepo: competitionRepo,
		publisher:       publisher,
	}
}

// Get projects the status board for week; a week below 1 means the current week.
func (s *WeeklyStatusService) Get(ctx context.Context, seasonID string, week int) (WeeklyStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyStatusService.Get")
	defer span.End()

	item, err := getSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return WeeklyStatus{}, err
	}
	if week < 1 {
		week = item.CurrentWeek
	}

	events, err := s.competitionRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return WeeklyStatus{}, fmt.Errorf("list competitions: %w", err)
	}
	contestants, err := s.contestantRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return WeeklyStatus{}, fmt.Errorf("list contestants: %w", err)
	}

	_, configured := item.CardsForWeek(week)
	cards := weeklystatus.CardsForWeek(item, week)
	return WeeklyStatus{
		SeasonID:   item.ID,
		Week:       week,
		Configured: configured,
		Cards:      weeklystatus.Project(cards, week, events, contestants),
	}, nil
}

// SaveCards replaces the card layout of one week. An empty list restores the defaults.
func (s *WeeklyStatusService) SaveCards(ctx context.Context, seasonID string, week int, cards []season.StatusCard) (WeeklyStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyStatusService.SaveCards")
	defer span.End()

	if week < 1 {
		return WeeklyStatus{}, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	item, err := getSeason(ctx, s.seasonRepo, seasonID)
	if err != nil {
		return WeeklyStatus{}, err
	}

	seen := make(map[string]struct{}, len(cards))
	normalized := make([]season.StatusCard, 0, len(cards))
	for _, c := range cards {
		c.ID = strings.TrimSpace(c.ID)
		c.Title = strings.TrimSpace(c.Title)
		c.RuleCode = strings.TrimSpace(c.RuleCode)
		if err := c.Validate(); err != nil {
			return WeeklyStatus{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[c.ID]; ok {
			return WeeklyStatus{}, fmt.Errorf("%w: status card %s listed twice", ErrInvalidInput, c.ID)
		}
		seen[c.ID] = struct{}{}
		normalized = append(normalized, c)
	}

	if err := s.seasonRepo.SaveWeeklyStatusCards(ctx, item.ID, season.WeekKey(week), normalized); err != nil {
		return WeeklyStatus{}, fmt.Errorf("save weekly status cards: %w", err)
	}

	publishBestEffort(ctx, s.publisher, live.Event{Kind: live.KindCompetitionChanged, SeasonID: item.ID, At: time.Now().UTC()})
	return s.Get(ctx, item.ID, week)
}
