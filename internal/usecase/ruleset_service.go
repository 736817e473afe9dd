package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

type seasonRecalculator interface {
	RecalculateSeason(ctx context.Context, seasonID string) (RecalculateResult, error)
}

type RuleSetService struct {
	ruleSetRepo  scoring.RuleSetRepository
	leagueRepo   league.Repository
	recalculator seasonRecalculator
	publisher    live.Publisher
	logger       *logging.Logger

	mu sync.Mutex
}

func NewRuleSetService(
	ruleSetRepo scoring.RuleSetRepository,
	leagueRepo league.Repository,
	recalculator seasonRecalculator,
	publisher live.Publisher,
	logger *logging.Logger,
) *RuleSetService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RuleSetService{
		ruleSetRepo:  ruleSetRepo,
		leagueRepo:   leagueRepo,
		recalculator: recalculator,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *RuleSetService) GetRuleSet(ctx context.Context, ruleSetID string) (scoring.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RuleSetService.GetRuleSet")
	defer span.End()

	return s.getRuleSet(ctx, ruleSetID)
}

// UpsertRule stores rule under originalCode, which may differ from rule.Code
// when the code is being renamed. An empty originalCode adds a new rule.
func (s *RuleSetService) UpsertRule(ctx context.Context, ruleSetID, originalCode string, rule scoring.Rule) (scoring.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RuleSetService.UpsertRule")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.getRuleSet(ctx, ruleSetID)
	if err != nil {
		return scoring.RuleSet{}, err
	}

	updated, err := set.UpsertRule(strings.TrimSpace(originalCode), rule)
	if err != nil {
		if errors.Is(err, scoring.ErrDuplicateRuleCode) {
			return scoring.RuleSet{}, err
		}
		return scoring.RuleSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ruleSetRepo.Save(ctx, updated); err != nil {
		return scoring.RuleSet{}, fmt.Errorf("save rule set: %w", err)
	}

	s.afterChange(ctx, updated.ID)
	return updated, nil
}

func (s *RuleSetService) DeleteRule(ctx context.Context, ruleSetID, code string) (scoring.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RuleSetService.DeleteRule")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.getRuleSet(ctx, ruleSetID)
	if err != nil {
		return scoring.RuleSet{}, err
	}
	updated, err := set.DeleteRule(strings.TrimSpace(code))
	if err != nil {
		return scoring.RuleSet{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if err := s.ruleSetRepo.Save(ctx, updated); err != nil {
		return scoring.RuleSet{}, fmt.Errorf("save rule set: %w", err)
	}

	s.afterChange(ctx, updated.ID)
	return updated, nil
}

func (s *RuleSetService) getRuleSet(ctx context.Context, ruleSetID string) (scoring.RuleSet, error) {
	ruleSetID = strings.TrimSpace(ruleSetID)
	if ruleSetID == "" {
		return scoring.RuleSet{}, fmt.Errorf("%w: rule set id is required", ErrInvalidInput)
	}
	set, exists, err := s.ruleSetRepo.GetByID(ctx, ruleSetID)
	if err != nil {
		return scoring.RuleSet{}, fmt.Errorf("get rule set: %w", err)
	}
	if !exists {
		return scoring.RuleSet{}, fmt.Errorf("%w: rule_set=%s", ErrNotFound, ruleSetID)
	}
	return set, nil
}

// afterChange recalculates every season with a league on this rule set.
func (s *RuleSetService) afterChange(ctx context.Context, ruleSetID string) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list leagues after rule change failed", "rule_set_id", ruleSetID, "error", err)
		return
	}

	seasons := make(map[string]struct{})
	now := time.Now().UTC()
	for _, lg := range leagues {
		if lg.RuleSetID != ruleSetID {
			continue
		}
		publishBestEffort(ctx, s.publisher, live.Event{Kind: live.KindRulesChanged, LeagueID: lg.ID, At: now})
		seasons[lg.SeasonID] = struct{}{}
	}

	if s.recalculator == nil {
		return
	}
	for seasonID := range seasons {
		if _, err := s.recalculator.RecalculateSeason(ctx, seasonID); err != nil {
			s.logger.WarnContext(ctx, "recalculate after rule change failed", "season_id", seasonID, "error", err)
		}
	}
}
