package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
)

func newRuleSetFixture() (*RuleSetService, *stubRuleSetRepository, *recordingRecalculator, *recordingPublisher) {
	repo := &stubRuleSetRepository{sets: map[string]scoring.RuleSet{
		"standard": {ID: "standard", Name: "Standard", Rules: []scoring.Rule{
			{Code: "HOH", Label: "HOH win", Points: 10},
			{Code: "VETO", Label: "Veto win", Points: 5},
		}},
	}}
	leagues := &stubLeagueRepository{items: []league.League{
		{ID: "office", SeasonID: "bb27", RuleSetID: "standard"},
		{ID: "family", SeasonID: "bb27", RuleSetID: "standard"},
		{ID: "custom", SeasonID: "bb27", RuleSetID: "custom"},
	}}
	recalc := &recordingRecalculator{}
	publisher := &recordingPublisher{}
	return NewRuleSetService(repo, leagues, recalc, publisher, nil), repo, recalc, publisher
}

func TestRuleSetService_UpsertRule(t *testing.T) {
	t.Parallel()

	t.Run("renames a rule", func(t *testing.T) {
		service, repo, recalc, publisher := newRuleSetFixture()

		got, err := service.UpsertRule(context.Background(), "standard", "VETO", scoring.Rule{Code: "POV", Label: "Power of veto", Points: 6})
		if err != nil {
			t.Fatalf("upsert rule: %v", err)
		}
		if _, ok := got.Find("VETO"); ok {
			t.Fatalf("old code should be gone")
		}
		if r, ok := repo.sets["standard"].Find("POV"); !ok || r.Points != 6 {
			t.Fatalf("renamed rule not saved: %+v", repo.sets["standard"])
		}
		if len(recalc.seasons) != 1 {
			t.Fatalf("expected one season recalculation, got %v", recalc.seasons)
		}
		if kinds := publisher.kinds(); len(kinds) != 2 {
			t.Fatalf("expected an event per affected league, got %v", kinds)
		}
	})

	t.Run("duplicate code is rejected without a write", func(t *testing.T) {
		service, repo, recalc, _ := newRuleSetFixture()

		_, err := service.UpsertRule(context.Background(), "standard", "VETO", scoring.Rule{Code: "HOH", Label: "Clash", Points: 1})
		if !errors.Is(err, scoring.ErrDuplicateRuleCode) {
			t.Fatalf("expected ErrDuplicateRuleCode, got %v", err)
		}
		if repo.saves != 0 {
			t.Fatalf("rule set must not be saved on conflict")
		}
		if r, _ := repo.sets["standard"].Find("VETO"); r.Points != 5 {
			t.Fatalf("original rule changed: %+v", r)
		}
		if len(recalc.seasons) != 0 {
			t.Fatalf("no recalculation expected")
		}
	})

	t.Run("missing label is invalid input", func(t *testing.T) {
		service, _, _, _ := newRuleSetFixture()

		_, err := service.UpsertRule(context.Background(), "standard", "", scoring.Rule{Code: "EVICTION"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRuleSetService_DeleteRule(t *testing.T) {
	t.Parallel()

	service, repo, _, _ := newRuleSetFixture()

	if _, err := service.DeleteRule(context.Background(), "standard", "HOH"); err != nil {
		t.Fatalf("delete rule: %v", err)
	}
	if _, ok := repo.sets["standard"].Find("HOH"); ok {
		t.Fatalf("rule should be removed")
	}

	_, err := service.DeleteRule(context.Background(), "standard", "HOH")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
