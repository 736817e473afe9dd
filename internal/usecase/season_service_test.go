package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
)

func newSeasonFixture() (*SeasonService, *stubContestantRepository, *recordingPublisher) {
	seasons := &stubSeasonRepository{items: map[string]season.Season{
		"bb27": {ID: "bb27", Name: "Season 27", Number: 27, CurrentWeek: 1},
	}}
	contestants := &stubContestantRepository{items: []contestant.Contestant{
		{ID: "angela", SeasonID: "bb27", FirstName: "Angela", LastName: "Murray", Status: contestant.StatusActive, EnteredDay: 1},
	}}
	publisher := &recordingPublisher{}
	return NewSeasonService(seasons, contestants, &sequenceIDGenerator{prefix: "hg"}, publisher), contestants, publisher
}

func TestSeasonService_SetCurrentWeek(t *testing.T) {
	t.Parallel()

	t.Run("updates week and publishes", func(t *testing.T) {
		svc, _, publisher := newSeasonFixture()

		got, err := svc.SetCurrentWeek(context.Background(), "bb27", 4)
		if err != nil {
			t.Fatalf("set current week: %v", err)
		}
		if got.CurrentWeek != 4 {
			t.Fatalf("expected week 4, got %d", got.CurrentWeek)
		}
		stored, err := svc.GetSeason(context.Background(), "bb27")
		if err != nil || stored.CurrentWeek != 4 {
			t.Fatalf("expected stored week 4, got %+v err=%v", stored, err)
		}
		if kinds := publisher.kinds(); !slices.Equal(kinds, []live.Kind{live.KindScoresChanged}) {
			t.Fatalf("unexpected published kinds: %v", kinds)
		}
	})

	t.Run("rejects week below one", func(t *testing.T) {
		svc, _, _ := newSeasonFixture()
		if _, err := svc.SetCurrentWeek(context.Background(), "bb27", 0); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown season", func(t *testing.T) {
		svc, _, _ := newSeasonFixture()
		if _, err := svc.SetCurrentWeek(context.Background(), "bb99", 2); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSeasonService_CreateContestant(t *testing.T) {
	t.Parallel()

	t.Run("defaults status to active", func(t *testing.T) {
		svc, repo, publisher := newSeasonFixture()

		got, err := svc.CreateContestant(context.Background(), ContestantInput{
			SeasonID:   "bb27",
			FirstName:  "  Zach ",
			LastName:   "Cornell",
			EnteredDay: 1,
		})
		if err != nil {
			t.Fatalf("create contestant: %v", err)
		}
		if got.ID != "hg-1" || got.FirstName != "Zach" || got.Status != contestant.StatusActive {
			t.Fatalf("unexpected contestant: %+v", got)
		}
		if _, ok, _ := repo.GetByID(context.Background(), "bb27", "hg-1"); !ok {
			t.Fatalf("expected contestant to be stored")
		}
		if kinds := publisher.kinds(); !slices.Equal(kinds, []live.Kind{live.KindRosterChanged}) {
			t.Fatalf("unexpected published kinds: %v", kinds)
		}
	})

	t.Run("evicted requires evicted day", func(t *testing.T) {
		svc, _, publisher := newSeasonFixture()

		_, err := svc.CreateContestant(context.Background(), ContestantInput{
			SeasonID:  "bb27",
			FirstName: "Rachel",
			LastName:  "Reilly",
			Status:    "Evicted",
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(publisher.kinds()) != 0 {
			t.Fatalf("expected no publish on invalid input")
		}
	})
}

func TestSeasonService_UpdateContestant(t *testing.T) {
	t.Parallel()

	t.Run("marks contestant evicted", func(t *testing.T) {
		svc, repo, _ := newSeasonFixture()

		got, err := svc.UpdateContestant(context.Background(), ContestantInput{
			SeasonID:     "bb27",
			ContestantID: "angela",
			FirstName:    "Angela",
			LastName:     "Murray",
			Status:       "evicted",
			EnteredDay:   1,
			EvictedDay:   intPtr(15),
		})
		if err != nil {
			t.Fatalf("update contestant: %v", err)
		}
		if got.Status != contestant.StatusEvicted || got.EvictionWeek() == nil || *got.EvictionWeek() != 3 {
			t.Fatalf("unexpected contestant: %+v", got)
		}
		stored, _, _ := repo.GetByID(context.Background(), "bb27", "angela")
		if stored.Status != contestant.StatusEvicted {
			t.Fatalf("expected stored status evicted, got %s", stored.Status)
		}
	})

	t.Run("unknown contestant", func(t *testing.T) {
		svc, _, _ := newSeasonFixture()
		_, err := svc.UpdateContestant(context.Background(), ContestantInput{
			SeasonID:     "bb27",
			ContestantID: "ghost",
			FirstName:    "No",
			LastName:     "One",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing contestant id", func(t *testing.T) {
		svc, _, _ := newSeasonFixture()
		_, err := svc.UpdateContestant(context.Background(), ContestantInput{SeasonID: "bb27"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
