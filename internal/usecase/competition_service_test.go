package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
)

type competitionFixture struct {
	service      *CompetitionService
	contestants  *stubContestantRepository
	competitions *stubCompetitionRepository
	recalc       *recordingRecalculator
	publisher    *recordingPublisher
}

func newCompetitionFixture() competitionFixture {
	f := competitionFixture{
		contestants: &stubContestantRepository{items: []contestant.Contestant{
			{ID: "angela", SeasonID: "bb27", FirstName: "Angela", LastName: "Murray", Status: contestant.StatusActive, EnteredDay: 1},
			{ID: "zach", SeasonID: "bb27", FirstName: "Zach", LastName: "Cornell", Status: contestant.StatusActive, EnteredDay: 1},
			{ID: "stranger", SeasonID: "bb26", FirstName: "Old", LastName: "Timer", Status: contestant.StatusActive},
		}},
		competitions: &stubCompetitionRepository{},
		recalc:       &recordingRecalculator{},
		publisher:    &recordingPublisher{},
	}
	seasons := &stubSeasonRepository{items: map[string]season.Season{
		"bb27": {ID: "bb27", Name: "Season 27", CurrentWeek: 1},
	}}
	f.service = NewCompetitionService(seasons, f.contestants, f.competitions, f.recalc, &sequenceIDGenerator{prefix: "evt"}, f.publisher, nil)
	return f
}

func TestCompetitionService_Record(t *testing.T) {
	t.Parallel()

	t.Run("stores event and recalculates", func(t *testing.T) {
		f := newCompetitionFixture()

		got, err := f.service.Record(context.Background(), CompetitionInput{
			SeasonID: "bb27",
			Week:     1,
			Type:     "hoh",
			WinnerID: "angela",
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if got.Type != competition.TypeHOH || got.ID != "evt-1" {
			t.Fatalf("unexpected event: %+v", got)
		}
		if len(f.recalc.seasons) != 1 || f.recalc.seasons[0] != "bb27" {
			t.Fatalf("expected recalculation of bb27, got %v", f.recalc.seasons)
		}
		if kinds := f.publisher.kinds(); len(kinds) != 1 || kinds[0] != live.KindCompetitionChanged {
			t.Fatalf("unexpected events: %v", kinds)
		}
	})

	t.Run("rejects missing winner", func(t *testing.T) {
		f := newCompetitionFixture()

		_, err := f.service.Record(context.Background(), CompetitionInput{SeasonID: "bb27", Week: 1, Type: "VETO"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(f.competitions.items) != 0 {
			t.Fatalf("invalid event must not be stored")
		}
	})

	t.Run("rejects contestant from another season", func(t *testing.T) {
		f := newCompetitionFixture()

		_, err := f.service.Record(context.Background(), CompetitionInput{
			SeasonID: "bb27",
			Week:     1,
			Type:     "NOMINATIONS",
			Nominees: []string{"zach", "stranger"},
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("eviction with day marks contestant evicted", func(t *testing.T) {
		f := newCompetitionFixture()
		day := 9

		_, err := f.service.Record(context.Background(), CompetitionInput{
			SeasonID:   "bb27",
			Week:       2,
			Type:       "EVICTION",
			EvictedID:  "zach",
			EvictedDay: &day,
		})
		if err != nil {
			t.Fatalf("record eviction: %v", err)
		}

		zach, _, _ := f.contestants.GetByID(context.Background(), "bb27", "zach")
		if zach.Status != contestant.StatusEvicted || zach.EvictedDay == nil || *zach.EvictedDay != 9 {
			t.Fatalf("unexpected contestant after eviction: %+v", zach)
		}
		if week := zach.EvictionWeek(); week == nil || *week != 2 {
			t.Fatalf("unexpected eviction week: %v", week)
		}
	})

	t.Run("eviction before entered day writes nothing", func(t *testing.T) {
		f := newCompetitionFixture()
		day := 0

		_, err := f.service.Record(context.Background(), CompetitionInput{
			SeasonID:   "bb27",
			Week:       1,
			Type:       "EVICTION",
			EvictedID:  "angela",
			EvictedDay: &day,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(f.competitions.items) != 0 {
			t.Fatalf("rejected eviction must not be stored, got %+v", f.competitions.items)
		}
		angela, _, _ := f.contestants.GetByID(context.Background(), "bb27", "angela")
		if angela.Status != contestant.StatusActive || angela.EvictedDay != nil {
			t.Fatalf("contestant must be untouched, got %+v", angela)
		}
		if len(f.recalc.seasons) != 0 || len(f.publisher.kinds()) != 0 {
			t.Fatalf("expected no recalculation or publish, got %v %v", f.recalc.seasons, f.publisher.kinds())
		}
	})

	t.Run("evicted day only applies to evictions", func(t *testing.T) {
		f := newCompetitionFixture()
		day := 3

		_, err := f.service.Record(context.Background(), CompetitionInput{
			SeasonID:   "bb27",
			Week:       1,
			Type:       "HOH",
			WinnerID:   "angela",
			EvictedDay: &day,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCompetitionService_DeleteEvictionRestoresContestant(t *testing.T) {
	t.Parallel()

	f := newCompetitionFixture()
	day := 9
	event, err := f.service.Record(context.Background(), CompetitionInput{
		SeasonID:   "bb27",
		Week:       2,
		Type:       "EVICTION",
		EvictedID:  "zach",
		EvictedDay: &day,
	})
	if err != nil {
		t.Fatalf("record eviction: %v", err)
	}

	if err := f.service.Delete(context.Background(), "bb27", event.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	zach, _, _ := f.contestants.GetByID(context.Background(), "bb27", "zach")
	if zach.Status != contestant.StatusActive || zach.EvictedDay != nil {
		t.Fatalf("expected zach back in the house, got %+v", zach)
	}

	err = f.service.Delete(context.Background(), "bb27", event.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCompetitionService_ListByWeek(t *testing.T) {
	t.Parallel()

	f := newCompetitionFixture()
	for _, in := range []CompetitionInput{
		{SeasonID: "bb27", Week: 1, Type: "HOH", WinnerID: "angela"},
		{SeasonID: "bb27", Week: 2, Type: "HOH", WinnerID: "zach"},
	} {
		if _, err := f.service.Record(context.Background(), in); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	week := 2
	got, err := f.service.List(context.Background(), "bb27", &week)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].WinnerID != "zach" {
		t.Fatalf("unexpected week 2 events: %+v", got)
	}

	all, err := f.service.List(context.Background(), "bb27", nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
}
