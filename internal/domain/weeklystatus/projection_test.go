package weeklystatus

import (
	"testing"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
)

func TestDefaultCards(t *testing.T) {
	cards := DefaultCards()
	if len(cards) != 6 {
		t.Fatalf("expected 6 default cards, got %d", len(cards))
	}
	cards[0].Title = "mutated"
	if DefaultCards()[0].Title == "mutated" {
		t.Fatalf("DefaultCards must return a copy")
	}
}

func TestProject(t *testing.T) {
	contestants := []contestant.Contestant{
		{ID: "c1", FirstName: "Taylor", LastName: "Hale"},
		{ID: "c2", FirstName: "Michael", LastName: "Bruner", Nickname: "Mike"},
		{ID: "c3", FirstName: "Brittany", LastName: "Hoopes"},
	}
	events := []competition.Competition{
		{ID: "hoh-1", Week: 1, Type: competition.TypeHOH, WinnerID: "c3"},
		{ID: "hoh-2", Week: 2, Type: competition.TypeHOH, WinnerID: "c1"},
		{ID: "noms-2", Week: 2, Type: competition.TypeNominations, Nominees: []string{"c2", "ghost"}},
		{ID: "veto-2", Week: 2, Type: competition.TypeVeto, WinnerID: "c2", UsedOnID: "c2"},
	}

	views := Project(DefaultCards(), 2, events, contestants)
	byID := make(map[string]CardView, len(views))
	for _, v := range views {
		byID[v.Card.ID] = v
	}

	if v := byID["hoh"]; !v.Resolved || v.CompetitionID != "hoh-2" || v.Contestants[0].Name != "Taylor Hale" {
		t.Fatalf("unexpected hoh card: %+v", v)
	}
	if v := byID["nominations"]; len(v.Contestants) != 2 || v.Contestants[0].Name != "Mike" || v.Contestants[1].Name != "ghost" {
		t.Fatalf("unexpected nominations card: %+v", v)
	}
	if v := byID["veto-used-on"]; !v.Resolved || v.Contestants[0].ID != "c2" {
		t.Fatalf("unexpected saved-by-veto card: %+v", v)
	}
	if v := byID["replacement"]; v.Resolved || v.Placeholder != Placeholder {
		t.Fatalf("empty replacement should render TBD: %+v", v)
	}
	if v := byID["eviction"]; v.Resolved || v.Placeholder != Placeholder {
		t.Fatalf("missing eviction should render TBD: %+v", v)
	}
}

func TestProject_UnknownActionRendersTBD(t *testing.T) {
	cards := []season.StatusCard{{ID: "odd", Title: "Odd", RuleCode: "HOH", Action: "setSomething"}}
	events := []competition.Competition{{ID: "h", Week: 1, Type: competition.TypeHOH, WinnerID: "c1"}}

	views := Project(cards, 1, events, nil)
	if len(views) != 1 || views[0].Resolved {
		t.Fatalf("unknown action should not resolve: %+v", views)
	}
}

func TestCardsForWeek(t *testing.T) {
	custom := []season.StatusCard{{ID: "only", Title: "Only", RuleCode: "HOH", Action: season.ActionSetWinner}}
	s := season.Season{WeeklyStatusDisplay: map[string][]season.StatusCard{season.WeekKey(3): custom}}

	if got := CardsForWeek(s, 3); len(got) != 1 || got[0].ID != "only" {
		t.Fatalf("expected configured cards, got %+v", got)
	}
	if got := CardsForWeek(s, 4); len(got) != len(DefaultCards()) {
		t.Fatalf("expected default cards for unconfigured week, got %d", len(got))
	}
}

func TestParseCards_RejectsUnknownAction(t *testing.T) {
	raw := []byte("cards:\n  - id: x\n    title: X\n    ruleCode: HOH\n    action: explode\n")
	if _, err := ParseCards(raw); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
