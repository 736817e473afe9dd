package scoring

import (
	"testing"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

func intPtr(v int) *int { return &v }

func houseguests() []contestant.Contestant {
	return []contestant.Contestant{
		{ID: "c1", FirstName: "Taylor", LastName: "Hale", Status: contestant.StatusActive},
		{ID: "c2", FirstName: "Monte", LastName: "Taylor", Status: contestant.StatusActive},
		{ID: "c3", FirstName: "Alyssa", LastName: "Snider", Status: contestant.StatusEvicted, EvictedDay: intPtr(9)},
	}
}

func byID(stats []ContestantStats) map[string]ContestantStats {
	out := make(map[string]ContestantStats, len(stats))
	for _, s := range stats {
		out[s.Contestant.ID] = s
	}
	return out
}

func TestComputeContestantStats_WinnerRule(t *testing.T) {
	stats := byID(ComputeContestantStats(
		houseguests(),
		[]competition.Competition{{ID: "e1", Week: 1, Type: "HOH_WIN", WinnerID: "c1"}},
		[]Rule{{Code: "HOH_WIN", Label: "HOH win", Points: 10}},
		nil,
		nil,
	))

	if stats["c1"].TotalPoints != 10 || stats["c1"].TotalWins != 1 {
		t.Fatalf("unexpected c1 stats: %+v", stats["c1"])
	}
	if stats["c2"].TotalPoints != 0 || stats["c2"].TotalWins != 0 {
		t.Fatalf("unexpected c2 stats: %+v", stats["c2"])
	}
}

func TestComputeContestantStats_NomineeRule(t *testing.T) {
	stats := byID(ComputeContestantStats(
		houseguests(),
		[]competition.Competition{{ID: "e1", Week: 1, Type: "NOMINATED", Nominees: []string{"c1", "c2"}}},
		[]Rule{{Code: "NOMINATED", Label: "Nominated", Points: -2}},
		nil,
		nil,
	))

	for _, id := range []string{"c1", "c2"} {
		if stats[id].TotalPoints != -2 || stats[id].TotalNoms != 1 {
			t.Fatalf("unexpected %s stats: %+v", id, stats[id])
		}
	}
	if stats["c3"].TotalNoms != 0 {
		t.Fatalf("c3 was not nominated: %+v", stats["c3"])
	}
}

func TestComputeContestantStats_RolesAreNotExclusive(t *testing.T) {
	stats := byID(ComputeContestantStats(
		houseguests(),
		[]competition.Competition{{ID: "e1", Week: 1, Type: competition.TypeVeto, WinnerID: "c1", Nominees: []string{"c1"}}},
		[]Rule{{Code: "VETO", Label: "Veto", Points: 5}},
		nil,
		nil,
	))

	got := stats["c1"]
	if got.TotalPoints != 10 {
		t.Fatalf("expected winner and nominee points to add up to 10, got %d", got.TotalPoints)
	}
	if got.TotalWins != 1 || got.TotalNoms != 0 {
		t.Fatalf("unexpected counters: wins=%d noms=%d", got.TotalWins, got.TotalNoms)
	}
}

func TestComputeContestantStats_EvictionAddsPointsWithoutCounters(t *testing.T) {
	stats := byID(ComputeContestantStats(
		houseguests(),
		[]competition.Competition{{ID: "e1", Week: 2, Type: competition.TypeEviction, EvictedID: "c3"}},
		[]Rule{{Code: "EVICTION", Label: "Evicted", Points: -5}},
		nil,
		nil,
	))

	got := stats["c3"]
	if got.TotalPoints != -5 || got.TotalWins != 0 || got.TotalNoms != 0 {
		t.Fatalf("unexpected evictee stats: %+v", got)
	}
	if got.EvictionWeek == nil || *got.EvictionWeek != 2 {
		t.Fatalf("expected eviction week 2, got %v", got.EvictionWeek)
	}
}

func TestComputeContestantStats_NoRulesScoresNothing(t *testing.T) {
	events := []competition.Competition{
		{ID: "e1", Week: 1, Type: competition.TypeHOH, WinnerID: "c1"},
		{ID: "e2", Week: 1, Type: competition.TypeNominations, Nominees: []string{"c2", "c3"}},
		{ID: "e3", Week: 1, Type: competition.TypeEviction, EvictedID: "c3"},
	}

	for _, s := range ComputeContestantStats(houseguests(), events, nil, nil, nil) {
		if s.TotalPoints != 0 || s.TotalWins != 0 || s.TotalNoms != 0 {
			t.Fatalf("expected neutral stats without rules, got %+v", s)
		}
	}
}

func TestComputeContestantStats_EventWithoutRuleScoresNothing(t *testing.T) {
	events := []competition.Competition{
		{ID: "e1", Week: 1, Type: competition.TypeHOH, WinnerID: "c2"},
		{ID: "e2", Week: 1, Type: competition.TypeSpecialEvent, WinnerID: "c1", Nominees: []string{"c1", "c2"}},
	}
	stats := byID(ComputeContestantStats(
		houseguests(),
		events,
		[]Rule{{Code: "HOH", Label: "HOH", Points: 10}},
		nil,
		nil,
	))

	if got := stats["c1"]; got.TotalPoints != 0 || got.TotalWins != 0 || got.TotalNoms != 0 {
		t.Fatalf("expected special event without a rule to score nothing, got %+v", got)
	}
	if got := stats["c2"]; got.TotalPoints != 10 || got.TotalWins != 1 || got.TotalNoms != 0 {
		t.Fatalf("expected only the HOH win to count for c2, got %+v", got)
	}
}

func TestComputeContestantStats_TeamAssignment(t *testing.T) {
	teams := []team.Team{{ID: "t1", Name: "Backyard Bandits", DraftOrder: 1}}
	picks := []draft.Pick{
		{ID: "p1", TeamID: "t1", ContestantID: "c1", Pick: 1, Round: 1},
		{ID: "p2", TeamID: "ghost-team", ContestantID: "c2", Pick: 2, Round: 1},
		{ID: "p3", TeamID: "t1", ContestantID: "not-in-season", Pick: 3, Round: 2},
	}

	stats := byID(ComputeContestantStats(houseguests(), nil, nil, picks, teams))

	if stats["c1"].TeamID != "t1" || stats["c1"].TeamName != "Backyard Bandits" {
		t.Fatalf("unexpected c1 team: %+v", stats["c1"])
	}
	if stats["c2"].TeamName != UnassignedTeamName || stats["c2"].TeamID != "" {
		t.Fatalf("pick with unknown team should be unassigned: %+v", stats["c2"])
	}
	if stats["c3"].TeamName != UnassignedTeamName {
		t.Fatalf("undrafted contestant should be unassigned: %+v", stats["c3"])
	}
	if len(stats) != 3 {
		t.Fatalf("picks for unknown contestants must not create rows, got %d", len(stats))
	}
}

func TestComputeContestantStats_Empty(t *testing.T) {
	if got := ComputeContestantStats(nil, nil, nil, nil, nil); len(got) != 0 {
		t.Fatalf("expected empty stats, got %d", len(got))
	}
}
