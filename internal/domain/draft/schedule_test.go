package draft

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

func fourTeams() []team.Team {
	// Deliberately out of draft order.
	return []team.Team{
		{ID: "t3", Name: "Team 3", DraftOrder: 3},
		{ID: "t1", Name: "Team 1", DraftOrder: 1},
		{ID: "t4", Name: "Team 4", DraftOrder: 4},
		{ID: "t2", Name: "Team 2", DraftOrder: 2},
	}
}

func teamIDs(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Team.ID)
	}
	return out
}

func TestComputeSnakeDraftOrder_FourTeamsTenContestants(t *testing.T) {
	slots := ComputeSnakeDraftOrder(fourTeams(), 10)

	want := []string{"t1", "t2", "t3", "t4", "t4", "t3", "t2", "t1", "t1", "t2"}
	if got := teamIDs(slots); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order:\nwant: %v\ngot:  %v", want, got)
	}
	for i, s := range slots {
		if s.Pick != i+1 {
			t.Fatalf("slot %d has pick %d", i, s.Pick)
		}
		if s.Round != RoundForPick(s.Pick, 4) {
			t.Fatalf("pick %d has round %d", s.Pick, s.Round)
		}
	}
	if slots[9].Round != 3 {
		t.Fatalf("expected last pick in round 3, got %d", slots[9].Round)
	}
}

func TestComputeSnakeDraftOrder_EmptyInputs(t *testing.T) {
	if got := ComputeSnakeDraftOrder(nil, 10); len(got) != 0 {
		t.Fatalf("expected empty order for no teams, got %d", len(got))
	}
	if got := ComputeSnakeDraftOrder(fourTeams(), 0); len(got) != 0 {
		t.Fatalf("expected empty order for zero contestants, got %d", len(got))
	}
	if got := ComputeSnakeDraftOrder(fourTeams(), -3); len(got) != 0 {
		t.Fatalf("expected empty order for negative contestants, got %d", len(got))
	}
}

func TestComputeSnakeDraftOrder_Properties(t *testing.T) {
	for n := 1; n <= 6; n++ {
		teams := make([]team.Team, 0, n)
		for i := n; i >= 1; i-- {
			teams = append(teams, team.Team{ID: string(rune('a' + i - 1)), DraftOrder: i})
		}

		for count := 0; count <= 25; count++ {
			slots := ComputeSnakeDraftOrder(teams, count)

			if again := ComputeSnakeDraftOrder(teams, count); !reflect.DeepEqual(slots, again) {
				t.Fatalf("n=%d count=%d: output is not deterministic", n, count)
			}

			if len(slots) != count {
				t.Fatalf("n=%d count=%d: expected %d slots, got %d", n, count, count, len(slots))
			}
			for i, s := range slots {
				if s.Pick != i+1 {
					t.Fatalf("n=%d count=%d: gap or duplicate at %d (pick %d)", n, count, i, s.Pick)
				}
			}

			if n < 2 {
				continue
			}
			for r := 0; r*n < count; r++ {
				first := slots[r*n].Team.DraftOrder
				want := 1
				if r%2 == 1 {
					want = n
				}
				if first != want {
					t.Fatalf("n=%d count=%d round=%d: first pick went to draft order %d, want %d", n, count, r, first, want)
				}
			}
		}
	}
}

func TestComputeSnakeDraftOrder_TiesKeepInputOrder(t *testing.T) {
	teams := []team.Team{
		{ID: "late", DraftOrder: 2},
		{ID: "x", DraftOrder: 1},
		{ID: "y", DraftOrder: 1},
	}
	got := teamIDs(ComputeSnakeDraftOrder(teams, 3))
	want := []string{"x", "y", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tie order: want %v got %v", want, got)
	}
}

func TestPicksByTeam(t *testing.T) {
	byTeam := PicksByTeam(ComputeSnakeDraftOrder(fourTeams(), 10))

	want := map[string][]int{
		"t1": {1, 8, 9},
		"t2": {2, 7, 10},
		"t3": {3, 6},
		"t4": {4, 5},
	}
	if !reflect.DeepEqual(byTeam, want) {
		t.Fatalf("unexpected picks by team:\nwant: %v\ngot:  %v", want, byTeam)
	}
}

func TestNextPick(t *testing.T) {
	slots := ComputeSnakeDraftOrder(fourTeams(), 5)

	next, ok := NextPick(slots, 4)
	if !ok || next.Pick != 5 || next.Team.ID != "t4" {
		t.Fatalf("unexpected next pick: %+v ok=%v", next, ok)
	}
	if _, ok := NextPick(slots, 5); ok {
		t.Fatalf("expected draft to be complete")
	}
}
