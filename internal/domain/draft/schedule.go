package draft

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

// Slot is one position in the draft order.
type Slot struct {
	Pick  int
	Round int
	Team  team.Team
}

// ComputeSnakeDraftOrder lays out a snake draft for contestantCount picks.
// Teams are ranked by DraftOrder; ties keep their input order. Odd rounds
// (0-indexed) run in reverse and the last round stops when contestants run out.
func ComputeSnakeDraftOrder(teams []team.Team, contestantCount int) []Slot {
	n := len(teams)
	if n == 0 || contestantCount <= 0 {
		return []Slot{}
	}

	base := append([]team.Team(nil), teams...)
	slices.SortStableFunc(base, func(a, b team.Team) int {
		return cmp.Compare(a.DraftOrder, b.DraftOrder)
	})

	rounds := (contestantCount + n - 1) / n
	out := make([]Slot, 0, contestantCount)
	for r := 0; r < rounds; r++ {
		for i := 0; i < n; i++ {
			pick := r*n + i + 1
			if pick > contestantCount {
				break
			}
			idx := i
			if r%2 == 1 {
				idx = n - 1 - i
			}
			out = append(out, Slot{
				Pick:  pick,
				Round: r + 1,
				Team:  base[idx],
			})
		}
	}

	return out
}

// PicksByTeam groups pick numbers by team id, ascending.
func PicksByTeam(slots []Slot) map[string][]int {
	out := make(map[string][]int)
	for _, s := range slots {
		out[s.Team.ID] = append(out[s.Team.ID], s.Pick)
	}
	return out
}

// NextPick returns the slot after madeCount picks, or false once the draft is complete.
func NextPick(slots []Slot, madeCount int) (Slot, bool) {
	if madeCount < 0 || madeCount >= len(slots) {
		return Slot{}, false
	}
	return slots[madeCount], true
}
