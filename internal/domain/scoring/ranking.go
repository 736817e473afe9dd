package scoring

import (
	"cmp"
	"slices"
	"strings"

	"github.com/riskibarqy/eviction-league/internal/domain/competition"
)

const (
	tierHOH = iota
	tierVeto
	tierNominee
	tierActive
	tierEliminated
)

// SortContestantStats orders stats in place for display in currentWeek:
// active before eliminated, latest eviction first among the eliminated, and
// the week's HOH winner, veto winner and nominees ahead of the other active
// contestants. Remaining ties sort by case-insensitive full name.
func SortContestantStats(stats []ContestantStats, competitions []competition.Competition, currentWeek int) {
	hoh := make(map[string]struct{})
	veto := make(map[string]struct{})
	nominees := make(map[string]struct{})
	for _, e := range competition.InWeek(competitions, currentWeek) {
		switch e.Type {
		case competition.TypeHOH:
			if e.WinnerID != "" {
				hoh[e.WinnerID] = struct{}{}
			}
		case competition.TypeVeto:
			if e.WinnerID != "" {
				veto[e.WinnerID] = struct{}{}
			}
		}
		for _, id := range e.Nominees {
			nominees[id] = struct{}{}
		}
	}

	tier := func(s ContestantStats) int {
		id := s.Contestant.ID
		switch {
		case !s.Contestant.IsActive():
			return tierEliminated
		case has(hoh, id):
			return tierHOH
		case has(veto, id):
			return tierVeto
		case has(nominees, id):
			return tierNominee
		default:
			return tierActive
		}
	}

	slices.SortStableFunc(stats, func(a, b ContestantStats) int {
		ta, tb := tier(a), tier(b)
		if c := cmp.Compare(ta, tb); c != 0 {
			return c
		}
		if ta == tierEliminated {
			if c := cmp.Compare(evictedDay(b), evictedDay(a)); c != 0 {
				return c
			}
		}
		return cmp.Compare(
			strings.ToLower(a.Contestant.FullName()),
			strings.ToLower(b.Contestant.FullName()),
		)
	})
}

func has(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}

func evictedDay(s ContestantStats) int {
	if s.Contestant.EvictedDay == nil {
		return 0
	}
	return *s.Contestant.EvictedDay
}
