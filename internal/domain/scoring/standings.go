package scoring

import (
	"cmp"
	"slices"
	"strings"

	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

// TeamStanding is a team's total over its drafted contestants.
type TeamStanding struct {
	Team          team.Team
	TotalPoints   int
	ContestantIDs []string
	Rank          int
}

// ComputeTeamStandings sums contestant points per team. Every team appears,
// including ones with no picks; unassigned contestants are left out.
func ComputeTeamStandings(stats []ContestantStats, teams []team.Team) []TeamStanding {
	byID := make(map[string]*TeamStanding, len(teams))
	out := make([]TeamStanding, len(teams))
	for i, t := range teams {
		out[i] = TeamStanding{Team: t, ContestantIDs: []string{}}
		byID[t.ID] = &out[i]
	}

	for _, s := range stats {
		if s.TeamID == "" {
			continue
		}
		st, ok := byID[s.TeamID]
		if !ok {
			continue
		}
		st.TotalPoints += s.TotalPoints
		st.ContestantIDs = append(st.ContestantIDs, s.Contestant.ID)
	}

	slices.SortStableFunc(out, func(a, b TeamStanding) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.Team.Name), strings.ToLower(b.Team.Name))
	})

	for i := range out {
		if i > 0 && out[i].TotalPoints == out[i-1].TotalPoints {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}

	return out
}

// TotalsByTeam flattens standings into team id -> points.
func TotalsByTeam(standings []TeamStanding) map[string]int {
	out := make(map[string]int, len(standings))
	for _, s := range standings {
		out[s.Team.ID] = s.TotalPoints
	}
	return out
}
