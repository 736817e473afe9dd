package scoring

import (
	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

const UnassignedTeamName = "Unassigned"

// ContestantStats is a contestant with its aggregated score line.
type ContestantStats struct {
	Contestant   contestant.Contestant
	TeamID       string
	TeamName     string
	TotalPoints  int
	TotalWins    int
	TotalNoms    int
	EvictionWeek *int
}

// ComputeContestantStats scores every contestant against the event log.
//
// An event contributes through each role the contestant holds in it (winner,
// nominee, evictee) independently, so a winner who is also listed as a
// nominee collects the rule's points twice. Events whose type has no rule and
// picks pointing at unknown teams contribute nothing.
func ComputeContestantStats(
	contestants []contestant.Contestant,
	competitions []competition.Competition,
	rules []Rule,
	picks []draft.Pick,
	teams []team.Team,
) []ContestantStats {
	if len(contestants) == 0 {
		return []ContestantStats{}
	}

	rulesByCode := make(map[string]Rule, len(rules))
	for _, r := range rules {
		if _, ok := rulesByCode[r.Code]; !ok {
			rulesByCode[r.Code] = r
		}
	}
	teamsByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}
	pickByContestant := make(map[string]draft.Pick, len(picks))
	for _, p := range picks {
		if _, ok := pickByContestant[p.ContestantID]; !ok {
			pickByContestant[p.ContestantID] = p
		}
	}

	out := make([]ContestantStats, 0, len(contestants))
	for _, c := range contestants {
		stats := ContestantStats{
			Contestant:   c,
			TeamName:     UnassignedTeamName,
			EvictionWeek: c.EvictionWeek(),
		}
		if p, ok := pickByContestant[c.ID]; ok {
			if t, ok := teamsByID[p.TeamID]; ok {
				stats.TeamID = t.ID
				stats.TeamName = t.Name
			}
		}

		for _, e := range competitions {
			rule, ok := rulesByCode[string(e.Type)]
			if !ok {
				continue
			}
			if e.WinnerID == c.ID {
				stats.TotalPoints += rule.Points
				if rule.Points > 0 {
					stats.TotalWins++
				}
			}
			if e.IsNominee(c.ID) {
				stats.TotalPoints += rule.Points
				if rule.Points < 0 {
					stats.TotalNoms++
				}
			}
			if e.EvictedID == c.ID {
				stats.TotalPoints += rule.Points
			}
		}

		out = append(out, stats)
	}

	return out
}
