package weeklystatus

import (
	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
)

const Placeholder = "TBD"

type ContestantRef struct {
	ID   string
	Name string
}

// CardView is a status card resolved against one week of events.
type CardView struct {
	Card          season.StatusCard
	Resolved      bool
	Placeholder   string
	CompetitionID string
	Contestants   []ContestantRef
}

// Project resolves cards against the events of week. A card whose event is
// missing, whose field is empty or whose action is unknown renders as TBD.
func Project(cards []season.StatusCard, week int, events []competition.Competition, contestants []contestant.Contestant) []CardView {
	names := make(map[string]string, len(contestants))
	for _, c := range contestants {
		names[c.ID] = c.DisplayName()
	}
	weekly := competition.InWeek(events, week)

	out := make([]CardView, 0, len(cards))
	for _, card := range cards {
		view := CardView{Card: card, Placeholder: Placeholder}

		event, ok := findEvent(weekly, card.RuleCode)
		if ok {
			ids := resolve(card.Action, event)
			if len(ids) > 0 {
				view.Resolved = true
				view.Placeholder = ""
				view.CompetitionID = event.ID
				view.Contestants = make([]ContestantRef, 0, len(ids))
				for _, id := range ids {
					name, known := names[id]
					if !known {
						name = id
					}
					view.Contestants = append(view.Contestants, ContestantRef{ID: id, Name: name})
				}
			}
		}

		out = append(out, view)
	}

	return out
}

func findEvent(events []competition.Competition, ruleCode string) (competition.Competition, bool) {
	for _, e := range events {
		if string(e.Type) == ruleCode {
			return e, true
		}
	}
	return competition.Competition{}, false
}

func resolve(action season.CardAction, e competition.Competition) []string {
	switch action {
	case season.ActionSetWinner:
		return nonEmpty(e.WinnerID)
	case season.ActionSetEvictee:
		return nonEmpty(e.EvictedID)
	case season.ActionSetNominees:
		return nonEmpty(e.Nominees...)
	case season.ActionSetSavedByVeto:
		return nonEmpty(e.UsedOnID)
	case season.ActionSetReplacementNomID:
		return nonEmpty(e.ReplacementNomID)
	default:
		return nil
	}
}

func nonEmpty(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
