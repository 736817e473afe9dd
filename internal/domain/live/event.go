package live

import (
	"context"
	"time"
)

type Kind string

const (
	KindDraftChanged       Kind = "draft.changed"
	KindCompetitionChanged Kind = "competition.changed"
	KindScoresChanged      Kind = "scores.changed"
	KindRosterChanged      Kind = "roster.changed"
	KindRulesChanged       Kind = "rules.changed"
)

// Event announces that derived league views are stale. Either LeagueID or
// SeasonID is set; a season event affects every league of that season.
type Event struct {
	Kind     Kind      `json:"kind"`
	LeagueID string    `json:"leagueId,omitempty"`
	SeasonID string    `json:"seasonId,omitempty"`
	At       time.Time `json:"at"`
}

// Affects reports whether the event touches the given league.
func (e Event) Affects(leagueID, seasonID string) bool {
	if e.LeagueID != "" {
		return e.LeagueID == leagueID
	}
	return e.SeasonID != "" && e.SeasonID == seasonID
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Subscriber delivers events until ctx is cancelled, then closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
}
