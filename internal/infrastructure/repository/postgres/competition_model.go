package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type competitionTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	SeasonPublicID   string         `db:"season_public_id"`
	Week             int            `db:"week"`
	Type             string         `db:"type"`
	WinnerID         sql.NullString `db:"winner_id"`
	NomineeIDs       pq.StringArray `db:"nominee_ids"`
	EvictedID        sql.NullString `db:"evicted_id"`
	UsedOnID         sql.NullString `db:"used_on_id"`
	ReplacementNomID sql.NullString `db:"replacement_nom_id"`
	SpecialEventCode sql.NullString `db:"special_event_code"`
	AirDate          *time.Time     `db:"air_date"`
	CreatedAt        time.Time      `db:"created_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

type competitionInsertModel struct {
	PublicID         string         `db:"public_id"`
	SeasonPublicID   string         `db:"season_public_id"`
	Week             int            `db:"week"`
	Type             string         `db:"type"`
	WinnerID         sql.NullString `db:"winner_id"`
	NomineeIDs       pq.StringArray `db:"nominee_ids"`
	EvictedID        sql.NullString `db:"evicted_id"`
	UsedOnID         sql.NullString `db:"used_on_id"`
	ReplacementNomID sql.NullString `db:"replacement_nom_id"`
	SpecialEventCode sql.NullString `db:"special_event_code"`
	AirDate          *time.Time     `db:"air_date"`
	CreatedAt        time.Time      `db:"created_at"`
}

type draftPickTableModel struct {
	ID                 int64     `db:"id"`
	PublicID           string    `db:"public_id"`
	LeaguePublicID     string    `db:"league_public_id"`
	TeamPublicID       string    `db:"team_public_id"`
	ContestantPublicID string    `db:"contestant_public_id"`
	PickNumber         int       `db:"pick_number"`
	Round              int       `db:"round"`
	CreatedAt          time.Time `db:"created_at"`
}

type draftPickInsertModel struct {
	PublicID           string    `db:"public_id"`
	LeaguePublicID     string    `db:"league_public_id"`
	TeamPublicID       string    `db:"team_public_id"`
	ContestantPublicID string    `db:"contestant_public_id"`
	PickNumber         int       `db:"pick_number"`
	Round              int       `db:"round"`
	CreatedAt          time.Time `db:"created_at"`
}

type ruleSetTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type scoringRuleTableModel struct {
	RuleSetPublicID string `db:"rule_set_public_id"`
	Code            string `db:"code"`
	Label           string `db:"label"`
	Points          int    `db:"points"`
	Position        int    `db:"position"`
}
