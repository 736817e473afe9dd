package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	LeaguePublicID string         `db:"league_public_id"`
	Name           string         `db:"name"`
	OwnerUserIDs   pq.StringArray `db:"owner_user_ids"`
	DraftOrder     int            `db:"draft_order"`
	FAAB           int            `db:"faab"`
	TotalScore     int            `db:"total_score"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID       string         `db:"public_id"`
	LeaguePublicID string         `db:"league_public_id"`
	Name           string         `db:"name"`
	OwnerUserIDs   pq.StringArray `db:"owner_user_ids"`
	DraftOrder     int            `db:"draft_order"`
	FAAB           int            `db:"faab"`
	TotalScore     int            `db:"total_score"`
}

type contestantTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	SeasonPublicID string         `db:"season_public_id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	Nickname       sql.NullString `db:"nickname"`
	Status         string         `db:"status"`
	PhotoURL       string         `db:"photo_url"`
	EnteredDay     int            `db:"entered_day"`
	EvictedDay     sql.NullInt64  `db:"evicted_day"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type contestantInsertModel struct {
	PublicID       string         `db:"public_id"`
	SeasonPublicID string         `db:"season_public_id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	Nickname       sql.NullString `db:"nickname"`
	Status         string         `db:"status"`
	PhotoURL       string         `db:"photo_url"`
	EnteredDay     int            `db:"entered_day"`
	EvictedDay     sql.NullInt64  `db:"evicted_day"`
}
