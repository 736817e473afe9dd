package postgres

import "time"

type leagueTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	SeasonPublicID  string     `db:"season_public_id"`
	Name            string     `db:"name"`
	RuleSetPublicID string     `db:"rule_set_public_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type seasonTableModel struct {
	ID                  int64      `db:"id"`
	PublicID            string     `db:"public_id"`
	Name                string     `db:"name"`
	Number              int        `db:"number"`
	StartsAt            time.Time  `db:"starts_at"`
	CurrentWeek         int        `db:"current_week"`
	WeeklyStatusDisplay []byte     `db:"weekly_status_display"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

// statusCardRecord is the jsonb shape of one weekly status card.
type statusCardRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	RuleCode string `json:"ruleCode"`
	Action   string `json:"action"`
}
