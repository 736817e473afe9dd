package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	qb "github.com/riskibarqy/eviction-league/internal/platform/querybuilder"
)

type ContestantRepository struct {
	db *sqlx.DB
}

func NewContestantRepository(db *sqlx.DB) *ContestantRepository {
	return &ContestantRepository{db: db}
}

func (r *ContestantRepository) ListBySeason(ctx context.Context, seasonID string) ([]contestant.Contestant, error) {
	query, args, err := qb.Select("*").From("contestants").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("first_name", "last_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contestants by season query: %w", err)
	}

	var rows []contestantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contestants by season: %w", err)
	}

	out := make([]contestant.Contestant, 0, len(rows))
	for _, row := range rows {
		out = append(out, contestantFromRow(row))
	}
	return out, nil
}

func (r *ContestantRepository) GetByID(ctx context.Context, seasonID, contestantID string) (contestant.Contestant, bool, error) {
	query, args, err := qb.Select("*").From("contestants").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("public_id", contestantID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return contestant.Contestant{}, false, fmt.Errorf("build get contestant by id query: %w", err)
	}

	var row contestantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contestant.Contestant{}, false, nil
		}
		return contestant.Contestant{}, false, fmt.Errorf("get contestant by id: %w", err)
	}
	return contestantFromRow(row), true, nil
}

func (r *ContestantRepository) Create(ctx context.Context, c contestant.Contestant) error {
	query, args, err := qb.InsertModel("contestants", contestantInsertModel{
		PublicID:       c.ID,
		SeasonPublicID: c.SeasonID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Nickname:       nullString(c.Nickname),
		Status:         string(c.Status),
		PhotoURL:       c.PhotoURL,
		EnteredDay:     c.EnteredDay,
		EvictedDay:     nullIntPtr(c.EvictedDay),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert contestant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contestant: %w", err)
	}
	return nil
}

func (r *ContestantRepository) Update(ctx context.Context, c contestant.Contestant) error {
	query, args, err := qb.Update("contestants").
		Set("first_name", c.FirstName).
		Set("last_name", c.LastName).
		Set("nickname", nullString(c.Nickname)).
		Set("status", string(c.Status)).
		Set("photo_url", c.PhotoURL).
		Set("entered_day", c.EnteredDay).
		Set("evicted_day", nullIntPtr(c.EvictedDay)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season_public_id", c.SeasonID),
			qb.Eq("public_id", c.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update contestant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update contestant: %w", err)
	}
	return nil
}

func contestantFromRow(row contestantTableModel) contestant.Contestant {
	return contestant.Contestant{
		ID:         row.PublicID,
		SeasonID:   row.SeasonPublicID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Nickname:   row.Nickname.String,
		Status:     contestant.Status(row.Status),
		PhotoURL:   row.PhotoURL,
		EnteredDay: row.EnteredDay,
		EvictedDay: intPtrFromNull(row.EvictedDay),
	}
}
