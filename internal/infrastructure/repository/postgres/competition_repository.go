package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	qb "github.com/riskibarqy/eviction-league/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) ListBySeason(ctx context.Context, seasonID string) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions by season query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions by season: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, seasonID, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition by id query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition by id: %w", err)
	}
	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, c competition.Competition) error {
	query, args, err := qb.InsertModel("competitions", competitionInsertModel{
		PublicID:         c.ID,
		SeasonPublicID:   c.SeasonID,
		Week:             c.Week,
		Type:             string(c.Type),
		WinnerID:         nullString(c.WinnerID),
		NomineeIDs:       stringArray(c.Nominees),
		EvictedID:        nullString(c.EvictedID),
		UsedOnID:         nullString(c.UsedOnID),
		ReplacementNomID: nullString(c.ReplacementNomID),
		SpecialEventCode: nullString(c.SpecialEventCode),
		AirDate:          nullTime(c.AirDate),
		CreatedAt:        c.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert competition query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert competition: %w", err)
	}
	return nil
}

// Delete soft-deletes the event so corrections stay auditable.
func (r *CompetitionRepository) Delete(ctx context.Context, seasonID, competitionID string) error {
	query, args, err := qb.Update("competitions").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete competition query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete competition: %w", err)
	}
	return nil
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:               row.PublicID,
		SeasonID:         row.SeasonPublicID,
		Week:             row.Week,
		Type:             competition.Type(row.Type),
		WinnerID:         row.WinnerID.String,
		Nominees:         stringSlice(row.NomineeIDs),
		EvictedID:        row.EvictedID.String,
		UsedOnID:         row.UsedOnID.String,
		ReplacementNomID: row.ReplacementNomID.String,
		SpecialEventCode: row.SpecialEventCode.String,
		AirDate:          timeFromPtr(row.AirDate),
		CreatedAt:        row.CreatedAt,
	}
}
