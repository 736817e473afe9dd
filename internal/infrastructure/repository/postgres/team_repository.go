package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
	qb "github.com/riskibarqy/eviction-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("draft_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		PublicID:       t.ID,
		LeaguePublicID: t.LeagueID,
		Name:           t.Name,
		OwnerUserIDs:   stringArray(t.OwnerUserIDs),
		DraftOrder:     t.DraftOrder,
		FAAB:           t.FAAB,
		TotalScore:     t.TotalScore,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", t.Name).
		Set("owner_user_ids", stringArray(t.OwnerUserIDs)).
		Set("draft_order", t.DraftOrder).
		Set("faab", t.FAAB).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("league_public_id", t.LeagueID),
			qb.Eq("public_id", t.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// UpdateTotalScores writes every team total for a league in one transaction.
func (r *TeamRepository) UpdateTotalScores(ctx context.Context, leagueID string, totals map[string]int) error {
	if len(totals) == 0 {
		return nil
	}

	teamIDs := make([]string, 0, len(totals))
	for id := range totals {
		teamIDs = append(teamIDs, id)
	}
	sort.Strings(teamIDs)

	err := inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, teamID := range teamIDs {
			query, args, err := qb.Update("teams").
				Set("total_score", totals[teamID]).
				SetExpr("updated_at", "NOW()").
				Where(
					qb.Eq("league_public_id", leagueID),
					qb.Eq("public_id", teamID),
					qb.IsNull("deleted_at"),
				).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build update team total score query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("update team %s total score: %w", teamID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update total scores for league %s: %w", leagueID, err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.PublicID,
		LeagueID:     row.LeaguePublicID,
		Name:         row.Name,
		OwnerUserIDs: stringSlice(row.OwnerUserIDs),
		DraftOrder:   row.DraftOrder,
		FAAB:         row.FAAB,
		TotalScore:   row.TotalScore,
	}
}
