package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	qb "github.com/riskibarqy/eviction-league/internal/platform/querybuilder"
)

const draftPickContestantConstraint = "draft_picks_league_contestant_key"

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) ListByLeague(ctx context.Context, leagueID string) ([]draft.Pick, error) {
	query, args, err := qb.Select("*").From("draft_picks").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("pick_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draft picks query: %w", err)
	}

	var rows []draftPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draft picks: %w", err)
	}

	out := make([]draft.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, draft.Pick{
			ID:           row.PublicID,
			LeagueID:     row.LeaguePublicID,
			TeamID:       row.TeamPublicID,
			ContestantID: row.ContestantPublicID,
			Pick:         row.PickNumber,
			Round:        row.Round,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

// Create relies on the (league, pick_number) and (league, contestant) unique keys
// to reject picks that raced another writer.
func (r *DraftRepository) Create(ctx context.Context, p draft.Pick) error {
	query, args, err := qb.InsertModel("draft_picks", draftPickInsertModel{
		PublicID:           p.ID,
		LeaguePublicID:     p.LeagueID,
		TeamPublicID:       p.TeamID,
		ContestantPublicID: p.ContestantID,
		PickNumber:         p.Pick,
		Round:              p.Round,
		CreatedAt:          p.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert draft pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if strings.EqualFold(constraint, draftPickContestantConstraint) {
				return fmt.Errorf("insert draft pick: %w", draft.ErrContestantAlreadyDrafted)
			}
			return fmt.Errorf("insert draft pick: %w", draft.ErrNotYourTurn)
		}
		return fmt.Errorf("insert draft pick: %w", err)
	}
	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, leagueID, pickID string) error {
	query, args, err := qb.DeleteFrom("draft_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("public_id", pickID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete draft pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete draft pick: %w", err)
	}
	return nil
}
