package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	qb "github.com/riskibarqy/eviction-league/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.IsNull("deleted_at")).
		OrderBy("number DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		item, err := seasonFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	item, err := seasonFromRow(row)
	if err != nil {
		return season.Season{}, false, err
	}
	return item, true, nil
}

func (r *SeasonRepository) UpdateCurrentWeek(ctx context.Context, seasonID string, week int) error {
	query, args, err := qb.Update("seasons").
		Set("current_week", week).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season current week query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update season current week: %w", err)
	}
	return nil
}

// SaveWeeklyStatusCards replaces one week key inside weekly_status_display.
// An empty card list removes the key.
func (r *SeasonRepository) SaveWeeklyStatusCards(ctx context.Context, seasonID, weekKey string, cards []season.StatusCard) error {
	builder := qb.Update("seasons")
	if len(cards) == 0 {
		builder = builder.SetExpr("weekly_status_display", "COALESCE(weekly_status_display, '{}'::jsonb) - ?", weekKey)
	} else {
		records := make([]statusCardRecord, 0, len(cards))
		for _, c := range cards {
			records = append(records, statusCardRecord{
				ID:       c.ID,
				Title:    c.Title,
				RuleCode: c.RuleCode,
				Action:   string(c.Action),
			})
		}
		payload, err := sonic.Marshal(records)
		if err != nil {
			return fmt.Errorf("encode weekly status cards: %w", err)
		}
		builder = builder.SetExpr(
			"weekly_status_display",
			"jsonb_set(COALESCE(weekly_status_display, '{}'::jsonb), ARRAY[?]::text[], ?::jsonb, true)",
			weekKey, string(payload),
		)
	}

	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save weekly status cards query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save weekly status cards: %w", err)
	}
	return nil
}

func seasonFromRow(row seasonTableModel) (season.Season, error) {
	out := season.Season{
		ID:          row.PublicID,
		Name:        row.Name,
		Number:      row.Number,
		StartsAt:    row.StartsAt,
		CurrentWeek: row.CurrentWeek,
	}
	if len(row.WeeklyStatusDisplay) == 0 {
		return out, nil
	}

	var raw map[string][]statusCardRecord
	if err := sonic.Unmarshal(row.WeeklyStatusDisplay, &raw); err != nil {
		return season.Season{}, fmt.Errorf("decode weekly status display for season %s: %w", row.PublicID, err)
	}
	out.WeeklyStatusDisplay = make(map[string][]season.StatusCard, len(raw))
	for key, records := range raw {
		cards := make([]season.StatusCard, 0, len(records))
		for _, rec := range records {
			cards = append(cards, season.StatusCard{
				ID:       rec.ID,
				Title:    rec.Title,
				RuleCode: rec.RuleCode,
				Action:   season.CardAction(rec.Action),
			})
		}
		out.WeeklyStatusDisplay[key] = cards
	}
	return out, nil
}
