package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	qb "github.com/riskibarqy/eviction-league/internal/platform/querybuilder"
)

type RuleSetRepository struct {
	db *sqlx.DB
}

func NewRuleSetRepository(db *sqlx.DB) *RuleSetRepository {
	return &RuleSetRepository{db: db}
}

func (r *RuleSetRepository) GetByID(ctx context.Context, ruleSetID string) (scoring.RuleSet, bool, error) {
	query, args, err := qb.Select("*").From("scoring_rule_sets").
		Where(qb.Eq("public_id", ruleSetID)).
		ToSQL()
	if err != nil {
		return scoring.RuleSet{}, false, fmt.Errorf("build get rule set query: %w", err)
	}

	var row ruleSetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.RuleSet{}, false, nil
		}
		return scoring.RuleSet{}, false, fmt.Errorf("get rule set: %w", err)
	}

	rulesQuery, rulesArgs, err := qb.Select("rule_set_public_id", "code", "label", "points", "position").
		From("scoring_rules").
		Where(qb.Eq("rule_set_public_id", ruleSetID)).
		OrderBy("position", "code").
		ToSQL()
	if err != nil {
		return scoring.RuleSet{}, false, fmt.Errorf("build select scoring rules query: %w", err)
	}

	var ruleRows []scoringRuleTableModel
	if err := r.db.SelectContext(ctx, &ruleRows, rulesQuery, rulesArgs...); err != nil {
		return scoring.RuleSet{}, false, fmt.Errorf("select scoring rules: %w", err)
	}

	set := scoring.RuleSet{
		ID:    row.PublicID,
		Name:  row.Name,
		Rules: make([]scoring.Rule, 0, len(ruleRows)),
	}
	for _, rr := range ruleRows {
		set.Rules = append(set.Rules, scoring.Rule{Code: rr.Code, Label: rr.Label, Points: rr.Points})
	}
	return set, true, nil
}

// Save replaces the rule list of a set atomically, keeping rule order in position.
func (r *RuleSetRepository) Save(ctx context.Context, set scoring.RuleSet) error {
	err := inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		upsertQuery, upsertArgs, err := qb.InsertInto("scoring_rule_sets").
			Columns("public_id", "name").
			Values(set.ID, set.Name).
			Suffix("ON CONFLICT (public_id) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert rule set query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
			return fmt.Errorf("upsert rule set: %w", err)
		}

		clearQuery, clearArgs, err := qb.DeleteFrom("scoring_rules").
			Where(qb.Eq("rule_set_public_id", set.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear scoring rules query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return fmt.Errorf("clear scoring rules: %w", err)
		}

		if len(set.Rules) == 0 {
			return nil
		}
		insert := qb.InsertInto("scoring_rules").
			Columns("rule_set_public_id", "code", "label", "points", "position")
		for i, rule := range set.Rules {
			insert = insert.Values(set.ID, rule.Code, rule.Label, rule.Points, i)
		}
		insertQuery, insertArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert scoring rules query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			if _, ok := uniqueViolation(err); ok {
				return fmt.Errorf("insert scoring rules: %w", scoring.ErrDuplicateRuleCode)
			}
			return fmt.Errorf("insert scoring rules: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save rule set %s: %w", set.ID, err)
	}
	return nil
}
