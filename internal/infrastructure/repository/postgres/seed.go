package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the demo season, rule set, league, teams and contestants
// when the database has no leagues yet.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		exec := func(label, query string, arg map[string]any) error {
			bound, args, err := sqlx.Named(query, arg)
			if err != nil {
				return fmt.Errorf("bind seed %s query: %w", label, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(bound), args...); err != nil {
				return fmt.Errorf("seed %s: %w", label, err)
			}
			return nil
		}

		for _, s := range memory.SeedSeasons() {
			if err := exec("season "+s.ID, `
INSERT INTO seasons (public_id, name, number, starts_at, current_week)
VALUES (:public_id, :name, :number, :starts_at, :current_week)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":    s.ID,
				"name":         s.Name,
				"number":       s.Number,
				"starts_at":    s.StartsAt,
				"current_week": s.CurrentWeek,
			}); err != nil {
				return err
			}
		}

		for _, set := range memory.SeedRuleSets() {
			if err := exec("rule set "+set.ID, `
INSERT INTO scoring_rule_sets (public_id, name)
VALUES (:public_id, :name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id": set.ID,
				"name":      set.Name,
			}); err != nil {
				return err
			}
			for i, rule := range set.Rules {
				if err := exec("rule "+set.ID+"/"+rule.Code, `
INSERT INTO scoring_rules (rule_set_public_id, code, label, points, position)
VALUES (:rule_set_public_id, :code, :label, :points, :position)
ON CONFLICT (rule_set_public_id, code) DO NOTHING`, map[string]any{
					"rule_set_public_id": set.ID,
					"code":               rule.Code,
					"label":              rule.Label,
					"points":             rule.Points,
					"position":           i,
				}); err != nil {
					return err
				}
			}
		}

		for _, l := range memory.SeedLeagues() {
			if err := exec("league "+l.ID, `
INSERT INTO leagues (public_id, season_public_id, name, rule_set_public_id)
VALUES (:public_id, :season_public_id, :name, :rule_set_public_id)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":          l.ID,
				"season_public_id":   l.SeasonID,
				"name":               l.Name,
				"rule_set_public_id": l.RuleSetID,
			}); err != nil {
				return err
			}
		}

		for _, t := range memory.SeedTeams() {
			if err := exec("team "+t.ID, `
INSERT INTO teams (public_id, league_public_id, name, owner_user_ids, draft_order, faab)
VALUES (:public_id, :league_public_id, :name, :owner_user_ids, :draft_order, :faab)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":        t.ID,
				"league_public_id": t.LeagueID,
				"name":             t.Name,
				"owner_user_ids":   stringArray(t.OwnerUserIDs),
				"draft_order":      t.DraftOrder,
				"faab":             t.FAAB,
			}); err != nil {
				return err
			}
		}

		for _, c := range memory.SeedContestants() {
			if err := exec("contestant "+c.ID, `
INSERT INTO contestants (public_id, season_public_id, first_name, last_name, nickname, status, photo_url, entered_day)
VALUES (:public_id, :season_public_id, :first_name, :last_name, :nickname, :status, :photo_url, :entered_day)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":        c.ID,
				"season_public_id": c.SeasonID,
				"first_name":       c.FirstName,
				"last_name":        c.LastName,
				"nickname":         nullString(c.Nickname),
				"status":           string(c.Status),
				"photo_url":        c.PhotoURL,
				"entered_day":      c.EnteredDay,
			}); err != nil {
				return err
			}
		}

		return nil
	})
}
