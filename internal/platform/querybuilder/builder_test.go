package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "name").
		From("contestants").
		Where(Eq("season_id", "s1"), IsNull("deleted_at")).
		OrderBy("first_name", "id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM contestants WHERE season_id = $1 AND deleted_at IS NULL ORDER BY first_name, id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Select().From("contestants").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
}

func TestInsertBuilderMultiRowWithSuffix(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("scoring_rules").
		Columns("rule_set_public_id", "code").
		Values("default", "HOH_WIN").
		Values("default", "VETO_WIN").
		Suffix("ON CONFLICT (rule_set_public_id, code) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO scoring_rules (rule_set_public_id, code) VALUES ($1, $2), ($3, $4) ON CONFLICT (rule_set_public_id, code) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "VETO_WIN" {
		t.Fatalf("unexpected args: %+v", args)
	}

	_, _, err = InsertInto("scoring_rules").Columns("a", "b").Values("only-one").ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("teams").
		Set("total_score", 42).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "t1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE teams SET total_score = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 42 || args[1] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderExprArgs(t *testing.T) {
	t.Parallel()

	query, args, err := Update("seasons").
		SetExpr("weekly_status_display", "COALESCE(weekly_status_display, '{}'::jsonb) - ?", "3").
		Where(Eq("public_id", "bb27")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE seasons SET weekly_status_display = COALESCE(weekly_status_display, '{}'::jsonb) - $1 WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "3" || args[1] != "bb27" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	t.Parallel()

	t.Run("with conditions", func(t *testing.T) {
		query, args, err := DeleteFrom("draft_picks").
			Where(Eq("league_id", "l1"), Eq("pick_number", 7)).
			Suffix("RETURNING contestant_id").
			ToSQL()
		if err != nil {
			t.Fatalf("build delete query: %v", err)
		}
		wantQuery := "DELETE FROM draft_picks WHERE league_id = $1 AND pick_number = $2 RETURNING contestant_id"
		if query != wantQuery {
			t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
		}
		if len(args) != 2 || args[1] != 7 {
			t.Fatalf("unexpected args: %+v", args)
		}
	})

	t.Run("rejects unfiltered delete", func(t *testing.T) {
		if _, _, err := DeleteFrom("draft_picks").ToSQL(); err == nil {
			t.Fatalf("expected error for delete without conditions")
		}
	})
}

type insertRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Internal string `db:"-"`
	hidden   string
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	query, args, err := InsertModel("leagues", insertRow{ID: "l1", Name: "Jury House", hidden: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}
	if query != "INSERT INTO leagues (id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("leagues", (*insertRow)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
