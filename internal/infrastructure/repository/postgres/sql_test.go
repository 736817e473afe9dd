package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestUniqueViolation(t *testing.T) {
	t.Run("matches wrapped unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert draft pick: %w", &pq.Error{Code: "23505", Constraint: "draft_picks_league_contestant_key"})
		constraint, ok := uniqueViolation(err)
		if !ok {
			t.Fatalf("expected unique violation")
		}
		if constraint != "draft_picks_league_contestant_key" {
			t.Fatalf("unexpected constraint: %s", constraint)
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		if _, ok := uniqueViolation(&pq.Error{Code: "23503"}); ok {
			t.Fatalf("expected foreign key violation to be ignored")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if _, ok := uniqueViolation(sql.ErrNoRows); ok {
			t.Fatalf("expected plain error to be ignored")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get season: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullHelpers(t *testing.T) {
	t.Run("empty string is null", func(t *testing.T) {
		if nullString("").Valid {
			t.Fatalf("expected null")
		}
		if got := nullString("hg-1"); !got.Valid || got.String != "hg-1" {
			t.Fatalf("unexpected value: %+v", got)
		}
	})

	t.Run("int pointer round trip", func(t *testing.T) {
		day := 12
		got := intPtrFromNull(nullIntPtr(&day))
		if got == nil || *got != 12 {
			t.Fatalf("expected 12, got %v", got)
		}
		if intPtrFromNull(nullIntPtr(nil)) != nil {
			t.Fatalf("expected nil")
		}
	})

	t.Run("zero time is null", func(t *testing.T) {
		if nullTime(time.Time{}) != nil {
			t.Fatalf("expected nil time")
		}
		if !timeFromPtr(nil).IsZero() {
			t.Fatalf("expected zero time")
		}
	})

	t.Run("string array is never nil", func(t *testing.T) {
		got := stringArray(nil)
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil array, got %#v", got)
		}
		value, err := got.Value()
		if err != nil {
			t.Fatalf("value: %v", err)
		}
		if value != "{}" {
			t.Fatalf("expected empty array literal, got %v", value)
		}
	})
}
