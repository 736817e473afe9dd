package scoring

import (
	"errors"
	"testing"
)

func baseRuleSet() RuleSet {
	return RuleSet{
		ID:   "default",
		Name: "Default",
		Rules: []Rule{
			{Code: "HOH", Label: "Head of Household", Points: 10},
			{Code: "NOMINATIONS", Label: "Nominated", Points: -2},
		},
	}
}

func TestRuleSetUpsertRule(t *testing.T) {
	t.Run("appends new code", func(t *testing.T) {
		got, err := baseRuleSet().UpsertRule("", Rule{Code: "VETO", Label: "Veto", Points: 5})
		if err != nil {
			t.Fatalf("upsert rule: %v", err)
		}
		if len(got.Rules) != 3 || got.Rules[2].Code != "VETO" {
			t.Fatalf("unexpected rules: %+v", got.Rules)
		}
	})

	t.Run("renames existing rule in place", func(t *testing.T) {
		got, err := baseRuleSet().UpsertRule("HOH", Rule{Code: "HOH_WIN", Label: "HOH win", Points: 12})
		if err != nil {
			t.Fatalf("upsert rule: %v", err)
		}
		if got.Rules[0].Code != "HOH_WIN" || got.Rules[0].Points != 12 {
			t.Fatalf("unexpected rules: %+v", got.Rules)
		}
	})

	t.Run("rejects rename onto existing code without mutating", func(t *testing.T) {
		set := baseRuleSet()
		got, err := set.UpsertRule("HOH", Rule{Code: "NOMINATIONS", Label: "dup", Points: 1})
		if !errors.Is(err, ErrDuplicateRuleCode) {
			t.Fatalf("expected ErrDuplicateRuleCode, got %v", err)
		}
		if got.Rules[0].Code != "HOH" || set.Rules[0].Code != "HOH" {
			t.Fatalf("rule set changed after rejected update: %+v", got.Rules)
		}
	})

	t.Run("rejects insert of existing code", func(t *testing.T) {
		_, err := baseRuleSet().UpsertRule("", Rule{Code: "HOH", Label: "again", Points: 1})
		if !errors.Is(err, ErrDuplicateRuleCode) {
			t.Fatalf("expected ErrDuplicateRuleCode, got %v", err)
		}
	})
}

func TestRuleSetDeleteRule(t *testing.T) {
	got, err := baseRuleSet().DeleteRule("HOH")
	if err != nil {
		t.Fatalf("delete rule: %v", err)
	}
	if _, ok := got.Find("HOH"); ok {
		t.Fatalf("expected HOH to be deleted")
	}

	if _, err := baseRuleSet().DeleteRule("missing"); !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestRuleSetValidate(t *testing.T) {
	set := baseRuleSet()
	set.Rules = append(set.Rules, Rule{Code: "HOH", Label: "dup", Points: 1})
	if err := set.Validate(); !errors.Is(err, ErrDuplicateRuleCode) {
		t.Fatalf("expected ErrDuplicateRuleCode, got %v", err)
	}
}
