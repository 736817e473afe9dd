package scoring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateRuleCode = errors.New("scoring rule code already exists")
	ErrRuleNotFound      = errors.New("scoring rule not found")
)

// Rule awards Points to every contestant appearing in an event whose type equals Code.
type Rule struct {
	Code   string
	Label  string
	Points int
}

func (r Rule) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return fmt.Errorf("rule code is required")
	}
	if strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("rule %s label is required", r.Code)
	}
	return nil
}

// RuleSet is a named table of rules; codes are unique within a set.
type RuleSet struct {
	ID    string
	Name  string
	Rules []Rule
}

func (s RuleSet) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("rule set id is required")
	}
	seen := make(map[string]struct{}, len(s.Rules))
	for _, r := range s.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, ok := seen[r.Code]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRuleCode, r.Code)
		}
		seen[r.Code] = struct{}{}
	}
	return nil
}

// Find returns the rule with code.
func (s RuleSet) Find(code string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Code == code {
			return r, true
		}
	}
	return Rule{}, false
}

// UpsertRule replaces the rule stored under originalCode (or appends when
// originalCode is empty or unknown). The receiver is never modified; on a code
// collision the original set is returned with ErrDuplicateRuleCode.
func (s RuleSet) UpsertRule(originalCode string, rule Rule) (RuleSet, error) {
	rule.Code = strings.TrimSpace(rule.Code)
	rule.Label = strings.TrimSpace(rule.Label)
	if err := rule.Validate(); err != nil {
		return s, err
	}

	target := -1
	for i, r := range s.Rules {
		if originalCode != "" && r.Code == originalCode {
			target = i
			continue
		}
		if r.Code == rule.Code {
			return s, fmt.Errorf("%w: %s", ErrDuplicateRuleCode, rule.Code)
		}
	}

	out := s
	out.Rules = append([]Rule(nil), s.Rules...)
	if target >= 0 {
		out.Rules[target] = rule
	} else {
		out.Rules = append(out.Rules, rule)
	}
	return out, nil
}

func (s RuleSet) DeleteRule(code string) (RuleSet, error) {
	out := s
	out.Rules = make([]Rule, 0, len(s.Rules))
	found := false
	for _, r := range s.Rules {
		if r.Code == code {
			found = true
			continue
		}
		out.Rules = append(out.Rules, r)
	}
	if !found {
		return s, fmt.Errorf("%w: %s", ErrRuleNotFound, code)
	}
	return out, nil
}
