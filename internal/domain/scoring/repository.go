package scoring

import "context"

type RuleSetRepository interface {
	GetByID(ctx context.Context, ruleSetID string) (RuleSet, bool, error)
	Save(ctx context.Context, set RuleSet) error
}
