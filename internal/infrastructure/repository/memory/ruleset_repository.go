package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
)

type RuleSetRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.RuleSet
}

func NewRuleSetRepository(sets []scoring.RuleSet) *RuleSetRepository {
	r := &RuleSetRepository{items: make(map[string]scoring.RuleSet, len(sets))}
	for _, s := range sets {
		r.items[s.ID] = cloneRuleSet(s)
	}
	return r
}

func (r *RuleSetRepository) GetByID(_ context.Context, ruleSetID string) (scoring.RuleSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[ruleSetID]
	if !ok {
		return scoring.RuleSet{}, false, nil
	}
	return cloneRuleSet(s), true, nil
}

func (r *RuleSetRepository) Save(_ context.Context, set scoring.RuleSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[set.ID] = cloneRuleSet(set)
	return nil
}

func cloneRuleSet(s scoring.RuleSet) scoring.RuleSet {
	s.Rules = append([]scoring.Rule(nil), s.Rules...)
	return s
}
