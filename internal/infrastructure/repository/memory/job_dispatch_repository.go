package memory

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/jobscheduler"
)

type JobDispatchRepository struct {
	mu    sync.RWMutex
	items map[string]jobscheduler.Dispatch
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{items: make(map[string]jobscheduler.Dispatch)}
}

func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	event.DispatchID = strings.TrimSpace(event.DispatchID)
	if event.DispatchID == "" {
		return fmt.Errorf("dispatch id is required")
	}
	event.Payload = maps.Clone(event.Payload)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[event.DispatchID] = r.items[event.DispatchID].Apply(event)
	return nil
}

func (r *JobDispatchRepository) Get(_ context.Context, dispatchID string) (jobscheduler.Dispatch, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[dispatchID]
	if !ok {
		return jobscheduler.Dispatch{}, false, nil
	}
	d.Payload = maps.Clone(d.Payload)
	return d, true, nil
}
