package changefeed

import (
	"context"
	"sync"

	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

// MemoryFeed fans events out to subscribers in the same process. Slow
// subscribers miss events instead of blocking publishers.
type MemoryFeed struct {
	mu     sync.RWMutex
	subs   map[int]chan live.Event
	nextID int
	logger *logging.Logger
}

func NewMemoryFeed(logger *logging.Logger) *MemoryFeed {
	if logger == nil {
		logger = logging.Default()
	}
	return &MemoryFeed{subs: make(map[int]chan live.Event), logger: logger}
}

func (f *MemoryFeed) Publish(ctx context.Context, event live.Event) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for id, ch := range f.subs {
		select {
		case ch <- event:
		default:
			f.logger.WarnContext(ctx, "change feed subscriber lagging, event dropped",
				"subscriber", id,
				"kind", string(event.Kind),
			)
		}
	}
	return nil
}

func (f *MemoryFeed) Subscribe(ctx context.Context) (<-chan live.Event, error) {
	ch := make(chan live.Event, subscriberBuffer)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, id)
		close(ch)
		f.mu.Unlock()
	}()

	return ch, nil
}

func (f *MemoryFeed) Close() error {
	return nil
}
