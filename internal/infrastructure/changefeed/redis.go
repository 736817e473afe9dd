package changefeed

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"github.com/riskibarqy/eviction-league/internal/platform/resilience"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// RedisFeed relays events over redis pub/sub so every API replica sees them.
type RedisFeed struct {
	client  *redis.Client
	channel string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewRedisFeed(ctx context.Context, cfg RedisConfig, breaker *resilience.CircuitBreaker, logger *logging.Logger) (*RedisFeed, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Channel == "" {
		cfg.Channel = DefaultTopic
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis %s", cfg.Addr)
	}

	return &RedisFeed{client: client, channel: cfg.Channel, breaker: breaker, logger: logger}, nil
}

func (f *RedisFeed) Publish(ctx context.Context, event live.Event) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return crerr.Wrap(err, "encode change event")
	}
	return resilience.Guard(ctx, f.breaker, func(ctx context.Context) error {
		if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
			return crerr.Wrap(err, "redis publish")
		}
		return nil
	}, nil)
}

func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan live.Event, error) {
	pubsub := f.client.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, crerr.Wrapf(err, "subscribe redis channel %s", f.channel)
	}

	out := make(chan live.Event, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				event, err := decodeEvent([]byte(msg.Payload))
				if err != nil {
					f.logger.WarnContext(ctx, "drop malformed change event", "channel", msg.Channel, "error", err)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (f *RedisFeed) Close() error {
	return f.client.Close()
}
