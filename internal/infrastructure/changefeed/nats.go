package changefeed

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/nats-io/nats.go"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"github.com/riskibarqy/eviction-league/internal/platform/resilience"
)

type NATSConfig struct {
	URL           string
	Subject       string
	MaxReconnects int
	ReconnectWait time.Duration
}

// NATSFeed uses core NATS subjects; events are best effort and never replayed.
type NATSFeed struct {
	conn    *nats.Conn
	subject string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewNATSFeed(cfg NATSConfig, breaker *resilience.CircuitBreaker, logger *logging.Logger) (*NATSFeed, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultTopic
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	if cfg.MaxReconnects == 0 {
		cfg.MaxReconnects = -1
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("eviction-league"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			logger.Error("nats async error", "subject", subject, "error", err)
		}),
	)
	if err != nil {
		return nil, crerr.Wrapf(err, "connect nats %s", cfg.URL)
	}

	return &NATSFeed{conn: conn, subject: cfg.Subject, breaker: breaker, logger: logger}, nil
}

func (f *NATSFeed) Publish(ctx context.Context, event live.Event) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return crerr.Wrap(err, "encode change event")
	}
	return resilience.Guard(ctx, f.breaker, func(context.Context) error {
		if err := f.conn.Publish(f.subject, payload); err != nil {
			return crerr.Wrap(err, "nats publish")
		}
		return nil
	}, nil)
}

func (f *NATSFeed) Subscribe(ctx context.Context) (<-chan live.Event, error) {
	msgs := make(chan *nats.Msg, subscriberBuffer)
	sub, err := f.conn.ChanSubscribe(f.subject, msgs)
	if err != nil {
		return nil, crerr.Wrapf(err, "subscribe nats subject %s", f.subject)
	}

	out := make(chan live.Event, subscriberBuffer)
	go func() {
		defer close(out)
		defer func() {
			if err := sub.Unsubscribe(); err != nil && !crerr.Is(err, nats.ErrConnectionClosed) {
				f.logger.Warn("nats unsubscribe failed", "subject", f.subject, "error", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				event, err := decodeEvent(msg.Data)
				if err != nil {
					f.logger.WarnContext(ctx, "drop malformed change event", "subject", msg.Subject, "error", err)
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

func (f *NATSFeed) Close() error {
	return f.conn.Drain()
}
