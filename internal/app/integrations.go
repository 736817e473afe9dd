package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/eviction-league/internal/config"
	"github.com/riskibarqy/eviction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/changefeed"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/mail"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"github.com/riskibarqy/eviction-league/internal/platform/resilience"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

const (
	qstashTimeout      = 10 * time.Second
	natsMaxReconnects  = 60
	natsReconnectDelay = 2 * time.Second
)

type changeFeed interface {
	live.Publisher
	live.Subscriber
	Close() error
}

func buildChangeFeed(ctx context.Context, cfg config.Config, logger *logging.Logger) (changeFeed, error) {
	fc := cfg.ChangeFeed
	breaker := resilience.NewCircuitBreakerFromConfig("changefeed", fc.Circuit, func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	})

	switch fc.Driver {
	case config.ChangeFeedDriverRedis:
		feed, err := changefeed.NewRedisFeed(ctx, changefeed.RedisConfig{
			Addr:     fc.RedisAddr,
			Password: fc.RedisPassword,
			DB:       fc.RedisDB,
			Channel:  fc.Channel,
		}, breaker, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis change feed: %w", err)
		}
		logger.Info("change feed ready", "driver", fc.Driver, "channel", fc.Channel)
		return feed, nil
	case config.ChangeFeedDriverNATS:
		feed, err := changefeed.NewNATSFeed(changefeed.NATSConfig{
			URL:           fc.NATSURL,
			Subject:       fc.Channel,
			MaxReconnects: natsMaxReconnects,
			ReconnectWait: natsReconnectDelay,
		}, breaker, logger)
		if err != nil {
			return nil, fmt.Errorf("connect nats change feed: %w", err)
		}
		logger.Info("change feed ready", "driver", fc.Driver, "subject", fc.Channel)
		return feed, nil
	default:
		logger.Info("change feed ready", "driver", config.ChangeFeedDriverMemory)
		return changefeed.NewMemoryFeed(logger), nil
	}
}

func buildMailer(cfg config.Config, logger *logging.Logger) usecase.Mailer {
	if !cfg.Mail.Enabled {
		logger.Info("mail delivery disabled, reminders are logged only")
		return mail.NewLogMailer(logger)
	}
	return mail.NewResendMailer(mail.ResendConfig{
		APIKey:         cfg.Mail.ResendAPIKey,
		From:           cfg.Mail.From,
		CircuitBreaker: cfg.Mail.Circuit,
	}, logger)
}

func buildJobQueue(cfg config.Config, dispatches jobscheduler.Repository, clock clockwork.Clock, logger *logging.Logger) usecase.JobQueue {
	if !cfg.QStash.Enabled {
		logger.Info("job queue disabled", "reason", "QSTASH_ENABLED=false")
		return usecase.NewNoopJobQueue()
	}

	publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStash.BaseURL,
		Token:            cfg.QStash.Token,
		TargetBaseURL:    cfg.QStash.TargetBaseURL,
		Retries:          cfg.QStash.Retries,
		InternalJobToken: cfg.Jobs.InternalToken,
		Timeout:          qstashTimeout,
		CircuitBreaker:   cfg.QStash.Circuit,
	}, logger)
	return jobqueue.NewRecordingQueue(publisher, dispatches, clock, logger)
}
