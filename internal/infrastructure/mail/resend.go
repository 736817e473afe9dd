package mail

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/resend/resend-go/v2"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"github.com/riskibarqy/eviction-league/internal/platform/resilience"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

type ResendConfig struct {
	APIKey         string
	From           string
	CircuitBreaker resilience.CircuitBreakerConfig
}

// ResendMailer delivers transactional mail through the Resend API.
type ResendMailer struct {
	client  *resend.Client
	from    string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewResendMailer(cfg ResendConfig, logger *logging.Logger) *ResendMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResendMailer{
		client: resend.NewClient(strings.TrimSpace(cfg.APIKey)),
		from:   strings.TrimSpace(cfg.From),
		breaker: resilience.NewCircuitBreakerFromConfig("resend", cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
		}),
		logger: logger,
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg usecase.MailMessage) (string, error) {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return "", crerr.New("mail recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return "", crerr.New("mail subject is required")
	}

	var messageID string
	err := resilience.Guard(ctx, m.breaker, func(ctx context.Context) error {
		sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    m.from,
			To:      []string{to},
			Subject: msg.Subject,
			Html:    msg.HTML,
		})
		if err != nil {
			return crerr.Wrap(err, "resend send")
		}
		messageID = sent.Id
		return nil
	}, nil)
	if err != nil {
		m.logger.ErrorContext(ctx, "mail send failed", "subject", msg.Subject, "error", err)
		return "", err
	}

	m.logger.InfoContext(ctx, "mail sent", "message_id", messageID, "subject", msg.Subject)
	return messageID, nil
}

// LogMailer records mail in the log instead of sending it; used when MAIL_ENABLED is off.
type LogMailer struct {
	logger *logging.Logger
}

func NewLogMailer(logger *logging.Logger) *LogMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg usecase.MailMessage) (string, error) {
	m.logger.InfoContext(ctx, "mail delivery disabled, message skipped", "subject", msg.Subject, "html_bytes", len(msg.HTML))
	return "", nil
}
