package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/live"
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// MailMessage is a single transactional email.
type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg MailMessage) (string, error)
}

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, _ MailMessage) (string, error) {
	return "", nil
}

func NewNoopMailer() Mailer {
	return noopMailer{}
}

type MarkdownRenderer interface {
	Render(source string) (string, error)
}

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, _ live.Event) error {
	return nil
}

func NewNoopPublisher() live.Publisher {
	return noopPublisher{}
}
