package jobqueue

import (
	"context"
	"path"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/eviction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

// RecordingQueue writes a sent dispatch event for every job it hands to next.
// Jobs without a deduplication id cannot be correlated later and are not recorded.
type RecordingQueue struct {
	next   Enqueuer
	repo   jobscheduler.Repository
	clock  clockwork.Clock
	logger *logging.Logger
}

func NewRecordingQueue(next Enqueuer, repo jobscheduler.Repository, clock clockwork.Clock, logger *logging.Logger) *RecordingQueue {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RecordingQueue{next: next, repo: repo, clock: clock, logger: logger}
}

func (q *RecordingQueue) Enqueue(ctx context.Context, jobPath string, payload any, delay time.Duration, deduplicationID string) error {
	if err := q.next.Enqueue(ctx, jobPath, payload, delay, deduplicationID); err != nil {
		return err
	}
	deduplicationID = strings.TrimSpace(deduplicationID)
	if deduplicationID == "" || q.repo == nil {
		return nil
	}

	fields := payloadFields(payload)
	event := jobscheduler.DispatchEvent{
		DispatchID: deduplicationID,
		JobName:    JobNameFromPath(jobPath),
		JobPath:    jobPath,
		Subject:    subjectFromFields(fields),
		Status:     jobscheduler.StatusSent,
		Payload:    fields,
		OccurredAt: q.clock.Now(),
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		event.TraceID = sc.TraceID().String()
		event.SpanID = sc.SpanID().String()
	}
	// The job is already queued, so a bookkeeping failure only costs visibility.
	if err := q.repo.UpsertEvent(ctx, event); err != nil {
		q.logger.WarnContext(ctx, "record job dispatch failed", "dispatch_id", deduplicationID, "error", err)
	}
	return nil
}

// JobNameFromPath maps "/v1/internal/jobs/send-reminder" to "send_reminder".
func JobNameFromPath(jobPath string) string {
	name := path.Base("/" + strings.Trim(jobPath, "/"))
	if name == "/" || name == "." {
		return "unknown"
	}
	return strings.ReplaceAll(name, "-", "_")
}

func payloadFields(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	if fields, ok := payload.(map[string]any); ok {
		return fields
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := sonic.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

func subjectFromFields(fields map[string]any) string {
	for _, key := range []string{"userId", "seasonId", "trackId"} {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
