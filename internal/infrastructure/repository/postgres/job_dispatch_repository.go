package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/eviction-league/internal/platform/querybuilder"
)

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	dispatchID := strings.TrimSpace(event.DispatchID)
	if dispatchID == "" {
		return fmt.Errorf("dispatch id is required")
	}

	occurredAt := event.OccurredAt.UTC()
	if event.OccurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	payloadJSON, err := marshalPayload(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	model := jobDispatchInsertModel{
		DispatchID: dispatchID,
		JobName:    defaultString(event.JobName, "unknown"),
		JobPath:    defaultString(event.JobPath, "/unknown"),
		Subject:    strings.TrimSpace(event.Subject),
		Payload:    payloadJSON,
		Status:     string(event.Status),
		TraceID:    optionalString(event.TraceID),
		SpanID:     optionalString(event.SpanID),
		UpdatedAt:  occurredAt,
	}
	switch event.Status {
	case jobscheduler.StatusSent:
		model.SentAt = &occurredAt
	case jobscheduler.StatusCompleted:
		model.CompletedAt = &occurredAt
	case jobscheduler.StatusFailed:
		model.FailedAt = &occurredAt
		model.LastError = optionalString(event.ErrorMessage)
	}

	// Later events only fill in their own timestamp; identity columns keep the first non-placeholder value.
	query, args, err := qb.InsertModel("job_dispatches", model, `ON CONFLICT (dispatch_id)
DO UPDATE SET
    job_name = CASE WHEN EXCLUDED.job_name = 'unknown' THEN job_dispatches.job_name ELSE EXCLUDED.job_name END,
    job_path = CASE WHEN EXCLUDED.job_path = '/unknown' THEN job_dispatches.job_path ELSE EXCLUDED.job_path END,
    subject = COALESCE(NULLIF(EXCLUDED.subject, ''), job_dispatches.subject),
    payload = CASE WHEN EXCLUDED.payload = '{}' THEN job_dispatches.payload ELSE EXCLUDED.payload END,
    status = EXCLUDED.status,
    sent_at = COALESCE(EXCLUDED.sent_at, job_dispatches.sent_at),
    completed_at = COALESCE(EXCLUDED.completed_at, job_dispatches.completed_at),
    failed_at = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_at
        WHEN EXCLUDED.status = 'completed' THEN NULL
        ELSE job_dispatches.failed_at
    END,
    last_error = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error
        ELSE NULL
    END,
    trace_id = COALESCE(EXCLUDED.trace_id, job_dispatches.trace_id),
    span_id = COALESCE(EXCLUDED.span_id, job_dispatches.span_id),
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert job dispatch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch dispatch_id=%s status=%s: %w", dispatchID, event.Status, err)
	}
	return nil
}

func (r *JobDispatchRepository) Get(ctx context.Context, dispatchID string) (jobscheduler.Dispatch, bool, error) {
	query, args, err := qb.Select("*").From("job_dispatches").
		Where(qb.Eq("dispatch_id", dispatchID)).
		ToSQL()
	if err != nil {
		return jobscheduler.Dispatch{}, false, fmt.Errorf("build get job dispatch query: %w", err)
	}

	var row jobDispatchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return jobscheduler.Dispatch{}, false, nil
		}
		return jobscheduler.Dispatch{}, false, fmt.Errorf("get job dispatch: %w", err)
	}

	var payload map[string]any
	if row.Payload != "" && row.Payload != "{}" {
		if err := sonic.UnmarshalString(row.Payload, &payload); err != nil {
			return jobscheduler.Dispatch{}, false, fmt.Errorf("decode job dispatch payload dispatch_id=%s: %w", dispatchID, err)
		}
	}

	return jobscheduler.Dispatch{
		DispatchID:  row.DispatchID,
		JobName:     row.JobName,
		JobPath:     row.JobPath,
		Subject:     row.Subject,
		Status:      jobscheduler.DispatchStatus(row.Status),
		Payload:     payload,
		LastError:   row.LastError.String,
		SentAt:      row.SentAt,
		CompletedAt: row.CompletedAt,
		FailedAt:    row.FailedAt,
		TraceID:     row.TraceID.String,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	return sonic.MarshalString(payload)
}

func defaultString(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
