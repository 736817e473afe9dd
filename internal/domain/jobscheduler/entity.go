package jobscheduler

import "time"

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
)

// DispatchEvent is one lifecycle transition of an internal job.
// Subject names what the job acts on, such as a season or user id.
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	JobPath      string
	Subject      string
	Status       DispatchStatus
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}

// Dispatch is the folded state of every event recorded for one dispatch id.
type Dispatch struct {
	DispatchID  string         `json:"dispatch_id"`
	JobName     string         `json:"job_name"`
	JobPath     string         `json:"job_path"`
	Subject     string         `json:"subject"`
	Status      DispatchStatus `json:"status"`
	Payload     map[string]any `json:"payload,omitempty"`
	LastError   string         `json:"last_error,omitempty"`
	SentAt      *time.Time     `json:"sent_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	FailedAt    *time.Time     `json:"failed_at,omitempty"`
	TraceID     string         `json:"trace_id,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Apply folds event into d. A completion clears any earlier failure.
func (d Dispatch) Apply(event DispatchEvent) Dispatch {
	at := event.OccurredAt.UTC()
	d.DispatchID = event.DispatchID
	if event.JobName != "" {
		d.JobName = event.JobName
	}
	if event.JobPath != "" {
		d.JobPath = event.JobPath
	}
	if event.Subject != "" {
		d.Subject = event.Subject
	}
	if len(event.Payload) > 0 {
		d.Payload = event.Payload
	}
	d.Status = event.Status
	if event.TraceID != "" {
		d.TraceID = event.TraceID
	}
	d.UpdatedAt = at

	switch event.Status {
	case StatusSent:
		d.SentAt = &at
		d.LastError = ""
	case StatusCompleted:
		d.CompletedAt = &at
		d.FailedAt = nil
		d.LastError = ""
	case StatusFailed:
		d.FailedAt = &at
		d.LastError = event.ErrorMessage
	}
	return d
}
