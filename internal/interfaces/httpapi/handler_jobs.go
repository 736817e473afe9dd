package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/eviction-league/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	recalculateScoresJobPath = "/v1/internal/jobs/recalculate-scores"
	sendReminderJobPath      = "/v1/internal/jobs/send-reminder"
)

var internalJobDispatchUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func (h *Handler) RunRecalculateScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateScoresJob")
	defer span.End()

	var req recalculateScoresRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event := jobscheduler.DispatchEvent{
		DispatchID: req.DispatchID,
		JobName:    "recalculate_scores",
		JobPath:    recalculateScoresJobPath,
		Subject:    req.SeasonID,
		Payload:    map[string]any{"seasonId": req.SeasonID},
	}
	result, err := h.scoreboardService.RecalculateSeason(ctx, req.SeasonID)
	h.finishInternalJob(ctx, event, err)
	if err != nil {
		h.logger.WarnContext(ctx, "run recalculate scores job failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunSendReminderJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSendReminderJob")
	defer span.End()

	var req sendReminderRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event := jobscheduler.DispatchEvent{
		DispatchID: req.DispatchID,
		JobName:    "send_reminder",
		JobPath:    sendReminderJobPath,
		Subject:    req.UserID,
		Payload:    map[string]any{"userId": req.UserID},
	}
	result, err := h.challengeService.SendDailyReminder(ctx, req.UserID)
	h.finishInternalJob(ctx, event, err)
	if err != nil {
		h.logger.WarnContext(ctx, "run send reminder job failed", "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GenerateUnlockCodes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateUnlockCodes")
	defer span.End()

	var req unlockCodesRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	codes, err := h.challengeService.GenerateUnlockCodes(ctx, req.TrackID, req.Count, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "generate unlock codes failed", "track_id", req.TrackID, "count", req.Count, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]unlockCodeDTO, 0, len(codes))
	for _, c := range codes {
		items = append(items, unlockCodeToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) GetJobDispatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetJobDispatch")
	defer span.End()

	if h.jobDispatchRepo == nil {
		writeError(ctx, w, serviceUnavailable("job dispatch log"))
		return
	}

	dispatchID := strings.TrimSpace(r.PathValue("dispatchID"))
	item, exists, err := h.jobDispatchRepo.Get(ctx, dispatchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get job dispatch failed", "dispatch_id", dispatchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: dispatch=%s", usecase.ErrNotFound, dispatchID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, item)
}

// finishInternalJob records the outcome of a job run. Jobs triggered without a
// dispatch id (manual curl runs) get a generated one.
func (h *Handler) finishInternalJob(ctx context.Context, event jobscheduler.DispatchEvent, runErr error) {
	event.OccurredAt = time.Now().UTC()
	event.Status = jobscheduler.StatusCompleted
	if runErr != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = runErr.Error()
	}
	h.recordInternalJobDispatch(ctx, event)
}

func (h *Handler) recordInternalJobDispatch(ctx context.Context, event jobscheduler.DispatchEvent) {
	if h.jobDispatchRepo == nil {
		return
	}

	if strings.TrimSpace(event.DispatchID) == "" {
		event.DispatchID = buildManualDispatchID(event.JobName, event.Subject, event.OccurredAt)
	}
	event.TraceID, event.SpanID = traceMetaFromContext(ctx)

	if err := h.jobDispatchRepo.UpsertEvent(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "record internal job dispatch failed",
			"dispatch_id", event.DispatchID,
			"job_name", event.JobName,
			"status", string(event.Status),
			"error", err,
		)
	}
}

func buildManualDispatchID(jobName, subject string, now time.Time) string {
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return "manual-" + sanitizeDispatchPart(jobName) + "-" + sanitizeDispatchPart(subject) + "-" + ts
}

func sanitizeDispatchPart(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return internalJobDispatchUnsafeRegex.ReplaceAllString(value, "-")
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
