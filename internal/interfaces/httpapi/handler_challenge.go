package httpapi

import (
	"net/http"

	"github.com/riskibarqy/eviction-league/internal/usecase"
)

func (h *Handler) ListChallengeTracks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChallengeTracks")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tracks, err := h.challengeService.ListTracks(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list challenge tracks failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]trackDTO, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, trackSummaryToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetChallengePrompt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChallengePrompt")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := pathInt(r, "day")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	trackID := r.PathValue("trackID")
	view, err := h.challengeService.GetPrompt(ctx, principal.UserID, trackID, day)
	if err != nil {
		h.logger.WarnContext(ctx, "get challenge prompt failed", "user_id", principal.UserID, "track_id", trackID, "day", day, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, promptViewToDTO(view))
}

func (h *Handler) RedeemUnlockCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RedeemUnlockCode")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req redeemCodeRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.challengeService.RedeemUnlockCode(ctx, principal.UserID, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "redeem unlock code failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) GetChallengeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChallengeSettings")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.challengeService.GetSettings(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get challenge settings failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) UpdateChallengeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateChallengeSettings")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req settingsRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	email := req.Email
	if email == "" {
		email = principal.Email
	}
	settings, err := h.challengeService.UpdateSettings(ctx, usecase.SettingsInput{
		UserID:          principal.UserID,
		Email:           email,
		ActiveTrackID:   req.ActiveTrackID,
		ReminderHour:    req.ReminderHour,
		Timezone:        req.Timezone,
		ReminderEnabled: req.ReminderEnabled,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update challenge settings failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) ListJournalEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJournalEntries")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	trackID := r.PathValue("trackID")
	entries, err := h.challengeService.ListJournalEntries(ctx, principal.UserID, trackID)
	if err != nil {
		h.logger.WarnContext(ctx, "list journal entries failed", "user_id", principal.UserID, "track_id", trackID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]journalEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, journalEntryToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SaveJournalEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveJournalEntry")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := pathInt(r, "day")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req journalRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	trackID := r.PathValue("trackID")
	entry, err := h.challengeService.SaveJournalEntry(ctx, principal.UserID, trackID, day, req.Body)
	if err != nil {
		h.logger.WarnContext(ctx, "save journal entry failed", "user_id", principal.UserID, "track_id", trackID, "day", day, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, journalEntryToDTO(entry))
}
