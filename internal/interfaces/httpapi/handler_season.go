package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.ListSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, seasonToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) SetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCurrentWeek")
	defer span.End()

	var req setCurrentWeekRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.SetCurrentWeek(ctx, seasonID, req.Week)
	if err != nil {
		h.logger.WarnContext(ctx, "set current week failed", "season_id", seasonID, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) ListContestants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContestants")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	contestants, err := h.seasonService.ListContestants(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list contestants failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestantDTO, 0, len(contestants))
	for _, c := range contestants {
		items = append(items, contestantToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateContestant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateContestant")
	defer span.End()

	var req contestantRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.CreateContestant(ctx, contestantInputFromRequest(r.PathValue("seasonID"), "", req))
	if err != nil {
		h.logger.WarnContext(ctx, "create contestant failed", "season_id", r.PathValue("seasonID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, contestantToDTO(item))
}

func (h *Handler) UpdateContestant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateContestant")
	defer span.End()

	var req contestantRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	contestantID := r.PathValue("contestantID")
	item, err := h.seasonService.UpdateContestant(ctx, contestantInputFromRequest(seasonID, contestantID, req))
	if err != nil {
		h.logger.WarnContext(ctx, "update contestant failed", "season_id", seasonID, "contestant_id", contestantID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, contestantToDTO(item))
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	week, err := optionalQueryInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	items, err := h.competitionService.List(ctx, seasonID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list competitions failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(items))
	for _, c := range items {
		out = append(out, competitionToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RecordCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordCompetition")
	defer span.End()

	var req competitionRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	airDate, err := parseAirDate(req.AirDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	item, err := h.competitionService.Record(ctx, usecase.CompetitionInput{
		SeasonID:         seasonID,
		Week:             req.Week,
		Type:             req.Type,
		WinnerID:         req.WinnerID,
		Nominees:         req.Nominees,
		EvictedID:        req.EvictedID,
		UsedOnID:         req.UsedOnID,
		ReplacementNomID: req.ReplacementNomID,
		SpecialEventCode: req.SpecialEventCode,
		AirDate:          airDate,
		EvictedDay:       req.EvictedDay,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record competition failed", "season_id", seasonID, "type", req.Type, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, competitionToDTO(item))
}

func (h *Handler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCompetition")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	competitionID := r.PathValue("competitionID")
	if err := h.competitionService.Delete(ctx, seasonID, competitionID); err != nil {
		h.logger.WarnContext(ctx, "delete competition failed", "season_id", seasonID, "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": competitionID})
}

func (h *Handler) GetWeeklyStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyStatus")
	defer span.End()

	week, err := pathInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	status, err := h.weeklyStatusService.Get(ctx, seasonID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly status failed", "season_id", seasonID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weeklyStatusToDTO(status))
}

func (h *Handler) SaveWeeklyStatusCards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveWeeklyStatusCards")
	defer span.End()

	week, err := pathInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req statusCardsRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cards := make([]season.StatusCard, 0, len(req.Cards))
	for _, c := range req.Cards {
		cards = append(cards, season.StatusCard{
			ID:       c.ID,
			Title:    c.Title,
			RuleCode: c.RuleCode,
			Action:   season.CardAction(c.Action),
		})
	}

	seasonID := r.PathValue("seasonID")
	status, err := h.weeklyStatusService.SaveCards(ctx, seasonID, week, cards)
	if err != nil {
		h.logger.WarnContext(ctx, "save weekly status cards failed", "season_id", seasonID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weeklyStatusToDTO(status))
}

func contestantInputFromRequest(seasonID, contestantID string, req contestantRequest) usecase.ContestantInput {
	return usecase.ContestantInput{
		SeasonID:     seasonID,
		ContestantID: contestantID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Nickname:     req.Nickname,
		Status:       req.Status,
		PhotoURL:     req.PhotoURL,
		EnteredDay:   req.EnteredDay,
		EvictedDay:   req.EvictedDay,
	}
}

// parseAirDate accepts RFC 3339 timestamps or plain dates.
func parseAirDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: air_date must be RFC3339 or YYYY-MM-DD, got %q", usecase.ErrInvalidInput, raw)
	}
	return t, nil
}
