package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/eviction-league/internal/usecase"
)

const defaultFAAB = 100

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teams, err := h.leagueService.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	faab := defaultFAAB
	if req.FAAB != nil {
		faab = *req.FAAB
	}

	leagueID := r.PathValue("leagueID")
	item, err := h.leagueService.CreateTeam(ctx, usecase.TeamInput{
		LeagueID:     leagueID,
		Name:         req.Name,
		OwnerUserIDs: req.OwnerUserIDs,
		DraftOrder:   req.DraftOrder,
		FAAB:         faab,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.FAAB == nil {
		writeError(ctx, w, fmt.Errorf("%w: faab is required", usecase.ErrInvalidInput))
		return
	}

	leagueID := r.PathValue("leagueID")
	teamID := r.PathValue("teamID")
	item, err := h.leagueService.UpdateTeam(ctx, usecase.TeamInput{
		LeagueID:     leagueID,
		TeamID:       teamID,
		Name:         req.Name,
		OwnerUserIDs: req.OwnerUserIDs,
		DraftOrder:   req.DraftOrder,
		FAAB:         *req.FAAB,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "league_id", leagueID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetDraftBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftBoard")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	board, err := h.draftService.GetBoard(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft board failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, draftBoardToDTO(board))
}

func (h *Handler) MakeDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakeDraftPick")
	defer span.End()

	var req draftPickRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	pick, err := h.draftService.MakePick(ctx, leagueID, req.TeamID, req.ContestantID)
	if err != nil {
		h.logger.WarnContext(ctx, "make draft pick failed",
			"league_id", leagueID,
			"team_id", req.TeamID,
			"contestant_id", req.ContestantID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, draftPickToDTO(pick))
}

func (h *Handler) UndoLastDraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoLastDraftPick")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	pick, err := h.draftService.UndoLastPick(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "undo draft pick failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, draftPickToDTO(pick))
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	week, err := optionalQueryInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	requested := 0
	if week != nil {
		requested = *week
	}

	leagueID := r.PathValue("leagueID")
	board, err := h.scoreboardService.GetScoreboard(ctx, leagueID, requested)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoreboard failed", "league_id", leagueID, "week", requested, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(board))
}
