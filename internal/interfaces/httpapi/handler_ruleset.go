package httpapi

import "net/http"

func (h *Handler) GetRuleSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRuleSet")
	defer span.End()

	ruleSetID := r.PathValue("ruleSetID")
	set, err := h.ruleSetService.GetRuleSet(ctx, ruleSetID)
	if err != nil {
		h.logger.WarnContext(ctx, "get rule set failed", "rule_set_id", ruleSetID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ruleSetToDTO(set))
}

// UpsertRule treats the path code as the rule being edited; the body code may rename it.
func (h *Handler) UpsertRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertRule")
	defer span.End()

	var req ruleRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ruleSetID := r.PathValue("ruleSetID")
	originalCode := r.PathValue("code")
	set, err := h.ruleSetService.UpsertRule(ctx, ruleSetID, originalCode, scoringRule(originalCode, req))
	if err != nil {
		h.logger.WarnContext(ctx, "upsert rule failed", "rule_set_id", ruleSetID, "code", originalCode, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ruleSetToDTO(set))
}

func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteRule")
	defer span.End()

	ruleSetID := r.PathValue("ruleSetID")
	code := r.PathValue("code")
	set, err := h.ruleSetService.DeleteRule(ctx, ruleSetID, code)
	if err != nil {
		h.logger.WarnContext(ctx, "delete rule failed", "rule_set_id", ruleSetID, "code", code, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ruleSetToDTO(set))
}
