package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// registerAdminRoutes serves the commissioner surface: bearer auth plus ADMIN_USER_IDS membership.
func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, adminUserIDs []string) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, RequireAdmin(adminUserIDs, fn)))
	}

	admin("GET /v1/seasons", handler.ListSeasons)
	admin("GET /v1/seasons/{seasonID}", handler.GetSeason)
	admin("PUT /v1/seasons/{seasonID}/current-week", handler.SetCurrentWeek)
	admin("GET /v1/seasons/{seasonID}/contestants", handler.ListContestants)
	admin("POST /v1/seasons/{seasonID}/contestants", handler.CreateContestant)
	admin("PUT /v1/seasons/{seasonID}/contestants/{contestantID}", handler.UpdateContestant)
	admin("GET /v1/seasons/{seasonID}/competitions", handler.ListCompetitions)
	admin("POST /v1/seasons/{seasonID}/competitions", handler.RecordCompetition)
	admin("DELETE /v1/seasons/{seasonID}/competitions/{competitionID}", handler.DeleteCompetition)
	admin("GET /v1/seasons/{seasonID}/weeks/{week}/status", handler.GetWeeklyStatus)
	admin("PUT /v1/seasons/{seasonID}/weeks/{week}/status", handler.SaveWeeklyStatusCards)

	admin("GET /v1/leagues", handler.ListLeagues)
	admin("GET /v1/leagues/{leagueID}", handler.GetLeague)
	admin("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	admin("POST /v1/leagues/{leagueID}/teams", handler.CreateTeam)
	admin("PUT /v1/leagues/{leagueID}/teams/{teamID}", handler.UpdateTeam)
	admin("GET /v1/leagues/{leagueID}/draft", handler.GetDraftBoard)
	admin("POST /v1/leagues/{leagueID}/draft/picks", handler.MakeDraftPick)
	admin("DELETE /v1/leagues/{leagueID}/draft/picks/last", handler.UndoLastDraftPick)
	admin("GET /v1/leagues/{leagueID}/scoreboard", handler.GetScoreboard)
	admin("GET /v1/leagues/{leagueID}/live", handler.WatchLeague)

	admin("GET /v1/rule-sets/{ruleSetID}", handler.GetRuleSet)
	admin("PUT /v1/rule-sets/{ruleSetID}/rules/{code}", handler.UpsertRule)
	admin("DELETE /v1/rule-sets/{ruleSetID}/rules/{code}", handler.DeleteRule)

	admin("GET /v1/jobs/dispatches/{dispatchID}", handler.GetJobDispatch)
}

func registerChallengeRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/challenge/tracks", RequireAuth(verifier, http.HandlerFunc(handler.ListChallengeTracks)))
	mux.Handle("GET /v1/challenge/tracks/{trackID}/days/{day}", RequireAuth(verifier, http.HandlerFunc(handler.GetChallengePrompt)))
	mux.Handle("GET /v1/challenge/tracks/{trackID}/journal", RequireAuth(verifier, http.HandlerFunc(handler.ListJournalEntries)))
	mux.Handle("PUT /v1/challenge/tracks/{trackID}/days/{day}/journal", RequireAuth(verifier, http.HandlerFunc(handler.SaveJournalEntry)))
	mux.Handle("POST /v1/challenge/unlock-codes/redeem", RequireAuth(verifier, http.HandlerFunc(handler.RedeemUnlockCode)))
	mux.Handle("GET /v1/challenge/settings", RequireAuth(verifier, http.HandlerFunc(handler.GetChallengeSettings)))
	mux.Handle("PUT /v1/challenge/settings", RequireAuth(verifier, http.HandlerFunc(handler.UpdateChallengeSettings)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recalculate-scores", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalculateScoresJob)))
	mux.Handle("POST /v1/internal/jobs/send-reminder", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSendReminderJob)))
	mux.Handle("POST /v1/internal/unlock-codes", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GenerateUnlockCodes)))
}
