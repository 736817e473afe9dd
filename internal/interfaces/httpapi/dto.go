package httpapi

import (
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

// Requests.

type setCurrentWeekRequest struct {
	Week int `json:"week" validate:"required,gte=1"`
}

type contestantRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=80"`
	LastName   string `json:"last_name" validate:"required,max=80"`
	Nickname   string `json:"nickname" validate:"omitempty,max=80"`
	Status     string `json:"status" validate:"omitempty,oneof=active evicted jury"`
	PhotoURL   string `json:"photo_url" validate:"omitempty,url"`
	EnteredDay int    `json:"entered_day" validate:"gte=0"`
	EvictedDay *int   `json:"evicted_day" validate:"omitempty,gte=0"`
}

type competitionRequest struct {
	Week             int      `json:"week" validate:"required,gte=1"`
	Type             string   `json:"type" validate:"required,oneof=HOH VETO NOMINATIONS EVICTION BLOCK_BUSTER SPECIAL_EVENT"`
	WinnerID         string   `json:"winner_id"`
	Nominees         []string `json:"nominees" validate:"omitempty,dive,required"`
	EvictedID        string   `json:"evicted_id"`
	UsedOnID         string   `json:"used_on_id"`
	ReplacementNomID string   `json:"replacement_nom_id"`
	SpecialEventCode string   `json:"special_event_code" validate:"omitempty,max=64"`
	AirDate          string   `json:"air_date"`
	EvictedDay       *int     `json:"evicted_day" validate:"omitempty,gte=0"`
}

type statusCardRequest struct {
	ID       string `json:"id" validate:"required,max=64"`
	Title    string `json:"title" validate:"required,max=120"`
	RuleCode string `json:"rule_code" validate:"required,max=64"`
	Action   string `json:"action" validate:"required"`
}

type statusCardsRequest struct {
	Cards []statusCardRequest `json:"cards" validate:"dive"`
}

type teamRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	OwnerUserIDs []string `json:"owner_user_ids" validate:"omitempty,dive,required"`
	DraftOrder   int      `json:"draft_order" validate:"required,gte=1"`
	FAAB         *int     `json:"faab" validate:"omitempty,gte=0"`
}

type draftPickRequest struct {
	TeamID       string `json:"team_id" validate:"required"`
	ContestantID string `json:"contestant_id" validate:"required"`
}

// ruleRequest.Code defaults to the code in the path.
type ruleRequest struct {
	Code   string `json:"code" validate:"omitempty,max=64"`
	Label  string `json:"label" validate:"omitempty,max=120"`
	Points int    `json:"points"`
}

type redeemCodeRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

type settingsRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	ActiveTrackID   string `json:"active_track_id"`
	ReminderHour    *int   `json:"reminder_hour" validate:"omitempty,gte=0,lte=23"`
	Timezone        string `json:"timezone" validate:"omitempty,timezone"`
	ReminderEnabled bool   `json:"reminder_enabled"`
}

type journalRequest struct {
	Body string `json:"body" validate:"required,max=20000"`
}

type recalculateScoresRequest struct {
	SeasonID   string `json:"seasonId" validate:"required"`
	DispatchID string `json:"dispatchId"`
}

type sendReminderRequest struct {
	UserID     string `json:"userId" validate:"required"`
	DispatchID string `json:"dispatchId"`
}

type unlockCodesRequest struct {
	TrackID string `json:"track_id" validate:"required"`
	Count   int    `json:"count" validate:"required,gte=1,lte=100"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// Responses.

type seasonDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Number      int       `json:"number"`
	StartsAt    time.Time `json:"starts_at"`
	CurrentWeek int       `json:"current_week"`
}

type contestantDTO struct {
	ID           string `json:"id"`
	SeasonID     string `json:"season_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Nickname     string `json:"nickname,omitempty"`
	DisplayName  string `json:"display_name"`
	Status       string `json:"status"`
	PhotoURL     string `json:"photo_url,omitempty"`
	EnteredDay   int    `json:"entered_day"`
	EvictedDay   *int   `json:"evicted_day,omitempty"`
	EvictionWeek *int   `json:"eviction_week,omitempty"`
}

type competitionDTO struct {
	ID               string     `json:"id"`
	SeasonID         string     `json:"season_id"`
	Week             int        `json:"week"`
	Type             string     `json:"type"`
	WinnerID         string     `json:"winner_id,omitempty"`
	Nominees         []string   `json:"nominees,omitempty"`
	EvictedID        string     `json:"evicted_id,omitempty"`
	UsedOnID         string     `json:"used_on_id,omitempty"`
	ReplacementNomID string     `json:"replacement_nom_id,omitempty"`
	SpecialEventCode string     `json:"special_event_code,omitempty"`
	AirDate          *time.Time `json:"air_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type statusCardDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	RuleCode string `json:"rule_code"`
	Action   string `json:"action"`
}

type contestantRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cardViewDTO struct {
	Card          statusCardDTO      `json:"card"`
	Resolved      bool               `json:"resolved"`
	Placeholder   string             `json:"placeholder,omitempty"`
	CompetitionID string             `json:"competition_id,omitempty"`
	Contestants   []contestantRefDTO `json:"contestants"`
}

type weeklyStatusDTO struct {
	SeasonID   string        `json:"season_id"`
	Week       int           `json:"week"`
	Configured bool          `json:"configured"`
	Cards      []cardViewDTO `json:"cards"`
}

type leagueDTO struct {
	ID        string    `json:"id"`
	SeasonID  string    `json:"season_id"`
	Name      string    `json:"name"`
	RuleSetID string    `json:"rule_set_id"`
	CreatedAt time.Time `json:"created_at"`
}

type teamDTO struct {
	ID           string   `json:"id"`
	LeagueID     string   `json:"league_id"`
	Name         string   `json:"name"`
	OwnerUserIDs []string `json:"owner_user_ids"`
	DraftOrder   int      `json:"draft_order"`
	FAAB         int      `json:"faab"`
	TotalScore   int      `json:"total_score"`
}

type draftSlotDTO struct {
	Pick     int    `json:"pick"`
	Round    int    `json:"round"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

type draftPickDTO struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"team_id"`
	ContestantID string    `json:"contestant_id"`
	Pick         int       `json:"pick"`
	Round        int       `json:"round"`
	CreatedAt    time.Time `json:"created_at"`
}

type draftBoardDTO struct {
	LeagueID    string           `json:"league_id"`
	Slots       []draftSlotDTO   `json:"slots"`
	PicksByTeam map[string][]int `json:"picks_by_team"`
	Picks       []draftPickDTO   `json:"picks"`
	Next        *draftSlotDTO    `json:"next,omitempty"`
	Complete    bool             `json:"complete"`
}

type contestantStatsDTO struct {
	Contestant   contestantDTO `json:"contestant"`
	TeamID       string        `json:"team_id,omitempty"`
	TeamName     string        `json:"team_name"`
	TotalPoints  int           `json:"total_points"`
	TotalWins    int           `json:"total_wins"`
	TotalNoms    int           `json:"total_noms"`
	EvictionWeek *int          `json:"eviction_week,omitempty"`
}

type teamStandingDTO struct {
	Rank          int      `json:"rank"`
	Team          teamDTO  `json:"team"`
	TotalPoints   int      `json:"total_points"`
	ContestantIDs []string `json:"contestant_ids"`
}

type scoreboardDTO struct {
	LeagueID  string               `json:"league_id"`
	SeasonID  string               `json:"season_id"`
	Week      int                  `json:"week"`
	Stats     []contestantStatsDTO `json:"stats"`
	Standings []teamStandingDTO    `json:"standings"`
}

type ruleDTO struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

type ruleSetDTO struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Rules []ruleDTO `json:"rules"`
}

type trackDTO struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Days        int    `json:"days"`
	IsPremium   bool   `json:"is_premium"`
	Accessible  bool   `json:"accessible"`
	Active      bool   `json:"active"`
	CurrentDay  int    `json:"current_day"`
}

type promptDTO struct {
	TrackID    string `json:"track_id"`
	Day        int    `json:"day"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	HTML       string `json:"html"`
	CurrentDay int    `json:"current_day"`
}

type settingsDTO struct {
	UserID           string     `json:"user_id"`
	Email            string     `json:"email,omitempty"`
	ActiveTrackID    string     `json:"active_track_id,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	ReminderHour     int        `json:"reminder_hour"`
	Timezone         string     `json:"timezone,omitempty"`
	ReminderEnabled  bool       `json:"reminder_enabled"`
	UnlockedTrackIDs []string   `json:"unlocked_track_ids"`
}

type journalEntryDTO struct {
	TrackID   string    `json:"track_id"`
	Day       int       `json:"day"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type unlockCodeDTO struct {
	Code      string    `json:"code"`
	TrackID   string    `json:"track_id"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type liveMessageDTO struct {
	Type       string        `json:"type"`
	Cause      string        `json:"cause,omitempty"`
	Draft      draftBoardDTO `json:"draft"`
	Scoreboard scoreboardDTO `json:"scoreboard"`
	At         time.Time     `json:"at"`
}

func seasonToDTO(s season.Season) seasonDTO {
	return seasonDTO{
		ID:          s.ID,
		Name:        s.Name,
		Number:      s.Number,
		StartsAt:    s.StartsAt,
		CurrentWeek: s.CurrentWeek,
	}
}

func contestantToDTO(c contestant.Contestant) contestantDTO {
	return contestantDTO{
		ID:           c.ID,
		SeasonID:     c.SeasonID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Nickname:     c.Nickname,
		DisplayName:  c.DisplayName(),
		Status:       string(c.Status),
		PhotoURL:     c.PhotoURL,
		EnteredDay:   c.EnteredDay,
		EvictedDay:   c.EvictedDay,
		EvictionWeek: c.EvictionWeek(),
	}
}

func competitionToDTO(c competition.Competition) competitionDTO {
	out := competitionDTO{
		ID:               c.ID,
		SeasonID:         c.SeasonID,
		Week:             c.Week,
		Type:             string(c.Type),
		WinnerID:         c.WinnerID,
		Nominees:         c.Nominees,
		EvictedID:        c.EvictedID,
		UsedOnID:         c.UsedOnID,
		ReplacementNomID: c.ReplacementNomID,
		SpecialEventCode: c.SpecialEventCode,
		CreatedAt:        c.CreatedAt,
	}
	if !c.AirDate.IsZero() {
		airDate := c.AirDate
		out.AirDate = &airDate
	}
	return out
}

func statusCardToDTO(c season.StatusCard) statusCardDTO {
	return statusCardDTO{ID: c.ID, Title: c.Title, RuleCode: c.RuleCode, Action: string(c.Action)}
}

func weeklyStatusToDTO(ws usecase.WeeklyStatus) weeklyStatusDTO {
	cards := make([]cardViewDTO, 0, len(ws.Cards))
	for _, view := range ws.Cards {
		refs := make([]contestantRefDTO, 0, len(view.Contestants))
		for _, ref := range view.Contestants {
			refs = append(refs, contestantRefDTO{ID: ref.ID, Name: ref.Name})
		}
		cards = append(cards, cardViewDTO{
			Card:          statusCardToDTO(view.Card),
			Resolved:      view.Resolved,
			Placeholder:   view.Placeholder,
			CompetitionID: view.CompetitionID,
			Contestants:   refs,
		})
	}
	return weeklyStatusDTO{SeasonID: ws.SeasonID, Week: ws.Week, Configured: ws.Configured, Cards: cards}
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{ID: l.ID, SeasonID: l.SeasonID, Name: l.Name, RuleSetID: l.RuleSetID, CreatedAt: l.CreatedAt}
}

func teamToDTO(t team.Team) teamDTO {
	owners := t.OwnerUserIDs
	if owners == nil {
		owners = []string{}
	}
	return teamDTO{
		ID:           t.ID,
		LeagueID:     t.LeagueID,
		Name:         t.Name,
		OwnerUserIDs: owners,
		DraftOrder:   t.DraftOrder,
		FAAB:         t.FAAB,
		TotalScore:   t.TotalScore,
	}
}

func draftSlotToDTO(s draft.Slot) draftSlotDTO {
	return draftSlotDTO{Pick: s.Pick, Round: s.Round, TeamID: s.Team.ID, TeamName: s.Team.Name}
}

func draftPickToDTO(p draft.Pick) draftPickDTO {
	return draftPickDTO{
		ID:           p.ID,
		TeamID:       p.TeamID,
		ContestantID: p.ContestantID,
		Pick:         p.Pick,
		Round:        p.Round,
		CreatedAt:    p.CreatedAt,
	}
}

func draftBoardToDTO(b usecase.DraftBoard) draftBoardDTO {
	out := draftBoardDTO{
		LeagueID:    b.League.ID,
		Slots:       make([]draftSlotDTO, 0, len(b.Slots)),
		PicksByTeam: b.PicksByTeam,
		Picks:       make([]draftPickDTO, 0, len(b.Picks)),
		Complete:    b.Complete,
	}
	if out.PicksByTeam == nil {
		out.PicksByTeam = map[string][]int{}
	}
	for _, slot := range b.Slots {
		out.Slots = append(out.Slots, draftSlotToDTO(slot))
	}
	for _, pick := range b.Picks {
		out.Picks = append(out.Picks, draftPickToDTO(pick))
	}
	if b.Next != nil {
		next := draftSlotToDTO(*b.Next)
		out.Next = &next
	}
	return out
}

func contestantStatsToDTO(s scoring.ContestantStats) contestantStatsDTO {
	return contestantStatsDTO{
		Contestant:   contestantToDTO(s.Contestant),
		TeamID:       s.TeamID,
		TeamName:     s.TeamName,
		TotalPoints:  s.TotalPoints,
		TotalWins:    s.TotalWins,
		TotalNoms:    s.TotalNoms,
		EvictionWeek: s.EvictionWeek,
	}
}

func scoreboardToDTO(sb usecase.Scoreboard) scoreboardDTO {
	out := scoreboardDTO{
		LeagueID:  sb.League.ID,
		SeasonID:  sb.Season.ID,
		Week:      sb.Week,
		Stats:     make([]contestantStatsDTO, 0, len(sb.Stats)),
		Standings: make([]teamStandingDTO, 0, len(sb.Standings)),
	}
	for _, stat := range sb.Stats {
		out.Stats = append(out.Stats, contestantStatsToDTO(stat))
	}
	for _, standing := range sb.Standings {
		ids := standing.ContestantIDs
		if ids == nil {
			ids = []string{}
		}
		out.Standings = append(out.Standings, teamStandingDTO{
			Rank:          standing.Rank,
			Team:          teamToDTO(standing.Team),
			TotalPoints:   standing.TotalPoints,
			ContestantIDs: ids,
		})
	}
	return out
}

func scoringRule(pathCode string, req ruleRequest) scoring.Rule {
	code := req.Code
	if code == "" {
		code = pathCode
	}
	return scoring.Rule{Code: code, Label: req.Label, Points: req.Points}
}

func ruleSetToDTO(s scoring.RuleSet) ruleSetDTO {
	rules := make([]ruleDTO, 0, len(s.Rules))
	for _, r := range s.Rules {
		rules = append(rules, ruleDTO{Code: r.Code, Label: r.Label, Points: r.Points})
	}
	return ruleSetDTO{ID: s.ID, Name: s.Name, Rules: rules}
}

func trackSummaryToDTO(s usecase.TrackSummary) trackDTO {
	return trackDTO{
		ID:          s.Track.ID,
		Slug:        s.Track.Slug,
		Title:       s.Track.Title,
		Description: s.Track.Description,
		Days:        s.Track.Days,
		IsPremium:   s.Track.IsPremium,
		Accessible:  s.Accessible,
		Active:      s.Active,
		CurrentDay:  s.CurrentDay,
	}
}

func promptViewToDTO(v usecase.PromptView) promptDTO {
	return promptDTO{
		TrackID:    v.Prompt.TrackID,
		Day:        v.Prompt.Day,
		Title:      v.Prompt.Title,
		Body:       v.Prompt.Body,
		HTML:       v.HTML,
		CurrentDay: v.CurrentDay,
	}
}

func settingsToDTO(s challenge.UserSettings) settingsDTO {
	out := settingsDTO{
		UserID:           s.UserID,
		Email:            s.Email,
		ActiveTrackID:    s.ActiveTrackID,
		ReminderHour:     s.ReminderHour,
		Timezone:         s.Timezone,
		ReminderEnabled:  s.ReminderEnabled,
		UnlockedTrackIDs: s.UnlockedTrackIDs,
	}
	if out.UnlockedTrackIDs == nil {
		out.UnlockedTrackIDs = []string{}
	}
	if !s.StartedAt.IsZero() {
		startedAt := s.StartedAt
		out.StartedAt = &startedAt
	}
	return out
}

func journalEntryToDTO(e challenge.JournalEntry) journalEntryDTO {
	return journalEntryDTO{TrackID: e.TrackID, Day: e.Day, Body: e.Body, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func unlockCodeToDTO(c challenge.UnlockCode) unlockCodeDTO {
	return unlockCodeDTO{Code: c.Code, TrackID: c.TrackID, Email: c.Email, CreatedAt: c.CreatedAt}
}
