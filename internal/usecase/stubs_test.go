package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

type sequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

type stubLeagueRepository struct {
	items []league.League
}

func (r *stubLeagueRepository) List(_ context.Context) ([]league.League, error) {
	return slices.Clone(r.items), nil
}

func (r *stubLeagueRepository) ListBySeason(_ context.Context, seasonID string) ([]league.League, error) {
	out := make([]league.League, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	for _, item := range r.items {
		if item.ID == leagueID {
			return item, true, nil
		}
	}
	return league.League{}, false, nil
}

type stubSeasonRepository struct {
	mu    sync.Mutex
	items map[string]season.Season
}

func (r *stubSeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]season.Season, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubSeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[seasonID]
	return item, ok, nil
}

func (r *stubSeasonRepository) UpdateCurrentWeek(_ context.Context, seasonID string, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[seasonID]
	item.CurrentWeek = week
	r.items[seasonID] = item
	return nil
}

func (r *stubSeasonRepository) SaveWeeklyStatusCards(_ context.Context, seasonID, weekKey string, cards []season.StatusCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[seasonID]
	if item.WeeklyStatusDisplay == nil {
		item.WeeklyStatusDisplay = make(map[string][]season.StatusCard)
	}
	if len(cards) == 0 {
		delete(item.WeeklyStatusDisplay, weekKey)
	} else {
		item.WeeklyStatusDisplay[weekKey] = slices.Clone(cards)
	}
	r.items[seasonID] = item
	return nil
}

type stubTeamRepository struct {
	mu     sync.Mutex
	items  []team.Team
	totals map[string]map[string]int
}

func (r *stubTeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]team.Team, 0)
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubTeamRepository) GetByID(_ context.Context, leagueID, teamID string) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.LeagueID == leagueID && item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *stubTeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, t)
	return nil
}

func (r *stubTeamRepository) Update(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == t.ID {
			r.items[i] = t
		}
	}
	return nil
}

func (r *stubTeamRepository) UpdateTotalScores(_ context.Context, leagueID string, totals map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.totals == nil {
		r.totals = make(map[string]map[string]int)
	}
	r.totals[leagueID] = totals
	return nil
}

type stubContestantRepository struct {
	mu    sync.Mutex
	items []contestant.Contestant
}

func (r *stubContestantRepository) ListBySeason(_ context.Context, seasonID string) ([]contestant.Contestant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]contestant.Contestant, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubContestantRepository) GetByID(_ context.Context, seasonID, contestantID string) (contestant.Contestant, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.SeasonID == seasonID && item.ID == contestantID {
			return item, true, nil
		}
	}
	return contestant.Contestant{}, false, nil
}

func (r *stubContestantRepository) Create(_ context.Context, c contestant.Contestant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, c)
	return nil
}

func (r *stubContestantRepository) Update(_ context.Context, c contestant.Contestant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == c.ID {
			r.items[i] = c
		}
	}
	return nil
}

type stubCompetitionRepository struct {
	mu    sync.Mutex
	items []competition.Competition
}

func (r *stubCompetitionRepository) ListBySeason(_ context.Context, seasonID string) ([]competition.Competition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]competition.Competition, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubCompetitionRepository) GetByID(_ context.Context, seasonID, competitionID string) (competition.Competition, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.SeasonID == seasonID && item.ID == competitionID {
			return item, true, nil
		}
	}
	return competition.Competition{}, false, nil
}

func (r *stubCompetitionRepository) Create(_ context.Context, c competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, c)
	return nil
}

func (r *stubCompetitionRepository) Delete(_ context.Context, seasonID, competitionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = slices.DeleteFunc(r.items, func(c competition.Competition) bool {
		return c.SeasonID == seasonID && c.ID == competitionID
	})
	return nil
}

type stubDraftRepository struct {
	mu    sync.Mutex
	picks []draft.Pick
}

func (r *stubDraftRepository) ListByLeague(_ context.Context, leagueID string) ([]draft.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]draft.Pick, 0)
	for _, p := range r.picks {
		if p.LeagueID == leagueID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubDraftRepository) Create(_ context.Context, p draft.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks = append(r.picks, p)
	return nil
}

func (r *stubDraftRepository) Delete(_ context.Context, leagueID, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks = slices.DeleteFunc(r.picks, func(p draft.Pick) bool {
		return p.LeagueID == leagueID && p.ID == pickID
	})
	return nil
}

type stubRuleSetRepository struct {
	mu    sync.Mutex
	sets  map[string]scoring.RuleSet
	saves int
}

func (r *stubRuleSetRepository) GetByID(_ context.Context, ruleSetID string) (scoring.RuleSet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[ruleSetID]
	return set, ok, nil
}

func (r *stubRuleSetRepository) Save(_ context.Context, set scoring.RuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.ID] = set
	r.saves++
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []live.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event live.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) kinds() []live.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]live.Kind, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

type recordingRecalculator struct {
	mu      sync.Mutex
	seasons []string
}

func (r *recordingRecalculator) RecalculateSeason(_ context.Context, seasonID string) (RecalculateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seasons = append(r.seasons, seasonID)
	return RecalculateResult{SeasonID: seasonID}, nil
}

type stubTrackRepository struct {
	tracks  []challenge.Track
	prompts map[string]challenge.Prompt
}

func promptKey(trackID string, day int) string {
	return fmt.Sprintf("%s/%d", trackID, day)
}

func (r *stubTrackRepository) List(_ context.Context) ([]challenge.Track, error) {
	return slices.Clone(r.tracks), nil
}

func (r *stubTrackRepository) GetByID(_ context.Context, trackID string) (challenge.Track, bool, error) {
	for _, t := range r.tracks {
		if t.ID == trackID {
			return t, true, nil
		}
	}
	return challenge.Track{}, false, nil
}

func (r *stubTrackRepository) GetPrompt(_ context.Context, trackID string, day int) (challenge.Prompt, bool, error) {
	p, ok := r.prompts[promptKey(trackID, day)]
	return p, ok, nil
}

type stubUnlockCodeRepository struct {
	mu    sync.Mutex
	codes map[string]challenge.UnlockCode
}

func (r *stubUnlockCodeRepository) CreateMany(_ context.Context, codes []challenge.UnlockCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codes == nil {
		r.codes = make(map[string]challenge.UnlockCode)
	}
	for _, c := range codes {
		r.codes[c.Code] = c
	}
	return nil
}

func (r *stubUnlockCodeRepository) GetByCode(_ context.Context, code string) (challenge.UnlockCode, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	return c, ok, nil
}

func (r *stubUnlockCodeRepository) MarkRedeemed(_ context.Context, code, userID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok || c.IsRedeemed() {
		return false, nil
	}
	c.RedeemedBy = userID
	c.RedeemedAt = &at
	r.codes[code] = c
	return true, nil
}

type stubSettingsRepository struct {
	mu    sync.Mutex
	items map[string]challenge.UserSettings
}

func (r *stubSettingsRepository) Get(_ context.Context, userID string) (challenge.UserSettings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[userID]
	return s, ok, nil
}

func (r *stubSettingsRepository) Save(_ context.Context, settings challenge.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[string]challenge.UserSettings)
	}
	r.items[settings.UserID] = settings
	return nil
}

type stubJournalRepository struct {
	mu      sync.Mutex
	entries []challenge.JournalEntry
}

func (r *stubJournalRepository) Upsert(_ context.Context, entry challenge.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.UserID == entry.UserID && e.TrackID == entry.TrackID && e.Day == entry.Day {
			entry.CreatedAt = e.CreatedAt
			r.entries[i] = entry
			return nil
		}
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubJournalRepository) ListByTrack(_ context.Context, userID, trackID string) ([]challenge.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]challenge.JournalEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID && e.TrackID == trackID {
			out = append(out, e)
		}
	}
	return out, nil
}

type sentMail struct {
	msgs []MailMessage
}

func (m *sentMail) Send(_ context.Context, msg MailMessage) (string, error) {
	m.msgs = append(m.msgs, msg)
	return fmt.Sprintf("msg-%d", len(m.msgs)), nil
}

type queuedJob struct {
	path    string
	payload any
	delay   time.Duration
	dedupID string
}

type recordingQueue struct {
	jobs []queuedJob
}

func (q *recordingQueue) Enqueue(_ context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	q.jobs = append(q.jobs, queuedJob{path: path, payload: payload, delay: delay, dedupID: deduplicationID})
	return nil
}

func intPtr(v int) *int {
	return &v
}
