package usecase

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

const (
	maxUnlockCodesPerBatch = 100
	defaultReminderHour    = 8
	sendReminderJobPath    = "/v1/internal/jobs/send-reminder"
)

type ChallengeConfig struct {
	// CodeRandom overrides the unlock code entropy source; nil uses crypto/rand.
	CodeRandom io.Reader
}

type TrackSummary struct {
	Track      challenge.Track
	Accessible bool
	Active     bool
	CurrentDay int
}

type PromptView struct {
	Prompt     challenge.Prompt
	HTML       string
	CurrentDay int
}

// SettingsInput replaces the user's preferences. A nil ReminderHour keeps the stored hour.
type SettingsInput struct {
	UserID          string
	Email           string
	ActiveTrackID   string
	ReminderHour    *int
	Timezone        string
	ReminderEnabled bool
}

type ReminderResult struct {
	UserID    string    `json:"user_id"`
	Sent      bool      `json:"sent"`
	Skipped   string    `json:"skipped,omitempty"`
	Day       int       `json:"day,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	NextAt    time.Time `json:"next_at,omitempty"`
}

type reminderPayload struct {
	UserID     string `json:"userId"`
	DispatchID string `json:"dispatchId,omitempty"`
}

type ChallengeService struct {
	trackRepo    challenge.TrackRepository
	codeRepo     challenge.UnlockCodeRepository
	settingsRepo challenge.SettingsRepository
	journalRepo  challenge.JournalRepository
	renderer     MarkdownRenderer
	mailer       Mailer
	queue        JobQueue
	clock        clockwork.Clock
	cfg          ChallengeConfig
	logger       *logging.Logger
}

func NewChallengeService(
	trackRepo challenge.TrackRepository,
	codeRepo challenge.UnlockCodeRepository,
	settingsRepo challenge.SettingsRepository,
	journalRepo challenge.JournalRepository,
	renderer MarkdownRenderer,
	mailer Mailer,
	queue JobQueue,
	clock clockwork.Clock,
	cfg ChallengeConfig,
	logger *logging.Logger,
) *ChallengeService {
	if mailer == nil {
		mailer = NewNoopMailer()
	}
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChallengeService{
		trackRepo:    trackRepo,
		codeRepo:     codeRepo,
		settingsRepo: settingsRepo,
		journalRepo:  journalRepo,
		renderer:     renderer,
		mailer:       mailer,
		queue:        queue,
		clock:        clock,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *ChallengeService) ListTracks(ctx context.Context, userID string) ([]TrackSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.ListTracks")
	defer span.End()

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	tracks, err := s.trackRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}

	now := s.clock.Now()
	out := make([]TrackSummary, 0, len(tracks))
	for _, t := range tracks {
		item := TrackSummary{
			Track:      t,
			Accessible: challenge.CanAccess(t, settings),
			Active:     settings.ActiveTrackID == t.ID,
		}
		if item.Active {
			item.CurrentDay = challenge.CurrentDay(settings, now)
		}
		out = append(out, item)
	}
	return out, nil
}

// GetPrompt returns one day of a track. Days past the user's current day stay
// hidden; a track the user has not started previews day 1 only.
func (s *ChallengeService) GetPrompt(ctx context.Context, userID, trackID string, day int) (PromptView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.GetPrompt")
	defer span.End()

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return PromptView{}, err
	}
	currentDay, err := s.checkDayAccess(ctx, settings, trackID, day)
	if err != nil {
		return PromptView{}, err
	}

	prompt, exists, err := s.trackRepo.GetPrompt(ctx, trackID, day)
	if err != nil {
		return PromptView{}, fmt.Errorf("get prompt: %w", err)
	}
	if !exists {
		return PromptView{}, fmt.Errorf("%w: track=%s day=%d", ErrNotFound, trackID, day)
	}

	rendered, err := s.render(prompt.Body)
	if err != nil {
		return PromptView{}, err
	}
	return PromptView{Prompt: prompt, HTML: rendered, CurrentDay: currentDay}, nil
}

func (s *ChallengeService) GenerateUnlockCodes(ctx context.Context, trackID string, count int, email string) ([]challenge.UnlockCode, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.GenerateUnlockCodes")
	defer span.End()

	if count < 1 || count > maxUnlockCodesPerBatch {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, maxUnlockCodesPerBatch)
	}
	track, err := s.getTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	now := s.clock.Now().UTC()
	codes := make([]challenge.UnlockCode, 0, count)
	seen := make(map[string]struct{}, count)
	for len(codes) < count {
		code, err := challenge.NewCode(s.cfg.CodeRandom)
		if err != nil {
			return nil, fmt.Errorf("generate unlock code: %w", err)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, challenge.UnlockCode{
			Code:      code,
			TrackID:   track.ID,
			Email:     email,
			CreatedAt: now,
		})
	}

	if err := s.codeRepo.CreateMany(ctx, codes); err != nil {
		return nil, fmt.Errorf("create unlock codes: %w", err)
	}

	if email != "" {
		msg := MailMessage{
			To:      email,
			Subject: fmt.Sprintf("Your unlock codes for %s", track.Title),
			HTML:    unlockCodesHTML(track, codes),
		}
		if _, err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "send unlock codes mail failed", "track_id", track.ID, "count", len(codes), "error", err)
		}
	}

	s.logger.InfoContext(ctx, "unlock codes generated", "track_id", track.ID, "count", len(codes))
	return codes, nil
}

// RedeemUnlockCode unlocks the code's track for the user. Redeeming a code the
// user already owns is a no-op.
func (s *ChallengeService) RedeemUnlockCode(ctx context.Context, userID, rawCode string) (challenge.UserSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.RedeemUnlockCode")
	defer span.End()

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return challenge.UserSettings{}, err
	}
	code := challenge.NormalizeCode(rawCode)
	if code == "" {
		return challenge.UserSettings{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	item, exists, err := s.codeRepo.GetByCode(ctx, code)
	if err != nil {
		return challenge.UserSettings{}, fmt.Errorf("get unlock code: %w", err)
	}
	if !exists {
		return challenge.UserSettings{}, fmt.Errorf("%w: unlock code", ErrNotFound)
	}

	if item.IsRedeemed() {
		if item.RedeemedBy != settings.UserID {
			return challenge.UserSettings{}, challenge.ErrCodeAlreadyRedeemed
		}
	} else {
		claimed, err := s.codeRepo.MarkRedeemed(ctx, code, settings.UserID, s.clock.Now().UTC())
		if err != nil {
			return challenge.UserSettings{}, fmt.Errorf("redeem unlock code: %w", err)
		}
		if !claimed {
			latest, _, err := s.codeRepo.GetByCode(ctx, code)
			if err != nil {
				return challenge.UserSettings{}, fmt.Errorf("get unlock code: %w", err)
			}
			if latest.RedeemedBy != settings.UserID {
				return challenge.UserSettings{}, challenge.ErrCodeAlreadyRedeemed
			}
		}
	}

	if settings.HasUnlocked(item.TrackID) {
		return settings, nil
	}
	settings.UnlockedTrackIDs = append(settings.UnlockedTrackIDs, item.TrackID)
	settings.UpdatedAt = s.clock.Now().UTC()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return challenge.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.InfoContext(ctx, "unlock code redeemed", "user_id", settings.UserID, "track_id", item.TrackID)
	return settings, nil
}

func (s *ChallengeService) GetSettings(ctx context.Context, userID string) (challenge.UserSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.GetSettings")
	defer span.End()

	return s.loadSettings(ctx, userID)
}

// UpdateSettings saves preferences. Switching the active track restarts it at day 1.
func (s *ChallengeService) UpdateSettings(ctx context.Context, input SettingsInput) (challenge.UserSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.UpdateSettings")
	defer span.End()

	settings, err := s.loadSettings(ctx, input.UserID)
	if err != nil {
		return challenge.UserSettings{}, err
	}
	wasEnabled := settings.ReminderEnabled
	now := s.clock.Now().UTC()

	activeTrackID := strings.TrimSpace(input.ActiveTrackID)
	if activeTrackID != "" && activeTrackID != settings.ActiveTrackID {
		track, err := s.getTrack(ctx, activeTrackID)
		if err != nil {
			return challenge.UserSettings{}, err
		}
		if !challenge.CanAccess(track, settings) {
			return challenge.UserSettings{}, fmt.Errorf("%w: track=%s", challenge.ErrTrackLocked, track.ID)
		}
		settings.ActiveTrackID = track.ID
		settings.StartedAt = now
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		settings.Email = email
	}
	if input.ReminderHour != nil {
		settings.ReminderHour = *input.ReminderHour
	}
	settings.Timezone = strings.TrimSpace(input.Timezone)
	settings.ReminderEnabled = input.ReminderEnabled
	settings.UpdatedAt = now
	if err := settings.Validate(); err != nil {
		return challenge.UserSettings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return challenge.UserSettings{}, fmt.Errorf("save settings: %w", err)
	}

	if settings.ReminderEnabled && !wasEnabled {
		if _, err := s.scheduleReminder(ctx, settings); err != nil {
			s.logger.WarnContext(ctx, "schedule first reminder failed", "user_id", settings.UserID, "error", err)
		}
	}
	return settings, nil
}

func (s *ChallengeService) SaveJournalEntry(ctx context.Context, userID, trackID string, day int, body string) (challenge.JournalEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.SaveJournalEntry")
	defer span.End()

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return challenge.JournalEntry{}, err
	}
	if _, err := s.checkDayAccess(ctx, settings, trackID, day); err != nil {
		return challenge.JournalEntry{}, err
	}

	now := s.clock.Now().UTC()
	entry := challenge.JournalEntry{
		UserID:    settings.UserID,
		TrackID:   strings.TrimSpace(trackID),
		Day:       day,
		Body:      strings.TrimSpace(body),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entry.Validate(); err != nil {
		return challenge.JournalEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.journalRepo.Upsert(ctx, entry); err != nil {
		return challenge.JournalEntry{}, fmt.Errorf("upsert journal entry: %w", err)
	}
	return entry, nil
}

func (s *ChallengeService) ListJournalEntries(ctx context.Context, userID, trackID string) ([]challenge.JournalEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.ListJournalEntries")
	defer span.End()

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getTrack(ctx, trackID); err != nil {
		return nil, err
	}
	entries, err := s.journalRepo.ListByTrack(ctx, settings.UserID, strings.TrimSpace(trackID))
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// SendDailyReminder mails today's prompt and queues the next reminder.
func (s *ChallengeService) SendDailyReminder(ctx context.Context, userID string) (ReminderResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChallengeService.SendDailyReminder")
	defer span.End()

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return ReminderResult{}, err
	}
	result := ReminderResult{UserID: settings.UserID}

	switch {
	case !settings.ReminderEnabled:
		result.Skipped = "reminders disabled"
		return result, nil
	case settings.Email == "":
		result.Skipped = "no email on file"
		return result, nil
	case settings.ActiveTrackID == "":
		result.Skipped = "no active track"
		return result, nil
	}

	day := challenge.CurrentDay(settings, s.clock.Now())
	if day < 1 {
		result.Skipped = "track not started"
		return result, nil
	}
	result.Day = day

	track, err := s.getTrack(ctx, settings.ActiveTrackID)
	if err != nil {
		return ReminderResult{}, err
	}
	prompt, exists, err := s.trackRepo.GetPrompt(ctx, track.ID, day)
	if err != nil {
		return ReminderResult{}, fmt.Errorf("get prompt: %w", err)
	}
	if !exists {
		return ReminderResult{}, fmt.Errorf("%w: track=%s day=%d", ErrNotFound, track.ID, day)
	}
	rendered, err := s.render(prompt.Body)
	if err != nil {
		return ReminderResult{}, err
	}

	messageID, err := s.mailer.Send(ctx, MailMessage{
		To:      settings.Email,
		Subject: fmt.Sprintf("%s, day %d: %s", track.Title, day, prompt.Title),
		HTML:    rendered,
	})
	if err != nil {
		return ReminderResult{}, fmt.Errorf("%w: send reminder mail: %v", ErrDependencyUnavailable, err)
	}
	result.Sent = true
	result.MessageID = messageID

	if day < challenge.DaysPerTrack {
		nextAt, err := s.scheduleReminder(ctx, settings)
		if err != nil {
			s.logger.WarnContext(ctx, "schedule next reminder failed", "user_id", settings.UserID, "error", err)
		} else {
			result.NextAt = nextAt
		}
	}

	s.logger.InfoContext(ctx, "daily reminder sent", "user_id", settings.UserID, "track_id", track.ID, "day", day)
	return result, nil
}

func (s *ChallengeService) scheduleReminder(ctx context.Context, settings challenge.UserSettings) (time.Time, error) {
	now := s.clock.Now()
	nextAt := challenge.NextReminderAt(settings, now)
	dedupID := fmt.Sprintf("reminder-%s-%s", settings.UserID, nextAt.Format("20060102"))
	if err := s.queue.Enqueue(ctx, sendReminderJobPath, reminderPayload{UserID: settings.UserID, DispatchID: dedupID}, nextAt.Sub(now), dedupID); err != nil {
		return time.Time{}, fmt.Errorf("enqueue reminder: %w", err)
	}
	return nextAt, nil
}

func (s *ChallengeService) checkDayAccess(ctx context.Context, settings challenge.UserSettings, trackID string, day int) (int, error) {
	if day < 1 || day > challenge.DaysPerTrack {
		return 0, fmt.Errorf("%w: day must be between 1 and %d", ErrInvalidInput, challenge.DaysPerTrack)
	}
	track, err := s.getTrack(ctx, trackID)
	if err != nil {
		return 0, err
	}
	if !challenge.CanAccess(track, settings) {
		return 0, fmt.Errorf("%w: track=%s", challenge.ErrTrackLocked, track.ID)
	}

	currentDay := 1
	if settings.ActiveTrackID == track.ID {
		currentDay = challenge.CurrentDay(settings, s.clock.Now())
	}
	if day > currentDay {
		return 0, fmt.Errorf("%w: day=%d current=%d", challenge.ErrDayNotAvailable, day, currentDay)
	}
	return currentDay, nil
}

func (s *ChallengeService) loadSettings(ctx context.Context, userID string) (challenge.UserSettings, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return challenge.UserSettings{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	settings, exists, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		return challenge.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	if !exists {
		return challenge.UserSettings{
			UserID:       userID,
			ReminderHour: defaultReminderHour,
			Timezone:     "UTC",
		}, nil
	}
	return settings, nil
}

func (s *ChallengeService) getTrack(ctx context.Context, trackID string) (challenge.Track, error) {
	trackID = strings.TrimSpace(trackID)
	if trackID == "" {
		return challenge.Track{}, fmt.Errorf("%w: track id is required", ErrInvalidInput)
	}
	track, exists, err := s.trackRepo.GetByID(ctx, trackID)
	if err != nil {
		return challenge.Track{}, fmt.Errorf("get track: %w", err)
	}
	if !exists {
		return challenge.Track{}, fmt.Errorf("%w: track=%s", ErrNotFound, trackID)
	}
	return track, nil
}

func (s *ChallengeService) render(body string) (string, error) {
	if s.renderer == nil {
		return "<p>" + html.EscapeString(body) + "</p>", nil
	}
	out, err := s.renderer.Render(body)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return out, nil
}

func unlockCodesHTML(track challenge.Track, codes []challenge.UnlockCode) string {
	var b strings.Builder
	b.WriteString("<p>Here are your unlock codes for <strong>")
	b.WriteString(html.EscapeString(track.Title))
	b.WriteString("</strong>:</p><ul>")
	for _, c := range codes {
		b.WriteString("<li><code>")
		b.WriteString(c.Code)
		b.WriteString("</code></li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
