package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/eviction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/eviction-league/internal/domain/user"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// Services bundles the use cases served over HTTP.
type Services struct {
	Seasons      *usecase.SeasonService
	Competitions *usecase.CompetitionService
	WeeklyStatus *usecase.WeeklyStatusService
	Leagues      *usecase.LeagueService
	Drafts       *usecase.DraftService
	Scoreboards  *usecase.ScoreboardService
	RuleSets     *usecase.RuleSetService
	Challenge    *usecase.ChallengeService
	Live         *usecase.LiveService
}

type Handler struct {
	seasonService       *usecase.SeasonService
	competitionService  *usecase.CompetitionService
	weeklyStatusService *usecase.WeeklyStatusService
	leagueService       *usecase.LeagueService
	draftService        *usecase.DraftService
	scoreboardService   *usecase.ScoreboardService
	ruleSetService      *usecase.RuleSetService
	challengeService    *usecase.ChallengeService
	liveService         *usecase.LiveService
	jobDispatchRepo     jobscheduler.Repository
	logger              *logging.Logger
	validator           *validator.Validate
	upgrader            websocket.Upgrader
}

func NewHandler(services Services, jobDispatchRepo jobscheduler.Repository, allowedOrigins []string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:       services.Seasons,
		competitionService:  services.Competitions,
		weeklyStatusService: services.WeeklyStatus,
		leagueService:       services.Leagues,
		draftService:        services.Drafts,
		scoreboardService:   services.Scoreboards,
		ruleSetService:      services.RuleSets,
		challengeService:    services.Challenge,
		liveService:         services.Live,
		jobDispatchRepo:     jobDispatchRepo,
		logger:              logger,
		validator:           validator.New(),
		upgrader:            newUpgrader(allowedOrigins),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(raw) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, maxRequestBodyBytes)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := strictJSON.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

// optionalQueryInt returns nil when the parameter is absent.
func optionalQueryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return &value, nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || strings.TrimSpace(principal.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func serviceUnavailable(name string) error {
	return fmt.Errorf("%w: %s is not configured", usecase.ErrDependencyUnavailable, name)
}
