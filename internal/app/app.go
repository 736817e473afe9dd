package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/eviction-league/internal/config"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/eviction-league/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/eviction-league/internal/platform/id"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"github.com/riskibarqy/eviction-league/internal/platform/markdown"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

// CloseFunc releases resources opened while building the server.
type CloseFunc func(ctx context.Context) error

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, CloseFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var closers closerStack
	fail := func(err error) (*http.Server, CloseFunc, error) {
		_ = closers.Close(context.Background())
		return nil, nil, err
	}

	repos, closeStorage, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	closers.push(closeStorage)

	challengeRepos, closeChallenge, err := buildChallengeStore(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	closers.push(closeChallenge)

	feed, err := buildChangeFeed(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	closers.push(func(context.Context) error { return feed.Close() })

	clock := clockwork.NewRealClock()
	uuids := idgen.NewUUIDGenerator()

	scoreboardSvc := usecase.NewScoreboardService(
		repos.leagues,
		repos.seasons,
		repos.teams,
		repos.contestants,
		repos.competitions,
		repos.drafts,
		repos.ruleSets,
		feed,
		usecase.ScoreboardConfig{RecalcWorkers: cfg.Jobs.ScoreRecalcWorkers},
		logger,
	)
	draftSvc := usecase.NewDraftService(
		repos.leagues,
		repos.teams,
		repos.contestants,
		repos.drafts,
		scoreboardSvc,
		idgen.WithPrefix("pick", uuids),
		feed,
		logger,
	)
	challengeSvc := usecase.NewChallengeService(
		challengeRepos.tracks,
		challengeRepos.codes,
		challengeRepos.settings,
		challengeRepos.journal,
		markdown.NewRenderer(),
		buildMailer(cfg, logger),
		buildJobQueue(cfg, repos.dispatches, clock, logger),
		clock,
		usecase.ChallengeConfig{},
		logger,
	)

	services := httpapi.Services{
		Seasons:      usecase.NewSeasonService(repos.seasons, repos.contestants, uuids, feed),
		Competitions: usecase.NewCompetitionService(repos.seasons, repos.contestants, repos.competitions, scoreboardSvc, idgen.WithPrefix("comp", uuids), feed, logger),
		WeeklyStatus: usecase.NewWeeklyStatusService(repos.seasons, repos.contestants, repos.competitions, feed),
		Leagues:      usecase.NewLeagueService(repos.leagues, repos.teams, uuids, feed),
		Drafts:       draftSvc,
		Scoreboards:  scoreboardSvc,
		RuleSets:     usecase.NewRuleSetService(repos.ruleSets, repos.leagues, scoreboardSvc, feed, logger),
		Challenge:    challengeSvc,
		Live:         usecase.NewLiveService(repos.leagues, feed, draftSvc, scoreboardSvc, logger),
	}

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.Anubis.Timeout},
		anubis.Config{
			BaseURL:         cfg.Anubis.BaseURL,
			IntrospectPath:  cfg.Anubis.IntrospectPath,
			AdminKey:        cfg.Anubis.AdminKey,
			CacheTTL:        cfg.Anubis.PrincipalTTL,
			CacheMaxEntries: cfg.Cache.MaxEntries,
			CircuitBreaker:  cfg.Anubis.Circuit,
		},
		logger,
	)

	handler := httpapi.NewHandler(services, repos.dispatches, cfg.HTTP.CORSAllowedOrigins, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.HTTP.SwaggerEnabled,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		InternalJobToken:   cfg.Jobs.InternalToken,
		AdminUserIDs:       cfg.HTTP.AdminUserIDs,
	})
	if len(cfg.HTTP.AdminUserIDs) == 0 {
		logger.Warn("ADMIN_USER_IDS is empty, commissioner routes will reject every caller")
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	if server.Addr == "" {
		return fail(fmt.Errorf("http server addr cannot be empty"))
	}

	return server, closers.Close, nil
}

// closerStack closes in reverse order of registration.
type closerStack []CloseFunc

func (s *closerStack) push(fn CloseFunc) {
	if fn != nil {
		*s = append(*s, fn)
	}
}

func (s *closerStack) Close(ctx context.Context) error {
	var errs []error
	for i := len(*s) - 1; i >= 0; i-- {
		if err := (*s)[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	*s = nil
	return errors.Join(errs...)
}
