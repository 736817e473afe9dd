package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/eviction-league/internal/config"
	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
	"github.com/riskibarqy/eviction-league/internal/domain/competition"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/draft"
	"github.com/riskibarqy/eviction-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
	cacherepo "github.com/riskibarqy/eviction-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/repository/mongodb"
	"github.com/riskibarqy/eviction-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/eviction-league/internal/platform/cache"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	seasons      season.Repository
	contestants  contestant.Repository
	competitions competition.Repository
	leagues      league.Repository
	teams        team.Repository
	drafts       draft.Repository
	ruleSets     scoring.RuleSetRepository
	dispatches   jobscheduler.Repository
}

type challengeRepositories struct {
	tracks   challenge.TrackRepository
	codes    challenge.UnlockCodeRepository
	settings challenge.SettingsRepository
	journal  challenge.JournalRepository
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, CloseFunc, error) {
	var (
		repos   repositories
		closeFn CloseFunc
	)

	switch cfg.DB.Driver {
	case config.StorageDriverMemory:
		repos = repositories{
			seasons:      memory.NewSeasonRepository(memory.SeedSeasons()),
			contestants:  memory.NewContestantRepository(memory.SeedContestants()),
			competitions: memory.NewCompetitionRepository(nil),
			leagues:      memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:        memory.NewTeamRepository(memory.SeedTeams()),
			drafts:       memory.NewDraftRepository(nil),
			ruleSets:     memory.NewRuleSetRepository(memory.SeedRuleSets()),
			dispatches:   memory.NewJobDispatchRepository(),
		}
		logger.Info("storage ready", "driver", cfg.DB.Driver)
	default:
		db, err := openPostgres(ctx, cfg.DB)
		if err != nil {
			return repositories{}, nil, err
		}
		closeFn = func(context.Context) error { return db.Close() }

		if cfg.DB.BootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		repos = repositories{
			seasons:      postgres.NewSeasonRepository(db),
			contestants:  postgres.NewContestantRepository(db),
			competitions: postgres.NewCompetitionRepository(db),
			leagues:      postgres.NewLeagueRepository(db),
			teams:        postgres.NewTeamRepository(db),
			drafts:       postgres.NewDraftRepository(db),
			ruleSets:     postgres.NewRuleSetRepository(db),
			dispatches:   postgres.NewJobDispatchRepository(db),
		}
		logger.Info("storage ready",
			"driver", cfg.DB.Driver,
			"db_name", dbNameFromURL(cfg.DB.URL),
			"bootstrap_seed", cfg.DB.BootstrapSeed,
		)
	}

	if cfg.Cache.Enabled {
		store := cache.NewStore(cfg.Cache.TTL, cache.WithMaxEntries(cfg.Cache.MaxEntries))
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.contestants = cacherepo.NewContestantRepository(repos.contestants, store)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.ruleSets = cacherepo.NewRuleSetRepository(repos.ruleSets, store)
	}

	return repos, closeFn, nil
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.URL, cfg.DisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func buildChallengeStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (challengeRepositories, CloseFunc, error) {
	if cfg.Challenge.Driver != config.ChallengeDriverMongo {
		logger.Info("challenge store ready", "driver", cfg.Challenge.Driver)
		return challengeRepositories{
			tracks:   memory.NewTrackRepository(memory.SeedTracks(), memory.SeedPrompts()),
			codes:    memory.NewUnlockCodeRepository(),
			settings: memory.NewSettingsRepository(),
			journal:  memory.NewJournalRepository(),
		}, nil, nil
	}

	client, err := mongodb.NewClient(ctx, cfg.Challenge.MongoURI, cfg.Challenge.MongoDatabase, cfg.Challenge.ConnectTimeout, logger)
	if err != nil {
		return challengeRepositories{}, nil, fmt.Errorf("connect mongo: %w", err)
	}
	closeFn := func(ctx context.Context) error { return client.Disconnect(ctx) }

	if err := client.EnsureIndexes(ctx); err != nil {
		_ = closeFn(ctx)
		return challengeRepositories{}, nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}

	tracks := mongodb.NewTrackRepository(client)
	if cfg.DB.BootstrapSeed {
		if err := tracks.Seed(ctx, memory.SeedTracks(), memory.SeedPrompts()); err != nil {
			_ = closeFn(ctx)
			return challengeRepositories{}, nil, fmt.Errorf("seed challenge tracks: %w", err)
		}
	}

	logger.Info("challenge store ready", "driver", cfg.Challenge.Driver, "database", cfg.Challenge.MongoDatabase)
	return challengeRepositories{
		tracks:   tracks,
		codes:    mongodb.NewUnlockCodeRepository(client),
		settings: mongodb.NewSettingsRepository(client),
		journal:  mongodb.NewJournalRepository(client),
	}, closeFn, nil
}
