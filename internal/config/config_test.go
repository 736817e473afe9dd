package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "eviction-league-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.DB.Driver != StorageDriverPostgres {
		t.Fatalf("expected postgres storage by default, got %q", cfg.DB.Driver)
	}
	if cfg.Challenge.Driver != ChallengeDriverMemory {
		t.Fatalf("expected memory challenge store by default, got %q", cfg.Challenge.Driver)
	}
	if cfg.ChangeFeed.Driver != ChangeFeedDriverMemory {
		t.Fatalf("expected memory change feed by default, got %q", cfg.ChangeFeed.Driver)
	}
	if !cfg.DB.BootstrapSeed {
		t.Fatalf("expected bootstrap seed in dev")
	}
	if cfg.Jobs.ScoreRecalcWorkers != 4 {
		t.Fatalf("unexpected recalc workers: %d", cfg.Jobs.ScoreRecalcWorkers)
	}
	if !cfg.Anubis.Circuit.Enabled || cfg.Anubis.Circuit.FailureThreshold != 5 {
		t.Fatalf("unexpected anubis circuit defaults: %+v", cfg.Anubis.Circuit)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger and seeding by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.HTTP.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
		if cfg.DB.BootstrapSeed {
			t.Fatalf("expected BootstrapSeed=false in prod by default")
		}
	})

	t.Run("explicit swagger flag wins", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.HTTP.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Uptrace.DSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", cfg.Uptrace.DSN)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStack.Enabled || cfg.BetterStack.Token != "token-123" {
		t.Fatalf("unexpected better stack config: %+v", cfg.BetterStack)
	}
	if cfg.BetterStack.Timeout != 4*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.BetterStack.Timeout)
	}
	if cfg.BetterStack.MinLevel.String() != "warn" {
		t.Fatalf("unexpected min level: %s", cfg.BetterStack.MinLevel.String())
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "league-admin")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Pyroscope.AppName != "league-admin" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.Pyroscope.AppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if strings.Join(cfg.HTTP.CORSAllowedOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.HTTP.CORSAllowedOrigins)
	}
}

func TestLoad_AdminUserIDs(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ADMIN_USER_IDS", "user-1, user-2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.HTTP.AdminUserIDs) != 2 || cfg.HTTP.AdminUserIDs[1] != "user-2" {
		t.Fatalf("unexpected admin ids: %v", cfg.HTTP.AdminUserIDs)
	}
}

func TestLoad_DriverValidation(t *testing.T) {
	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STORAGE_DRIVER", "sqlite")

		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "STORAGE_DRIVER") {
			t.Fatalf("expected STORAGE_DRIVER error, got %v", err)
		}
	})

	t.Run("mongo requires uri", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("CHALLENGE_STORE_DRIVER", "mongo")
		t.Setenv("MONGO_URI", "")

		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "MONGO_URI") {
			t.Fatalf("expected MONGO_URI error, got %v", err)
		}
	})

	t.Run("redis change feed requires addr", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("CHANGEFEED_DRIVER", "redis")
		t.Setenv("REDIS_ADDR", "")

		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "REDIS_ADDR") {
			t.Fatalf("expected REDIS_ADDR error, got %v", err)
		}
	})

	t.Run("nats change feed parses", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("CHANGEFEED_DRIVER", "NATS")
		t.Setenv("NATS_URL", "nats://localhost:4222")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ChangeFeed.Driver != ChangeFeedDriverNATS || cfg.ChangeFeed.NATSURL != "nats://localhost:4222" {
			t.Fatalf("unexpected change feed config: %+v", cfg.ChangeFeed)
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_MAX_ENTRIES", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Cache.Enabled || cfg.Cache.TTL != 2*time.Minute || cfg.Cache.MaxEntries != 50 {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}

	t.Setenv("CACHE_TTL", "0s")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "CACHE_TTL must be > 0") {
		t.Fatalf("expected CACHE_TTL validation error, got %v", err)
	}
}

func TestLoad_MailRequiresAPIKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("MAIL_ENABLED", "true")
	t.Setenv("RESEND_API_KEY", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "RESEND_API_KEY") {
		t.Fatalf("expected RESEND_API_KEY error, got %v", err)
	}
}

func TestLoad_QStashConfigParsing(t *testing.T) {
	t.Run("requires token, target and job token", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "qstash-token")
		t.Setenv("QSTASH_TARGET_BASE_URL", "https://league.example")
		t.Setenv("INTERNAL_JOB_TOKEN", "")

		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "INTERNAL_JOB_TOKEN") {
			t.Fatalf("expected INTERNAL_JOB_TOKEN error, got %v", err)
		}
	})

	t.Run("parses circuit settings", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "qstash-token")
		t.Setenv("QSTASH_TARGET_BASE_URL", "https://league.example")
		t.Setenv("INTERNAL_JOB_TOKEN", "job-token")
		t.Setenv("QSTASH_RETRIES", "5")
		t.Setenv("QSTASH_CIRCUIT_ENABLED", "false")
		t.Setenv("QSTASH_CIRCUIT_FAILURE_COUNT", "7")
		t.Setenv("QSTASH_CIRCUIT_OPEN_TIMEOUT", "30s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QStash.Retries != 5 {
			t.Fatalf("unexpected retries: %d", cfg.QStash.Retries)
		}
		if cfg.QStash.Circuit.Enabled || cfg.QStash.Circuit.FailureThreshold != 7 || cfg.QStash.Circuit.OpenTimeout != 30*time.Second {
			t.Fatalf("unexpected circuit config: %+v", cfg.QStash.Circuit)
		}
	})

	t.Run("rejects bad failure count", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("QSTASH_CIRCUIT_FAILURE_COUNT", "0")

		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "QSTASH_CIRCUIT_FAILURE_COUNT must be > 0") {
			t.Fatalf("expected failure count error, got %v", err)
		}
	})
}

func TestLoad_ParseErrorsNameTheKey(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORE_RECALC_WORKERS", "many")

	_, err := Load()
	if err == nil || !strings.HasPrefix(err.Error(), "parse SCORE_RECALC_WORKERS") {
		t.Fatalf("expected parse error naming the key, got %v", err)
	}
}
