package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/eviction-league/internal/domain/user"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

type stubVerifier struct {
	tokens map[string]user.Principal
}

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := s.tokens[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("echoes configured origin", func(t *testing.T) {
		handler := CORS([]string{"https://league.example.com"}, okHandler())
		req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
		req.Header.Set("Origin", "https://league.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://league.example.com" {
			t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
		}
		if got := rec.Header().Get("Vary"); got != "Origin" {
			t.Fatalf("expected Vary=Origin, got %q", got)
		}
	})

	t.Run("answers preflight", func(t *testing.T) {
		handler := CORS([]string{"*"}, okHandler())
		req := httptest.NewRequest(http.MethodOptions, "/v1/leagues/league-1/draft/picks", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,PUT,DELETE,OPTIONS" {
			t.Fatalf("unexpected Access-Control-Allow-Methods: %q", got)
		}
	})

	t.Run("ignores unknown origin", func(t *testing.T) {
		handler := CORS([]string{"https://league.example.com"}, okHandler())
		req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
		}
	})
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/leagues", "/v1/challenge/tracks", "/", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	verifier := stubVerifier{tokens: map[string]user.Principal{"good": {UserID: "u-1"}}}
	var seen user.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		query  string
		ws     bool
		want   int
	}{
		{name: "missing header", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", want: http.StatusOK},
		{name: "query token on websocket", query: "?access_token=good", ws: true, want: http.StatusOK},
		{name: "query token ignored on plain request", query: "?access_token=good", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/leagues"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.ws {
				req.Header.Set("Upgrade", "websocket")
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d body=%s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	if seen.UserID != "u-1" {
		t.Fatalf("expected principal u-1 in context, got %+v", seen)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		admins    []string
		principal *user.Principal
		want      int
	}{
		{name: "no principal", admins: []string{"u-1"}, want: http.StatusUnauthorized},
		{name: "admin", admins: []string{" u-1 "}, principal: &user.Principal{UserID: "u-1"}, want: http.StatusOK},
		{name: "not admin", admins: []string{"u-1"}, principal: &user.Principal{UserID: "u-2"}, want: http.StatusForbidden},
		{name: "empty admin list", principal: &user.Principal{UserID: "u-1"}, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/seasons", nil)
			if tt.principal != nil {
				req = req.WithContext(withPrincipal(req.Context(), *tt.principal))
			}
			rec := httptest.NewRecorder()
			RequireAdmin(tt.admins, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected string
		provided string
		want     int
	}{
		{name: "not configured", provided: "secret", want: http.StatusServiceUnavailable},
		{name: "missing", expected: "secret", want: http.StatusUnauthorized},
		{name: "mismatch", expected: "secret", provided: "guess", want: http.StatusUnauthorized},
		{name: "match", expected: "secret", provided: " secret ", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/send-reminder", nil)
			if tt.provided != "" {
				req.Header.Set("X-Internal-Job-Token", tt.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.expected, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec}
	_, _ = sr.Write([]byte("hello"))
	sr.WriteHeader(http.StatusTeapot)

	if sr.status != http.StatusOK {
		t.Fatalf("expected implicit 200 to stick, got %d", sr.status)
	}
	if sr.bytes != 5 {
		t.Fatalf("expected 5 bytes, got %d", sr.bytes)
	}
	if sr.Unwrap() != rec {
		t.Fatalf("expected Unwrap to return the underlying writer")
	}
	if _, _, err := sr.Hijack(); err == nil {
		t.Fatalf("expected hijack error for a recorder without Hijacker")
	}
}

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    bool
	}{
		{name: "no origin", allowed: nil, want: true},
		{name: "wildcard", allowed: []string{"*"}, origin: "https://x.example.com", want: true},
		{name: "listed", allowed: []string{"https://league.example.com"}, origin: "https://league.example.com", want: true},
		{name: "same host", allowed: nil, origin: "https://api.example.com", host: "api.example.com", want: true},
		{name: "foreign", allowed: []string{"https://league.example.com"}, origin: "https://evil.example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upgrader := newUpgrader(tt.allowed)
			req := httptest.NewRequest(http.MethodGet, "/v1/leagues/l/live", nil)
			if tt.host != "" {
				req.Host = tt.host
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := upgrader.CheckOrigin(req); got != tt.want {
				t.Fatalf("CheckOrigin()=%v want=%v", got, tt.want)
			}
		})
	}
}
