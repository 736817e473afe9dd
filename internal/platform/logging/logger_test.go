package logging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	logger.Debug("hidden")
	logger.Info("draft pick made", "league_id", "office", "pick", 3)
	logger.Warn("odd", "dangling")
	logger.Error("failed", "error", errors.New("boom"))

	entries := logs.AllUntimed()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries above debug, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["league_id"] != "office" || fields["pick"] != int64(3) {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if _, ok := entries[1].ContextMap()["dangling"]; !ok {
		t.Fatalf("dangling key should still be recorded: %v", entries[1].ContextMap())
	}
	if entries[2].ContextMap()["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entries[2].ContextMap())
	}
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core)).With("component", "draft")

	logger.Info("hello")

	if got := logs.AllUntimed()[0].ContextMap()["component"]; got != "draft" {
		t.Fatalf("expected inherited field, got %v", got)
	}
}

func TestSetMirror(t *testing.T) {
	core, _ := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core))

	var mu sync.Mutex
	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Info("below threshold")
	logger.WarnContext(context.Background(), "mirrored")

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "warn:mirrored" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}

func TestDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("default logger must never be nil")
	}
	var nilLogger *Logger
	nilLogger.Info("does not panic")
}
