package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator(t *testing.T) {
	t.Parallel()

	g := NewUUIDGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, _ := g.NewID()
	if a == b {
		t.Fatalf("ids should differ")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("expected a uuid, got %q", a)
	}
}

func TestPrefixedGenerator(t *testing.T) {
	t.Parallel()

	got, err := WithPrefix("pick", nil).NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(got, "pick_") {
		t.Fatalf("expected pick_ prefix, got %q", got)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(got, "pick_")); err != nil {
		t.Fatalf("suffix should be a uuid: %v", err)
	}
}
