package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// PrefixedGenerator prepends a short resource tag, e.g. "pick_<uuid>".
type PrefixedGenerator struct {
	prefix string
	next   Generator
}

func WithPrefix(prefix string, next Generator) *PrefixedGenerator {
	if next == nil {
		next = NewUUIDGenerator()
	}
	return &PrefixedGenerator{prefix: prefix, next: next}
}

func (g *PrefixedGenerator) NewID() (string, error) {
	raw, err := g.next.NewID()
	if err != nil {
		return "", err
	}
	if g.prefix == "" {
		return raw, nil
	}
	return g.prefix + "_" + raw, nil
}
