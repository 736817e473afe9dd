package weeklystatus

import (
	_ "embed"
	"fmt"

	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultCardsYAML []byte

var defaultCards = mustParseCards(defaultCardsYAML)

type cardsFile struct {
	Cards []season.StatusCard `yaml:"cards"`
}

// ParseCards decodes a YAML card list and validates every card.
func ParseCards(raw []byte) ([]season.StatusCard, error) {
	var file cardsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode status cards: %w", err)
	}
	for _, c := range file.Cards {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Cards, nil
}

func mustParseCards(raw []byte) []season.StatusCard {
	cards, err := ParseCards(raw)
	if err != nil {
		panic(err)
	}
	return cards
}

// DefaultCards returns a copy of the built-in board layout.
func DefaultCards() []season.StatusCard {
	return append([]season.StatusCard(nil), defaultCards...)
}

// CardsForWeek prefers the season's configured cards and falls back to the defaults.
func CardsForWeek(s season.Season, week int) []season.StatusCard {
	if cards, ok := s.CardsForWeek(week); ok {
		return cards
	}
	return DefaultCards()
}
