// Package odds supplies market prices, either replayed from fixtures or
// (eventually) fetched live.
package odds

import (
	"errors"
	"fmt"
	"time"
)

// MarketOdds is one book market: an optional line (spreads, totals) plus a
// price per side.
type MarketOdds struct {
	Line   *float64
	Prices map[string]int
}

// GameOdds holds every fetched market for one game, keyed by book then by
// market ("ml", "spread", "total").
type GameOdds struct {
	GameID string
	Date   time.Time
	Home   string
	Away   string
	Books  map[string]map[string]MarketOdds
}

func (g GameOdds) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.Away, g.Home)
}

type Provider interface {
	Fetch(date time.Time, books []string) ([]GameOdds, error)
}

// PlayerProp is one player prop market quote.
type PlayerProp struct {
	GameID string
	Player string
	Market string
	Line   float64
	Over   int
	Under  int
	Book   string
}

type PropsProvider interface {
	Fetch(gameIDs []string, book string) ([]PlayerProp, error)
}

// LiveProvider is a placeholder until a real API-backed provider lands.
type LiveProvider struct{}

func NewLiveProvider() *LiveProvider {
	return &LiveProvider{}
}

func (p *LiveProvider) Fetch(date time.Time, books []string) ([]GameOdds, error) {
	return nil, errors.New("live odds are not implemented in the offline build; use --replay with a fixture to run deterministically")
}
