package odds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReplayProvider loads odds from a JSON fixture, either a single game object
// or an array of them.
type ReplayProvider struct {
	Path string
}

func NewReplayProvider(path string) *ReplayProvider {
	return &ReplayProvider{Path: path}
}

type replayGame struct {
	GameID string                                `json:"game_id"`
	Date   string                                `json:"date"`
	Home   string                                `json:"home"`
	Away   string                                `json:"away"`
	Books  map[string]map[string]json.RawMessage `json:"books"`
}

func (p *ReplayProvider) Fetch(date time.Time, books []string) ([]GameOdds, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read replay fixture: %w", err)
	}

	var games []replayGame
	if err := json.Unmarshal(data, &games); err != nil {
		var single replayGame
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse replay fixture %s: %w", p.Path, err)
		}
		games = []replayGame{single}
	}

	wanted := map[string]bool{}
	for _, b := range books {
		wanted[b] = true
	}

	results := make([]GameOdds, 0, len(games))
	for _, g := range games {
		gameDate, err := time.Parse(time.RFC3339, g.Date)
		if err != nil {
			// Fixtures often carry bare dates.
			gameDate, err = time.Parse("2006-01-02", g.Date)
			if err != nil {
				return nil, fmt.Errorf("game %s has unparseable date %q", g.GameID, g.Date)
			}
		}

		gameBooks := map[string]map[string]MarketOdds{}
		for bookName, markets := range g.Books {
			if !wanted[bookName] {
				continue
			}
			bookMarkets := map[string]MarketOdds{}
			for marketKey, raw := range markets {
				m, err := parseMarket(raw)
				if err != nil {
					return nil, fmt.Errorf("game %s book %s market %s: %w", g.GameID, bookName, marketKey, err)
				}
				bookMarkets[marketKey] = m
			}
			if len(bookMarkets) > 0 {
				gameBooks[bookName] = bookMarkets
			}
		}

		results = append(results, GameOdds{
			GameID: g.GameID,
			Date:   gameDate,
			Home:   g.Home,
			Away:   g.Away,
			Books:  gameBooks,
		})
	}
	return results, nil
}

// parseMarket decodes {"line": -3.5, "home": -110, "away": -105}; every key
// other than "line" is a priced side.
func parseMarket(raw json.RawMessage) (MarketOdds, error) {
	var fields map[string]json.Number
	if err := json.Unmarshal(raw, &fields); err != nil {
		return MarketOdds{}, err
	}
	m := MarketOdds{Prices: map[string]int{}}
	for key, value := range fields {
		if key == "line" {
			line, err := value.Float64()
			if err != nil {
				return MarketOdds{}, fmt.Errorf("bad line %q: %w", value, err)
			}
			m.Line = &line
			continue
		}
		price, err := value.Int64()
		if err != nil {
			return MarketOdds{}, fmt.Errorf("bad price %q for side %s: %w", value, key, err)
		}
		m.Prices[key] = int(price)
	}
	return m, nil
}

// FixturePropsProvider reads per-game prop fixtures named <game_id>.json from
// a directory. Missing fixtures are skipped, matching a book with no posted
// props.
type FixturePropsProvider struct {
	Dir string
}

func NewFixturePropsProvider(dir string) *FixturePropsProvider {
	return &FixturePropsProvider{Dir: dir}
}

type propsFixture struct {
	Props []struct {
		Player string  `json:"player"`
		Market string  `json:"market"`
		Line   float64 `json:"line"`
		Over   int     `json:"over"`
		Under  int     `json:"under"`
		Book   string  `json:"book"`
	} `json:"props"`
}

func (p *FixturePropsProvider) Fetch(gameIDs []string, book string) ([]PlayerProp, error) {
	if p.Dir == "" {
		return nil, nil
	}

	var props []PlayerProp
	for _, gameID := range gameIDs {
		path := filepath.Join(p.Dir, gameID+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read props fixture %s: %w", path, err)
		}
		var fixture propsFixture
		if err := json.Unmarshal(data, &fixture); err != nil {
			return nil, fmt.Errorf("parse props fixture %s: %w", path, err)
		}
		for _, prop := range fixture.Props {
			if prop.Book != "" && prop.Book != book {
				continue
			}
			props = append(props, PlayerProp{
				GameID: gameID,
				Player: prop.Player,
				Market: prop.Market,
				Line:   prop.Line,
				Over:   prop.Over,
				Under:  prop.Under,
				Book:   book,
			})
		}
	}
	return props, nil
}
