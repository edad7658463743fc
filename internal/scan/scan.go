// Package scan runs one edge-scanning pass: fetch odds, project fair values,
// compare markets and publish the workbook.
package scan

import (
	"errors"
	"fmt"
	"time"

	"github.com/willbo114-dot/hoops-edge/internal/cache"
	"github.com/willbo114-dot/hoops-edge/internal/config"
	"github.com/willbo114-dot/hoops-edge/internal/mapping"
	"github.com/willbo114-dot/hoops-edge/internal/odds"
	"github.com/willbo114-dot/hoops-edge/internal/report"
	"github.com/willbo114-dot/hoops-edge/internal/sim"
	"github.com/willbo114-dot/hoops-edge/internal/stats"
)

// ErrNoGames signals that the filters matched nothing; callers treat it as a
// warning, not a failure.
var ErrNoGames = errors.New("no games found for the selected filters")

type Options struct {
	Date       time.Time
	Conference string // "east", "west" or "all"
	Books      []string
	ReplayPath string // odds fixture; empty selects the live provider
	PropsDir   string // per-game prop fixtures, optional
	Config     config.Config

	// SelectGames narrows the filtered game list (interactive selection).
	// Nil keeps every game.
	SelectGames func([]odds.GameOdds) []odds.GameOdds

	// Cache is optional; nil disables provider caching.
	Cache *cache.TTLCache
}

type Result struct {
	OutputPath string
	Games      int
	Bets       int
	RiskCounts map[string]int
}

type betRecord struct {
	Tip       string
	Matchup   string
	Market    string
	Selection string
	Book      string
	LinePrice string
	FairValue string
	BookValue string
	Diff      string
	Edge      string
	Kelly     string
	Risk      string
	Notes     string
	PulledAt  string
}

func (r betRecord) row() []string {
	return []string{
		r.Tip, r.Matchup, r.Market, r.Selection, r.Book, r.LinePrice,
		r.FairValue, r.BookValue, r.Diff, r.Edge, r.Kelly, r.Risk,
		r.Notes, r.PulledAt,
	}
}

type auditRecord struct {
	GameID     string
	Market     string
	Side       string
	Book       string
	Line       string
	PriceA     string
	PriceB     string
	ImpliedA   string
	ImpliedB   string
	DevigA     string
	DevigB     string
	Timestamp  string
	Source     string
	Books      string
	Conference string
}

func (r auditRecord) row() []string {
	return []string{
		r.GameID, r.Market, r.Side, r.Book, r.Line, r.PriceA, r.PriceB,
		r.ImpliedA, r.ImpliedB, r.DevigA, r.DevigB, r.Timestamp, r.Source,
		r.Books, r.Conference,
	}
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func formatDiff(v float64, market string) string {
	if market == "Spread" || market == "Total" {
		return fmt.Sprintf("%.2f", v)
	}
	return formatPercent(v)
}

func formatFair(v float64, market string) string {
	if market == "Spread" || market == "Total" {
		return fmt.Sprintf("%.3f", v)
	}
	return formatPercent(v)
}

func priceOr(m odds.MarketOdds, side string, def int) int {
	if p, ok := m.Prices[side]; ok {
		return p
	}
	return def
}

func joinBooks(books []string) string {
	out := ""
	for i, b := range books {
		if i > 0 {
			out += ","
		}
		out += b
	}
	return out
}

// Run executes the scan and returns the published workbook path plus a
// summary tally.
func Run(opts Options) (*Result, error) {
	cfg := opts.Config
	engine := cfg.Engine()

	var provider odds.Provider
	source := "live"
	if opts.ReplayPath != "" {
		provider = odds.NewReplayProvider(opts.ReplayPath)
		source = "replay"
	} else {
		provider = odds.NewLiveProvider()
	}

	games, err := provider.Fetch(opts.Date, opts.Books)
	if err != nil {
		return nil, err
	}

	filtered := make([]odds.GameOdds, 0, len(games))
	for _, game := range games {
		homeConf := mapping.ConferenceForTeam(game.Home)
		awayConf := mapping.ConferenceForTeam(game.Away)
		if opts.Conference == "all" || homeConf == opts.Conference || awayConf == opts.Conference {
			filtered = append(filtered, game)
		}
	}
	if opts.SelectGames != nil {
		filtered = opts.SelectGames(filtered)
	}
	if len(filtered) == 0 {
		return nil, ErrNoGames
	}

	statsProvider := stats.NewOfflineProvider()
	teamNames := map[string]bool{}
	for _, game := range filtered {
		teamNames[game.Home] = true
		teamNames[game.Away] = true
	}
	teamStats, err := fetchTeamStats(opts.Cache, statsProvider, keys(teamNames), cfg.StatsTTL())
	if err != nil {
		return nil, err
	}

	book := opts.Books[0]
	tip := fmt.Sprintf("%s 07:30 PM", opts.Date.Format("01-02"))
	pulledAt := time.Now().UTC().Format("2006-01-02T15:04:05")

	var picks, propsRows []betRecord
	var auditRows []auditRecord
	var summaryRows [][]string

	matchupLookup := map[string]string{}

	for _, game := range filtered {
		matchupLookup[game.GameID] = game.Home

		homeStats, okHome := teamStats[game.Home]
		awayStats, okAway := teamStats[game.Away]
		if !okHome || !okAway {
			continue
		}

		features := sim.BuildGameFeatures(homeStats, awayStats)
		projection := sim.SimulateGame(game.GameID, features)

		summaryRows = append(summaryRows, []string{
			tip,
			game.Matchup(),
			opts.Conference,
			fmt.Sprintf("%.1f-%.1f", projection.HomeScore, projection.AwayScore),
			fmt.Sprintf("%.2f", projection.FairMLHome),
			fmt.Sprintf("%.2f", projection.FairMLAway),
			fmt.Sprintf("%.2f", projection.FairSpread),
			fmt.Sprintf("%.2f", projection.FairTotal),
			fmt.Sprintf("Pace %.1f, ORtg %.1f", homeStats.Pace, homeStats.OffensiveRating),
			fmt.Sprintf("Pace %.1f, ORtg %.1f", awayStats.Pace, awayStats.OffensiveRating),
		})

		bookMarkets := game.Books[book]

		if ml, ok := bookMarkets["ml"]; ok && len(ml.Prices) > 0 {
			priceHome := priceOr(ml, "home", -110)
			priceAway := priceOr(ml, "away", -110)
			comp := engine.CompareProbabilityMarket(projection.FairMLHome, priceHome, priceAway, "home")
			picks = append(picks, betRecord{
				Tip:       tip,
				Matchup:   game.Matchup(),
				Market:    "ML",
				Selection: "Home",
				Book:      book,
				LinePrice: fmt.Sprintf("Home / %d", priceHome),
				FairValue: formatFair(comp.FairValue, "ML"),
				BookValue: formatFair(comp.BookValue, "ML"),
				Diff:      formatDiff(comp.Diff, "ML"),
				Edge:      formatPercent(comp.Edge),
				Kelly:     formatPercent(comp.Kelly),
				Risk:      comp.Risk,
				PulledAt:  pulledAt,
			})
			auditRows = append(auditRows, auditRecord{
				GameID:     game.GameID,
				Market:     "ML",
				Side:       "home",
				Book:       book,
				Line:       "N/A",
				PriceA:     fmt.Sprintf("%d", priceHome),
				PriceB:     fmt.Sprintf("%d", priceAway),
				ImpliedA:   fmt.Sprintf("%.3f", comp.FairValue),
				ImpliedB:   fmt.Sprintf("%.3f", 1-comp.FairValue),
				DevigA:     fmt.Sprintf("%.3f", comp.BookValue),
				DevigB:     fmt.Sprintf("%.3f", 1-comp.BookValue),
				Timestamp:  pulledAt,
				Source:     source,
				Books:      joinBooks(opts.Books),
				Conference: opts.Conference,
			})
		}

		if spread, ok := bookMarkets["spread"]; ok && len(spread.Prices) > 0 {
			line := 0.0
			if spread.Line != nil {
				line = *spread.Line
			}
			priceHome := priceOr(spread, "home", -110)
			priceAway := priceOr(spread, "away", -110)
			comp := engine.CompareLineMarket(projection.FairSpread, line, priceHome, priceAway, "home")
			picks = append(picks, betRecord{
				Tip:       tip,
				Matchup:   game.Matchup(),
				Market:    "Spread",
				Selection: "Home",
				Book:      book,
				LinePrice: fmt.Sprintf("%.1f / %d", line, priceHome),
				FairValue: formatFair(comp.FairValue, "Spread"),
				BookValue: formatFair(comp.BookValue, "Spread"),
				Diff:      formatDiff(comp.Diff, "Spread"),
				Edge:      formatPercent(comp.Edge),
				Kelly:     formatPercent(comp.Kelly),
				Risk:      comp.Risk,
				PulledAt:  pulledAt,
			})
			auditRows = append(auditRows, auditRecord{
				GameID:     game.GameID,
				Market:     "Spread",
				Side:       "home",
				Book:       book,
				Line:       fmt.Sprintf("%.1f", line),
				PriceA:     fmt.Sprintf("%d", priceHome),
				PriceB:     fmt.Sprintf("%d", priceAway),
				ImpliedA:   fmt.Sprintf("%.3f", comp.FairValue),
				ImpliedB:   fmt.Sprintf("%.3f", -comp.FairValue),
				DevigA:     fmt.Sprintf("%.3f", comp.BookValue),
				DevigB:     fmt.Sprintf("%.3f", comp.BookValue),
				Timestamp:  pulledAt,
				Source:     source,
				Books:      joinBooks(opts.Books),
				Conference: opts.Conference,
			})
		}

		if total, ok := bookMarkets["total"]; ok && len(total.Prices) > 0 {
			line := 0.0
			if total.Line != nil {
				line = *total.Line
			}
			priceOver := priceOr(total, "over", -110)
			priceUnder := priceOr(total, "under", -110)
			comp := engine.CompareLineMarket(projection.FairTotal, line, priceOver, priceUnder, "over")
			picks = append(picks, betRecord{
				Tip:       tip,
				Matchup:   game.Matchup(),
				Market:    "Total",
				Selection: "Over",
				Book:      book,
				LinePrice: fmt.Sprintf("Over %.1f / %d", line, priceOver),
				FairValue: formatFair(comp.FairValue, "Total"),
				BookValue: formatFair(comp.BookValue, "Total"),
				Diff:      formatDiff(comp.Diff, "Total"),
				Edge:      formatPercent(comp.Edge),
				Kelly:     formatPercent(comp.Kelly),
				Risk:      comp.Risk,
				PulledAt:  pulledAt,
			})
			auditRows = append(auditRows, auditRecord{
				GameID:     game.GameID,
				Market:     "Total",
				Side:       "over",
				Book:       book,
				Line:       fmt.Sprintf("%.1f", line),
				PriceA:     fmt.Sprintf("%d", priceOver),
				PriceB:     fmt.Sprintf("%d", priceUnder),
				ImpliedA:   fmt.Sprintf("%.3f", comp.FairValue),
				ImpliedB:   fmt.Sprintf("%.3f", comp.FairValue),
				DevigA:     fmt.Sprintf("%.3f", comp.BookValue),
				DevigB:     fmt.Sprintf("%.3f", comp.BookValue),
				Timestamp:  pulledAt,
				Source:     source,
				Books:      joinBooks(opts.Books),
				Conference: opts.Conference,
			})
		}
	}

	propsProvider := odds.NewFixturePropsProvider(opts.PropsDir)
	gameIDs := make([]string, 0, len(filtered))
	for _, game := range filtered {
		gameIDs = append(gameIDs, game.GameID)
	}
	props, err := propsProvider.Fetch(gameIDs, book)
	if err != nil {
		return nil, err
	}

	playerNames := map[string]bool{}
	for _, prop := range props {
		playerNames[prop.Player] = true
	}
	playerStats, err := fetchPlayerStats(opts.Cache, statsProvider, keys(playerNames), cfg.StatsTTL())
	if err != nil {
		return nil, err
	}

	for _, prop := range props {
		projection, ok := sim.ProjectProp(prop, playerStats, teamStats, matchupLookup)
		if !ok {
			continue
		}
		comp := engine.CompareProbabilityMarket(projection.FairProbabilityOver, prop.Over, prop.Under, "over")
		matchup := prop.GameID
		for _, game := range filtered {
			if game.GameID == prop.GameID {
				matchup = game.Matchup()
				break
			}
		}
		propsRows = append(propsRows, betRecord{
			Tip:       tip,
			Matchup:   matchup,
			Market:    titleMarket(prop.Market),
			Selection: fmt.Sprintf("%s • Over", prop.Player),
			Book:      prop.Book,
			LinePrice: fmt.Sprintf("Over %.1f / %d", prop.Line, prop.Over),
			FairValue: formatPercent(comp.FairValue),
			BookValue: formatPercent(comp.BookValue),
			Diff:      formatPercent(comp.Diff),
			Edge:      formatPercent(comp.Edge),
			Kelly:     formatPercent(comp.Kelly),
			Risk:      comp.Risk,
			PulledAt:  pulledAt,
		})
		auditRows = append(auditRows, auditRecord{
			GameID:     prop.GameID,
			Market:     "Prop-" + prop.Market,
			Side:       "over",
			Book:       prop.Book,
			Line:       fmt.Sprintf("%.1f", prop.Line),
			PriceA:     fmt.Sprintf("%d", prop.Over),
			PriceB:     fmt.Sprintf("%d", prop.Under),
			ImpliedA:   fmt.Sprintf("%.3f", projection.FairProbabilityOver),
			ImpliedB:   fmt.Sprintf("%.3f", 1-projection.FairProbabilityOver),
			DevigA:     fmt.Sprintf("%.3f", comp.BookValue),
			DevigB:     fmt.Sprintf("%.3f", 1-comp.BookValue),
			Timestamp:  pulledAt,
			Source:     source,
			Books:      joinBooks(opts.Books),
			Conference: opts.Conference,
		})
	}

	writer := report.NewWriter(cfg.OutputDir)
	outputPath, err := writer.Write(
		opts.Date,
		opts.Conference,
		rows(picks),
		rows(propsRows),
		summaryRows,
		auditRowValues(auditRows),
	)
	if err != nil {
		return nil, err
	}

	riskCounts := map[string]int{"Low": 0, "Med": 0, "High": 0}
	for _, bet := range picks {
		riskCounts[bet.Risk]++
	}
	for _, bet := range propsRows {
		riskCounts[bet.Risk]++
	}

	return &Result{
		OutputPath: outputPath,
		Games:      len(filtered),
		Bets:       len(picks) + len(propsRows),
		RiskCounts: riskCounts,
	}, nil
}

func rows(records []betRecord) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.row())
	}
	return out
}

func auditRowValues(records []auditRecord) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.row())
	}
	return out
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// titleMarket capitalizes a market key for display ("points" -> "Points").
func titleMarket(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

func fetchTeamStats(c *cache.TTLCache, provider stats.Provider, teams []string, ttl time.Duration) (map[string]stats.TeamStats, error) {
	results := make(map[string]stats.TeamStats, len(teams))
	var missing []string
	for _, team := range teams {
		var cached stats.TeamStats
		if c != nil {
			if ok, err := c.Get("stats:team:"+team, &cached); err == nil && ok {
				results[team] = cached
				continue
			}
		}
		missing = append(missing, team)
	}
	if len(missing) > 0 {
		fetched, err := provider.FetchTeamStats(missing)
		if err != nil {
			return nil, err
		}
		for team, ts := range fetched {
			results[team] = ts
			if c != nil {
				if err := c.Set("stats:team:"+team, ts, ttl); err != nil {
					return nil, err
				}
			}
		}
	}
	return results, nil
}

func fetchPlayerStats(c *cache.TTLCache, provider stats.Provider, players []string, ttl time.Duration) (map[string]stats.PlayerStats, error) {
	results := make(map[string]stats.PlayerStats, len(players))
	var missing []string
	for _, player := range players {
		var cached stats.PlayerStats
		if c != nil {
			if ok, err := c.Get("stats:player:"+player, &cached); err == nil && ok {
				results[player] = cached
				continue
			}
		}
		missing = append(missing, player)
	}
	if len(missing) > 0 {
		fetched, err := provider.FetchPlayerStats(missing)
		if err != nil {
			return nil, err
		}
		for player, ps := range fetched {
			results[player] = ps
			if c != nil {
				if err := c.Set("stats:player:"+player, ps, ttl); err != nil {
					return nil, err
				}
			}
		}
	}
	return results, nil
}
