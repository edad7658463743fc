// Package main is the NBA edge scanner CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbo114-dot/hoops-edge/internal/cache"
	"github.com/willbo114-dot/hoops-edge/internal/config"
	"github.com/willbo114-dot/hoops-edge/internal/console"
	"github.com/willbo114-dot/hoops-edge/internal/odds"
	"github.com/willbo114-dot/hoops-edge/internal/scan"
)

var (
	dateArg    string
	confArg    string
	booksArg   string
	replayArg  string
	propsDir   string
	outputDir  string
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hoops-edge",
		Short: "Scan NBA markets for edges and publish an Excel report",
		Long: `hoops-edge compares model-fair prices against sportsbook markets
(moneyline, spread, total, player props) and writes the edges it finds
to a formatted Excel workbook.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVar(&dateArg, "date", "", "Slate date as YYYY-MM-DD (default: today, UTC)")
	rootCmd.Flags().StringVar(&confArg, "conf", "", "Conference filter: east, west or all")
	rootCmd.Flags().StringVar(&booksArg, "books", "", "Comma-separated sportsbooks (default: from config)")
	rootCmd.Flags().StringVar(&replayArg, "replay", "", "Replay odds from a JSON fixture (odds=<path> or a bare path)")
	rootCmd.Flags().StringVar(&propsDir, "props-dir", "", "Directory of per-game player prop fixtures")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a yaml config file")

	if err := rootCmd.Execute(); err != nil {
		console.Error("%v", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	date := time.Now().UTC()
	if dateArg != "" {
		date, err = time.Parse("2006-01-02", dateArg)
		if err != nil {
			return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", dateArg)
		}
	}

	conference, err := resolveConference(confArg)
	if err != nil {
		return err
	}

	books := cfg.DefaultBooks
	if booksArg != "" {
		books = nil
		for _, b := range strings.Split(booksArg, ",") {
			b = strings.ToUpper(strings.TrimSpace(b))
			if b != "" {
				books = append(books, b)
			}
		}
	}
	if len(books) == 0 {
		return errors.New("no sportsbooks selected")
	}
	if !cfg.SupportsBooks(books) {
		return fmt.Errorf("unsupported book in %v (supported: %v)", books, cfg.SupportedBooks)
	}

	replayPath := replayArg
	if after, ok := strings.CutPrefix(replayArg, "odds="); ok {
		replayPath = after
	}

	var ttlCache *cache.TTLCache
	if cfg.CachePath != "" {
		ttlCache, err = cache.Open(cfg.CachePath)
		if err != nil {
			console.Warning("cache disabled: %v", err)
			ttlCache = nil
		} else {
			defer ttlCache.Close()
		}
	}

	result, err := scan.Run(scan.Options{
		Date:        date,
		Conference:  conference,
		Books:       books,
		ReplayPath:  replayPath,
		PropsDir:    propsDir,
		Config:      cfg,
		SelectGames: selectGames,
		Cache:       ttlCache,
	})
	if errors.Is(err, scan.ErrNoGames) {
		console.Warning("No games matched date=%s conf=%s; nothing to scan.", date.Format("2006-01-02"), conference)
		return nil
	}
	if err != nil {
		return err
	}

	console.Success("Done: %d games, %d bets (Low: %d | Med: %d | High: %d)",
		result.Games, result.Bets,
		result.RiskCounts["Low"], result.RiskCounts["Med"], result.RiskCounts["High"])
	console.Success("Excel → %s", result.OutputPath)
	return nil
}

// resolveConference maps the flag (or an interactive pick) to east/west/all.
func resolveConference(arg string) (string, error) {
	choice := strings.ToLower(strings.TrimSpace(arg))
	if choice == "" {
		choice = console.Prompt("Conference [1] East  [2] West  [3] All (default 3): ", "all")
	}
	switch choice {
	case "1", "east":
		return "east", nil
	case "2", "west":
		return "west", nil
	case "3", "all", "":
		return "all", nil
	}
	return "", fmt.Errorf("invalid conference %q, want east, west or all", arg)
}

// selectGames lets an interactive user narrow the slate; non-interactive runs
// keep every game.
func selectGames(games []odds.GameOdds) []odds.GameOdds {
	if !console.Interactive() || len(games) < 2 {
		return games
	}
	items := make([]string, 0, len(games))
	for _, g := range games {
		items = append(items, g.Matchup())
	}
	console.BulletList("Games on the slate:", items)
	answer := console.Prompt("Pick games (comma-separated numbers, Enter for all): ", "")
	if answer == "" {
		return games
	}

	picked := make([]odds.GameOdds, 0, len(games))
	for _, field := range strings.Split(answer, ",") {
		var idx int
		if _, err := fmt.Sscanf(strings.TrimSpace(field), "%d", &idx); err != nil {
			continue
		}
		if idx >= 1 && idx <= len(games) {
			picked = append(picked, games[idx-1])
		}
	}
	if len(picked) == 0 {
		return games
	}
	return picked
}
