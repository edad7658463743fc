package sim

import (
	"math"
	"testing"

	"github.com/willbo114-dot/hoops-edge/internal/odds"
	"github.com/willbo114-dot/hoops-edge/internal/stats"
)

func team(pace, off, def float64) stats.TeamStats {
	return stats.TeamStats{Pace: pace, OffensiveRating: off, DefensiveRating: def}
}

func TestSimulateGameEvenTeams(t *testing.T) {
	home := team(100, 110, 110)
	away := team(100, 110, 110)
	p := SimulateGame("g", BuildGameFeatures(home, away))

	if p.HomeScore != p.AwayScore {
		t.Errorf("even teams should project even scores, got %v vs %v", p.HomeScore, p.AwayScore)
	}
	if p.FairSpread != 0 {
		t.Errorf("FairSpread = %v, want 0", p.FairSpread)
	}
	if p.FairMLHome != 0.5 {
		t.Errorf("FairMLHome = %v, want 0.5", p.FairMLHome)
	}
	if math.Abs(p.FairMLHome+p.FairMLAway-1) > 1e-12 {
		t.Errorf("ML probabilities sum to %v", p.FairMLHome+p.FairMLAway)
	}
	if p.FairTotal != p.HomeScore+p.AwayScore {
		t.Errorf("FairTotal = %v, want score sum", p.FairTotal)
	}
}

func TestSimulateGameProbabilityClamped(t *testing.T) {
	// A lopsided rating edge pushes the raw probability past the clamp.
	home := team(100, 130, 95)
	away := team(100, 100, 115)
	p := SimulateGame("g", BuildGameFeatures(home, away))
	if p.FairMLHome != 0.95 {
		t.Errorf("FairMLHome = %v, want clamp at 0.95", p.FairMLHome)
	}
	if p.FairMLAway != 1-0.95 {
		t.Errorf("FairMLAway = %v", p.FairMLAway)
	}
}

func TestProjectPlayerMeanMarkets(t *testing.T) {
	player := stats.PlayerStats{Points: 20, Rebounds: 8, Assists: 6, Threes: 2}
	opponent := team(100, 110, 100)
	f := BuildPlayerFeatures(player, opponent)

	tests := []struct {
		market string
		want   float64
	}{
		{"points", 20},
		{"rebounds", 8},
		{"assists", 6 * (100.0 / 98.0)},
		{"threes", 2},
		{"unknown", 20},
	}
	for _, tt := range tests {
		if got := ProjectPlayerMean(f, tt.market); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ProjectPlayerMean(%q) = %v, want %v", tt.market, got, tt.want)
		}
	}

	pra := ProjectPlayerMean(f, "pra")
	sum := ProjectPlayerMean(f, "points") + ProjectPlayerMean(f, "rebounds") + ProjectPlayerMean(f, "assists")
	if math.Abs(pra-sum) > 1e-9 {
		t.Errorf("pra = %v, want component sum %v", pra, sum)
	}
}

func TestProjectPropOverProbability(t *testing.T) {
	playerStats := map[string]stats.PlayerStats{
		"Star": {Player: "Star", Points: 25},
	}
	teamStats := map[string]stats.TeamStats{
		"BOS": team(100, 110, 100),
	}
	lookup := map[string]string{"g1": "BOS"}

	prop := odds.PlayerProp{GameID: "g1", Player: "Star", Market: "points", Line: 25}
	proj, ok := ProjectProp(prop, playerStats, teamStats, lookup)
	if !ok {
		t.Fatal("expected a projection")
	}
	if math.Abs(proj.FairMean-25) > 1e-9 {
		t.Errorf("FairMean = %v, want 25", proj.FairMean)
	}
	// Line at the mean splits the distribution in half.
	if math.Abs(proj.FairProbabilityOver-0.5) > 1e-9 {
		t.Errorf("FairProbabilityOver = %v, want 0.5", proj.FairProbabilityOver)
	}

	// A line below the mean makes the over more likely.
	prop.Line = 20
	proj, _ = ProjectProp(prop, playerStats, teamStats, lookup)
	if proj.FairProbabilityOver <= 0.5 {
		t.Errorf("FairProbabilityOver = %v, want > 0.5", proj.FairProbabilityOver)
	}
}

func TestProjectPropMissingStats(t *testing.T) {
	teamStats := map[string]stats.TeamStats{"BOS": team(100, 110, 100)}
	lookup := map[string]string{"g1": "BOS"}

	prop := odds.PlayerProp{GameID: "g1", Player: "Unknown", Market: "points", Line: 20}
	if _, ok := ProjectProp(prop, map[string]stats.PlayerStats{}, teamStats, lookup); ok {
		t.Error("missing player stats should not project")
	}

	playerStats := map[string]stats.PlayerStats{"Unknown": {Points: 20}}
	if _, ok := ProjectProp(prop, playerStats, map[string]stats.TeamStats{}, lookup); ok {
		t.Error("missing opponent stats should not project")
	}
}

func TestSimulatePropsSkipsUnresolvable(t *testing.T) {
	playerStats := map[string]stats.PlayerStats{"Star": {Player: "Star", Points: 25}}
	teamStats := map[string]stats.TeamStats{"BOS": team(100, 110, 100)}
	lookup := map[string]string{"g1": "BOS"}

	props := []odds.PlayerProp{
		{GameID: "g1", Player: "Star", Market: "points", Line: 24.5},
		{GameID: "g1", Player: "Ghost", Market: "points", Line: 10.5},
	}
	projections := SimulateProps(props, playerStats, teamStats, lookup)
	if len(projections) != 1 {
		t.Fatalf("got %d projections, want 1", len(projections))
	}
	if projections[0].Player != "Star" {
		t.Errorf("Player = %q, want Star", projections[0].Player)
	}
}
