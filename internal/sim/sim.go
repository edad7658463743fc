// Package sim projects game scores and player prop outcomes from team and
// player baselines.
package sim

import (
	"math"

	"github.com/willbo114-dot/hoops-edge/internal/odds"
	"github.com/willbo114-dot/hoops-edge/internal/stats"
)

type GameFeatures struct {
	Home stats.TeamStats
	Away stats.TeamStats
	Pace float64
}

func BuildGameFeatures(home, away stats.TeamStats) GameFeatures {
	return GameFeatures{
		Home: home,
		Away: away,
		Pace: (home.Pace + away.Pace) / 2,
	}
}

type PlayerFeatures struct {
	Stats             stats.PlayerStats
	OpponentDefRating float64
	OpponentPace      float64
}

func BuildPlayerFeatures(player stats.PlayerStats, opponent stats.TeamStats) PlayerFeatures {
	return PlayerFeatures{
		Stats:             player,
		OpponentDefRating: opponent.DefensiveRating,
		OpponentPace:      opponent.Pace,
	}
}

// ProjectPlayerMean scales a player's baseline for the given market by the
// opponent context. Unknown markets fall back to points.
func ProjectPlayerMean(f PlayerFeatures, market string) float64 {
	base := f.Stats
	switch market {
	case "points":
		return base.Points * (f.OpponentPace / 100)
	case "rebounds":
		return base.Rebounds * (100 / f.OpponentDefRating)
	case "assists":
		return base.Assists * (f.OpponentPace / 98)
	case "threes":
		return base.Threes * (f.OpponentPace / 100)
	case "pra":
		return ProjectPlayerMean(f, "points") +
			ProjectPlayerMean(f, "rebounds") +
			ProjectPlayerMean(f, "assists")
	}
	return base.Points
}

type GameProjection struct {
	GameID     string
	HomeScore  float64
	AwayScore  float64
	FairMLHome float64
	FairMLAway float64
	FairSpread float64
	FairTotal  float64
}

type PropProjection struct {
	Player              string
	Market              string
	FairMean            float64
	FairProbabilityOver float64
}

// SimulateGame projects a final score from rating edges and pace, then maps
// the spread to a moneyline probability with a clamped linear approximation.
func SimulateGame(gameID string, f GameFeatures) GameProjection {
	offensiveEdge := f.Home.OffensiveRating - f.Away.DefensiveRating
	defensiveEdge := f.Away.OffensiveRating - f.Home.DefensiveRating
	paceFactor := f.Pace / 100

	homeScore := 100 + offensiveEdge*paceFactor
	awayScore := 100 + defensiveEdge*paceFactor

	fairTotal := homeScore + awayScore
	fairSpread := homeScore - awayScore

	homeProb := 0.5 + fairSpread/20
	homeProb = math.Max(0.05, math.Min(0.95, homeProb))

	return GameProjection{
		GameID:     gameID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		FairMLHome: homeProb,
		FairMLAway: 1 - homeProb,
		FairSpread: fairSpread,
		FairTotal:  fairTotal,
	}
}

func normalCDF(x, mean, std float64) float64 {
	z := (x - mean) / (std * math.Sqrt2)
	return 0.5 * (1 + math.Erf(z))
}

// ProjectProp projects one prop's mean and over probability. The second
// return is false when the player or opposing team stats are missing.
func ProjectProp(
	prop odds.PlayerProp,
	playerStats map[string]stats.PlayerStats,
	teamStats map[string]stats.TeamStats,
	matchupLookup map[string]string,
) (PropProjection, bool) {
	player, ok := playerStats[prop.Player]
	if !ok {
		return PropProjection{}, false
	}
	opponent, ok := teamStats[matchupLookup[prop.GameID]]
	if !ok {
		return PropProjection{}, false
	}
	features := BuildPlayerFeatures(player, opponent)
	mean := ProjectPlayerMean(features, prop.Market)
	std := math.Max(1.5, mean*0.18)
	return PropProjection{
		Player:              prop.Player,
		Market:              prop.Market,
		FairMean:            mean,
		FairProbabilityOver: 1 - normalCDF(prop.Line, mean, std),
	}, true
}

// SimulateProps projects every prop, dropping the ones with missing stats.
func SimulateProps(
	props []odds.PlayerProp,
	playerStats map[string]stats.PlayerStats,
	teamStats map[string]stats.TeamStats,
	matchupLookup map[string]string,
) []PropProjection {
	projections := make([]PropProjection, 0, len(props))
	for _, prop := range props {
		if p, ok := ProjectProp(prop, playerStats, teamStats, matchupLookup); ok {
			projections = append(projections, p)
		}
	}
	return projections
}
