// Package stats supplies team and player statistics.
package stats

import "fmt"

type TeamStats struct {
	Team                string  `json:"team"`
	Pace                float64 `json:"pace"`
	OffensiveRating     float64 `json:"offensive_rating"`
	DefensiveRating     float64 `json:"defensive_rating"`
	EffectiveFG         float64 `json:"effective_fg"`
	OffensiveReboundPct float64 `json:"offensive_rebound_pct"`
	TurnoverPct         float64 `json:"turnover_pct"`
	FreeThrowRate       float64 `json:"free_throw_rate"`
	RecentRecord        string  `json:"recent_record"`
}

type PlayerStats struct {
	Player   string  `json:"player"`
	Minutes  float64 `json:"minutes"`
	Usage    float64 `json:"usage"`
	Points   float64 `json:"points"`
	Rebounds float64 `json:"rebounds"`
	Assists  float64 `json:"assists"`
	Threes   float64 `json:"threes"`
}

type Provider interface {
	FetchTeamStats(teams []string) (map[string]TeamStats, error)
	FetchPlayerStats(players []string) (map[string]PlayerStats, error)
}

// OfflineProvider derives deterministic baseline numbers from the name
// alone, so replayed runs reproduce byte-identical reports without a network.
type OfflineProvider struct{}

func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

func nameBase(name string, mod int) float64 {
	sum := 0
	for _, c := range name {
		sum += int(c)
	}
	return float64(sum % mod)
}

func (p *OfflineProvider) FetchTeamStats(teams []string) (map[string]TeamStats, error) {
	results := make(map[string]TeamStats, len(teams))
	for _, team := range teams {
		base := nameBase(team, 10)
		results[team] = TeamStats{
			Team:                team,
			Pace:                95 + base,
			OffensiveRating:     108 + base*0.7,
			DefensiveRating:     105 - base*0.5,
			EffectiveFG:         0.52 + base*0.001,
			OffensiveReboundPct: 0.26 + base*0.002,
			TurnoverPct:         0.12 - base*0.001,
			FreeThrowRate:       0.24 + base*0.002,
			RecentRecord:        fmt.Sprintf("%d-%d", 3+int(base)%3, 2+int(base)%3),
		}
	}
	return results, nil
}

func (p *OfflineProvider) FetchPlayerStats(players []string) (map[string]PlayerStats, error) {
	results := make(map[string]PlayerStats, len(players))
	for _, player := range players {
		base := nameBase(player, 12)
		results[player] = PlayerStats{
			Player:   player,
			Minutes:  28 + base,
			Usage:    0.22 + base*0.003,
			Points:   15 + base*0.8,
			Rebounds: 5 + base*0.3,
			Assists:  4 + base*0.25,
			Threes:   1.5 + base*0.1,
		}
	}
	return results, nil
}
