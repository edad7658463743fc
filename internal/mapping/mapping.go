// Package mapping canonicalises team names and resolves conferences.
package mapping

import "strings"

var teamAliases = map[string]string{
	"BOS":      "Boston Celtics",
	"Boston":   "Boston Celtics",
	"Celtics":  "Boston Celtics",
	"NYK":      "New York Knicks",
	"New York": "New York Knicks",
	"Knicks":   "New York Knicks",
}

var teamConferences = map[string]string{
	"Atlanta Hawks":          "east",
	"Boston Celtics":         "east",
	"Brooklyn Nets":          "east",
	"Charlotte Hornets":      "east",
	"Chicago Bulls":          "east",
	"Cleveland Cavaliers":    "east",
	"Dallas Mavericks":       "west",
	"Denver Nuggets":         "west",
	"Detroit Pistons":        "east",
	"Golden State Warriors":  "west",
	"Houston Rockets":        "west",
	"Indiana Pacers":         "east",
	"Los Angeles Clippers":   "west",
	"Los Angeles Lakers":     "west",
	"Memphis Grizzlies":      "west",
	"Miami Heat":             "east",
	"Milwaukee Bucks":        "east",
	"Minnesota Timberwolves": "west",
	"New Orleans Pelicans":   "west",
	"New York Knicks":        "east",
	"Oklahoma City Thunder":  "west",
	"Orlando Magic":          "east",
	"Philadelphia 76ers":     "east",
	"Phoenix Suns":           "west",
	"Portland Trail Blazers": "west",
	"Sacramento Kings":       "west",
	"San Antonio Spurs":      "west",
	"Toronto Raptors":        "east",
	"Utah Jazz":              "west",
	"Washington Wizards":     "east",
}

// CanonicalTeam resolves aliases and abbreviations to the full team name.
// Unknown names pass through unchanged.
func CanonicalTeam(name string) string {
	name = strings.TrimSpace(name)
	if full, ok := teamAliases[name]; ok {
		return full
	}
	return name
}

// ConferenceForTeam returns "east" or "west", or "all" for unknown teams so
// they survive any conference filter.
func ConferenceForTeam(team string) string {
	if conf, ok := teamConferences[CanonicalTeam(team)]; ok {
		return conf
	}
	return "all"
}
