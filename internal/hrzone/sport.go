package hrzone

import "strings"

// sportAliases maps vendor sport tokens to the normalized taxonomy.
// Unknown tokens pass through unchanged so the original label is preserved
// for later inspection.
var sportAliases = map[string]string{
	"run":             "run",
	"running":         "run",
	"trail_running":   "run",
	"treadmill":       "run",
	"track":           "run",
	"bike":            "bike",
	"biking":          "bike",
	"cycling":         "bike",
	"road_biking":     "bike",
	"mountain_biking": "bike",
	"virtual_ride":    "bike",
	"indoor_cycling":  "bike",
	"swim":            "swim",
	"swimming":        "swim",
	"open_water":      "swim",
	"lap_swimming":    "swim",
	"walk":            "walk",
	"walking":         "walk",
	"hike":            "hike",
	"hiking":          "hike",
}

// Pace-based sports report min/km, speed-based sports report km/h.
var (
	paceSports  = []string{"run", "walk", "hike"}
	speedSports = []string{"bike"}
)

// NormalizeSport maps a free-text or vendor sport token into the closed
// taxonomy. Unrecognized tokens are returned lowercased but otherwise as-is.
func NormalizeSport(sport string) string {
	token := strings.ToLower(strings.TrimSpace(sport))
	if normalized, ok := sportAliases[token]; ok {
		return normalized
	}
	return token
}

// IsPaceSport reports whether the sport should be described by pace (min/km).
func IsPaceSport(sport string) bool {
	return matchesAny(sport, paceSports)
}

// IsSpeedSport reports whether the sport should be described by speed (km/h).
func IsSpeedSport(sport string) bool {
	return matchesAny(sport, speedSports)
}

func matchesAny(sport string, list []string) bool {
	lowered := strings.ToLower(sport)
	for _, s := range list {
		if strings.Contains(lowered, s) {
			return true
		}
	}
	return false
}
