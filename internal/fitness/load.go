package fitness

import (
	"time"

	"trainlab/internal/analysis"
)

// DailyLoad is the summed training load for one calendar day. Gap days are
// explicit zero entries; the EWMA update depends on every day being present.
type DailyLoad struct {
	Date time.Time `json:"date"`
	Load float64   `json:"load"`
}

// BuildDailyLoads aggregates activity metrics into a chronological, gap-free
// daily load series from the first activity date through today. The result is
// safe to hand straight to ComputeFormState.
func BuildDailyLoads(activities []analysis.ActivityMetrics, today time.Time) []DailyLoad {
	if len(activities) == 0 {
		return nil
	}

	byDay := make(map[time.Time]float64)
	first := analysis.Day(activities[0].Date)
	for _, a := range activities {
		day := analysis.Day(a.Date)
		byDay[day] += a.TrainingLoad
		if day.Before(first) {
			first = day
		}
	}

	end := analysis.Day(today)
	if end.Before(first) {
		end = first
	}

	var loads []DailyLoad
	for d := first; !d.After(end); d = d.AddDate(0, 0, 1) {
		loads = append(loads, DailyLoad{Date: d, Load: byDay[d]})
	}
	return loads
}
