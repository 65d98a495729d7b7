package analysis

import (
	"math"
	"time"
)

// ActivityMetrics holds everything derived from one completed activity.
// Created once per activity and immutable afterwards except for corrective
// re-processing. Optional sensor-derived fields are nil when the activity
// lacks the stream, never zeroed by default.
type ActivityMetrics struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"` // calendar day, UTC midnight
	Sport          string    `json:"sport"`
	DurationMin    float64   `json:"duration_min"`
	DistanceKm     float64   `json:"distance_km"`
	AvgHR          *float64  `json:"avg_hr,omitempty"`
	MaxHR          *float64  `json:"max_hr,omitempty"`
	HRDriftPct     *float64  `json:"hr_drift_pct,omitempty"` // signed percentage
	Zone1Min       float64   `json:"zone1_min"`
	Zone2Min       float64   `json:"zone2_min"`
	Zone3Min       float64   `json:"zone3_min"`
	Zone4Min       float64   `json:"zone4_min"`
	Zone5Min       float64   `json:"zone5_min"`
	TrainingLoad   float64   `json:"training_load"` // TRIMP units
	PaceMinPerKm   *float64  `json:"pace_min_per_km,omitempty"`
	SpeedKmh       *float64  `json:"speed_kmh,omitempty"`
	AvgPowerWatts  *float64  `json:"avg_power_watts,omitempty"`
	ElevationGainM *float64  `json:"elevation_gain_m,omitempty"`
}

// LapMetrics is the same shape as ActivityMetrics scoped to one lap,
// linked to its parent activity. Lap numbers are 1-based in source order.
type LapMetrics struct {
	ActivityID string `json:"activity_id"`
	LapNumber  int    `json:"lap_number"`
	ActivityMetrics
}

// HighIntensityMin returns the minutes spent in zones 4 and 5.
func (m ActivityMetrics) HighIntensityMin() float64 {
	return m.Zone4Min + m.Zone5Min
}

// ZoneMinutes returns the five zone buckets as a slice, zone 1 first.
func (m ActivityMetrics) ZoneMinutes() [5]float64 {
	return [5]float64{m.Zone1Min, m.Zone2Min, m.Zone3Min, m.Zone4Min, m.Zone5Min}
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
