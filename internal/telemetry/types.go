package telemetry

import "time"

// Sample is one decoded telemetry record. It is produced by an external
// decoder; fields absent from the recording are nil.
type Sample struct {
	Timestamp  time.Time `json:"timestamp"`
	HeartRate  *int      `json:"heart_rate,omitempty"`  // bpm
	Lat        *float64  `json:"lat,omitempty"`         // degrees
	Lng        *float64  `json:"lng,omitempty"`         // degrees
	SpeedMps   *float64  `json:"speed_mps,omitempty"`   // m/s
	PowerWatts *int      `json:"power_watts,omitempty"` // W
	Cadence    *int      `json:"cadence,omitempty"`     // rpm/spm
	AltitudeM  *float64  `json:"altitude_m,omitempty"`  // meters
	DistanceM  *float64  `json:"distance_m,omitempty"`  // cumulative meters
}

// Session is the decoded per-activity summary record.
type Session struct {
	Sport               string    `json:"sport"`
	SubSport            string    `json:"sub_sport,omitempty"`
	StartTime           time.Time `json:"start_time"`
	TimerSeconds        float64   `json:"timer_seconds"`
	ElapsedSeconds      float64   `json:"elapsed_seconds"`
	TotalDistanceM      float64   `json:"total_distance_m"`
	AvgSpeedMps         float64   `json:"avg_speed_mps"`
	EnhancedAvgSpeedMps float64   `json:"enhanced_avg_speed_mps"`
	AvgHR               *float64  `json:"avg_hr,omitempty"`
	MaxHR               *float64  `json:"max_hr,omitempty"`
	TotalAscentM        float64   `json:"total_ascent_m"`
	TotalDescentM       float64   `json:"total_descent_m"`
	Calories            int       `json:"calories"`
}

// Lap is the decoded per-lap summary record.
type Lap struct {
	StartTime           time.Time `json:"start_time"`
	TimerSeconds        float64   `json:"timer_seconds"`
	TotalDistanceM      float64   `json:"total_distance_m"`
	AvgSpeedMps         float64   `json:"avg_speed_mps"`
	EnhancedAvgSpeedMps float64   `json:"enhanced_avg_speed_mps"`
	AvgHR               *float64  `json:"avg_hr,omitempty"`
	MaxHR               *float64  `json:"max_hr,omitempty"`
	TotalAscentM        float64   `json:"total_ascent_m"`
}

// Activity bundles everything the decoder emits for one recording.
// TotalDistanceM is the activity-level distance when the container reports
// one separately from the session.
type Activity struct {
	Session        Session  `json:"session"`
	TotalDistanceM float64  `json:"total_distance_m"`
	Laps           []Lap    `json:"laps,omitempty"`
	Samples        []Sample `json:"samples,omitempty"`
}
