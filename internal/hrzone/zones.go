package hrzone

import (
	"fmt"
	"math"
)

// Band is a heart rate zone expressed as a percentage range of max HR.
// The range is half-open: [MinPercent, MaxPercent).
type Band struct {
	MinPercent float64 `json:"min_percent" yaml:"min_percent"`
	MaxPercent float64 `json:"max_percent" yaml:"max_percent"`
}

// Config holds athlete-specific heart rate parameters and the five zone bands.
// Bands must be contiguous and non-overlapping, zone 1 lowest.
type Config struct {
	RestingHR float64 `json:"resting_hr" yaml:"resting_hr"`
	MaxHR     float64 `json:"max_hr" yaml:"max_hr"`
	Bands     [5]Band `json:"bands" yaml:"bands"`
}

// DefaultConfig returns the standard 5-zone model (50-60-70-80-90-100% of max HR).
func DefaultConfig() Config {
	return Config{
		RestingHR: 50,
		MaxHR:     185,
		Bands: [5]Band{
			{MinPercent: 50, MaxPercent: 60},
			{MinPercent: 60, MaxPercent: 70},
			{MinPercent: 70, MaxPercent: 80},
			{MinPercent: 80, MaxPercent: 90},
			{MinPercent: 90, MaxPercent: 100},
		},
	}
}

// Validate checks that bands are ordered, contiguous, and non-overlapping.
func (c Config) Validate() error {
	if c.MaxHR <= 0 {
		return fmt.Errorf("max_hr must be positive, got %v", c.MaxHR)
	}
	if c.RestingHR < 0 || c.RestingHR >= c.MaxHR {
		return fmt.Errorf("resting_hr (%v) must be non-negative and below max_hr (%v)", c.RestingHR, c.MaxHR)
	}
	for i, band := range c.Bands {
		if band.MaxPercent <= band.MinPercent {
			return fmt.Errorf("zone %d range [%v, %v) is empty", i+1, band.MinPercent, band.MaxPercent)
		}
		if i > 0 && band.MinPercent != c.Bands[i-1].MaxPercent {
			return fmt.Errorf("zone %d starts at %v%% but zone %d ends at %v%%", i+1, band.MinPercent, i, c.Bands[i-1].MaxPercent)
		}
	}
	return nil
}

// ZoneFor returns the zone number (1-5) for a heart rate reading.
// Readings below the lowest band map to zone 1 and readings above the
// highest band map to zone 5, so every non-negative bpm gets exactly one zone.
func ZoneFor(heartRateBpm float64, cfg Config) int {
	if cfg.MaxHR <= 0 {
		return 1
	}

	hrPercent := heartRateBpm / cfg.MaxHR * 100

	if hrPercent < cfg.Bands[0].MinPercent {
		return 1
	}
	for i, band := range cfg.Bands {
		if hrPercent >= band.MinPercent && hrPercent < band.MaxPercent {
			return i + 1
		}
	}
	return 5
}

// TRIMP calculates the Banister training impulse for an activity.
// load = duration * ratio * e^(1.92 * ratio), where ratio is the heart rate
// reserve fraction. An avg HR at or below resting HR is physiologically
// invalid for load purposes and floors the result at 0.
func TRIMP(avgHR, durationMinutes, restingHR, maxHR float64) float64 {
	hrReserve := maxHR - restingHR
	if hrReserve <= 0 || durationMinutes <= 0 {
		return 0
	}

	ratio := (avgHR - restingHR) / hrReserve
	if ratio <= 0 {
		return 0
	}

	load := durationMinutes * ratio * math.Exp(1.92*ratio)
	return math.Round(load*10) / 10
}
