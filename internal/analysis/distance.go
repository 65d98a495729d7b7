package analysis

import (
	"github.com/golang/geo/s2"

	"trainlab/internal/telemetry"
)

const earthRadiusM = 6371000.0

// distanceSources carries every reported value the fallback chain may use.
type distanceSources struct {
	ReportedM        float64 // session (or lap) total distance, meters
	ParentM          float64 // parent-activity total distance, meters
	AvgSpeedMps      float64
	EnhancedSpeedMps float64
	TimerSeconds     float64
}

// resolveDistanceKm walks the ordered fallback chain: reported distance,
// parent-activity distance, average speed x time, enhanced speed x time,
// great-circle integration over GPS fixes, and finally the distance field on
// the last sample. Each step is tried only when the prior yields no positive
// value; absence of all six yields 0, not an error.
func resolveDistanceKm(src distanceSources, samples []telemetry.Sample) float64 {
	if src.ReportedM > 0 {
		return round2(src.ReportedM / 1000)
	}
	if src.ParentM > 0 {
		return round2(src.ParentM / 1000)
	}
	if src.AvgSpeedMps > 0 && src.TimerSeconds > 0 {
		kmh := src.AvgSpeedMps * 3.6
		return round2(kmh * (src.TimerSeconds / 3600))
	}
	if src.EnhancedSpeedMps > 0 && src.TimerSeconds > 0 {
		kmh := src.EnhancedSpeedMps * 3.6
		return round2(kmh * (src.TimerSeconds / 3600))
	}
	if km := gpsDistanceKm(samples); km > 0 {
		return round2(km)
	}
	if km := lastSampleDistanceKm(samples); km > 0 {
		return round2(km)
	}
	return 0
}

// gpsDistanceKm integrates great-circle distance across consecutive GPS fixes.
func gpsDistanceKm(samples []telemetry.Sample) float64 {
	var totalM float64
	var prev s2.LatLng
	havePrev := false

	for _, s := range samples {
		if !s.HasPosition() {
			continue
		}
		cur := s2.LatLngFromDegrees(*s.Lat, *s.Lng)
		if havePrev {
			totalM += cur.Distance(prev).Radians() * earthRadiusM
		}
		prev = cur
		havePrev = true
	}

	return totalM / 1000
}

func lastSampleDistanceKm(samples []telemetry.Sample) float64 {
	for i := len(samples) - 1; i >= 0; i-- {
		if d := samples[i].DistanceM; d != nil && *d > 0 {
			return *d / 1000
		}
	}
	return 0
}
