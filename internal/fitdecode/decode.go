// Package fitdecode adapts the tormoder/fit decoder's output into the
// telemetry schema consumed by the analysis packages. All byte-level parsing
// happens inside the library; this package only maps already-decoded
// messages, applying the FIT profile's scale factors and invalid-value
// sentinels.
package fitdecode

import (
	"fmt"
	"os"

	"github.com/tormoder/fit"

	"trainlab/internal/telemetry"
)

const invalidUint8 = 255

// DecodeFile decodes a FIT activity file into the telemetry schema.
func DecodeFile(path string) (*telemetry.Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FIT file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FIT file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("not an activity file: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, telemetry.ErrNoSession
	}

	out := &telemetry.Activity{
		Session: convertSession(activity.Sessions[0]),
	}
	for _, lap := range activity.Laps {
		if lap == nil {
			continue
		}
		out.Laps = append(out.Laps, convertLap(lap))
	}
	for _, rec := range activity.Records {
		if rec == nil {
			continue
		}
		out.Samples = append(out.Samples, convertRecord(rec))
	}

	return out, nil
}

func convertSession(s *fit.SessionMsg) telemetry.Session {
	session := telemetry.Session{
		Sport:               s.Sport.String(),
		SubSport:            s.SubSport.String(),
		StartTime:           s.StartTime,
		TimerSeconds:        safePositive(s.GetTotalTimerTimeScaled()),
		ElapsedSeconds:      safePositive(s.GetTotalElapsedTimeScaled()),
		TotalDistanceM:      safePositive(s.GetTotalDistanceScaled()),
		AvgSpeedMps:         safePositive(s.GetAvgSpeedScaled()),
		EnhancedAvgSpeedMps: safePositive(s.GetEnhancedAvgSpeedScaled()),
		TotalAscentM:        float64(validUint16(s.TotalAscent)),
		TotalDescentM:       float64(validUint16(s.TotalDescent)),
		Calories:            int(validUint16(s.TotalCalories)),
	}
	if hr := validUint8(s.AvgHeartRate); hr > 0 {
		v := float64(hr)
		session.AvgHR = &v
	}
	if hr := validUint8(s.MaxHeartRate); hr > 0 {
		v := float64(hr)
		session.MaxHR = &v
	}
	return session
}

func convertLap(l *fit.LapMsg) telemetry.Lap {
	lap := telemetry.Lap{
		StartTime:           l.StartTime,
		TimerSeconds:        safePositive(l.GetTotalTimerTimeScaled()),
		TotalDistanceM:      safePositive(l.GetTotalDistanceScaled()),
		AvgSpeedMps:         safePositive(l.GetAvgSpeedScaled()),
		EnhancedAvgSpeedMps: safePositive(l.GetEnhancedAvgSpeedScaled()),
		TotalAscentM:        float64(validUint16(l.TotalAscent)),
	}
	if hr := validUint8(l.AvgHeartRate); hr > 0 {
		v := float64(hr)
		lap.AvgHR = &v
	}
	if hr := validUint8(l.MaxHeartRate); hr > 0 {
		v := float64(hr)
		lap.MaxHR = &v
	}
	return lap
}

func convertRecord(r *fit.RecordMsg) telemetry.Sample {
	sample := telemetry.Sample{Timestamp: r.Timestamp}

	// Positions are semicircles; a zero pair means no fix.
	if r.PositionLat.Semicircles() != 0 && r.PositionLong.Semicircles() != 0 {
		lat := r.PositionLat.Degrees()
		lng := r.PositionLong.Degrees()
		if lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180 {
			sample.Lat = &lat
			sample.Lng = &lng
		}
	}

	if hr := validUint8(r.HeartRate); hr >= telemetry.MinValidHeartRate && hr <= telemetry.MaxValidHeartRate {
		v := int(hr)
		sample.HeartRate = &v
	}
	if speed := safePositive(r.GetEnhancedSpeedScaled()); speed > 0 {
		sample.SpeedMps = &speed
	} else if speed := safePositive(r.GetSpeedScaled()); speed > 0 {
		sample.SpeedMps = &speed
	}
	if cad := validUint8(r.Cadence); cad > 0 {
		v := int(cad)
		sample.Cadence = &v
	}
	if r.Power != 0 && r.Power != 65535 {
		v := int(r.Power)
		sample.PowerWatts = &v
	}
	if alt := r.GetAltitudeScaled(); alt > -500 && alt < 9000 {
		sample.AltitudeM = &alt
	}
	if dist := safePositive(r.GetDistanceScaled()); dist > 0 {
		sample.DistanceM = &dist
	}

	return sample
}

func safePositive(v float64) float64 {
	if v != v || v <= 0 { // NaN or non-positive
		return 0
	}
	return v
}

func validUint8(v uint8) uint8 {
	if v == invalidUint8 {
		return 0
	}
	return v
}

func validUint16(v uint16) uint16 {
	if v == 65535 {
		return 0
	}
	return v
}
