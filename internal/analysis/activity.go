package analysis

import (
	"fmt"
	"time"

	"trainlab/internal/hrzone"
	"trainlab/internal/telemetry"
)

// ExtractActivityMetrics derives the full metric record for one decoded
// activity. Missing sensor streams degrade to nil fields rather than errors;
// most activities legitimately lack some of them.
func ExtractActivityMetrics(act *telemetry.Activity, cfg hrzone.Config) ActivityMetrics {
	session := act.Session
	timerSec := session.TimerSeconds
	if timerSec <= 0 {
		timerSec = session.ElapsedSeconds
	}

	m := computeMetrics(metricInputs{
		Sport:        session.Sport,
		StartTime:    session.StartTime,
		TimerSeconds: timerSec,
		Distance: distanceSources{
			ReportedM:        session.TotalDistanceM,
			ParentM:          act.TotalDistanceM,
			AvgSpeedMps:      session.AvgSpeedMps,
			EnhancedSpeedMps: session.EnhancedAvgSpeedMps,
			TimerSeconds:     timerSec,
		},
		SummaryAvgHR: session.AvgHR,
		SummaryMaxHR: session.MaxHR,
		AscentM:      session.TotalAscentM,
	}, act.Samples, cfg)

	return m
}

// ExtractLapMetrics derives per-lap metrics with the same distance-fallback
// and pace logic as the activity itself. Laps are numbered from 1 in source
// order, not re-sorted.
func ExtractLapMetrics(act *telemetry.Activity, activityID string, cfg hrzone.Config) []LapMetrics {
	out := make([]LapMetrics, 0, len(act.Laps))

	for i, lap := range act.Laps {
		samples := samplesInWindow(act.Samples, lap)

		m := computeMetrics(metricInputs{
			Sport:        act.Session.Sport,
			StartTime:    act.Session.StartTime,
			TimerSeconds: lap.TimerSeconds,
			Distance: distanceSources{
				ReportedM:        lap.TotalDistanceM,
				AvgSpeedMps:      lap.AvgSpeedMps,
				EnhancedSpeedMps: lap.EnhancedAvgSpeedMps,
				TimerSeconds:     lap.TimerSeconds,
			},
			SummaryAvgHR: lap.AvgHR,
			SummaryMaxHR: lap.MaxHR,
			AscentM:      lap.TotalAscentM,
		}, samples, cfg)

		number := i + 1
		m.ID = fmt.Sprintf("%s-lap-%d", activityID, number)
		out = append(out, LapMetrics{
			ActivityID:      activityID,
			LapNumber:       number,
			ActivityMetrics: m,
		})
	}

	return out
}

type metricInputs struct {
	Sport        string
	StartTime    time.Time
	TimerSeconds float64
	Distance     distanceSources
	SummaryAvgHR *float64
	SummaryMaxHR *float64
	AscentM      float64
}

func computeMetrics(in metricInputs, samples []telemetry.Sample, cfg hrzone.Config) ActivityMetrics {
	durationMin := round1(in.TimerSeconds / 60)

	m := ActivityMetrics{
		Date:        Day(in.StartTime),
		Sport:       hrzone.NormalizeSport(in.Sport),
		DurationMin: durationMin,
	}

	m.DistanceKm = resolveDistanceKm(in.Distance, samples)

	hrs := heartRates(samples)
	switch {
	case len(hrs) > 0:
		avg := round1(mean(hrs))
		max := maxOf(hrs)
		m.AvgHR = &avg
		m.MaxHR = &max
	case in.SummaryAvgHR != nil:
		// No usable stream but the recording device reported a summary.
		m.AvgHR = in.SummaryAvgHR
		m.MaxHR = in.SummaryMaxHR
	}
	m.HRDriftPct = hrDrift(hrs)

	dist := distributeZones(hrs, durationMin, cfg)
	m.Zone1Min = dist.Zones[0]
	m.Zone2Min = dist.Zones[1]
	m.Zone3Min = dist.Zones[2]
	m.Zone4Min = dist.Zones[3]
	m.Zone5Min = dist.Zones[4]

	if m.AvgHR != nil {
		m.TrainingLoad = hrzone.TRIMP(*m.AvgHR, durationMin, cfg.RestingHR, cfg.MaxHR)
	}

	if m.DistanceKm > 0 {
		if hrzone.IsPaceSport(m.Sport) {
			pace := round2(durationMin / m.DistanceKm)
			m.PaceMinPerKm = &pace
		}
		if hrzone.IsSpeedSport(m.Sport) && durationMin > 0 {
			speed := round2(m.DistanceKm / (durationMin / 60))
			m.SpeedKmh = &speed
		}
	}

	if power := avgPower(samples); power > 0 {
		m.AvgPowerWatts = &power
	}
	if gain := elevationGain(in.AscentM, samples); gain > 0 {
		m.ElevationGainM = &gain
	}

	return m
}

// samplesInWindow returns the samples recorded during a lap's timer window.
// Pauses inside a lap make this an approximation, which is acceptable for
// lap-level HR and zone statistics.
func samplesInWindow(samples []telemetry.Sample, lap telemetry.Lap) []telemetry.Sample {
	if lap.StartTime.IsZero() || lap.TimerSeconds <= 0 {
		return nil
	}
	end := lap.StartTime.Add(time.Duration(lap.TimerSeconds * float64(time.Second)))

	var out []telemetry.Sample
	for _, s := range samples {
		if s.Timestamp.Before(lap.StartTime) || s.Timestamp.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func avgPower(samples []telemetry.Sample) float64 {
	var total float64
	var count int
	for _, s := range samples {
		if s.PowerWatts != nil && *s.PowerWatts > 0 {
			total += float64(*s.PowerWatts)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round1(total / float64(count))
}

// elevationGain prefers the device-reported ascent and falls back to summing
// positive altitude deltas across the stream.
func elevationGain(reportedM float64, samples []telemetry.Sample) float64 {
	if reportedM > 0 {
		return reportedM
	}

	var gain float64
	var prev float64
	havePrev := false
	for _, s := range samples {
		if s.AltitudeM == nil {
			continue
		}
		if havePrev && *s.AltitudeM > prev {
			gain += *s.AltitudeM - prev
		}
		prev = *s.AltitudeM
		havePrev = true
	}
	return round1(gain)
}
