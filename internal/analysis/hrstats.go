package analysis

import "trainlab/internal/telemetry"

// minDriftSamples is the minimum number of valid HR readings required before
// the drift calculation is meaningful.
const minDriftSamples = 6

// heartRates extracts the positive HR readings from a sample stream,
// preserving order.
func heartRates(samples []telemetry.Sample) []float64 {
	var hrs []float64
	for _, s := range samples {
		if s.HeartRate != nil && *s.HeartRate > 0 {
			hrs = append(hrs, float64(*s.HeartRate))
		}
	}
	return hrs
}

// hrDrift compares the average of the last third of the readings against the
// first third, as a signed percentage. Fewer than minDriftSamples readings
// yields nil (undefined), never zero.
func hrDrift(hrs []float64) *float64 {
	if len(hrs) < minDriftSamples {
		return nil
	}

	third := len(hrs) / 3
	firstAvg := mean(hrs[:third])
	lastAvg := mean(hrs[2*third:]) // last slice absorbs the remainder
	if firstAvg == 0 {
		return nil
	}

	drift := round1((lastAvg - firstAvg) / firstAvg * 100)
	return &drift
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func maxOf(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
