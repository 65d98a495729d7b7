package analysis

import "trainlab/internal/hrzone"

// zoneDistribution is the per-zone time split for one activity or lap.
// TotalTimeMin preserves the raw duration even when no sample carries HR.
type zoneDistribution struct {
	Zones        [5]float64
	TotalTimeMin float64
}

// distributeZones spreads the duration across the five zones assuming
// uniform elapsed time per valid HR sample. With no valid samples all
// buckets stay 0 and only the total time survives.
func distributeZones(hrs []float64, durationMin float64, cfg hrzone.Config) zoneDistribution {
	dist := zoneDistribution{TotalTimeMin: durationMin}
	if len(hrs) == 0 || durationMin <= 0 {
		return dist
	}

	slice := durationMin / float64(len(hrs))
	for _, hr := range hrs {
		dist.Zones[hrzone.ZoneFor(hr, cfg)-1] += slice
	}
	for i := range dist.Zones {
		dist.Zones[i] = round1(dist.Zones[i])
	}
	return dist
}
