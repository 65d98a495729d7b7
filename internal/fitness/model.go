package fitness

import "time"

// Time constants for the chronic and acute exponential averages, in days.
const (
	ctlTimeConstant = 42
	atlTimeConstant = 7
)

// Status describes the athlete's current form, derived from TSB.
type Status string

const (
	StatusFresh        Status = "fresh"
	StatusOptimal      Status = "optimal"
	StatusProductive   Status = "productive"
	StatusMaintaining  Status = "maintaining"
	StatusOverreaching Status = "overreaching"
	StatusHighRisk     Status = "high_risk"
)

// DayPoint is one chart-ready point of the fitness/fatigue/form series.
type DayPoint struct {
	Date time.Time `json:"date"`
	CTL  float64   `json:"ctl"`
	ATL  float64   `json:"atl"`
	TSB  float64   `json:"tsb"`
}

// FormState is the rolling training-stress state on the final day of the
// series, plus the full historical series for charting.
type FormState struct {
	CTL       float64    `json:"ctl"`
	ATL       float64    `json:"atl"`
	TSB       float64    `json:"tsb"`
	CTLChange float64    `json:"ctl_change"` // CTL now minus CTL 7 days prior
	Status    Status     `json:"status"`
	Series    []DayPoint `json:"series,omitempty"`
}

// ComputeFormState re-derives CTL/ATL/TSB over the full series. The input
// must be chronological and gap-free (see BuildDailyLoads); each day's update
// depends on the previous day's value, so the fold cannot be reordered.
// Recomputation over an unchanged series is idempotent.
func ComputeFormState(loads []DailyLoad) FormState {
	var ctl, atl float64
	var ctlWeekAgo float64
	series := make([]DayPoint, 0, len(loads))

	for i, day := range loads {
		ctl += (day.Load - ctl) / ctlTimeConstant
		atl += (day.Load - atl) / atlTimeConstant

		if i == len(loads)-1-atlTimeConstant {
			ctlWeekAgo = ctl
		}

		series = append(series, DayPoint{Date: day.Date, CTL: ctl, ATL: atl, TSB: ctl - atl})
	}

	tsb := ctl - atl
	return FormState{
		CTL:       ctl,
		ATL:       atl,
		TSB:       tsb,
		CTLChange: ctl - ctlWeekAgo,
		Status:    statusFor(tsb),
		Series:    series,
	}
}

func statusFor(tsb float64) Status {
	switch {
	case tsb > 25:
		return StatusFresh
	case tsb >= 5:
		return StatusOptimal
	case tsb >= -10:
		return StatusProductive
	case tsb >= -30:
		return StatusOverreaching
	case tsb < -30:
		return StatusHighRisk
	default:
		// Only reachable when tsb is NaN.
		return StatusMaintaining
	}
}
