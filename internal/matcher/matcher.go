// Package matcher reconciles freshly analyzed activities against the
// athlete's open planned workouts.
package matcher

import (
	"fmt"
	"math"
	"time"

	"trainlab/internal/analysis"
)

// Confidence weights and the auto-match threshold. Date match is a hard gate
// and is not weighted; sport carries the large share, with duration and
// distance closeness contributing the rest. Closeness decays linearly and
// bottoms out once the relative difference reaches closenessSpan.
const (
	sportWeight    = 0.5
	durationWeight = 0.3
	distanceWeight = 0.2
	closenessSpan  = 0.5

	// AutoMatchThreshold is the minimum confidence at which a completed
	// activity is reconciled without manual confirmation.
	AutoMatchThreshold = 0.70
)

// Planned workout lifecycle states.
const (
	StatusPlanned   = "planned"
	StatusCompleted = "completed"
	StatusMissed    = "missed"
	StatusUnplanned = "unplanned"
)

// PlannedWorkout is one open slot from the training plan.
type PlannedWorkout struct {
	ID          string                    `json:"id"`
	Date        time.Time                 `json:"date"`
	Sport       string                    `json:"sport"`
	DurationMin float64                   `json:"duration_min"`
	DistanceKm  float64                   `json:"distance_km"`
	Status      string                    `json:"status"`
	Actual      *analysis.ActivityMetrics `json:"actual,omitempty"`
}

// Outcome classifies the reconciliation decision for one activity.
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"
	OutcomeAmbiguous Outcome = "ambiguous"
	OutcomeUnplanned Outcome = "unplanned"
)

// Differences records how the activity deviated from the plan's targets.
type Differences struct {
	DurationDeltaMin float64 `json:"duration_delta_min"`
	DistanceDeltaKm  float64 `json:"distance_delta_km"`
	SportMatch       bool    `json:"sport_match"`
	DateMatch        bool    `json:"date_match"`
}

// Result is the scored outcome for one activity. Candidate is nil when no
// planned workout shares the activity's calendar date.
type Result struct {
	Outcome    Outcome         `json:"outcome"`
	Candidate  *PlannedWorkout `json:"candidate,omitempty"`
	Confidence float64         `json:"confidence"`
	Reasons    []string        `json:"reasons,omitempty"`
	Diff       Differences     `json:"diff"`
}

// Match scores the activity against every still-open planned workout on the
// same calendar date and picks the highest-confidence candidate. Candidates
// on other dates are excluded outright, not scored: a wrong date (or wrong
// sport, via the weights) can never produce an auto-match.
func Match(activity analysis.ActivityMetrics, planned []PlannedWorkout) Result {
	var best *PlannedWorkout
	var bestConfidence float64
	var bestReasons []string
	var bestDiff Differences

	day := analysis.Day(activity.Date)

	for i := range planned {
		candidate := &planned[i]
		if candidate.Status != StatusPlanned {
			continue
		}
		if !analysis.Day(candidate.Date).Equal(day) {
			continue
		}

		confidence, reasons, diff := score(activity, *candidate)
		if best == nil || confidence > bestConfidence {
			best = candidate
			bestConfidence = confidence
			bestReasons = reasons
			bestDiff = diff
		}
	}

	if best == nil {
		return Result{Outcome: OutcomeUnplanned}
	}

	outcome := OutcomeAmbiguous
	if bestConfidence >= AutoMatchThreshold {
		outcome = OutcomeMatched
	}
	return Result{
		Outcome:    outcome,
		Candidate:  best,
		Confidence: bestConfidence,
		Reasons:    bestReasons,
		Diff:       bestDiff,
	}
}

func score(activity analysis.ActivityMetrics, candidate PlannedWorkout) (float64, []string, Differences) {
	diff := Differences{
		DateMatch:        true, // non-matching dates never reach scoring
		SportMatch:       activity.Sport == candidate.Sport,
		DurationDeltaMin: round2(activity.DurationMin - candidate.DurationMin),
		DistanceDeltaKm:  round2(activity.DistanceKm - candidate.DistanceKm),
	}

	reasons := []string{fmt.Sprintf("planned for the same day (%s)", candidate.Date.Format("2006-01-02"))}
	var confidence float64

	if diff.SportMatch {
		confidence += sportWeight
		reasons = append(reasons, fmt.Sprintf("sport matches (%s)", activity.Sport))
	} else {
		reasons = append(reasons, fmt.Sprintf("sport differs (%s planned, %s recorded)", candidate.Sport, activity.Sport))
	}

	durRel := relativeDiff(activity.DurationMin, candidate.DurationMin)
	durScore := durationWeight * closeness(durRel)
	confidence += durScore
	if candidate.DurationMin > 0 && durScore > 0 {
		reasons = append(reasons, fmt.Sprintf("duration within %.0f%% of plan", durRel*100))
	}

	// Plans without a distance target score distance by duration closeness
	// so a targetless plan is not penalized.
	distRel := durRel
	if candidate.DistanceKm > 0 {
		distRel = relativeDiff(activity.DistanceKm, candidate.DistanceKm)
	}
	distScore := distanceWeight * closeness(distRel)
	confidence += distScore
	if candidate.DistanceKm > 0 && distScore > 0 {
		reasons = append(reasons, fmt.Sprintf("distance within %.0f%% of plan", distRel*100))
	}

	return confidence, reasons, diff
}

// relativeDiff is |a-b| relative to the planned target.
func relativeDiff(actual, target float64) float64 {
	if target <= 0 {
		if actual <= 0 {
			return 0
		}
		return 1
	}
	return math.Abs(actual-target) / target
}

// closeness maps a relative difference in [0, inf) to a score in [0, 1],
// contributing less as the gap grows.
func closeness(rel float64) float64 {
	if rel >= closenessSpan {
		return 0
	}
	return 1 - rel/closenessSpan
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
