package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trainlab/internal/analysis"
	"trainlab/internal/matcher"
)

// ReconcileResult summarizes one reconciliation pass. Planned holds the
// updated plan slots, including synthetic slots minted for unplanned
// activities. Failed counts input files that never produced an activity;
// the caller carries it over from the processing result.
type ReconcileResult struct {
	Matched   int
	Ambiguous int
	Unplanned int
	Failed    int
	Planned   []matcher.PlannedWorkout
	Reviews   []matcher.Result
}

// Reconcile matches completed activities against open plan slots. Activities
// are considered in chronological order and each slot is consumed at most
// once. An activity with no same-day candidate becomes a new unplanned
// entry; an ambiguous candidate is left open and queued in Reviews for
// manual confirmation.
func (s *Service) Reconcile(activities []analysis.ActivityMetrics, planned []matcher.PlannedWorkout) *ReconcileResult {
	result := &ReconcileResult{
		Planned: make([]matcher.PlannedWorkout, len(planned)),
	}
	copy(result.Planned, planned)

	ordered := make([]analysis.ActivityMetrics, len(activities))
	copy(ordered, activities)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	for i := range ordered {
		activity := ordered[i]
		res := matcher.Match(activity, result.Planned)

		switch res.Outcome {
		case matcher.OutcomeMatched:
			// Candidate points into result.Planned; mutate it directly.
			// Generated IDs repeat across weeks, so an ID lookup could
			// land on a different week's slot.
			slot := res.Candidate
			slot.Status = matcher.StatusCompleted
			slot.Actual = &ordered[i]
			result.Matched++
			s.logger.Info("matched activity to plan",
				zap.String("activity_id", activity.ID),
				zap.String("planned_id", slot.ID),
				zap.Float64("confidence", res.Confidence))

		case matcher.OutcomeAmbiguous:
			result.Ambiguous++
			result.Reviews = append(result.Reviews, res)
			s.logger.Info("ambiguous match needs review",
				zap.String("activity_id", activity.ID),
				zap.String("candidate_id", res.Candidate.ID),
				zap.Float64("confidence", res.Confidence))

		case matcher.OutcomeUnplanned:
			entry := matcher.PlannedWorkout{
				ID:          uuid.NewString(),
				Date:        analysis.Day(activity.Date),
				Sport:       activity.Sport,
				DurationMin: activity.DurationMin,
				DistanceKm:  activity.DistanceKm,
				Status:      matcher.StatusUnplanned,
				Actual:      &ordered[i],
			}
			result.Planned = append(result.Planned, entry)
			result.Unplanned++
			s.logger.Info("recorded unplanned activity",
				zap.String("activity_id", activity.ID),
				zap.String("sport", activity.Sport))
		}
	}

	return result
}

// MarkMissed flags open slots whose date has passed without a match.
func MarkMissed(planned []matcher.PlannedWorkout, today time.Time) int {
	missed := 0
	day := analysis.Day(today)
	for i := range planned {
		if planned[i].Status != matcher.StatusPlanned {
			continue
		}
		if analysis.Day(planned[i].Date).Before(day) {
			planned[i].Status = matcher.StatusMissed
			missed++
		}
	}
	return missed
}
