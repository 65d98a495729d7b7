package fitness

import (
	"sort"
	"time"

	"trainlab/internal/analysis"
)

// Risk levels for the last-7-day fatigue heuristic.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// HR-drift trend labels.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

const (
	recentWindowDays    = 7
	streakSearchCapDays = 30
	driftTrendMinCount  = 6
)

// Dashboard bundles the fitness-form state with the derived analytics the
// athlete-facing views need.
type Dashboard struct {
	Form          FormState `json:"form"`
	FatigueRisk   string    `json:"fatigue_risk"`
	Readiness     int       `json:"readiness"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	DriftTrend    string    `json:"drift_trend"`
	InjuryRisk    []string  `json:"injury_risk,omitempty"`
}

// BuildDashboard recomputes the full analytics bundle from scratch.
// Activities may arrive in any order; every derived figure re-sorts or
// re-aggregates as it needs to.
func BuildDashboard(activities []analysis.ActivityMetrics, today time.Time) Dashboard {
	loads := BuildDailyLoads(activities, today)

	return Dashboard{
		Form:          ComputeFormState(loads),
		FatigueRisk:   FatigueRisk(activities, today),
		Readiness:     ReadinessScore(activities, today),
		CurrentStreak: CurrentStreak(activities, today),
		LongestStreak: LongestStreak(activities),
		DriftTrend:    DriftTrend(activities),
		InjuryRisk:    InjuryRiskFactors(activities, today),
	}
}

// FatigueRisk classifies the last seven days: high when average daily load
// exceeds 100 or high-intensity minutes exceed 120, moderate at 60/60.
func FatigueRisk(activities []analysis.ActivityMetrics, today time.Time) string {
	var totalLoad, highIntensityMin float64
	for _, a := range withinDays(activities, today, recentWindowDays) {
		totalLoad += a.TrainingLoad
		highIntensityMin += a.HighIntensityMin()
	}
	avgDaily := totalLoad / recentWindowDays

	switch {
	case avgDaily > 100 || highIntensityMin > 120:
		return RiskHigh
	case avgDaily > 60 || highIntensityMin > 60:
		return RiskModerate
	default:
		return RiskLow
	}
}

// ReadinessScore starts at 100 and subtracts penalties for load spikes, long
// no-rest runs, and elevated HR drift. Clamped to [0, 100].
func ReadinessScore(activities []analysis.ActivityMetrics, today time.Time) int {
	score := 100

	recent := withinDays(activities, today, recentWindowDays)
	var recentLoad float64
	for _, a := range recent {
		recentLoad += a.TrainingLoad
	}

	if weekly := allTimeWeeklyAvg(activities); weekly > 0 {
		switch {
		case recentLoad > 1.5*weekly:
			score -= 20
		case recentLoad > 1.2*weekly:
			score -= 10
		}
	}

	switch streak := CurrentStreak(activities, today); {
	case streak >= 7:
		score -= 15
	case streak > 4:
		score -= 10
	}

	var driftSum float64
	var driftCount int
	for _, a := range recent {
		if a.HRDriftPct != nil {
			driftSum += *a.HRDriftPct
			driftCount++
		}
	}
	if driftCount > 0 && driftSum/float64(driftCount) > 10 {
		score -= 15
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// CurrentStreak walks backward from today while an activity exists for each
// calendar day. The search is capped to bound the walk.
func CurrentStreak(activities []analysis.ActivityMetrics, today time.Time) int {
	days := activityDays(activities)

	streak := 0
	for d := analysis.Day(today); streak < streakSearchCapDays; d = d.AddDate(0, 0, -1) {
		if !days[d] {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak scans all unique activity dates for the maximal run of
// consecutive days.
func LongestStreak(activities []analysis.ActivityMetrics) int {
	days := activityDays(activities)
	if len(days) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == 24*time.Hour {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// DriftTrend compares the mean drift of the three most recent drift-bearing
// activities against the three before them. Two points is the materiality
// threshold; drift falling is an improvement.
func DriftTrend(activities []analysis.ActivityMetrics) string {
	bearing := driftBearing(activities)
	if len(bearing) < driftTrendMinCount {
		return TrendInsufficientData
	}

	sort.Slice(bearing, func(i, j int) bool { return bearing[i].Date.Before(bearing[j].Date) })

	n := len(bearing)
	recentMean := meanDrift(bearing[n-3:])
	priorMean := meanDrift(bearing[n-6 : n-3])

	switch {
	case recentMean <= priorMean-2:
		return TrendImproving
	case recentMean >= priorMean+2:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// InjuryRiskFactors returns the independent flags that currently fire; any
// subset may fire simultaneously.
func InjuryRiskFactors(activities []analysis.ActivityMetrics, today time.Time) []string {
	var factors []string

	var thisWeek, lastWeek float64
	for _, a := range withinDays(activities, today, recentWindowDays) {
		thisWeek += a.TrainingLoad
	}
	for _, a := range activities {
		age := analysis.Day(today).Sub(analysis.Day(a.Date))
		if age >= recentWindowDays*24*time.Hour && age < 2*recentWindowDays*24*time.Hour {
			lastWeek += a.TrainingLoad
		}
	}
	if lastWeek > 0 && thisWeek > 1.25*lastWeek {
		factors = append(factors, "weekly training volume increased more than 25%")
	}
	if thisWeek > 500 {
		factors = append(factors, "weekly training load above 500")
	}
	if CurrentStreak(activities, today) > 6 {
		factors = append(factors, "no rest day in more than 6 days")
	}

	var totalMin, highIntensityMin float64
	for _, a := range withinDays(activities, today, recentWindowDays) {
		totalMin += a.DurationMin
		highIntensityMin += a.HighIntensityMin()
	}
	if totalMin > 0 && highIntensityMin/totalMin > 0.30 {
		factors = append(factors, "high-intensity work above 30% of training time")
	}

	return factors
}

type datedDrift struct {
	Date  time.Time
	Drift float64
}

func driftBearing(activities []analysis.ActivityMetrics) []datedDrift {
	var out []datedDrift
	for _, a := range activities {
		if a.HRDriftPct != nil {
			out = append(out, datedDrift{Date: a.Date, Drift: *a.HRDriftPct})
		}
	}
	return out
}

func meanDrift(drifts []datedDrift) float64 {
	var total float64
	for _, d := range drifts {
		total += d.Drift
	}
	return total / float64(len(drifts))
}

// withinDays returns the activities dated within the trailing n-day window
// ending today (inclusive).
func withinDays(activities []analysis.ActivityMetrics, today time.Time, n int) []analysis.ActivityMetrics {
	end := analysis.Day(today)
	start := end.AddDate(0, 0, -(n - 1))

	var out []analysis.ActivityMetrics
	for _, a := range activities {
		day := analysis.Day(a.Date)
		if !day.Before(start) && !day.After(end) {
			out = append(out, a)
		}
	}
	return out
}

// allTimeWeeklyAvg is the per-week average load across the athlete's whole
// history.
func allTimeWeeklyAvg(activities []analysis.ActivityMetrics) float64 {
	if len(activities) == 0 {
		return 0
	}

	first := analysis.Day(activities[0].Date)
	last := first
	var total float64
	for _, a := range activities {
		day := analysis.Day(a.Date)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
		total += a.TrainingLoad
	}

	weeks := last.Sub(first).Hours()/24/7 + 1.0/7
	if weeks < 1 {
		weeks = 1
	}
	return total / weeks
}

func activityDays(activities []analysis.ActivityMetrics) map[time.Time]bool {
	days := make(map[time.Time]bool, len(activities))
	for _, a := range activities {
		days[analysis.Day(a.Date)] = true
	}
	return days
}
