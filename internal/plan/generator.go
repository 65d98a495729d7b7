package plan

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Generate walks the macro plan's mesocycles in order and emits one dated
// entry per scheduled day. Days whose template slot cannot be satisfied by
// the catalog are skipped with a warning; an incomplete week is preferable to
// aborting plan generation.
func Generate(p MacroPlan, catalog []Workout, logger *zap.Logger) ([]Entry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var entries []Entry
	cursor := p.StartDate

	for _, meso := range p.Mesocycles {
		for week := 0; week < meso.Weeks; week++ {
			loadMult := weekLoadMultiplier(meso.Weeks, week)

			for day := 0; day < 7; day++ {
				slot := meso.WeeklyTemplate[day]
				date := cursor.AddDate(0, 0, week*7+day)

				if strings.EqualFold(slot, RestDay) || slot == "" {
					continue
				}

				workout, ok := selectWorkout(catalog, slot, meso.Phase)
				if !ok {
					logger.Warn("no catalog workout satisfies template slot, skipping day",
						zap.String("mesocycle", meso.Name),
						zap.String("type", slot),
						zap.String("phase", string(meso.Phase)),
						zap.Time("date", date))
					continue
				}

				entries = append(entries, buildEntry(workout, meso, p.Athlete, date, loadMult))
			}
		}

		cursor = cursor.AddDate(0, 0, meso.Weeks*7)
	}

	return entries, nil
}

// weekLoadMultiplier is the progressive-overload schedule for a block of the
// given length. Every 4th week of a long block is a deload regardless of the
// ramp formula.
func weekLoadMultiplier(weeks, week int) float64 {
	switch {
	case weeks <= 2:
		return 1.0
	case weeks == 3:
		return [3]float64{1.0, 1.15, 0.85}[week]
	case weeks == 4:
		return [4]float64{1.0, 1.1, 1.2, 0.7}[week]
	default:
		if (week+1)%4 == 0 {
			return 0.75
		}
		return math.Min(1.25, 1.0+float64(week)*0.05)
	}
}

// selectWorkout filters the catalog by type, then phase, then applies the
// phase-specific preference tiers. Each tier falls through to the first
// candidate when nothing matches.
func selectWorkout(catalog []Workout, workoutType string, phase Phase) (Workout, bool) {
	var byType []Workout
	for _, w := range catalog {
		if strings.EqualFold(w.Type, workoutType) {
			byType = append(byType, w)
		}
	}
	if len(byType) == 0 {
		return Workout{}, false
	}

	candidates := filterPhase(byType, phase)
	if len(candidates) == 0 {
		candidates = byType // fall back to any workout of the type
	}

	return preferForPhase(candidates, phase), true
}

func filterPhase(workouts []Workout, phase Phase) []Workout {
	var out []Workout
	for _, w := range workouts {
		if len(w.Phases) == 0 {
			continue
		}
		for _, p := range w.Phases {
			if p == phase {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// preferForPhase applies the per-phase selection priority among candidates.
func preferForPhase(candidates []Workout, phase Phase) Workout {
	switch phase {
	case PhaseBase:
		return firstMatch(candidates,
			func(w Workout) bool { return w.Tag == "zone2" },
			func(w Workout) bool { return w.Fatigue <= 50 },
		)
	case PhaseBuild:
		return firstMatch(candidates,
			func(w Workout) bool { return w.Tag == "threshold" },
			func(w Workout) bool { return w.Tag == "intervals" },
			func(w Workout) bool { return w.Fatigue >= 60 },
		)
	case PhasePeak:
		return firstMatch(candidates,
			func(w Workout) bool { return w.Tag == "threshold" },
			func(w Workout) bool { return strings.Contains(w.Type, "brick") || w.Tag == "brick" },
			func(w Workout) bool { return w.Fatigue >= 70 },
		)
	case PhaseTaper:
		return firstMatch(candidates,
			func(w Workout) bool { return w.Tag == "strides" || w.Tag == "short" },
			func(w Workout) bool { return w.DurationMin <= 30 },
			func(w Workout) bool { return w.Fatigue <= 40 },
		)
	case PhaseRecovery:
		return firstMatch(candidates,
			func(w Workout) bool { return w.Tag == "zone1" || w.Tag == "restorative" },
			func(w Workout) bool { return w.Fatigue <= 30 },
		)
	default:
		return candidates[0]
	}
}

func firstMatch(candidates []Workout, tiers ...func(Workout) bool) Workout {
	for _, match := range tiers {
		for _, w := range candidates {
			if match(w) {
				return w
			}
		}
	}
	return candidates[0]
}

// buildEntry applies the adjustment sequence: fitness-level multipliers,
// volume multiplier scaled by the week's load multiplier, then the intensity
// multiplier on the fatigue score.
func buildEntry(w Workout, meso Mesocycle, athlete AthleteProfile, date time.Time, loadMult float64) Entry {
	duration := w.DurationMin
	fatigue := w.Fatigue

	durMult, fatMult := fitnessLevelMultipliers(athlete.FitnessLevel)
	duration *= durMult
	fatigue = math.Min(100, fatigue*fatMult)

	volume := meso.VolumeMultiplier
	if volume <= 0 {
		volume = 1.0
	}
	duration *= volume * loadMult

	intensity := meso.IntensityMultiplier
	if intensity <= 0 {
		intensity = 1.0
	}
	fatigue = math.Min(100, fatigue*intensity)

	return Entry{
		ID:          entryID(meso.Name, w),
		Date:        date,
		Type:        w.Type,
		Description: w.Description,
		Fatigue:     math.Round(fatigue),
		DurationMin: math.Round(duration),
	}
}

func fitnessLevelMultipliers(level string) (duration, fatigue float64) {
	switch strings.ToLower(level) {
	case LevelBeginner:
		return 0.7, 0.8
	case LevelAdvanced:
		return 1.3, 1.1
	default: // intermediate
		return 1.0, 1.0
	}
}

func entryID(mesoName string, w Workout) string {
	return fmt.Sprintf("%s-%s-%s", slug(mesoName), w.Type, w.Tag)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
