package plan

import (
	"fmt"
	"time"
)

// Phase is a mesocycle's training emphasis.
type Phase string

const (
	PhaseBase     Phase = "base"
	PhaseBuild    Phase = "build"
	PhasePeak     Phase = "peak"
	PhaseTaper    Phase = "taper"
	PhaseRecovery Phase = "recovery"
)

// Fitness levels recognized by the duration/fatigue adjustment step.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// RestDay is the template slot value meaning no workout is scheduled.
const RestDay = "rest"

// Workout is one catalog entry: a reusable workout description that the
// planner instantiates into dated plan entries.
type Workout struct {
	Type        string  `yaml:"type" json:"type"` // e.g. run, bike, brick
	Tag         string  `yaml:"tag" json:"tag"`   // e.g. zone2, threshold, intervals, strides
	Description string  `yaml:"description" json:"description"`
	DurationMin float64 `yaml:"duration_min" json:"duration_min"`
	Fatigue     float64 `yaml:"fatigue" json:"fatigue"` // expected fatigue score 0-100
	Phases      []Phase `yaml:"phases,omitempty" json:"phases,omitempty"`
}

// Mesocycle is a multi-week training block. The weekly template has exactly
// seven entries, one workout type (or "rest") per weekday starting Monday.
type Mesocycle struct {
	Name                string   `yaml:"name" json:"name"`
	Phase               Phase    `yaml:"phase" json:"phase"`
	Weeks               int      `yaml:"weeks" json:"weeks"`
	WeeklyTemplate      []string `yaml:"weekly_template" json:"weekly_template"`
	VolumeMultiplier    float64  `yaml:"volume_multiplier,omitempty" json:"volume_multiplier,omitempty"`
	IntensityMultiplier float64  `yaml:"intensity_multiplier,omitempty" json:"intensity_multiplier,omitempty"`
}

// Validate enforces the mesocycle invariants.
func (m Mesocycle) Validate() error {
	if m.Weeks <= 0 {
		return fmt.Errorf("mesocycle %q: weeks must be positive, got %d", m.Name, m.Weeks)
	}
	if len(m.WeeklyTemplate) != 7 {
		return fmt.Errorf("mesocycle %q: weekly template has %d entries, want 7", m.Name, len(m.WeeklyTemplate))
	}
	return nil
}

// AthleteProfile carries the athlete fields the planner adjusts for.
type AthleteProfile struct {
	Age          int    `yaml:"age" json:"age"`
	FitnessLevel string `yaml:"fitness_level" json:"fitness_level"`
}

// MacroPlan is an ordered sequence of mesocycles spanning the athlete's
// preparation. Its total span is the sum of the mesocycle week counts.
type MacroPlan struct {
	Athlete    AthleteProfile `yaml:"athlete" json:"athlete"`
	StartDate  time.Time      `yaml:"start_date" json:"start_date"`
	Mesocycles []Mesocycle    `yaml:"mesocycles" json:"mesocycles"`
}

// Validate checks every mesocycle in the plan.
func (p MacroPlan) Validate() error {
	if len(p.Mesocycles) == 0 {
		return fmt.Errorf("macro plan has no mesocycles")
	}
	for _, m := range p.Mesocycles {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TotalWeeks is the plan's full span.
func (p MacroPlan) TotalWeeks() int {
	total := 0
	for _, m := range p.Mesocycles {
		total += m.Weeks
	}
	return total
}

// Entry is one generated daily workout. The ID embeds the source mesocycle
// and template slot so entries stay traceable without a separate lookup.
type Entry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Fatigue     float64   `json:"fatigue"`
	DurationMin float64   `json:"duration_min"`
}
