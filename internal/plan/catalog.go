package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlanFile is the YAML reference-data document: the workout catalog and,
// optionally, a full macro plan.
type PlanFile struct {
	Workouts []Workout  `yaml:"workouts"`
	Plan     *MacroPlan `yaml:"plan,omitempty"`
}

// LoadPlanFile reads and validates a YAML plan/catalog file.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	if pf.Plan != nil {
		if err := pf.Plan.Validate(); err != nil {
			return nil, err
		}
	}
	return &pf, nil
}

// DefaultCatalog is a small built-in workout library used when no reference
// file is supplied.
func DefaultCatalog() []Workout {
	return []Workout{
		{Type: "run", Tag: "zone2", Description: "Easy aerobic run, conversational pace", DurationMin: 45, Fatigue: 35, Phases: []Phase{PhaseBase, PhaseBuild}},
		{Type: "run", Tag: "threshold", Description: "2x15min at threshold effort", DurationMin: 60, Fatigue: 75, Phases: []Phase{PhaseBuild, PhasePeak}},
		{Type: "run", Tag: "intervals", Description: "6x800m with jog recoveries", DurationMin: 50, Fatigue: 80, Phases: []Phase{PhaseBuild}},
		{Type: "run", Tag: "long", Description: "Long steady run", DurationMin: 90, Fatigue: 60, Phases: []Phase{PhaseBase, PhaseBuild}},
		{Type: "run", Tag: "strides", Description: "Short run with 6x20s strides", DurationMin: 25, Fatigue: 30, Phases: []Phase{PhaseTaper}},
		{Type: "run", Tag: "zone1", Description: "Very easy shakeout jog", DurationMin: 30, Fatigue: 20, Phases: []Phase{PhaseRecovery, PhaseTaper}},
		{Type: "bike", Tag: "zone2", Description: "Steady endurance ride", DurationMin: 75, Fatigue: 40, Phases: []Phase{PhaseBase, PhaseBuild}},
		{Type: "bike", Tag: "threshold", Description: "3x10min sweet-spot intervals", DurationMin: 70, Fatigue: 70, Phases: []Phase{PhaseBuild, PhasePeak}},
		{Type: "bike", Tag: "zone1", Description: "Recovery spin", DurationMin: 40, Fatigue: 15, Phases: []Phase{PhaseRecovery}},
		{Type: "brick", Tag: "brick", Description: "Bike into transition run", DurationMin: 80, Fatigue: 85, Phases: []Phase{PhasePeak}},
		{Type: "swim", Tag: "zone2", Description: "Continuous aerobic swim", DurationMin: 45, Fatigue: 30, Phases: []Phase{PhaseBase, PhaseBuild, PhaseRecovery}},
		{Type: "strength", Tag: "core", Description: "Core and mobility circuit", DurationMin: 30, Fatigue: 25},
	}
}
