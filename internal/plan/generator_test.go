package plan

import (
	"testing"
	"time"
)

var planStart = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC) // a Monday

func basePlan(meso ...Mesocycle) MacroPlan {
	return MacroPlan{
		Athlete:    AthleteProfile{Age: 35, FitnessLevel: LevelIntermediate},
		StartDate:  planStart,
		Mesocycles: meso,
	}
}

func TestWeekLoadMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		weeks int
		week  int
		want  float64
	}{
		{"two-week block is flat", 2, 1, 1.0},
		{"three-week block week 1", 3, 0, 1.0},
		{"three-week block week 2", 3, 1, 1.15},
		{"three-week block absorb week", 3, 2, 0.85},
		{"four-week build week 3", 4, 2, 1.2},
		{"four-week deload", 4, 3, 0.7},
		{"long block ramps", 6, 2, 1.1},
		{"long block caps at 1.25", 8, 6, 1.25},
		{"long block forces 4th-week deload", 8, 3, 0.75},
		{"long block second deload", 8, 7, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weekLoadMultiplier(tt.weeks, tt.week); got != tt.want {
				t.Errorf("weekLoadMultiplier(%d, %d) = %v, want %v", tt.weeks, tt.week, got, tt.want)
			}
		})
	}
}

func TestGenerateFourWeekBase(t *testing.T) {
	catalog := []Workout{
		{Type: "run", Tag: "zone2", Description: "easy run", DurationMin: 45, Fatigue: 35, Phases: []Phase{PhaseBase}},
	}
	p := basePlan(Mesocycle{
		Name:           "Base 1",
		Phase:          PhaseBase,
		Weeks:          4,
		WeeklyTemplate: []string{"run", "rest", "run", "rest", "run", "rest", "rest"},
	})

	entries, err := Generate(p, catalog, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(entries) != 12 { // 3 runs x 4 weeks
		t.Fatalf("got %d entries, want 12", len(entries))
	}

	// Week 1 entry keeps base duration, week 4 applies the 0.7 deload:
	// 45 * 0.7 = 31.5 -> rounds to 32.
	if entries[0].DurationMin != 45 {
		t.Errorf("week 1 duration = %v, want 45", entries[0].DurationMin)
	}
	week4 := entries[len(entries)-1]
	if week4.DurationMin != 32 {
		t.Errorf("week 4 duration = %v, want 32", week4.DurationMin)
	}

	if entries[0].ID != "base-1-run-zone2" {
		t.Errorf("entry ID = %q, want %q", entries[0].ID, "base-1-run-zone2")
	}
	if !entries[0].Date.Equal(planStart) {
		t.Errorf("first entry date = %v, want %v", entries[0].Date, planStart)
	}
	// Wednesday of week 1.
	if !entries[1].Date.Equal(planStart.AddDate(0, 0, 2)) {
		t.Errorf("second entry date = %v, want Wednesday", entries[1].Date)
	}
}

func TestGenerateDateCursorAcrossMesocycles(t *testing.T) {
	catalog := DefaultCatalog()
	p := basePlan(
		Mesocycle{Name: "Base", Phase: PhaseBase, Weeks: 2, WeeklyTemplate: []string{"run", "rest", "rest", "rest", "rest", "rest", "rest"}},
		Mesocycle{Name: "Build", Phase: PhaseBuild, Weeks: 1, WeeklyTemplate: []string{"run", "rest", "rest", "rest", "rest", "rest", "rest"}},
	)

	entries, err := Generate(p, catalog, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// The build mesocycle's Monday is two weeks after the start.
	if !entries[2].Date.Equal(planStart.AddDate(0, 0, 14)) {
		t.Errorf("build entry date = %v, want %v", entries[2].Date, planStart.AddDate(0, 0, 14))
	}
	if p.TotalWeeks() != 3 {
		t.Errorf("TotalWeeks = %d, want 3", p.TotalWeeks())
	}
}

func TestPhasePreferences(t *testing.T) {
	catalog := []Workout{
		{Type: "run", Tag: "zone2", DurationMin: 45, Fatigue: 35, Phases: []Phase{PhaseBase, PhaseBuild}},
		{Type: "run", Tag: "threshold", DurationMin: 60, Fatigue: 75, Phases: []Phase{PhaseBuild}},
		{Type: "run", Tag: "strides", DurationMin: 25, Fatigue: 30, Phases: []Phase{PhaseTaper}},
		{Type: "run", Tag: "zone1", DurationMin: 30, Fatigue: 20, Phases: []Phase{PhaseRecovery}},
	}

	tests := []struct {
		phase   Phase
		wantTag string
	}{
		{PhaseBase, "zone2"},
		{PhaseBuild, "threshold"},
		{PhaseTaper, "strides"},
		{PhaseRecovery, "zone1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			w, ok := selectWorkout(catalog, "run", tt.phase)
			if !ok {
				t.Fatal("expected a workout")
			}
			if w.Tag != tt.wantTag {
				t.Errorf("selected tag = %q, want %q", w.Tag, tt.wantTag)
			}
		})
	}
}

func TestPhaseFallbackToAnyOfType(t *testing.T) {
	// Only a base-phase workout exists; a peak mesocycle should still use it.
	catalog := []Workout{
		{Type: "run", Tag: "zone2", DurationMin: 45, Fatigue: 35, Phases: []Phase{PhaseBase}},
	}
	w, ok := selectWorkout(catalog, "run", PhasePeak)
	if !ok {
		t.Fatal("expected fallback to any workout of the type")
	}
	if w.Tag != "zone2" {
		t.Errorf("tag = %q, want zone2", w.Tag)
	}
}

func TestExhaustedSlotSkipsDay(t *testing.T) {
	catalog := []Workout{
		{Type: "run", Tag: "zone2", DurationMin: 45, Fatigue: 35},
	}
	p := basePlan(Mesocycle{
		Name:           "Base",
		Phase:          PhaseBase,
		Weeks:          1,
		WeeklyTemplate: []string{"run", "swim", "rest", "rest", "rest", "rest", "rest"},
	})

	entries, err := Generate(p, catalog, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	// The swim slot has no candidates and is skipped, not an error.
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Type != "run" {
		t.Errorf("entry type = %q, want run", entries[0].Type)
	}
}

func TestFitnessLevelAdjustments(t *testing.T) {
	catalog := []Workout{
		{Type: "run", Tag: "threshold", DurationMin: 60, Fatigue: 95, Phases: []Phase{PhaseBuild}},
	}
	meso := Mesocycle{Name: "B", Phase: PhaseBuild, Weeks: 1, WeeklyTemplate: []string{"run", "rest", "rest", "rest", "rest", "rest", "rest"}}

	tests := []struct {
		level        string
		wantDuration float64
		wantFatigue  float64
	}{
		{LevelBeginner, 42, 76},      // 60*0.7, 95*0.8
		{LevelIntermediate, 60, 95},
		{LevelAdvanced, 78, 100},     // 60*1.3, 95*1.1 capped at 100
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			p := basePlan(meso)
			p.Athlete.FitnessLevel = tt.level
			entries, err := Generate(p, catalog, nil)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if entries[0].DurationMin != tt.wantDuration {
				t.Errorf("duration = %v, want %v", entries[0].DurationMin, tt.wantDuration)
			}
			if entries[0].Fatigue != tt.wantFatigue {
				t.Errorf("fatigue = %v, want %v", entries[0].Fatigue, tt.wantFatigue)
			}
		})
	}
}

func TestVolumeAndIntensityMultipliers(t *testing.T) {
	catalog := []Workout{
		{Type: "run", Tag: "zone2", DurationMin: 40, Fatigue: 50, Phases: []Phase{PhaseBase}},
	}
	p := basePlan(Mesocycle{
		Name:                "Base",
		Phase:               PhaseBase,
		Weeks:               1,
		WeeklyTemplate:      []string{"run", "rest", "rest", "rest", "rest", "rest", "rest"},
		VolumeMultiplier:    1.2,
		IntensityMultiplier: 1.5,
	})

	entries, err := Generate(p, catalog, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if entries[0].DurationMin != 48 { // 40 * 1.2 * week multiplier 1.0
		t.Errorf("duration = %v, want 48", entries[0].DurationMin)
	}
	if entries[0].Fatigue != 75 { // 50 * 1.5
		t.Errorf("fatigue = %v, want 75", entries[0].Fatigue)
	}
}

func TestValidateRejectsBadMesocycles(t *testing.T) {
	tests := []struct {
		name string
		meso Mesocycle
	}{
		{"zero weeks", Mesocycle{Name: "x", Weeks: 0, WeeklyTemplate: make([]string, 7)}},
		{"short template", Mesocycle{Name: "x", Weeks: 1, WeeklyTemplate: []string{"run"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(basePlan(tt.meso), DefaultCatalog(), nil); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
