package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlanYAML = `
workouts:
  - type: run
    tag: zone2
    description: Easy aerobic run
    duration_min: 45
    fatigue: 35
    phases: [base, build]
  - type: run
    tag: threshold
    description: 2x15min at threshold
    duration_min: 60
    fatigue: 75
    phases: [build, peak]
plan:
  athlete:
    age: 34
    fitness_level: intermediate
  start_date: 2025-03-03T00:00:00Z
  mesocycles:
    - name: base-1
      phase: base
      weeks: 4
      weekly_template: [run, rest, run, rest, run, rest, rest]
`

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPlanFile(t *testing.T) {
	pf, err := LoadPlanFile(writePlanFile(t, samplePlanYAML))
	require.NoError(t, err)

	require.Len(t, pf.Workouts, 2)
	assert.Equal(t, "zone2", pf.Workouts[0].Tag)
	assert.Equal(t, []Phase{PhaseBase, PhaseBuild}, pf.Workouts[0].Phases)
	assert.Equal(t, 75.0, pf.Workouts[1].Fatigue)

	require.NotNil(t, pf.Plan)
	assert.Equal(t, "intermediate", pf.Plan.Athlete.FitnessLevel)
	assert.Equal(t, 4, pf.Plan.TotalWeeks())
	require.Len(t, pf.Plan.Mesocycles, 1)
	assert.Equal(t, PhaseBase, pf.Plan.Mesocycles[0].Phase)
	assert.Equal(t, 2025, pf.Plan.StartDate.Year())
}

func TestLoadPlanFileCatalogOnly(t *testing.T) {
	pf, err := LoadPlanFile(writePlanFile(t, `
workouts:
  - type: swim
    tag: zone2
    description: Continuous swim
    duration_min: 40
    fatigue: 30
`))
	require.NoError(t, err)
	assert.Nil(t, pf.Plan)
	require.Len(t, pf.Workouts, 1)
	assert.Equal(t, "swim", pf.Workouts[0].Type)
}

func TestLoadPlanFileRejectsBadTemplate(t *testing.T) {
	_, err := LoadPlanFile(writePlanFile(t, `
workouts: []
plan:
  start_date: 2025-03-03T00:00:00Z
  mesocycles:
    - name: broken
      phase: base
      weeks: 2
      weekly_template: [run, rest, run]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekly template")
}

func TestLoadPlanFileMissing(t *testing.T) {
	_, err := LoadPlanFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultCatalogCoversAllPhases(t *testing.T) {
	catalog := DefaultCatalog()
	require.NotEmpty(t, catalog)

	seen := map[Phase]bool{}
	for _, w := range catalog {
		assert.NotEmpty(t, w.Type)
		assert.Greater(t, w.DurationMin, 0.0)
		for _, p := range w.Phases {
			seen[p] = true
		}
	}
	for _, phase := range []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseTaper, PhaseRecovery} {
		assert.True(t, seen[phase], "no catalog workout for phase %s", phase)
	}
}
