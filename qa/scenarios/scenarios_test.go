package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/catalog"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/recovery"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/teg"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/thermal"
)

func newCoordinator(t *testing.T) *recovery.Coordinator {
	t.Helper()
	cfgs, err := catalog.DefaultConfigCatalog(catalog.DefaultMaterialCatalog(), nil)
	require.NoError(t, err)
	return recovery.NewCoordinator(recovery.VehicleConfig{}, teg.NewEngine(teg.Config{}, cfgs), thermal.NewManager(thermal.Config{}, nil))
}

func TestScenario(t *testing.T) {
	files, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		sc, err := Load(f)
		require.NoError(t, err, f)
		t.Run(sc.Name, func(t *testing.T) {
			rep, err := Run(newCoordinator(t), sc)
			require.NoError(t, err)
			for _, r := range rep.Results {
				assert.Empty(t, r.Failures, r.Step)
			}
			assert.Zero(t, rep.Failed)
		})
	}
}

func TestLoadDefaultsSteps(t *testing.T) {
	sc, err := Load("testdata/mountain_descent.yaml")
	require.NoError(t, err)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, 1, sc.Steps[0].Repeat)
	assert.Equal(t, 3, sc.Steps[1].Repeat)
	assert.Equal(t, 180.0, sc.Steps[1].Inputs.BrakeTemperature)
	require.NotNil(t, sc.Steps[1].Expect.TEGActive)
	assert.True(t, *sc.Steps[1].Expect.TEGActive)
}

func TestRunAppliesStrategy(t *testing.T) {
	sc, err := Load("testdata/brake_overheat.yaml")
	require.NoError(t, err)
	c := newCoordinator(t)
	_, err = Run(c, sc)
	require.NoError(t, err)
	assert.Equal(t, 250.0, c.Strategy().MaxTEGPower)
	assert.Empty(t, c.History())
}

func TestRunReportsFailures(t *testing.T) {
	sc, err := Load("testdata/mountain_descent.yaml")
	require.NoError(t, err)
	sc.Steps = sc.Steps[:1]
	sc.Steps[0].Expect.MinRecoveredW = 1e9
	sc.Steps[0].Expect.Error = ""

	rep, err := Run(newCoordinator(t), sc)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Failed)
	require.Len(t, rep.Results[0].Failures, 1)
	assert.Contains(t, rep.Results[0].Failures[0], "below")
}

func TestRunUnexpectedError(t *testing.T) {
	sc := &Scenario{Name: "bad", Steps: []Step{{Name: "cold", Repeat: 1}}}
	sc.Steps[0].Inputs.AmbientTemperature = -80

	rep, err := Run(newCoordinator(t), sc)
	require.NoError(t, err)
	assert.Equal(t, "value_out_of_range", rep.Results[0].Err)
	assert.Equal(t, 1, rep.Failed)
}

func TestRunRejectsInvalidStrategy(t *testing.T) {
	bad := 2.0
	sc := &Scenario{Name: "bad", Strategy: &recovery.StrategyUpdate{IntensityThreshold: &bad}, Steps: []Step{{Repeat: 1}}}
	_, err := Run(newCoordinator(t), sc)
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load("no-file.yaml")
	require.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(":"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("name: empty\n"), 0o600))
	_, err = Load(empty)
	require.Error(t, err)
}
