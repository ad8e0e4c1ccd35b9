package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/recovery"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/thermal"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `engine:
  safety_ceiling: 280
thermal:
  optimal_max: 240
strategy:
  temperature_threshold: 90
  cooling_mode: adaptive
  teg_enabled: false
vehicle:
  mass: 2100
  teg_modules: 6
metrics:
  sinks:
    - type: "nop"
  prometheus_port: ":9100"
journal:
  backend: sqlite
  path: /tmp/braking.db
mqtt:
  broker: "tcp://localhost:1883"
  topic_prefix: "fleet/car1"
  connect_timeout: 2s
sentry:
  environment: test
replay:
  scenario: qa/scenarios/testdata/mountain_descent.yaml
  interval_seconds: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 280.0, cfg.Engine.SafetyCeiling)
	assert.Equal(t, 1000, cfg.Engine.HistorySize)
	assert.Equal(t, 240.0, cfg.Thermal.OptimalMax)
	assert.Equal(t, 100.0, cfg.Thermal.OptimalMin)
	assert.Equal(t, 90.0, cfg.Strategy.TemperatureThreshold)
	assert.Equal(t, thermal.ModeAdaptive, cfg.Strategy.CoolingMode)
	assert.False(t, cfg.Strategy.TEGEnabled)
	// untouched strategy fields keep the built-in values
	assert.True(t, cfg.Strategy.PrioritizeBattery)
	assert.Equal(t, 300.0, cfg.Strategy.TEGShutdownTemp)
	assert.Equal(t, 2100.0, cfg.Vehicle.Mass)
	assert.Equal(t, 2100.0, cfg.Vehicle.Regen.VehicleMass)
	assert.Equal(t, 6, cfg.Vehicle.TEGModules)
	require.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, "nop", cfg.Metrics.Sinks[0].Type)
	assert.Equal(t, ":9100", cfg.Metrics.PrometheusPort)
	assert.Equal(t, "sqlite", cfg.Journal.Backend)
	assert.Equal(t, "fleet/car1", cfg.MQTT.TopicPrefix)
	assert.Equal(t, 2*time.Second, cfg.MQTT.ConnectTimeout)
	assert.Equal(t, 3, cfg.MQTT.MaxRetries)
	assert.Equal(t, "test", cfg.Sentry.Environment)
	assert.Equal(t, 3*time.Second, cfg.Replay.Interval())
}

func TestLoadJSONDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"vehicle": {"brake_surface_area": 0.3}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, recovery.DefaultStrategy(), cfg.Strategy)
	assert.Equal(t, 0.3, cfg.Vehicle.BrakeSurfaceArea)
	assert.Equal(t, 1800.0, cfg.Vehicle.Mass)
	assert.Equal(t, "jsonl", cfg.Journal.Backend)
	assert.Empty(t, cfg.MQTT.TopicPrefix)
	assert.Equal(t, 10*time.Second, cfg.Replay.Interval())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "strategy:\n  max_teg_power: 400\n")
	t.Setenv("K_STRATEGY__MAX_TEG_POWER", "250")
	t.Setenv("K_ENGINE__OPTIMIZER_BUDGET", "20")
	t.Setenv("K_API__ADDRESS", ":8081")
	t.Setenv("K_JOURNAL__MAX_SIZE_MB", "5")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Strategy.MaxTEGPower)
	assert.Equal(t, 20, cfg.Engine.OptimizerBudget)
	assert.Equal(t, ":8081", cfg.API.Address)
	assert.Equal(t, 5, cfg.Journal.MaxSizeMB)
	assert.Empty(t, cfg.API.Token)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"strategy": "strategy:\n  intensity_threshold: 1.5\n",
		"journal":  "journal:\n  backend: csv\n",
		"mqtt":     "mqtt:\n  broker: tcp://localhost:1883\n  auth_method: token\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", data))
			require.Error(t, err)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", "x = 1"))
	require.EqualError(t, err, "unsupported config format: .toml")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300.0, cfg.Engine.SafetyCeiling)
	assert.True(t, cfg.Strategy.TEGEnabled)
}
