package teg

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/catalog"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/events"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/eventbus"
)

type recLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recLogger) Debugf(string, ...any)         {}
func (l *recLogger) Debugw(string, map[string]any) {}
func (l *recLogger) Infof(string, ...any)          {}
func (l *recLogger) Errorf(string, ...any)         {}
func (l *recLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cfgs, err := catalog.DefaultConfigCatalog(catalog.DefaultMaterialCatalog(), nil)
	require.NoError(t, err)
	return NewEngine(Config{}, cfgs, opts...)
}

func discConditions() model.ThermalConditions {
	return model.ThermalConditions{
		HotSideTemp:      200,
		ColdSideTemp:     50,
		AmbientTemp:      25,
		HeatFlux:         5000,
		HotConvection:    50,
		ColdConvection:   25,
		AirflowVelocity:  15,
		AirflowTemp:      25,
		BrakingDuration:  5,
		BrakingIntensity: 0.7,
	}
}

func TestCalculatePowerDiscScenario(t *testing.T) {
	e := newTestEngine(t)
	perf, err := e.CalculatePower(PowerRequest{
		ConfigID:          catalog.DiscBrakeTEG,
		Conditions:        discConditions(),
		Mode:              MaximumPower,
		CoolingActive:     true,
		ThermalProtection: true,
	})
	require.NoError(t, err)
	assert.Greater(t, perf.ElectricalPower, 0.0)
	assert.Greater(t, perf.Efficiency, 0.0)
	assert.Less(t, perf.Efficiency, 100.0)
	assert.InDelta(t, 150, perf.TemperatureDifference, 10)
	assert.InDelta(t, 4.93, perf.ElectricalPower, 0.05)
	assert.InDelta(t, 4.83, perf.Efficiency, 0.05)
	assert.InDelta(t, perf.InternalResistance, perf.LoadResistance, 1e-12)
	assert.InDelta(t, perf.HeatInput-perf.ElectricalPower, perf.HeatRejected, 1e-9)
	assert.InDelta(t, perf.Voltage*perf.Current, perf.ElectricalPower, 1e-9)
	assert.Greater(t, perf.PowerDensity, 0.0)
	assert.InDelta(t, 89.4, perf.Reliability, 0.1)
	assert.Greater(t, perf.Lifespan, 0.0)
	assert.Less(t, perf.Lifespan, 87600.0)
	assert.Len(t, e.History(), 1)
}

func TestCalculatePowerModeOrdering(t *testing.T) {
	e := newTestEngine(t)
	power := map[OperatingMode]float64{}
	for _, m := range []OperatingMode{MaximumPower, MaximumEfficiency, ConstantVoltage} {
		perf, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: discConditions(), Mode: m})
		require.NoError(t, err)
		power[m] = perf.ElectricalPower
		if m == MaximumEfficiency {
			assert.InDelta(t, 3*perf.InternalResistance, perf.LoadResistance, 1e-9)
		}
		if m == ConstantVoltage {
			assert.InDelta(t, 10*perf.InternalResistance, perf.LoadResistance, 1e-9)
		}
	}
	assert.GreaterOrEqual(t, power[MaximumPower], power[MaximumEfficiency])
	assert.GreaterOrEqual(t, power[MaximumEfficiency], power[ConstantVoltage])
}

func TestCalculatePowerLoadOverride(t *testing.T) {
	e := newTestEngine(t)
	perf, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: discConditions(), LoadResistance: 7.5})
	require.NoError(t, err)
	assert.Equal(t, 7.5, perf.LoadResistance)
}

func TestCalculatePowerUnknownConfig(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CalculatePower(PowerRequest{ConfigID: "missing", Conditions: discConditions()})
	assert.True(t, errors.Is(err, model.ErrConfigNotFound))
	assert.Empty(t, e.History())
}

func TestCalculatePowerUnsafeTemperature(t *testing.T) {
	e := newTestEngine(t)
	cond := discConditions()
	cond.HotSideTemp = 600
	_, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: cond, ThermalProtection: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnsafeTemperature))
	assert.Contains(t, err.Error(), "exceeds safety limit")
	assert.Empty(t, e.History())

	// without protection the material range check rejects it instead
	_, err = e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: cond})
	assert.True(t, errors.Is(err, model.ErrInvalidThermalConditions))
}

func TestCalculatePowerInvalidConditions(t *testing.T) {
	e := newTestEngine(t)
	cases := map[string]func(*model.ThermalConditions){
		"hot below cold": func(c *model.ThermalConditions) { c.HotSideTemp = 40 },
		"zero flux":      func(c *model.ThermalConditions) { c.HeatFlux = 0 },
		"above range":    func(c *model.ThermalConditions) { c.HotSideTemp = 260 },
		"nan flux":       func(c *model.ThermalConditions) { c.HeatFlux = math.NaN() },
		"inf flux":       func(c *model.ThermalConditions) { c.HeatFlux = math.Inf(1) },
		"nan cold side":  func(c *model.ThermalConditions) { c.ColdSideTemp = math.NaN() },
		"nan hot side":   func(c *model.ThermalConditions) { c.HotSideTemp = math.NaN() },
		"nan intensity":  func(c *model.ThermalConditions) { c.BrakingIntensity = math.NaN() },
		"inf duration":   func(c *model.ThermalConditions) { c.BrakingDuration = math.Inf(1) },
		"neg duration":   func(c *model.ThermalConditions) { c.BrakingDuration = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cond := discConditions()
			mutate(&cond)
			_, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: cond})
			assert.True(t, errors.Is(err, model.ErrInvalidThermalConditions))
		})
	}
	assert.Empty(t, e.History())
}

func TestCalculatePowerRejectsNonFiniteLoad(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: discConditions(), LoadResistance: math.Inf(1)})
	assert.True(t, errors.Is(err, model.ErrValueOutOfRange))
	assert.Empty(t, e.History())
}

func TestCalculatePowerWarnings(t *testing.T) {
	log := &recLogger{}
	e := newTestEngine(t, WithLogger(log))
	cond := discConditions()
	cond.HotSideTemp = 230
	cond.ColdSideTemp = 225
	cond.HeatFlux = 500
	perf, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: cond, ThermalProtection: true})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, perf.ElectricalPower, 0.0)
	assert.Len(t, log.warns, 3)
}

func TestHistoryIsBounded(t *testing.T) {
	e := newTestEngine(t)
	cond := discConditions()
	for i := 0; i < 1005; i++ {
		cond.BrakingDuration = float64(i)
		_, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: cond})
		require.NoError(t, err)
	}
	h := e.History()
	require.Len(t, h, 1000)
	assert.Less(t, h[0].Reliability, 100.0)
	last, ok := e.LastPerformance()
	require.True(t, ok)
	assert.Equal(t, h[len(h)-1], last)
}

func TestCustomConfigurationRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	base, ok := e.Configurations().Get(catalog.DiscBrakeTEG)
	require.True(t, ok)
	custom := base
	custom.ID = "custom_hub_teg"
	custom.PairCount = 64
	custom.Placement.Location = model.LocationHub
	_, err := e.AddConfiguration(custom)
	require.NoError(t, err)

	perf, err := e.CalculatePower(PowerRequest{ConfigID: "custom_hub_teg", Conditions: discConditions(), Mode: MaximumPower})
	require.NoError(t, err)
	assert.Equal(t, "custom_hub_teg", perf.ConfigID)
	assert.InDelta(t, perf.HeatInput-perf.ElectricalPower, perf.HeatRejected, 1e-9)
}

func TestCalculatePowerPublishesEvent(t *testing.T) {
	bus := eventbus.New()
	sub := bus.Subscribe()
	e := newTestEngine(t, WithEventBus(bus))
	_, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: discConditions()})
	require.NoError(t, err)
	ev := (<-sub).(events.PerformanceEvent)
	assert.Equal(t, catalog.DiscBrakeTEG, ev.ConfigID)
}

func TestPropertiesHoldAcrossConditions(t *testing.T) {
	e := newTestEngine(t)
	for hot := 60.0; hot <= 240; hot += 30 {
		for _, flux := range []float64{100, 5000, 50000} {
			cond := discConditions()
			cond.HotSideTemp = hot
			cond.ColdSideTemp = 40
			cond.HeatFlux = flux
			perf, err := e.CalculatePower(PowerRequest{ConfigID: catalog.DiscBrakeTEG, Conditions: cond})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, perf.ElectricalPower, 0.0)
			assert.GreaterOrEqual(t, perf.Efficiency, 0.0)
			assert.LessOrEqual(t, perf.Efficiency, 100.0)
			assert.GreaterOrEqual(t, perf.TemperatureDifference, 0.0)
		}
	}
}
