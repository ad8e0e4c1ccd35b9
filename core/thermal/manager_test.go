package thermal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

func hotBrake() model.BrakingThermalInputs {
	return model.BrakingThermalInputs{
		BrakeTemperature:   300,
		AmbientTemperature: 25,
		MotorTemperature:   80,
		BrakingPower:       50000,
		MechanicalPower:    20000,
		RegenerativePower:  30000,
		AirflowVelocity:    10,
		BrakingDuration:    5,
		VehicleSpeed:       80,
		BrakingIntensity:   0.5,
	}
}

func TestManageHeatDistribution(t *testing.T) {
	m := NewManager(Config{}, nil)
	out, err := m.Manage(hotBrake(), ModeActive, true)
	require.NoError(t, err)
	assert.InDelta(t, 23000, out.HeatGeneration, 1e-9)
	assert.InDelta(t, 16100, out.HeatDistribution.Brake, 1e-9)
	assert.InDelta(t, 4600, out.HeatDistribution.Motor, 1e-9)
	assert.InDelta(t, 1150, out.HeatDistribution.TEG, 1e-9)
	assert.InDelta(t, 1150, out.HeatDistribution.Ambient, 1e-9)

	out, err = m.Manage(hotBrake(), ModeActive, false)
	require.NoError(t, err)
	assert.Zero(t, out.HeatDistribution.TEG)
	assert.InDelta(t, 16100, out.HeatDistribution.Brake, 1e-9)
}

func TestManageCoolingStates(t *testing.T) {
	m := NewManager(Config{}, nil)
	cases := []struct {
		brake float64
		want  CoolingState
	}{
		{90, CoolingOff},
		{100, CoolingOff},
		{150, CoolingPassive},
		{250, CoolingPassive},
		{300, CoolingActive},
		{405, CoolingEmergency},
		{449, CoolingEmergency},
	}
	for _, tc := range cases {
		in := hotBrake()
		in.BrakeTemperature = tc.brake
		out, err := m.Manage(in, ModeActive, false)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out.CoolingState, "brake %g", tc.brake)
	}
}

func TestManageActiveCoolingScales(t *testing.T) {
	m := NewManager(Config{}, nil)
	out, err := m.Manage(hotBrake(), ModeActive, false)
	require.NoError(t, err)
	assert.InDelta(t, 2000*50.0/155.0, out.CoolingPower, 1e-6)

	in := hotBrake()
	in.BrakeTemperature = 350
	hotter, err := m.Manage(in, ModeActive, false)
	require.NoError(t, err)
	assert.Greater(t, hotter.CoolingPower, out.CoolingPower)

	in.BrakeTemperature = 420
	emergency, err := m.Manage(in, ModeActive, false)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, emergency.CoolingPower)
	assert.Equal(t, 100.0, emergency.FanSpeed)
	assert.Equal(t, 100.0, emergency.PumpSpeed)
}

func TestManageModes(t *testing.T) {
	m := NewManager(Config{}, nil)
	active, err := m.Manage(hotBrake(), ModeActive, false)
	require.NoError(t, err)
	adaptive, err := m.Manage(hotBrake(), ModeAdaptive, false)
	require.NoError(t, err)
	passive, err := m.Manage(hotBrake(), ModePassive, false)
	require.NoError(t, err)

	assert.Greater(t, adaptive.CoolingPower, active.CoolingPower)
	assert.LessOrEqual(t, adaptive.CoolingPower, 2000.0)
	assert.Zero(t, passive.CoolingPower)
	assert.Zero(t, passive.PumpSpeed)
	assert.Equal(t, CoolingActive, passive.CoolingState)
	assert.Greater(t, active.HeatRejected, passive.HeatRejected)
}

func TestManagePassiveFanFollowsAirflow(t *testing.T) {
	m := NewManager(Config{}, nil)
	in := hotBrake()
	in.BrakeTemperature = 200
	in.AirflowVelocity = 15
	out, err := m.Manage(in, ModeActive, false)
	require.NoError(t, err)
	assert.InDelta(t, 50, out.FanSpeed, 1e-9)
	assert.Zero(t, out.CoolingPower)
}

func TestManageTEGTemperatures(t *testing.T) {
	m := NewManager(Config{}, nil)
	out, err := m.Manage(hotBrake(), ModeActive, true)
	require.NoError(t, err)
	assert.InDelta(t, 300-1150*0.005, out.TEGHotSideTemp, 1e-9)
	assert.InDelta(t, 25+1150*0.008, out.TEGColdSideTemp, 1e-9)
	assert.InDelta(t, (out.TEGHotSideTemp-out.TEGColdSideTemp)/0.004, out.TemperatureGradient, 1e-6)

	out, err = m.Manage(hotBrake(), ModeActive, false)
	require.NoError(t, err)
	assert.Equal(t, 25.0, out.TEGHotSideTemp)
	assert.Equal(t, 25.0, out.TEGColdSideTemp)
	assert.Zero(t, out.TemperatureGradient)
}

func TestManageFinalTemperaturesFloorAtAmbient(t *testing.T) {
	m := NewManager(Config{}, nil)
	in := model.BrakingThermalInputs{
		BrakeTemperature:   30,
		MotorTemperature:   30,
		AmbientTemperature: 25,
		AirflowVelocity:    50,
		BrakingDuration:    100000,
	}
	out, err := m.Manage(in, ModeActive, false)
	require.NoError(t, err)
	assert.Equal(t, 25.0, out.FinalBrakeTemperature)
	assert.Equal(t, 25.0, out.FinalMotorTemperature)
	assert.Zero(t, out.ThermalEfficiency)
}

func TestManageBrakeHeatsUp(t *testing.T) {
	m := NewManager(Config{}, nil)
	out, err := m.Manage(hotBrake(), ModeActive, true)
	require.NoError(t, err)
	assert.Greater(t, out.FinalBrakeTemperature, 300.0)
	assert.Greater(t, out.FinalMotorTemperature, 80.0)
	assert.GreaterOrEqual(t, out.ThermalEfficiency, 0.0)
}

func TestManageEmergencyShutdown(t *testing.T) {
	m := NewManager(Config{}, nil)
	in := hotBrake()
	in.BrakeTemperature = 450
	_, err := m.Manage(in, ModeActive, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrEmergencyShutdown))

	var me *model.Error
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 450.0, me.Value)
}

func TestConfigValidate(t *testing.T) {
	var c Config
	c.SetDefaults()
	require.NoError(t, c.Validate())

	bad := c
	bad.OptimalMin = 300
	assert.Error(t, bad.Validate())

	bad = c
	bad.EmergencyShutdown = 200
	assert.Error(t, bad.Validate())
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModePassive, ParseMode("passive"))
	assert.Equal(t, ModeAdaptive, ParseMode("adaptive"))
	assert.Equal(t, ModeActive, ParseMode(""))
}
