// Package thermal models heat generation and distribution during braking,
// selects a cooling strategy and estimates the resulting brake, motor and
// TEG-side temperatures.
package thermal

import (
	"math"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/logger"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// Heat distribution ratios of the generated heat.
const (
	brakeShare   = 0.70
	motorShare   = 0.20
	tegShare     = 0.05
	ambientShare = 0.05

	// motorLossRatio is the share of regenerated power lost as motor heat.
	motorLossRatio = 0.10
)

// HeatDistribution splits generated heat between components, in W.
type HeatDistribution struct {
	Brake   float64 `json:"brake"`
	Motor   float64 `json:"motor"`
	TEG     float64 `json:"teg"`
	Ambient float64 `json:"ambient"`
}

// Outputs is the result of one thermal management step.
type Outputs struct {
	HeatGeneration   float64          `json:"heat_generation"`
	HeatDistribution HeatDistribution `json:"heat_distribution"`
	CoolingState     CoolingState     `json:"cooling_state"`
	CoolingPower     float64          `json:"cooling_power"`
	// FanSpeed and PumpSpeed are in percent of full speed.
	FanSpeed              float64 `json:"fan_speed"`
	PumpSpeed             float64 `json:"pump_speed"`
	HeatRejected          float64 `json:"heat_rejected"`
	FinalBrakeTemperature float64 `json:"final_brake_temperature"`
	FinalMotorTemperature float64 `json:"final_motor_temperature"`
	TEGHotSideTemp        float64 `json:"teg_hot_side_temp"`
	TEGColdSideTemp       float64 `json:"teg_cold_side_temp"`
	ThermalEfficiency     float64 `json:"thermal_efficiency"`   // %
	TemperatureGradient   float64 `json:"temperature_gradient"` // K/m
}

// Manager evaluates the thermal state of the braking system. It holds no
// per-event state and is safe for concurrent use.
type Manager struct {
	cfg Config
	log logger.Logger
}

// NewManager returns a Manager with cfg completed by defaults.
func NewManager(cfg Config, log logger.Logger) *Manager {
	cfg.SetDefaults()
	return &Manager{cfg: cfg, log: logger.OrNop(log)}
}

// Config returns the thermal model in use.
func (m *Manager) Config() Config { return m.cfg }

// Manage computes heat flows, cooling and temperatures for one braking event.
// It fails with an EmergencyShutdown error once the brake reaches the
// shutdown threshold.
func (m *Manager) Manage(in model.BrakingThermalInputs, mode Mode, tegActive bool) (Outputs, error) {
	c := m.cfg
	if in.BrakeTemperature >= c.EmergencyShutdown {
		m.log.Errorf("brake temperature %.1f°C reached shutdown threshold %.0f°C", in.BrakeTemperature, c.EmergencyShutdown)
		return Outputs{}, model.NewEmergencyShutdown(in.BrakeTemperature, c.EmergencyShutdown)
	}

	heatGen := math.Max(0, in.MechanicalPower) + motorLossRatio*math.Max(0, in.RegenerativePower)
	dist := HeatDistribution{
		Brake:   brakeShare * heatGen,
		Motor:   motorShare * heatGen,
		Ambient: ambientShare * heatGen,
	}
	if tegActive {
		dist.TEG = tegShare * heatGen
	}

	cmd := c.command(in.BrakeTemperature, in.AirflowVelocity, heatGen, mode)
	if cmd.state == CoolingEmergency {
		m.log.Warnf("emergency cooling engaged at brake temperature %.1f°C", in.BrakeTemperature)
	}
	rejected := c.rejection(in.BrakeTemperature, in.AmbientTemperature, in.AirflowVelocity, cmd)

	dur := math.Max(0, in.BrakingDuration)
	brakeCap := c.BrakeMass * c.BrakeSpecificHeat
	finalBrake := in.BrakeTemperature + (dist.Brake-rejected)*dur/brakeCap
	finalBrake = math.Max(in.AmbientTemperature, finalBrake)

	motorCap := c.MotorMass * c.MotorSpecificHeat
	motorDT := math.Max(0, in.MotorTemperature-in.AmbientTemperature)
	motorCooling := (c.NaturalConvection + c.forcedCoefficient(in.AirflowVelocity)) * c.MotorArea * motorDT
	finalMotor := in.MotorTemperature + (dist.Motor-motorCooling)*dur/motorCap
	finalMotor = math.Max(in.AmbientTemperature, finalMotor)

	hot, cold := in.AmbientTemperature, in.AmbientTemperature
	if tegActive {
		hot = math.Max(in.AmbientTemperature, in.BrakeTemperature-dist.TEG*c.TEGInterfaceResistance)
		cold = math.Max(in.AmbientTemperature, in.AmbientTemperature+dist.TEG*c.HeatSinkResistance)
	}

	eff := 0.0
	if heatGen > 0 {
		eff = math.Max(0, (rejected-cmd.power)/heatGen*100)
	}

	out := Outputs{
		HeatGeneration:        heatGen,
		HeatDistribution:      dist,
		CoolingState:          cmd.state,
		CoolingPower:          cmd.power,
		FanSpeed:              cmd.fan * 100,
		PumpSpeed:             cmd.pump * 100,
		HeatRejected:          rejected,
		FinalBrakeTemperature: finalBrake,
		FinalMotorTemperature: finalMotor,
		TEGHotSideTemp:        hot,
		TEGColdSideTemp:       cold,
		ThermalEfficiency:     eff,
		TemperatureGradient:   (hot - cold) / c.TEGThickness,
	}
	m.log.Debugw("thermal step", map[string]any{
		"cooling_state": string(out.CoolingState),
		"heat_w":        heatGen,
		"final_brake_c": finalBrake,
	})
	return out, nil
}
