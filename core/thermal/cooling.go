package thermal

import "math"

// CoolingState is the state of the cooling loop.
type CoolingState string

const (
	CoolingOff       CoolingState = "off"
	CoolingPassive   CoolingState = "passive"
	CoolingActive    CoolingState = "active"
	CoolingEmergency CoolingState = "emergency"
)

// Mode selects the cooling policy.
type Mode string

const (
	// ModePassive never powers the pump or the active cooler.
	ModePassive  Mode = "passive"
	ModeActive   Mode = "active"
	ModeAdaptive Mode = "adaptive"
)

// ParseMode maps a name to a Mode, defaulting to ModeActive.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModePassive, ModeAdaptive:
		return Mode(s)
	default:
		return ModeActive
	}
}

// coolingCommand is the actuator set-point for one event. Fan and pump speeds
// are fractions of full speed.
type coolingCommand struct {
	state CoolingState
	power float64
	fan   float64
	pump  float64
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// stateFor runs the cooling state machine on the brake temperature.
func (c Config) stateFor(brakeTemp float64) CoolingState {
	switch {
	case brakeTemp >= c.emergencyOnset():
		return CoolingEmergency
	case brakeTemp > c.OptimalMax:
		return CoolingActive
	case brakeTemp > c.OptimalMin:
		return CoolingPassive
	default:
		return CoolingOff
	}
}

func (c Config) command(brakeTemp, airflow, heatGen float64, mode Mode) coolingCommand {
	cmd := coolingCommand{state: c.stateFor(brakeTemp)}
	switch cmd.state {
	case CoolingEmergency:
		cmd.power, cmd.fan, cmd.pump = c.MaxCoolingPower, 1, 1
	case CoolingActive:
		excess := clamp01((brakeTemp - c.OptimalMax) / (c.emergencyOnset() - c.OptimalMax))
		cmd.power = c.MaxCoolingPower * excess
		cmd.fan = 0.5 + 0.5*excess
		cmd.pump = excess
	case CoolingPassive:
		cmd.fan = clamp01(airflow / c.ReferenceAirflow)
	}

	switch mode {
	case ModeAdaptive:
		scale := 1 + math.Max(0, heatGen)/c.AdaptiveReference
		cmd.power = math.Min(c.MaxCoolingPower, cmd.power*scale)
		cmd.fan = clamp01(cmd.fan * scale)
		cmd.pump = clamp01(cmd.pump * scale)
	case ModePassive:
		cmd.power, cmd.pump = 0, 0
	}
	return cmd
}

// rejection returns the heat carried away from the brake at temperature
// brakeTemp, in W.
func (c Config) rejection(brakeTemp, ambient, airflow float64, cmd coolingCommand) float64 {
	dT := math.Max(0, brakeTemp-ambient)
	natural := c.NaturalConvection * c.HeatRejectionArea * dT
	forced := c.forcedCoefficient(airflow) * c.HeatRejectionArea * dT
	active := cmd.power * c.COP * (cmd.fan + cmd.pump) / 2
	return natural + forced + active
}

func (c Config) forcedCoefficient(airflow float64) float64 {
	return c.ForcedCoefficient * math.Pow(math.Max(0, airflow), c.ForcedExponent)
}
