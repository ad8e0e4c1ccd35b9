// Package regen defines the boundary to the regenerative-braking controller
// and ships a reference controller used when no vehicle-specific one is
// plugged in.
package regen

import (
	"fmt"
	"math"
)

const gravity = 9.81 // m/s²

// Inputs is what the controller needs to split a braking request.
type Inputs struct {
	DrivingSpeed     float64 `json:"driving_speed"` // km/h
	BrakingIntensity float64 `json:"braking_intensity"`
	BatterySOC       float64 `json:"battery_soc"`
	MotorTemperature float64 `json:"motor_temperature"`
}

// Outputs is the controller's decision for one braking request.
type Outputs struct {
	MotorTorque              float64 `json:"motor_torque"`             // Nm
	FrontAxleBrakingForce    float64 `json:"front_axle_braking_force"` // N
	RegenerativeBrakingRatio float64 `json:"regenerative_braking_ratio"`
}

// Controller splits a braking request between the motor and the friction
// brakes. Implementations are synchronous and always return a value.
type Controller interface {
	Calculate(Inputs) Outputs
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(Inputs) Outputs

// Calculate calls f.
func (f ControllerFunc) Calculate(in Inputs) Outputs { return f(in) }

// Config parameterizes SimpleController.
type Config struct {
	VehicleMass float64 `json:"vehicle_mass"` // kg
	WheelRadius float64 `json:"wheel_radius"` // m
	GearRatio   float64 `json:"gear_ratio"`
	// FrontAxleShare of the total braking force carried by the front axle.
	FrontAxleShare float64 `json:"front_axle_share"`
	MaxMotorTorque float64 `json:"max_motor_torque"` // Nm
	BaseRatio      float64 `json:"base_ratio"`
	// HighSOC is the state of charge above which regeneration fades out
	// linearly until the battery is full.
	HighSOC float64 `json:"high_soc"`
	// MinSpeed (km/h) below which regeneration fades out linearly to zero.
	MinSpeed float64 `json:"min_speed"`
	// Motor derating starts at MotorDerateStart and reaches zero at MotorDerateEnd (°C).
	MotorDerateStart float64 `json:"motor_derate_start"`
	MotorDerateEnd   float64 `json:"motor_derate_end"`
	// Above HardBrakeIntensity the ratio is multiplied by HardBrakeFactor.
	HardBrakeIntensity float64 `json:"hard_brake_intensity"`
	HardBrakeFactor    float64 `json:"hard_brake_factor"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&c.VehicleMass, 1800)
	def(&c.WheelRadius, 0.33)
	def(&c.GearRatio, 9.0)
	def(&c.FrontAxleShare, 0.6)
	def(&c.MaxMotorTorque, 350)
	def(&c.BaseRatio, 0.7)
	def(&c.HighSOC, 0.9)
	def(&c.MinSpeed, 5)
	def(&c.MotorDerateStart, 120)
	def(&c.MotorDerateEnd, 150)
	def(&c.HardBrakeIntensity, 0.8)
	def(&c.HardBrakeFactor, 0.7)
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.VehicleMass <= 0 || c.WheelRadius <= 0 || c.GearRatio <= 0 {
		return fmt.Errorf("regen: vehicle mass, wheel radius and gear ratio must be positive")
	}
	if c.BaseRatio < 0 || c.BaseRatio > 1 || c.FrontAxleShare < 0 || c.FrontAxleShare > 1 {
		return fmt.Errorf("regen: ratios must be in [0, 1]")
	}
	if c.HighSOC >= 1 || c.MotorDerateEnd <= c.MotorDerateStart {
		return fmt.Errorf("regen: derating windows are empty")
	}
	return nil
}

// SimpleController is a rule-based controller: a base regenerative share
// derated for a full battery, low speed, a hot motor and hard braking.
type SimpleController struct {
	cfg Config
}

// NewSimpleController returns a controller with cfg completed by defaults.
func NewSimpleController(cfg Config) *SimpleController {
	cfg.SetDefaults()
	return &SimpleController{cfg: cfg}
}

// Calculate implements Controller.
func (s *SimpleController) Calculate(in Inputs) Outputs {
	c := s.cfg
	intensity := math.Max(0, math.Min(1, in.BrakingIntensity))
	totalForce := c.VehicleMass * gravity * intensity
	front := totalForce * c.FrontAxleShare
	if intensity == 0 {
		return Outputs{}
	}

	ratio := c.BaseRatio
	if in.BatterySOC > c.HighSOC {
		ratio *= fade(in.BatterySOC, c.HighSOC, 1)
	}
	if in.DrivingSpeed < c.MinSpeed {
		ratio *= math.Max(0, in.DrivingSpeed) / c.MinSpeed
	}
	if in.MotorTemperature > c.MotorDerateStart {
		ratio *= fade(in.MotorTemperature, c.MotorDerateStart, c.MotorDerateEnd)
	}
	if intensity > c.HardBrakeIntensity {
		ratio *= c.HardBrakeFactor
	}
	ratio = math.Max(0, math.Min(1, ratio))

	torque := math.Min(c.MaxMotorTorque, totalForce*ratio*c.WheelRadius/c.GearRatio)
	return Outputs{
		MotorTorque:              torque,
		FrontAxleBrakingForce:    front,
		RegenerativeBrakingRatio: ratio,
	}
}

// fade is 1 at from and falls linearly to 0 at to.
func fade(v, from, to float64) float64 {
	return math.Max(0, math.Min(1, (to-v)/(to-from)))
}
