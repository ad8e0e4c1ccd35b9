package recovery

import (
	"fmt"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/regen"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/thermal"
)

// VehicleConfig describes the vehicle the coordinator runs on.
type VehicleConfig struct {
	Mass             float64 `json:"mass"`               // kg
	BrakeSurfaceArea float64 `json:"brake_surface_area"` // m²
	// RegenEfficiency is the motor/inverter conversion efficiency applied to
	// the regenerative share of braking power.
	RegenEfficiency float64 `json:"regen_efficiency"`
	TEGModules      int     `json:"teg_modules"`
	// Regen configures the reference controller used when none is injected.
	Regen regen.Config `json:"regen"`
}

// SetDefaults applies sane defaults.
func (v *VehicleConfig) SetDefaults() {
	if v.Mass == 0 {
		v.Mass = 1800
	}
	if v.BrakeSurfaceArea == 0 {
		v.BrakeSurfaceArea = 0.25
	}
	if v.RegenEfficiency == 0 {
		v.RegenEfficiency = 0.9
	}
	if v.TEGModules == 0 {
		v.TEGModules = 4
	}
	if v.Regen.VehicleMass == 0 {
		v.Regen.VehicleMass = v.Mass
	}
	v.Regen.SetDefaults()
}

// Validate checks mandatory fields.
func (v VehicleConfig) Validate() error {
	if v.Mass <= 0 || v.BrakeSurfaceArea <= 0 {
		return fmt.Errorf("vehicle: mass and brake surface area must be positive")
	}
	if v.RegenEfficiency <= 0 || v.RegenEfficiency > 1 {
		return fmt.Errorf("vehicle: regen efficiency %g outside (0, 1]", v.RegenEfficiency)
	}
	if v.TEGModules < 0 {
		return fmt.Errorf("vehicle: TEG module count must not be negative")
	}
	return v.Regen.Validate()
}

// StrategyConfig is the energy-recovery strategy. The three activation
// thresholds must all be met for the TEG to run.
type StrategyConfig struct {
	TemperatureThreshold float64 `json:"temperature_threshold" yaml:"temperature_threshold"` // °C
	IntensityThreshold   float64 `json:"intensity_threshold" yaml:"intensity_threshold"`
	DurationThreshold    float64 `json:"duration_threshold" yaml:"duration_threshold"` // s

	MaxTEGPower           float64 `json:"max_teg_power" yaml:"max_teg_power"` // W
	PrioritizeBattery     bool    `json:"prioritize_battery" yaml:"prioritize_battery"`
	EnableBuffering       bool    `json:"enable_buffering" yaml:"enable_buffering"`
	MaxBrakeTemp          float64 `json:"max_brake_temp" yaml:"max_brake_temp"`
	TEGShutdownTemp       float64 `json:"teg_shutdown_temp" yaml:"teg_shutdown_temp"`
	CoolingActivationTemp float64 `json:"cooling_activation_temp" yaml:"cooling_activation_temp"`
	// CoolingMode is the thermal mode used once the brake reaches
	// CoolingActivationTemp; below it the loop runs passive.
	CoolingMode thermal.Mode `json:"cooling_mode" yaml:"cooling_mode"`
	TEGEnabled  bool         `json:"teg_enabled" yaml:"teg_enabled"`
}

// DefaultStrategy returns the built-in strategy.
func DefaultStrategy() StrategyConfig {
	return StrategyConfig{
		TemperatureThreshold:  80,
		IntensityThreshold:    0.3,
		DurationThreshold:     2,
		MaxTEGPower:           500,
		PrioritizeBattery:     true,
		EnableBuffering:       true,
		MaxBrakeTemp:          400,
		TEGShutdownTemp:       300,
		CoolingActivationTemp: 150,
		CoolingMode:           thermal.ModeActive,
		TEGEnabled:            true,
	}
}

// Validate checks the strategy for consistency.
func (s StrategyConfig) Validate() error {
	if s.IntensityThreshold < 0 || s.IntensityThreshold > 1 {
		return fmt.Errorf("strategy: intensity threshold %g outside [0, 1]", s.IntensityThreshold)
	}
	if s.DurationThreshold < 0 || s.MaxTEGPower < 0 {
		return fmt.Errorf("strategy: duration threshold and max TEG power must not be negative")
	}
	if s.TEGShutdownTemp <= s.TemperatureThreshold {
		return fmt.Errorf("strategy: TEG shutdown %g°C must exceed activation threshold %g°C", s.TEGShutdownTemp, s.TemperatureThreshold)
	}
	return nil
}

// StrategyUpdate is a partial strategy; nil fields are left unchanged.
type StrategyUpdate struct {
	TemperatureThreshold  *float64      `json:"temperature_threshold,omitempty" yaml:"temperature_threshold,omitempty"`
	IntensityThreshold    *float64      `json:"intensity_threshold,omitempty" yaml:"intensity_threshold,omitempty"`
	DurationThreshold     *float64      `json:"duration_threshold,omitempty" yaml:"duration_threshold,omitempty"`
	MaxTEGPower           *float64      `json:"max_teg_power,omitempty" yaml:"max_teg_power,omitempty"`
	PrioritizeBattery     *bool         `json:"prioritize_battery,omitempty" yaml:"prioritize_battery,omitempty"`
	EnableBuffering       *bool         `json:"enable_buffering,omitempty" yaml:"enable_buffering,omitempty"`
	MaxBrakeTemp          *float64      `json:"max_brake_temp,omitempty" yaml:"max_brake_temp,omitempty"`
	TEGShutdownTemp       *float64      `json:"teg_shutdown_temp,omitempty" yaml:"teg_shutdown_temp,omitempty"`
	CoolingActivationTemp *float64      `json:"cooling_activation_temp,omitempty" yaml:"cooling_activation_temp,omitempty"`
	CoolingMode           *thermal.Mode `json:"cooling_mode,omitempty" yaml:"cooling_mode,omitempty"`
	TEGEnabled            *bool         `json:"teg_enabled,omitempty" yaml:"teg_enabled,omitempty"`
}

// Apply returns s with the fields set in u replaced.
func (u StrategyUpdate) Apply(s StrategyConfig) StrategyConfig {
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setB := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setF(&s.TemperatureThreshold, u.TemperatureThreshold)
	setF(&s.IntensityThreshold, u.IntensityThreshold)
	setF(&s.DurationThreshold, u.DurationThreshold)
	setF(&s.MaxTEGPower, u.MaxTEGPower)
	setB(&s.PrioritizeBattery, u.PrioritizeBattery)
	setB(&s.EnableBuffering, u.EnableBuffering)
	setF(&s.MaxBrakeTemp, u.MaxBrakeTemp)
	setF(&s.TEGShutdownTemp, u.TEGShutdownTemp)
	setF(&s.CoolingActivationTemp, u.CoolingActivationTemp)
	if u.CoolingMode != nil {
		s.CoolingMode = *u.CoolingMode
	}
	setB(&s.TEGEnabled, u.TEGEnabled)
	return s
}
