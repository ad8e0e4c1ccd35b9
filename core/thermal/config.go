package thermal

import "fmt"

// Config holds the thermal model of the brake, motor, cooling loop and TEG
// heat exchanger. Temperatures are in °C, powers in W.
type Config struct {
	OptimalMin        float64 `json:"optimal_min"`
	OptimalMax        float64 `json:"optimal_max"`
	EmergencyShutdown float64 `json:"emergency_shutdown"`
	// EmergencyFraction of EmergencyShutdown at which the cooling loop enters
	// the emergency state.
	EmergencyFraction float64 `json:"emergency_fraction"`

	MaxCoolingPower float64 `json:"max_cooling_power"`
	COP             float64 `json:"cop"`
	// ReferenceAirflow is the vehicle airflow (m/s) that drives the fan at
	// full speed in the passive state.
	ReferenceAirflow float64 `json:"reference_airflow"`
	// AdaptiveReference is the heat generation that doubles cooling effort in
	// adaptive mode.
	AdaptiveReference float64 `json:"adaptive_reference"`

	HeatRejectionArea float64 `json:"heat_rejection_area"` // m²
	NaturalConvection float64 `json:"natural_convection"`  // W/m²K
	ForcedCoefficient float64 `json:"forced_coefficient"`
	ForcedExponent    float64 `json:"forced_exponent"`

	BrakeMass         float64 `json:"brake_mass"`          // kg
	BrakeSpecificHeat float64 `json:"brake_specific_heat"` // J/kg·K
	MotorMass         float64 `json:"motor_mass"`
	MotorSpecificHeat float64 `json:"motor_specific_heat"`
	MotorArea         float64 `json:"motor_area"`

	TEGInterfaceResistance float64 `json:"teg_interface_resistance"` // K/W
	HeatSinkResistance     float64 `json:"heat_sink_resistance"`     // K/W
	TEGThickness           float64 `json:"teg_thickness"`            // m
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&c.OptimalMin, 100)
	def(&c.OptimalMax, 250)
	def(&c.EmergencyShutdown, 450)
	def(&c.EmergencyFraction, 0.9)
	def(&c.MaxCoolingPower, 2000)
	def(&c.COP, 3.0)
	def(&c.ReferenceAirflow, 30)
	def(&c.AdaptiveReference, 5000)
	def(&c.HeatRejectionArea, 0.12)
	def(&c.NaturalConvection, 10)
	def(&c.ForcedCoefficient, 6.0)
	def(&c.ForcedExponent, 0.8)
	def(&c.BrakeMass, 8)
	def(&c.BrakeSpecificHeat, 460)
	def(&c.MotorMass, 45)
	def(&c.MotorSpecificHeat, 500)
	def(&c.MotorArea, 0.4)
	def(&c.TEGInterfaceResistance, 0.005)
	def(&c.HeatSinkResistance, 0.008)
	def(&c.TEGThickness, 0.004)
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.OptimalMin >= c.OptimalMax {
		return fmt.Errorf("thermal: optimal range [%g, %g] is empty", c.OptimalMin, c.OptimalMax)
	}
	if c.EmergencyShutdown <= c.OptimalMax {
		return fmt.Errorf("thermal: emergency shutdown %g must exceed optimal max %g", c.EmergencyShutdown, c.OptimalMax)
	}
	if c.EmergencyFraction <= 0 || c.EmergencyFraction > 1 {
		return fmt.Errorf("thermal: emergency fraction must be in (0, 1]")
	}
	if c.COP <= 0 || c.MaxCoolingPower < 0 {
		return fmt.Errorf("thermal: cooling parameters must be positive")
	}
	if c.BrakeMass <= 0 || c.BrakeSpecificHeat <= 0 || c.MotorMass <= 0 || c.MotorSpecificHeat <= 0 {
		return fmt.Errorf("thermal: thermal masses must be positive")
	}
	if c.TEGThickness <= 0 {
		return fmt.Errorf("thermal: TEG thickness must be positive")
	}
	return nil
}

// emergencyOnset is the brake temperature at which emergency cooling starts.
func (c Config) emergencyOnset() float64 { return c.EmergencyFraction * c.EmergencyShutdown }
