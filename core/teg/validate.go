package teg

import (
	"fmt"
	"math"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

const (
	lowDeltaT   = 10.0   // °C
	lowHeatFlux = 1000.0 // W/m²
)

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ValidateThermalConditions checks cond against the operating range of cfg's
// material pair. Low ΔT and low heat flux are warnings only. Non-finite
// values are always errors.
func ValidateThermalConditions(cfg model.TEGConfiguration, cond model.ThermalConditions) model.ValidationResult {
	res := model.ValidationResult{Valid: true}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"hot side temperature", cond.HotSideTemp},
		{"cold side temperature", cond.ColdSideTemp},
		{"ambient temperature", cond.AmbientTemp},
		{"heat flux", cond.HeatFlux},
		{"hot side convection", cond.HotConvection},
		{"cold side convection", cond.ColdConvection},
		{"airflow velocity", cond.AirflowVelocity},
		{"airflow temperature", cond.AirflowTemp},
		{"braking duration", cond.BrakingDuration},
		{"braking intensity", cond.BrakingIntensity},
	} {
		if !finite(f.v) {
			res.AddError(fmt.Sprintf("%s must be finite, got %g", f.name, f.v))
		}
	}
	if !res.Valid {
		return res
	}
	if cond.HotSideTemp <= cond.ColdSideTemp {
		res.AddError(fmt.Sprintf("hot side %g°C must exceed cold side %g°C", cond.HotSideTemp, cond.ColdSideTemp))
	}
	rng, ok := cfg.Materials.OperatingRange()
	switch {
	case !ok:
		res.AddError("material operating ranges do not overlap")
	case !rng.Contains(cond.HotSideTemp):
		res.AddError(fmt.Sprintf("hot side %g°C outside material range %s", cond.HotSideTemp, rng))
	}
	if cond.HeatFlux <= 0 {
		res.AddError("heat flux must be positive")
	}
	if !(model.Bound{Min: 0, Max: 1}).Contains(cond.BrakingIntensity) {
		res.AddError(fmt.Sprintf("braking intensity %g outside [0, 1]", cond.BrakingIntensity))
	}
	if cond.BrakingDuration < 0 {
		res.AddError(fmt.Sprintf("braking duration %g must not be negative", cond.BrakingDuration))
	}
	if dT := cond.TemperatureDifference(); dT > 0 && dT < lowDeltaT {
		res.AddWarning(fmt.Sprintf("low temperature difference %.1f°C", dT))
	}
	if cond.HeatFlux > 0 && cond.HeatFlux < lowHeatFlux {
		res.AddWarning(fmt.Sprintf("low heat flux %.0f W/m²", cond.HeatFlux))
	}
	return res
}
