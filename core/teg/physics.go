package teg

import (
	"math"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

const (
	referenceTemp = 25.0
	kelvinOffset  = 273.15

	seebeckCoeff    = 0.001 // per °C
	resistanceCoeff = 0.004
	conductionCoeff = 0.002

	baseReliability      = 0.98
	minReliability       = 0.5
	baselineLifespanHrs  = 87600.0
	structuralOverhead   = 1.5
	coolingResistanceCut = 0.8
)

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// temperatureFactors are the multipliers applied to the 25 °C material
// properties at a given mean junction temperature.
type temperatureFactors struct {
	seebeck    float64
	resistance float64
	conduction float64
}

func factorsAt(meanTemp float64) temperatureFactors {
	d := meanTemp - referenceTemp
	return temperatureFactors{
		seebeck:    clamp(1+seebeckCoeff*d, 0.5, 1.5),
		resistance: clamp(1+resistanceCoeff*d, 0.8, 3.0),
		conduction: clamp(1+conductionCoeff*d, 0.8, 2.0),
	}
}

// moduleState holds the intermediate quantities of one evaluation.
type moduleState struct {
	effHot, effCold float64
	deltaT          float64
	factors         temperatureFactors
	seebeckPair     float64 // V/K
	internalR       float64 // Ω
	conductance     float64 // W/K
	mass            float64 // kg
}

func evaluateModule(cfg model.TEGConfiguration, cond model.ThermalConditions, coolingActive bool) moduleState {
	hx := cfg.HeatExchanger
	coldR := hx.ColdSideResistance
	if coolingActive {
		coldR *= coolingResistanceCut
	}
	heatFlow := cond.HeatFlux * hx.HotSideArea
	effHot := cond.HotSideTemp - heatFlow*hx.HotSideResistance
	effCold := cond.ColdSideTemp + heatFlow*coldR
	dT := math.Max(0, effHot-effCold)

	f := factorsAt((effHot + effCold) / 2)
	p, n := cfg.Materials.P, cfg.Materials.N
	pairs := float64(cfg.PairCount)
	L, A := cfg.Leg.Length, cfg.Leg.Area

	st := moduleState{effHot: effHot, effCold: effCold, deltaT: dT, factors: f}
	st.seebeckPair = (math.Abs(p.Seebeck) + math.Abs(n.Seebeck)) * 1e-6 * f.seebeck
	st.internalR = pairs * (L/(p.ElectricalConductivity*A) + L/(n.ElectricalConductivity*A)) * f.resistance
	st.conductance = pairs * (p.ThermalConductivity + n.ThermalConductivity) * A / L * f.conduction
	st.mass = pairs * L * A * (p.Density + n.Density) * structuralOverhead
	return st
}

// loadFor returns the load resistance for the operating mode.
func loadFor(mode OperatingMode, internal float64) float64 {
	switch mode {
	case MaximumEfficiency:
		return 3 * internal
	case ConstantVoltage:
		return 10 * internal
	default:
		return internal
	}
}

// reliability returns the module reliability as a fraction.
func reliability(hotTemp, maxRated, duration, resistanceFactor float64) float64 {
	ratio := 0.0
	if maxRated > 0 {
		ratio = math.Max(0, hotTemp) / maxRated
	}
	tempStress := 0.1 * ratio * ratio
	cycling := math.Min(0.2, 0.001*math.Max(0, duration))
	degradation := 0.05 * math.Max(0, resistanceFactor-1)
	r := baseReliability * (1 - tempStress) * (1 - cycling) * (1 - degradation)
	return math.Max(minReliability, r)
}

func stability(zt float64) float64 {
	return clamp(zt/1.2, 0.5, 1.0)
}

// lifespan returns the expected module life in hours.
func lifespan(hotTemp, duration float64, mats model.MaterialPair) float64 {
	h := baselineLifespanHrs
	if hotTemp > 100 {
		h *= math.Exp(-(hotTemp - 100) / 100)
	}
	if duration > 5 {
		h /= 1 + 0.01*(duration-5)
	}
	return h * math.Min(stability(mats.P.ZT), stability(mats.N.ZT))
}
