package teg

import (
	"gonum.org/v1/gonum/floats"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

const plateThickness = 0.002 // m, both ceramic plates

// scoreWeights apply to power, efficiency, power density and reliability.
var scoreWeights = []float64{0.4, 0.3, 0.2, 0.1}

// Constraints bound the design-space search. Zero values disable a constraint.
type Constraints struct {
	MaxFootprint  float64 `json:"max_footprint"` // m²
	MaxHeight     float64 `json:"max_height"`    // m
	MaxCost       float64 `json:"max_cost"`
	MinPower      float64 `json:"min_power"`      // W
	MinEfficiency float64 `json:"min_efficiency"` // %
}

// OptimizationResult is the best design found.
type OptimizationResult struct {
	BestConfig  model.TEGConfiguration `json:"best_config"`
	Performance model.TEGPerformance   `json:"expected_performance"`
	Score       float64                `json:"score"`
	Iterations  int                    `json:"iterations"`
	Skipped     int                    `json:"skipped"`
	Improved    bool                   `json:"improved"`
}

func score(p model.TEGPerformance, c Constraints) float64 {
	s := floats.Dot(scoreWeights, []float64{p.ElectricalPower, p.Efficiency, p.PowerDensity, p.Reliability})
	if (c.MinPower > 0 && p.ElectricalPower < c.MinPower) || (c.MinEfficiency > 0 && p.Efficiency < c.MinEfficiency) {
		s *= 0.5
	}
	return s
}

func footprint(cfg model.TEGConfiguration) float64 {
	return 4 * float64(cfg.PairCount) * cfg.Leg.Area
}

func materialCost(cfg model.TEGConfiguration) float64 {
	p, n := cfg.Materials.P, cfg.Materials.N
	return float64(cfg.PairCount) * cfg.Leg.Length * cfg.Leg.Area * (p.Density*p.CostPerKg + n.Density*n.CostPerKg)
}

func violates(cfg model.TEGConfiguration, c Constraints) bool {
	if c.MaxFootprint > 0 && footprint(cfg) > c.MaxFootprint {
		return true
	}
	if c.MaxHeight > 0 && cfg.Leg.Length+plateThickness > c.MaxHeight {
		return true
	}
	return c.MaxCost > 0 && materialCost(cfg) > c.MaxCost
}

// OptimizeConfiguration searches pair count and leg geometry around the base
// design for the best weighted score under target. At most the configured
// budget of grid points is visited; the best design seen so far is returned,
// which is the unmodified base when no candidate beats it. The engine history
// is not modified.
func (e *Engine) OptimizeConfiguration(baseID string, target model.ThermalConditions, c Constraints) (OptimizationResult, error) {
	return e.optimize(baseID, target, c, DefaultGrid())
}

func (e *Engine) optimize(baseID string, target model.ThermalConditions, c Constraints, grid *Grid) (OptimizationResult, error) {
	base, err := e.configs.Lookup(baseID)
	if err != nil {
		return OptimizationResult{}, err
	}
	if res := ValidateThermalConditions(base, target); !res.Valid {
		return OptimizationResult{}, model.NewInvalidThermalConditions(res.Errors)
	}

	basePerf := e.evaluate(base, target, MaximumPower, 0, false)
	best := OptimizationResult{BestConfig: base, Performance: basePerf, Score: score(basePerf, c)}

	for best.Iterations < e.cfg.OptimizerBudget {
		pt, ok := grid.Next()
		if !ok {
			break
		}
		best.Iterations++
		cand := base
		cand.PairCount = pt.PairCount
		cand.Leg = model.Leg{Length: pt.LegLength, Area: pt.LegArea}
		if violates(cand, c) {
			best.Skipped++
			continue
		}
		perf := e.evaluate(cand, target, MaximumPower, 0, false)
		if s := score(perf, c); s > best.Score {
			best.BestConfig, best.Performance, best.Score, best.Improved = cand, perf, s, true
		}
	}
	e.log.Infof("optimized %s: score %.2f after %d iterations (%d skipped)", baseID, best.Score, best.Iterations, best.Skipped)
	return best, nil
}
