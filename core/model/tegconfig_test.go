package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() TEGConfiguration {
	return TEGConfiguration{
		ID:         "cfg",
		Topology:   TopologySingleStage,
		Dimensions: Dimensions{Length: 0.04, Width: 0.04, Height: 0.004},
		Materials: MaterialPair{
			P: Material{Name: "p", Type: PType, MinTemp: -50, MaxTemp: 250},
			N: Material{Name: "n", Type: NType, MinTemp: 0, MaxTemp: 300},
		},
		PairCount:     127,
		Leg:           Leg{Length: 0.002, Area: 2e-6},
		Wiring:        WiringSeries,
		HeatExchanger: HeatExchanger{HotSideArea: 0.0016, HotSideResistance: 0.01, ColdSideArea: 0.0016, ColdSideResistance: 0.015},
	}
}

func TestTEGConfigurationValidate(t *testing.T) {
	res := validConfig().Validate()
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestTEGConfigurationValidateViolations(t *testing.T) {
	c := validConfig()
	c.PairCount = 0
	c.Leg.Area = -1
	c.Materials.P, c.Materials.N = c.Materials.N, c.Materials.P
	c.HeatExchanger.ColdSideResistance = 0
	res := c.Validate()
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "pair count must be positive")
	assert.Contains(t, res.Errors, "leg cross-section area must be positive")
	assert.Contains(t, res.Errors, "p-leg material n is not p-type")
	assert.Contains(t, res.Errors, "heat exchanger thermal resistances must be positive")
}

func TestTEGConfigurationNonOverlappingRangesWarn(t *testing.T) {
	c := validConfig()
	c.Materials.N.MinTemp = 400
	c.Materials.N.MaxTemp = 600
	res := c.Validate()
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"material operating ranges do not overlap"}, res.Warnings)
}

func TestOverlap(t *testing.T) {
	b, ok := Overlap(Bound{Min: 0, Max: 250}, Bound{Min: 100, Max: 500})
	assert.True(t, ok)
	assert.Equal(t, Bound{Min: 100, Max: 250}, b)
	_, ok = Overlap(Bound{Min: 0, Max: 50}, Bound{Min: 100, Max: 500})
	assert.False(t, ok)
}

func TestPowerDistributionTotal(t *testing.T) {
	d := PowerDistribution{Battery: 70, Supercapacitor: 24, DirectUse: 6}
	assert.InDelta(t, 100, d.Total(), 1e-9)
}
