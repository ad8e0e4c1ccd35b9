package catalog

import (
	"fmt"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// Built-in configuration ids, ordered by the brake temperature tier they serve.
const (
	DiscBrakeTEG       = "disc_brake_teg"
	CaliperTEG         = "caliper_teg"
	HighPerformanceTEG = "high_performance_teg"
)

// DefaultMaterials returns the built-in material records.
func DefaultMaterials() []model.Material {
	return []model.Material{
		{Name: "bi2te3_p", Type: model.PType, Seebeck: 200, ElectricalConductivity: 1.0e5, ThermalConductivity: 1.5, ZT: 1.0,
			MinTemp: -50, MaxTemp: 250, Density: 6800, SpecificHeat: 200, ThermalExpansion: 1.68e-5, CostPerKg: 150},
		{Name: "bi2te3_n", Type: model.NType, Seebeck: -200, ElectricalConductivity: 1.0e5, ThermalConductivity: 1.5, ZT: 1.0,
			MinTemp: -50, MaxTemp: 250, Density: 7700, SpecificHeat: 154, ThermalExpansion: 1.68e-5, CostPerKg: 150},
		{Name: "pbte_p", Type: model.PType, Seebeck: 250, ElectricalConductivity: 5.0e4, ThermalConductivity: 2.0, ZT: 1.2,
			MinTemp: 25, MaxTemp: 550, Density: 8160, SpecificHeat: 150, ThermalExpansion: 1.98e-5, CostPerKg: 80},
		{Name: "pbte_n", Type: model.NType, Seebeck: -250, ElectricalConductivity: 5.0e4, ThermalConductivity: 2.0, ZT: 1.2,
			MinTemp: 25, MaxTemp: 550, Density: 8160, SpecificHeat: 150, ThermalExpansion: 1.98e-5, CostPerKg: 80},
		{Name: "skutterudite_n", Type: model.NType, Seebeck: -220, ElectricalConductivity: 1.5e5, ThermalConductivity: 3.0, ZT: 1.1,
			MinTemp: 25, MaxTemp: 550, Density: 7600, SpecificHeat: 240, ThermalExpansion: 9.0e-6, CostPerKg: 120},
		{Name: "tags_p", Type: model.PType, Seebeck: 220, ElectricalConductivity: 6.0e4, ThermalConductivity: 1.3, ZT: 1.3,
			MinTemp: 25, MaxTemp: 500, Density: 6500, SpecificHeat: 210, ThermalExpansion: 1.8e-5, CostPerKg: 400},
		{Name: "sige_p", Type: model.PType, Seebeck: 220, ElectricalConductivity: 5.0e4, ThermalConductivity: 4.5, ZT: 0.8,
			MinTemp: 300, MaxTemp: 1000, Density: 3000, SpecificHeat: 700, ThermalExpansion: 4.5e-6, CostPerKg: 300},
		{Name: "sige_n", Type: model.NType, Seebeck: -250, ElectricalConductivity: 5.0e4, ThermalConductivity: 4.5, ZT: 0.9,
			MinTemp: 300, MaxTemp: 1000, Density: 3000, SpecificHeat: 700, ThermalExpansion: 4.5e-6, CostPerKg: 300},
	}
}

type configDef struct {
	cfg  model.TEGConfiguration
	p, n string
}

// DefaultConfigurations builds the built-in module designs from materials.
func DefaultConfigurations(materials *MaterialCatalog) ([]model.TEGConfiguration, error) {
	defs := []configDef{
		{p: "bi2te3_p", n: "bi2te3_n", cfg: model.TEGConfiguration{
			ID:         DiscBrakeTEG,
			Topology:   model.TopologySingleStage,
			Dimensions: model.Dimensions{Length: 0.04, Width: 0.04, Height: 0.004},
			PairCount:  127,
			Leg:        model.Leg{Length: 0.002, Area: 2e-6},
			Wiring:     model.WiringSeries,
			HeatExchanger: model.HeatExchanger{Type: "finned_aluminium",
				HotSideArea: 0.0016, HotSideResistance: 0.01, ColdSideArea: 0.0016, ColdSideResistance: 0.015},
			Placement: model.Placement{Location: model.LocationDisc, Mounting: "disc_shield", InterfaceMaterial: "thermal_paste"},
		}},
		{p: "bi2te3_p", n: "bi2te3_n", cfg: model.TEGConfiguration{
			ID:         CaliperTEG,
			Topology:   model.TopologySingleStage,
			Dimensions: model.Dimensions{Length: 0.05, Width: 0.05, Height: 0.0035},
			PairCount:  161,
			Leg:        model.Leg{Length: 0.0015, Area: 1.96e-6},
			Wiring:     model.WiringSeries,
			HeatExchanger: model.HeatExchanger{Type: "heat_pipe",
				HotSideArea: 0.0025, HotSideResistance: 0.008, ColdSideArea: 0.0025, ColdSideResistance: 0.012},
			Placement: model.Placement{Location: model.LocationCaliper, Mounting: "caliper_body", InterfaceMaterial: "thermal_pad"},
		}},
		{p: "pbte_p", n: "skutterudite_n", cfg: model.TEGConfiguration{
			ID:         HighPerformanceTEG,
			Topology:   model.TopologySegmented,
			Dimensions: model.Dimensions{Length: 0.056, Width: 0.056, Height: 0.005},
			PairCount:  96,
			Leg:        model.Leg{Length: 0.003, Area: 4e-6},
			Wiring:     model.WiringSeries,
			HeatExchanger: model.HeatExchanger{Type: "liquid_cooled",
				HotSideArea: 0.0031, HotSideResistance: 0.006, ColdSideArea: 0.0031, ColdSideResistance: 0.01},
			Placement: model.Placement{Location: model.LocationDisc, Mounting: "inner_vane", InterfaceMaterial: "liquid_metal"},
		}},
	}
	out := make([]model.TEGConfiguration, 0, len(defs))
	for _, d := range defs {
		pair, ok := materials.Pair(d.p, d.n)
		if !ok {
			return nil, fmt.Errorf("catalog: materials %s/%s missing for %s", d.p, d.n, d.cfg.ID)
		}
		d.cfg.Materials = pair
		out = append(out, d.cfg)
	}
	return out, nil
}
