package model

// MaterialType is the carrier polarity of a thermoelectric material.
type MaterialType string

const (
	PType MaterialType = "p-type"
	NType MaterialType = "n-type"
)

// Material describes a thermoelectric material. Temperatures are in °C.
type Material struct {
	Name                   string       `json:"name" yaml:"name"`
	Type                   MaterialType `json:"type" yaml:"type"`
	Seebeck                float64      `json:"seebeck_uv_k" yaml:"seebeck_uv_k"`                     // μV/K, negative for n-type
	ElectricalConductivity float64      `json:"electrical_conductivity" yaml:"electrical_conductivity"` // S/m
	ThermalConductivity    float64      `json:"thermal_conductivity" yaml:"thermal_conductivity"`       // W/(m·K)
	ZT                     float64      `json:"zt" yaml:"zt"`
	MinTemp                float64      `json:"min_temp" yaml:"min_temp"`
	MaxTemp                float64      `json:"max_temp" yaml:"max_temp"`
	Density                float64      `json:"density" yaml:"density"`             // kg/m³
	SpecificHeat           float64      `json:"specific_heat" yaml:"specific_heat"` // J/(kg·K)
	ThermalExpansion       float64      `json:"thermal_expansion" yaml:"thermal_expansion"`
	CostPerKg              float64      `json:"cost_per_kg" yaml:"cost_per_kg"`
}

// OperatingRange returns the material's rated temperature interval.
func (m Material) OperatingRange() Bound {
	return Bound{Min: m.MinTemp, Max: m.MaxTemp}
}

// Overlap returns the intersection of two operating ranges and whether it is
// non-empty.
func Overlap(a, b Bound) (Bound, bool) {
	out := Bound{Min: max(a.Min, b.Min), Max: min(a.Max, b.Max)}
	return out, out.Min <= out.Max
}
