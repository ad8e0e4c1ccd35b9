package model

import "time"

// TEGPerformance is an immutable snapshot of one conversion calculation.
type TEGPerformance struct {
	ConfigID              string    `json:"config_id"`
	ElectricalPower       float64   `json:"electrical_power"` // W
	Voltage               float64   `json:"voltage"`
	Current               float64   `json:"current"`
	Efficiency            float64   `json:"efficiency"`    // %
	PowerDensity          float64   `json:"power_density"` // W/kg
	HeatInput             float64   `json:"heat_input"`
	HeatRejected          float64   `json:"heat_rejected"`
	TemperatureDifference float64   `json:"temperature_difference"`
	InternalResistance    float64   `json:"internal_resistance"` // Ω
	LoadResistance        float64   `json:"load_resistance"`
	ThermalResistance     float64   `json:"thermal_resistance"` // K/W
	Reliability           float64   `json:"reliability"`        // %
	Lifespan              float64   `json:"lifespan"`           // h
	Timestamp             time.Time `json:"timestamp"`
}
