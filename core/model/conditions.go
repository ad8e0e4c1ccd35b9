package model

// ThermalConditions are the operating conditions of one TEG calculation.
// Temperatures are in °C.
type ThermalConditions struct {
	HotSideTemp      float64 `json:"hot_side_temp" yaml:"hot_side_temp"`
	ColdSideTemp     float64 `json:"cold_side_temp" yaml:"cold_side_temp"`
	AmbientTemp      float64 `json:"ambient_temp" yaml:"ambient_temp"`
	HeatFlux         float64 `json:"heat_flux" yaml:"heat_flux"` // W/m²
	HotConvection    float64 `json:"hot_convection" yaml:"hot_convection"`
	ColdConvection   float64 `json:"cold_convection" yaml:"cold_convection"`
	AirflowVelocity  float64 `json:"airflow_velocity" yaml:"airflow_velocity"` // m/s
	AirflowTemp      float64 `json:"airflow_temp" yaml:"airflow_temp"`
	BrakingDuration  float64 `json:"braking_duration" yaml:"braking_duration"` // s
	BrakingIntensity float64 `json:"braking_intensity" yaml:"braking_intensity"`
}

// TemperatureDifference is hot side minus cold side.
func (c ThermalConditions) TemperatureDifference() float64 {
	return c.HotSideTemp - c.ColdSideTemp
}
