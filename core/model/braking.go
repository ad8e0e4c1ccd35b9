package model

import "time"

// BrakingThermalInputs are the vehicle-level quantities fed to the thermal
// manager for one braking event. Powers are in W.
type BrakingThermalInputs struct {
	BrakeTemperature   float64 `json:"brake_temperature"`
	AmbientTemperature float64 `json:"ambient_temperature"`
	MotorTemperature   float64 `json:"motor_temperature"`
	BrakingPower       float64 `json:"braking_power"`
	RegenerativePower  float64 `json:"regenerative_power"`
	MechanicalPower    float64 `json:"mechanical_power"`
	HeatFlux           float64 `json:"heat_flux"`
	AirflowVelocity    float64 `json:"airflow_velocity"`
	BrakingDuration    float64 `json:"braking_duration"`
	VehicleSpeed       float64 `json:"vehicle_speed"` // km/h
	BrakingIntensity   float64 `json:"braking_intensity"`
}

// IntegratedBrakingInputs describe one braking event as seen by the coordinator.
type IntegratedBrakingInputs struct {
	VehicleSpeed       float64 `json:"vehicle_speed" yaml:"vehicle_speed"` // km/h
	BrakingIntensity   float64 `json:"braking_intensity" yaml:"braking_intensity"`
	BatterySOC         float64 `json:"battery_soc" yaml:"battery_soc"`
	MotorTemperature   float64 `json:"motor_temperature" yaml:"motor_temperature"`
	BrakeTemperature   float64 `json:"brake_temperature" yaml:"brake_temperature"`
	AmbientTemperature float64 `json:"ambient_temperature" yaml:"ambient_temperature"`
	AirflowVelocity    float64 `json:"airflow_velocity" yaml:"airflow_velocity"`
	BrakingDuration    float64 `json:"braking_duration" yaml:"braking_duration"`
	// VehicleMass in kg; zero selects the configured vehicle mass.
	VehicleMass float64 `json:"vehicle_mass,omitempty" yaml:"vehicle_mass,omitempty"`
}

// PowerDistribution splits recovered power between storage and direct use.
type PowerDistribution struct {
	Battery        float64 `json:"battery"`
	Supercapacitor float64 `json:"supercapacitor"`
	DirectUse      float64 `json:"direct_use"`
}

// Total is the sum of the three shares.
func (d PowerDistribution) Total() float64 {
	return d.Battery + d.Supercapacitor + d.DirectUse
}

// IntegratedBrakingOutputs is the merged result of one integrated call.
type IntegratedBrakingOutputs struct {
	EventID               string            `json:"event_id"`
	Timestamp             time.Time         `json:"timestamp"`
	MotorTorque           float64           `json:"motor_torque"`
	FrontAxleBrakingForce float64           `json:"front_axle_braking_force"`
	RegenerativeRatio     float64           `json:"regenerative_ratio"`
	BrakingPower          float64           `json:"braking_power"`
	MechanicalPower       float64           `json:"mechanical_power"`
	RegenerativePower     float64           `json:"regenerative_power"`
	TEGPower              float64           `json:"teg_power"`
	TotalRecoveredPower   float64           `json:"total_recovered_power"`
	TEGActive             bool              `json:"teg_active"`
	TEGConfigID           string            `json:"teg_config_id,omitempty"`
	TEGPerformance        *TEGPerformance   `json:"teg_performance,omitempty"`
	FinalBrakeTemperature float64           `json:"final_brake_temperature"`
	FinalMotorTemperature float64           `json:"final_motor_temperature"`
	TEGHotSideTemp        float64           `json:"teg_hot_side_temp"`
	TEGColdSideTemp       float64           `json:"teg_cold_side_temp"`
	CoolingState          string            `json:"cooling_state"`
	CoolingPower          float64           `json:"cooling_power"`
	HeatGenerated         float64           `json:"heat_generated"`
	HeatRejected          float64           `json:"heat_rejected"`
	Distribution          PowerDistribution `json:"distribution"`
	SystemEfficiency      float64           `json:"system_efficiency"` // %
	BrakingDuration       float64           `json:"braking_duration"`
}
