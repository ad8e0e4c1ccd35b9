package metrics

import "time"

// BrakingRecord is one integrated braking event as seen by the sinks.
type BrakingRecord struct {
	EventID             string    `json:"event_id"`
	VehicleSpeed        float64   `json:"vehicle_speed"`         // km/h
	BrakingIntensity    float64   `json:"braking_intensity"`
	BrakingPower        float64   `json:"braking_power"`         // W
	RegenerativePower   float64   `json:"regenerative_power"`
	TEGPower            float64   `json:"teg_power"`
	TotalRecoveredPower float64   `json:"total_recovered_power"`
	TEGActive           bool      `json:"teg_active"`
	TEGConfigID         string    `json:"teg_config_id"`
	FinalBrakeTemp      float64   `json:"final_brake_temp"`      // °C
	FinalMotorTemp      float64   `json:"final_motor_temp"`
	CoolingState        string    `json:"cooling_state"`
	CoolingPower        float64   `json:"cooling_power"`
	SystemEfficiency    float64   `json:"system_efficiency"`     // %
	Duration            float64   `json:"duration"`              // s
	BrakingStatus       string    `json:"braking_status"`
	TEGStatus           string    `json:"teg_status"`
	ThermalStatus       string    `json:"thermal_status"`
	Time                time.Time `json:"time"`
}

// MetricsSink records braking events for observability purposes.
type MetricsSink interface {
	RecordBrakingEvent(rec BrakingRecord) error
}

// TEGRecord is a single conversion engine result.
type TEGRecord struct {
	ConfigID              string    `json:"config_id"`
	ElectricalPower       float64   `json:"electrical_power"`
	Efficiency            float64   `json:"efficiency"`
	TemperatureDifference float64   `json:"temperature_difference"`
	Reliability           float64   `json:"reliability"`
	Time                  time.Time `json:"time"`
}

// TEGRecorder records conversion engine results.
type TEGRecorder interface {
	RecordTEGPerformance(rec TEGRecord) error
}

// SafetyRecord describes a calculation rejected on a safety or range limit.
type SafetyRecord struct {
	Kind  string    `json:"kind"`
	Value float64   `json:"value"`
	Error string    `json:"error"`
	Time  time.Time `json:"time"`
}

// SafetyRecorder records safety rejections.
type SafetyRecorder interface {
	RecordSafetyEvent(rec SafetyRecord) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordBrakingEvent(BrakingRecord) error { return nil }
func (NopSink) RecordTEGPerformance(TEGRecord) error   { return nil }
func (NopSink) RecordSafetyEvent(SafetyRecord) error   { return nil }
