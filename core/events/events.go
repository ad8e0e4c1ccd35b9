package events

import (
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// PerformanceEvent is published for each successful CalculatePower call.
type PerformanceEvent struct {
	ConfigID    string
	Performance model.TEGPerformance
}

// BrakingEvent is published for each successful integrated braking calculation.
type BrakingEvent struct {
	Inputs        model.IntegratedBrakingInputs
	Outputs       model.IntegratedBrakingOutputs
	BrakingStatus string
	TEGStatus     string
	ThermalStatus string
}

// SafetyEvent is published when a call fails on a safety limit.
type SafetyEvent struct {
	Kind  model.ErrorKind
	Err   error
	Value float64
	Time  time.Time
}
