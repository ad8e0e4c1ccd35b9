package recovery

import (
	"math"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// BrakingStatus reports the regenerative braking subsystem.
type BrakingStatus string

const (
	BrakingActive   BrakingStatus = "active"
	BrakingInactive BrakingStatus = "inactive"
	BrakingLimited  BrakingStatus = "limited"
	BrakingFault    BrakingStatus = "fault"
)

// TEGStatus reports the thermoelectric subsystem.
type TEGStatus string

const (
	TEGActive       TEGStatus = "active"
	TEGInactive     TEGStatus = "inactive"
	TEGThermalLimit TEGStatus = "thermal_limit"
	TEGFault        TEGStatus = "fault"
)

// ThermalStatus reports the thermal management subsystem.
type ThermalStatus string

const (
	ThermalOptimal       ThermalStatus = "optimal"
	ThermalActiveCooling ThermalStatus = "active_cooling"
	ThermalStress        ThermalStatus = "thermal_stress"
	ThermalEmergency     ThermalStatus = "emergency"
)

// limitedRatio is the regenerative ratio under which braking is reported as limited.
const limitedRatio = 0.3

// Diagnostics is a snapshot of subsystem health and the overall rollup.
type Diagnostics struct {
	Braking BrakingStatus `json:"braking"`
	TEG     TEGStatus     `json:"teg"`
	Thermal ThermalStatus `json:"thermal"`
	// OverallReliability is the mean TEG reliability (%) over history
	// entries where the TEG ran, 100 when it never did.
	OverallReliability float64 `json:"overall_reliability"`
	// OverallEfficiency is the mean system efficiency (%) over the history.
	OverallEfficiency float64 `json:"overall_efficiency"`
	// EnergySavings is the energy recovered since start, in Wh.
	EnergySavings float64   `json:"energy_savings"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HistoryEntry is one successful integrated braking calculation.
type HistoryEntry struct {
	Inputs  model.IntegratedBrakingInputs  `json:"inputs"`
	Outputs model.IntegratedBrakingOutputs `json:"outputs"`
	Braking BrakingStatus                  `json:"braking_status"`
	TEG     TEGStatus                      `json:"teg_status"`
	Thermal ThermalStatus                  `json:"thermal_status"`
}

// SystemStatus is the coordinator state exposed to callers.
type SystemStatus struct {
	Strategy       StrategyConfig                  `json:"strategy"`
	Vehicle        VehicleConfig                   `json:"vehicle"`
	Diagnostics    Diagnostics                     `json:"diagnostics"`
	TotalEvents    int                             `json:"total_events"`
	TEGActivations int                             `json:"teg_activations"`
	LastEvent      *model.IntegratedBrakingOutputs `json:"last_event,omitempty"`
}

func brakingStatusFor(intensity, ratio float64) BrakingStatus {
	switch {
	case intensity == 0:
		return BrakingInactive
	case math.IsNaN(ratio) || ratio < 0 || ratio > 1:
		return BrakingFault
	case ratio < limitedRatio:
		return BrakingLimited
	default:
		return BrakingActive
	}
}

func cloneOutputs(o model.IntegratedBrakingOutputs) model.IntegratedBrakingOutputs {
	if o.TEGPerformance != nil {
		p := *o.TEGPerformance
		o.TEGPerformance = &p
	}
	return o
}
