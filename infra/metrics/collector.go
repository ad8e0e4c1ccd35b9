package metrics

import (
	"context"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/events"
	coremetrics "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/metrics"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/monitoring"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/eventbus"
)

// BrakingRecordFrom converts a bus event to the sink record.
func BrakingRecordFrom(e events.BrakingEvent) coremetrics.BrakingRecord {
	o := e.Outputs
	return coremetrics.BrakingRecord{
		EventID:             o.EventID,
		VehicleSpeed:        e.Inputs.VehicleSpeed,
		BrakingIntensity:    e.Inputs.BrakingIntensity,
		BrakingPower:        o.BrakingPower,
		RegenerativePower:   o.RegenerativePower,
		TEGPower:            o.TEGPower,
		TotalRecoveredPower: o.TotalRecoveredPower,
		TEGActive:           o.TEGActive,
		TEGConfigID:         o.TEGConfigID,
		FinalBrakeTemp:      o.FinalBrakeTemperature,
		FinalMotorTemp:      o.FinalMotorTemperature,
		CoolingState:        o.CoolingState,
		CoolingPower:        o.CoolingPower,
		SystemEfficiency:    o.SystemEfficiency,
		Duration:            o.BrakingDuration,
		BrakingStatus:       e.BrakingStatus,
		TEGStatus:           e.TEGStatus,
		ThermalStatus:       e.ThermalStatus,
		Time:                o.Timestamp,
	}
}

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer monitoring.Recover()
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				collect(sink, ev)
			}
		}
	}()
}

func collect(sink coremetrics.MetricsSink, ev eventbus.Event) {
	switch e := ev.(type) {
	case events.BrakingEvent:
		_ = sink.RecordBrakingEvent(BrakingRecordFrom(e))
	case events.PerformanceEvent:
		if r, ok := sink.(coremetrics.TEGRecorder); ok {
			p := e.Performance
			_ = r.RecordTEGPerformance(coremetrics.TEGRecord{
				ConfigID:              e.ConfigID,
				ElectricalPower:       p.ElectricalPower,
				Efficiency:            p.Efficiency,
				TemperatureDifference: p.TemperatureDifference,
				Reliability:           p.Reliability,
				Time:                  p.Timestamp,
			})
		}
	case events.SafetyEvent:
		if r, ok := sink.(coremetrics.SafetyRecorder); ok {
			msg := ""
			if e.Err != nil {
				msg = e.Err.Error()
			}
			t := e.Time
			if t.IsZero() {
				t = time.Now()
			}
			_ = r.RecordSafetyEvent(coremetrics.SafetyRecord{Kind: e.Kind.String(), Value: e.Value, Error: msg, Time: t})
		}
	}
}
