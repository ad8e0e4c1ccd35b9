package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/events"
	coremetrics "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/metrics"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/eventbus"
)

type recordingSink struct {
	mu      sync.Mutex
	braking []coremetrics.BrakingRecord
	teg     []coremetrics.TEGRecord
	safety  []coremetrics.SafetyRecord
}

func (r *recordingSink) RecordBrakingEvent(rec coremetrics.BrakingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.braking = append(r.braking, rec)
	return nil
}

func (r *recordingSink) RecordTEGPerformance(rec coremetrics.TEGRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teg = append(r.teg, rec)
	return nil
}

func (r *recordingSink) RecordSafetyEvent(rec coremetrics.SafetyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.safety = append(r.safety, rec)
	return nil
}

func (r *recordingSink) counts() (int, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.braking), len(r.teg), len(r.safety)
}

func TestBrakingRecordFrom(t *testing.T) {
	now := time.Now()
	rec := BrakingRecordFrom(events.BrakingEvent{
		Inputs: model.IntegratedBrakingInputs{VehicleSpeed: 60, BrakingIntensity: 0.5},
		Outputs: model.IntegratedBrakingOutputs{
			EventID:               "e1",
			Timestamp:             now,
			RegenerativePower:     1000,
			TEGPower:              2,
			TotalRecoveredPower:   1002,
			TEGActive:             true,
			FinalBrakeTemperature: 150,
			BrakingDuration:       3,
		},
		BrakingStatus: "high_performance",
		TEGStatus:     "active",
		ThermalStatus: "optimal",
	})
	assert.Equal(t, "e1", rec.EventID)
	assert.Equal(t, 60.0, rec.VehicleSpeed)
	assert.Equal(t, 0.5, rec.BrakingIntensity)
	assert.Equal(t, 1002.0, rec.TotalRecoveredPower)
	assert.Equal(t, 150.0, rec.FinalBrakeTemp)
	assert.Equal(t, 3.0, rec.Duration)
	assert.Equal(t, "optimal", rec.ThermalStatus)
	assert.Equal(t, now, rec.Time)
}

func TestEventCollectorDispatchesByType(t *testing.T) {
	bus := eventbus.New()
	sink := &recordingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartEventCollector(ctx, bus, sink)

	bus.Publish(events.BrakingEvent{Outputs: model.IntegratedBrakingOutputs{EventID: "e1"}})
	bus.Publish(events.PerformanceEvent{ConfigID: "disc_brake_teg", Performance: model.TEGPerformance{ElectricalPower: 4.9}})
	bus.Publish(events.SafetyEvent{Kind: model.KindEmergencyShutdown, Err: errors.New("hot"), Value: 460})
	bus.Publish("ignored")

	require.Eventually(t, func() bool {
		b, tg, s := sink.counts()
		return b == 1 && tg == 1 && s == 1
	}, time.Second, 10*time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, "disc_brake_teg", sink.teg[0].ConfigID)
	assert.Equal(t, 4.9, sink.teg[0].ElectricalPower)
	assert.Equal(t, "emergency_shutdown", sink.safety[0].Kind)
	assert.Equal(t, "hot", sink.safety[0].Error)
	assert.False(t, sink.safety[0].Time.IsZero())
}

func TestEventCollectorSkipsOptionalRecorders(t *testing.T) {
	bus := eventbus.New()
	sink := &brakingOnlySink{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartEventCollector(ctx, bus, sink)

	bus.Publish(events.SafetyEvent{Kind: model.KindUnsafeTemperature})
	bus.Publish(events.BrakingEvent{})
	require.Eventually(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return sink.n == 1
	}, time.Second, 10*time.Millisecond)
}

type brakingOnlySink struct {
	mu sync.Mutex
	n  int
}

func (b *brakingOnlySink) RecordBrakingEvent(coremetrics.BrakingRecord) error {
	b.mu.Lock()
	b.n++
	b.mu.Unlock()
	return nil
}

func TestStartEventCollectorNilArgs(t *testing.T) {
	StartEventCollector(context.Background(), nil, &recordingSink{})
	StartEventCollector(context.Background(), eventbus.New(), nil)
}
