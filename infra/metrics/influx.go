package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/metrics"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/logger"
)

// InfluxSink writes braking events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordBrakingEvent writes the event as a braking_event point.
func (s *InfluxSink) RecordBrakingEvent(r coremetrics.BrakingRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("braking_event").
		AddTag("event_id", r.EventID).
		AddTag("teg_active", strconv.FormatBool(r.TEGActive))
	if r.TEGConfigID != "" {
		p = p.AddTag("teg_config_id", r.TEGConfigID)
	}
	p = p.AddTag("cooling_state", r.CoolingState).
		AddField("speed_kmh", round3(r.VehicleSpeed)).
		AddField("intensity", round3(r.BrakingIntensity)).
		AddField("braking_power_w", round3(r.BrakingPower)).
		AddField("regen_power_w", round3(r.RegenerativePower)).
		AddField("teg_power_w", round3(r.TEGPower)).
		AddField("recovered_power_w", round3(r.TotalRecoveredPower)).
		AddField("final_brake_temp_c", round3(r.FinalBrakeTemp)).
		AddField("system_efficiency", round3(r.SystemEfficiency)).
		AddField("teg_status", r.TEGStatus).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTEGPerformance writes a teg_performance point.
func (s *InfluxSink) RecordTEGPerformance(r coremetrics.TEGRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("teg_performance").
		AddTag("config_id", r.ConfigID).
		AddField("power_w", round3(r.ElectricalPower)).
		AddField("efficiency", round3(r.Efficiency)).
		AddField("delta_t", round3(r.TemperatureDifference)).
		AddField("reliability", round3(r.Reliability)).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSafetyEvent writes a safety_event point.
func (s *InfluxSink) RecordSafetyEvent(r coremetrics.SafetyRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("safety_event").
		AddTag("kind", r.Kind).
		AddField("value", round3(r.Value)).
		AddField("error", r.Error).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
