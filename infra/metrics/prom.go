package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/metrics"
)

// PromSink records braking events and TEG results in Prometheus metrics.
type PromSink struct {
	events     *prometheus.CounterVec
	energy     *prometheus.CounterVec
	power      *prometheus.GaugeVec
	brakeTemp  prometheus.Gauge
	efficiency prometheus.Gauge
	tegPower   *prometheus.GaugeVec
	tegEff     *prometheus.GaugeVec
	safety     *prometheus.CounterVec
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// register registers c on reg, reusing an already registered collector of
// the same description.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.events, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scev_braking_events_total",
		Help: "Integrated braking events by subsystem status",
	}, []string{"braking_status", "teg_status", "thermal_status"})); err != nil {
		return nil, err
	}
	if s.energy, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scev_recovered_energy_wh_total",
		Help: "Energy recovered during braking",
	}, []string{"source"})); err != nil {
		return nil, err
	}
	if s.power, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scev_recovered_power_watts",
		Help: "Recovered power of the last braking event",
	}, []string{"source"})); err != nil {
		return nil, err
	}
	if s.brakeTemp, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scev_brake_temperature_celsius",
		Help: "Brake temperature at the end of the last braking event",
	})); err != nil {
		return nil, err
	}
	if s.efficiency, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scev_system_efficiency_percent",
		Help: "Share of braking power recovered in the last braking event",
	})); err != nil {
		return nil, err
	}
	if s.tegPower, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scev_teg_power_watts",
		Help: "Electrical power of the last TEG calculation",
	}, []string{"config_id"})); err != nil {
		return nil, err
	}
	if s.tegEff, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "scev_teg_efficiency_percent",
		Help: "Conversion efficiency of the last TEG calculation",
	}, []string{"config_id"})); err != nil {
		return nil, err
	}
	if s.safety, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scev_safety_events_total",
		Help: "Calculations rejected on a safety or range limit",
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordBrakingEvent updates counters and gauges for one braking event.
func (s *PromSink) RecordBrakingEvent(r coremetrics.BrakingRecord) error {
	s.events.WithLabelValues(r.BrakingStatus, r.TEGStatus, r.ThermalStatus).Inc()
	s.energy.WithLabelValues("regen").Add(r.RegenerativePower * r.Duration / 3600)
	s.energy.WithLabelValues("teg").Add(r.TEGPower * r.Duration / 3600)
	s.power.WithLabelValues("regen").Set(r.RegenerativePower)
	s.power.WithLabelValues("teg").Set(r.TEGPower)
	s.brakeTemp.Set(r.FinalBrakeTemp)
	s.efficiency.Set(r.SystemEfficiency)
	return nil
}

// RecordTEGPerformance sets the per-configuration TEG gauges.
func (s *PromSink) RecordTEGPerformance(r coremetrics.TEGRecord) error {
	s.tegPower.WithLabelValues(r.ConfigID).Set(r.ElectricalPower)
	s.tegEff.WithLabelValues(r.ConfigID).Set(r.Efficiency)
	return nil
}

// RecordSafetyEvent counts a safety rejection.
func (s *PromSink) RecordSafetyEvent(r coremetrics.SafetyRecord) error {
	s.safety.WithLabelValues(r.Kind).Inc()
	return nil
}
