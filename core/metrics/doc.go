// Package metrics defines the sinks that observe braking events and TEG
// conversion results. Sinks like PromSink and InfluxSink live in
// infra/metrics and register themselves with RegisterMetricsSink; the factory
// returns a MultiSink automatically when multiple sinks are configured.
// Optional capabilities (TEGRecorder, SafetyRecorder) are discovered with
// type assertions.
package metrics
