package metrics

import "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	// PrometheusPort serves /metrics when a prometheus sink is configured.
	PrometheusPort string `json:"prometheus_port" yaml:"prometheus_port"`
}
