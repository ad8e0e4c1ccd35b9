package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/journal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/metrics"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/recovery"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/teg"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/thermal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/monitoring"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/mqtt"
)

type Config struct {
	Engine   teg.Config              `json:"engine"`
	Thermal  thermal.Config          `json:"thermal"`
	Strategy recovery.StrategyConfig `json:"strategy"`
	Vehicle  recovery.VehicleConfig  `json:"vehicle"`
	Metrics  metrics.Config          `json:"metrics"`
	Journal  journal.Config          `json:"journal"`
	Sentry   monitoring.Config       `json:"sentry"`
	// MQTT enables remote strategy updates when a broker is set.
	MQTT   mqtt.Config  `json:"mqtt"`
	API    APIConfig    `json:"api"`
	Replay ReplayConfig `json:"replay"`
}

// Default returns a configuration with every section defaulted.
func Default() *Config {
	cfg := &Config{Strategy: recovery.DefaultStrategy()}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Engine.SetDefaults()
	c.Thermal.SetDefaults()
	c.Vehicle.SetDefaults()
	c.Journal.SetDefaults()
	c.Replay.SetDefaults()
	if c.MQTT.Broker != "" {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"engine", c.Engine.Validate},
		{"thermal", c.Thermal.Validate},
		{"strategy", c.Strategy.Validate},
		{"vehicle", c.Vehicle.Validate},
		{"journal", c.Journal.Validate},
		{"replay", c.Replay.Validate},
	}
	for _, ch := range checks {
		if err := ch.fn(); err != nil {
			return fmt.Errorf("%s: %w", ch.name, err)
		}
	}
	if c.MQTT.Broker != "" {
		if err := c.MQTT.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a YAML or JSON file, applies K_SECTION__KEY environment
// overrides, then defaults and validation. Strategy fields absent from the
// file keep the built-in strategy.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Config{Strategy: recovery.DefaultStrategy()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
