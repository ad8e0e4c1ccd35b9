package teg

import "fmt"

// Config tunes the conversion engine.
type Config struct {
	// SafetyCeiling is the absolute hot-side limit in °C enforced when thermal
	// protection is requested.
	SafetyCeiling float64 `json:"safety_ceiling"`
	// HistorySize bounds the performance history.
	HistorySize int `json:"history_size"`
	// OptimizerBudget caps the candidates visited by OptimizeConfiguration.
	OptimizerBudget int `json:"optimizer_budget"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.SafetyCeiling == 0 {
		c.SafetyCeiling = 300
	}
	if c.HistorySize == 0 {
		c.HistorySize = 1000
	}
	if c.OptimizerBudget == 0 {
		c.OptimizerBudget = 100
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.SafetyCeiling <= 0 {
		return fmt.Errorf("engine: safety ceiling must be positive")
	}
	if c.HistorySize < 0 || c.OptimizerBudget < 0 {
		return fmt.Errorf("engine: history size and optimizer budget must not be negative")
	}
	return nil
}
