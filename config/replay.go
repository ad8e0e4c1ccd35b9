package config

import (
	"fmt"
	"time"
)

// ReplayConfig drives the serve command, which replays a scenario file on a
// fixed interval.
type ReplayConfig struct {
	Scenario        string `json:"scenario"`
	IntervalSeconds int    `json:"interval_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ReplayConfig) SetDefaults() {
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = 10
	}
}

// Validate checks the interval.
func (c ReplayConfig) Validate() error {
	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds must be positive")
	}
	return nil
}

// Interval returns the replay period.
func (c ReplayConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}
