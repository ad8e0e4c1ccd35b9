// Package journal persists integrated braking events for later inspection.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/events"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// Record captures one integrated braking calculation.
type Record struct {
	Timestamp     time.Time                      `json:"timestamp"`
	EventID       string                         `json:"event_id"`
	Inputs        model.IntegratedBrakingInputs  `json:"inputs"`
	Outputs       model.IntegratedBrakingOutputs `json:"outputs"`
	BrakingStatus string                         `json:"braking_status"`
	TEGStatus     string                         `json:"teg_status"`
	ThermalStatus string                         `json:"thermal_status"`
}

// RecordFrom converts a bus event to a journal record.
func RecordFrom(e events.BrakingEvent) Record {
	return Record{
		Timestamp:     e.Outputs.Timestamp,
		EventID:       e.Outputs.EventID,
		Inputs:        e.Inputs,
		Outputs:       e.Outputs,
		BrakingStatus: e.BrakingStatus,
		TEGStatus:     e.TEGStatus,
		ThermalStatus: e.ThermalStatus,
	}
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Start time.Time
	End   time.Time
	// TEGActive restricts the result to events with the given activation flag.
	TEGActive *bool
}

func (q Query) matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.TEGActive != nil && r.Outputs.TEGActive != *q.TEGActive {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// Config defines settings for journal storage and rotation.
type Config struct {
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend" yaml:"backend"`
	// Path is the file location of the store.
	Path string `json:"path" yaml:"path"`
	// MaxSizeMB enables rotation of the jsonl backend when positive.
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "braking.jsonl"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("journal: unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("journal: path is required")
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("journal: rotation limits must not be negative")
	}
	return nil
}

// Open creates the store selected by cfg.
func Open(cfg Config) (Store, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case cfg.Backend == "sqlite":
		return NewSQLiteStore(cfg.Path)
	case cfg.MaxSizeMB > 0:
		return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	default:
		return NewJSONLStore(cfg.Path)
	}
}
