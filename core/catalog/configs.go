package catalog

import (
	"sort"
	"sync"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/logger"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// ConfigCatalog stores validated TEG configurations keyed by id.
type ConfigCatalog struct {
	mu   sync.RWMutex
	data map[string]model.TEGConfiguration
	log  logger.Logger
}

// NewConfigCatalog returns an empty catalog. log may be nil.
func NewConfigCatalog(log logger.Logger) *ConfigCatalog {
	return &ConfigCatalog{data: map[string]model.TEGConfiguration{}, log: logger.OrNop(log)}
}

// DefaultConfigCatalog returns a catalog seeded with the built-in module
// designs, built from materials.
func DefaultConfigCatalog(materials *MaterialCatalog, log logger.Logger) (*ConfigCatalog, error) {
	c := NewConfigCatalog(log)
	defs, err := DefaultConfigurations(materials)
	if err != nil {
		return nil, err
	}
	for _, cfg := range defs {
		if _, err := c.Add(cfg); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates cfg and stores it. A configuration with hard violations or an
// id already present is rejected with a KindInvalidConfiguration error; the
// returned result carries any warnings of an admitted configuration.
func (c *ConfigCatalog) Add(cfg model.TEGConfiguration) (model.ValidationResult, error) {
	res := cfg.Validate()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.data[cfg.ID]; exists && cfg.ID != "" {
		res.AddError("configuration " + cfg.ID + " already registered")
	}
	if !res.Valid {
		return res, model.NewInvalidConfiguration(cfg.ID, res.Errors)
	}
	for _, w := range res.Warnings {
		c.log.Warnf("configuration %s: %s", cfg.ID, w)
	}
	if cfg.Wiring == "" {
		cfg.Wiring = model.WiringSeries
	}
	c.data[cfg.ID] = cfg
	return res, nil
}

// Get returns the configuration with the given id.
func (c *ConfigCatalog) Get(id string) (model.TEGConfiguration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.data[id]
	return cfg, ok
}

// Lookup is Get returning a KindConfigNotFound error for unknown ids.
func (c *ConfigCatalog) Lookup(id string) (model.TEGConfiguration, error) {
	cfg, ok := c.Get(id)
	if !ok {
		return model.TEGConfiguration{}, model.NewConfigNotFound(id)
	}
	return cfg, nil
}

// List returns all configurations sorted by id.
func (c *ConfigCatalog) List() []model.TEGConfiguration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]model.TEGConfiguration, 0, len(c.data))
	for _, cfg := range c.data {
		res = append(res, cfg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}
