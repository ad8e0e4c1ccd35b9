// Package catalog holds the keyed registries of thermoelectric materials and
// TEG module designs. Registries are owned values passed to the engines; there
// is no package-level state.
package catalog

import (
	"sort"
	"sync"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// MaterialCatalog stores materials keyed by name.
type MaterialCatalog struct {
	mu   sync.RWMutex
	data map[string]model.Material
}

// NewMaterialCatalog returns an empty catalog.
func NewMaterialCatalog() *MaterialCatalog {
	return &MaterialCatalog{data: map[string]model.Material{}}
}

// DefaultMaterialCatalog returns a catalog seeded with the built-in materials.
func DefaultMaterialCatalog() *MaterialCatalog {
	c := NewMaterialCatalog()
	for _, m := range DefaultMaterials() {
		c.Add(m)
	}
	return c
}

// Add stores the material under its name. No validation is applied.
func (c *MaterialCatalog) Add(m model.Material) {
	c.mu.Lock()
	c.data[m.Name] = m
	c.mu.Unlock()
}

// Get returns the material with the given name.
func (c *MaterialCatalog) Get(name string) (model.Material, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.data[name]
	return m, ok
}

// List returns all materials sorted by name.
func (c *MaterialCatalog) List() []model.Material {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]model.Material, 0, len(c.data))
	for _, m := range c.data {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Pair looks up a p-type and an n-type material by name.
func (c *MaterialCatalog) Pair(p, n string) (model.MaterialPair, bool) {
	pm, okP := c.Get(p)
	nm, okN := c.Get(n)
	return model.MaterialPair{P: pm, N: nm}, okP && okN
}
