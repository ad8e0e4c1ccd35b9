// Package teg computes the electrical performance of brake-mounted
// thermoelectric generator modules and searches their design space.
package teg

import (
	"math"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/catalog"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/events"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/logger"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/eventbus"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/ring"
)

// OperatingMode selects how the electrical load is matched to the module.
type OperatingMode string

const (
	MaximumPower      OperatingMode = "maximum_power"
	MaximumEfficiency OperatingMode = "maximum_efficiency"
	ConstantVoltage   OperatingMode = "constant_voltage"
)

// PowerRequest is the input of CalculatePower.
type PowerRequest struct {
	ConfigID   string
	Conditions model.ThermalConditions
	// LoadResistance overrides the mode-derived load when positive.
	LoadResistance    float64
	Mode              OperatingMode
	CoolingActive     bool
	ThermalProtection bool
}

// Engine is the TEG conversion engine. It is meant to be driven by a single
// caller; history writes are serialized but calculations are not.
type Engine struct {
	cfg     Config
	configs *catalog.ConfigCatalog
	history *ring.Buffer[model.TEGPerformance]
	log     logger.Logger
	bus     eventbus.EventBus
	now     func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option { return func(e *Engine) { e.log = logger.OrNop(l) } }

// WithEventBus publishes a PerformanceEvent after each successful calculation.
func WithEventBus(b eventbus.EventBus) Option { return func(e *Engine) { e.bus = b } }

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// NewEngine returns an engine reading module designs from configs.
func NewEngine(cfg Config, configs *catalog.ConfigCatalog, opts ...Option) *Engine {
	cfg.SetDefaults()
	e := &Engine{
		cfg:     cfg,
		configs: configs,
		history: ring.New[model.TEGPerformance](cfg.HistorySize),
		log:     logger.Nop{},
		now:     time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Config returns the engine settings.
func (e *Engine) Config() Config { return e.cfg }

// Configurations exposes the configuration catalog.
func (e *Engine) Configurations() *catalog.ConfigCatalog { return e.configs }

// AddConfiguration validates and registers a module design.
func (e *Engine) AddConfiguration(cfg model.TEGConfiguration) (model.ValidationResult, error) {
	return e.configs.Add(cfg)
}

// CalculatePower computes the electrical performance of a configured module
// under the given conditions and appends it to the history. A failed call
// leaves the history untouched.
func (e *Engine) CalculatePower(req PowerRequest) (model.TEGPerformance, error) {
	cfg, err := e.configs.Lookup(req.ConfigID)
	if err != nil {
		return model.TEGPerformance{}, err
	}
	if !finite(req.LoadResistance) {
		return model.TEGPerformance{}, model.NewOutOfRange("load resistance", req.LoadResistance, 0, math.MaxFloat64)
	}
	cond := req.Conditions
	if req.ThermalProtection {
		if cond.HotSideTemp > e.cfg.SafetyCeiling {
			return model.TEGPerformance{}, model.NewUnsafeTemperature(cond.HotSideTemp, e.cfg.SafetyCeiling)
		}
		if rng, ok := cfg.Materials.OperatingRange(); ok && cond.HotSideTemp >= 0.9*rng.Max {
			e.log.Warnf("%s: hot side %.1f°C above 90%% of material limit %.0f°C", cfg.ID, cond.HotSideTemp, rng.Max)
		}
	}
	res := ValidateThermalConditions(cfg, cond)
	if !res.Valid {
		return model.TEGPerformance{}, model.NewInvalidThermalConditions(res.Errors)
	}
	for _, w := range res.Warnings {
		e.log.Warnf("%s: %s", cfg.ID, w)
	}

	perf := e.evaluate(cfg, cond, req.Mode, req.LoadResistance, req.CoolingActive)
	e.history.Push(perf)
	e.log.Debugw("teg performance", map[string]any{
		"config_id":  cfg.ID,
		"power_w":    perf.ElectricalPower,
		"efficiency": perf.Efficiency,
		"delta_t":    perf.TemperatureDifference,
	})
	if e.bus != nil {
		e.bus.Publish(events.PerformanceEvent{ConfigID: cfg.ID, Performance: perf})
	}
	return perf, nil
}

// evaluate runs the conversion model without validation or side effects.
func (e *Engine) evaluate(cfg model.TEGConfiguration, cond model.ThermalConditions, mode OperatingMode, loadOverride float64, coolingActive bool) model.TEGPerformance {
	st := evaluateModule(cfg, cond, coolingActive)
	pairs := float64(cfg.PairCount)

	load := loadFor(mode, st.internalR)
	if loadOverride > 0 {
		load = loadOverride
	}
	voc := st.seebeckPair * st.deltaT * pairs
	current := voc / (st.internalR + load)
	voltage := current * load
	power := voltage * current

	peltier := st.seebeckPair * pairs * current * (st.effHot + kelvinOffset)
	conduction := st.conductance * st.deltaT
	joule := 0.5 * current * current * st.internalR
	heatIn := peltier + conduction + joule

	eff := 0.0
	if heatIn > 0 {
		eff = clamp(power/heatIn*100, 0, 100)
	}
	density := 0.0
	if st.mass > 0 {
		density = power / st.mass
	}
	thermalR := 0.0
	if st.conductance > 0 {
		thermalR = 1 / st.conductance
	}
	maxRated := cfg.Materials.P.MaxTemp
	if rng, ok := cfg.Materials.OperatingRange(); ok {
		maxRated = rng.Max
	}

	return model.TEGPerformance{
		ConfigID:              cfg.ID,
		ElectricalPower:       power,
		Voltage:               voltage,
		Current:               current,
		Efficiency:            eff,
		PowerDensity:          density,
		HeatInput:             heatIn,
		HeatRejected:          heatIn - power,
		TemperatureDifference: st.deltaT,
		InternalResistance:    st.internalR,
		LoadResistance:        load,
		ThermalResistance:     thermalR,
		Reliability:           reliability(st.effHot, maxRated, cond.BrakingDuration, st.factors.resistance) * 100,
		Lifespan:              lifespan(st.effHot, cond.BrakingDuration, cfg.Materials),
		Timestamp:             e.now(),
	}
}

// History returns a copy of the performance history, oldest first.
func (e *Engine) History() []model.TEGPerformance { return e.history.Snapshot() }

// LastPerformance returns the most recent successful calculation.
func (e *Engine) LastPerformance() (model.TEGPerformance, bool) { return e.history.Last() }
