// Package recovery coordinates regenerative braking, thermal management and
// TEG harvesting for each braking event, distributes the recovered power and
// keeps the diagnostics of the energy-recovery system.
package recovery

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/catalog"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/events"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/logger"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/monitoring"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/regen"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/teg"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/thermal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/eventbus"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/ring"
)

const (
	gravity = 9.81

	// Convection coefficients reported to the engine for the TEG faces.
	tegHotConvection  = 50.0
	tegColdConvection = 25.0

	historySize = 1000
)

// Validated input ranges.
var (
	brakeTempRange   = model.Bound{Min: -40, Max: 500}
	ambientTempRange = model.Bound{Min: -40, Max: 60}
	airflowRange     = model.Bound{Min: 0, Max: 100}
	motorTempRange   = model.Bound{Min: -40, Max: 200}
	unitRange        = model.Bound{Min: 0, Max: 1}
	nonNegative      = model.Bound{Min: 0, Max: math.MaxFloat64} // also rejects NaN and ±Inf
)

// Coordinator is the energy-recovery coordinator. Calls are serialized; the
// diagnostics, status and history accessors return copies.
type Coordinator struct {
	mu sync.RWMutex

	vehicle  VehicleConfig
	strategy StrategyConfig

	engine     *teg.Engine
	thermal    *thermal.Manager
	controller regen.Controller

	history        *ring.Buffer[HistoryEntry]
	diagnostics    Diagnostics
	totalEvents    int
	tegActivations int
	energyWh       float64

	log   logger.Logger
	bus   eventbus.EventBus
	now   func() time.Time
	newID func() string
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the coordinator logger.
func WithLogger(l logger.Logger) Option { return func(c *Coordinator) { c.log = logger.OrNop(l) } }

// WithEventBus publishes BrakingEvent and SafetyEvent values on b.
func WithEventBus(b eventbus.EventBus) Option { return func(c *Coordinator) { c.bus = b } }

// WithController replaces the reference regenerative-braking controller.
func WithController(ctrl regen.Controller) Option {
	return func(c *Coordinator) {
		if ctrl != nil {
			c.controller = ctrl
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option { return func(c *Coordinator) { c.now = now } }

// WithStrategy sets the initial strategy.
func WithStrategy(s StrategyConfig) Option { return func(c *Coordinator) { c.strategy = s } }

// NewCoordinator wires a coordinator around the engine and thermal manager.
func NewCoordinator(vehicle VehicleConfig, engine *teg.Engine, tm *thermal.Manager, opts ...Option) *Coordinator {
	vehicle.SetDefaults()
	c := &Coordinator{
		vehicle:    vehicle,
		strategy:   DefaultStrategy(),
		engine:     engine,
		thermal:    tm,
		controller: regen.NewSimpleController(vehicle.Regen),
		history:    ring.New[HistoryEntry](historySize),
		log:        logger.Nop{},
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	c.diagnostics = Diagnostics{
		Braking:            BrakingInactive,
		TEG:                TEGInactive,
		Thermal:            ThermalOptimal,
		OverallReliability: 100,
		UpdatedAt:          c.now(),
	}
	return c
}

// ShouldActivateTEG is the activation gate: the brake must be at least at
// the temperature threshold, the friction share of braking at least the
// intensity threshold and the event at least the duration threshold.
func ShouldActivateTEG(s StrategyConfig, in model.IntegratedBrakingInputs, regenRatio float64) bool {
	return in.BrakeTemperature >= s.TemperatureThreshold &&
		1-regenRatio >= s.IntensityThreshold &&
		in.BrakingDuration >= s.DurationThreshold
}

// SelectConfiguration picks the module design for the brake temperature.
func SelectConfiguration(brakeTemp float64) string {
	switch {
	case brakeTemp > 200:
		return catalog.HighPerformanceTEG
	case brakeTemp > 150:
		return catalog.CaliperTEG
	default:
		return catalog.DiscBrakeTEG
	}
}

// Distribute splits total recovered power according to the strategy.
func Distribute(s StrategyConfig, total float64) model.PowerDistribution {
	if !s.PrioritizeBattery {
		return model.PowerDistribution{Battery: 0.4 * total, Supercapacitor: 0.3 * total, DirectUse: 0.3 * total}
	}
	d := model.PowerDistribution{Battery: 0.7 * total}
	rest := total - d.Battery
	if s.EnableBuffering {
		d.Supercapacitor = 0.8 * rest
		d.DirectUse = rest - d.Supercapacitor
	} else {
		d.DirectUse = rest
	}
	return d
}

func validateInputs(in model.IntegratedBrakingInputs) error {
	if !brakeTempRange.Contains(in.BrakeTemperature) {
		err := model.NewOutOfRange("brake temperature", in.BrakeTemperature, brakeTempRange.Min, brakeTempRange.Max)
		if in.BrakeTemperature > brakeTempRange.Max {
			err.Msg = fmt.Sprintf("brake temperature %g°C exceeds safety limit: outside range %s", in.BrakeTemperature, brakeTempRange)
		}
		return err
	}
	if !ambientTempRange.Contains(in.AmbientTemperature) {
		return model.NewOutOfRange("ambient temperature", in.AmbientTemperature, ambientTempRange.Min, ambientTempRange.Max)
	}
	if !airflowRange.Contains(in.AirflowVelocity) {
		return model.NewOutOfRange("airflow velocity", in.AirflowVelocity, airflowRange.Min, airflowRange.Max)
	}
	checks := []struct {
		field string
		value float64
		bound model.Bound
	}{
		{"braking intensity", in.BrakingIntensity, unitRange},
		{"vehicle speed", in.VehicleSpeed, nonNegative},
		{"braking duration", in.BrakingDuration, nonNegative},
		{"battery soc", in.BatterySOC, unitRange},
		{"motor temperature", in.MotorTemperature, motorTempRange},
		{"vehicle mass", in.VehicleMass, nonNegative},
	}
	for _, ch := range checks {
		if !ch.bound.Contains(ch.value) {
			return model.NewOutOfRange(ch.field, ch.value, ch.bound.Min, ch.bound.Max)
		}
	}
	return nil
}

// CalculateIntegratedBraking evaluates one braking event: the controller
// splits braking between motor and friction brakes, the thermal manager
// estimates heat and temperatures and, when the strategy allows it, the TEG
// engine converts brake heat. A failed call leaves history and diagnostics
// untouched.
func (c *Coordinator) CalculateIntegratedBraking(in model.IntegratedBrakingInputs) (model.IntegratedBrakingOutputs, error) {
	if err := validateInputs(in); err != nil {
		c.reportSafety(err, in.BrakeTemperature)
		return model.IntegratedBrakingOutputs{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.strategy

	mass := in.VehicleMass
	if mass <= 0 {
		mass = c.vehicle.Mass
	}
	ctrl := c.controller.Calculate(regen.Inputs{
		DrivingSpeed:     in.VehicleSpeed,
		BrakingIntensity: in.BrakingIntensity,
		BatterySOC:       in.BatterySOC,
		MotorTemperature: in.MotorTemperature,
	})
	brakingStatus := brakingStatusFor(in.BrakingIntensity, ctrl.RegenerativeBrakingRatio)
	ratio := ctrl.RegenerativeBrakingRatio
	if math.IsNaN(ratio) {
		ratio = 0
	}
	ratio = math.Max(0, math.Min(1, ratio))

	brakingPower := mass * gravity * in.BrakingIntensity * in.VehicleSpeed / 3.6
	mechanical := brakingPower * (1 - ratio)
	regenerative := brakingPower * ratio * c.vehicle.RegenEfficiency
	thermalIn := model.BrakingThermalInputs{
		BrakeTemperature:   in.BrakeTemperature,
		AmbientTemperature: in.AmbientTemperature,
		MotorTemperature:   in.MotorTemperature,
		BrakingPower:       brakingPower,
		RegenerativePower:  regenerative,
		MechanicalPower:    mechanical,
		HeatFlux:           mechanical / c.vehicle.BrakeSurfaceArea,
		AirflowVelocity:    in.AirflowVelocity,
		BrakingDuration:    in.BrakingDuration,
		VehicleSpeed:       in.VehicleSpeed,
		BrakingIntensity:   in.BrakingIntensity,
	}

	tegStatus := TEGInactive
	activate := s.TEGEnabled && brakingPower > 0 && ShouldActivateTEG(s, in, ratio)
	if activate && in.BrakeTemperature >= s.TEGShutdownTemp {
		c.log.Warnf("brake temperature %.1f°C at TEG shutdown limit %.0f°C; TEG held off", in.BrakeTemperature, s.TEGShutdownTemp)
		activate = false
		tegStatus = TEGThermalLimit
	}

	th, err := c.thermal.Manage(thermalIn, c.coolingMode(s, in.BrakeTemperature), activate)
	if err != nil {
		c.reportSafety(err, in.BrakeTemperature)
		return model.IntegratedBrakingOutputs{}, err
	}

	out := model.IntegratedBrakingOutputs{
		EventID:               c.newID(),
		Timestamp:             c.now(),
		MotorTorque:           ctrl.MotorTorque,
		FrontAxleBrakingForce: ctrl.FrontAxleBrakingForce,
		RegenerativeRatio:     ratio,
		BrakingPower:          brakingPower,
		MechanicalPower:       mechanical,
		RegenerativePower:     regenerative,
		FinalBrakeTemperature: th.FinalBrakeTemperature,
		FinalMotorTemperature: th.FinalMotorTemperature,
		TEGHotSideTemp:        th.TEGHotSideTemp,
		TEGColdSideTemp:       th.TEGColdSideTemp,
		CoolingState:          string(th.CoolingState),
		CoolingPower:          th.CoolingPower,
		HeatGenerated:         th.HeatGeneration,
		HeatRejected:          th.HeatRejected,
		BrakingDuration:       in.BrakingDuration,
	}

	if activate {
		out.TEGConfigID = SelectConfiguration(in.BrakeTemperature)
		perf, err := c.engine.CalculatePower(teg.PowerRequest{
			ConfigID: out.TEGConfigID,
			Conditions: model.ThermalConditions{
				HotSideTemp:      th.TEGHotSideTemp,
				ColdSideTemp:     th.TEGColdSideTemp,
				AmbientTemp:      in.AmbientTemperature,
				HeatFlux:         thermalIn.HeatFlux,
				HotConvection:    tegHotConvection,
				ColdConvection:   tegColdConvection,
				AirflowVelocity:  in.AirflowVelocity,
				AirflowTemp:      in.AmbientTemperature,
				BrakingDuration:  in.BrakingDuration,
				BrakingIntensity: in.BrakingIntensity,
			},
			Mode:              teg.MaximumPower,
			CoolingActive:     th.CoolingState == thermal.CoolingActive || th.CoolingState == thermal.CoolingEmergency,
			ThermalProtection: true,
		})
		switch {
		case err == nil:
			out.TEGActive = true
			out.TEGPerformance = &perf
			out.TEGPower = math.Min(s.MaxTEGPower, perf.ElectricalPower*float64(c.vehicle.TEGModules))
			tegStatus = TEGActive
		case errors.Is(err, model.ErrUnsafeTemperature):
			c.log.Warnf("TEG %s held at thermal limit: %v", out.TEGConfigID, err)
			c.reportSafety(err, th.TEGHotSideTemp)
			tegStatus = TEGThermalLimit
		default:
			c.log.Warnf("TEG %s fault: %v", out.TEGConfigID, err)
			tegStatus = TEGFault
		}
	}

	out.TotalRecoveredPower = out.RegenerativePower + out.TEGPower
	out.Distribution = Distribute(s, out.TotalRecoveredPower)
	if denom := out.MechanicalPower + out.TotalRecoveredPower; denom > 0 {
		out.SystemEfficiency = out.TotalRecoveredPower / denom * 100
	}

	entry := HistoryEntry{
		Inputs:  in,
		Outputs: out,
		Braking: brakingStatus,
		TEG:     tegStatus,
		Thermal: c.thermalStatus(th),
	}
	c.record(entry)
	c.log.Debugw("integrated braking", map[string]any{
		"event_id":        out.EventID,
		"recovered_w":     out.TotalRecoveredPower,
		"teg_w":           out.TEGPower,
		"teg_status":      string(tegStatus),
		"cooling_state":   out.CoolingState,
		"final_brake_c":   out.FinalBrakeTemperature,
		"system_eff_pct":  out.SystemEfficiency,
		"braking_status":  string(brakingStatus),
		"thermal_status":  string(entry.Thermal),
		"regen_ratio":     ratio,
		"braking_power_w": brakingPower,
	})
	if c.bus != nil {
		c.bus.Publish(events.BrakingEvent{
			Inputs:        in,
			Outputs:       cloneOutputs(out),
			BrakingStatus: string(brakingStatus),
			TEGStatus:     string(tegStatus),
			ThermalStatus: string(entry.Thermal),
		})
	}
	return cloneOutputs(out), nil
}

// coolingMode runs the loop passive below the cooling activation temperature
// and adaptive from the maximum brake temperature on.
func (c *Coordinator) coolingMode(s StrategyConfig, brakeTemp float64) thermal.Mode {
	switch {
	case s.MaxBrakeTemp > 0 && brakeTemp >= s.MaxBrakeTemp:
		return thermal.ModeAdaptive
	case brakeTemp >= s.CoolingActivationTemp:
		return thermal.ParseMode(string(s.CoolingMode))
	default:
		return thermal.ModePassive
	}
}

func (c *Coordinator) thermalStatus(th thermal.Outputs) ThermalStatus {
	switch th.CoolingState {
	case thermal.CoolingEmergency:
		return ThermalEmergency
	case thermal.CoolingActive:
		return ThermalActiveCooling
	}
	if th.FinalBrakeTemperature > c.thermal.Config().OptimalMax {
		return ThermalStress
	}
	return ThermalOptimal
}

// record appends the entry and refreshes the status part of the
// diagnostics. Callers hold c.mu.
func (c *Coordinator) record(e HistoryEntry) {
	c.history.Push(e)
	c.totalEvents++
	if e.Outputs.TEGActive {
		c.tegActivations++
	}
	c.energyWh += e.Outputs.TotalRecoveredPower * e.Outputs.BrakingDuration / 3600
	c.diagnostics.Braking = e.Braking
	c.diagnostics.TEG = e.TEG
	c.diagnostics.Thermal = e.Thermal
	c.diagnostics.EnergySavings = c.energyWh
	c.diagnostics.UpdatedAt = e.Outputs.Timestamp
}

// rollup fills the history means into d.
func (c *Coordinator) rollup(d Diagnostics) Diagnostics {
	entries := c.history.Snapshot()
	if len(entries) == 0 {
		return d
	}
	effs := make([]float64, 0, len(entries))
	var rels []float64
	for _, h := range entries {
		effs = append(effs, h.Outputs.SystemEfficiency)
		if h.Outputs.TEGActive && h.Outputs.TEGPerformance != nil {
			rels = append(rels, h.Outputs.TEGPerformance.Reliability)
		}
	}
	d.OverallEfficiency = stat.Mean(effs, nil)
	d.OverallReliability = 100
	if len(rels) > 0 {
		d.OverallReliability = stat.Mean(rels, nil)
	}
	return d
}

func (c *Coordinator) reportSafety(err error, value float64) {
	kind := model.KindOf(err)
	if kind != model.KindUnsafeTemperature && kind != model.KindEmergencyShutdown && kind != model.KindValueOutOfRange {
		return
	}
	if kind != model.KindValueOutOfRange {
		monitoring.CaptureSafety("recovery", err, value)
	}
	if c.bus != nil {
		c.bus.Publish(events.SafetyEvent{Kind: kind, Err: err, Value: value, Time: c.now()})
	}
}

// UpdateStrategy applies a partial strategy update. The merged strategy is
// validated before it replaces the current one.
func (c *Coordinator) UpdateStrategy(u StrategyUpdate) (StrategyConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := u.Apply(c.strategy)
	if err := next.Validate(); err != nil {
		return c.strategy, err
	}
	c.strategy = next
	c.log.Infof("energy recovery strategy updated: teg_enabled=%t threshold=%.0f°C", next.TEGEnabled, next.TemperatureThreshold)
	return next, nil
}

// Strategy returns the current strategy.
func (c *Coordinator) Strategy() StrategyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.strategy
}

// Diagnostics returns a snapshot of the subsystem statuses and rollup.
func (c *Coordinator) Diagnostics() Diagnostics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rollup(c.diagnostics)
}

// Status returns the coordinator state.
func (c *Coordinator) Status() SystemStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st := SystemStatus{
		Strategy:       c.strategy,
		Vehicle:        c.vehicle,
		Diagnostics:    c.rollup(c.diagnostics),
		TotalEvents:    c.totalEvents,
		TEGActivations: c.tegActivations,
	}
	if last, ok := c.history.Last(); ok {
		out := cloneOutputs(last.Outputs)
		st.LastEvent = &out
	}
	return st
}

// History returns the retained braking events, oldest first.
func (c *Coordinator) History() []HistoryEntry {
	entries := c.history.Snapshot()
	for i := range entries {
		entries[i].Outputs = cloneOutputs(entries[i].Outputs)
	}
	return entries
}

// Engine exposes the TEG conversion engine.
func (c *Coordinator) Engine() *teg.Engine { return c.engine }

// Thermal exposes the thermal manager.
func (c *Coordinator) Thermal() *thermal.Manager { return c.thermal }
