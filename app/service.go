package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/api/braking"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/config"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/catalog"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/journal"
	coremetrics "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/metrics"
	coremon "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/monitoring"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/recovery"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/teg"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/thermal"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/logger"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/metrics"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/monitoring"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/infra/mqtt"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/eventbus"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/qa/scenarios"
)

// Remote strategy control topics, relative to the MQTT topic prefix.
const (
	strategySetTopic   = "strategy/set"
	strategyStateTopic = "strategy/state"
	diagnosticsTopic   = "diagnostics"
)

// Core bundles the calculation components built from a configuration.
type Core struct {
	Materials   *catalog.MaterialCatalog
	Configs     *catalog.ConfigCatalog
	Engine      *teg.Engine
	Thermal     *thermal.Manager
	Coordinator *recovery.Coordinator
}

// NewCore builds the catalogs, the conversion engine, the thermal manager and
// the coordinator. A nil bus disables event publication.
func NewCore(cfg *config.Config, bus eventbus.EventBus) (*Core, error) {
	materials := catalog.DefaultMaterialCatalog()
	configs, err := catalog.DefaultConfigCatalog(materials, logger.New("catalog"))
	if err != nil {
		return nil, fmt.Errorf("default configurations: %w", err)
	}
	engineOpts := []teg.Option{teg.WithLogger(logger.New("teg_engine"))}
	coordOpts := []recovery.Option{
		recovery.WithLogger(logger.New("recovery")),
		recovery.WithStrategy(cfg.Strategy),
	}
	if bus != nil {
		engineOpts = append(engineOpts, teg.WithEventBus(bus))
		coordOpts = append(coordOpts, recovery.WithEventBus(bus))
	}
	engine := teg.NewEngine(cfg.Engine, configs, engineOpts...)
	tm := thermal.NewManager(cfg.Thermal, logger.New("thermal"))
	return &Core{
		Materials:   materials,
		Configs:     configs,
		Engine:      engine,
		Thermal:     tm,
		Coordinator: recovery.NewCoordinator(cfg.Vehicle, engine, tm, coordOpts...),
	}, nil
}

// Service runs the core with its observers: metrics sinks, the braking
// journal and Sentry, plus the optional HTTP API and MQTT strategy control.
type Service struct {
	*Core
	cfg     *config.Config
	bus     *eventbus.Bus
	sink    coremetrics.MetricsSink
	journal journal.Store
	remote  *mqtt.Publisher
	monitor coremon.Monitor
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	bus := eventbus.New()
	core, err := NewCore(cfg, bus)
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}
	store, err := journal.Open(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	svc := &Service{Core: core, cfg: cfg, bus: bus, sink: sink, journal: store, monitor: mon, log: logg}
	if cfg.MQTT.Broker != "" {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.remote = pub
	}
	return svc, nil
}

// Journal returns the braking journal.
func (s *Service) Journal() journal.Store { return s.journal }

// Start attaches the observers to the event bus. They stop with ctx.
func (s *Service) Start(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	journal.StartRecorder(ctx, s.bus, s.journal, logger.New("journal"))
	if s.cfg.Metrics.PrometheusPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort, nil); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.cfg.API.Address != "" {
		mux := braking.NewMux(s.Coordinator, s.journal, s.cfg.API.Token)
		go func() {
			if err := braking.Serve(ctx, s.cfg.API.Address, mux); err != nil {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}
	if s.remote != nil {
		if err := s.remote.Subscribe(strategySetTopic, s.onStrategyUpdate); err != nil {
			return fmt.Errorf("subscribe %s: %w", strategySetTopic, err)
		}
	}
	return nil
}

// onStrategyUpdate applies a partial strategy received over MQTT and echoes
// the resulting strategy.
func (s *Service) onStrategyUpdate(payload []byte) {
	var u recovery.StrategyUpdate
	if err := json.Unmarshal(payload, &u); err != nil {
		s.log.Errorf("decode strategy update: %v", err)
		return
	}
	st, err := s.Coordinator.UpdateStrategy(u)
	if err != nil {
		s.log.Warnf("strategy update rejected: %v", err)
		return
	}
	s.log.Infof("strategy updated over MQTT")
	if s.remote != nil {
		if err := s.remote.PublishJSON(strategyStateTopic, st); err != nil {
			s.log.Errorf("publish strategy: %v", err)
		}
	}
}

// Run starts the observers and replays the configured scenario every replay
// interval until ctx is canceled. Without a scenario it only serves.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	if s.cfg.Replay.Scenario == "" {
		<-ctx.Done()
		return nil
	}
	sc, err := scenarios.Load(s.cfg.Replay.Scenario)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	ticker := time.NewTicker(s.cfg.Replay.Interval())
	defer ticker.Stop()
	for {
		s.replay(sc)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Service) replay(sc *scenarios.Scenario) {
	rep, err := scenarios.Run(s.Coordinator, sc)
	if err != nil {
		s.log.Errorf("replay %s: %v", sc.Name, err)
		return
	}
	d := s.Coordinator.Diagnostics()
	s.log.Infof("replayed %s: %d steps, %d failed, %.2f Wh recovered", sc.Name, len(rep.Results), rep.Failed, d.EnergySavings)
	if s.remote != nil {
		if err := s.remote.PublishJSON(diagnosticsTopic, d); err != nil {
			s.log.Errorf("publish diagnostics: %v", err)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.remote != nil {
		_ = s.remote.Close()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	s.monitor.Flush(2 * time.Second)
	return s.journal.Close()
}
