// Package simulator drives the monitor from simulated sources on a fixed
// tick, standing in for real GPS and speedometer feeds.
package simulator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"drivedash/internal/alerting"
	"drivedash/internal/domain"
	"drivedash/internal/hub"
	"drivedash/internal/monitor"
	"drivedash/internal/observability"
	"drivedash/internal/store"
)

// PositionSource yields the next position fix per tick
type PositionSource interface {
	Next() domain.Position
}

// SpeedSource yields the next speed sample in km/h per tick
type SpeedSource interface {
	Next() float64
}

type Broadcaster interface {
	Broadcast(topic string, payload any)
}

// TelemetrySaver persists the latest snapshot for warm starts; nil disables
type TelemetrySaver interface {
	SaveTelemetry(ctx context.Context, t domain.Telemetry) error
}

type Simulator struct {
	positions PositionSource
	speeds    SpeedSource
	monitor   *monitor.Monitor
	alerts    *alerting.Service
	store     *store.TelemetryStore
	bc        Broadcaster
	saver     TelemetrySaver
	interval  time.Duration
	logger    *slog.Logger

	ready   bool
	readyMu sync.RWMutex
}

func New(
	positions PositionSource,
	speeds SpeedSource,
	m *monitor.Monitor,
	alerts *alerting.Service,
	ts *store.TelemetryStore,
	bc Broadcaster,
	saver TelemetrySaver,
	interval time.Duration,
	logger *slog.Logger,
) *Simulator {
	return &Simulator{
		positions: positions,
		speeds:    speeds,
		monitor:   m,
		alerts:    alerts,
		store:     ts,
		bc:        bc,
		saver:     saver,
		interval:  interval,
		logger:    logger.With("component", "simulator"),
	}
}

func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick applies one position update then one speed update, in that order,
// mirroring the arrival order a real sensor pair would produce
func (s *Simulator) Tick(ctx context.Context) {
	pos := s.positions.Next()
	prev, cur, changed := s.monitor.OnPositionUpdate(pos)
	if changed {
		s.alerts.HandleZoneChange(ctx, prev, cur)
	}

	speed := s.speeds.Next()
	decision := s.monitor.OnSpeedUpdate(speed)
	s.alerts.HandleDecision(ctx, decision)

	snap := s.monitor.Snapshot()
	t := domain.Telemetry{
		Position:      snap.Position,
		SpeedKmh:      snap.SpeedKmh,
		Decision:      snap.Decision,
		ThresholdKmh:  snap.ThresholdKmh,
		WarningActive: snap.WarningActive,
		UpdatedAt:     time.Now(),
	}
	if snap.ActiveZone != nil {
		t.ActiveZone = snap.ActiveZone.Name
	}

	s.store.SetCurrent(t)
	s.bc.Broadcast(hub.TopicTelemetry, t)
	observability.SimulatorTicks.Inc()

	if s.saver != nil {
		if err := s.saver.SaveTelemetry(ctx, t); err != nil {
			s.logger.Debug("failed to save telemetry snapshot", "error", err)
		}
	}

	if !s.IsReady() {
		s.setReady(true)
		s.logger.Info("simulator ready", "position", pos, "speed_kmh", speed)
	}

	s.logger.Debug("tick completed",
		"speed_kmh", speed,
		"decision", decision,
		"active_zone", t.ActiveZone,
		"threshold_kmh", t.ThresholdKmh,
	)
}

func (s *Simulator) IsReady() bool {
	s.readyMu.RLock()
	defer s.readyMu.RUnlock()
	return s.ready
}

func (s *Simulator) setReady(ready bool) {
	s.readyMu.Lock()
	defer s.readyMu.Unlock()
	s.ready = ready
}
