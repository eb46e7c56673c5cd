// Package alerting owns the warning lifecycle around the monitor: it turns
// zone changes and overspeed decisions into alerts and notifications, and
// it schedules the auto-dismiss timeout the monitor itself does not own.
package alerting

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"drivedash/internal/domain"
	"drivedash/internal/hub"
	"drivedash/internal/monitor"
	"drivedash/internal/observability"
	"drivedash/internal/store"
)

// DefaultAutoDismiss clears an unacknowledged warning after this long
const DefaultAutoDismiss = 10 * time.Second

type Broadcaster interface {
	Broadcast(topic string, payload any)
}

// Journal persists notifications and alerts outside the process when Redis
// is enabled; a nil Journal is a valid configuration.
type Journal interface {
	AppendNotification(ctx context.Context, n domain.Notification) error
}

type Service struct {
	monitor     *monitor.Monitor
	store       *store.TelemetryStore
	bc          Broadcaster
	journal     Journal
	logger      *slog.Logger
	autoDismiss time.Duration

	mu            sync.Mutex
	activeAlertID string
	dismissTimer  *time.Timer
}

func New(m *monitor.Monitor, s *store.TelemetryStore, bc Broadcaster, journal Journal, autoDismiss time.Duration, logger *slog.Logger) *Service {
	if autoDismiss <= 0 {
		autoDismiss = DefaultAutoDismiss
	}
	return &Service{
		monitor:     m,
		store:       s,
		bc:          bc,
		journal:     journal,
		logger:      logger.With("component", "alerting"),
		autoDismiss: autoDismiss,
	}
}

// HandleZoneChange emits the zone entry/exit notification
func (s *Service) HandleZoneChange(ctx context.Context, prev, cur *domain.Zone) {
	observability.ZoneTransitions.Inc()

	switch {
	case cur != nil:
		s.notify(ctx, domain.SeverityDanger,
			"Entered "+cur.Name,
			fmt.Sprintf("Speed limit %.0f km/h for the next %.1f km", cur.SpeedLimitKmh, cur.RadiusKm))
	case prev != nil:
		s.notify(ctx, domain.SeverityInfo,
			"Left "+prev.Name,
			fmt.Sprintf("Speed limit back to %.0f km/h", domain.DefaultSpeedLimitKmh))
	}
}

// HandleDecision runs after every speed sample. On overspeed it asks the
// monitor to raise a warning; cooldown and the active-warning check live in
// the monitor, so calling this every tick is safe.
func (s *Service) HandleDecision(ctx context.Context, decision domain.Decision) {
	observability.SpeedDecisions.WithLabelValues(string(decision)).Inc()

	if decision != domain.DecisionOverspeed {
		return
	}
	if !s.monitor.MaybeRaiseWarning() {
		return
	}

	snap := s.monitor.Snapshot()
	alert := domain.Alert{
		ID:           uuid.New().String(),
		SpeedKmh:     snap.SpeedKmh,
		ThresholdKmh: snap.ThresholdKmh,
		RaisedAt:     snap.LastWarningAt,
	}
	if snap.ActiveZone != nil {
		alert.ZoneName = snap.ActiveZone.Name
	}

	s.store.AddAlert(alert)
	observability.WarningsRaised.Inc()

	s.mu.Lock()
	s.activeAlertID = alert.ID
	if s.dismissTimer != nil {
		s.dismissTimer.Stop()
	}
	id := alert.ID
	s.dismissTimer = time.AfterFunc(s.autoDismiss, func() {
		s.dismiss(context.Background(), id, true)
	})
	s.mu.Unlock()

	s.bc.Broadcast(hub.TopicAlerts, alert)
	s.notify(ctx, domain.SeverityWarning,
		"Speed warning",
		fmt.Sprintf("%.0f km/h in a %.0f km/h zone", alert.SpeedKmh, alert.ThresholdKmh))

	s.logger.Info("speed warning raised",
		"alert_id", alert.ID,
		"speed_kmh", alert.SpeedKmh,
		"threshold_kmh", alert.ThresholdKmh,
		"zone", alert.ZoneName,
	)
}

// Acknowledge dismisses the active warning on behalf of the driver.
// Returns false when no warning is active.
func (s *Service) Acknowledge(ctx context.Context) bool {
	s.mu.Lock()
	id := s.activeAlertID
	s.mu.Unlock()
	if id == "" {
		return false
	}
	return s.dismiss(ctx, id, false)
}

// dismiss is the single exit from the ACTIVE state, shared by manual
// acknowledgement and the auto-dismiss timer. Idempotent per alert.
func (s *Service) dismiss(ctx context.Context, alertID string, auto bool) bool {
	s.mu.Lock()
	if s.activeAlertID != alertID {
		s.mu.Unlock()
		return false
	}
	s.activeAlertID = ""
	if s.dismissTimer != nil {
		s.dismissTimer.Stop()
		s.dismissTimer = nil
	}
	s.mu.Unlock()

	s.monitor.AcknowledgeWarning()
	if !s.store.DismissAlert(alertID, time.Now(), auto) {
		return false
	}
	if auto {
		observability.WarningsAutoDismissed.Inc()
	}

	s.bc.Broadcast(hub.TopicAlerts, map[string]any{
		"id":            alertID,
		"dismissed":     true,
		"autoDismissed": auto,
	})
	s.logger.Info("speed warning dismissed", "alert_id", alertID, "auto", auto)
	return true
}

// EmergencyReported confirms a submitted report to the dashboard
func (s *Service) EmergencyReported(ctx context.Context, r domain.EmergencyReport) {
	observability.ReportsSubmitted.Inc()
	s.notify(ctx, domain.SeverityDanger,
		"Emergency report submitted",
		fmt.Sprintf("%s: %s", r.Category, r.Description))
}

func (s *Service) notify(ctx context.Context, severity domain.Severity, title, body string) {
	n := domain.Notification{
		ID:        uuid.New().String(),
		Severity:  severity,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	s.store.AddNotification(n)
	s.bc.Broadcast(hub.TopicNotifications, n)

	if s.journal != nil {
		if err := s.journal.AppendNotification(ctx, n); err != nil {
			s.logger.Warn("failed to journal notification", "error", err)
		}
	}
}
