package alerting

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"drivedash/internal/domain"
	"drivedash/internal/hub"
	"drivedash/internal/monitor"
	"drivedash/internal/store"
)

type mockBroadcaster struct {
	mu     sync.Mutex
	events []struct {
		topic   string
		payload any
	}
}

func (m *mockBroadcaster) Broadcast(topic string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, struct {
		topic   string
		payload any
	}{topic, payload})
}

func (m *mockBroadcaster) countTopic(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.topic == topic {
			n++
		}
	}
	return n
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var serviceZones = []domain.Zone{
	{Name: "School Zone", Center: domain.Position{Lat: 28.6180, Lon: 77.2110}, RadiusKm: 0.5, SpeedLimitKmh: 25},
}

func overspeedingMonitor(t *testing.T) *monitor.Monitor {
	t.Helper()
	m := monitor.New(serviceZones, 60)
	m.OnPositionUpdate(domain.Position{Lat: 28.6180, Lon: 77.2110})
	if got := m.OnSpeedUpdate(40); got != domain.DecisionOverspeed {
		t.Fatalf("setup: expected overspeed, got %s", got)
	}
	return m
}

func TestHandleDecision_RaisesAlertOnce(t *testing.T) {
	m := overspeedingMonitor(t)
	ts := store.NewTelemetryStore(10)
	bc := &mockBroadcaster{}
	svc := New(m, ts, bc, nil, time.Hour, testLogger())

	ctx := context.Background()
	svc.HandleDecision(ctx, domain.DecisionOverspeed)

	alerts := ts.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].ZoneName != "School Zone" || alerts[0].ThresholdKmh != 25 {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}
	if bc.countTopic(hub.TopicAlerts) != 1 {
		t.Error("expected one alert broadcast")
	}
	if bc.countTopic(hub.TopicNotifications) != 1 {
		t.Error("expected one warning notification")
	}

	// warning still active: no second alert
	svc.HandleDecision(ctx, domain.DecisionOverspeed)
	if got := len(ts.Alerts()); got != 1 {
		t.Errorf("expected no re-raise while active, got %d alerts", got)
	}
}

func TestHandleDecision_IgnoresNonOverspeed(t *testing.T) {
	m := monitor.New(serviceZones, 60)
	ts := store.NewTelemetryStore(10)
	bc := &mockBroadcaster{}
	svc := New(m, ts, bc, nil, time.Hour, testLogger())

	svc.HandleDecision(context.Background(), domain.DecisionNormal)
	svc.HandleDecision(context.Background(), domain.DecisionWarning)

	if got := len(ts.Alerts()); got != 0 {
		t.Errorf("expected no alerts, got %d", got)
	}
}

func TestAcknowledge_ClearsActiveWarning(t *testing.T) {
	m := overspeedingMonitor(t)
	ts := store.NewTelemetryStore(10)
	bc := &mockBroadcaster{}
	svc := New(m, ts, bc, nil, time.Hour, testLogger())

	ctx := context.Background()
	svc.HandleDecision(ctx, domain.DecisionOverspeed)

	if !svc.Acknowledge(ctx) {
		t.Fatal("expected acknowledge to succeed")
	}
	if m.Snapshot().WarningActive {
		t.Error("expected monitor warning cleared")
	}
	if svc.Acknowledge(ctx) {
		t.Error("expected second acknowledge to report no active warning")
	}

	alerts := ts.Alerts()
	if alerts[0].DismissedAt == nil || alerts[0].AutoDismissed {
		t.Errorf("expected manual dismissal recorded: %+v", alerts[0])
	}
}

func TestAutoDismiss_FiresAfterTimeout(t *testing.T) {
	m := overspeedingMonitor(t)
	ts := store.NewTelemetryStore(10)
	bc := &mockBroadcaster{}
	svc := New(m, ts, bc, nil, 20*time.Millisecond, testLogger())

	svc.HandleDecision(context.Background(), domain.DecisionOverspeed)

	deadline := time.Now().Add(time.Second)
	for {
		alerts := ts.Alerts()
		if len(alerts) == 1 && alerts[0].DismissedAt != nil {
			if !alerts[0].AutoDismissed {
				t.Error("expected auto dismissal flag")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("auto-dismiss never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if m.Snapshot().WarningActive {
		t.Error("expected monitor warning cleared by auto-dismiss")
	}
}

func TestHandleZoneChange_Notifications(t *testing.T) {
	m := monitor.New(serviceZones, 60)
	ts := store.NewTelemetryStore(10)
	bc := &mockBroadcaster{}
	svc := New(m, ts, bc, nil, time.Hour, testLogger())

	ctx := context.Background()
	zone := &serviceZones[0]
	svc.HandleZoneChange(ctx, nil, zone)
	svc.HandleZoneChange(ctx, zone, nil)

	ns := ts.Notifications()
	if len(ns) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(ns))
	}
	// newest first: exit then entry
	if ns[0].Severity != domain.SeverityInfo || ns[1].Severity != domain.SeverityDanger {
		t.Errorf("unexpected severities: %s, %s", ns[0].Severity, ns[1].Severity)
	}
}

type mockJournal struct {
	mu sync.Mutex
	ns []domain.Notification
}

func (j *mockJournal) AppendNotification(_ context.Context, n domain.Notification) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ns = append(j.ns, n)
	return nil
}

func TestNotificationsReachJournal(t *testing.T) {
	m := monitor.New(serviceZones, 60)
	ts := store.NewTelemetryStore(10)
	j := &mockJournal{}
	svc := New(m, ts, &mockBroadcaster{}, j, time.Hour, testLogger())

	svc.EmergencyReported(context.Background(), domain.EmergencyReport{
		Category:    "accident",
		Description: "test",
	})

	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.ns) != 1 {
		t.Fatalf("expected 1 journaled notification, got %d", len(j.ns))
	}
}
