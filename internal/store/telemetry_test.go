package store

import (
	"fmt"
	"testing"
	"time"

	"drivedash/internal/domain"
)

func TestTelemetryStore_CurrentRoundTrip(t *testing.T) {
	s := NewTelemetryStore(10)

	if _, ok := s.Current(); ok {
		t.Fatal("expected no current telemetry before first set")
	}

	want := domain.Telemetry{
		Position:     domain.Position{Lat: 28.6180, Lon: 77.2110},
		SpeedKmh:     42,
		Decision:     domain.DecisionOverspeed,
		ActiveZone:   "School Zone",
		ThresholdKmh: 25,
		UpdatedAt:    time.Now(),
	}
	s.SetCurrent(want)

	got, ok := s.Current()
	if !ok {
		t.Fatal("expected current telemetry")
	}
	if got.ActiveZone != "School Zone" || got.SpeedKmh != 42 {
		t.Errorf("unexpected telemetry: %+v", got)
	}
}

func TestTelemetryStore_AlertHistoryBounded(t *testing.T) {
	s := NewTelemetryStore(3)

	for i := 0; i < 5; i++ {
		s.AddAlert(domain.Alert{ID: fmt.Sprintf("a%d", i), RaisedAt: time.Now()})
	}

	alerts := s.Alerts()
	if len(alerts) != 3 {
		t.Fatalf("expected history capped at 3, got %d", len(alerts))
	}
	// newest first
	if alerts[0].ID != "a4" || alerts[2].ID != "a2" {
		t.Errorf("unexpected order: %v", alerts)
	}
}

func TestTelemetryStore_DismissAlert(t *testing.T) {
	s := NewTelemetryStore(10)
	s.AddAlert(domain.Alert{ID: "a1", RaisedAt: time.Now()})

	at := time.Now()
	if !s.DismissAlert("a1", at, true) {
		t.Fatal("expected dismissal to succeed")
	}
	if s.DismissAlert("a1", at, false) {
		t.Fatal("expected second dismissal to be rejected")
	}
	if s.DismissAlert("missing", at, false) {
		t.Fatal("expected unknown alert to be rejected")
	}

	alerts := s.Alerts()
	if alerts[0].DismissedAt == nil || !alerts[0].AutoDismissed {
		t.Errorf("dismissal not recorded: %+v", alerts[0])
	}
}

func TestTelemetryStore_Notifications(t *testing.T) {
	s := NewTelemetryStore(10)
	s.AddNotification(domain.Notification{ID: "n1", Severity: domain.SeverityInfo})
	s.AddNotification(domain.Notification{ID: "n2", Severity: domain.SeverityDanger})

	ns := s.Notifications()
	if len(ns) != 2 || ns[0].ID != "n2" {
		t.Errorf("unexpected notifications: %v", ns)
	}

	alerts, notifications := s.Counts()
	if alerts != 0 || notifications != 2 {
		t.Errorf("unexpected counts: %d alerts, %d notifications", alerts, notifications)
	}
}
