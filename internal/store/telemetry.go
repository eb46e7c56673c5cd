package store

import (
	"sync"
	"time"

	"drivedash/internal/domain"
)

const defaultHistorySize = 50

// TelemetryStore holds the latest telemetry snapshot plus bounded histories
// of alerts and notifications. Everything dies with the process; there is
// no persistence behind it.
type TelemetryStore struct {
	mu sync.RWMutex

	current    domain.Telemetry
	hasCurrent bool

	alerts        []domain.Alert        // newest last
	notifications []domain.Notification // newest last
	historySize   int
}

func NewTelemetryStore(historySize int) *TelemetryStore {
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &TelemetryStore{historySize: historySize}
}

func (s *TelemetryStore) SetCurrent(t domain.Telemetry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = t
	s.hasCurrent = true
}

func (s *TelemetryStore) Current() (domain.Telemetry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasCurrent
}

func (s *TelemetryStore) AddAlert(a domain.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
	if len(s.alerts) > s.historySize {
		s.alerts = s.alerts[len(s.alerts)-s.historySize:]
	}
}

// DismissAlert stamps the dismissal time onto the alert with the given id.
// Returns false if the alert is unknown or already dismissed.
func (s *TelemetryStore) DismissAlert(id string, at time.Time, auto bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.alerts) - 1; i >= 0; i-- {
		if s.alerts[i].ID != id {
			continue
		}
		if s.alerts[i].DismissedAt != nil {
			return false
		}
		t := at
		s.alerts[i].DismissedAt = &t
		s.alerts[i].AutoDismissed = auto
		return true
	}
	return false
}

// Alerts returns the alert history, newest first
func (s *TelemetryStore) Alerts() []domain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Alert, 0, len(s.alerts))
	for i := len(s.alerts) - 1; i >= 0; i-- {
		result = append(result, s.alerts[i])
	}
	return result
}

func (s *TelemetryStore) AddNotification(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	if len(s.notifications) > s.historySize {
		s.notifications = s.notifications[len(s.notifications)-s.historySize:]
	}
}

// Notifications returns the notification history, newest first
func (s *TelemetryStore) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Notification, 0, len(s.notifications))
	for i := len(s.notifications) - 1; i >= 0; i-- {
		result = append(result, s.notifications[i])
	}
	return result
}

func (s *TelemetryStore) Counts() (alerts, notifications int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts), len(s.notifications)
}
