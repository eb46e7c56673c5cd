package domain

import "time"

// Alert is a raised speed warning and its lifecycle timestamps
type Alert struct {
	ID            string     `json:"id"`
	ZoneName      string     `json:"zoneName,omitempty"`
	SpeedKmh      float64    `json:"speedKmh"`
	ThresholdKmh  float64    `json:"thresholdKmh"`
	RaisedAt      time.Time  `json:"raisedAt"`
	DismissedAt   *time.Time `json:"dismissedAt,omitempty"`
	AutoDismissed bool       `json:"autoDismissed,omitempty"`
}

// Active reports whether the alert has not been dismissed yet
func (a *Alert) Active() bool {
	return a.DismissedAt == nil
}

// Severity grades a notification for presentation
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notification is a dashboard toast: zone entry/exit, speed warnings,
// emergency report confirmations
type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
