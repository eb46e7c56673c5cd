package domain

import "time"

// Position is a WGS84 coordinate pair in decimal degrees
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinates are inside the WGS84 range
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Decision classifies a speed sample against the threshold in effect
type Decision string

const (
	DecisionNormal    Decision = "normal"
	DecisionWarning   Decision = "warning"
	DecisionOverspeed Decision = "overspeed"
)

// Telemetry is the latest known state of the tracked vehicle, as shown
// on the dashboard
type Telemetry struct {
	Position      Position  `json:"position"`
	SpeedKmh      float64   `json:"speedKmh"`
	Decision      Decision  `json:"decision"`
	ActiveZone    string    `json:"activeZone,omitempty"`
	ThresholdKmh  float64   `json:"thresholdKmh"`
	WarningActive bool      `json:"warningActive"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
