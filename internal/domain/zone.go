package domain

// DefaultSpeedLimitKmh applies whenever the vehicle is outside every zone
const DefaultSpeedLimitKmh = 60.0

// Zone is a circular geofenced area imposing a speed limit. Zones are
// evaluated in declared order and the first match wins, so overlapping
// zones resolve to the earlier entry.
type Zone struct {
	Name          string   `json:"name"`
	Center        Position `json:"center"`
	RadiusKm      float64  `json:"radiusKm"`
	SpeedLimitKmh float64  `json:"speedLimitKmh"`
}
