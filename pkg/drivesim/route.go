// Package drivesim provides the simulated position and speed feeds that
// stand in for real sensors. The dashboard core never talks to hardware:
// it consumes these the same way it would consume a geolocation source.
package drivesim

import "drivedash/internal/domain"

// RoutePlayback replays a fixed list of waypoints in a loop, one per call.
// Not safe for concurrent use; the simulator tick is the only caller.
type RoutePlayback struct {
	points []domain.Position
	idx    int
}

func NewRoutePlayback(points []domain.Position) *RoutePlayback {
	return &RoutePlayback{points: points}
}

// Next returns the next waypoint, wrapping around at the end of the route
func (r *RoutePlayback) Next() domain.Position {
	if len(r.points) == 0 {
		return domain.Position{}
	}
	p := r.points[r.idx]
	r.idx = (r.idx + 1) % len(r.points)
	return p
}

func (r *RoutePlayback) Len() int { return len(r.points) }

// DefaultRoute threads through central Delhi: open road, then the school
// zone, then the construction zone, then back out. Paired with the default
// zone fixtures so a running simulator exercises every zone transition.
func DefaultRoute() *RoutePlayback {
	return NewRoutePlayback([]domain.Position{
		{Lat: 28.6280, Lon: 77.2200},
		{Lat: 28.6250, Lon: 77.2170},
		{Lat: 28.6220, Lon: 77.2140},
		{Lat: 28.6195, Lon: 77.2120}, // entering school zone
		{Lat: 28.6180, Lon: 77.2110}, // school zone center
		{Lat: 28.6168, Lon: 77.2098},
		{Lat: 28.6155, Lon: 77.2085}, // construction zone
		{Lat: 28.6150, Lon: 77.2080}, // construction zone center
		{Lat: 28.6140, Lon: 77.2060},
		{Lat: 28.6160, Lon: 77.2030}, // clear of both zones
		{Lat: 28.6200, Lon: 77.2050},
		{Lat: 28.6240, Lon: 77.2120},
	})
}
