package drivesim

import "math/rand"

// SpeedProfile draws a random speed per tick the way the original dashboard
// simulated its speedometer: mostly cruising, with periodic bursts that can
// breach zone limits so the warning path actually fires.
type SpeedProfile struct {
	rng *rand.Rand

	BaseKmh   float64 // cruising floor
	SpreadKmh float64 // uniform jitter above the floor
	BurstKmh  float64 // extra speed during a burst
	BurstOdds float64 // probability of a burst per tick, 0..1
}

func NewSpeedProfile(rng *rand.Rand) *SpeedProfile {
	return &SpeedProfile{
		rng:       rng,
		BaseKmh:   18,
		SpreadKmh: 30,
		BurstKmh:  35,
		BurstOdds: 0.2,
	}
}

// Next returns the speed for the current tick, always non-negative
func (p *SpeedProfile) Next() float64 {
	speed := p.BaseKmh + p.rng.Float64()*p.SpreadKmh
	if p.rng.Float64() < p.BurstOdds {
		speed += p.rng.Float64() * p.BurstKmh
	}
	if speed < 0 {
		speed = 0
	}
	return speed
}
