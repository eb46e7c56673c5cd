// Package monitor converts a stream of (position, speed) samples into
// zone-aware speed-violation state. It owns no timers and no transport:
// the clock is injected and the caller schedules auto-dismissal.
package monitor

import (
	"sync"
	"time"

	"drivedash/internal/domain"
)

const (
	// DefaultCooldown is the minimum gap between consecutive raised warnings
	DefaultCooldown = 30 * time.Second

	// warningFraction: speeds above this fraction of the threshold but at or
	// below the threshold itself classify as a warning
	warningFraction = 0.9
)

// State is a copy of the monitor's current view, safe to hand to handlers
type State struct {
	Position      domain.Position
	SpeedKmh      float64
	Decision      domain.Decision
	ActiveZone    *domain.Zone
	ThresholdKmh  float64
	WarningActive bool
	LastWarningAt time.Time
}

type Monitor struct {
	mu sync.Mutex

	zones        []domain.Zone
	defaultLimit float64
	cooldown     time.Duration
	nowFn        func() time.Time

	position      domain.Position
	speedKmh      float64
	decision      domain.Decision
	activeZone    *domain.Zone
	thresholdKmh  float64
	warningActive bool
	lastWarningAt time.Time
}

type Option func(*Monitor)

// WithClock overrides the time source, used by tests to avoid sleeping
func WithClock(nowFn func() time.Time) Option {
	return func(m *Monitor) { m.nowFn = nowFn }
}

// WithCooldown overrides the warning cooldown
func WithCooldown(d time.Duration) Option {
	return func(m *Monitor) { m.cooldown = d }
}

// New builds a monitor over the given zones. Zone order is significant:
// the first zone containing the position wins.
func New(zones []domain.Zone, defaultLimit float64, opts ...Option) *Monitor {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultSpeedLimitKmh
	}
	m := &Monitor{
		zones:        zones,
		defaultLimit: defaultLimit,
		cooldown:     DefaultCooldown,
		nowFn:        time.Now,
		decision:     domain.DecisionNormal,
		thresholdKmh: defaultLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnPositionUpdate re-evaluates the active zone for the new position and
// derives the speed threshold from it. Returns the previous and current
// active zones and whether they differ, so the caller can emit zone
// entry/exit notifications.
func (m *Monitor) OnPositionUpdate(pos domain.Position) (prev, cur *domain.Zone, changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.position = pos

	var active *domain.Zone
	for i := range m.zones {
		z := m.zones[i]
		if haversineKm(pos.Lat, pos.Lon, z.Center.Lat, z.Center.Lon) < z.RadiusKm {
			active = &z
			break
		}
	}

	prev = m.activeZone
	changed = !sameZone(prev, active)
	m.activeZone = active
	if active != nil {
		m.thresholdKmh = active.SpeedLimitKmh
	} else {
		m.thresholdKmh = m.defaultLimit
	}
	return copyZone(prev), copyZone(active), changed
}

// OnSpeedUpdate classifies the speed sample against the threshold in effect
func (m *Monitor) OnSpeedUpdate(speedKmh float64) domain.Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.speedKmh = speedKmh
	switch {
	case speedKmh <= warningFraction*m.thresholdKmh:
		m.decision = domain.DecisionNormal
	case speedKmh <= m.thresholdKmh:
		m.decision = domain.DecisionWarning
	default:
		m.decision = domain.DecisionOverspeed
	}
	return m.decision
}

// MaybeRaiseWarning raises a warning only if the last decision was
// overspeed, no warning is currently displayed, and the cooldown since the
// previous raise has elapsed. A monitor that has never raised is always
// cooldown-eligible.
func (m *Monitor) MaybeRaiseWarning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.decision != domain.DecisionOverspeed || m.warningActive {
		return false
	}
	now := m.nowFn()
	if !m.lastWarningAt.IsZero() && now.Sub(m.lastWarningAt) <= m.cooldown {
		return false
	}
	m.warningActive = true
	m.lastWarningAt = now
	return true
}

// AcknowledgeWarning clears the active warning. Safe to call when no
// warning is active.
func (m *Monitor) AcknowledgeWarning() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warningActive = false
}

// Snapshot returns a copy of the current state
func (m *Monitor) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		Position:      m.position,
		SpeedKmh:      m.speedKmh,
		Decision:      m.decision,
		ActiveZone:    copyZone(m.activeZone),
		ThresholdKmh:  m.thresholdKmh,
		WarningActive: m.warningActive,
		LastWarningAt: m.lastWarningAt,
	}
}

func sameZone(a, b *domain.Zone) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name
}

func copyZone(z *domain.Zone) *domain.Zone {
	if z == nil {
		return nil
	}
	c := *z
	return &c
}
