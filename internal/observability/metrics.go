package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SimulatorTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drivedash_simulator_ticks_total",
		Help: "Total simulator ticks processed",
	})
	SpeedDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drivedash_speed_decisions_total",
		Help: "Speed classifications by decision",
	}, []string{"decision"})
	ZoneTransitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drivedash_zone_transitions_total",
		Help: "Active zone changes (entries and exits)",
	})
	WarningsRaised = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drivedash_warnings_raised_total",
		Help: "Speed warnings raised",
	})
	WarningsAutoDismissed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drivedash_warnings_auto_dismissed_total",
		Help: "Speed warnings dismissed by the auto-dismiss timeout",
	})
	ReportsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drivedash_reports_submitted_total",
		Help: "Emergency reports submitted",
	})
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "drivedash_ws_connections",
		Help: "Currently connected WebSocket clients",
	})
	RateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drivedash_rate_limited_requests_total",
		Help: "Requests rejected by the rate limiter",
	})
)
