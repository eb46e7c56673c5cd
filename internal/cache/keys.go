package cache

const (
	KeyNotifications = "notifications"
	KeyLastTelemetry = "telemetry:last"
)
