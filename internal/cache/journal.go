package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"drivedash/internal/domain"
	"drivedash/internal/store"
)

// Journal keeps recent notifications and the last telemetry snapshot in
// Redis so a restarted process can warm the dashboard instead of showing an
// empty page until the first tick. Domain state still lives in memory; the
// journal is a cache, not a system of record.
type Journal struct {
	cache  *RedisCache
	size   int64
	ttl    time.Duration
	logger *slog.Logger
}

func NewJournal(cache *RedisCache, size int64, ttl time.Duration, logger *slog.Logger) *Journal {
	return &Journal{
		cache:  cache,
		size:   size,
		ttl:    ttl,
		logger: logger.With("component", "journal"),
	}
}

func (j *Journal) AppendNotification(ctx context.Context, n domain.Notification) error {
	return j.cache.PushToList(ctx, KeyNotifications, n, j.size)
}

func (j *Journal) SaveTelemetry(ctx context.Context, t domain.Telemetry) error {
	return j.cache.SetJSON(ctx, KeyLastTelemetry, t, j.ttl)
}

// WarmStart preloads the telemetry store from the journal at boot. Errors
// are logged and swallowed: a cold dashboard is acceptable, a failed boot
// is not.
func (j *Journal) WarmStart(ctx context.Context, ts *store.TelemetryStore) {
	start := time.Now()

	var t domain.Telemetry
	found, err := j.cache.GetJSON(ctx, KeyLastTelemetry, &t)
	if err != nil {
		j.logger.Warn("failed to load last telemetry", "error", err)
	} else if found {
		ts.SetCurrent(t)
	}

	raws, err := j.cache.ListRange(ctx, KeyNotifications, j.size)
	if err != nil {
		j.logger.Warn("failed to load notifications", "error", err)
		return
	}

	// list head is newest; replay oldest first so store ordering matches
	restored := 0
	for i := len(raws) - 1; i >= 0; i-- {
		var n domain.Notification
		if err := json.Unmarshal(raws[i], &n); err != nil {
			j.logger.Debug("skipping malformed journal entry", "error", err)
			continue
		}
		ts.AddNotification(n)
		restored++
	}

	j.logger.Info("warm start completed",
		"telemetry_restored", found,
		"notifications_restored", restored,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
