package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"drivedash/internal/store"
)

// ReadyChecker reports whether the simulated feed has produced its first
// sample
type ReadyChecker interface {
	IsReady() bool
}

type HealthHandler struct {
	ready ReadyChecker
	fleet *store.FleetStore
}

func NewHealthHandler(ready ReadyChecker, fleet *store.FleetStore) *HealthHandler {
	return &HealthHandler{ready: ready, fleet: fleet}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type ReadyResponse struct {
	Ready       bool      `json:"ready"`
	FleetLoaded bool      `json:"fleetLoaded"`
	Zones       int       `json:"zones"`
	ServerTime  time.Time `json:"serverTime"`
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	stats := h.fleet.Stats()
	ready := h.ready.IsReady() && stats.IsLoaded

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ReadyResponse{
		Ready:       ready,
		FleetLoaded: stats.IsLoaded,
		Zones:       stats.Zones,
		ServerTime:  time.Now(),
	})
}
