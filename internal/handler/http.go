package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"drivedash/internal/domain"
	"drivedash/internal/store"
)

// Acknowledger dismisses the active speed warning on the driver's behalf
type Acknowledger interface {
	Acknowledge(ctx context.Context) bool
}

// DashboardHandler serves the REST snapshots behind the dashboard page
type DashboardHandler struct {
	telemetry *store.TelemetryStore
	fleet     *store.FleetStore
	ack       Acknowledger
}

func NewDashboardHandler(ts *store.TelemetryStore, fs *store.FleetStore, ack Acknowledger) *DashboardHandler {
	return &DashboardHandler{telemetry: ts, fleet: fs, ack: ack}
}

type TelemetryResponse struct {
	Telemetry  *domain.Telemetry `json:"telemetry,omitempty"`
	ServerTime time.Time         `json:"serverTime"`
}

func (h *DashboardHandler) GetTelemetry(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()

	resp := TelemetryResponse{ServerTime: time.Now()}
	if t, ok := h.telemetry.Current(); ok {
		resp.Telemetry = &t
	}
	respondJSON(w, http.StatusOK, resp)
}

type ZonesResponse struct {
	Zones           []domain.Zone `json:"zones"`
	DefaultLimitKmh float64       `json:"defaultLimitKmh"`
}

func (h *DashboardHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	respondJSON(w, http.StatusOK, ZonesResponse{
		Zones:           h.fleet.Zones(),
		DefaultLimitKmh: domain.DefaultSpeedLimitKmh,
	})
}

func (h *DashboardHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	respondJSON(w, http.StatusOK, h.fleet.Driver())
}

func (h *DashboardHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	respondJSON(w, http.StatusOK, h.fleet.Vehicle())
}

type DeliveriesResponse struct {
	Deliveries []domain.Delivery             `json:"deliveries"`
	Counts     map[domain.DeliveryStatus]int `json:"counts"`
}

func (h *DashboardHandler) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	respondJSON(w, http.StatusOK, DeliveriesResponse{
		Deliveries: h.fleet.Deliveries(),
		Counts:     h.fleet.DeliveryCounts(),
	})
}

type AlertsResponse struct {
	Alerts []domain.Alert `json:"alerts"`
	Count  int            `json:"count"`
}

func (h *DashboardHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	alerts := h.telemetry.Alerts()
	respondJSON(w, http.StatusOK, AlertsResponse{Alerts: alerts, Count: len(alerts)})
}

type AcknowledgeResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

// AcknowledgeAlert handles the driver pressing "dismiss" on the warning
// modal. Acknowledging when nothing is active is not an error.
func (h *DashboardHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	ok := h.ack.Acknowledge(r.Context())
	respondJSON(w, http.StatusOK, AcknowledgeResponse{Acknowledged: ok})
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Count         int                   `json:"count"`
}

func (h *DashboardHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	ns := h.telemetry.Notifications()
	respondJSON(w, http.StatusOK, NotificationsResponse{Notifications: ns, Count: len(ns)})
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
