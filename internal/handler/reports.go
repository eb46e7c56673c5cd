package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"drivedash/internal/domain"
	"drivedash/internal/hub"
	"drivedash/internal/store"
)

// ReportNotifier is told about accepted reports so the dashboard gets a
// confirmation notification
type ReportNotifier interface {
	EmergencyReported(ctx context.Context, r domain.EmergencyReport)
}

type Broadcaster interface {
	Broadcast(topic string, payload any)
}

type ReportHandler struct {
	store    *store.ReportStore
	notifier ReportNotifier
	bc       Broadcaster
	logger   *slog.Logger
}

func NewReportHandler(s *store.ReportStore, notifier ReportNotifier, bc Broadcaster, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{store: s, notifier: notifier, bc: bc, logger: logger}
}

type CreateReportRequest struct {
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Position    *domain.Position `json:"position,omitempty"`
}

func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Position != nil && !req.Position.Valid() {
		respondError(w, http.StatusBadRequest, "position out of range")
		return
	}

	report, err := h.store.Create(req.Category, req.Description, req.Position)
	if err != nil {
		if errors.Is(err, store.ErrEmptyReportPayload) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create report")
		return
	}

	h.logger.Info("emergency report submitted",
		"report_id", report.ID,
		"category", report.Category,
	)

	if h.notifier != nil {
		h.notifier.EmergencyReported(r.Context(), report)
	}
	h.bc.Broadcast(hub.TopicReports, report)

	respondJSON(w, http.StatusCreated, report)
}

type ReportsResponse struct {
	Reports []domain.EmergencyReport `json:"reports"`
	Count   int                      `json:"count"`
}

func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()
	reports := h.store.List()
	respondJSON(w, http.StatusOK, ReportsResponse{Reports: reports, Count: len(reports)})
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()

	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing report id")
		return
	}

	report, err := h.store.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

type UpdateReportStatusRequest struct {
	Status domain.ReportStatus `json:"status"`
}

func (h *ReportHandler) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	ServerStats.IncRequests()

	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing report id")
		return
	}

	var req UpdateReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.store.UpdateStatus(id, req.Status)
	switch {
	case errors.Is(err, store.ErrReportNotFound):
		respondError(w, http.StatusNotFound, "report not found")
		return
	case errors.Is(err, store.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to update report")
		return
	}

	h.bc.Broadcast(hub.TopicReports, report)
	respondJSON(w, http.StatusOK, report)
}
