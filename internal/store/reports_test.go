package store

import (
	"errors"
	"testing"

	"drivedash/internal/domain"
)

func TestReportStore_CreateAndGet(t *testing.T) {
	s := NewReportStore()

	pos := &domain.Position{Lat: 28.62, Lon: 77.21}
	r, err := s.Create("accident", "Minor collision at the crossing", pos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == "" {
		t.Error("expected an assigned id")
	}
	if r.Status != domain.ReportSubmitted {
		t.Errorf("expected submitted, got %s", r.Status)
	}

	got, err := s.Get(r.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != "accident" {
		t.Errorf("unexpected report: %+v", got)
	}
}

func TestReportStore_CreateRejectsEmptyFields(t *testing.T) {
	s := NewReportStore()

	if _, err := s.Create("", "desc", nil); !errors.Is(err, ErrEmptyReportPayload) {
		t.Errorf("expected ErrEmptyReportPayload, got %v", err)
	}
	if _, err := s.Create("cat", "", nil); !errors.Is(err, ErrEmptyReportPayload) {
		t.Errorf("expected ErrEmptyReportPayload, got %v", err)
	}
}

func TestReportStore_ListNewestFirst(t *testing.T) {
	s := NewReportStore()

	first, _ := s.Create("breakdown", "Engine stalled", nil)
	second, _ := s.Create("hazard", "Debris on road", nil)

	reports := s.List()
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != second.ID || reports[1].ID != first.ID {
		t.Error("expected newest first ordering")
	}
}

func TestReportStore_StatusWorkflow(t *testing.T) {
	s := NewReportStore()
	r, _ := s.Create("accident", "desc", nil)

	updated, err := s.UpdateStatus(r.ID, domain.ReportAcknowledged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ReportAcknowledged {
		t.Errorf("expected acknowledged, got %s", updated.Status)
	}

	if _, err := s.UpdateStatus(r.ID, domain.ReportResolved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// resolved is terminal
	if _, err := s.UpdateStatus(r.ID, domain.ReportAcknowledged); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReportStore_GetMissing(t *testing.T) {
	s := NewReportStore()
	if _, err := s.Get("nope"); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
	if _, err := s.UpdateStatus("nope", domain.ReportResolved); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}
