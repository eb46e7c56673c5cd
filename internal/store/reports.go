package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"drivedash/internal/domain"
)

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrInvalidTransition  = errors.New("invalid report status transition")
	ErrEmptyReportPayload = errors.New("category and description are required")
)

// ReportStore keeps emergency reports in memory for the lifetime of the
// process
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.EmergencyReport
	order   []string // insertion order of report ids
}

func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]*domain.EmergencyReport),
	}
}

// Create assigns the id, timestamps, and initial status, then stores the
// report
func (s *ReportStore) Create(category, description string, pos *domain.Position) (domain.EmergencyReport, error) {
	if category == "" || description == "" {
		return domain.EmergencyReport{}, ErrEmptyReportPayload
	}

	now := time.Now()
	r := &domain.EmergencyReport{
		ID:          uuid.New().String(),
		Category:    category,
		Description: description,
		Position:    pos,
		Status:      domain.ReportSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	s.order = append(s.order, r.ID)
	return *r, nil
}

func (s *ReportStore) Get(id string) (domain.EmergencyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return domain.EmergencyReport{}, ErrReportNotFound
	}
	return *r, nil
}

// List returns all reports, newest first
func (s *ReportStore) List() []domain.EmergencyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.EmergencyReport, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, *s.reports[s.order[i]])
	}
	return result
}

// UpdateStatus applies a workflow transition, rejecting moves the workflow
// does not allow
func (s *ReportStore) UpdateStatus(id string, to domain.ReportStatus) (domain.EmergencyReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return domain.EmergencyReport{}, ErrReportNotFound
	}
	if !domain.CanTransitionReport(r.Status, to) {
		return domain.EmergencyReport{}, ErrInvalidTransition
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return *r, nil
}

func (s *ReportStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
