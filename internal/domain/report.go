package domain

import "time"

// ReportStatus tracks an emergency report through its workflow
type ReportStatus string

const (
	ReportSubmitted    ReportStatus = "submitted"
	ReportAcknowledged ReportStatus = "acknowledged"
	ReportResolved     ReportStatus = "resolved"
)

// reportTransitions represents the report workflow as code
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportSubmitted:    {ReportAcknowledged, ReportResolved},
	ReportAcknowledged: {ReportResolved},
}

// CanTransitionReport reports whether a status change is allowed
func CanTransitionReport(from, to ReportStatus) bool {
	for _, s := range reportTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EmergencyReport is filed by the driver from the dashboard
type EmergencyReport struct {
	ID          string       `json:"id"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Position    *Position    `json:"position,omitempty"`
	Status      ReportStatus `json:"status"`
	SubmittedAt time.Time    `json:"submittedAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
