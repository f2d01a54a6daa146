package models

import (
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
	StatusDraft    ApplicationStatus = "draft"
)

// ParseStatus validates s against the known statuses.
func ParseStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case StatusPending, StatusApproved, StatusRejected, StatusDraft:
		return st, nil
	default:
		return "", fmt.Errorf("unknown application status %q", s)
	}
}

// Application is the canonical visa application record. Fields holds the
// free-form parts of the form (passport data, travel dates, ...).
type Application struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Status      ApplicationStatus `json:"status"`
	Destination string            `json:"destination,omitempty"`
	VisaType    string            `json:"visaType,omitempty"`
	Purpose     string            `json:"purpose,omitempty"`
	Fields      map[string]any    `json:"fields,omitempty"`
	AdminNotes  string            `json:"adminNotes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	ApprovedAt  *time.Time        `json:"approvedAt,omitempty"`
}

// Summary is the lightweight copy embedded in the owning user.
func (a Application) Summary() ApplicationSummary {
	return ApplicationSummary{
		ID:          a.ID,
		Destination: a.Destination,
		VisaType:    a.VisaType,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
}

type ApplicationSummary struct {
	ID          string            `json:"id"`
	Destination string            `json:"destination,omitempty"`
	VisaType    string            `json:"visaType,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ApplicationInput is what a user submits to create an application.
// An empty Status means pending.
type ApplicationInput struct {
	Destination string            `json:"destination"`
	VisaType    string            `json:"visaType"`
	Purpose     string            `json:"purpose"`
	Status      ApplicationStatus `json:"status,omitempty"`
	Fields      map[string]any    `json:"fields,omitempty"`
}

// ApplicationPatch merges into an existing application. Fields entries are
// merged key by key; a nil value removes the key.
type ApplicationPatch struct {
	Destination *string            `json:"destination,omitempty"`
	VisaType    *string            `json:"visaType,omitempty"`
	Purpose     *string            `json:"purpose,omitempty"`
	Status      *ApplicationStatus `json:"status,omitempty"`
	Fields      map[string]any     `json:"fields,omitempty"`
}

type ApplicationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Draft    int `json:"draft"`
}

// Count adds one application of status st.
func (s *ApplicationStats) Count(st ApplicationStatus) {
	s.Total++
	switch st {
	case StatusPending:
		s.Pending++
	case StatusApproved:
		s.Approved++
	case StatusRejected:
		s.Rejected++
	case StatusDraft:
		s.Draft++
	}
}
