package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncidentStatus represents the status of a treatment incident
type IncidentStatus string

const (
	StatusPending   IncidentStatus = "Pending"
	StatusCompleted IncidentStatus = "Completed"
	StatusCancelled IncidentStatus = "Cancelled"
)

// AppointmentDateLayout is the persisted local date-time format of
// Incident.AppointmentDate.
const AppointmentDateLayout = "2006-01-02T15:04:05"

// FileAttachment stores an attached file's content inline as a data URL,
// never as a path reference.
type FileAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Incident represents a clinical event (appointment, procedure, or
// treatment) tied to one Patient.
//
// PatientID is expected to reference a live Patient at creation time; the
// store does not enforce this (see deletePatient's cascade for the only
// guard against dangling references).
type Incident struct {
	ID              string           `json:"id"`
	PatientID       string           `json:"patientId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Comments        string           `json:"comments"`
	AppointmentDate string           `json:"appointmentDate"` // Format: AppointmentDateLayout
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	Status          IncidentStatus   `json:"status"`
	Files           []FileAttachment `json:"files"`
}

// AppointmentTime parses the persisted appointment date.
func (i *Incident) AppointmentTime() (time.Time, error) {
	return time.Parse(AppointmentDateLayout, i.AppointmentDate)
}

// IsCompleted checks if the incident is completed
func (i *Incident) IsCompleted() bool {
	return i.Status == StatusCompleted
}

// IsCancelled checks if the incident is cancelled
func (i *Incident) IsCancelled() bool {
	return i.Status == StatusCancelled
}

// IncidentPatch is a partial update of an Incident. Nil fields are left
// untouched by the merge.
type IncidentPatch struct {
	PatientID       *string
	Title           *string
	Description     *string
	Comments        *string
	AppointmentDate *string
	Cost            *decimal.Decimal
	Status          *IncidentStatus
	Files           *[]FileAttachment
}

// Apply merges the non-nil patch fields into the incident.
func (p IncidentPatch) Apply(target *Incident) {
	if p.PatientID != nil {
		target.PatientID = *p.PatientID
	}
	if p.Title != nil {
		target.Title = *p.Title
	}
	if p.Description != nil {
		target.Description = *p.Description
	}
	if p.Comments != nil {
		target.Comments = *p.Comments
	}
	if p.AppointmentDate != nil {
		target.AppointmentDate = *p.AppointmentDate
	}
	if p.Cost != nil {
		target.Cost = p.Cost
	}
	if p.Status != nil {
		target.Status = *p.Status
	}
	if p.Files != nil {
		target.Files = *p.Files
	}
}
