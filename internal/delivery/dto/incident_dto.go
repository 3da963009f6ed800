package dto

import (
	"github.com/shopspring/decimal"
)

type FileAttachmentPayload struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
}

// CreateIncidentRequest carries the fields of a new treatment incident.
// PatientID is not checked against the patient collection; an unknown id
// is accepted and logged.
type CreateIncidentRequest struct {
	PatientID       string                  `json:"patientId" validate:"required"`
	Title           string                  `json:"title" validate:"required"`
	Description     string                  `json:"description" validate:"omitempty"`
	Comments        string                  `json:"comments" validate:"omitempty"`
	AppointmentDate string                  `json:"appointmentDate" validate:"required,datetime=2006-01-02T15:04:05"`
	Cost            *decimal.Decimal        `json:"cost" validate:"omitempty"`
	Status          string                  `json:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	Files           []FileAttachmentPayload `json:"files" validate:"omitempty,dive"`
}

// UpdateIncidentRequest is a partial update; absent fields are left
// untouched.
type UpdateIncidentRequest struct {
	PatientID       *string                  `json:"patientId" validate:"omitempty"`
	Title           *string                  `json:"title" validate:"omitempty"`
	Description     *string                  `json:"description" validate:"omitempty"`
	Comments        *string                  `json:"comments" validate:"omitempty"`
	AppointmentDate *string                  `json:"appointmentDate" validate:"omitempty,datetime=2006-01-02T15:04:05"`
	Cost            *decimal.Decimal         `json:"cost" validate:"omitempty"`
	Status          *string                  `json:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	Files           *[]FileAttachmentPayload `json:"files" validate:"omitempty,dive"`
}

type IncidentResponse struct {
	ID              string                  `json:"id"`
	PatientID       string                  `json:"patientId"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Comments        string                  `json:"comments"`
	AppointmentDate string                  `json:"appointmentDate"`
	Cost            *decimal.Decimal        `json:"cost,omitempty"`
	Status          string                  `json:"status"`
	Files           []FileAttachmentPayload `json:"files"`
}
