package store

import (
	"dental-center-management/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Fixed bootstrap data, written once on first run when no persisted copy
// exists. Matches the shipped sample data of the dashboard.

func bootstrapUsers() []entity.User {
	return []entity.User{
		{ID: "1", Role: entity.RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
		{ID: "2", Role: entity.RolePatient, Email: "john@entnt.in", Password: "patient123", PatientID: "p1"},
	}
}

func samplePatients() []entity.Patient {
	return []entity.Patient{
		{
			ID:         "p1",
			Name:       "John Doe",
			DOB:        "1990-05-10",
			Contact:    "1234567890",
			HealthInfo: "No allergies",
		},
	}
}

func sampleIncidents() []entity.Incident {
	cost := decimal.NewFromInt(80)
	return []entity.Incident{
		{
			ID:              "i1",
			PatientID:       "p1",
			Title:           "Toothache",
			Description:     "Upper molar pain",
			Comments:        "Sensitive to cold",
			AppointmentDate: "2025-07-01T10:00:00",
			Cost:            &cost,
			Status:          entity.StatusCompleted,
			Files: []entity.FileAttachment{
				{Name: "invoice.pdf", URL: "data:application/pdf;base64,JVBERi0xLjQ="},
				{Name: "xray.png", URL: "data:image/png;base64,iVBORw0KGgo="},
			},
		},
	}
}
