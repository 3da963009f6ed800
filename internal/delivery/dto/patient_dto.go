package dto

// CreatePatientRequest carries the fields of a new patient record.
type CreatePatientRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	DOB        string `json:"dob" validate:"required,datetime=2006-01-02"`
	Contact    string `json:"contact" validate:"required"`
	HealthInfo string `json:"healthInfo" validate:"omitempty"`
}

// UpdatePatientRequest is a partial update; absent fields are left
// untouched.
type UpdatePatientRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2"`
	DOB        *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Contact    *string `json:"contact" validate:"omitempty"`
	HealthInfo *string `json:"healthInfo" validate:"omitempty"`
}

type PatientResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	Contact    string `json:"contact"`
	HealthInfo string `json:"healthInfo"`
}
