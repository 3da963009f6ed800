package dto

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

// UserResponse is the session user as exposed to clients. The registry's
// password is never serialized here.
type UserResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	PatientID string `json:"patientId,omitempty"`
}
