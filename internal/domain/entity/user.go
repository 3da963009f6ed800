package entity

import "strings"

// Role represents a user role in the system
type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

// User represents an entry of the seeded user registry.
// The registry is fixed at first run; the application never creates,
// edits, or deletes users.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// PatientID links a Patient-role user to exactly one Patient record.
	PatientID string `json:"patientId,omitempty"`
}

// MatchesCredentials reports whether the given credentials authenticate
// this user. Email comparison is case-insensitive, password is an exact
// plaintext match (the registry stores plaintext passwords).
func (u *User) MatchesCredentials(email, password string) bool {
	return strings.EqualFold(u.Email, email) && u.Password == password
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
