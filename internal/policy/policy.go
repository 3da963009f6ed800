// Package policy decides whether the current session may view a requested
// resource. It is a pure function of (session, required roles); navigation
// on a deny is the delivery layer's job.
package policy

import (
	"dental-center-management/internal/domain/entity"
)

// Decision is the outcome of a policy evaluation, including where the
// caller should be redirected on a deny.
type Decision int

const (
	// Allow grants access to the requested resource.
	Allow Decision = iota
	// DenyToLogin denies access; the caller should be sent to the login
	// view.
	DenyToLogin
	// DenyToHome denies access; the caller should be sent to the
	// default/home view.
	DenyToHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyToLogin:
		return "deny-to-login"
	case DenyToHome:
		return "deny-to-home"
	default:
		return "unknown"
	}
}

// Policy evaluates access rules against the active session.
type Policy struct {
	// RestrictPatientRecords, when enabled, additionally limits a
	// Patient-role session to its own patient record. Disabled by
	// default: as shipped, any authenticated user can view any patient
	// detail by id.
	RestrictPatientRecords bool
}

// Evaluate applies the rules in order: no session denies to login; a
// non-empty required-role set not containing the session's role denies to
// home; anything else is allowed.
func (p Policy) Evaluate(user *entity.User, requiredRoles []entity.Role) Decision {
	if user == nil {
		return DenyToLogin
	}
	if len(requiredRoles) > 0 && !containsRole(requiredRoles, user.Role) {
		return DenyToHome
	}
	return Allow
}

// EvaluateRecord applies Evaluate and, only when RestrictPatientRecords
// is enabled, denies a Patient-role session access to a patient record
// other than its own.
func (p Policy) EvaluateRecord(user *entity.User, requiredRoles []entity.Role, patientID string) Decision {
	if d := p.Evaluate(user, requiredRoles); d != Allow {
		return d
	}
	if p.RestrictPatientRecords && user.Role == entity.RolePatient && patientID != "" && patientID != user.PatientID {
		return DenyToHome
	}
	return Allow
}

func containsRole(roles []entity.Role, role entity.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
