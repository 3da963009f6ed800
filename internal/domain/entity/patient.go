package entity

// Patient represents a clinic patient record
type Patient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DOB        string `json:"dob"` // Format: YYYY-MM-DD
	Contact    string `json:"contact"`
	HealthInfo string `json:"healthInfo"`
}

// PatientPatch is a partial update of a Patient. Nil fields are left
// untouched by the merge.
type PatientPatch struct {
	Name       *string
	DOB        *string
	Contact    *string
	HealthInfo *string
}

// Apply merges the non-nil patch fields into the patient.
func (p PatientPatch) Apply(target *Patient) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.DOB != nil {
		target.DOB = *p.DOB
	}
	if p.Contact != nil {
		target.Contact = *p.Contact
	}
	if p.HealthInfo != nil {
		target.HealthInfo = *p.HealthInfo
	}
}
