package converter

import (
	"dental-center-management/internal/delivery/dto"
	"dental-center-management/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:         patient.ID,
		Name:       patient.Name,
		DOB:        patient.DOB,
		Contact:    patient.Contact,
		HealthInfo: patient.HealthInfo,
	}
}

// PatientsToResponse converts a patient collection, preserving order.
func PatientsToResponse(patients []entity.Patient) []dto.PatientResponse {
	out := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		out = append(out, *PatientToResponse(&patients[i]))
	}
	return out
}

// CreatePatientRequestToEntity maps a create request to the entity fields
// the store fills in (the id is assigned by the store).
func CreatePatientRequestToEntity(req *dto.CreatePatientRequest) entity.Patient {
	return entity.Patient{
		Name:       req.Name,
		DOB:        req.DOB,
		Contact:    req.Contact,
		HealthInfo: req.HealthInfo,
	}
}

// UpdatePatientRequestToPatch maps a partial update request to a store
// patch.
func UpdatePatientRequestToPatch(req *dto.UpdatePatientRequest) entity.PatientPatch {
	return entity.PatientPatch{
		Name:       req.Name,
		DOB:        req.DOB,
		Contact:    req.Contact,
		HealthInfo: req.HealthInfo,
	}
}
