package converter

import (
	"dental-center-management/internal/delivery/dto"
	"dental-center-management/internal/domain/entity"
)

// IncidentToResponse converts an Incident entity to its response DTO
func IncidentToResponse(incident *entity.Incident) *dto.IncidentResponse {
	if incident == nil {
		return nil
	}

	files := make([]dto.FileAttachmentPayload, 0, len(incident.Files))
	for _, f := range incident.Files {
		files = append(files, dto.FileAttachmentPayload{Name: f.Name, URL: f.URL})
	}

	return &dto.IncidentResponse{
		ID:              incident.ID,
		PatientID:       incident.PatientID,
		Title:           incident.Title,
		Description:     incident.Description,
		Comments:        incident.Comments,
		AppointmentDate: incident.AppointmentDate,
		Cost:            incident.Cost,
		Status:          string(incident.Status),
		Files:           files,
	}
}

// IncidentsToResponse converts an incident collection, preserving order.
func IncidentsToResponse(incidents []entity.Incident) []dto.IncidentResponse {
	out := make([]dto.IncidentResponse, 0, len(incidents))
	for i := range incidents {
		out = append(out, *IncidentToResponse(&incidents[i]))
	}
	return out
}

// CreateIncidentRequestToEntity maps a create request to the entity
// fields the store fills in (id, status default, files default).
func CreateIncidentRequestToEntity(req *dto.CreateIncidentRequest) entity.Incident {
	return entity.Incident{
		PatientID:       req.PatientID,
		Title:           req.Title,
		Description:     req.Description,
		Comments:        req.Comments,
		AppointmentDate: req.AppointmentDate,
		Cost:            req.Cost,
		Status:          entity.IncidentStatus(req.Status),
		Files:           filesToEntity(req.Files),
	}
}

// UpdateIncidentRequestToPatch maps a partial update request to a store
// patch.
func UpdateIncidentRequestToPatch(req *dto.UpdateIncidentRequest) entity.IncidentPatch {
	patch := entity.IncidentPatch{
		PatientID:       req.PatientID,
		Title:           req.Title,
		Description:     req.Description,
		Comments:        req.Comments,
		AppointmentDate: req.AppointmentDate,
		Cost:            req.Cost,
	}
	if req.Status != nil {
		status := entity.IncidentStatus(*req.Status)
		patch.Status = &status
	}
	if req.Files != nil {
		files := filesToEntity(*req.Files)
		patch.Files = &files
	}
	return patch
}

func filesToEntity(payloads []dto.FileAttachmentPayload) []entity.FileAttachment {
	if payloads == nil {
		return nil
	}
	files := make([]entity.FileAttachment, 0, len(payloads))
	for _, p := range payloads {
		files = append(files, entity.FileAttachment{Name: p.Name, URL: p.URL})
	}
	return files
}
