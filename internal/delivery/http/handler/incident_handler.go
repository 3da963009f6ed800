package handler

import (
	"encoding/json"
	"net/http"

	"dental-center-management/internal/converter"
	"dental-center-management/internal/delivery/dto"
	"dental-center-management/internal/delivery/http/middleware"
	"dental-center-management/internal/domain/entity"
	"dental-center-management/internal/store"
	"dental-center-management/pkg/attachment"
	"dental-center-management/pkg/response"
	"dental-center-management/pkg/validator"

	"github.com/gorilla/mux"
)

// maxUploadBytes bounds one multipart upload; attachments are embedded in
// the incident record, so oversized files would bloat every snapshot.
const maxUploadBytes = 32 << 20

type IncidentHandler struct {
	entities  *store.EntityStore
	validator *validator.CustomValidator
}

func NewIncidentHandler(entities *store.EntityStore, validator *validator.CustomValidator) *IncidentHandler {
	return &IncidentHandler{
		entities:  entities,
		validator: validator,
	}
}

// GetAllIncidents returns incidents in insertion order. A Patient-role
// session only sees incidents of its own patient record.
func (h *IncidentHandler) GetAllIncidents(w http.ResponseWriter, r *http.Request) {
	incidents := h.entities.Incidents()

	if user, ok := middleware.GetUserFromContext(r.Context()); ok && user.Role == entity.RolePatient {
		own := make([]entity.Incident, 0, len(incidents))
		for _, in := range incidents {
			if in.PatientID == user.PatientID {
				own = append(own, in)
			}
		}
		incidents = own
	}

	response.Success(w, http.StatusOK, "Incidents retrieved successfully", converter.IncidentsToResponse(incidents))
}

// CreateIncident adds a treatment incident
func (h *IncidentHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	incident, err := h.entities.AddIncident(r.Context(), converter.CreateIncidentRequestToEntity(&req))
	if err != nil {
		response.InternalServerError(w, "Failed to create incident")
		return
	}

	response.Success(w, http.StatusCreated, "Incident created successfully", converter.IncidentToResponse(&incident))
}

// UpdateIncident merges a partial update into an incident
func (h *IncidentHandler) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.UpdateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	found, err := h.entities.UpdateIncident(r.Context(), id, converter.UpdateIncidentRequestToPatch(&req))
	if err != nil {
		response.InternalServerError(w, "Failed to update incident")
		return
	}
	if !found {
		response.NotFound(w, "Incident not found")
		return
	}

	incident, _ := h.entities.FindIncident(id)
	response.Success(w, http.StatusOK, "Incident updated successfully", converter.IncidentToResponse(&incident))
}

// DeleteIncident removes an incident
func (h *IncidentHandler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	found, err := h.entities.DeleteIncident(r.Context(), id)
	if err != nil {
		response.InternalServerError(w, "Failed to delete incident")
		return
	}
	if !found {
		response.NotFound(w, "Incident not found")
		return
	}

	response.Success(w, http.StatusOK, "Incident deleted successfully", nil)
}

// UploadFiles attaches uploaded files to an incident. All files are read
// before a single batched update commits them, in submission order.
func (h *IncidentHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	incident, found := h.entities.FindIncident(id)
	if !found {
		response.NotFound(w, "Incident not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart request", nil)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		response.Error(w, http.StatusBadRequest, "No files submitted", nil)
		return
	}

	attachments, err := attachment.ReadAll(headers)
	if err != nil {
		response.InternalServerError(w, "Failed to read uploaded files")
		return
	}

	files := append(incident.Files, attachments...)
	found, err = h.entities.UpdateIncident(r.Context(), id, entity.IncidentPatch{Files: &files})
	if err != nil {
		response.InternalServerError(w, "Failed to attach files")
		return
	}
	if !found {
		response.NotFound(w, "Incident not found")
		return
	}

	updated, _ := h.entities.FindIncident(id)
	response.Success(w, http.StatusOK, "Files attached successfully", converter.IncidentToResponse(&updated))
}
