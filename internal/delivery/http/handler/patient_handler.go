package handler

import (
	"encoding/json"
	"net/http"

	"dental-center-management/internal/converter"
	"dental-center-management/internal/delivery/dto"
	"dental-center-management/internal/delivery/http/middleware"
	"dental-center-management/internal/policy"
	"dental-center-management/internal/store"
	"dental-center-management/pkg/response"
	"dental-center-management/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	entities  *store.EntityStore
	policy    policy.Policy
	validator *validator.CustomValidator
}

func NewPatientHandler(entities *store.EntityStore, pol policy.Policy, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		entities:  entities,
		policy:    pol,
		validator: validator,
	}
}

// GetAllPatients returns the full patient collection in insertion order.
func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Patients retrieved successfully", converter.PatientsToResponse(h.entities.Patients()))
}

// GetPatient returns one patient record. Any authenticated user may view
// any record unless the restrictive record policy is enabled.
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, _ := middleware.GetUserFromContext(r.Context())
	if h.policy.EvaluateRecord(user, nil, id) != policy.Allow {
		response.DenyToHome(w)
		return
	}

	patient, found := h.entities.FindPatient(id)
	if !found {
		response.NotFound(w, "Patient not found")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", converter.PatientToResponse(&patient))
}

// CreatePatient adds a patient record
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.entities.AddPatient(r.Context(), converter.CreatePatientRequestToEntity(&req))
	if err != nil {
		response.InternalServerError(w, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", converter.PatientToResponse(&patient))
}

// UpdatePatient merges a partial update into a patient record
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	found, err := h.entities.UpdatePatient(r.Context(), id, converter.UpdatePatientRequestToPatch(&req))
	if err != nil {
		response.InternalServerError(w, "Failed to update patient")
		return
	}
	if !found {
		response.NotFound(w, "Patient not found")
		return
	}

	patient, _ := h.entities.FindPatient(id)
	response.Success(w, http.StatusOK, "Patient updated successfully", converter.PatientToResponse(&patient))
}

// DeletePatient removes a patient and, as one logical operation, every
// incident referencing it.
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	found, err := h.entities.DeletePatient(r.Context(), id)
	if err != nil {
		response.InternalServerError(w, "Failed to delete patient")
		return
	}
	if !found {
		response.NotFound(w, "Patient not found")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
