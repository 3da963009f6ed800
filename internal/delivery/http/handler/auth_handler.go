package handler

import (
	"encoding/json"
	"net/http"

	"dental-center-management/internal/converter"
	"dental-center-management/internal/delivery/dto"
	"dental-center-management/internal/delivery/http/middleware"
	"dental-center-management/internal/store"
	"dental-center-management/pkg/response"
	"dental-center-management/pkg/validator"
)

type AuthHandler struct {
	sessions  *store.SessionStore
	validator *validator.CustomValidator
}

func NewAuthHandler(sessions *store.SessionStore, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		validator: validator,
	}
}

// Login handles user login. A failed match reports one message with no
// detail on which credential was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	ok, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.InternalServerError(w, "Failed to login")
		return
	}
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", converter.UserToResponse(h.sessions.CurrentUser()))
}

// Logout clears the session. Always succeeds from the client's view
// unless persistence itself fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser returns the authenticated session user
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", converter.UserToResponse(user))
}
