package converter

import (
	"dental-center-management/internal/delivery/dto"
	"dental-center-management/internal/domain/entity"
)

// UserToResponse converts a User entity to its response DTO, dropping the
// password.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Role:      string(user.Role),
		Email:     user.Email,
		PatientID: user.PatientID,
	}
}
