package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// Includes ProfessionalProfile if it is loaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		ClinicID:  user.ClinicID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.ProfessionalProfile != nil {
		response.ProfessionalProfile = ProfessionalToResponse(user.ProfessionalProfile)
	}

	return response
}
