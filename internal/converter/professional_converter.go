package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// ProfessionalToResponse converts a ProfessionalProfile entity to
// ProfessionalResponse DTO. FullName and Email are filled when the User
// relation is loaded.
func ProfessionalToResponse(profile *entity.ProfessionalProfile) *dto.ProfessionalResponse {
	if profile == nil {
		return nil
	}

	return &dto.ProfessionalResponse{
		ID:                 profile.ID,
		UserID:             profile.UserID,
		FullName:           profile.User.FullName,
		Email:              profile.User.Email,
		RegistrationNumber: profile.RegistrationNumber,
		Specialty:          profile.Specialty,
		CreatedAt:          profile.CreatedAt,
	}
}

// ProfessionalsToResponses converts a slice of ProfessionalProfile entities
// to slice of ProfessionalResponse DTOs
func ProfessionalsToResponses(profiles []entity.ProfessionalProfile) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(profiles))
	for i := range profiles {
		responses[i] = *ProfessionalToResponse(&profiles[i])
	}
	return responses
}
