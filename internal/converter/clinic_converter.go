package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// ClinicToResponse converts a Clinic entity to ClinicResponse DTO
func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}

	return &dto.ClinicResponse{
		ID:                     clinic.ID,
		Name:                   clinic.Name,
		Document:               clinic.Document,
		Phone:                  clinic.Phone,
		DefaultMessageTemplate: clinic.DefaultMessageTemplate,
		InvoiceDueDay:          clinic.InvoiceDueDay,
		IsActive:               clinic.IsActive != nil && *clinic.IsActive,
		CreatedAt:              clinic.CreatedAt,
		UpdatedAt:              clinic.UpdatedAt,
	}
}

// ClinicsToResponses converts a slice of Clinic entities to slice of
// ClinicResponse DTOs
func ClinicsToResponses(clinics []entity.Clinic) []dto.ClinicResponse {
	responses := make([]dto.ClinicResponse, len(clinics))
	for i := range clinics {
		responses[i] = *ClinicToResponse(&clinics[i])
	}
	return responses
}
