package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                    patient.ID,
		ProfessionalProfileID: patient.ProfessionalProfileID,
		FullName:              patient.FullName,
		MotherName:            patient.MotherName,
		FatherName:            patient.FatherName,
		Phone:                 patient.Phone,
		Email:                 patient.Email,
		DateOfBirth:           patient.DateOfBirth,
		BillingMode:           string(patient.BillingMode),
		SessionFee:            patient.SessionFee,
		MonthlyFee:            patient.MonthlyFee,
		MessageTemplate:       patient.MessageTemplate,
		ShowAppointmentDays:   patient.ShowsAppointmentDays(),
		CreatedAt:             patient.CreatedAt,
		UpdatedAt:             patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of
// PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
