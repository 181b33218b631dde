package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to
// AppointmentResponse DTO. PatientName is filled when the Patient relation
// is loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                    appointment.ID,
		PatientID:             appointment.PatientID,
		PatientName:           appointment.Patient.FullName,
		ProfessionalProfileID: appointment.ProfessionalProfileID,
		ScheduledAt:           appointment.ScheduledAt,
		EndAt:                 appointment.EndAt,
		Status:                string(appointment.Status),
		Type:                  string(appointment.Type),
		RecurrenceID:          appointment.RecurrenceID,
		GroupID:               appointment.GroupID,
		PriceOverride:         appointment.PriceOverride,
		CreditGenerated:       appointment.HasGeneratedCredit(),
		Notes:                 appointment.Notes,
		CreatedAt:             appointment.CreatedAt,
		UpdatedAt:             appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice
// of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
