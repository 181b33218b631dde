package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// RecurrenceToResponse converts an AppointmentRecurrence entity to
// RecurrenceResponse DTO
func RecurrenceToResponse(rule *entity.AppointmentRecurrence) *dto.RecurrenceResponse {
	if rule == nil {
		return nil
	}

	return &dto.RecurrenceResponse{
		ID:                    rule.ID,
		PatientID:             rule.PatientID,
		PatientName:           rule.Patient.FullName,
		ProfessionalProfileID: rule.ProfessionalProfileID,
		RecurrenceType:        string(rule.RecurrenceType),
		DayOfWeek:             rule.DayOfWeek,
		StartDate:             rule.StartDate,
		StartTime:             rule.StartTime,
		DurationMinutes:       rule.DurationMinutes,
		EndType:               string(rule.EndType),
		EndDate:               rule.EndDate,
		MaxOccurrences:        rule.MaxOccurrences,
		Exceptions:            rule.Exceptions,
		IsActive:              rule.Active(),
		CreatedAt:             rule.CreatedAt,
		UpdatedAt:             rule.UpdatedAt,
	}
}

// RecurrencesToResponses converts a slice of AppointmentRecurrence entities
// to slice of RecurrenceResponse DTOs
func RecurrencesToResponses(rules []entity.AppointmentRecurrence) []dto.RecurrenceResponse {
	responses := make([]dto.RecurrenceResponse, len(rules))
	for i := range rules {
		responses[i] = *RecurrenceToResponse(&rules[i])
	}
	return responses
}
