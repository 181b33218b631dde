package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateRecurrenceRequest struct {
	PatientID             uuid.UUID `json:"patient_id" validate:"required"`
	ProfessionalProfileID uuid.UUID `json:"professional_profile_id" validate:"required"`
	RecurrenceType        string    `json:"recurrence_type" validate:"required,oneof=WEEKLY BIWEEKLY MONTHLY"`
	DayOfWeek             int       `json:"day_of_week" validate:"min=0,max=6"`
	StartDate             string    `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime             string    `json:"start_time" validate:"required"` // Format: HH:MM
	DurationMinutes       int       `json:"duration_minutes" validate:"required,min=5,max=480"`
	EndType               string    `json:"end_type" validate:"omitempty,oneof=BY_DATE BY_OCCURRENCES INDEFINITE"`
	EndDate               *string   `json:"end_date" validate:"omitempty"` // Format: YYYY-MM-DD
	MaxOccurrences        *int      `json:"max_occurrences" validate:"omitempty,min=1"`
}

// UpdateRecurrenceRequest mutates a rule. When ApplyToFuture is set, the
// rule's not-yet-occurred AGENDADO appointments are rebuilt from the updated
// rule.
type UpdateRecurrenceRequest struct {
	RecurrenceType  *string `json:"recurrence_type" validate:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY"`
	DayOfWeek       *int    `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime       *string `json:"start_time" validate:"omitempty"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	EndType         *string `json:"end_type" validate:"omitempty,oneof=BY_DATE BY_OCCURRENCES INDEFINITE"`
	EndDate         *string `json:"end_date" validate:"omitempty"`
	MaxOccurrences  *int    `json:"max_occurrences" validate:"omitempty,min=1"`
	ApplyToFuture   bool    `json:"apply_to_future"`
}

type AddRecurrenceExceptionRequest struct {
	Date string `json:"date" validate:"required"` // Format: YYYY-MM-DD
}

// Response DTOs

type RecurrenceResponse struct {
	ID                    uuid.UUID  `json:"id"`
	PatientID             uuid.UUID  `json:"patient_id"`
	PatientName           string     `json:"patient_name,omitempty"`
	ProfessionalProfileID uuid.UUID  `json:"professional_profile_id"`
	RecurrenceType        string     `json:"recurrence_type"`
	DayOfWeek             int        `json:"day_of_week"`
	StartDate             time.Time  `json:"start_date"`
	StartTime             string     `json:"start_time"`
	DurationMinutes       int        `json:"duration_minutes"`
	EndType               string     `json:"end_type"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	MaxOccurrences        *int       `json:"max_occurrences,omitempty"`
	Exceptions            []string   `json:"exceptions,omitempty"`
	IsActive              bool       `json:"is_active"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type RecurrenceListResponse struct {
	Recurrences []RecurrenceResponse `json:"recurrences"`
	Total       int                  `json:"total"`
}

// RecurrenceMaterializeResponse reports how many appointments an expansion
// produced
type RecurrenceMaterializeResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
