package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID             uuid.UUID        `json:"patient_id" validate:"required"`
	ProfessionalProfileID uuid.UUID        `json:"professional_profile_id" validate:"required"`
	ScheduledAt           time.Time        `json:"scheduled_at" validate:"required"`
	DurationMinutes       int              `json:"duration_minutes" validate:"required,min=5,max=480"`
	Type                  string           `json:"type" validate:"omitempty,oneof=CONSULTA TAREFA LEMBRETE NOTA REUNIAO"`
	GroupID               *uuid.UUID       `json:"group_id" validate:"omitempty"`
	PriceOverride         *decimal.Decimal `json:"price_override" validate:"omitempty"`
	Notes                 string           `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AGENDADO CONFIRMADO FINALIZADO CANCELADO_ACORDADO CANCELADO_FALTA CANCELADO_PROFISSIONAL"`
}

type ListAppointmentsRequest struct {
	PatientID             *uuid.UUID `json:"patient_id"`
	ProfessionalProfileID *uuid.UUID `json:"professional_profile_id"`
	From                  *time.Time `json:"from"`
	To                    *time.Time `json:"to"`
	Status                *string    `json:"status"`
	BillableOnly          bool       `json:"billable_only"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                    uuid.UUID        `json:"id"`
	PatientID             uuid.UUID        `json:"patient_id"`
	PatientName           string           `json:"patient_name,omitempty"`
	ProfessionalProfileID uuid.UUID        `json:"professional_profile_id"`
	ScheduledAt           time.Time        `json:"scheduled_at"`
	EndAt                 time.Time        `json:"end_at"`
	Status                string           `json:"status"`
	Type                  string           `json:"type"`
	RecurrenceID          *uuid.UUID       `json:"recurrence_id,omitempty"`
	GroupID               *uuid.UUID       `json:"group_id,omitempty"`
	PriceOverride         *decimal.Decimal `json:"price_override,omitempty"`
	CreditGenerated       bool             `json:"credit_generated"`
	Notes                 string           `json:"notes,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
