package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePatientRequest struct {
	ProfessionalProfileID uuid.UUID `json:"professional_profile_id" validate:"required"`
	FullName              string    `json:"full_name" validate:"required,min=2"`
	MotherName            string    `json:"mother_name" validate:"omitempty,min=2"`
	FatherName            string    `json:"father_name" validate:"omitempty,min=2"`
	Phone                 string    `json:"phone" validate:"omitempty,min=10,max=20"`
	Email                 string    `json:"email" validate:"omitempty,email"`
	DateOfBirth           string    `json:"date_of_birth" validate:"omitempty"` // Format: YYYY-MM-DD

	BillingMode         string          `json:"billing_mode" validate:"omitempty,oneof=PER_SESSION MONTHLY_FIXED"`
	SessionFee          decimal.Decimal `json:"session_fee" validate:"omitempty"`
	MonthlyFee          decimal.Decimal `json:"monthly_fee" validate:"omitempty"`
	ShowAppointmentDays bool            `json:"show_appointment_days"`
}

type UpdatePatientRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=2"`
	MotherName  *string `json:"mother_name" validate:"omitempty"`
	FatherName  *string `json:"father_name" validate:"omitempty"`
	Phone       *string `json:"phone" validate:"omitempty,min=10,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty"`
}

// UpdateBillingSettingsRequest updates only the patient's billing contract
type UpdateBillingSettingsRequest struct {
	BillingMode         *string          `json:"billing_mode" validate:"omitempty,oneof=PER_SESSION MONTHLY_FIXED"`
	SessionFee          *decimal.Decimal `json:"session_fee" validate:"omitempty"`
	MonthlyFee          *decimal.Decimal `json:"monthly_fee" validate:"omitempty"`
	MessageTemplate     *string          `json:"message_template" validate:"omitempty"`
	ShowAppointmentDays *bool            `json:"show_appointment_days" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID                    uuid.UUID       `json:"id"`
	ProfessionalProfileID uuid.UUID       `json:"professional_profile_id"`
	FullName              string          `json:"full_name"`
	MotherName            string          `json:"mother_name,omitempty"`
	FatherName            string          `json:"father_name,omitempty"`
	Phone                 string          `json:"phone,omitempty"`
	Email                 string          `json:"email,omitempty"`
	DateOfBirth           *time.Time      `json:"date_of_birth,omitempty"`
	BillingMode           string          `json:"billing_mode"`
	SessionFee            decimal.Decimal `json:"session_fee"`
	MonthlyFee            decimal.Decimal `json:"monthly_fee"`
	MessageTemplate       *string         `json:"message_template,omitempty"`
	ShowAppointmentDays   bool            `json:"show_appointment_days"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
