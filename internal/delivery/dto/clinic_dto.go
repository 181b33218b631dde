package dto

import (
	"time"

	"github.com/google/uuid"

	"clinic-saas-backend/internal/domain/entity"
)

// Request DTOs

type UpdateClinicRequest struct {
	Name                   *string `json:"name" validate:"omitempty,min=2"`
	Phone                  *string `json:"phone" validate:"omitempty,min=10,max=20"`
	DefaultMessageTemplate *string `json:"default_message_template" validate:"omitempty"`
	InvoiceDueDay          *int    `json:"invoice_due_day" validate:"omitempty,min=1,max=28"`
	IsActive               *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type ClinicResponse struct {
	ID                     uuid.UUID           `json:"id"`
	Name                   string              `json:"name"`
	Document               string              `json:"document"`
	Phone                  string              `json:"phone,omitempty"`
	DefaultMessageTemplate *string             `json:"default_message_template,omitempty"`
	InvoiceDueDay          int                 `json:"invoice_due_day"`
	IsActive               bool                `json:"is_active"`
	Stats                  *entity.ClinicStats `json:"stats,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
}

type ClinicListResponse struct {
	Clinics []ClinicResponse `json:"clinics"`
	Total   int              `json:"total"`
}
