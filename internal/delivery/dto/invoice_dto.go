package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// GenerateInvoicesRequest triggers generation/regeneration of one clinic
// month. ProfessionalProfileID is optional for admins and resolved
// automatically for professional callers.
type GenerateInvoicesRequest struct {
	Month                 int        `json:"month" validate:"required,min=1,max=12"`
	Year                  int        `json:"year" validate:"required,min=2000,max=2100"`
	ProfessionalProfileID *uuid.UUID `json:"professional_profile_id" validate:"omitempty"`
}

type AddInvoiceItemRequest struct {
	Type        string          `json:"type" validate:"required,oneof=SESSAO_REGULAR SESSAO_EXTRA SESSAO_GRUPO REUNIAO_ESCOLA CREDITO"`
	Description string          `json:"description" validate:"required,min=2,max=255"`
	Quantity    int             `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

// Response DTOs

// GenerateInvoicesResponse reports the outcome of a period run
type GenerateInvoicesResponse struct {
	Generated int `json:"generated"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
}

type InvoiceItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	AppointmentID *uuid.UUID      `json:"appointment_id,omitempty"`
}

type InvoiceResponse struct {
	ID                    uuid.UUID             `json:"id"`
	PatientID             uuid.UUID             `json:"patient_id"`
	PatientName           string                `json:"patient_name,omitempty"`
	ProfessionalProfileID uuid.UUID             `json:"professional_profile_id"`
	Month                 int                   `json:"month"`
	Year                  int                   `json:"year"`
	Status                string                `json:"status"`
	TotalSessions         int                   `json:"total_sessions"`
	CreditsApplied        int                   `json:"credits_applied"`
	ExtrasAdded           int                   `json:"extras_added"`
	TotalAmount           decimal.Decimal       `json:"total_amount"`
	MessageBody           string                `json:"message_body,omitempty"`
	DueDate               time.Time             `json:"due_date"`
	SentAt                *time.Time            `json:"sent_at,omitempty"`
	PaidAt                *time.Time            `json:"paid_at,omitempty"`
	Items                 []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int               `json:"total"`
}
