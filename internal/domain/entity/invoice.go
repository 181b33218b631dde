package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing status of an invoice
type InvoiceStatus string

const (
	InvoicePendente  InvoiceStatus = "PENDENTE"
	InvoiceEnviado   InvoiceStatus = "ENVIADO"
	InvoicePago      InvoiceStatus = "PAGO"
	InvoiceCancelado InvoiceStatus = "CANCELADO"
)

// IsLocked reports whether regeneration must never touch this invoice
func (s InvoiceStatus) IsLocked() bool {
	return s == InvoicePago || s == InvoiceEnviado
}

// InvoiceItemType classifies an invoice line
type InvoiceItemType string

const (
	ItemSessaoRegular InvoiceItemType = "SESSAO_REGULAR"
	ItemSessaoExtra   InvoiceItemType = "SESSAO_EXTRA"
	ItemSessaoGrupo   InvoiceItemType = "SESSAO_GRUPO"
	ItemReuniaoEscola InvoiceItemType = "REUNIAO_ESCOLA"
	ItemCredito       InvoiceItemType = "CREDITO"
)

// Invoice aggregates one patient's billing for one (clinic, month, year)
type Invoice struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID              uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_period_key,priority:1" json:"clinic_id"`
	PatientID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_period_key,priority:2" json:"patient_id"`
	Month                 int             `gorm:"not null;uniqueIndex:idx_invoices_period_key,priority:3" json:"month"`
	Year                  int             `gorm:"not null;uniqueIndex:idx_invoices_period_key,priority:4" json:"year"`
	ProfessionalProfileID uuid.UUID       `gorm:"type:uuid;not null;index" json:"professional_profile_id"`
	Status                InvoiceStatus   `gorm:"type:varchar(20);not null;default:'PENDENTE';index" json:"status"`
	TotalSessions         int             `gorm:"not null;default:0" json:"total_sessions"`
	CreditsApplied        int             `gorm:"not null;default:0" json:"credits_applied"`
	ExtrasAdded           int             `gorm:"not null;default:0" json:"extras_added"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	MessageBody           string          `gorm:"type:text" json:"message_body,omitempty"`
	DueDate               time.Time       `gorm:"type:date" json:"due_date"`
	SentAt                *time.Time      `json:"sent_at,omitempty"`
	PaidAt                *time.Time      `json:"paid_at,omitempty"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// IsLocked reports whether regeneration must skip this invoice
func (i *Invoice) IsLocked() bool {
	return i.Status.IsLocked()
}

// InvoiceItem is one billing line. AppointmentID links auto-generated lines
// to their originating appointment; manually added lines carry nil and are
// preserved across regeneration. CREDITO lines carry negative quantity/total.
type InvoiceItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Type          InvoiceItemType `gorm:"type:varchar(20);not null" json:"type"`
	Description   string          `gorm:"type:varchar(255);not null" json:"description"`
	Quantity      int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	AppointmentID *uuid.UUID      `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	SortOrder     int             `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// IsAutoGenerated reports whether regeneration owns (and may replace) this
// line. creditDescription and monthlyDescription are the descriptions the
// builder stamps on CREDITO lines and on the consolidated monthly-fee line;
// both carry a nil AppointmentID and are only recognizable by description.
func (it *InvoiceItem) IsAutoGenerated(creditDescription, monthlyDescription string) bool {
	if it.AppointmentID != nil {
		return true
	}
	if it.Type == ItemCredito && it.Description == creditDescription {
		return true
	}
	return it.Type == ItemSessaoRegular && it.Description == monthlyDescription
}
