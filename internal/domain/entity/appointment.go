package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusAgendado              AppointmentStatus = "AGENDADO"
	StatusConfirmado            AppointmentStatus = "CONFIRMADO"
	StatusFinalizado            AppointmentStatus = "FINALIZADO"
	StatusCanceladoAcordado     AppointmentStatus = "CANCELADO_ACORDADO"
	StatusCanceladoFalta        AppointmentStatus = "CANCELADO_FALTA"
	StatusCanceladoProfissional AppointmentStatus = "CANCELADO_PROFISSIONAL"
)

// ValidStatuses lists every accepted appointment status
var ValidStatuses = []AppointmentStatus{
	StatusAgendado,
	StatusConfirmado,
	StatusFinalizado,
	StatusCanceladoAcordado,
	StatusCanceladoFalta,
	StatusCanceladoProfissional,
}

// IsBillable reports whether the status counts toward invoicing
func (s AppointmentStatus) IsBillable() bool {
	switch s {
	case StatusAgendado, StatusConfirmado, StatusFinalizado:
		return true
	}
	return false
}

// IsCancellation reports whether the status is any cancellation variant
func (s AppointmentStatus) IsCancellation() bool {
	switch s {
	case StatusCanceladoAcordado, StatusCanceladoFalta, StatusCanceladoProfissional:
		return true
	}
	return false
}

// IsValid reports whether the status is a known value
func (s AppointmentStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// AppointmentType represents the kind of calendar event
type AppointmentType string

const (
	TypeConsulta AppointmentType = "CONSULTA"
	TypeTarefa   AppointmentType = "TAREFA"
	TypeLembrete AppointmentType = "LEMBRETE"
	TypeNota     AppointmentType = "NOTA"
	TypeReuniao  AppointmentType = "REUNIAO"
)

// IsValid reports whether the type is a known value
func (t AppointmentType) IsValid() bool {
	switch t {
	case TypeConsulta, TypeTarefa, TypeLembrete, TypeNota, TypeReuniao:
		return true
	}
	return false
}

// Appointment represents one scheduled event.
// Cancellation is a status change, not a deletion; the only physical delete
// happens when a recurrence exception removes a not-yet-occurred slot.
type Appointment struct {
	ID                    uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID              uuid.UUID         `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProfessionalProfileID uuid.UUID         `gorm:"type:uuid;not null;index" json:"professional_profile_id"`
	ScheduledAt           time.Time         `gorm:"not null;index" json:"scheduled_at"`
	EndAt                 time.Time         `gorm:"not null" json:"end_at"`
	Status                AppointmentStatus `gorm:"type:varchar(30);not null;default:'AGENDADO';index" json:"status"`
	Type                  AppointmentType   `gorm:"type:varchar(20);not null;default:'CONSULTA'" json:"type"`
	RecurrenceID          *uuid.UUID        `gorm:"type:uuid;index" json:"recurrence_id,omitempty"`
	GroupID               *uuid.UUID        `gorm:"type:uuid;index" json:"group_id,omitempty"`
	PriceOverride         *decimal.Decimal  `gorm:"type:numeric(12,2)" json:"price_override,omitempty"`
	CreditGenerated       *bool             `gorm:"not null;default:false" json:"credit_generated"`
	Notes                 string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt             time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      Patient                `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional ProfessionalProfile    `gorm:"foreignKey:ProfessionalProfileID" json:"professional,omitempty"`
	Recurrence   *AppointmentRecurrence `gorm:"foreignKey:RecurrenceID" json:"recurrence,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsBillable reports whether the appointment counts toward invoicing
func (a *Appointment) IsBillable() bool {
	return a.Status.IsBillable()
}

// HasGeneratedCredit reports whether an agreed cancellation already issued a
// session credit for this appointment
func (a *Appointment) HasGeneratedCredit() bool {
	return a.CreditGenerated != nil && *a.CreditGenerated
}

// UnitPrice returns the appointment's own price override when set, otherwise
// the given session fee
func (a *Appointment) UnitPrice(sessionFee decimal.Decimal) decimal.Decimal {
	if a.PriceOverride != nil {
		return *a.PriceOverride
	}
	return sessionFee
}
