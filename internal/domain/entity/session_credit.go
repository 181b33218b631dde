package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionCredit is a pending reimbursement unit created when a session is
// cancelled under the agreed policy. A credit is consumed by at most one
// invoice at a time; releasing it (invoice deletion or regeneration) makes
// it consumable again.
type SessionCredit struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID              uuid.UUID  `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProfessionalProfileID uuid.UUID  `gorm:"type:uuid;not null;index" json:"professional_profile_id"`
	OriginAppointmentID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"origin_appointment_id"`
	InvoiceID             *uuid.UUID `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	ConsumedAt            *time.Time `json:"consumed_at,omitempty"`
	Reason                string     `gorm:"type:varchar(255)" json:"reason,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient           Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	OriginAppointment *Appointment `gorm:"foreignKey:OriginAppointmentID" json:"origin_appointment,omitempty"`
}

func (SessionCredit) TableName() string {
	return "session_credits"
}

// IsConsumed reports whether the credit is currently linked to an invoice
func (c *SessionCredit) IsConsumed() bool {
	return c.InvoiceID != nil
}
