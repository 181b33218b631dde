package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is the tenant root. Every scheduling and billing row is scoped to
// exactly one clinic.
type Clinic struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                   string    `gorm:"type:varchar(255);not null" json:"name"`
	Document               string    `gorm:"type:varchar(20);uniqueIndex" json:"document"`
	Phone                  string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	DefaultMessageTemplate *string   `gorm:"type:text" json:"default_message_template,omitempty"`
	InvoiceDueDay          int       `gorm:"not null;default:10" json:"invoice_due_day"`
	IsActive               *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Users    []User    `gorm:"foreignKey:ClinicID" json:"users,omitempty"`
	Patients []Patient `gorm:"foreignKey:ClinicID" json:"patients,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}

// ClinicStats aggregates per-clinic counts for the superadmin panel.
// Not a table; scanned from a count query.
type ClinicStats struct {
	Patients      int64 `json:"patients"`
	Professionals int64 `json:"professionals"`
	Appointments  int64 `json:"appointments"`
	Invoices      int64 `json:"invoices"`
}
