package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingMode defines how a patient's monthly invoice is priced
type BillingMode string

const (
	BillingModePerSession   BillingMode = "PER_SESSION"
	BillingModeMonthlyFixed BillingMode = "MONTHLY_FIXED"
)

// Patient represents a clinic patient record with billing settings
type Patient struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID              uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ProfessionalProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_profile_id"`
	FullName              string    `gorm:"type:varchar(255);not null" json:"full_name"`
	MotherName            string    `gorm:"type:varchar(255)" json:"mother_name,omitempty"`
	FatherName            string    `gorm:"type:varchar(255)" json:"father_name,omitempty"`
	Phone                 string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email                 string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	DateOfBirth           *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`

	// Billing settings
	BillingMode         BillingMode     `gorm:"type:varchar(20);not null;default:'PER_SESSION'" json:"billing_mode"`
	SessionFee          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"session_fee"`
	MonthlyFee          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"monthly_fee"`
	MessageTemplate     *string         `gorm:"type:text" json:"message_template,omitempty"`
	ShowAppointmentDays *bool           `gorm:"not null;default:false" json:"show_appointment_days"`

	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic       Clinic              `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalProfileID" json:"professional,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// AppliedFee returns the unit fee used when invoicing this patient's sessions
func (p *Patient) AppliedFee() decimal.Decimal {
	return p.SessionFee
}

// ShowsAppointmentDays reports whether invoice item descriptions carry dates
func (p *Patient) ShowsAppointmentDays() bool {
	return p.ShowAppointmentDays != nil && *p.ShowAppointmentDays
}
