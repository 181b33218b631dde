package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfessionalProfile holds clinic-professional data linked to a user account
type ProfessionalProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	ClinicID           uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	RegistrationNumber string    `gorm:"type:varchar(50)" json:"registration_number,omitempty"`
	Specialty          string    `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}
