package repository

import (
	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecurrenceRepository interface {
	Create(db *gorm.DB, rule *entity.AppointmentRecurrence) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentRecurrence, error)
	FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.AppointmentRecurrence, error)
	FindActiveByPatient(db *gorm.DB, clinicID, patientID uuid.UUID) ([]entity.AppointmentRecurrence, error)
	Update(db *gorm.DB, rule *entity.AppointmentRecurrence) error
}
