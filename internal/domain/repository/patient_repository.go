package repository

import (
	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByClinicAndID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Patient, error)
	FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Deactivate(db *gorm.DB, clinicID, id uuid.UUID) (int64, error)
}
