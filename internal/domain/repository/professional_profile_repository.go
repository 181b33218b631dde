package repository

import (
	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalProfileRepository interface {
	Create(db *gorm.DB, profile *entity.ProfessionalProfile) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error)
	FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.ProfessionalProfile, error)
	Update(db *gorm.DB, profile *entity.ProfessionalProfile) error
}
