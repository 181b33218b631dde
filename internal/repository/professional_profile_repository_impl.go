package repository

import (
	"errors"

	"clinic-saas-backend/internal/domain/entity"
	domainRepo "clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type professionalProfileRepository struct{}

func NewProfessionalProfileRepository() domainRepo.ProfessionalProfileRepository {
	return &professionalProfileRepository{}
}

func (r *professionalProfileRepository) Create(db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return db.Create(profile).Error
}

func (r *professionalProfileRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ProfessionalProfile, error) {
	var profile entity.ProfessionalProfile
	err := db.Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *professionalProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var profile entity.ProfessionalProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *professionalProfileRepository) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.ProfessionalProfile, error) {
	var profiles []entity.ProfessionalProfile
	err := db.Preload("User").
		Where("clinic_id = ?", clinicID).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *professionalProfileRepository) Update(db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return db.Save(profile).Error
}
