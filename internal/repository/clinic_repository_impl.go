package repository

import (
	"errors"

	"clinic-saas-backend/internal/domain/entity"
	domainRepo "clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

func (r *clinicRepository) Create(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Create(clinic).Error
}

func (r *clinicRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("id = ?", id).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindAll(db *gorm.DB) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	err := db.Order("created_at DESC").Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *clinicRepository) Update(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Save(clinic).Error
}

func (r *clinicRepository) CountStats(db *gorm.DB, id uuid.UUID) (*entity.ClinicStats, error) {
	var stats entity.ClinicStats

	if err := db.Model(&entity.Patient{}).Where("clinic_id = ?", id).Count(&stats.Patients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.ProfessionalProfile{}).Where("clinic_id = ?", id).Count(&stats.Professionals).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Appointment{}).Where("clinic_id = ?", id).Count(&stats.Appointments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Invoice{}).Where("clinic_id = ?", id).Count(&stats.Invoices).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
