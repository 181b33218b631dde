package repository

import (
	"errors"

	"clinic-saas-backend/internal/domain/entity"
	domainRepo "clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recurrenceRepository struct{}

func NewRecurrenceRepository() domainRepo.RecurrenceRepository {
	return &recurrenceRepository{}
}

func (r *recurrenceRepository) Create(db *gorm.DB, rule *entity.AppointmentRecurrence) error {
	return db.Create(rule).Error
}

func (r *recurrenceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentRecurrence, error) {
	var rule entity.AppointmentRecurrence
	err := db.Preload("Patient").Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *recurrenceRepository) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.AppointmentRecurrence, error) {
	var rules []entity.AppointmentRecurrence
	err := db.Preload("Patient").
		Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *recurrenceRepository) FindActiveByPatient(db *gorm.DB, clinicID, patientID uuid.UUID) ([]entity.AppointmentRecurrence, error) {
	var rules []entity.AppointmentRecurrence
	err := db.Where("clinic_id = ? AND patient_id = ? AND is_active = ?", clinicID, patientID, true).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *recurrenceRepository) Update(db *gorm.DB, rule *entity.AppointmentRecurrence) error {
	return db.Save(rule).Error
}
