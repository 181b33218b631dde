package repository

import (
	"errors"

	"clinic-saas-backend/internal/domain/entity"
	domainRepo "clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByClinicAndID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("Professional.User").
		Where("clinic_id = ? AND id = ?", clinicID, id).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Order("full_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}

// Deactivate soft-deletes the patient. Returns affected rows: 0 means the
// patient does not exist in this clinic or is already inactive.
func (r *patientRepository) Deactivate(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("clinic_id = ? AND id = ? AND is_active = ?", clinicID, id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
