package repository

import (
	"errors"
	"time"

	"clinic-saas-backend/internal/domain/entity"
	domainRepo "clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionCreditRepository struct{}

func NewSessionCreditRepository() domainRepo.SessionCreditRepository {
	return &sessionCreditRepository{}
}

func (r *sessionCreditRepository) Create(db *gorm.DB, credit *entity.SessionCredit) error {
	return db.Create(credit).Error
}

func (r *sessionCreditRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.SessionCredit, error) {
	var credit entity.SessionCredit
	err := db.Where("id = ?", id).First(&credit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &credit, nil
}

func (r *sessionCreditRepository) FindByOriginAppointment(db *gorm.DB, appointmentID uuid.UUID) (*entity.SessionCredit, error) {
	var credit entity.SessionCredit
	err := db.Where("origin_appointment_id = ?", appointmentID).First(&credit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &credit, nil
}

func (r *sessionCreditRepository) FindUnconsumed(db *gorm.DB, clinicID, patientID, professionalProfileID uuid.UUID) ([]entity.SessionCredit, error) {
	var credits []entity.SessionCredit
	err := db.Where("clinic_id = ? AND patient_id = ? AND professional_profile_id = ? AND invoice_id IS NULL",
		clinicID, patientID, professionalProfileID).
		Order("created_at ASC").
		Find(&credits).Error
	if err != nil {
		return nil, err
	}
	return credits, nil
}

// Consume atomically links the credit to an invoice ONLY if it is still
// unconsumed. Returns affected rows: 1 = consumed, 0 = already taken
// (prevents double-consumption race).
func (r *sessionCreditRepository) Consume(db *gorm.DB, id uuid.UUID, invoiceID uuid.UUID, consumedAt time.Time) (int64, error) {
	result := db.Model(&entity.SessionCredit{}).
		Where("id = ? AND invoice_id IS NULL", id).
		Updates(map[string]interface{}{
			"invoice_id":  invoiceID,
			"consumed_at": consumedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *sessionCreditRepository) ReleaseByInvoice(db *gorm.DB, invoiceID uuid.UUID) (int64, error) {
	result := db.Model(&entity.SessionCredit{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]interface{}{
			"invoice_id":  nil,
			"consumed_at": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *sessionCreditRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.SessionCredit{}, "id = ?", id).Error
}
