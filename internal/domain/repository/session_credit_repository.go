package repository

import (
	"time"

	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionCreditRepository interface {
	Create(db *gorm.DB, credit *entity.SessionCredit) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.SessionCredit, error)
	FindByOriginAppointment(db *gorm.DB, appointmentID uuid.UUID) (*entity.SessionCredit, error)
	// FindUnconsumed returns credits not currently linked to any invoice,
	// oldest first.
	FindUnconsumed(db *gorm.DB, clinicID, patientID, professionalProfileID uuid.UUID) ([]entity.SessionCredit, error)
	// Consume links the credit to an invoice exactly once. Returns affected
	// rows: 1 = consumed, 0 = already consumed by another invoice.
	Consume(db *gorm.DB, id uuid.UUID, invoiceID uuid.UUID, consumedAt time.Time) (int64, error)
	// ReleaseByInvoice unlinks every credit consumed by the invoice, making
	// them consumable again.
	ReleaseByInvoice(db *gorm.DB, invoiceID uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}
