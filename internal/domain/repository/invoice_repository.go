package repository

import (
	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	// FindByPeriodKey looks up the unique invoice for
	// (clinic, patient, month, year), items preloaded.
	FindByPeriodKey(db *gorm.DB, clinicID, patientID uuid.UUID, month, year int) (*entity.Invoice, error)
	FindByPeriod(db *gorm.DB, clinicID uuid.UUID, month, year int, professionalProfileID *uuid.UUID) ([]entity.Invoice, error)
	Update(db *gorm.DB, invoice *entity.Invoice) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type InvoiceItemRepository interface {
	CreateBatch(db *gorm.DB, items []entity.InvoiceItem) error
	Create(db *gorm.DB, item *entity.InvoiceItem) error
	FindByInvoice(db *gorm.DB, invoiceID uuid.UUID) ([]entity.InvoiceItem, error)
	// DeleteAutoGenerated removes items owned by regeneration: those linked
	// to an appointment, CREDITO items stamped with creditDescription, and
	// the consolidated monthly line stamped with monthlyDescription.
	DeleteAutoGenerated(db *gorm.DB, invoiceID uuid.UUID, creditDescription, monthlyDescription string) (int64, error)
	DeleteByInvoice(db *gorm.DB, invoiceID uuid.UUID) error
}
