package repository

import (
	"errors"

	"clinic-saas-backend/internal/domain/entity"
	domainRepo "clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Create(invoice).Error
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Patient").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_items.sort_order ASC")
		}).
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByPeriodKey(db *gorm.DB, clinicID, patientID uuid.UUID, month, year int) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("invoice_items.sort_order ASC")
	}).
		Where("clinic_id = ? AND patient_id = ? AND month = ? AND year = ?", clinicID, patientID, month, year).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByPeriod(db *gorm.DB, clinicID uuid.UUID, month, year int, professionalProfileID *uuid.UUID) ([]entity.Invoice, error) {
	query := db.Where("clinic_id = ? AND month = ? AND year = ?", clinicID, month, year)
	if professionalProfileID != nil {
		query = query.Where("professional_profile_id = ?", *professionalProfileID)
	}

	var invoices []entity.Invoice
	err := query.Preload("Patient").Order("created_at ASC").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Save(invoice).Error
}

func (r *invoiceRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Invoice{}, "id = ?", id).Error
}

type invoiceItemRepository struct{}

func NewInvoiceItemRepository() domainRepo.InvoiceItemRepository {
	return &invoiceItemRepository{}
}

func (r *invoiceItemRepository) CreateBatch(db *gorm.DB, items []entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *invoiceItemRepository) Create(db *gorm.DB, item *entity.InvoiceItem) error {
	return db.Create(item).Error
}

func (r *invoiceItemRepository) FindByInvoice(db *gorm.DB, invoiceID uuid.UUID) ([]entity.InvoiceItem, error) {
	var items []entity.InvoiceItem
	err := db.Where("invoice_id = ?", invoiceID).
		Order("sort_order ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteAutoGenerated removes the lines regeneration owns: everything linked
// to an appointment, CREDITO lines the builder stamped, and the consolidated
// monthly-fee line. Manual lines (nil appointment_id, other descriptions)
// survive.
func (r *invoiceItemRepository) DeleteAutoGenerated(db *gorm.DB, invoiceID uuid.UUID, creditDescription, monthlyDescription string) (int64, error) {
	result := db.Where("invoice_id = ?", invoiceID).
		Where("appointment_id IS NOT NULL OR (type = ? AND description = ?) OR (type = ? AND description = ?)",
			entity.ItemCredito, creditDescription,
			entity.ItemSessaoRegular, monthlyDescription).
		Delete(&entity.InvoiceItem{})
	return result.RowsAffected, result.Error
}

func (r *invoiceItemRepository) DeleteByInvoice(db *gorm.DB, invoiceID uuid.UUID) error {
	return db.Where("invoice_id = ?", invoiceID).Delete(&entity.InvoiceItem{}).Error
}
