package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-saas-backend/config"
	"clinic-saas-backend/internal/converter"
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
	"clinic-saas-backend/internal/domain/repository"
	"clinic-saas-backend/internal/service"
	"clinic-saas-backend/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceLocked        = errors.New("invoice is sent or paid and cannot be modified")
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status transition")
	ErrCreditRace           = errors.New("session credit consumed concurrently, generation aborted")
	ErrClinicNotFound       = errors.New("clinic not found")
	ErrProfileRequired      = errors.New("professional profile required for this caller")
)

type InvoiceUsecase interface {
	GeneratePeriod(ctx context.Context, clinicID, userID uuid.UUID, roleID int, req *dto.GenerateInvoicesRequest) (*dto.GenerateInvoicesResponse, error)
	GetInvoice(ctx context.Context, clinicID, id uuid.UUID) (*dto.InvoiceResponse, error)
	GetInvoicesByPeriod(ctx context.Context, clinicID uuid.UUID, month, year int, professionalProfileID *uuid.UUID) (*dto.InvoiceListResponse, error)
	MarkSent(ctx context.Context, clinicID, userID, id uuid.UUID) (*dto.InvoiceResponse, error)
	MarkPaid(ctx context.Context, clinicID, userID, id uuid.UUID) (*dto.InvoiceResponse, error)
	AddManualItem(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.AddInvoiceItemRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, clinicID, userID, id uuid.UUID) error
}

type invoiceUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cfg              config.BillingConfig
	invoiceRepo      repository.InvoiceRepository
	itemRepo         repository.InvoiceItemRepository
	appointmentRepo  repository.AppointmentRepository
	creditRepo       repository.SessionCreditRepository
	clinicRepo       repository.ClinicRepository
	profileRepo      repository.ProfessionalProfileRepository
	notificationRepo repository.NotificationRepository
	audit            service.AuditService
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BillingConfig,
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.InvoiceItemRepository,
	appointmentRepo repository.AppointmentRepository,
	creditRepo repository.SessionCreditRepository,
	clinicRepo repository.ClinicRepository,
	profileRepo repository.ProfessionalProfileRepository,
	notificationRepo repository.NotificationRepository,
	audit service.AuditService,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:               db,
		log:              log,
		cfg:              cfg,
		invoiceRepo:      invoiceRepo,
		itemRepo:         itemRepo,
		appointmentRepo:  appointmentRepo,
		creditRepo:       creditRepo,
		clinicRepo:       clinicRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		audit:            audit,
	}
}

// GeneratePeriod builds or rebuilds every invoice of one clinic month inside
// a single bounded transaction. The operation is idempotent:
//   - no invoice for the patient yet: a fresh one is created;
//   - an unlocked (PENDENTE/CANCELADO) invoice exists: its auto-generated
//     lines are replaced from current appointment data, its consumed credits
//     released and re-applied, and manually added lines preserved;
//   - a locked (ENVIADO/PAGO) invoice exists: it is skipped untouched.
//
// A credit consumed by another invoice between release and re-consumption
// aborts the whole run; the transaction rolls back and nothing is half
// generated.
func (u *invoiceUsecase) GeneratePeriod(ctx context.Context, clinicID, userID uuid.UUID, roleID int, req *dto.GenerateInvoicesRequest) (*dto.GenerateInvoicesResponse, error) {
	runCtx, cancel := context.WithTimeout(ctx, u.cfg.RegenerateTimeout)
	defer cancel()

	tx := u.db.WithContext(runCtx).Begin()
	defer tx.Rollback()

	// Professional callers only ever generate their own invoices; the
	// filter is forced to their profile, whatever the request carries.
	if roleID == entity.RoleIDProfessional {
		profile, err := u.profileRepo.FindByUserID(tx, userID)
		if err != nil {
			u.log.Warnf("Failed to find professional profile: %+v", err)
			return nil, err
		}
		if profile == nil {
			return nil, ErrProfileRequired
		}
		req.ProfessionalProfileID = &profile.ID
	}

	clinic, err := u.clinicRepo.FindByID(tx, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.Local)
	periodEnd := periodStart.AddDate(0, 1, 0)

	appointments, err := u.appointmentRepo.FindBillableInPeriod(tx, clinicID, periodStart, periodEnd, req.ProfessionalProfileID)
	if err != nil {
		u.log.Warnf("Failed to find billable appointments: %+v", err)
		return nil, err
	}

	// Group per patient, preserving scheduled_at order inside each group
	byPatient := make(map[uuid.UUID][]entity.Appointment)
	var patientOrder []uuid.UUID
	for _, a := range appointments {
		if _, seen := byPatient[a.PatientID]; !seen {
			patientOrder = append(patientOrder, a.PatientID)
		}
		byPatient[a.PatientID] = append(byPatient[a.PatientID], a)
	}

	profileNames := make(map[uuid.UUID]string)
	result := &dto.GenerateInvoicesResponse{}

	for _, patientID := range patientOrder {
		patientAppointments := byPatient[patientID]
		patient := patientAppointments[0].Patient

		existing, err := u.invoiceRepo.FindByPeriodKey(tx, clinicID, patientID, req.Month, req.Year)
		if err != nil {
			u.log.Warnf("Failed to find invoice: %+v", err)
			return nil, err
		}

		if existing != nil && existing.IsLocked() {
			result.Skipped++
			continue
		}

		professionalName, err := u.professionalName(tx, profileNames, patient.ProfessionalProfileID)
		if err != nil {
			return nil, err
		}

		if existing == nil {
			if err := u.createInvoice(runCtx, tx, userID, clinic, &patient, patientAppointments, req.Month, req.Year, professionalName); err != nil {
				return nil, err
			}
			result.Generated++
			continue
		}

		if err := u.rebuildInvoice(runCtx, tx, userID, clinic, &patient, existing, patientAppointments, professionalName); err != nil {
			return nil, err
		}
		result.Updated++
	}

	u.audit.LogCreate(runCtx, tx, &userID, entity.AuditActionInvoiceGenerate, "invoice_period",
		fmt.Sprintf("%d-%02d", req.Year, req.Month), result)

	notification := &entity.Notification{
		ClinicID: clinicID,
		UserID:   userID,
		Kind:     entity.NotificationInvoiceGenerated,
		Title:    fmt.Sprintf("Cobranças de %s/%d geradas", service.MonthNamePT(req.Month), req.Year),
		Body:     fmt.Sprintf("%d geradas, %d atualizadas, %d ignoradas", result.Generated, result.Updated, result.Skipped),
	}
	if err := u.notificationRepo.Create(tx, notification); err != nil {
		u.log.Warnf("Failed to create notification: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return result, nil
}

func (u *invoiceUsecase) createInvoice(ctx context.Context, tx *gorm.DB, userID uuid.UUID, clinic *entity.Clinic, patient *entity.Patient, appointments []entity.Appointment, month, year int, professionalName string) error {
	credits, err := u.creditRepo.FindUnconsumed(tx, clinic.ID, patient.ID, patient.ProfessionalProfileID)
	if err != nil {
		u.log.Warnf("Failed to find unconsumed credits: %+v", err)
		return err
	}

	items := service.BuildInvoiceItems(service.InvoiceInput{
		Classified:          service.ClassifyAppointments(appointments),
		BillingMode:         patient.BillingMode,
		SessionFee:          patient.SessionFee,
		MonthlyFee:          patient.MonthlyFee,
		Credits:             credits,
		ShowAppointmentDays: patient.ShowsAppointmentDays(),
	})
	totals := service.CalculateInvoiceTotals(items)

	dueDate := time.Date(year, time.Month(month), clinic.InvoiceDueDay, 0, 0, 0, 0, time.Local)
	invoice := &entity.Invoice{
		ClinicID:              clinic.ID,
		PatientID:             patient.ID,
		ProfessionalProfileID: patient.ProfessionalProfileID,
		Month:                 month,
		Year:                  year,
		Status:                entity.InvoicePendente,
		TotalSessions:         totals.TotalSessions,
		CreditsApplied:        totals.CreditsApplied,
		ExtrasAdded:           totals.ExtrasAdded,
		TotalAmount:           totals.TotalAmount,
		DueDate:               dueDate,
	}
	invoice.MessageBody = u.renderMessage(clinic, patient, invoice, items, professionalName)

	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		u.log.Warnf("Failed to create invoice: %+v", err)
		return err
	}

	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := u.itemRepo.CreateBatch(tx, items); err != nil {
		u.log.Warnf("Failed to create invoice items: %+v", err)
		return err
	}

	return u.consumeCredits(tx, credits, invoice.ID)
}

func (u *invoiceUsecase) rebuildInvoice(ctx context.Context, tx *gorm.DB, userID uuid.UUID, clinic *entity.Clinic, patient *entity.Patient, invoice *entity.Invoice, appointments []entity.Appointment, professionalName string) error {
	// Give the invoice's consumed credits back before re-applying, so the
	// rebuilt invoice sees the same pool plus anything issued since.
	if _, err := u.creditRepo.ReleaseByInvoice(tx, invoice.ID); err != nil {
		u.log.Warnf("Failed to release credits: %+v", err)
		return err
	}

	if _, err := u.itemRepo.DeleteAutoGenerated(tx, invoice.ID, service.CreditItemDescription, service.MonthlyFeeItemDescription); err != nil {
		u.log.Warnf("Failed to delete auto-generated items: %+v", err)
		return err
	}

	// Only manually added lines are left at this point; new lines slot in
	// after them so the listing order stays stable across reruns.
	preserved, err := u.itemRepo.FindByInvoice(tx, invoice.ID)
	if err != nil {
		u.log.Warnf("Failed to find invoice items: %+v", err)
		return err
	}

	credits, err := u.creditRepo.FindUnconsumed(tx, clinic.ID, patient.ID, patient.ProfessionalProfileID)
	if err != nil {
		u.log.Warnf("Failed to find unconsumed credits: %+v", err)
		return err
	}

	items := service.BuildInvoiceItems(service.InvoiceInput{
		Classified:          service.ClassifyAppointments(appointments),
		BillingMode:         patient.BillingMode,
		SessionFee:          patient.SessionFee,
		MonthlyFee:          patient.MonthlyFee,
		Credits:             credits,
		ShowAppointmentDays: patient.ShowsAppointmentDays(),
	})
	items = service.OffsetSortOrders(items, preserved)
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := u.itemRepo.CreateBatch(tx, items); err != nil {
		u.log.Warnf("Failed to create invoice items: %+v", err)
		return err
	}

	if err := u.consumeCredits(tx, credits, invoice.ID); err != nil {
		return err
	}

	// Totals over the full item list, manual lines included
	allItems := append(preserved, items...)
	totals := service.CalculateInvoiceTotals(allItems)

	invoice.Status = entity.InvoicePendente
	invoice.TotalSessions = totals.TotalSessions
	invoice.CreditsApplied = totals.CreditsApplied
	invoice.ExtrasAdded = totals.ExtrasAdded
	invoice.TotalAmount = totals.TotalAmount
	invoice.MessageBody = u.renderMessage(clinic, patient, invoice, allItems, professionalName)
	invoice.Items = nil

	if err := u.invoiceRepo.Update(tx, invoice); err != nil {
		u.log.Warnf("Failed to update invoice: %+v", err)
		return err
	}

	return nil
}

// consumeCredits links each credit to the invoice with a conditional update.
// Zero affected rows means another invoice took the credit after we read it;
// the whole generation run aborts.
func (u *invoiceUsecase) consumeCredits(tx *gorm.DB, credits []entity.SessionCredit, invoiceID uuid.UUID) error {
	now := time.Now()
	for _, credit := range credits {
		affected, err := u.creditRepo.Consume(tx, credit.ID, invoiceID, now)
		if err != nil {
			u.log.Warnf("Failed to consume credit: %+v", err)
			return err
		}
		if affected == 0 {
			u.log.Warnf("Credit %s consumed concurrently", credit.ID)
			return ErrCreditRace
		}
	}
	return nil
}

func (u *invoiceUsecase) professionalName(tx *gorm.DB, cache map[uuid.UUID]string, profileID uuid.UUID) (string, error) {
	if name, ok := cache[profileID]; ok {
		return name, nil
	}
	profile, err := u.profileRepo.FindByID(tx, profileID)
	if err != nil {
		u.log.Warnf("Failed to find professional profile: %+v", err)
		return "", err
	}
	name := ""
	if profile != nil {
		name = profile.User.FullName
	}
	cache[profileID] = name
	return name, nil
}

func (u *invoiceUsecase) renderMessage(clinic *entity.Clinic, patient *entity.Patient, invoice *entity.Invoice, items []entity.InvoiceItem, professionalName string) string {
	var detail strings.Builder
	for _, item := range items {
		fmt.Fprintf(&detail, "%dx %s: %s\n", item.Quantity, item.Description, money.FormatBRL(item.Total))
	}

	template := service.ResolveMessageTemplate(patient.MessageTemplate, clinic.DefaultMessageTemplate)
	return service.RenderMessageTemplate(template, map[string]string{
		service.VarPatientName:      patient.FullName,
		service.VarMotherName:       patient.MotherName,
		service.VarFatherName:       patient.FatherName,
		service.VarTotalAmount:      money.FormatBRL(invoice.TotalAmount),
		service.VarMonthName:        service.MonthNamePT(invoice.Month),
		service.VarYear:             fmt.Sprintf("%d", invoice.Year),
		service.VarDueDate:          invoice.DueDate.Format("02/01/2006"),
		service.VarSessionCount:     fmt.Sprintf("%d", invoice.TotalSessions),
		service.VarProfessionalName: professionalName,
		service.VarItemDetail:       strings.TrimRight(detail.String(), "\n"),
	})
}

func (u *invoiceUsecase) GetInvoice(ctx context.Context, clinicID, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil || invoice.ClinicID != clinicID {
		return nil, ErrInvoiceNotFound
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) GetInvoicesByPeriod(ctx context.Context, clinicID uuid.UUID, month, year int, professionalProfileID *uuid.UUID) (*dto.InvoiceListResponse, error) {
	invoices, err := u.invoiceRepo.FindByPeriod(u.db, clinicID, month, year, professionalProfileID)
	if err != nil {
		u.log.Warnf("Failed to find invoices: %+v", err)
		return nil, err
	}

	return &dto.InvoiceListResponse{
		Invoices: converter.InvoicesToResponses(invoices),
		Total:    len(invoices),
	}, nil
}

func (u *invoiceUsecase) MarkSent(ctx context.Context, clinicID, userID, id uuid.UUID) (*dto.InvoiceResponse, error) {
	return u.transition(ctx, clinicID, userID, id, entity.InvoiceEnviado)
}

func (u *invoiceUsecase) MarkPaid(ctx context.Context, clinicID, userID, id uuid.UUID) (*dto.InvoiceResponse, error) {
	return u.transition(ctx, clinicID, userID, id, entity.InvoicePago)
}

func (u *invoiceUsecase) transition(ctx context.Context, clinicID, userID, id uuid.UUID, target entity.InvoiceStatus) (*dto.InvoiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil || invoice.ClinicID != clinicID {
		return nil, ErrInvoiceNotFound
	}

	now := time.Now()
	oldStatus := invoice.Status
	switch target {
	case entity.InvoiceEnviado:
		if oldStatus != entity.InvoicePendente {
			return nil, ErrInvalidInvoiceStatus
		}
		invoice.SentAt = &now
	case entity.InvoicePago:
		if oldStatus != entity.InvoicePendente && oldStatus != entity.InvoiceEnviado {
			return nil, ErrInvalidInvoiceStatus
		}
		invoice.PaidAt = &now
	default:
		return nil, ErrInvalidInvoiceStatus
	}
	invoice.Status = target
	invoice.Items = nil
	invoice.Patient = entity.Patient{}

	if err := u.invoiceRepo.Update(tx, invoice); err != nil {
		u.log.Warnf("Failed to update invoice: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionInvoiceStatus, "invoice", invoice.ID.String(), oldStatus, target)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}

// AddManualItem appends a free-form line to an unlocked invoice and
// recomputes its totals. Manual lines survive regeneration.
func (u *invoiceUsecase) AddManualItem(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.AddInvoiceItemRequest) (*dto.InvoiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil || invoice.ClinicID != clinicID {
		return nil, ErrInvoiceNotFound
	}
	if invoice.IsLocked() {
		return nil, ErrInvoiceLocked
	}

	item := &entity.InvoiceItem{
		InvoiceID:   invoice.ID,
		Type:        entity.InvoiceItemType(req.Type),
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Total:       req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		SortOrder:   len(invoice.Items),
	}
	if err := u.itemRepo.Create(tx, item); err != nil {
		u.log.Warnf("Failed to create invoice item: %+v", err)
		return nil, err
	}

	allItems, err := u.itemRepo.FindByInvoice(tx, invoice.ID)
	if err != nil {
		u.log.Warnf("Failed to find invoice items: %+v", err)
		return nil, err
	}
	totals := service.CalculateInvoiceTotals(allItems)

	invoice.TotalSessions = totals.TotalSessions
	invoice.CreditsApplied = totals.CreditsApplied
	invoice.ExtrasAdded = totals.ExtrasAdded
	invoice.TotalAmount = totals.TotalAmount
	invoice.Items = nil
	invoice.Patient = entity.Patient{}

	if err := u.invoiceRepo.Update(tx, invoice); err != nil {
		u.log.Warnf("Failed to update invoice: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionInvoiceStatus, "invoice", invoice.ID.String(), nil, item)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	invoice.Items = allItems
	return converter.InvoiceToResponse(invoice), nil
}

// DeleteInvoice removes an unpaid invoice, releasing every credit it
// consumed so a later generation can re-apply them.
func (u *invoiceUsecase) DeleteInvoice(ctx context.Context, clinicID, userID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return err
	}
	if invoice == nil || invoice.ClinicID != clinicID {
		return ErrInvoiceNotFound
	}
	if invoice.Status == entity.InvoicePago {
		return ErrInvoiceLocked
	}

	if _, err := u.creditRepo.ReleaseByInvoice(tx, invoice.ID); err != nil {
		u.log.Warnf("Failed to release credits: %+v", err)
		return err
	}

	if err := u.itemRepo.DeleteByInvoice(tx, invoice.ID); err != nil {
		u.log.Warnf("Failed to delete invoice items: %+v", err)
		return err
	}

	if err := u.invoiceRepo.Delete(tx, invoice.ID); err != nil {
		u.log.Warnf("Failed to delete invoice: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, tx, &userID, entity.AuditActionInvoiceDelete, "invoice", invoice.ID.String(), invoice)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
