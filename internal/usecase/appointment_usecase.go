package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-saas-backend/internal/converter"
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
	"clinic-saas-backend/internal/domain/repository"
	"clinic-saas-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrCreditConsumed      = errors.New("session credit already consumed by an invoice")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, clinicID, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, clinicID, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetAppointments(ctx context.Context, clinicID uuid.UUID, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	creditRepo       repository.SessionCreditRepository
	notificationRepo repository.NotificationRepository
	audit            service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	creditRepo repository.SessionCreditRepository,
	notificationRepo repository.NotificationRepository,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		creditRepo:       creditRepo,
		notificationRepo: notificationRepo,
		audit:            audit,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, clinicID, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByClinicAndID(tx, clinicID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointmentType := entity.TypeConsulta
	if req.Type != "" {
		appointmentType = entity.AppointmentType(req.Type)
	}

	appointment := &entity.Appointment{
		ClinicID:              clinicID,
		PatientID:             req.PatientID,
		ProfessionalProfileID: req.ProfessionalProfileID,
		ScheduledAt:           req.ScheduledAt,
		EndAt:                 req.ScheduledAt.Add(time.Duration(req.DurationMinutes) * time.Minute),
		Status:                entity.StatusAgendado,
		Type:                  appointmentType,
		GroupID:               req.GroupID,
		PriceOverride:         req.PriceOverride,
		Notes:                 req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Patient = *patient
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, clinicID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil || appointment.ClinicID != clinicID {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointments(ctx context.Context, clinicID uuid.UUID, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{
		ClinicID:              clinicID,
		PatientID:             req.PatientID,
		ProfessionalProfileID: req.ProfessionalProfileID,
		From:                  req.From,
		To:                    req.To,
		BillableOnly:          req.BillableOnly,
	}
	if req.Status != nil {
		status := entity.AppointmentStatus(*req.Status)
		filter.Status = &status
	}

	appointments, err := u.appointmentRepo.FindByFilter(u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateStatus changes the appointment's lifecycle status and keeps the
// session credit ledger consistent:
//   - entering CANCELADO_ACORDADO issues one credit, at most once per
//     appointment across its whole lifetime;
//   - leaving CANCELADO_ACORDADO removes the unconsumed credit, or fails
//     with ErrCreditConsumed when an invoice already used it.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	newStatus := entity.AppointmentStatus(req.Status)
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil || appointment.ClinicID != clinicID {
		return nil, ErrAppointmentNotFound
	}

	oldStatus := appointment.Status
	if oldStatus == newStatus {
		return converter.AppointmentToResponse(appointment), nil
	}

	if oldStatus == entity.StatusCanceladoAcordado {
		if err := u.retractCredit(ctx, tx, userID, appointment); err != nil {
			return nil, err
		}
	}

	appointment.Status = newStatus
	if newStatus == entity.StatusCanceladoAcordado && !appointment.HasGeneratedCredit() {
		if err := u.issueCredit(ctx, tx, userID, appointment); err != nil {
			return nil, err
		}
		generated := true
		appointment.CreditGenerated = &generated
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentStatus, "appointment", appointment.ID.String(), oldStatus, newStatus)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) issueCredit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, appointment *entity.Appointment) error {
	credit := &entity.SessionCredit{
		ClinicID:              appointment.ClinicID,
		PatientID:             appointment.PatientID,
		ProfessionalProfileID: appointment.ProfessionalProfileID,
		OriginAppointmentID:   appointment.ID,
		Reason:                fmt.Sprintf("Cancelamento acordado em %s", appointment.ScheduledAt.Format("02/01/2006")),
	}

	if err := u.creditRepo.Create(tx, credit); err != nil {
		u.log.Warnf("Failed to create session credit: %+v", err)
		return err
	}

	u.audit.LogCreate(ctx, tx, &userID, entity.AuditActionCreditIssue, "session_credit", credit.ID.String(), credit)

	notification := &entity.Notification{
		ClinicID: appointment.ClinicID,
		UserID:   userID,
		Kind:     entity.NotificationAgreedCancel,
		Title:    "Cancelamento acordado registrado",
		Body:     fmt.Sprintf("Crédito de sessão gerado para o atendimento de %s", appointment.ScheduledAt.Format("02/01/2006")),
	}
	if err := u.notificationRepo.Create(tx, notification); err != nil {
		u.log.Warnf("Failed to create notification: %+v", err)
		return err
	}

	return nil
}

// retractCredit removes the appointment's pending credit when its agreed
// cancellation is reclassified. A consumed credit blocks the change.
func (u *appointmentUsecase) retractCredit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, appointment *entity.Appointment) error {
	credit, err := u.creditRepo.FindByOriginAppointment(tx, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to find session credit: %+v", err)
		return err
	}
	if credit == nil {
		return nil
	}
	if credit.IsConsumed() {
		return ErrCreditConsumed
	}

	if err := u.creditRepo.Delete(tx, credit.ID); err != nil {
		u.log.Warnf("Failed to delete session credit: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, tx, &userID, entity.AuditActionCreditRelease, "session_credit", credit.ID.String(), credit)
	return nil
}
