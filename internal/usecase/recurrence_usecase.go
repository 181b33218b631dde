package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-saas-backend/config"
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
	ErrRecurrenceNotFound = errors.New("recurrence not found")
	ErrRecurrenceInactive = errors.New("recurrence is inactive")
	ErrInvalidTimeFormat  = errors.New("invalid time format, use HH:MM")
)

type RecurrenceUsecase interface {
	CreateRecurrence(ctx context.Context, clinicID, userID uuid.UUID, req *dto.CreateRecurrenceRequest) (*dto.RecurrenceResponse, *dto.RecurrenceMaterializeResponse, error)
	GetRecurrence(ctx context.Context, clinicID, id uuid.UUID) (*dto.RecurrenceResponse, error)
	GetAllRecurrences(ctx context.Context, clinicID uuid.UUID) (*dto.RecurrenceListResponse, error)
	UpdateRecurrence(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdateRecurrenceRequest) (*dto.RecurrenceResponse, *dto.RecurrenceMaterializeResponse, error)
	AddException(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.AddRecurrenceExceptionRequest) (*dto.RecurrenceResponse, error)
	DeactivateRecurrence(ctx context.Context, clinicID, userID, id uuid.UUID) error
}

type recurrenceUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.BillingConfig
	recurrenceRepo  repository.RecurrenceRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	audit           service.AuditService
}

func NewRecurrenceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BillingConfig,
	recurrenceRepo repository.RecurrenceRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	audit service.AuditService,
) RecurrenceUsecase {
	return &recurrenceUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		recurrenceRepo:  recurrenceRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		audit:           audit,
	}
}

// CreateRecurrence stores the rule and materializes its appointments up to
// the configured horizon in the same transaction.
func (u *recurrenceUsecase) CreateRecurrence(ctx context.Context, clinicID, userID uuid.UUID, req *dto.CreateRecurrenceRequest) (*dto.RecurrenceResponse, *dto.RecurrenceMaterializeResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		return nil, nil, ErrInvalidTimeFormat
	}

	endType := entity.RecurrenceEndIndefinite
	if req.EndType != "" {
		endType = entity.RecurrenceEndType(req.EndType)
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		endDate = &parsed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByClinicAndID(tx, clinicID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, nil, err
	}
	if patient == nil {
		return nil, nil, ErrPatientNotFound
	}

	rule := &entity.AppointmentRecurrence{
		ClinicID:              clinicID,
		PatientID:             req.PatientID,
		ProfessionalProfileID: req.ProfessionalProfileID,
		RecurrenceType:        entity.RecurrenceType(req.RecurrenceType),
		DayOfWeek:             req.DayOfWeek,
		StartDate:             startDate,
		StartTime:             req.StartTime,
		DurationMinutes:       req.DurationMinutes,
		EndType:               endType,
		EndDate:               endDate,
		MaxOccurrences:        req.MaxOccurrences,
	}

	if err := u.recurrenceRepo.Create(tx, rule); err != nil {
		u.log.Warnf("Failed to create recurrence: %+v", err)
		return nil, nil, err
	}

	materialized, err := u.materialize(tx, rule, time.Now())
	if err != nil {
		return nil, nil, err
	}

	u.audit.LogCreate(ctx, tx, &userID, entity.AuditActionRecurrenceCreate, "recurrence", rule.ID.String(), rule)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, nil, err
	}

	rule.Patient = *patient
	return converter.RecurrenceToResponse(rule), materialized, nil
}

func (u *recurrenceUsecase) GetRecurrence(ctx context.Context, clinicID, id uuid.UUID) (*dto.RecurrenceResponse, error) {
	rule, err := u.recurrenceRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find recurrence: %+v", err)
		return nil, err
	}
	if rule == nil || rule.ClinicID != clinicID {
		return nil, ErrRecurrenceNotFound
	}

	return converter.RecurrenceToResponse(rule), nil
}

func (u *recurrenceUsecase) GetAllRecurrences(ctx context.Context, clinicID uuid.UUID) (*dto.RecurrenceListResponse, error) {
	rules, err := u.recurrenceRepo.FindAllByClinic(u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find recurrences: %+v", err)
		return nil, err
	}

	return &dto.RecurrenceListResponse{
		Recurrences: converter.RecurrencesToResponses(rules),
		Total:       len(rules),
	}, nil
}

// UpdateRecurrence mutates the rule. With ApplyToFuture set, the rule's
// not-yet-occurred AGENDADO appointments are dropped and regenerated from
// the updated rule; occurred or cancelled appointments are never touched.
func (u *recurrenceUsecase) UpdateRecurrence(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdateRecurrenceRequest) (*dto.RecurrenceResponse, *dto.RecurrenceMaterializeResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rule, err := u.recurrenceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find recurrence: %+v", err)
		return nil, nil, err
	}
	if rule == nil || rule.ClinicID != clinicID {
		return nil, nil, ErrRecurrenceNotFound
	}
	if !rule.Active() {
		return nil, nil, ErrRecurrenceInactive
	}

	if req.RecurrenceType != nil {
		rule.RecurrenceType = entity.RecurrenceType(*req.RecurrenceType)
	}
	if req.DayOfWeek != nil {
		rule.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		if _, err := time.Parse("15:04", *req.StartTime); err != nil {
			return nil, nil, ErrInvalidTimeFormat
		}
		rule.StartTime = *req.StartTime
	}
	if req.DurationMinutes != nil {
		rule.DurationMinutes = *req.DurationMinutes
	}
	if req.EndType != nil {
		rule.EndType = entity.RecurrenceEndType(*req.EndType)
	}
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		rule.EndDate = &parsed
	}
	if req.MaxOccurrences != nil {
		rule.MaxOccurrences = req.MaxOccurrences
	}

	if err := u.recurrenceRepo.Update(tx, rule); err != nil {
		u.log.Warnf("Failed to update recurrence: %+v", err)
		return nil, nil, err
	}

	materialized := &dto.RecurrenceMaterializeResponse{}
	if req.ApplyToFuture {
		now := time.Now()
		if _, err := u.appointmentRepo.DeleteFutureScheduled(tx, rule.ID, now); err != nil {
			u.log.Warnf("Failed to delete future appointments: %+v", err)
			return nil, nil, err
		}
		materialized, err = u.materialize(tx, rule, now)
		if err != nil {
			return nil, nil, err
		}
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionRecurrenceUpdate, "recurrence", rule.ID.String(), nil, rule)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, nil, err
	}

	return converter.RecurrenceToResponse(rule), materialized, nil
}

// AddException marks a single date as skipped and physically removes the
// rule's AGENDADO appointment on that date, if one exists. Appointments in
// any other status stay untouched.
func (u *recurrenceUsecase) AddException(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.AddRecurrenceExceptionRequest) (*dto.RecurrenceResponse, error) {
	date, err := time.Parse(entity.ExceptionDateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rule, err := u.recurrenceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find recurrence: %+v", err)
		return nil, err
	}
	if rule == nil || rule.ClinicID != clinicID {
		return nil, ErrRecurrenceNotFound
	}

	if !rule.HasException(date) {
		rule.Exceptions = append(rule.Exceptions, date.Format(entity.ExceptionDateLayout))
		if err := u.recurrenceRepo.Update(tx, rule); err != nil {
			u.log.Warnf("Failed to update recurrence: %+v", err)
			return nil, err
		}
	}

	if _, err := u.appointmentRepo.DeleteScheduledOnDate(tx, rule.ID, date); err != nil {
		u.log.Warnf("Failed to delete excepted appointment: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionRecurrenceUpdate, "recurrence", rule.ID.String(), nil, rule)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RecurrenceToResponse(rule), nil
}

// DeactivateRecurrence stops the rule and removes its not-yet-occurred
// AGENDADO appointments.
func (u *recurrenceUsecase) DeactivateRecurrence(ctx context.Context, clinicID, userID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rule, err := u.recurrenceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find recurrence: %+v", err)
		return err
	}
	if rule == nil || rule.ClinicID != clinicID {
		return ErrRecurrenceNotFound
	}

	inactive := false
	rule.IsActive = &inactive
	if err := u.recurrenceRepo.Update(tx, rule); err != nil {
		u.log.Warnf("Failed to deactivate recurrence: %+v", err)
		return err
	}

	if _, err := u.appointmentRepo.DeleteFutureScheduled(tx, rule.ID, time.Now()); err != nil {
		u.log.Warnf("Failed to delete future appointments: %+v", err)
		return err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionRecurrenceUpdate, "recurrence", rule.ID.String(), nil, rule)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// materialize expands the rule from `from` to the configured horizon and
// creates the missing appointments. Occurrence slots that already have an
// appointment, or fall on an exception date, are counted as skipped.
func (u *recurrenceUsecase) materialize(tx *gorm.DB, rule *entity.AppointmentRecurrence, from time.Time) (*dto.RecurrenceMaterializeResponse, error) {
	horizon := from.AddDate(0, u.cfg.RecurrenceHorizonMonths, 0)

	windowStart := from
	if rule.StartDate.After(from) {
		windowStart = rule.StartDate
	}

	occurrences, err := service.ExpandOccurrences(rule, windowStart, horizon)
	if err != nil {
		u.log.Warnf("Failed to expand recurrence: %+v", err)
		return nil, err
	}
	total := len(occurrences)

	occurrences = service.FilterExceptions(occurrences, rule.Exceptions)

	existing, err := u.appointmentRepo.FindStartTimesByRecurrence(tx, rule.ID)
	if err != nil {
		u.log.Warnf("Failed to find existing appointments: %+v", err)
		return nil, err
	}
	occurrences = service.FilterExisting(occurrences, existing)

	if len(occurrences) == 0 {
		return &dto.RecurrenceMaterializeResponse{Created: 0, Skipped: total}, nil
	}

	appointments := make([]entity.Appointment, len(occurrences))
	for i, occ := range occurrences {
		appointments[i] = entity.Appointment{
			ClinicID:              rule.ClinicID,
			PatientID:             rule.PatientID,
			ProfessionalProfileID: rule.ProfessionalProfileID,
			ScheduledAt:           occ.ScheduledAt,
			EndAt:                 occ.EndAt,
			Status:                entity.StatusAgendado,
			Type:                  entity.TypeConsulta,
			RecurrenceID:          &rule.ID,
		}
	}

	if err := u.appointmentRepo.CreateBatch(tx, appointments); err != nil {
		u.log.Warnf("Failed to create appointments: %+v", err)
		return nil, err
	}

	return &dto.RecurrenceMaterializeResponse{
		Created: len(appointments),
		Skipped: total - len(appointments),
	}, nil
}
