package usecase

import (
	"context"
	"errors"
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
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, clinicID, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, clinicID, id uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, clinicID uuid.UUID) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	UpdateBillingSettings(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdateBillingSettingsRequest) (*dto.PatientResponse, error)
	DeactivatePatient(ctx context.Context, clinicID, id uuid.UUID) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	profileRepo repository.ProfessionalProfileRepository
	audit       service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	profileRepo repository.ProfessionalProfileRepository,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		profileRepo: profileRepo,
		audit:       audit,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, clinicID, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByID(tx, req.ProfessionalProfileID)
	if err != nil {
		u.log.Warnf("Failed to find professional profile: %+v", err)
		return nil, err
	}
	if profile == nil || profile.ClinicID != clinicID {
		return nil, ErrProfessionalNotFound
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		dob = &parsed
	}

	billingMode := entity.BillingModePerSession
	if req.BillingMode != "" {
		billingMode = entity.BillingMode(req.BillingMode)
	}

	showDays := req.ShowAppointmentDays
	patient := &entity.Patient{
		ClinicID:              clinicID,
		ProfessionalProfileID: req.ProfessionalProfileID,
		FullName:              req.FullName,
		MotherName:            req.MotherName,
		FatherName:            req.FatherName,
		Phone:                 req.Phone,
		Email:                 req.Email,
		DateOfBirth:           dob,
		BillingMode:           billingMode,
		SessionFee:            req.SessionFee,
		MonthlyFee:            req.MonthlyFee,
		ShowAppointmentDays:   &showDays,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, tx, &userID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, clinicID, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByClinicAndID(u.db, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context, clinicID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAllByClinic(u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByClinicAndID(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.FullName != nil {
		patient.FullName = *req.FullName
	}
	if req.MotherName != nil {
		patient.MotherName = *req.MotherName
	}
	if req.FatherName != nil {
		patient.FatherName = *req.FatherName
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = &parsed
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), nil, patient)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// UpdateBillingSettings changes only the patient's billing contract. Fee
// changes take effect on the next invoice generation; already generated
// invoices keep their amounts.
func (u *patientUsecase) UpdateBillingSettings(ctx context.Context, clinicID, userID, id uuid.UUID, req *dto.UpdateBillingSettingsRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByClinicAndID(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.BillingMode != nil {
		patient.BillingMode = entity.BillingMode(*req.BillingMode)
	}
	if req.SessionFee != nil {
		patient.SessionFee = *req.SessionFee
	}
	if req.MonthlyFee != nil {
		patient.MonthlyFee = *req.MonthlyFee
	}
	if req.MessageTemplate != nil {
		patient.MessageTemplate = req.MessageTemplate
	}
	if req.ShowAppointmentDays != nil {
		patient.ShowAppointmentDays = req.ShowAppointmentDays
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient billing settings: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), nil, patient)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeactivatePatient(ctx context.Context, clinicID, id uuid.UUID) error {
	affected, err := u.patientRepo.Deactivate(u.db.WithContext(ctx), clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate patient: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}
	return nil
}
