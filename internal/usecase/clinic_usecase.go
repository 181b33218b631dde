package usecase

import (
	"context"

	"clinic-saas-backend/internal/converter"
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
	"clinic-saas-backend/internal/domain/repository"
	"clinic-saas-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ClinicUsecase interface {
	GetClinic(ctx context.Context, id uuid.UUID) (*dto.ClinicResponse, error)
	GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error)
	UpdateClinic(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error)
}

type clinicUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	clinicRepo repository.ClinicRepository
	audit      service.AuditService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	audit service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:         db,
		log:        log,
		clinicRepo: clinicRepo,
		audit:      audit,
	}
}

// GetClinic returns the clinic together with its usage stats, for the
// superadmin panel and the clinic settings screen.
func (u *clinicUsecase) GetClinic(ctx context.Context, id uuid.UUID) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	stats, err := u.clinicRepo.CountStats(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to count clinic stats: %+v", err)
		return nil, err
	}

	response := converter.ClinicToResponse(clinic)
	response.Stats = stats
	return response, nil
}

func (u *clinicUsecase) GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error) {
	clinics, err := u.clinicRepo.FindAll(u.db)
	if err != nil {
		u.log.Warnf("Failed to find clinics: %+v", err)
		return nil, err
	}

	return &dto.ClinicListResponse{
		Clinics: converter.ClinicsToResponses(clinics),
		Total:   len(clinics),
	}, nil
}

func (u *clinicUsecase) UpdateClinic(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic, err := u.clinicRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.DefaultMessageTemplate != nil {
		clinic.DefaultMessageTemplate = req.DefaultMessageTemplate
	}
	if req.InvoiceDueDay != nil {
		clinic.InvoiceDueDay = *req.InvoiceDueDay
	}
	if req.IsActive != nil {
		clinic.IsActive = req.IsActive
	}

	if err := u.clinicRepo.Update(tx, clinic); err != nil {
		u.log.Warnf("Failed to update clinic: %+v", err)
		return nil, err
	}

	u.audit.LogUpdate(ctx, tx, &userID, entity.AuditActionClinicUpdate, "clinic", clinic.ID.String(), nil, clinic)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClinicToResponse(clinic), nil
}
