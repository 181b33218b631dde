package usecase

import (
	"context"
	"errors"

	"clinic-saas-backend/internal/converter"
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
	"clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrProfessionalNotFound = errors.New("professional not found")
)

type ProfessionalUsecase interface {
	CreateProfessional(ctx context.Context, clinicID uuid.UUID, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error)
	GetProfessional(ctx context.Context, clinicID, id uuid.UUID) (*dto.ProfessionalResponse, error)
	GetAllProfessionals(ctx context.Context, clinicID uuid.UUID) (*dto.ProfessionalListResponse, error)
}

type professionalUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.ProfessionalProfileRepository
}

func NewProfessionalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfessionalProfileRepository,
) ProfessionalUsecase {
	return &professionalUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// CreateProfessional registers a professional user plus its profile inside
// the caller's clinic in one transaction.
func (u *professionalUsecase) CreateProfessional(ctx context.Context, clinicID uuid.UUID, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDProfessional,
		ClinicID: &clinicID,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.ProfessionalProfile{
		UserID:             user.ID,
		ClinicID:           clinicID,
		RegistrationNumber: req.RegistrationNumber,
		Specialty:          req.Specialty,
	}

	if err := u.profileRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create professional profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.ProfessionalToResponse(profile), nil
}

func (u *professionalUsecase) GetProfessional(ctx context.Context, clinicID, id uuid.UUID) (*dto.ProfessionalResponse, error) {
	profile, err := u.profileRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional profile: %+v", err)
		return nil, err
	}
	if profile == nil || profile.ClinicID != clinicID {
		return nil, ErrProfessionalNotFound
	}

	return converter.ProfessionalToResponse(profile), nil
}

func (u *professionalUsecase) GetAllProfessionals(ctx context.Context, clinicID uuid.UUID) (*dto.ProfessionalListResponse, error) {
	profiles, err := u.profileRepo.FindAllByClinic(u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find professionals: %+v", err)
		return nil, err
	}

	return &dto.ProfessionalListResponse{
		Professionals: converter.ProfessionalsToResponses(profiles),
		Total:         len(profiles),
	}, nil
}
