package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
	"clinic-saas-backend/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	return gdb, mock
}

type stubAppointmentRepo struct {
	repository.AppointmentRepository
	appointment *entity.Appointment
	updated     *entity.Appointment
}

func (s *stubAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return s.appointment, nil
}

func (s *stubAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	s.updated = appointment
	return nil
}

type stubCreditRepo struct {
	repository.SessionCreditRepository
	credit  *entity.SessionCredit
	created *entity.SessionCredit
	deleted []uuid.UUID
}

func (s *stubCreditRepo) FindByOriginAppointment(db *gorm.DB, appointmentID uuid.UUID) (*entity.SessionCredit, error) {
	return s.credit, nil
}

func (s *stubCreditRepo) Create(db *gorm.DB, credit *entity.SessionCredit) error {
	s.created = credit
	return nil
}

func (s *stubCreditRepo) Delete(db *gorm.DB, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubNotificationRepo struct {
	repository.NotificationRepository
	created []entity.Notification
}

func (s *stubNotificationRepo) Create(db *gorm.DB, notification *entity.Notification) error {
	s.created = append(s.created, *notification)
	return nil
}

type stubAuditService struct{}

func (stubAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return nil
}

func (stubAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return nil
}

func (stubAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return nil
}

func cancelledAppointment(clinicID uuid.UUID, creditGenerated bool) *entity.Appointment {
	return &entity.Appointment{
		ID:              uuid.New(),
		ClinicID:        clinicID,
		PatientID:       uuid.New(),
		Status:          entity.StatusCanceladoAcordado,
		ScheduledAt:     time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		CreditGenerated: &creditGenerated,
	}
}

func TestUpdateStatus_ConsumedCreditBlocksLeavingAgreedCancellation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	clinicID := uuid.New()
	appointment := cancelledAppointment(clinicID, true)
	invoiceID := uuid.New()
	consumedAt := time.Now()

	appointmentRepo := &stubAppointmentRepo{appointment: appointment}
	creditRepo := &stubCreditRepo{credit: &entity.SessionCredit{
		ID:                  uuid.New(),
		OriginAppointmentID: appointment.ID,
		InvoiceID:           &invoiceID,
		ConsumedAt:          &consumedAt,
	}}

	u := NewAppointmentUsecase(db, logrus.New(), appointmentRepo, nil, creditRepo, &stubNotificationRepo{}, stubAuditService{})

	_, err := u.UpdateStatus(context.Background(), clinicID, uuid.New(), appointment.ID,
		&dto.UpdateAppointmentStatusRequest{Status: string(entity.StatusAgendado)})
	assert.ErrorIs(t, err, ErrCreditConsumed)

	// Nothing was mutated: the credit stays, the appointment keeps its status.
	assert.Empty(t, creditRepo.deleted)
	assert.Nil(t, appointmentRepo.updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_UnconsumedCreditRetractedOnLeavingAgreedCancellation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	clinicID := uuid.New()
	appointment := cancelledAppointment(clinicID, true)

	appointmentRepo := &stubAppointmentRepo{appointment: appointment}
	creditRepo := &stubCreditRepo{credit: &entity.SessionCredit{
		ID:                  uuid.New(),
		OriginAppointmentID: appointment.ID,
	}}

	u := NewAppointmentUsecase(db, logrus.New(), appointmentRepo, nil, creditRepo, &stubNotificationRepo{}, stubAuditService{})

	resp, err := u.UpdateStatus(context.Background(), clinicID, uuid.New(), appointment.ID,
		&dto.UpdateAppointmentStatusRequest{Status: string(entity.StatusAgendado)})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusAgendado), resp.Status)
	require.Len(t, creditRepo.deleted, 1)
	assert.Equal(t, creditRepo.credit.ID, creditRepo.deleted[0])
	require.NotNil(t, appointmentRepo.updated)
	// The flag survives retraction so the appointment never earns a second
	// credit on a later agreed cancellation.
	assert.True(t, appointmentRepo.updated.HasGeneratedCredit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NoSecondCreditOnReenteringAgreedCancellation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	clinicID := uuid.New()
	appointment := cancelledAppointment(clinicID, true)
	appointment.Status = entity.StatusAgendado

	appointmentRepo := &stubAppointmentRepo{appointment: appointment}
	creditRepo := &stubCreditRepo{}
	notificationRepo := &stubNotificationRepo{}

	u := NewAppointmentUsecase(db, logrus.New(), appointmentRepo, nil, creditRepo, notificationRepo, stubAuditService{})

	resp, err := u.UpdateStatus(context.Background(), clinicID, uuid.New(), appointment.ID,
		&dto.UpdateAppointmentStatusRequest{Status: string(entity.StatusCanceladoAcordado)})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusCanceladoAcordado), resp.Status)
	assert.Nil(t, creditRepo.created)
	assert.Empty(t, notificationRepo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
