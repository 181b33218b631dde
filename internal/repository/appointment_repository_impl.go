package repository

import (
	"errors"
	"time"

	"clinic-saas-backend/internal/domain/entity"
	domainRepo "clinic-saas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) CreateBatch(db *gorm.DB, appointments []entity.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}
	return db.Create(&appointments).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Where("clinic_id = ?", filter.ClinicID)

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.ProfessionalProfileID != nil {
		query = query.Where("professional_profile_id = ?", *filter.ProfessionalProfileID)
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_at <= ?", *filter.To)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.BillableOnly {
		query = query.Where("status IN ?", []entity.AppointmentStatus{
			entity.StatusAgendado, entity.StatusConfirmado, entity.StatusFinalizado,
		})
	}

	var appointments []entity.Appointment
	err := query.Preload("Patient").Order("scheduled_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBillableInPeriod(db *gorm.DB, clinicID uuid.UUID, from, to time.Time, professionalProfileID *uuid.UUID) ([]entity.Appointment, error) {
	query := db.Where("clinic_id = ?", clinicID).
		Where("scheduled_at >= ? AND scheduled_at < ?", from, to).
		Where("status IN ?", []entity.AppointmentStatus{
			entity.StatusAgendado, entity.StatusConfirmado, entity.StatusFinalizado,
		}).
		Where("type IN ?", []entity.AppointmentType{entity.TypeConsulta, entity.TypeReuniao})

	if professionalProfileID != nil {
		query = query.Where("professional_profile_id = ?", *professionalProfileID)
	}

	var appointments []entity.Appointment
	err := query.Preload("Patient").Order("scheduled_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindStartTimesByRecurrence(db *gorm.DB, recurrenceID uuid.UUID) ([]time.Time, error) {
	var startTimes []time.Time
	err := db.Model(&entity.Appointment{}).
		Where("recurrence_id = ?", recurrenceID).
		Order("scheduled_at ASC").
		Pluck("scheduled_at", &startTimes).Error
	if err != nil {
		return nil, err
	}
	return startTimes, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

// DeleteFutureScheduled only removes AGENDADO slots. Confirmed, finished or
// cancelled appointments hold history and are never physically deleted here.
func (r *appointmentRepository) DeleteFutureScheduled(db *gorm.DB, recurrenceID uuid.UUID, cutoff time.Time) (int64, error) {
	result := db.Where("recurrence_id = ? AND scheduled_at >= ? AND status = ?",
		recurrenceID, cutoff, entity.StatusAgendado).
		Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteScheduledOnDate(db *gorm.DB, recurrenceID uuid.UUID, date time.Time) (int64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	result := db.Where("recurrence_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status = ?",
		recurrenceID, dayStart, dayEnd, entity.StatusAgendado).
		Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
