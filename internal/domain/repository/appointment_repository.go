package repository

import (
	"time"

	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	CreateBatch(db *gorm.DB, appointments []entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindBillableInPeriod returns billable appointments of type CONSULTA or
	// REUNIAO for one clinic month, ordered by scheduled_at, patient preloaded.
	FindBillableInPeriod(db *gorm.DB, clinicID uuid.UUID, from, to time.Time, professionalProfileID *uuid.UUID) ([]entity.Appointment, error)
	// FindStartTimesByRecurrence returns the start timestamps of every
	// appointment already generated by the rule, for idempotent expansion.
	FindStartTimesByRecurrence(db *gorm.DB, recurrenceID uuid.UUID) ([]time.Time, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// DeleteFutureScheduled physically removes not-yet-occurred AGENDADO
	// appointments of a recurrence at or after the cutoff.
	DeleteFutureScheduled(db *gorm.DB, recurrenceID uuid.UUID, cutoff time.Time) (int64, error)
	// DeleteScheduledOnDate physically removes the rule's AGENDADO
	// appointment falling on the given calendar date, if any.
	DeleteScheduledOnDate(db *gorm.DB, recurrenceID uuid.UUID, date time.Time) (int64, error)
}
