package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecurrenceType defines the cadence of a recurrence rule
type RecurrenceType string

const (
	RecurrenceWeekly   RecurrenceType = "WEEKLY"
	RecurrenceBiweekly RecurrenceType = "BIWEEKLY"
	RecurrenceMonthly  RecurrenceType = "MONTHLY"
)

// IntervalDays returns the fixed calendar-day step for the type.
// MONTHLY is exactly 28 days, not calendar-month alignment.
func (t RecurrenceType) IntervalDays() int {
	switch t {
	case RecurrenceWeekly:
		return 7
	case RecurrenceBiweekly:
		return 14
	case RecurrenceMonthly:
		return 28
	}
	return 0
}

// IsValid reports whether the type is a known value
func (t RecurrenceType) IsValid() bool {
	return t.IntervalDays() > 0
}

// RecurrenceEndType defines how a recurrence series terminates
type RecurrenceEndType string

const (
	RecurrenceEndByDate        RecurrenceEndType = "BY_DATE"
	RecurrenceEndByOccurrences RecurrenceEndType = "BY_OCCURRENCES"
	RecurrenceEndIndefinite    RecurrenceEndType = "INDEFINITE"
)

// ExceptionDateLayout is the wire format of recurrence exception dates
const ExceptionDateLayout = "2006-01-02"

// AppointmentRecurrence is a generating rule that owns a series of
// appointments on a fixed cadence
type AppointmentRecurrence struct {
	ID                    uuid.UUID                    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID              uuid.UUID                    `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID             uuid.UUID                    `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProfessionalProfileID uuid.UUID                    `gorm:"type:uuid;not null;index" json:"professional_profile_id"`
	RecurrenceType        RecurrenceType               `gorm:"type:varchar(20);not null" json:"recurrence_type"`
	DayOfWeek             int                          `gorm:"not null" json:"day_of_week"`
	StartDate             time.Time                    `gorm:"type:date;not null" json:"start_date"`
	StartTime             string                       `gorm:"type:varchar(5);not null" json:"start_time"`
	DurationMinutes       int                          `gorm:"not null;default:50" json:"duration_minutes"`
	EndType               RecurrenceEndType            `gorm:"type:varchar(20);not null;default:'INDEFINITE'" json:"end_type"`
	EndDate               *time.Time                   `gorm:"type:date" json:"end_date,omitempty"`
	MaxOccurrences        *int                         `json:"max_occurrences,omitempty"`
	Exceptions            datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"exceptions,omitempty"`
	IsActive              *bool                        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt             time.Time                    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      Patient             `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalProfileID" json:"professional,omitempty"`
	Appointments []Appointment       `gorm:"foreignKey:RecurrenceID" json:"appointments,omitempty"`
}

func (AppointmentRecurrence) TableName() string {
	return "appointment_recurrences"
}

// Active reports whether the rule still generates appointments
func (r *AppointmentRecurrence) Active() bool {
	return r.IsActive != nil && *r.IsActive
}

// HasException reports whether the given date is skipped by the rule
func (r *AppointmentRecurrence) HasException(date time.Time) bool {
	formatted := date.Format(ExceptionDateLayout)
	for _, e := range r.Exceptions {
		if e == formatted {
			return true
		}
	}
	return false
}
