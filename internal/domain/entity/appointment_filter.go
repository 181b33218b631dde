package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	ClinicID              uuid.UUID
	PatientID             *uuid.UUID
	ProfessionalProfileID *uuid.UUID
	From                  *time.Time
	To                    *time.Time
	Status                *AppointmentStatus
	Type                  *AppointmentType
	BillableOnly          bool
}
