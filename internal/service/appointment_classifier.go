package service

import (
	"clinic-saas-backend/internal/domain/entity"
)

// ClassifiedAppointments partitions a patient's billable appointments for a
// period into the four invoice buckets. Buckets are disjoint; cancelled
// appointments never appear in any of them.
type ClassifiedAppointments struct {
	Regular        []entity.Appointment
	Extra          []entity.Appointment
	Group          []entity.Appointment
	SchoolMeetings []entity.Appointment
}

// Total returns the number of classified appointments
func (c ClassifiedAppointments) Total() int {
	return len(c.Regular) + len(c.Extra) + len(c.Group) + len(c.SchoolMeetings)
}

// ClassifyAppointments buckets billable appointments. Classification order,
// first match wins: group link, school meeting, recurrence link, extra.
func ClassifyAppointments(appointments []entity.Appointment) ClassifiedAppointments {
	var classified ClassifiedAppointments

	for _, a := range appointments {
		if !a.IsBillable() {
			continue
		}

		switch {
		case a.GroupID != nil:
			classified.Group = append(classified.Group, a)
		case a.Type == entity.TypeReuniao:
			classified.SchoolMeetings = append(classified.SchoolMeetings, a)
		case a.RecurrenceID != nil:
			classified.Regular = append(classified.Regular, a)
		default:
			classified.Extra = append(classified.Extra, a)
		}
	}

	return classified
}
