package service

import (
	"testing"

	"clinic-saas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAppointments_Buckets(t *testing.T) {
	recurrenceID := uuid.New()
	groupID := uuid.New()

	appointments := []entity.Appointment{
		{ID: uuid.New(), Status: entity.StatusFinalizado, Type: entity.TypeConsulta, RecurrenceID: &recurrenceID},
		{ID: uuid.New(), Status: entity.StatusConfirmado, Type: entity.TypeConsulta},
		{ID: uuid.New(), Status: entity.StatusAgendado, Type: entity.TypeConsulta, GroupID: &groupID},
		{ID: uuid.New(), Status: entity.StatusFinalizado, Type: entity.TypeReuniao},
	}

	classified := ClassifyAppointments(appointments)

	require.Len(t, classified.Regular, 1)
	require.Len(t, classified.Extra, 1)
	require.Len(t, classified.Group, 1)
	require.Len(t, classified.SchoolMeetings, 1)
	assert.Equal(t, 4, classified.Total())

	assert.Equal(t, appointments[0].ID, classified.Regular[0].ID)
	assert.Equal(t, appointments[1].ID, classified.Extra[0].ID)
	assert.Equal(t, appointments[2].ID, classified.Group[0].ID)
	assert.Equal(t, appointments[3].ID, classified.SchoolMeetings[0].ID)
}

func TestClassifyAppointments_GroupLinkWinsOverEverything(t *testing.T) {
	recurrenceID := uuid.New()
	groupID := uuid.New()

	// Group link beats both the REUNIAO type and the recurrence link.
	classified := ClassifyAppointments([]entity.Appointment{
		{Status: entity.StatusFinalizado, Type: entity.TypeReuniao, GroupID: &groupID, RecurrenceID: &recurrenceID},
	})

	assert.Len(t, classified.Group, 1)
	assert.Empty(t, classified.SchoolMeetings)
	assert.Empty(t, classified.Regular)
}

func TestClassifyAppointments_ReuniaoWinsOverRecurrenceLink(t *testing.T) {
	recurrenceID := uuid.New()

	classified := ClassifyAppointments([]entity.Appointment{
		{Status: entity.StatusFinalizado, Type: entity.TypeReuniao, RecurrenceID: &recurrenceID},
	})

	assert.Len(t, classified.SchoolMeetings, 1)
	assert.Empty(t, classified.Regular)
}

func TestClassifyAppointments_CancelledNeverClassified(t *testing.T) {
	recurrenceID := uuid.New()

	classified := ClassifyAppointments([]entity.Appointment{
		{Status: entity.StatusCanceladoAcordado, RecurrenceID: &recurrenceID},
		{Status: entity.StatusCanceladoFalta},
		{Status: entity.StatusCanceladoProfissional, Type: entity.TypeReuniao},
	})

	assert.Equal(t, 0, classified.Total())
}

func TestClassifyAppointments_Empty(t *testing.T) {
	assert.Equal(t, 0, ClassifyAppointments(nil).Total())
}
