package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_IsBillable(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusAgendado, true},
		{StatusConfirmado, true},
		{StatusFinalizado, true},
		{StatusCanceladoAcordado, false},
		{StatusCanceladoFalta, false},
		{StatusCanceladoProfissional, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsBillable())
			assert.Equal(t, !tt.want, tt.status.IsCancellation())
			assert.True(t, tt.status.IsValid())
		})
	}

	assert.False(t, AppointmentStatus("PENDENTE").IsValid())
}

func TestAppointment_UnitPrice(t *testing.T) {
	sessionFee := decimal.NewFromInt(150)

	a := Appointment{}
	assert.True(t, a.UnitPrice(sessionFee).Equal(sessionFee))

	override := decimal.NewFromInt(200)
	a.PriceOverride = &override
	assert.True(t, a.UnitPrice(sessionFee).Equal(override))
}

func TestAppointment_HasGeneratedCredit(t *testing.T) {
	a := Appointment{}
	assert.False(t, a.HasGeneratedCredit())

	generated := false
	a.CreditGenerated = &generated
	assert.False(t, a.HasGeneratedCredit())

	generated = true
	assert.True(t, a.HasGeneratedCredit())
}

func TestRecurrenceType_IntervalDays(t *testing.T) {
	assert.Equal(t, 7, RecurrenceWeekly.IntervalDays())
	assert.Equal(t, 14, RecurrenceBiweekly.IntervalDays())
	assert.Equal(t, 28, RecurrenceMonthly.IntervalDays())
	assert.Equal(t, 0, RecurrenceType("DAILY").IntervalDays())
	assert.False(t, RecurrenceType("DAILY").IsValid())
}

func TestAppointmentRecurrence_HasException(t *testing.T) {
	r := AppointmentRecurrence{Exceptions: []string{"2026-03-10"}}

	assert.True(t, r.HasException(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)))
	assert.False(t, r.HasException(time.Date(2026, 3, 17, 14, 0, 0, 0, time.UTC)))
}
