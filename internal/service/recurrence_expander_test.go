package service

import (
	"testing"
	"time"

	"clinic-saas-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeeklyRule() *entity.AppointmentRecurrence {
	return &entity.AppointmentRecurrence{
		RecurrenceType:  entity.RecurrenceWeekly,
		DayOfWeek:       2, // Tuesday
		StartDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
		DurationMinutes: 50,
		EndType:         entity.RecurrenceEndIndefinite,
	}
}

func TestExpandOccurrences_WeeklyAnchorsOnFirstMatchingWeekday(t *testing.T) {
	rule := newWeeklyRule()
	// 2026-03-01 is a Sunday; first Tuesday on or after it is 2026-03-03.
	windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	occurrences, err := ExpandOccurrences(rule, windowStart, windowEnd)
	require.NoError(t, err)
	require.Len(t, occurrences, 5)

	assert.Equal(t, time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC), occurrences[0].ScheduledAt)
	assert.Equal(t, time.Date(2026, 3, 3, 14, 50, 0, 0, time.UTC), occurrences[0].EndAt)
	assert.Equal(t, time.Date(2026, 3, 31, 14, 0, 0, 0, time.UTC), occurrences[4].ScheduledAt)

	for i := 1; i < len(occurrences); i++ {
		assert.Equal(t, 7*24*time.Hour, occurrences[i].ScheduledAt.Sub(occurrences[i-1].ScheduledAt))
	}
}

func TestExpandOccurrences_IntervalPerType(t *testing.T) {
	tests := []struct {
		recurrenceType entity.RecurrenceType
		wantDays       int
	}{
		{entity.RecurrenceWeekly, 7},
		{entity.RecurrenceBiweekly, 14},
		{entity.RecurrenceMonthly, 28},
	}
	for _, tt := range tests {
		t.Run(string(tt.recurrenceType), func(t *testing.T) {
			rule := newWeeklyRule()
			rule.RecurrenceType = tt.recurrenceType
			windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			windowEnd := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

			occurrences, err := ExpandOccurrences(rule, windowStart, windowEnd)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(occurrences), 2)

			step := occurrences[1].ScheduledAt.Sub(occurrences[0].ScheduledAt)
			assert.Equal(t, time.Duration(tt.wantDays)*24*time.Hour, step)
		})
	}
}

func TestExpandOccurrences_MonthlyIsTwentyEightDays(t *testing.T) {
	rule := newWeeklyRule()
	rule.RecurrenceType = entity.RecurrenceMonthly
	rule.DayOfWeek = 5 // Friday
	rule.StartDate = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) // a Friday

	occurrences, err := ExpandOccurrences(rule,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, occurrences, 4)

	// Not calendar-month aligned: Jan 2, Jan 30, Feb 27, Mar 27.
	assert.Equal(t, 2, occurrences[0].ScheduledAt.Day())
	assert.Equal(t, time.January, occurrences[1].ScheduledAt.Month())
	assert.Equal(t, 30, occurrences[1].ScheduledAt.Day())
	assert.Equal(t, time.February, occurrences[2].ScheduledAt.Month())
	assert.Equal(t, 27, occurrences[2].ScheduledAt.Day())
}

func TestExpandOccurrences_EndByDate(t *testing.T) {
	rule := newWeeklyRule()
	endDate := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	rule.EndType = entity.RecurrenceEndByDate
	rule.EndDate = &endDate

	occurrences, err := ExpandOccurrences(rule,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, 17, occurrences[2].ScheduledAt.Day())
}

func TestExpandOccurrences_EndByOccurrencesCountsWholeSeries(t *testing.T) {
	rule := newWeeklyRule()
	max := 4
	rule.EndType = entity.RecurrenceEndByOccurrences
	rule.MaxOccurrences = &max

	// Window starts after the series' second occurrence; the cap still
	// counts from the series anchor, so only two slots land in the window.
	occurrences, err := ExpandOccurrences(rule,
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, time.Date(2026, 3, 17, 14, 0, 0, 0, time.UTC), occurrences[0].ScheduledAt)
	assert.Equal(t, time.Date(2026, 3, 24, 14, 0, 0, 0, time.UTC), occurrences[1].ScheduledAt)
}

func TestExpandOccurrences_WindowBeforeSeriesStart(t *testing.T) {
	rule := newWeeklyRule()

	occurrences, err := ExpandOccurrences(rule,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpandOccurrences_InvalidInputs(t *testing.T) {
	windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	rule := newWeeklyRule()
	rule.RecurrenceType = "DAILY"
	_, err := ExpandOccurrences(rule, windowStart, windowEnd)
	assert.Error(t, err)

	rule = newWeeklyRule()
	rule.DayOfWeek = 7
	_, err = ExpandOccurrences(rule, windowStart, windowEnd)
	assert.Error(t, err)

	rule = newWeeklyRule()
	rule.StartTime = "25:99"
	_, err = ExpandOccurrences(rule, windowStart, windowEnd)
	assert.Error(t, err)
}

func TestFilterExisting(t *testing.T) {
	slot := func(day int) Occurrence {
		at := time.Date(2026, 3, day, 14, 0, 0, 0, time.UTC)
		return Occurrence{ScheduledAt: at, EndAt: at.Add(50 * time.Minute)}
	}
	occurrences := []Occurrence{slot(3), slot(10), slot(17)}

	filtered := FilterExisting(occurrences, []time.Time{slot(10).ScheduledAt})
	require.Len(t, filtered, 2)
	assert.Equal(t, 3, filtered[0].ScheduledAt.Day())
	assert.Equal(t, 17, filtered[1].ScheduledAt.Day())

	assert.Equal(t, occurrences, FilterExisting(occurrences, nil))
}

func TestFilterExceptions(t *testing.T) {
	slot := func(day int) Occurrence {
		at := time.Date(2026, 3, day, 14, 0, 0, 0, time.UTC)
		return Occurrence{ScheduledAt: at, EndAt: at.Add(50 * time.Minute)}
	}
	occurrences := []Occurrence{slot(3), slot(10), slot(17)}

	filtered := FilterExceptions(occurrences, []string{"2026-03-10", "2026-03-24"})
	require.Len(t, filtered, 2)
	assert.Equal(t, 3, filtered[0].ScheduledAt.Day())
	assert.Equal(t, 17, filtered[1].ScheduledAt.Day())

	assert.Equal(t, occurrences, FilterExceptions(occurrences, nil))
}
