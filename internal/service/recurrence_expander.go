package service

import (
	"fmt"
	"time"

	"clinic-saas-backend/internal/domain/entity"
)

// Occurrence is one concrete slot produced by expanding a recurrence rule
type Occurrence struct {
	ScheduledAt time.Time
	EndAt       time.Time
}

// Date returns the occurrence's calendar date at midnight
func (o Occurrence) Date() time.Time {
	return time.Date(o.ScheduledAt.Year(), o.ScheduledAt.Month(), o.ScheduledAt.Day(), 0, 0, 0, 0, o.ScheduledAt.Location())
}

// ExpandOccurrences produces the ordered, finite sequence of occurrences of
// a recurrence rule inside [windowStart, windowEnd].
//
// The series anchors at the first date >= rule.StartDate matching the rule's
// day of week, then steps by the type's fixed interval (7/14/28 days —
// MONTHLY is exactly 28 days, not calendar-month alignment). BY_DATE and
// BY_OCCURRENCES limits apply to the whole series, not just the window.
func ExpandOccurrences(rule *entity.AppointmentRecurrence, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	if !rule.RecurrenceType.IsValid() {
		return nil, fmt.Errorf("unknown recurrence type %q", rule.RecurrenceType)
	}
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		return nil, fmt.Errorf("day of week out of range: %d", rule.DayOfWeek)
	}

	startTime, err := time.Parse("15:04", rule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", rule.StartTime, err)
	}

	interval := rule.RecurrenceType.IntervalDays()
	duration := time.Duration(rule.DurationMinutes) * time.Minute

	// Anchor: earliest date >= StartDate falling on the requested weekday.
	anchor := truncateToDay(rule.StartDate)
	for int(anchor.Weekday()) != rule.DayOfWeek {
		anchor = anchor.AddDate(0, 0, 1)
	}

	windowStartDay := truncateToDay(windowStart)
	windowEndDay := truncateToDay(windowEnd)

	var occurrences []Occurrence
	count := 0
	for date := anchor; !date.After(windowEndDay); date = date.AddDate(0, 0, interval) {
		count++

		if rule.EndType == entity.RecurrenceEndByOccurrences &&
			rule.MaxOccurrences != nil && count > *rule.MaxOccurrences {
			break
		}
		if rule.EndType == entity.RecurrenceEndByDate &&
			rule.EndDate != nil && date.After(truncateToDay(*rule.EndDate)) {
			break
		}

		if date.Before(windowStartDay) {
			continue
		}

		scheduledAt := time.Date(date.Year(), date.Month(), date.Day(),
			startTime.Hour(), startTime.Minute(), 0, 0, date.Location())
		occurrences = append(occurrences, Occurrence{
			ScheduledAt: scheduledAt,
			EndAt:       scheduledAt.Add(duration),
		})
	}

	return occurrences, nil
}

// FilterExisting removes occurrences whose start timestamp already exists
// among the given appointment start times, making regeneration idempotent.
func FilterExisting(occurrences []Occurrence, existingStartTimes []time.Time) []Occurrence {
	if len(existingStartTimes) == 0 {
		return occurrences
	}

	existing := make(map[int64]struct{}, len(existingStartTimes))
	for _, t := range existingStartTimes {
		existing[t.Unix()] = struct{}{}
	}

	filtered := make([]Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if _, found := existing[occ.ScheduledAt.Unix()]; found {
			continue
		}
		filtered = append(filtered, occ)
	}
	return filtered
}

// FilterExceptions removes occurrences whose date appears in the rule's
// exception set (YYYY-MM-DD).
func FilterExceptions(occurrences []Occurrence, exceptions []string) []Occurrence {
	if len(exceptions) == 0 {
		return occurrences
	}

	skipped := make(map[string]struct{}, len(exceptions))
	for _, e := range exceptions {
		skipped[e] = struct{}{}
	}

	filtered := make([]Occurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if _, found := skipped[occ.ScheduledAt.Format(entity.ExceptionDateLayout)]; found {
			continue
		}
		filtered = append(filtered, occ)
	}
	return filtered
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
