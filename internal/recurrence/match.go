// Package recurrence decides on which calendar dates a recurring task is due.
package recurrence

import (
	"slices"
	"time"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

// Matches reports whether rule, anchored at createdAt, is due on date.
//
// Both sides are compared as UTC calendar dates: createdAt is converted to
// UTC and truncated to midnight of that day. Dates before the anchor never
// match, and neither does a rule with an interval outside 1..30.
func Matches(rule model.RecurrenceRule, createdAt time.Time, date model.Date) bool {
	if rule.Interval < 1 || rule.Interval > model.MaxRecurrenceInterval {
		return false
	}
	dayDiff := date.DaysSince(model.UTCDate(createdAt))
	if dayDiff < 0 {
		return false
	}

	switch rule.Type {
	case model.RecurDaily:
		return dayDiff%rule.Interval == 0
	case model.RecurWeekly:
		if !slices.Contains(rule.Weekdays, date.ISOWeekday()) {
			return false
		}
		return (dayDiff/7)%rule.Interval == 0
	default:
		return false
	}
}

// Due reports whether a recurring task produces an instance on date.
// Archived definitions are never due.
func Due(task model.RecurringTask, date model.Date) bool {
	if task.Archived {
		return false
	}
	return Matches(task.Recurrence, task.CreatedAt, date)
}

// Next returns the first date on or after from on which task is due,
// searching at most limit days ahead.
func Next(task model.RecurringTask, from model.Date, limit int) (model.Date, bool) {
	for i := 0; i <= limit; i++ {
		d := from.AddDays(i)
		if Due(task, d) {
			return d, true
		}
	}
	return model.Date{}, false
}
