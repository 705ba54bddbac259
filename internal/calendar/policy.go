// Package calendar decides which days are worked. A weekday is worked when
// the weekly configuration says so and the date is not listed as a
// non-working exception. Exceptions can only remove working days.
package calendar

import (
	"slices"
	"time"

	"github.com/Veraticus/remis/internal/model"
)

// IsWorkingDay reports whether date is a working day. A weekday with no
// configuration entry is treated as non-working.
func IsWorkingDay(date model.Date, workDays []model.WorkDayConfig, exceptions []model.NonWorkingDay) bool {
	weekday := int(date.Weekday())

	idx := slices.IndexFunc(workDays, func(c model.WorkDayConfig) bool {
		return c.DayOfWeek == weekday
	})
	if idx < 0 || !workDays[idx].IsWorkDay {
		return false
	}

	return !HasException(exceptions, date)
}

// HasException reports whether exceptions lists date.
func HasException(exceptions []model.NonWorkingDay, date model.Date) bool {
	return indexOf(exceptions, date) >= 0
}

// AddException returns exceptions with date added under id. If the date is
// already listed the input is returned unchanged.
func AddException(exceptions []model.NonWorkingDay, date model.Date, id string) []model.NonWorkingDay {
	if HasException(exceptions, date) {
		return exceptions
	}
	out := make([]model.NonWorkingDay, 0, len(exceptions)+1)
	out = append(out, exceptions...)
	return append(out, model.NonWorkingDay{ID: id, Date: date})
}

// RemoveException returns exceptions without any entry for date.
func RemoveException(exceptions []model.NonWorkingDay, date model.Date) []model.NonWorkingDay {
	out := make([]model.NonWorkingDay, 0, len(exceptions))
	for _, e := range exceptions {
		if !e.Date.SameDay(date) {
			out = append(out, e)
		}
	}
	return out
}

// WorkingDaysIn counts the working days of a calendar month.
func WorkingDaysIn(year int, month time.Month, workDays []model.WorkDayConfig, exceptions []model.NonWorkingDay) int {
	count := 0
	for _, day := range DaysIn(year, month) {
		if IsWorkingDay(day, workDays, exceptions) {
			count++
		}
	}
	return count
}

// DaysIn lists every day of a calendar month, first to last.
func DaysIn(year int, month time.Month) []model.Date {
	first := model.NewDate(year, month, 1)
	// Day 0 of the next month is the last day of this one.
	last := model.NewDate(year, month+1, 0)

	days := make([]model.Date, 0, last.Day())
	for d := first; !d.After(last.Time); d = model.DateOf(d.AddDate(0, 0, 1)) {
		days = append(days, d)
	}
	return days
}

func indexOf(exceptions []model.NonWorkingDay, date model.Date) int {
	return slices.IndexFunc(exceptions, func(e model.NonWorkingDay) bool {
		return e.Date.SameDay(date)
	})
}
