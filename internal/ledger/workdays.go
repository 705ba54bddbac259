package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/remis/internal/calendar"
	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/stats"
)

// WorkDays returns the weekly configuration ordered Sunday to Saturday.
func (l *Ledger) WorkDays() []model.WorkDayConfig {
	return sortedCopy(l.workDays, func(c model.WorkDayConfig) int { return c.DayOfWeek })
}

// SetWorkDay marks a weekday as worked or not.
func (l *Ledger) SetWorkDay(ctx context.Context, weekday time.Weekday, isWorkDay bool) error {
	idx := slices.IndexFunc(l.workDays, func(c model.WorkDayConfig) bool {
		return c.DayOfWeek == int(weekday)
	})
	if idx < 0 {
		return fmt.Errorf("%w: weekday %d", common.ErrInvalidInput, weekday)
	}

	l.workDays[idx].IsWorkDay = isWorkDay
	l.gateway.SaveWorkDays(ctx, l.workDays)
	return nil
}

// NonWorkingDays returns the exceptions ordered by date.
func (l *Ledger) NonWorkingDays() []model.NonWorkingDay {
	return sortedCopy(l.nonWorkingDays, func(d model.NonWorkingDay) string { return d.Date.Key() })
}

// AddNonWorkingDay marks date as non-working. Adding a date twice is a no-op.
func (l *Ledger) AddNonWorkingDay(ctx context.Context, date model.Date) {
	if calendar.HasException(l.nonWorkingDays, date) {
		return
	}
	l.nonWorkingDays = calendar.AddException(l.nonWorkingDays, date, l.ids.NewID())
	l.gateway.SaveNonWorkingDays(ctx, l.nonWorkingDays)
}

// RemoveNonWorkingDay clears the exception for date, if any.
func (l *Ledger) RemoveNonWorkingDay(ctx context.Context, date model.Date) {
	if !calendar.HasException(l.nonWorkingDays, date) {
		return
	}
	l.nonWorkingDays = calendar.RemoveException(l.nonWorkingDays, date)
	l.gateway.SaveNonWorkingDays(ctx, l.nonWorkingDays)
}

// ToggleNonWorkingDay adds the exception for date if it is missing and
// removes it otherwise. It reports whether date is now an exception.
func (l *Ledger) ToggleNonWorkingDay(ctx context.Context, date model.Date) bool {
	if calendar.HasException(l.nonWorkingDays, date) {
		l.RemoveNonWorkingDay(ctx, date)
		return false
	}
	l.AddNonWorkingDay(ctx, date)
	return true
}

// IsWorkingDay applies the weekly configuration and the exceptions to date.
func (l *Ledger) IsWorkingDay(date model.Date) bool {
	return calendar.IsWorkingDay(date, l.workDays, l.nonWorkingDays)
}

// MonthlyStats computes the summary of one calendar month from the
// current state.
func (l *Ledger) MonthlyStats(year int, month time.Month) model.MonthlyStats {
	return stats.Compute(year, month, l.transactions, l.workDays, l.nonWorkingDays)
}
