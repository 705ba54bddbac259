package model

import (
	"fmt"
	"time"
)

// DaysInWeek is the number of entries a work-day configuration holds.
const DaysInWeek = 7

// WorkDayConfig says whether a weekday is worked by default.
// DayOfWeek follows time.Weekday: 0 is Sunday, 6 is Saturday.
type WorkDayConfig struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	IsWorkDay bool   `json:"isWorkDay"`
}

// NonWorkingDay forces a single calendar day to be non-working.
type NonWorkingDay struct {
	Date Date   `json:"date"`
	ID   string `json:"id"`
}

// DefaultWorkDays returns every day as working except Sunday.
func DefaultWorkDays() []WorkDayConfig {
	days := make([]WorkDayConfig, DaysInWeek)
	for i := range days {
		days[i] = WorkDayConfig{
			ID:        fmt.Sprintf("day-%d", i),
			DayOfWeek: i,
			IsWorkDay: time.Weekday(i) != time.Sunday,
		}
	}
	return days
}

// ValidateWorkDays checks that there is exactly one entry per weekday.
func ValidateWorkDays(days []WorkDayConfig) error {
	if len(days) != DaysInWeek {
		return fmt.Errorf("work-day config has %d entries, want %d", len(days), DaysInWeek)
	}
	var seen [DaysInWeek]bool
	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek >= DaysInWeek {
			return fmt.Errorf("work-day config has invalid weekday %d", d.DayOfWeek)
		}
		if seen[d.DayOfWeek] {
			return fmt.Errorf("work-day config repeats weekday %d", d.DayOfWeek)
		}
		seen[d.DayOfWeek] = true
	}
	return nil
}
