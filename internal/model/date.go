package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the ISO-8601 calendar-date form used for storage and for
// per-day aggregation keys.
const DayLayout = "2006-01-02"

// Date is a calendar day. The wrapped time is always midnight UTC of that
// day, so two Dates for the same day are equal by value.
type Date struct {
	time.Time
}

// NewDate returns the calendar day year-month-day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day t falls on in its own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// Key returns the YYYY-MM-DD form of the day.
func (d Date) Key() string {
	return d.Format(DayLayout)
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Key()
}

// SameDay reports whether d and other share year, month and day-of-month.
func (d Date) SameDay(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

// InMonth reports whether d falls in the given calendar month.
func (d Date) InMonth(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

// MarshalJSON writes the day as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Key())
}

// UnmarshalJSON accepts YYYY-MM-DD as well as full ISO-8601 timestamps.
// Timestamps are read the way a browser reads them back: the calendar day
// is taken in the local time zone.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if len(s) == len(DayLayout) {
		parsed, err := ParseDate(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = DateOf(t.In(time.Local))
	return nil
}
