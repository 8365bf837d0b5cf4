// Package period resolves a (year, month) pair into the calendar dates it covers.
package period

import (
	"fmt"
	"time"
)

// Bounds accepted for a year. They match the range of a proleptic Gregorian
// calendar date with a four digit year.
const (
	MinYear = 1
	MaxYear = 9999
)

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month int
}

// New validates year and month and returns the Month they identify.
func New(year, month int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < MinYear || year > MaxYear {
		return Month{}, fmt.Errorf("year must be between %d and %d, got %d", MinYear, MaxYear, year)
	}
	return Month{Year: year, Month: month}, nil
}

// Of returns the Month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// FirstDay is midnight UTC on the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay is midnight UTC on the last day of the month, leap years included.
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.LastDay().Day()
}

// Range returns the inclusive [first day, last day] of the month.
func (m Month) Range() (time.Time, time.Time) {
	return m.FirstDay(), m.LastDay()
}

// Contains reports whether the calendar date of t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && int(t.Month()) == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// DateOnly truncates t to midnight UTC of its calendar date. Transaction
// dates are stored this way so inclusive range queries hit whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
