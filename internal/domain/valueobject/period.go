// Package valueobject contains immutable value types shared across use cases.
package valueobject

import (
	"errors"
	"time"
)

// WeekStart is the first day of a calendar week for week periods.
const WeekStart = time.Sunday

// PeriodKind identifies which form a Period takes.
type PeriodKind string

const (
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
	PeriodWeek  PeriodKind = "week"
)

var (
	errInvalidMonth = errors.New("month must be between 0 and 11")
	errInvalidYear  = errors.New("year must be between 1900 and 9999")
	errMissingWeek  = errors.New("week date is required")
)

// Period is a calendar range: a month of a year, a whole year, or the week
// containing a given date. Bounds are inclusive on both ends.
type Period struct {
	Kind   PeriodKind
	Month  int // 0-11, only for PeriodMonth
	Year   int
	WeekOf time.Time
}

// MonthPeriod returns the period for a 0-based month of year.
func MonthPeriod(month, year int) Period {
	return Period{Kind: PeriodMonth, Month: month, Year: year}
}

// YearPeriod returns the period covering January 1 to December 31 of year.
func YearPeriod(year int) Period {
	return Period{Kind: PeriodYear, Year: year}
}

// WeekPeriod returns the period of the week that contains date.
func WeekPeriod(date time.Time) Period {
	return Period{Kind: PeriodWeek, WeekOf: DateOnly(date), Year: date.Year()}
}

// Validate checks that the period fields are in range.
func (p Period) Validate() error {
	switch p.Kind {
	case PeriodMonth:
		if p.Month < 0 || p.Month > 11 {
			return errInvalidMonth
		}
		return validateYear(p.Year)
	case PeriodYear:
		return validateYear(p.Year)
	case PeriodWeek:
		if p.WeekOf.IsZero() {
			return errMissingWeek
		}
		return nil
	}
	return errors.New("unknown period kind")
}

func validateYear(year int) error {
	if year < 1900 || year > 9999 {
		return errInvalidYear
	}
	return nil
}

// Bounds returns the first and last calendar day of the period as UTC
// midnights.
func (p Period) Bounds() (time.Time, time.Time) {
	switch p.Kind {
	case PeriodMonth:
		start := time.Date(p.Year, time.Month(p.Month+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case PeriodWeek:
		day := DateOnly(p.WeekOf)
		offset := (int(day.Weekday()) - int(WeekStart) + 7) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	default:
		start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, time.Date(p.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}

// Contains reports whether the calendar day of date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	start, end := p.Bounds()
	day := DateOnly(date)
	return !day.Before(start) && !day.After(end)
}

// DateOnly strips the clock from t, keeping its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
