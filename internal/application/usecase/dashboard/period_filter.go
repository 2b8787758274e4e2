// Package dashboard contains the expense aggregation functions and the
// dashboard use cases built on them.
package dashboard

import (
	"fmt"
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// monthAbbreviations maps month numbers to display abbreviations.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// ParseOccurredOn reads an expense date. It accepts a plain YYYY-MM-DD date
// or an RFC 3339 timestamp, whose calendar day is kept.
func ParseOccurredOn(value string) (time.Time, bool) {
	if t, err := time.Parse(entity.OccurredOnLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return valueobject.DateOnly(t), true
	}
	return time.Time{}, false
}

// FilterByPeriod returns the expenses whose date falls inside the period,
// bounds included, in their original order. Expenses with an unparseable
// date are dropped. The input slice is not modified.
func FilterByPeriod(expenses []*entity.Expense, period valueobject.Period) []*entity.Expense {
	start, end := period.Bounds()
	filtered := make([]*entity.Expense, 0, len(expenses))
	for _, expense := range expenses {
		day, ok := ParseOccurredOn(expense.OccurredOn)
		if !ok {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		filtered = append(filtered, expense)
	}
	return filtered
}

// PeriodLabel returns a short display label such as "Mar 2024", "2024"
// or "Week of Mar 10 2024".
func PeriodLabel(period valueobject.Period) string {
	switch period.Kind {
	case valueobject.PeriodMonth:
		return fmt.Sprintf("%s %d", monthAbbreviations[time.Month(period.Month+1)], period.Year)
	case valueobject.PeriodWeek:
		start, _ := period.Bounds()
		return fmt.Sprintf("Week of %s %d %d", monthAbbreviations[start.Month()], start.Day(), start.Year())
	default:
		return fmt.Sprintf("%d", period.Year)
	}
}
