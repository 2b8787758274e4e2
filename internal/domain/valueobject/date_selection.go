package valueobject

import "time"

// DateSelection is the month (0-11) and year a user is looking at.
type DateSelection struct {
	Month int
	Year  int
}

// CurrentSelection returns the selection containing now.
func CurrentSelection(now time.Time) DateSelection {
	return DateSelection{Month: int(now.Month()) - 1, Year: now.Year()}
}

// Period converts the selection into a month period.
func (d DateSelection) Period() Period {
	return MonthPeriod(d.Month, d.Year)
}

// SelectableYears returns count years ending at the year of now, newest first.
func SelectableYears(now time.Time, count int) []int {
	years := make([]int, 0, count)
	for i := 0; i < count; i++ {
		years = append(years, now.Year()-i)
	}
	return years
}
