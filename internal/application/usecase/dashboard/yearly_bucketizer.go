package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

var monthsInYear = decimal.NewFromInt(12)

// MonthlyBucket is one month of the yearly overview. Month is 0-based.
type MonthlyBucket struct {
	Month         int
	Label         string
	VariableTotal decimal.Decimal
	FixedTotal    decimal.Decimal
	CombinedTotal decimal.Decimal
}

// YearlyOverview is the month-by-month spending of a year.
type YearlyOverview struct {
	Year           int
	Buckets        [12]MonthlyBucket
	YearTotal      decimal.Decimal
	MonthlyAverage decimal.Decimal
}

// BucketizeYear splits a year's expenses into twelve monthly buckets. The
// same fixedTotal is added to every month. The monthly average divides by
// the months elapsed so far when year is the current year of now, and by
// twelve otherwise.
func BucketizeYear(expenses []*entity.Expense, year int, fixedTotal decimal.Decimal, now time.Time) YearlyOverview {
	var sums [12]decimal.Decimal
	for _, expense := range FilterByPeriod(expenses, valueobject.YearPeriod(year)) {
		day, _ := ParseOccurredOn(expense.OccurredOn)
		idx := int(day.Month()) - 1
		sums[idx] = sums[idx].Add(expense.Amount)
	}

	overview := YearlyOverview{Year: year, YearTotal: decimal.Zero}
	for i := 0; i < 12; i++ {
		variable := roundMoney(sums[i])
		combined := variable.Add(fixedTotal)
		overview.Buckets[i] = MonthlyBucket{
			Month:         i,
			Label:         monthAbbreviations[time.Month(i+1)],
			VariableTotal: variable,
			FixedTotal:    fixedTotal,
			CombinedTotal: combined,
		}
		overview.YearTotal = overview.YearTotal.Add(combined)
	}

	divisor := monthsInYear
	if year == now.Year() {
		divisor = decimal.NewFromInt(int64(now.Month()))
	}
	overview.MonthlyAverage = roundMoney(overview.YearTotal.Div(divisor))

	return overview
}
