package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the amount spent in one category over a period.
type CategoryTotal struct {
	Category    entity.ExpenseCategory
	TotalAmount decimal.Decimal
	Percent     decimal.Decimal
}

// CategoryBreakdown is the per-category split of a period's expenses.
type CategoryBreakdown struct {
	Categories []CategoryTotal
	GrandTotal decimal.Decimal
}

// roundMoney rounds to cents. Amounts are non-negative, so rounding half
// away from zero is rounding half up.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percentOf returns part/whole*100 to one decimal place, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(1)
}

// AggregateByCategory sums expenses per category. Categories are ordered by
// total descending; equal totals keep the order in which the category was
// first seen. The grand total is the rounded sum of raw amounts, not the
// sum of rounded category totals.
func AggregateByCategory(expenses []*entity.Expense) CategoryBreakdown {
	order := make([]entity.ExpenseCategory, 0)
	sums := make(map[entity.ExpenseCategory]decimal.Decimal)
	grand := decimal.Zero

	for _, expense := range expenses {
		sum, seen := sums[expense.Category]
		if !seen {
			order = append(order, expense.Category)
		}
		sums[expense.Category] = sum.Add(expense.Amount)
		grand = grand.Add(expense.Amount)
	}

	totals := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		totals = append(totals, CategoryTotal{
			Category:    category,
			TotalAmount: roundMoney(sums[category]),
			Percent:     percentOf(sums[category], grand),
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalAmount.GreaterThan(totals[j].TotalAmount)
	})

	return CategoryBreakdown{
		Categories: totals,
		GrandTotal: roundMoney(grand),
	}
}
