package dashboard

import "github.com/shopspring/decimal"

// PeriodSummary is the savings picture of one month. All figures are
// computed together and must be read together.
type PeriodSummary struct {
	VariableTotal  decimal.Decimal
	FixedTotal     decimal.Decimal
	CombinedTotal  decimal.Decimal
	Income         decimal.Decimal
	Savings        decimal.Decimal
	SavingsPercent decimal.Decimal
}

// SummarizePeriod derives savings from spending and income. Savings may be
// negative. The percentage is zero whenever income is not positive.
func SummarizePeriod(variableTotal, fixedTotal, income decimal.Decimal) PeriodSummary {
	combined := variableTotal.Add(fixedTotal)
	savings := income.Sub(combined)

	percent := decimal.Zero
	if income.IsPositive() {
		percent = savings.Div(income).Mul(hundred).Round(1)
	}

	return PeriodSummary{
		VariableTotal:  variableTotal,
		FixedTotal:     fixedTotal,
		CombinedTotal:  combined,
		Income:         income,
		Savings:        savings,
		SavingsPercent: percent,
	}
}

// IsOverspent reports whether spending exceeded income.
func (s PeriodSummary) IsOverspent() bool {
	return s.Savings.IsNegative()
}
