package dto

import "github.com/shopspring/decimal"

// toFloat renders a money amount rounded to cents.
func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// toPercent renders a percentage rounded to one decimal place.
func toPercent(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}

// decimalPtr converts an optional JSON number into a decimal.
func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
