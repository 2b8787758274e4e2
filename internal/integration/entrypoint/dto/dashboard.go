package dto

import (
	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryTotalResponse represents one category slice of a breakdown.
type CategoryTotalResponse struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
	Percent     float64 `json:"percent"`
}

// CategoryBreakdownResponse represents the category breakdown of a period.
type CategoryBreakdownResponse struct {
	PeriodLabel string                  `json:"periodLabel"`
	StartDate   string                  `json:"startDate"`
	EndDate     string                  `json:"endDate"`
	Categories  []CategoryTotalResponse `json:"categories"`
	GrandTotal  float64                 `json:"grandTotal"`
}

// PeriodSummaryResponse represents the monthly savings card.
type PeriodSummaryResponse struct {
	Month          int                     `json:"month"`
	Year           int                     `json:"year"`
	PeriodLabel    string                  `json:"periodLabel"`
	VariableTotal  float64                 `json:"variableTotal"`
	FixedTotal     float64                 `json:"fixedTotal"`
	FixedIsDefault bool                    `json:"fixedIsDefault"`
	CombinedTotal  float64                 `json:"combinedTotal"`
	Income         float64                 `json:"income"`
	Savings        float64                 `json:"savings"`
	SavingsPercent float64                 `json:"savingsPercent"`
	Overspent      bool                    `json:"overspent"`
	Categories     []CategoryTotalResponse `json:"categories"`
}

// MonthlyBucketResponse represents one month of the yearly chart.
type MonthlyBucketResponse struct {
	Month         int     `json:"month"`
	Label         string  `json:"label"`
	VariableTotal float64 `json:"variableTotal"`
	FixedTotal    float64 `json:"fixedTotal"`
	CombinedTotal float64 `json:"combinedTotal"`
}

// YearlyOverviewResponse represents the twelve-month overview of a year.
type YearlyOverviewResponse struct {
	Year           int                     `json:"year"`
	Months         []MonthlyBucketResponse `json:"months"`
	YearTotal      float64                 `json:"yearTotal"`
	MonthlyAverage float64                 `json:"monthlyAverage"`
}

// SelectableYearsResponse lists the years offered by the year picker.
type SelectableYearsResponse struct {
	Years []int `json:"years"`
}

// ToCategoryBreakdownResponse converts the breakdown output.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	return CategoryBreakdownResponse{
		PeriodLabel: output.PeriodLabel,
		StartDate:   output.StartDate.Format(entity.OccurredOnLayout),
		EndDate:     output.EndDate.Format(entity.OccurredOnLayout),
		Categories:  toCategoryTotals(output.Breakdown),
		GrandTotal:  toFloat(output.Breakdown.GrandTotal),
	}
}

// ToPeriodSummaryResponse converts the period summary output.
func ToPeriodSummaryResponse(output *dashboard.GetPeriodSummaryOutput) PeriodSummaryResponse {
	s := output.Summary
	return PeriodSummaryResponse{
		Month:          output.Selection.Month,
		Year:           output.Selection.Year,
		PeriodLabel:    output.PeriodLabel,
		VariableTotal:  toFloat(s.VariableTotal),
		FixedTotal:     toFloat(s.FixedTotal),
		FixedIsDefault: output.FixedIsDefault,
		CombinedTotal:  toFloat(s.CombinedTotal),
		Income:         toFloat(s.Income),
		Savings:        toFloat(s.Savings),
		SavingsPercent: toPercent(s.SavingsPercent),
		Overspent:      s.IsOverspent(),
		Categories:     toCategoryTotals(output.Breakdown),
	}
}

// ToYearlyOverviewResponse converts the yearly overview.
func ToYearlyOverviewResponse(overview *dashboard.YearlyOverview) YearlyOverviewResponse {
	months := make([]MonthlyBucketResponse, 0, len(overview.Buckets))
	for _, b := range overview.Buckets {
		months = append(months, MonthlyBucketResponse{
			Month:         b.Month,
			Label:         b.Label,
			VariableTotal: toFloat(b.VariableTotal),
			FixedTotal:    toFloat(b.FixedTotal),
			CombinedTotal: toFloat(b.CombinedTotal),
		})
	}
	return YearlyOverviewResponse{
		Year:           overview.Year,
		Months:         months,
		YearTotal:      toFloat(overview.YearTotal),
		MonthlyAverage: toFloat(overview.MonthlyAverage),
	}
}

func toCategoryTotals(breakdown dashboard.CategoryBreakdown) []CategoryTotalResponse {
	categories := make([]CategoryTotalResponse, 0, len(breakdown.Categories))
	for _, c := range breakdown.Categories {
		categories = append(categories, CategoryTotalResponse{
			Category:    string(c.Category),
			TotalAmount: toFloat(c.TotalAmount),
			Percent:     toPercent(c.Percent),
		})
	}
	return categories
}
