package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func expense(amount string, category entity.ExpenseCategory, occurredOn string) *entity.Expense {
	return &entity.Expense{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Amount:     decimal.RequireFromString(amount),
		Category:   category,
		OccurredOn: occurredOn,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func marchExpenses() []*entity.Expense {
	return []*entity.Expense{
		expense("200", entity.CategoryFoodDining, "2024-03-05"),
		expense("300", entity.CategoryFoodDining, "2024-03-20"),
		expense("150", entity.CategoryTransportation, "2024-03-10"),
	}
}

func TestFilterByPeriod(t *testing.T) {
	expenses := []*entity.Expense{
		expense("10", entity.CategoryOther, "2024-03-01"),
		expense("20", entity.CategoryOther, "2024-03-31"),
		expense("30", entity.CategoryOther, "2024-04-01"),
		expense("40", entity.CategoryOther, "2024-02-29"),
		expense("50", entity.CategoryOther, "not-a-date"),
		expense("60", entity.CategoryOther, ""),
		expense("70", entity.CategoryOther, "2024-03-15T18:30:00Z"),
		expense("80", entity.CategoryOther, "2024-02-30"),
	}

	tests := []struct {
		name   string
		period valueobject.Period
		want   []string
	}{
		{"month includes both bounds", valueobject.MonthPeriod(2, 2024), []string{"10", "20", "70"}},
		{"year", valueobject.YearPeriod(2024), []string{"10", "20", "30", "40", "70"}},
		{"week of march 13", valueobject.WeekPeriod(time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)), []string{"70"}},
		{"empty year", valueobject.YearPeriod(2023), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPeriod(expenses, tt.period)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d expenses, got %d", len(tt.want), len(got))
			}
			for i, e := range got {
				if !e.Amount.Equal(dec(tt.want[i])) {
					t.Errorf("expense %d amount = %s, want %s", i, e.Amount, tt.want[i])
				}
			}
		})
	}

	if len(expenses) != 8 {
		t.Error("input slice was modified")
	}
}

func TestAggregateByCategory_MarchExample(t *testing.T) {
	filtered := FilterByPeriod(marchExpenses(), valueobject.MonthPeriod(2, 2024))
	result := AggregateByCategory(filtered)

	if len(result.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(result.Categories))
	}
	if result.Categories[0].Category != entity.CategoryFoodDining || !result.Categories[0].TotalAmount.Equal(dec("500")) {
		t.Errorf("first = %+v, want Food & Dining 500", result.Categories[0])
	}
	if result.Categories[1].Category != entity.CategoryTransportation || !result.Categories[1].TotalAmount.Equal(dec("150")) {
		t.Errorf("second = %+v, want Transportation 150", result.Categories[1])
	}
	if !result.GrandTotal.Equal(dec("650")) {
		t.Errorf("grand total = %s, want 650", result.GrandTotal)
	}
	if !result.Categories[0].Percent.Equal(dec("76.9")) {
		t.Errorf("food percent = %s, want 76.9", result.Categories[0].Percent)
	}
	if !result.Categories[1].Percent.Equal(dec("23.1")) {
		t.Errorf("transport percent = %s, want 23.1", result.Categories[1].Percent)
	}
}

func TestAggregateByCategory_TiesKeepFirstSeenOrder(t *testing.T) {
	expenses := []*entity.Expense{
		expense("50", entity.CategoryShopping, "2024-01-01"),
		expense("100", entity.CategoryHealthcare, "2024-01-02"),
		expense("50", entity.CategoryEducation, "2024-01-03"),
		expense("50", entity.CategoryShopping, "2024-01-04"),
		expense("50", entity.CategoryEducation, "2024-01-05"),
	}

	result := AggregateByCategory(expenses)
	want := []entity.ExpenseCategory{entity.CategoryShopping, entity.CategoryHealthcare, entity.CategoryEducation}
	if len(result.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(result.Categories))
	}
	for i, c := range want {
		if result.Categories[i].Category != c {
			t.Errorf("position %d = %s, want %s", i, result.Categories[i].Category, c)
		}
	}
}

func TestAggregateByCategory_RoundsHalfUpAndSumsRawAmounts(t *testing.T) {
	expenses := []*entity.Expense{
		expense("0.005", entity.CategoryFoodDining, "2024-01-01"),
		expense("0.005", entity.CategoryShopping, "2024-01-01"),
		expense("0.005", entity.CategoryOther, "2024-01-01"),
	}

	result := AggregateByCategory(expenses)
	for _, c := range result.Categories {
		if !c.TotalAmount.Equal(dec("0.01")) {
			t.Errorf("%s total = %s, want 0.01", c.Category, c.TotalAmount)
		}
	}
	// 0.015 rounds once to 0.02, not 0.03 from summing rounded totals.
	if !result.GrandTotal.Equal(dec("0.02")) {
		t.Errorf("grand total = %s, want 0.02", result.GrandTotal)
	}
}

func TestAggregateByCategory_SumMatchesGrandTotalWithinCent(t *testing.T) {
	expenses := []*entity.Expense{
		expense("10.333", entity.CategoryFoodDining, "2024-05-01"),
		expense("20.456", entity.CategoryShopping, "2024-05-02"),
		expense("0.111", entity.CategoryOther, "2024-05-03"),
		expense("99.999", entity.CategoryFoodDining, "2024-05-04"),
	}

	result := AggregateByCategory(expenses)
	sum := decimal.Zero
	for _, c := range result.Categories {
		sum = sum.Add(c.TotalAmount)
	}
	if sum.Sub(result.GrandTotal).Abs().GreaterThan(dec("0.01")) {
		t.Errorf("category sum %s differs from grand total %s by more than a cent", sum, result.GrandTotal)
	}
}

func TestAggregateByCategory_NoZeroCategoriesAndZeroGrandTotal(t *testing.T) {
	empty := AggregateByCategory(nil)
	if len(empty.Categories) != 0 {
		t.Errorf("expected no categories, got %d", len(empty.Categories))
	}
	if !empty.GrandTotal.IsZero() {
		t.Errorf("expected zero grand total, got %s", empty.GrandTotal)
	}

	zeroes := AggregateByCategory([]*entity.Expense{
		expense("0", entity.CategoryFoodDining, "2024-01-01"),
		expense("0", entity.CategoryOther, "2024-01-02"),
	})
	for _, c := range zeroes.Categories {
		if !c.Percent.IsZero() {
			t.Errorf("%s percent = %s, want 0 when grand total is zero", c.Category, c.Percent)
		}
	}
}

func TestAggregateByCategory_IsIdempotent(t *testing.T) {
	input := marchExpenses()
	first := AggregateByCategory(input)
	second := AggregateByCategory(input)

	if len(first.Categories) != len(second.Categories) || !first.GrandTotal.Equal(second.GrandTotal) {
		t.Fatal("repeated aggregation produced different results")
	}
	for i := range first.Categories {
		a, b := first.Categories[i], second.Categories[i]
		if a.Category != b.Category || !a.TotalAmount.Equal(b.TotalAmount) || !a.Percent.Equal(b.Percent) {
			t.Errorf("category %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestBucketizeYear(t *testing.T) {
	expenses := []*entity.Expense{
		expense("100.004", entity.CategoryFoodDining, "2023-01-15"),
		expense("50", entity.CategoryFoodDining, "2023-01-20"),
		expense("300", entity.CategoryShopping, "2023-12-31"),
		expense("999", entity.CategoryShopping, "2024-01-01"),
		expense("1", entity.CategoryShopping, "garbage"),
	}
	fixed := dec("5000")
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	overview := BucketizeYear(expenses, 2023, fixed, now)

	if len(overview.Buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(overview.Buckets))
	}
	if !overview.Buckets[0].VariableTotal.Equal(dec("150")) {
		t.Errorf("january variable = %s, want 150", overview.Buckets[0].VariableTotal)
	}
	if !overview.Buckets[11].VariableTotal.Equal(dec("300")) {
		t.Errorf("december variable = %s, want 300", overview.Buckets[11].VariableTotal)
	}
	for i, b := range overview.Buckets {
		if b.Month != i {
			t.Errorf("bucket %d has month %d", i, b.Month)
		}
		if !b.FixedTotal.Equal(fixed) {
			t.Errorf("bucket %d fixed = %s, want %s", i, b.FixedTotal, fixed)
		}
		if !b.CombinedTotal.Equal(b.VariableTotal.Add(b.FixedTotal)) {
			t.Errorf("bucket %d combined is not variable+fixed", i)
		}
	}
	// 12*5000 + 150 + 300
	if !overview.YearTotal.Equal(dec("60450")) {
		t.Errorf("year total = %s, want 60450", overview.YearTotal)
	}
	if !overview.MonthlyAverage.Equal(dec("5037.5")) {
		t.Errorf("past year average = %s, want 5037.5", overview.MonthlyAverage)
	}
}

func TestBucketizeYear_CurrentYearAveragesElapsedMonths(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	overview := BucketizeYear(nil, 2024, dec("100"), now)

	if !overview.YearTotal.Equal(dec("1200")) {
		t.Fatalf("year total = %s, want 1200", overview.YearTotal)
	}
	// March is month index 2, so three months have elapsed.
	if !overview.MonthlyAverage.Equal(dec("400")) {
		t.Errorf("current year average = %s, want 400", overview.MonthlyAverage)
	}
}

func TestBucketizeYear_EmptyYearStillHasTwelveBuckets(t *testing.T) {
	overview := BucketizeYear(nil, 2020, decimal.Zero, time.Now())
	if len(overview.Buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(overview.Buckets))
	}
	if overview.Buckets[0].Label != "Jan" || overview.Buckets[11].Label != "Dec" {
		t.Errorf("unexpected labels %q..%q", overview.Buckets[0].Label, overview.Buckets[11].Label)
	}
}

func TestSummarizePeriod(t *testing.T) {
	tests := []struct {
		name        string
		variable    string
		fixed       string
		income      string
		wantComb    string
		wantSavings string
		wantPercent string
	}{
		{"example", "3000", "5000", "20000", "8000", "12000", "60"},
		{"overspent", "4000", "5000", "6000", "9000", "-3000", "-50"},
		{"no income", "100", "5000", "0", "5100", "-5100", "0"},
		{"one decimal", "0", "1", "3", "1", "2", "66.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SummarizePeriod(dec(tt.variable), dec(tt.fixed), dec(tt.income))
			if !s.CombinedTotal.Equal(dec(tt.wantComb)) {
				t.Errorf("combined = %s, want %s", s.CombinedTotal, tt.wantComb)
			}
			if !s.Savings.Equal(dec(tt.wantSavings)) {
				t.Errorf("savings = %s, want %s", s.Savings, tt.wantSavings)
			}
			if !s.SavingsPercent.Equal(dec(tt.wantPercent)) {
				t.Errorf("percent = %s, want %s", s.SavingsPercent, tt.wantPercent)
			}
		})
	}
}

func TestSummarizePeriod_OverspentFlag(t *testing.T) {
	if SummarizePeriod(dec("10"), dec("0"), dec("20")).IsOverspent() {
		t.Error("positive savings reported as overspent")
	}
	if !SummarizePeriod(dec("30"), dec("0"), dec("20")).IsOverspent() {
		t.Error("negative savings not reported as overspent")
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		period valueobject.Period
		want   string
	}{
		{valueobject.MonthPeriod(2, 2024), "Mar 2024"},
		{valueobject.YearPeriod(2023), "2023"},
		{valueobject.WeekPeriod(time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)), "Week of Mar 10 2024"},
	}
	for _, tt := range tests {
		if got := PeriodLabel(tt.period); got != tt.want {
			t.Errorf("PeriodLabel() = %q, want %q", got, tt.want)
		}
	}
}
