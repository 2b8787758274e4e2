package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

type fakeExpenseRepo struct {
	expenses []*entity.Expense
	err      error
}

func (f *fakeExpenseRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	return f.expenses, f.err
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	return nil, domainerror.ErrExpenseNotFound
}

func (f *fakeExpenseRepo) Create(ctx context.Context, e *entity.Expense) error { return nil }

func (f *fakeExpenseRepo) Delete(ctx context.Context, id, userID uuid.UUID) error { return nil }

func (f *fakeExpenseRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error { return nil }

type fakeSettingsRepo struct {
	settings *entity.UserSettings
	err      error
}

func (f *fakeSettingsRepo) Get(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, domainerror.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Merge(ctx context.Context, userID uuid.UUID, patch adapter.SettingsPatch) error {
	return nil
}

func (f *fakeSettingsRepo) SaveFixedExpenses(ctx context.Context, userID uuid.UUID, items []entity.FixedExpenseItem, total decimal.Decimal) error {
	return nil
}

func (f *fakeSettingsRepo) Delete(ctx context.Context, userID uuid.UUID) error { return nil }

func TestGetPeriodSummaryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	settings := entity.NewUserSettings(userID)
	settings.MonthlyIncome = dec("20000")

	tests := []struct {
		name         string
		expenses     []*entity.Expense
		settings     *entity.UserSettings
		wantVariable string
		wantFixed    string
		wantSavings  string
		wantPercent  string
		wantDefault  bool
	}{
		{
			name: "income with default fixed total",
			expenses: []*entity.Expense{
				expense("1000", entity.CategoryFoodDining, "2024-03-01"),
				expense("2000", entity.CategoryShopping, "2024-03-31"),
				expense("9999", entity.CategoryShopping, "2024-04-01"),
			},
			settings:     settings,
			wantVariable: "3000",
			wantFixed:    "5000",
			wantSavings:  "12000",
			wantPercent:  "60",
			wantDefault:  true,
		},
		{
			name:         "missing settings use defaults",
			expenses:     marchExpenses(),
			settings:     nil,
			wantVariable: "650",
			wantFixed:    "5000",
			wantSavings:  "-5650",
			wantPercent:  "0",
			wantDefault:  true,
		},
		{
			name:     "itemized fixed expenses",
			expenses: nil,
			settings: &entity.UserSettings{
				UserID:             userID,
				MonthlyIncome:      dec("3000"),
				FixedExpensesTotal: dec("1500"),
				FixedExpenseItems:  []entity.FixedExpenseItem{{ID: uuid.New(), Name: "Rent", Amount: dec("1500"), Category: entity.CategoryRentMortgage}},
			},
			wantVariable: "0",
			wantFixed:    "1500",
			wantSavings:  "1500",
			wantPercent:  "50",
			wantDefault:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewSnapshotLoader(&fakeExpenseRepo{expenses: tt.expenses}, &fakeSettingsRepo{settings: tt.settings})
			uc := NewGetPeriodSummaryUseCase(loader)

			out, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
				UserID:    userID,
				Selection: valueobject.DateSelection{Month: 2, Year: 2024},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.Summary.VariableTotal.Equal(dec(tt.wantVariable)) {
				t.Errorf("variable = %s, want %s", out.Summary.VariableTotal, tt.wantVariable)
			}
			if !out.Summary.FixedTotal.Equal(dec(tt.wantFixed)) {
				t.Errorf("fixed = %s, want %s", out.Summary.FixedTotal, tt.wantFixed)
			}
			if !out.Summary.Savings.Equal(dec(tt.wantSavings)) {
				t.Errorf("savings = %s, want %s", out.Summary.Savings, tt.wantSavings)
			}
			if !out.Summary.SavingsPercent.Equal(dec(tt.wantPercent)) {
				t.Errorf("percent = %s, want %s", out.Summary.SavingsPercent, tt.wantPercent)
			}
			if out.FixedIsDefault != tt.wantDefault {
				t.Errorf("FixedIsDefault = %v, want %v", out.FixedIsDefault, tt.wantDefault)
			}
			if out.PeriodLabel != "Mar 2024" {
				t.Errorf("label = %q, want Mar 2024", out.PeriodLabel)
			}
		})
	}
}

func TestGetPeriodSummaryUseCase_FetchFailures(t *testing.T) {
	storeErr := errors.New("connection reset")

	tests := []struct {
		name     string
		expenses *fakeExpenseRepo
		settings *fakeSettingsRepo
	}{
		{"expense store down", &fakeExpenseRepo{err: storeErr}, &fakeSettingsRepo{}},
		{"settings store down", &fakeExpenseRepo{}, &fakeSettingsRepo{err: storeErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetPeriodSummaryUseCase(NewSnapshotLoader(tt.expenses, tt.settings))
			_, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
				UserID:    uuid.New(),
				Selection: valueobject.DateSelection{Month: 0, Year: 2024},
			})
			if !domainerror.IsFetchError(err) {
				t.Fatalf("expected fetch error, got %v", err)
			}
			var dashErr *domainerror.DashboardError
			if !errors.As(err, &dashErr) || dashErr.Code != domainerror.ErrCodeDashboardFetchFailed {
				t.Errorf("expected DSH fetch code, got %v", err)
			}
		})
	}
}

func TestGetPeriodSummaryUseCase_InvalidSelection(t *testing.T) {
	uc := NewGetPeriodSummaryUseCase(NewSnapshotLoader(&fakeExpenseRepo{}, &fakeSettingsRepo{}))
	_, err := uc.Execute(context.Background(), GetPeriodSummaryInput{
		UserID:    uuid.New(),
		Selection: valueobject.DateSelection{Month: 12, Year: 2024},
	})
	if !errors.Is(err, domainerror.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestGetCategoryBreakdownUseCase_Execute(t *testing.T) {
	uc := NewGetCategoryBreakdownUseCase(NewSnapshotLoader(&fakeExpenseRepo{expenses: marchExpenses()}, &fakeSettingsRepo{}))

	out, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{
		UserID: uuid.New(),
		Period: valueobject.MonthPeriod(2, 2024),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Breakdown.GrandTotal.Equal(dec("650")) {
		t.Errorf("grand total = %s, want 650", out.Breakdown.GrandTotal)
	}
	if out.StartDate.Day() != 1 || out.EndDate.Day() != 31 {
		t.Errorf("unexpected bounds %v - %v", out.StartDate, out.EndDate)
	}
}

func TestGetYearlyOverviewUseCase_UsesSettingsFixedTotal(t *testing.T) {
	userID := uuid.New()
	settings := entity.NewUserSettings(userID)
	settings.FixedExpenseItems = []entity.FixedExpenseItem{{ID: uuid.New(), Name: "Gym", Amount: dec("100"), Category: entity.CategorySubscriptions}}
	settings.RecomputeFixedTotal()

	clock := func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	uc := NewGetYearlyOverviewUseCase(NewSnapshotLoader(&fakeExpenseRepo{expenses: marchExpenses()}, &fakeSettingsRepo{settings: settings}), clock)

	out, err := uc.Execute(context.Background(), GetYearlyOverviewInput{UserID: userID, Year: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Buckets[2].CombinedTotal.Equal(dec("750")) {
		t.Errorf("march combined = %s, want 750", out.Buckets[2].CombinedTotal)
	}
	if !out.Buckets[0].FixedTotal.Equal(dec("100")) {
		t.Errorf("january fixed = %s, want 100", out.Buckets[0].FixedTotal)
	}
}

func TestGetSelectableYearsUseCase(t *testing.T) {
	uc := NewGetSelectableYearsUseCase(0, func() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) })
	years := uc.Execute()
	if len(years) != 5 || years[0] != 2024 || years[4] != 2020 {
		t.Errorf("unexpected years %v", years)
	}
}
