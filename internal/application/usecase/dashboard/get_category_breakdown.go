package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	UserID uuid.UUID
	Period valueobject.Period
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	PeriodLabel string
	StartDate   time.Time
	EndDate     time.Time
	Breakdown   CategoryBreakdown
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	loader *SnapshotLoader
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(loader *SnapshotLoader) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{loader: loader}
}

// Execute retrieves spending breakdown by category for the given period.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	if err := input.Period.Validate(); err != nil {
		return nil, domainerror.NewDashboardError(domainerror.ErrCodeInvalidPeriod, err.Error(), domainerror.ErrInvalidPeriod)
	}

	expenses, err := uc.loader.LoadExpenses(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	start, end := input.Period.Bounds()
	return &GetCategoryBreakdownOutput{
		PeriodLabel: PeriodLabel(input.Period),
		StartDate:   start,
		EndDate:     end,
		Breakdown:   AggregateByCategory(FilterByPeriod(expenses, input.Period)),
	}, nil
}
