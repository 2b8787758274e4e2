package dashboard

import (
	"context"

	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetPeriodSummaryInput represents the input for the monthly summary card.
type GetPeriodSummaryInput struct {
	UserID    uuid.UUID
	Selection valueobject.DateSelection
}

// GetPeriodSummaryOutput represents the monthly summary card.
type GetPeriodSummaryOutput struct {
	Selection   valueobject.DateSelection
	PeriodLabel string
	Summary     PeriodSummary
	Breakdown   CategoryBreakdown
	// FixedIsDefault is true when no fixed items exist and the default total applies.
	FixedIsDefault bool
}

// GetPeriodSummaryUseCase computes savings for one month.
type GetPeriodSummaryUseCase struct {
	loader *SnapshotLoader
}

// NewGetPeriodSummaryUseCase creates a new GetPeriodSummaryUseCase instance.
func NewGetPeriodSummaryUseCase(loader *SnapshotLoader) *GetPeriodSummaryUseCase {
	return &GetPeriodSummaryUseCase{loader: loader}
}

// Execute loads the user's snapshot and summarizes the selected month.
func (uc *GetPeriodSummaryUseCase) Execute(ctx context.Context, input GetPeriodSummaryInput) (*GetPeriodSummaryOutput, error) {
	period := input.Selection.Period()
	if err := period.Validate(); err != nil {
		return nil, domainerror.NewDashboardError(domainerror.ErrCodeInvalidPeriod, err.Error(), domainerror.ErrInvalidPeriod)
	}

	snapshot, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	breakdown := AggregateByCategory(FilterByPeriod(snapshot.Expenses, period))
	summary := SummarizePeriod(
		breakdown.GrandTotal,
		snapshot.Settings.EffectiveFixedTotal(),
		snapshot.Settings.MonthlyIncome,
	)

	return &GetPeriodSummaryOutput{
		Selection:      input.Selection,
		PeriodLabel:    PeriodLabel(period),
		Summary:        summary,
		Breakdown:      breakdown,
		FixedIsDefault: len(snapshot.Settings.FixedExpenseItems) == 0,
	}, nil
}
