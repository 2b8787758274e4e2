package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetYearlyOverviewInput represents the input for the yearly chart.
type GetYearlyOverviewInput struct {
	UserID uuid.UUID
	Year   int
}

// GetYearlyOverviewUseCase builds the twelve-month overview of a year.
type GetYearlyOverviewUseCase struct {
	loader *SnapshotLoader
	now    func() time.Time
}

// NewGetYearlyOverviewUseCase creates a new GetYearlyOverviewUseCase instance.
// A nil clock defaults to time.Now.
func NewGetYearlyOverviewUseCase(loader *SnapshotLoader, now func() time.Time) *GetYearlyOverviewUseCase {
	if now == nil {
		now = time.Now
	}
	return &GetYearlyOverviewUseCase{loader: loader, now: now}
}

// Execute loads the user's snapshot and buckets the requested year.
func (uc *GetYearlyOverviewUseCase) Execute(ctx context.Context, input GetYearlyOverviewInput) (*YearlyOverview, error) {
	if err := valueobject.YearPeriod(input.Year).Validate(); err != nil {
		return nil, domainerror.NewDashboardError(domainerror.ErrCodeInvalidPeriod, err.Error(), domainerror.ErrInvalidPeriod)
	}

	snapshot, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	overview := BucketizeYear(snapshot.Expenses, input.Year, snapshot.Settings.EffectiveFixedTotal(), uc.now())
	return &overview, nil
}
