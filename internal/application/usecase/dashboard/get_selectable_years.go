package dashboard

import (
	"time"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetSelectableYearsUseCase lists the years offered by the yearly chart.
type GetSelectableYearsUseCase struct {
	count int
	now   func() time.Time
}

// NewGetSelectableYearsUseCase creates a new GetSelectableYearsUseCase instance.
func NewGetSelectableYearsUseCase(count int, now func() time.Time) *GetSelectableYearsUseCase {
	if count <= 0 {
		count = 5
	}
	if now == nil {
		now = time.Now
	}
	return &GetSelectableYearsUseCase{count: count, now: now}
}

// Execute returns the current year and the previous ones, newest first.
func (uc *GetSelectableYearsUseCase) Execute() []int {
	return valueobject.SelectableYears(uc.now(), uc.count)
}
