package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Snapshot is everything the aggregation functions need for one user,
// fetched once per request.
type Snapshot struct {
	Expenses []*entity.Expense
	Settings *entity.UserSettings
}

// SnapshotLoader fetches a user's expenses and settings in parallel.
type SnapshotLoader struct {
	expenseRepo  adapter.ExpenseRepository
	settingsRepo adapter.SettingsRepository
}

// NewSnapshotLoader creates a new SnapshotLoader instance.
func NewSnapshotLoader(expenseRepo adapter.ExpenseRepository, settingsRepo adapter.SettingsRepository) *SnapshotLoader {
	return &SnapshotLoader{
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
	}
}

// Load returns the user's snapshot. A user without a settings record gets
// the default settings. Any store failure is reported as a fetch error.
func (l *SnapshotLoader) Load(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	snapshot := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		expenses, err := l.expenseRepo.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		snapshot.Expenses = expenses
		return nil
	})

	g.Go(func() error {
		settings, err := l.settingsRepo.Get(gctx, userID)
		if errors.Is(err, domainerror.ErrSettingsNotFound) {
			snapshot.Settings = entity.NewUserSettings(userID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		snapshot.Settings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, domainerror.NewDashboardFetchError(err)
	}
	return snapshot, nil
}

// LoadExpenses fetches only the expense list.
func (l *SnapshotLoader) LoadExpenses(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	expenses, err := l.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domainerror.NewDashboardFetchError(fmt.Errorf("failed to list expenses: %w", err))
	}
	return expenses, nil
}
