package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxFixedExpenseNameLength is the maximum length of a fixed expense name.
const MaxFixedExpenseNameLength = 100

// fixedExpenseManager holds what every fixed expense mutation shares: load
// a private copy, change it, recompute the total, then write items and total
// in one atomic call.
type fixedExpenseManager struct {
	settingsRepo adapter.SettingsRepository
	publisher    adapter.EventPublisher
}

// mutate applies change to a copy of the settings and persists it. The
// loaded record is never modified, so a failed write leaves no trace.
func (m *fixedExpenseManager) mutate(ctx context.Context, userID uuid.UUID, change func(s *entity.UserSettings) error) (*entity.UserSettings, error) {
	current, err := loadOrCreate(ctx, m.settingsRepo, userID)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if err := change(next); err != nil {
		return nil, err
	}
	next.RecomputeFixedTotal()

	if err := m.settingsRepo.SaveFixedExpenses(ctx, userID, next.FixedExpenseItems, next.FixedExpensesTotal); err != nil {
		return nil, domainerror.NewSettingsPersistError(fmt.Errorf("failed to save fixed expenses: %w", err))
	}

	publishSettingsUpdated(ctx, m.publisher, userID, "fixed_expenses")
	return next, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxFixedExpenseNameLength {
		return "", domainerror.NewSettingsError(
			domainerror.ErrCodeEmptyFixedExpenseName,
			fmt.Sprintf("name is required and must not exceed %d characters", MaxFixedExpenseNameLength),
			domainerror.ErrEmptyFixedExpenseName,
		)
	}
	return name, nil
}

func validateAmount(amount *decimal.Decimal) error {
	if amount == nil || amount.IsNegative() {
		return domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidFixedExpenseAmount,
			"amount is required and must be zero or positive",
			domainerror.ErrInvalidFixedExpenseAmount,
		)
	}
	return nil
}

func validateCategory(category entity.ExpenseCategory) error {
	if !category.IsValidFixedCategory() {
		return domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidFixedExpenseCategory,
			fmt.Sprintf("category %q is not a fixed expense category", category),
			domainerror.ErrInvalidFixedExpenseCategory,
		)
	}
	return nil
}

func notFound() error {
	return domainerror.NewSettingsError(
		domainerror.ErrCodeFixedExpenseNotFound,
		"fixed expense not found",
		domainerror.ErrFixedExpenseNotFound,
	)
}

// AddFixedExpenseInput represents a new fixed expense item.
type AddFixedExpenseInput struct {
	UserID   uuid.UUID
	Name     string
	Amount   *decimal.Decimal
	Category entity.ExpenseCategory
}

// FixedExpenseOutput is the settings state after a fixed expense mutation.
type FixedExpenseOutput struct {
	Item     *entity.FixedExpenseItem
	Settings *entity.UserSettings
}

// AddFixedExpenseUseCase appends a fixed expense item.
type AddFixedExpenseUseCase struct {
	manager fixedExpenseManager
}

// NewAddFixedExpenseUseCase creates a new AddFixedExpenseUseCase instance.
func NewAddFixedExpenseUseCase(settingsRepo adapter.SettingsRepository, publisher adapter.EventPublisher) *AddFixedExpenseUseCase {
	return &AddFixedExpenseUseCase{manager: fixedExpenseManager{settingsRepo: settingsRepo, publisher: publisher}}
}

// Execute validates the item, gives it a fresh id and stores it.
func (uc *AddFixedExpenseUseCase) Execute(ctx context.Context, input AddFixedExpenseInput) (*FixedExpenseOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}

	item := entity.FixedExpenseItem{
		ID:       uuid.New(),
		Name:     name,
		Amount:   *input.Amount,
		Category: input.Category,
	}

	settings, err := uc.manager.mutate(ctx, input.UserID, func(s *entity.UserSettings) error {
		s.FixedExpenseItems = append(s.FixedExpenseItems, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Fixed expense added", "userID", input.UserID, "itemID", item.ID, "total", settings.FixedExpensesTotal.String())
	return &FixedExpenseOutput{Item: &item, Settings: settings}, nil
}

// UpdateFixedExpenseInput carries the fields to replace. Nil fields keep
// their current value.
type UpdateFixedExpenseInput struct {
	UserID   uuid.UUID
	ItemID   uuid.UUID
	Name     *string
	Amount   *decimal.Decimal
	Category *entity.ExpenseCategory
}

// UpdateFixedExpenseUseCase edits one fixed expense item.
type UpdateFixedExpenseUseCase struct {
	manager fixedExpenseManager
}

// NewUpdateFixedExpenseUseCase creates a new UpdateFixedExpenseUseCase instance.
func NewUpdateFixedExpenseUseCase(settingsRepo adapter.SettingsRepository, publisher adapter.EventPublisher) *UpdateFixedExpenseUseCase {
	return &UpdateFixedExpenseUseCase{manager: fixedExpenseManager{settingsRepo: settingsRepo, publisher: publisher}}
}

// Execute replaces the given fields of the matching item.
func (uc *UpdateFixedExpenseUseCase) Execute(ctx context.Context, input UpdateFixedExpenseInput) (*FixedExpenseOutput, error) {
	var name string
	if input.Name != nil {
		validated, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = validated
	}
	if input.Amount != nil {
		if err := validateAmount(input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
	}

	var updated entity.FixedExpenseItem
	settings, err := uc.manager.mutate(ctx, input.UserID, func(s *entity.UserSettings) error {
		idx := s.FindFixedExpense(input.ItemID)
		if idx < 0 {
			return notFound()
		}
		item := &s.FixedExpenseItems[idx]
		if input.Name != nil {
			item.Name = name
		}
		if input.Amount != nil {
			item.Amount = *input.Amount
		}
		if input.Category != nil {
			item.Category = *input.Category
		}
		updated = *item
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Fixed expense updated", "userID", input.UserID, "itemID", input.ItemID, "total", settings.FixedExpensesTotal.String())
	return &FixedExpenseOutput{Item: &updated, Settings: settings}, nil
}

// RemoveFixedExpenseInput identifies the item to remove.
type RemoveFixedExpenseInput struct {
	UserID uuid.UUID
	ItemID uuid.UUID
}

// RemoveFixedExpenseUseCase deletes one fixed expense item. Removing the
// last item resets the total to the default rather than zero.
type RemoveFixedExpenseUseCase struct {
	manager fixedExpenseManager
}

// NewRemoveFixedExpenseUseCase creates a new RemoveFixedExpenseUseCase instance.
func NewRemoveFixedExpenseUseCase(settingsRepo adapter.SettingsRepository, publisher adapter.EventPublisher) *RemoveFixedExpenseUseCase {
	return &RemoveFixedExpenseUseCase{manager: fixedExpenseManager{settingsRepo: settingsRepo, publisher: publisher}}
}

// Execute removes the matching item.
func (uc *RemoveFixedExpenseUseCase) Execute(ctx context.Context, input RemoveFixedExpenseInput) (*FixedExpenseOutput, error) {
	settings, err := uc.manager.mutate(ctx, input.UserID, func(s *entity.UserSettings) error {
		idx := s.FindFixedExpense(input.ItemID)
		if idx < 0 {
			return notFound()
		}
		s.FixedExpenseItems = append(s.FixedExpenseItems[:idx], s.FixedExpenseItems[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Fixed expense removed", "userID", input.UserID, "itemID", input.ItemID, "total", settings.FixedExpensesTotal.String())
	return &FixedExpenseOutput{Settings: settings}, nil
}
