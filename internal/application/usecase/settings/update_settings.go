package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateSettingsInput represents a partial settings update. Nil fields are
// left unchanged.
type UpdateSettingsInput struct {
	UserID        uuid.UUID
	MonthlyIncome *decimal.Decimal
}

// UpdateSettingsUseCase merges scalar settings fields into the stored record.
type UpdateSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
	publisher    adapter.EventPublisher
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(settingsRepo adapter.SettingsRepository, publisher adapter.EventPublisher) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		settingsRepo: settingsRepo,
		publisher:    publisher,
	}
}

// Execute validates and applies the patch, returning the stored result.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*entity.UserSettings, error) {
	patch := adapter.SettingsPatch{MonthlyIncome: input.MonthlyIncome}
	if patch.IsEmpty() {
		return nil, domainerror.NewSettingsError(
			domainerror.ErrCodeEmptySettingsPatch,
			"at least one field must be provided",
			domainerror.ErrEmptySettingsPatch,
		)
	}

	if input.MonthlyIncome != nil && input.MonthlyIncome.IsNegative() {
		return nil, domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidMonthlyIncome,
			"monthly income must be zero or positive",
			domainerror.ErrInvalidMonthlyIncome,
		)
	}

	if err := uc.settingsRepo.Merge(ctx, input.UserID, patch); err != nil {
		return nil, domainerror.NewSettingsPersistError(fmt.Errorf("failed to merge settings: %w", err))
	}

	slog.Info("Settings updated", "userID", input.UserID)
	publishSettingsUpdated(ctx, uc.publisher, input.UserID, "income")

	return loadOrCreate(ctx, uc.settingsRepo, input.UserID)
}

func publishSettingsUpdated(ctx context.Context, publisher adapter.EventPublisher, userID uuid.UUID, field string) {
	if publisher == nil {
		return
	}
	event := adapter.NewDomainEvent(adapter.EventSettingsUpdated, userID, userID, map[string]any{"field": field})
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event", "type", event.Type, "userID", userID, "error", err)
	}
}
