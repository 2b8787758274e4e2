// Package settings contains the user settings use cases, including the
// fixed expense item manager.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetSettingsInput represents the input for reading settings.
type GetSettingsInput struct {
	UserID uuid.UUID
}

// GetSettingsUseCase returns a user's settings, creating the default record
// on first access.
type GetSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingsRepo adapter.SettingsRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{settingsRepo: settingsRepo}
}

// Execute loads the settings of the user.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*entity.UserSettings, error) {
	return loadOrCreate(ctx, uc.settingsRepo, input.UserID)
}

// loadOrCreate reads the settings record, inserting the defaults when absent.
// A failed insert still returns the defaults; the next write will create the row.
func loadOrCreate(ctx context.Context, repo adapter.SettingsRepository, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := repo.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domainerror.ErrSettingsNotFound) {
		return nil, domainerror.NewSettingsFetchError(fmt.Errorf("failed to get settings: %w", err))
	}

	settings = entity.NewUserSettings(userID)
	if err := repo.Merge(ctx, userID, adapter.SettingsPatch{}); err != nil {
		slog.Warn("Failed to create default settings", "userID", userID, "error", err)
	}
	return settings, nil
}
