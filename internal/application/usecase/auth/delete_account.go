package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteConfirmation is the text a user must type to delete the account.
const DeleteConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// AccountData groups the stores holding data owned by a user.
type AccountData struct {
	Expenses  adapter.ExpenseRepository
	Settings  adapter.SettingsRepository
	Notes     adapter.QuickNoteRepository
	Reminders adapter.WaterReminderRepository
}

// DeleteAccountUseCase removes a user together with everything they own.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	data            AccountData
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	data AccountData,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		data:            data,
	}
}

// Execute verifies the password and deletes the user's data, tokens and
// finally the user row.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if input.Confirmation != DeleteConfirmation {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly 'DELETE'",
			domainerror.ErrInvalidConfirmation,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid password", domainerror.ErrInvalidCredentials)
	}

	steps := []struct {
		name string
		run  func(context.Context, uuid.UUID) error
	}{
		{"expenses", uc.data.Expenses.DeleteAllByUser},
		{"settings", uc.data.Settings.Delete},
		{"notes", uc.data.Notes.DeleteAllByUser},
		{"reminder", uc.data.Reminders.Delete},
		{"tokens", uc.tokenService.InvalidateAllUserTokens},
		{"user", uc.userRepo.Delete},
	}
	for _, step := range steps {
		if err := step.run(ctx, input.UserID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}

	slog.Info("Account deleted", "userID", input.UserID)
	return nil
}
