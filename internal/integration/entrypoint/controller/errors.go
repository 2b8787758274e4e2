// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// respondError writes the error body for a use case failure. Store failures
// answer 503 so clients keep their last good data.
func respondError(ctx *gin.Context, err error) {
	status, code, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
		_ = ctx.Error(err)
	}
	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

func classifyError(err error) (int, string, string) {
	var (
		authErr      *domainerror.AuthError
		expenseErr   *domainerror.ExpenseError
		settingsErr  *domainerror.SettingsError
		dashboardErr *domainerror.DashboardError
		noteErr      *domainerror.NoteError
		reminderErr  *domainerror.ReminderError
		emailErr     *domainerror.EmailError
	)

	storeStatus := func(fallback int) int {
		if domainerror.IsFetchError(err) || domainerror.IsPersistError(err) {
			return http.StatusServiceUnavailable
		}
		return fallback
	}

	switch {
	case errors.As(err, &authErr):
		return authStatus(authErr.Code), string(authErr.Code), authErr.Message
	case errors.As(err, &expenseErr):
		return storeStatus(expenseStatus(expenseErr.Code)), string(expenseErr.Code), expenseErr.Message
	case errors.As(err, &settingsErr):
		return storeStatus(settingsStatus(settingsErr.Code)), string(settingsErr.Code), settingsErr.Message
	case errors.As(err, &dashboardErr):
		return storeStatus(http.StatusBadRequest), string(dashboardErr.Code), dashboardErr.Message
	case errors.As(err, &noteErr):
		status := http.StatusBadRequest
		if noteErr.Code == domainerror.ErrCodeNoteNotFound {
			status = http.StatusNotFound
		}
		return storeStatus(status), string(noteErr.Code), noteErr.Message
	case errors.As(err, &reminderErr):
		return storeStatus(http.StatusBadRequest), string(reminderErr.Code), reminderErr.Message
	case errors.As(err, &emailErr):
		return http.StatusServiceUnavailable, string(emailErr.Code), emailErr.Message
	default:
		return http.StatusInternalServerError, "", "An internal error occurred"
	}
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidResetToken,
		domainerror.ErrCodeInvalidConfirmation:
		return http.StatusBadRequest
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func expenseStatus(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedExpense:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func settingsStatus(code domainerror.SettingsErrorCode) int {
	if code == domainerror.ErrCodeFixedExpenseNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return userID, ok
}

// pathID parses a UUID path parameter or writes a 400 with code.
func pathID(ctx *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name + " format",
			Code:  code,
		})
		return uuid.Nil, false
	}
	return id, true
}

func invalidBody(ctx *gin.Context, code string, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    code,
		Details: map[string]any{"reason": err.Error()},
	})
}
