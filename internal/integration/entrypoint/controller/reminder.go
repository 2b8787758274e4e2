package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/reminder"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ReminderController handles water reminder endpoints.
type ReminderController struct {
	getUseCase    *reminder.GetReminderUseCase
	updateUseCase *reminder.UpdateReminderUseCase
	statusUseCase *reminder.GetReminderStatusUseCase
}

// NewReminderController creates a new reminder controller instance.
func NewReminderController(
	getUseCase *reminder.GetReminderUseCase,
	updateUseCase *reminder.UpdateReminderUseCase,
	statusUseCase *reminder.GetReminderStatusUseCase,
) *ReminderController {
	return &ReminderController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		statusUseCase: statusUseCase,
	}
}

// Get handles GET /reminders/water requests.
func (c *ReminderController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	result, err := c.getUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderResponse(result))
}

// Update handles PUT /reminders/water requests.
func (c *ReminderController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeInvalidReminderInterval), err)
		return
	}

	result, err := c.updateUseCase.Execute(ctx.Request.Context(), req.ToUpdateReminderInput(userID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderResponse(result))
}

// Status handles GET /reminders/water/status requests.
func (c *ReminderController) Status(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	status, err := c.statusUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReminderStatusResponse(status))
}
