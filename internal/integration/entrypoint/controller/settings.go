package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/settings"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// SettingsController handles income and fixed expense endpoints.
type SettingsController struct {
	getUseCase    *settings.GetSettingsUseCase
	updateUseCase *settings.UpdateSettingsUseCase
	addFixed      *settings.AddFixedExpenseUseCase
	updateFixed   *settings.UpdateFixedExpenseUseCase
	removeFixed   *settings.RemoveFixedExpenseUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	updateUseCase *settings.UpdateSettingsUseCase,
	addFixed *settings.AddFixedExpenseUseCase,
	updateFixed *settings.UpdateFixedExpenseUseCase,
	removeFixed *settings.RemoveFixedExpenseUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		addFixed:      addFixed,
		updateFixed:   updateFixed,
		removeFixed:   removeFixed,
	}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	result, err := c.getUseCase.Execute(ctx.Request.Context(), settings.GetSettingsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(result))
}

// Update handles PATCH /settings requests.
func (c *SettingsController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeInvalidMonthlyIncome), err)
		return
	}

	result, err := c.updateUseCase.Execute(ctx.Request.Context(), req.ToUpdateSettingsInput(userID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(result))
}

// AddFixedExpense handles POST /settings/fixed-expenses requests.
func (c *SettingsController) AddFixedExpense(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.AddFixedExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeInvalidFixedExpenseAmount), err)
		return
	}

	output, err := c.addFixed.Execute(ctx.Request.Context(), req.ToAddFixedExpenseInput(userID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFixedExpenseResponse(output))
}

// UpdateFixedExpense handles PUT /settings/fixed-expenses/:id requests.
func (c *SettingsController) UpdateFixedExpense(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	itemID, ok := pathID(ctx, "id", string(domainerror.ErrCodeFixedExpenseNotFound))
	if !ok {
		return
	}

	var req dto.UpdateFixedExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeInvalidFixedExpenseAmount), err)
		return
	}

	output, err := c.updateFixed.Execute(ctx.Request.Context(), req.ToUpdateFixedExpenseInput(userID, itemID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFixedExpenseResponse(output))
}

// RemoveFixedExpense handles DELETE /settings/fixed-expenses/:id requests.
func (c *SettingsController) RemoveFixedExpense(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	itemID, ok := pathID(ctx, "id", string(domainerror.ErrCodeFixedExpenseNotFound))
	if !ok {
		return
	}

	output, err := c.removeFixed.Execute(ctx.Request.Context(), settings.RemoveFixedExpenseInput{
		UserID: userID,
		ItemID: itemID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFixedExpenseResponse(output))
}
