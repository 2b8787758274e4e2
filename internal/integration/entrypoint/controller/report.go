package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ReportController handles emailed report endpoints.
type ReportController struct {
	monthlySummaryUseCase *report.SendMonthlySummaryUseCase
	now                   func() time.Time
}

// NewReportController creates a new report controller instance.
func NewReportController(monthlySummaryUseCase *report.SendMonthlySummaryUseCase, now func() time.Time) *ReportController {
	if now == nil {
		now = time.Now
	}
	return &ReportController{monthlySummaryUseCase: monthlySummaryUseCase, now: now}
}

// SendMonthlySummary handles POST /reports/monthly-summary requests. A
// missing month or year defaults to the current one.
func (c *ReportController) SendMonthlySummary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.MonthlySummaryRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidBody(ctx, string(domainerror.ErrCodeInvalidPeriod), err)
			return
		}
	}

	selection := valueobject.CurrentSelection(c.now())
	if req.Month != nil {
		selection.Month = *req.Month
	}
	if req.Year != nil {
		selection.Year = *req.Year
	}

	output, err := c.monthlySummaryUseCase.Execute(ctx.Request.Context(), report.SendMonthlySummaryInput{
		UserID:    userID,
		Selection: selection,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.MonthlySummaryResponse{
		Message:     "Monthly summary queued",
		Recipient:   output.Recipient,
		PeriodLabel: output.PeriodLabel,
	})
}
