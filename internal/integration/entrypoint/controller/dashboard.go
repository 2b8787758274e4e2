package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase
	summaryUseCase   *dashboard.GetPeriodSummaryUseCase
	yearlyUseCase    *dashboard.GetYearlyOverviewUseCase
	yearsUseCase     *dashboard.GetSelectableYearsUseCase
	now              func() time.Time
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	summaryUseCase *dashboard.GetPeriodSummaryUseCase,
	yearlyUseCase *dashboard.GetYearlyOverviewUseCase,
	yearsUseCase *dashboard.GetSelectableYearsUseCase,
	now func() time.Time,
) *DashboardController {
	if now == nil {
		now = time.Now
	}
	return &DashboardController{
		breakdownUseCase: breakdownUseCase,
		summaryUseCase:   summaryUseCase,
		yearlyUseCase:    yearlyUseCase,
		yearsUseCase:     yearsUseCase,
		now:              now,
	}
}

// GetCategoryBreakdown handles GET /dashboard/categories requests. Without
// a period the current month is used.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	period, err := parsePeriodQuery(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if period == nil {
		current := valueobject.CurrentSelection(c.now()).Period()
		period = &current
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{
		UserID: userID,
		Period: *period,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// GetPeriodSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetPeriodSummary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	selection, err := c.selection(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetPeriodSummaryInput{
		UserID:    userID,
		Selection: selection,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(output))
}

// GetYearlyOverview handles GET /dashboard/yearly requests.
func (c *DashboardController) GetYearlyOverview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	year := c.now().Year()
	if yearStr, has := ctx.GetQuery("year"); has {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			respondError(ctx, invalidPeriod("year must be a number"))
			return
		}
		year = parsed
	}

	overview, err := c.yearlyUseCase.Execute(ctx.Request.Context(), dashboard.GetYearlyOverviewInput{
		UserID: userID,
		Year:   year,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToYearlyOverviewResponse(overview))
}

// GetSelectableYears handles GET /dashboard/years requests.
func (c *DashboardController) GetSelectableYears(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SelectableYearsResponse{Years: c.yearsUseCase.Execute()})
}

// selection reads month and year, each defaulting to the current one.
func (c *DashboardController) selection(ctx *gin.Context) (valueobject.DateSelection, error) {
	selection := valueobject.CurrentSelection(c.now())
	if monthStr, has := ctx.GetQuery("month"); has {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			return selection, invalidPeriod("month must be a number between 0 and 11")
		}
		selection.Month = month
	}
	if yearStr, has := ctx.GetQuery("year"); has {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return selection, invalidPeriod("year must be a number")
		}
		selection.Year = year
	}
	return selection, nil
}
