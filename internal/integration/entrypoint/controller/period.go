package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// parsePeriodQuery reads one of the period forms from the query string:
// month+year (month 0-11), year alone, or weekOf=YYYY-MM-DD. It returns nil
// when no period parameter is present.
func parsePeriodQuery(ctx *gin.Context) (*valueobject.Period, error) {
	monthStr, hasMonth := ctx.GetQuery("month")
	yearStr, hasYear := ctx.GetQuery("year")
	weekStr, hasWeek := ctx.GetQuery("weekOf")

	switch {
	case hasWeek && (hasMonth || hasYear):
		return nil, ambiguousPeriod()
	case hasWeek:
		date, err := time.Parse(entity.OccurredOnLayout, weekStr)
		if err != nil {
			return nil, domainerror.NewDashboardError(domainerror.ErrCodeInvalidDateFormat, domainerror.ErrInvalidDateFormat.Error(), domainerror.ErrInvalidDateFormat)
		}
		period := valueobject.WeekPeriod(date)
		return &period, nil
	case hasMonth && !hasYear:
		return nil, ambiguousPeriod()
	case hasMonth:
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			return nil, invalidPeriod("month must be a number between 0 and 11")
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, invalidPeriod("year must be a number")
		}
		period := valueobject.MonthPeriod(month, year)
		return &period, nil
	case hasYear:
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, invalidPeriod("year must be a number")
		}
		period := valueobject.YearPeriod(year)
		return &period, nil
	default:
		return nil, nil
	}
}

func ambiguousPeriod() error {
	return domainerror.NewDashboardError(domainerror.ErrCodeAmbiguousPeriod, domainerror.ErrAmbiguousPeriod.Error(), domainerror.ErrAmbiguousPeriod)
}

func invalidPeriod(message string) error {
	return domainerror.NewDashboardError(domainerror.ErrCodeInvalidPeriod, message, domainerror.ErrInvalidPeriod)
}
