// Package report contains the use cases that email spending reports.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// SendMonthlySummaryInput represents the input for the monthly summary report.
type SendMonthlySummaryInput struct {
	UserID    uuid.UUID
	Selection valueobject.DateSelection
}

// SendMonthlySummaryOutput reports what was queued.
type SendMonthlySummaryOutput struct {
	Recipient   string
	PeriodLabel string
}

// SendMonthlySummaryUseCase queues an email with a month's summary and
// category breakdown.
type SendMonthlySummaryUseCase struct {
	summary      *dashboard.GetPeriodSummaryUseCase
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
}

// NewSendMonthlySummaryUseCase creates a new SendMonthlySummaryUseCase instance.
func NewSendMonthlySummaryUseCase(
	summary *dashboard.GetPeriodSummaryUseCase,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *SendMonthlySummaryUseCase {
	return &SendMonthlySummaryUseCase{
		summary:      summary,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Execute computes the summary and queues the email.
func (uc *SendMonthlySummaryUseCase) Execute(ctx context.Context, input SendMonthlySummaryInput) (*SendMonthlySummaryOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	result, err := uc.summary.Execute(ctx, dashboard.GetPeriodSummaryInput{
		UserID:    input.UserID,
		Selection: input.Selection,
	})
	if err != nil {
		return nil, err
	}

	categories := make([]adapter.SummaryCategoryLine, 0, len(result.Breakdown.Categories))
	for _, c := range result.Breakdown.Categories {
		categories = append(categories, adapter.SummaryCategoryLine{
			Category: string(c.Category),
			Amount:   money(c.TotalAmount),
			Percent:  c.Percent.StringFixed(1),
		})
	}

	summary := result.Summary
	err = uc.emailService.QueueMonthlySummaryEmail(ctx, adapter.QueueMonthlySummaryInput{
		UserEmail:      user.Email,
		UserName:       user.Name,
		PeriodLabel:    result.PeriodLabel,
		Currency:       user.Currency,
		Income:         money(summary.Income),
		VariableTotal:  money(summary.VariableTotal),
		FixedTotal:     money(summary.FixedTotal),
		CombinedTotal:  money(summary.CombinedTotal),
		Savings:        money(summary.Savings),
		SavingsPercent: summary.SavingsPercent.StringFixed(1),
		Overspent:      summary.IsOverspent(),
		Categories:     categories,
	})
	if err != nil {
		return nil, domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to queue monthly summary", err)
	}

	slog.Info("Monthly summary queued", "userID", input.UserID, "period", result.PeriodLabel)
	return &SendMonthlySummaryOutput{Recipient: user.Email, PeriodLabel: result.PeriodLabel}, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
