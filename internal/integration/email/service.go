package email

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

// Service queues emails for the worker.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	data, err := encodeTemplateData(templates.PasswordResetData{
		UserName:  input.UserName,
		ResetURL:  input.ResetURL,
		ExpiresIn: input.ExpiresIn,
	})
	if err != nil {
		return err
	}

	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		"Reset your password - Expense Tracker",
		data,
	)
	return s.enqueue(ctx, job)
}

// QueueMonthlySummaryEmail queues a monthly spending summary.
func (s *Service) QueueMonthlySummaryEmail(ctx context.Context, input adapter.QueueMonthlySummaryInput) error {
	categories := make([]templates.CategoryLine, 0, len(input.Categories))
	for _, c := range input.Categories {
		categories = append(categories, templates.CategoryLine{
			Category: c.Category,
			Amount:   c.Amount,
			Percent:  c.Percent,
		})
	}

	data, err := encodeTemplateData(templates.MonthlySummaryData{
		UserName:       input.UserName,
		PeriodLabel:    input.PeriodLabel,
		Currency:       input.Currency,
		Income:         input.Income,
		VariableTotal:  input.VariableTotal,
		FixedTotal:     input.FixedTotal,
		CombinedTotal:  input.CombinedTotal,
		Savings:        input.Savings,
		SavingsPercent: input.SavingsPercent,
		Overspent:      input.Overspent,
		Categories:     categories,
	})
	if err != nil {
		return err
	}

	job := entity.NewEmailJob(
		entity.TemplateMonthlySummary,
		input.UserEmail,
		input.UserName,
		fmt.Sprintf("Your %s summary - Expense Tracker", input.PeriodLabel),
		data,
	)
	return s.enqueue(ctx, job)
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", job.TemplateType),
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
