package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailQueueRepository defines the interface for email queue persistence operations.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns jobs whose schedule has passed, oldest first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByRecipient returns every job sent to email, newest first.
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)
}
