package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CachedExpenseRepository serves ListByUser from the snapshot cache and
// invalidates the snapshot after every write. Cache failures are logged and
// the call falls through to the store.
type CachedExpenseRepository struct {
	adapter.ExpenseRepository
	cache        adapter.ExpenseSnapshotCache
	retryBackoff time.Duration
}

const (
	invalidateAttempts       = 3
	defaultInvalidateBackoff = 50 * time.Millisecond
)

// NewCachedExpenseRepository wraps repo with the snapshot cache.
func NewCachedExpenseRepository(repo adapter.ExpenseRepository, cache adapter.ExpenseSnapshotCache) *CachedExpenseRepository {
	return &CachedExpenseRepository{ExpenseRepository: repo, cache: cache, retryBackoff: defaultInvalidateBackoff}
}

func (r *CachedExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	expenses, generation, ok, err := r.cache.Get(ctx, userID)
	if err != nil {
		// Without a generation the snapshot cannot be written safely.
		slog.Warn("Expense snapshot read failed", "userID", userID, "error", err)
		return r.ExpenseRepository.ListByUser(ctx, userID)
	}
	if ok {
		return expenses, nil
	}

	expenses, err = r.ExpenseRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = r.cache.Set(ctx, userID, generation, expenses)
	switch {
	case errors.Is(err, adapter.ErrSnapshotStale):
		slog.Debug("Expense snapshot skipped, a write happened during the read", "userID", userID)
	case err != nil:
		slog.Warn("Expense snapshot write failed", "userID", userID, "error", err)
	}
	return expenses, nil
}

func (r *CachedExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	if err := r.ExpenseRepository.Create(ctx, expense); err != nil {
		return err
	}
	r.invalidate(ctx, expense.UserID)
	return nil
}

func (r *CachedExpenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := r.ExpenseRepository.Delete(ctx, id, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *CachedExpenseRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	if err := r.ExpenseRepository.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

// invalidate retries a failed invalidation a few times before giving up.
// A snapshot that survives every attempt lives at most one TTL.
func (r *CachedExpenseRepository) invalidate(ctx context.Context, userID uuid.UUID) {
	var err error
	for attempt := 1; attempt <= invalidateAttempts; attempt++ {
		if err = r.cache.Invalidate(ctx, userID); err == nil {
			return
		}
		if attempt == invalidateAttempts {
			break
		}
		select {
		case <-ctx.Done():
			slog.Error("Expense snapshot invalidation abandoned", "userID", userID, "error", err, "attempts", attempt)
			return
		case <-time.After(r.retryBackoff * time.Duration(attempt)):
		}
	}
	slog.Error("Expense snapshot invalidation failed", "userID", userID, "error", err, "attempts", invalidateAttempts)
}

var _ adapter.ExpenseRepository = (*CachedExpenseRepository)(nil)
