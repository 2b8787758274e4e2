// Package cache keeps per-user expense snapshots in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// DefaultSnapshotTTL is used when no TTL is configured.
const DefaultSnapshotTTL = 5 * time.Minute

const (
	snapshotKeyPrefix   = "expenses:snapshot:"
	generationKeyPrefix = "expenses:generation:"
)

type snapshotEnvelope struct {
	Generation int64           `json:"generation"`
	Expenses   []expenseRecord `json:"expenses"`
}

type expenseRecord struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OccurredOn  string          `json:"occurredOn"`
	Source      string          `json:"source"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type expenseSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewExpenseSnapshotCache creates a redis backed snapshot cache.
func NewExpenseSnapshotCache(client *redis.Client, ttl time.Duration) adapter.ExpenseSnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &expenseSnapshotCache{client: client, ttl: ttl}
}

// SnapshotKey returns the redis key holding a user's snapshot.
func SnapshotKey(userID uuid.UUID) string {
	return snapshotKeyPrefix + userID.String()
}

// GenerationKey returns the redis key holding a user's snapshot generation.
// It has no TTL.
func GenerationKey(userID uuid.UUID) string {
	return generationKeyPrefix + userID.String()
}

// Get reads the generation and the snapshot in one MGET. A snapshot written
// under an older generation counts as a miss.
func (c *expenseSnapshotCache) Get(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, int64, bool, error) {
	values, err := c.client.MGet(ctx, GenerationKey(userID), SnapshotKey(userID)).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to read expense snapshot: %w", err)
	}

	generation, err := parseGeneration(values[0])
	if err != nil {
		return nil, 0, false, err
	}

	raw, ok := values[1].(string)
	if !ok {
		return nil, generation, false, nil
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, generation, false, fmt.Errorf("failed to decode expense snapshot: %w", err)
	}
	if envelope.Generation != generation {
		return nil, generation, false, nil
	}

	expenses := make([]*entity.Expense, 0, len(envelope.Expenses))
	for _, r := range envelope.Expenses {
		expenses = append(expenses, &entity.Expense{
			ID:          r.ID,
			UserID:      r.UserID,
			Amount:      r.Amount,
			Category:    entity.ExpenseCategory(r.Category),
			Description: r.Description,
			OccurredOn:  r.OccurredOn,
			Source:      entity.ExpenseSource(r.Source),
			CreatedAt:   r.CreatedAt,
		})
	}
	return expenses, generation, true, nil
}

// Set writes the snapshot under WATCH on the generation key, so it fails
// with adapter.ErrSnapshotStale if Invalidate ran after generation was read.
func (c *expenseSnapshotCache) Set(ctx context.Context, userID uuid.UUID, generation int64, expenses []*entity.Expense) error {
	envelope := snapshotEnvelope{Generation: generation, Expenses: make([]expenseRecord, 0, len(expenses))}
	for _, e := range expenses {
		envelope.Expenses = append(envelope.Expenses, expenseRecord{
			ID:          e.ID,
			UserID:      e.UserID,
			Amount:      e.Amount,
			Category:    string(e.Category),
			Description: e.Description,
			OccurredOn:  e.OccurredOn,
			Source:      string(e.Source),
			CreatedAt:   e.CreatedAt,
		})
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode expense snapshot: %w", err)
	}

	genKey := GenerationKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return adapter.ErrSnapshotStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SnapshotKey(userID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrSnapshotStale), errors.Is(err, redis.TxFailedErr):
		return adapter.ErrSnapshotStale
	default:
		return fmt.Errorf("failed to write expense snapshot: %w", err)
	}
}

// Invalidate advances the generation and drops the snapshot in one MULTI.
func (c *expenseSnapshotCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(userID))
		pipe.Del(ctx, SnapshotKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate expense snapshot: %w", err)
	}
	return nil
}

func parseGeneration(value any) (int64, error) {
	if value == nil {
		return 0, nil
	}
	raw, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected generation value %T", value)
	}
	generation, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse snapshot generation: %w", err)
	}
	return generation, nil
}
