package adapter

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ErrSnapshotStale is returned by Set when the snapshot was read before the
// latest invalidation.
var ErrSnapshotStale = errors.New("expense snapshot is stale")

// ExpenseSnapshotCache keeps a copy of a user's full expense list so repeated
// dashboard reads skip the store.
//
// Every user has a generation that Invalidate advances. Get reports the
// current generation even on a miss, and Set stores a snapshot only while
// that generation is unchanged, so a list read before a write can never
// replace the invalidation that followed it.
type ExpenseSnapshotCache interface {
	// Get returns the snapshot and the user's generation. A miss returns
	// ok false with the generation still set.
	Get(ctx context.Context, userID uuid.UUID) (expenses []*entity.Expense, generation int64, ok bool, err error)
	// Set stores expenses read at generation. It returns ErrSnapshotStale
	// when the generation moved in the meantime.
	Set(ctx context.Context, userID uuid.UUID, generation int64, expenses []*entity.Expense) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
