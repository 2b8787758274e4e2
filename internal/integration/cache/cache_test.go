package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

type countingRepo struct {
	expenses []*entity.Expense
	lists    int
	// afterList runs once, after the store read and before ListByUser returns.
	afterList func()
}

func (r *countingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	r.lists++
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return out, nil
}

func (r *countingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	return nil, nil
}

func (r *countingRepo) Create(ctx context.Context, expense *entity.Expense) error {
	r.expenses = append(r.expenses, expense)
	return nil
}

func (r *countingRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	for i, e := range r.expenses {
		if e.ID == id && e.UserID == userID {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *countingRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	r.expenses = nil
	return nil
}

func TestExpenseSnapshotCache_RoundTrip(t *testing.T) {
	server, client := newTestRedis(t)
	c := NewExpenseSnapshotCache(client, time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	_, generation, ok, err := c.Get(ctx, userID)
	if err != nil || ok || generation != 0 {
		t.Fatalf("Get() on empty cache = gen %d, ok %v, err %v; want gen 0 miss", generation, ok, err)
	}

	expense := entity.NewExpense(userID, decimal.RequireFromString("12.34"), entity.CategoryFoodDining, "lunch",
		time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), entity.ExpenseSourceManual)
	if err := c.Set(ctx, userID, generation, []*entity.Expense{expense}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if ttl := server.TTL(SnapshotKey(userID)); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	got, _, ok, err := c.Get(ctx, userID)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v; want hit", ok, err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !got[0].Amount.Equal(expense.Amount) || got[0].OccurredOn != "2024-03-05" || got[0].Category != entity.CategoryFoodDining {
		t.Errorf("got %+v, want %+v", got[0], expense)
	}

	if err := c.Invalidate(ctx, userID); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if server.Exists(SnapshotKey(userID)) {
		t.Errorf("snapshot still present after Invalidate")
	}
	_, generation, ok, err = c.Get(ctx, userID)
	if err != nil || ok || generation != 1 {
		t.Errorf("Get() after Invalidate = gen %d, ok %v, err %v; want gen 1 miss", generation, ok, err)
	}
}

func TestExpenseSnapshotCache_SetRejectsOlderGeneration(t *testing.T) {
	server, client := newTestRedis(t)
	c := NewExpenseSnapshotCache(client, time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	_, generation, _, err := c.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := c.Invalidate(ctx, userID); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	err = c.Set(ctx, userID, generation, nil)
	if !errors.Is(err, adapter.ErrSnapshotStale) {
		t.Fatalf("Set() error = %v, want ErrSnapshotStale", err)
	}
	if server.Exists(SnapshotKey(userID)) {
		t.Errorf("stale snapshot was written")
	}
}

func TestExpenseSnapshotCache_IgnoresSnapshotLeftByFailedDelete(t *testing.T) {
	server, client := newTestRedis(t)
	c := NewExpenseSnapshotCache(client, time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	if err := c.Set(ctx, userID, 0, nil); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// The generation moved but the snapshot key is still there.
	if _, err := server.Incr(GenerationKey(userID), 1); err != nil {
		t.Fatalf("Incr() error = %v", err)
	}

	_, generation, ok, err := c.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Errorf("Get() served a snapshot from generation 0 at generation %d", generation)
	}
}

func TestCachedExpenseRepository(t *testing.T) {
	_, client := newTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()
	inner := &countingRepo{}
	repo := NewCachedExpenseRepository(inner, NewExpenseSnapshotCache(client, time.Minute))

	newExpense := func(amount string) *entity.Expense {
		return entity.NewExpense(userID, decimal.RequireFromString(amount), entity.CategoryFoodDining, "",
			time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), entity.ExpenseSourceManual)
	}

	if err := repo.Create(ctx, newExpense("10")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := repo.ListByUser(ctx, userID)
		if err != nil {
			t.Fatalf("ListByUser() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
	}
	if inner.lists != 1 {
		t.Errorf("store lists = %d, want 1 (later reads served from cache)", inner.lists)
	}

	second := newExpense("20")
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, _ := repo.ListByUser(ctx, userID)
	if len(got) != 2 {
		t.Errorf("after create len = %d, want 2", len(got))
	}

	if err := repo.Delete(ctx, second.ID, userID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, _ = repo.ListByUser(ctx, userID)
	if len(got) != 1 {
		t.Errorf("after delete len = %d, want 1", len(got))
	}

	if err := repo.DeleteAllByUser(ctx, userID); err != nil {
		t.Fatalf("DeleteAllByUser() error = %v", err)
	}
	got, _ = repo.ListByUser(ctx, userID)
	if len(got) != 0 {
		t.Errorf("after delete all len = %d, want 0", len(got))
	}
}

func TestCachedExpenseRepository_FallsThroughWhenRedisIsDown(t *testing.T) {
	server, client := newTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()
	inner := &countingRepo{}
	repo := NewCachedExpenseRepository(inner, NewExpenseSnapshotCache(client, time.Minute))

	server.Close()

	if err := repo.Create(ctx, entity.NewExpense(userID, decimal.NewFromInt(5), entity.CategoryOther, "",
		time.Now(), entity.ExpenseSourceManual)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestCachedExpenseRepository_WriteDuringReadIsVisibleOnNextFetch(t *testing.T) {
	server, client := newTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()
	inner := &countingRepo{}
	repo := NewCachedExpenseRepository(inner, NewExpenseSnapshotCache(client, time.Minute))

	created := entity.NewExpense(userID, decimal.NewFromInt(42), entity.CategoryShopping, "",
		time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), entity.ExpenseSourceManual)
	inner.afterList = func() {
		if err := repo.Create(ctx, created); err != nil {
			t.Errorf("Create() error = %v", err)
		}
	}

	first, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(first) != 0 {
		t.Fatalf("first read len = %d, want 0 (read before the create)", len(first))
	}
	if server.Exists(SnapshotKey(userID)) {
		t.Errorf("the read that raced the create wrote its snapshot")
	}

	next, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(next) != 1 {
		t.Errorf("next read len = %d, want 1", len(next))
	}

	cached, _ := repo.ListByUser(ctx, userID)
	if len(cached) != 1 || inner.lists != 2 {
		t.Errorf("third read len = %d, store lists = %d; want 1 served from cache after 2 store reads", len(cached), inner.lists)
	}
}

type flakyCache struct {
	failures    int
	invalidates int
}

func (c *flakyCache) Get(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, int64, bool, error) {
	return nil, 0, false, nil
}

func (c *flakyCache) Set(ctx context.Context, userID uuid.UUID, generation int64, expenses []*entity.Expense) error {
	return nil
}

func (c *flakyCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	c.invalidates++
	if c.invalidates <= c.failures {
		return errors.New("connection reset")
	}
	return nil
}

func TestCachedExpenseRepository_RetriesInvalidation(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		want     int
	}{
		{name: "first attempt succeeds", failures: 0, want: 1},
		{name: "succeeds on retry", failures: 2, want: 3},
		{name: "gives up after the last attempt", failures: 10, want: invalidateAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flaky := &flakyCache{failures: tt.failures}
			repo := NewCachedExpenseRepository(&countingRepo{}, flaky)
			repo.retryBackoff = time.Millisecond

			expense := entity.NewExpense(uuid.New(), decimal.NewFromInt(1), entity.CategoryOther, "", time.Now(), entity.ExpenseSourceManual)
			if err := repo.Create(context.Background(), expense); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if flaky.invalidates != tt.want {
				t.Errorf("invalidate attempts = %d, want %d", flaky.invalidates, tt.want)
			}
		})
	}
}
