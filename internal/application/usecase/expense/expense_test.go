package expense

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

type fakeExpenseRepo struct {
	expenses  map[uuid.UUID]*entity.Expense
	order     []uuid.UUID
	createErr error
	deleteErr error
	listErr   error
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: map[uuid.UUID]*entity.Expense{}}
}

func (f *fakeExpenseRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entity.Expense
	for _, id := range f.order {
		if e, ok := f.expenses[id]; ok && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	return e, nil
}

func (f *fakeExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.expenses[e.ID] = e
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeExpenseRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type fakePublisher struct {
	events []adapter.DomainEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event adapter.DomainEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeParser struct {
	result *adapter.ParsedExpense
	err    error
	calls  int
}

func (f *fakeParser) Parse(ctx context.Context, transcript string) (*adapter.ParsedExpense, error) {
	f.calls++
	return f.result, f.err
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateExpenseUseCase_Validation(t *testing.T) {
	valid := CreateExpenseInput{
		UserID:      uuid.New(),
		Amount:      amount("12.50"),
		Category:    entity.CategoryFoodDining,
		Description: "Lunch",
		OccurredOn:  "2024-03-05",
	}

	tests := []struct {
		name     string
		mutate   func(in *CreateExpenseInput)
		wantCode domainerror.ExpenseErrorCode
	}{
		{"missing amount", func(in *CreateExpenseInput) { in.Amount = nil }, domainerror.ErrCodeInvalidExpenseAmount},
		{"negative amount", func(in *CreateExpenseInput) { in.Amount = amount("-1") }, domainerror.ErrCodeInvalidExpenseAmount},
		{"unknown category", func(in *CreateExpenseInput) { in.Category = "Groceries" }, domainerror.ErrCodeInvalidExpenseCategory},
		{"fixed-only category", func(in *CreateExpenseInput) { in.Category = entity.CategorySubscriptions }, domainerror.ErrCodeInvalidExpenseCategory},
		{"blank description", func(in *CreateExpenseInput) { in.Description = "   " }, domainerror.ErrCodeEmptyExpenseDescription},
		{"long description", func(in *CreateExpenseInput) { in.Description = strings.Repeat("a", 256) }, domainerror.ErrCodeExpenseDescriptionTooLong},
		{"bad date", func(in *CreateExpenseInput) { in.OccurredOn = "05/03/2024" }, domainerror.ErrCodeInvalidOccurredOn},
		{"impossible date", func(in *CreateExpenseInput) { in.OccurredOn = "2023-02-29" }, domainerror.ErrCodeInvalidOccurredOn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeExpenseRepo()
			uc := NewCreateExpenseUseCase(repo, nil)

			input := valid
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)

			var expErr *domainerror.ExpenseError
			if !errors.As(err, &expErr) {
				t.Fatalf("expected ExpenseError, got %v", err)
			}
			if expErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", expErr.Code, tt.wantCode)
			}
			if len(repo.expenses) != 0 {
				t.Error("no expense should be stored on validation failure")
			}
		})
	}
}

func TestCreateExpenseUseCase_Success(t *testing.T) {
	repo := newFakeExpenseRepo()
	pub := &fakePublisher{}
	uc := NewCreateExpenseUseCase(repo, pub)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID:      userID,
		Amount:      amount("0"),
		Category:    entity.CategoryOther,
		Description: "  Free sample  ",
		OccurredOn:  "2024-02-29",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Expense.Description != "Free sample" {
		t.Errorf("description = %q, want trimmed", out.Expense.Description)
	}
	if out.Expense.Source != entity.ExpenseSourceManual {
		t.Errorf("source = %s, want manual", out.Expense.Source)
	}
	if out.Expense.OccurredOn != "2024-02-29" {
		t.Errorf("occurredOn = %s", out.Expense.OccurredOn)
	}
	if len(repo.expenses) != 1 {
		t.Fatalf("expected 1 stored expense, got %d", len(repo.expenses))
	}
	if len(pub.events) != 1 || pub.events[0].Type != adapter.EventExpenseCreated || pub.events[0].UserID != userID {
		t.Errorf("unexpected events %+v", pub.events)
	}
}

func TestCreateExpenseUseCase_PublishFailureDoesNotFail(t *testing.T) {
	uc := NewCreateExpenseUseCase(newFakeExpenseRepo(), &fakePublisher{err: errors.New("broker down")})
	_, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID: uuid.New(), Amount: amount("1"), Category: entity.CategoryOther, Description: "x", OccurredOn: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("publish failure must not fail creation: %v", err)
	}
}

func TestCreateExpenseUseCase_PersistError(t *testing.T) {
	pub := &fakePublisher{}
	repo := newFakeExpenseRepo()
	repo.createErr = errors.New("timeout")
	uc := NewCreateExpenseUseCase(repo, pub)

	_, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID: uuid.New(), Amount: amount("1"), Category: entity.CategoryOther, Description: "x", OccurredOn: "2024-01-01",
	})
	if !domainerror.IsPersistError(err) {
		t.Fatalf("expected persist error, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Error("no event should be published when the write fails")
	}
}

func TestDeleteExpenseUseCase(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name      string
		caller    uuid.UUID
		missing   bool
		deleteErr error
		wantCode  domainerror.ExpenseErrorCode
		wantKept  bool
	}{
		{name: "owner deletes", caller: owner},
		{name: "other user", caller: uuid.New(), wantCode: domainerror.ErrCodeNotAuthorizedExpense, wantKept: true},
		{name: "unknown id", caller: owner, missing: true, wantCode: domainerror.ErrCodeExpenseNotFound},
		{name: "store failure keeps record", caller: owner, deleteErr: errors.New("timeout"), wantCode: domainerror.ErrCodeExpensePersistFailed, wantKept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeExpenseRepo()
			repo.deleteErr = tt.deleteErr
			e := entity.NewExpense(owner, decimal.NewFromInt(5), entity.CategoryOther, "x", time.Now(), entity.ExpenseSourceManual)
			_ = repo.Create(context.Background(), e)

			id := e.ID
			if tt.missing {
				id = uuid.New()
			}

			pub := &fakePublisher{}
			err := NewDeleteExpenseUseCase(repo, pub).Execute(context.Background(), DeleteExpenseInput{ExpenseID: id, UserID: tt.caller})

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(pub.events) != 1 || pub.events[0].Type != adapter.EventExpenseDeleted {
					t.Errorf("expected a delete event, got %+v", pub.events)
				}
			} else {
				var expErr *domainerror.ExpenseError
				if !errors.As(err, &expErr) || expErr.Code != tt.wantCode {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
			}

			_, kept := repo.expenses[e.ID]
			if tt.wantCode == "" && kept {
				t.Error("expense should be gone")
			}
			if tt.wantKept && !kept {
				t.Error("expense should still exist")
			}
		})
	}
}

func TestListExpensesUseCase(t *testing.T) {
	repo := newFakeExpenseRepo()
	userID := uuid.New()
	for _, d := range []string{"2024-03-20", "2024-03-05", "2024-02-10"} {
		day, _ := time.Parse(entity.OccurredOnLayout, d)
		_ = repo.Create(context.Background(), entity.NewExpense(userID, decimal.NewFromInt(1), entity.CategoryOther, "x", day, entity.ExpenseSourceManual))
	}
	_ = repo.Create(context.Background(), entity.NewExpense(uuid.New(), decimal.NewFromInt(1), entity.CategoryOther, "other", time.Now(), entity.ExpenseSourceManual))

	uc := NewListExpensesUseCase(repo)

	all, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.Total != 3 {
		t.Errorf("expected 3 expenses, got %d", all.Total)
	}

	march := valueobject.MonthPeriod(2, 2024)
	filtered, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID, Period: &march})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filtered.Total != 2 {
		t.Errorf("expected 2 march expenses, got %d", filtered.Total)
	}

	bad := valueobject.MonthPeriod(13, 2024)
	if _, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID, Period: &bad}); err == nil {
		t.Error("expected an error for an invalid period")
	}

	repo.listErr = errors.New("unreachable")
	if _, err := uc.Execute(context.Background(), ListExpensesInput{UserID: userID}); !domainerror.IsFetchError(err) {
		t.Errorf("expected fetch error, got %v", err)
	}
}

func TestCreateVoiceExpenseUseCase(t *testing.T) {
	today := time.Date(2024, time.May, 4, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return today }

	t.Run("first parser that understands wins", func(t *testing.T) {
		repo := newFakeExpenseRepo()
		first := &fakeParser{err: adapter.ErrNotParsed}
		second := &fakeParser{result: &adapter.ParsedExpense{
			Amount:      decimal.NewFromInt(250),
			Category:    entity.CategoryFoodDining,
			Description: "Voice expense: food",
		}}
		third := &fakeParser{err: adapter.ErrNotParsed}

		uc := NewCreateVoiceExpenseUseCase(NewCreateExpenseUseCase(repo, nil), clock, first, nil, second, third)
		out, err := uc.Execute(context.Background(), CreateVoiceExpenseInput{UserID: uuid.New(), Transcript: " add 250 to food "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Expense.OccurredOn != "2024-05-04" {
			t.Errorf("occurredOn = %s, want today", out.Expense.OccurredOn)
		}
		if out.Expense.Source != entity.ExpenseSourceVoice {
			t.Errorf("source = %s, want voice", out.Expense.Source)
		}
		if third.calls != 0 {
			t.Error("parsers after a match must not run")
		}
	})

	t.Run("nothing understood", func(t *testing.T) {
		repo := newFakeExpenseRepo()
		uc := NewCreateVoiceExpenseUseCase(NewCreateExpenseUseCase(repo, nil), clock, &fakeParser{err: adapter.ErrNotParsed})
		_, err := uc.Execute(context.Background(), CreateVoiceExpenseInput{UserID: uuid.New(), Transcript: "hello there"})
		if !errors.Is(err, domainerror.ErrUnrecognizedVoiceCommand) {
			t.Fatalf("expected unrecognized command, got %v", err)
		}
		if len(repo.expenses) != 0 {
			t.Error("nothing should be stored")
		}
	})

	t.Run("empty transcript skips parsers", func(t *testing.T) {
		parser := &fakeParser{err: adapter.ErrNotParsed}
		uc := NewCreateVoiceExpenseUseCase(NewCreateExpenseUseCase(newFakeExpenseRepo(), nil), clock, parser)
		if _, err := uc.Execute(context.Background(), CreateVoiceExpenseInput{UserID: uuid.New()}); err == nil {
			t.Fatal("expected an error")
		}
		if parser.calls != 0 {
			t.Error("parser should not be called for an empty transcript")
		}
	})
}
