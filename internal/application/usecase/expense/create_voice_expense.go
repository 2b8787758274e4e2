package expense

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateVoiceExpenseInput represents a spoken or typed expense command.
type CreateVoiceExpenseInput struct {
	UserID     uuid.UUID
	Transcript string
}

// CreateVoiceExpenseOutput represents the expense created from a command.
type CreateVoiceExpenseOutput struct {
	Expense    *entity.Expense
	Transcript string
}

// CreateVoiceExpenseUseCase turns a transcript into an expense. Parsers are
// tried in order and the first that understands the transcript wins.
type CreateVoiceExpenseUseCase struct {
	parsers []adapter.ExpenseParser
	create  *CreateExpenseUseCase
	now     func() time.Time
}

// NewCreateVoiceExpenseUseCase creates a new CreateVoiceExpenseUseCase instance.
// Nil parsers are skipped so optional parsers can be passed unconditionally.
func NewCreateVoiceExpenseUseCase(create *CreateExpenseUseCase, now func() time.Time, parsers ...adapter.ExpenseParser) *CreateVoiceExpenseUseCase {
	if now == nil {
		now = time.Now
	}
	active := make([]adapter.ExpenseParser, 0, len(parsers))
	for _, p := range parsers {
		if p != nil {
			active = append(active, p)
		}
	}
	return &CreateVoiceExpenseUseCase{
		parsers: active,
		create:  create,
		now:     now,
	}
}

// Execute parses the transcript and records the expense for today.
func (uc *CreateVoiceExpenseUseCase) Execute(ctx context.Context, input CreateVoiceExpenseInput) (*CreateVoiceExpenseOutput, error) {
	transcript := strings.TrimSpace(input.Transcript)

	parsed, err := uc.parse(ctx, transcript)
	if err != nil {
		return nil, err
	}

	amount := parsed.Amount
	out, err := uc.create.Execute(ctx, CreateExpenseInput{
		UserID:      input.UserID,
		Amount:      &amount,
		Category:    parsed.Category,
		Description: parsed.Description,
		OccurredOn:  uc.now().Format(entity.OccurredOnLayout),
		Source:      entity.ExpenseSourceVoice,
	})
	if err != nil {
		return nil, err
	}

	return &CreateVoiceExpenseOutput{Expense: out.Expense, Transcript: transcript}, nil
}

func (uc *CreateVoiceExpenseUseCase) parse(ctx context.Context, transcript string) (*adapter.ParsedExpense, error) {
	if transcript != "" {
		for _, parser := range uc.parsers {
			parsed, err := parser.Parse(ctx, transcript)
			if err == nil {
				return parsed, nil
			}
			if !errors.Is(err, adapter.ErrNotParsed) {
				slog.Warn("Expense parser failed", "error", err)
			}
		}
	}

	return nil, domainerror.NewExpenseError(
		domainerror.ErrCodeUnrecognizedVoiceCommand,
		`could not understand the command, try "add 250 to food"`,
		domainerror.ErrUnrecognizedVoiceCommand,
	)
}
