package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestVoiceParser_Parse(t *testing.T) {
	tests := []struct {
		transcript string
		amount     string
		category   entity.ExpenseCategory
		desc       string
	}{
		{"add 250 to food", "250", entity.CategoryFoodDining, "Voice expense: food"},
		{"Add 40 in TRAVEL", "40", entity.CategoryTransportation, "Voice expense: travel"},
		{"please add 12.50 movies", "12.50", entity.CategoryEntertainment, "Voice expense: movies"},
		{"add 900 to rent", "900", entity.CategoryRentMortgage, "Voice expense: rent"},
		{"add 30 to toys", "30", entity.CategoryOther, "Voice expense: toys"},
		{"add 75 to insurence", "75", entity.CategoryInsurance, "Voice expense: insurence"},
		{"add 15,5 to bills", "15.5", entity.CategoryUtilities, "Voice expense: bills"},
	}

	parser := NewVoiceParser()
	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			got, err := parser.Parse(context.Background(), tt.transcript)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Amount.Equal(decimal.RequireFromString(tt.amount)) {
				t.Errorf("amount = %s, want %s", got.Amount, tt.amount)
			}
			if got.Category != tt.category {
				t.Errorf("category = %q, want %q", got.Category, tt.category)
			}
			if got.Description != tt.desc {
				t.Errorf("description = %q, want %q", got.Description, tt.desc)
			}
		})
	}
}

func TestVoiceParser_NotParsed(t *testing.T) {
	parser := NewVoiceParser()
	for _, transcript := range []string{"", "spent money on food", "add food", "add to food 20"} {
		if _, err := parser.Parse(context.Background(), transcript); !errors.Is(err, adapter.ErrNotParsed) {
			t.Errorf("Parse(%q) error = %v, want ErrNotParsed", transcript, err)
		}
	}
}

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		word string
		want entity.ExpenseCategory
	}{
		{"food", entity.CategoryFoodDining},
		{"Rent", entity.CategoryRentMortgage},
		{"bills", entity.CategoryUtilities},
		{"movies", entity.CategoryEntertainment},
		{"studies", entity.CategoryEducation},
		{"helth", entity.CategoryHealthcare},
		{"studdy", entity.CategoryEducation},
		{"insurence", entity.CategoryInsurance},
		{"entertanment", entity.CategoryEntertainment},
		{"fod", entity.CategoryOther},
		{"book", entity.CategoryOther},
		{"good", entity.CategoryOther},
		{"milk", entity.CategoryOther},
		{"best", entity.CategoryOther},
		{"test", entity.CategoryOther},
		{"parent", entity.CategoryOther},
		{"current", entity.CategoryOther},
		{"rental", entity.CategoryOther},
		{"xyzzy", entity.CategoryOther},
		{"", entity.CategoryOther},
	}
	for _, tt := range tests {
		if got := MatchCategory(tt.word); got != tt.want {
			t.Errorf("MatchCategory(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
