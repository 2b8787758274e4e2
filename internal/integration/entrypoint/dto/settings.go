package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/settings"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UpdateSettingsRequest is a partial settings update.
type UpdateSettingsRequest struct {
	MonthlyIncome *float64 `json:"monthlyIncome"`
}

// AddFixedExpenseRequest represents a new fixed expense item.
type AddFixedExpenseRequest struct {
	Name     string   `json:"name"`
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
}

// UpdateFixedExpenseRequest carries the fields of an item to replace.
type UpdateFixedExpenseRequest struct {
	Name     *string  `json:"name"`
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
}

// FixedExpenseItemResponse represents one fixed expense item.
type FixedExpenseItemResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// SettingsResponse represents a user's settings. FixedExpensesTotal is the
// total used in calculations.
type SettingsResponse struct {
	MonthlyIncome      float64                    `json:"monthlyIncome"`
	FixedExpensesTotal float64                    `json:"fixedExpensesTotal"`
	FixedExpenseItems  []FixedExpenseItemResponse `json:"fixedExpenseItems"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

// FixedExpenseResponse is returned by fixed expense mutations.
type FixedExpenseResponse struct {
	Item     *FixedExpenseItemResponse `json:"item,omitempty"`
	Settings SettingsResponse          `json:"settings"`
}

// ToUpdateSettingsInput converts the request into use case input.
func (r UpdateSettingsRequest) ToUpdateSettingsInput(userID uuid.UUID) settings.UpdateSettingsInput {
	return settings.UpdateSettingsInput{
		UserID:        userID,
		MonthlyIncome: decimalPtr(r.MonthlyIncome),
	}
}

// ToAddFixedExpenseInput converts the request into use case input.
func (r AddFixedExpenseRequest) ToAddFixedExpenseInput(userID uuid.UUID) settings.AddFixedExpenseInput {
	return settings.AddFixedExpenseInput{
		UserID:   userID,
		Name:     r.Name,
		Amount:   decimalPtr(r.Amount),
		Category: entity.ExpenseCategory(r.Category),
	}
}

// ToUpdateFixedExpenseInput converts the request into use case input.
func (r UpdateFixedExpenseRequest) ToUpdateFixedExpenseInput(userID, itemID uuid.UUID) settings.UpdateFixedExpenseInput {
	input := settings.UpdateFixedExpenseInput{
		UserID: userID,
		ItemID: itemID,
		Name:   r.Name,
		Amount: decimalPtr(r.Amount),
	}
	if r.Category != nil {
		category := entity.ExpenseCategory(*r.Category)
		input.Category = &category
	}
	return input
}

// ToSettingsResponse converts domain settings to a SettingsResponse DTO.
func ToSettingsResponse(s *entity.UserSettings) SettingsResponse {
	items := make([]FixedExpenseItemResponse, 0, len(s.FixedExpenseItems))
	for _, item := range s.FixedExpenseItems {
		items = append(items, toFixedExpenseItemResponse(item))
	}
	return SettingsResponse{
		MonthlyIncome:      toFloat(s.MonthlyIncome),
		FixedExpensesTotal: toFloat(s.EffectiveFixedTotal()),
		FixedExpenseItems:  items,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToFixedExpenseResponse converts a fixed expense mutation output.
func ToFixedExpenseResponse(output *settings.FixedExpenseOutput) FixedExpenseResponse {
	response := FixedExpenseResponse{Settings: ToSettingsResponse(output.Settings)}
	if output.Item != nil {
		item := toFixedExpenseItemResponse(*output.Item)
		response.Item = &item
	}
	return response
}

func toFixedExpenseItemResponse(item entity.FixedExpenseItem) FixedExpenseItemResponse {
	return FixedExpenseItemResponse{
		ID:       item.ID.String(),
		Name:     item.Name,
		Amount:   toFloat(item.Amount),
		Category: string(item.Category),
	}
}
