package dto

import "github.com/expense-tracker/backend/internal/domain/entity"

// CategoriesResponse lists the closed category sets.
type CategoriesResponse struct {
	ExpenseCategories      []string `json:"expenseCategories"`
	FixedExpenseCategories []string `json:"fixedExpenseCategories"`
}

// ToCategoriesResponse renders both category lists in display order.
func ToCategoriesResponse() CategoriesResponse {
	return CategoriesResponse{
		ExpenseCategories:      categoryNames(entity.ExpenseCategories),
		FixedExpenseCategories: categoryNames(entity.FixedExpenseCategories),
	}
}

func categoryNames(categories []entity.ExpenseCategory) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return names
}
