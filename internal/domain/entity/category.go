package entity

// ExpenseCategory is a label from the closed category list shared by
// expense entry and aggregation.
type ExpenseCategory string

const (
	CategoryFoodDining     ExpenseCategory = "Food & Dining"
	CategoryTransportation ExpenseCategory = "Transportation"
	CategoryEntertainment  ExpenseCategory = "Entertainment"
	CategoryShopping       ExpenseCategory = "Shopping"
	CategoryHealthcare     ExpenseCategory = "Healthcare"
	CategoryUtilities      ExpenseCategory = "Utilities"
	CategoryRentMortgage   ExpenseCategory = "Rent/Mortgage"
	CategoryInsurance      ExpenseCategory = "Insurance"
	CategoryEducation      ExpenseCategory = "Education"
	CategoryOther          ExpenseCategory = "Other"

	// CategorySubscriptions is only valid for fixed expense items.
	CategorySubscriptions ExpenseCategory = "Subscriptions"
)

// ExpenseCategories lists the categories accepted for expense records, in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFoodDining,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealthcare,
	CategoryUtilities,
	CategoryRentMortgage,
	CategoryInsurance,
	CategoryEducation,
	CategoryOther,
}

// FixedExpenseCategories lists the categories accepted for fixed expense items.
var FixedExpenseCategories = []ExpenseCategory{
	CategoryRentMortgage,
	CategoryUtilities,
	CategoryTransportation,
	CategoryInsurance,
	CategoryEducation,
	CategorySubscriptions,
	CategoryOther,
}

// IsValidExpenseCategory checks if the category belongs to the expense list.
func (c ExpenseCategory) IsValidExpenseCategory() bool {
	for _, cat := range ExpenseCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// IsValidFixedCategory checks if the category belongs to the fixed expense list.
func (c ExpenseCategory) IsValidFixedCategory() bool {
	for _, cat := range FixedExpenseCategories {
		if c == cat {
			return true
		}
	}
	return false
}
