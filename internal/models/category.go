package models

// CategoryOther is the fallback category for both transaction types.
// Unrecognized categories are coerced to it during import and receipt
// confirmation rather than rejected.
const CategoryOther = "Other"

// IncomeCategories is the fixed set of categories for income transactions.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Business",
	"Investment",
	"Rental",
	"Gift",
	"Bonus",
	CategoryOther,
}

// ExpenseCategories is the fixed set of categories for expense transactions.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Education",
	CategoryOther,
}

// CategoriesFor returns the valid category set for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == TransactionTypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// IsValidCategory reports whether name belongs to the category set of the
// given transaction type.
func IsValidCategory(t TransactionType, name string) bool {
	for _, c := range CategoriesFor(t) {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeCategory returns name unchanged when it is valid for the given
// type, and CategoryOther otherwise.
func NormalizeCategory(t TransactionType, name string) string {
	if IsValidCategory(t, name) {
		return name
	}
	return CategoryOther
}
