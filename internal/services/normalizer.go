package services

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// NormalizeAmount signs a raw amount according to the category type: expenses
// are stored negative, income and saving positive. The magnitude is preserved,
// rounded to the two fractional digits the amount column holds.
//
// The category must already be resolved; callers report an unknown category
// id before normalizing.
func NormalizeAmount(category *models.Category, raw decimal.Decimal) decimal.Decimal {
	magnitude := raw.Abs().Round(2)
	if category.Type == models.CategoryTypeExpense {
		return magnitude.Neg()
	}
	return magnitude
}
