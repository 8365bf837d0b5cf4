package services

import (
	"errors"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

type defaultCategory struct {
	name         string
	categoryType models.CategoryType
}

// defaultCategories is the starter set seeded on first run.
var defaultCategories = []defaultCategory{
	{"Salary", models.CategoryTypeIncome},
	{"Bonus", models.CategoryTypeIncome},
	{"Groceries", models.CategoryTypeExpense},
	{"Rent", models.CategoryTypeExpense},
	{"Restaurants", models.CategoryTypeExpense},
	{"Transport", models.CategoryTypeExpense},
	{"Kids", models.CategoryTypeExpense},
	{"Hobbies", models.CategoryTypeExpense},
	{"Savings", models.CategoryTypeSaving},
	{"Emergency Fund", models.CategoryTypeSaving},
}

// setupService seeds reference data.
type setupService struct {
	categories CategoryServicer
}

// NewSetupService creates a new SetupServicer.
func NewSetupService(categories CategoryServicer) SetupServicer {
	return &setupService{categories: categories}
}

// CreateDefaultCategories creates every default category that does not exist
// yet. Calling it again is harmless: existing names are reported as skipped.
func (s *setupService) CreateDefaultCategories() (*SetupResult, error) {
	result := &SetupResult{
		Created: []string{},
		Skipped: []string{},
	}

	for _, d := range defaultCategories {
		_, err := s.categories.CreateCategory(d.name, d.categoryType)
		switch {
		case err == nil:
			result.Created = append(result.Created, d.name)
		case errors.Is(err, apperrors.ErrDuplicateCategory):
			result.Skipped = append(result.Skipped, d.name)
		default:
			return nil, err
		}
	}

	return result, nil
}
