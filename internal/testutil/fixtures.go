package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns midnight UTC of the given calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates a category of the given type with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()), categoryType)
}

// CreateTestCategoryNamed creates a category with the given name and type.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: name,
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction stores a transaction with the amount exactly as given,
// without sign normalization.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID uint, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the category in the given month.
func CreateTestBudget(t *testing.T, db *gorm.DB, categoryID uint, year, month int, amount string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		CategoryID: categoryID,
		Year:       year,
		Month:      month,
		Amount:     decimal.RequireFromString(amount),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
