package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// CategoryLookup resolves categories. ListCategories returns every category
// ordered by name.
type CategoryLookup interface {
	GetCategoryByID(categoryID uint) (*models.Category, error)
	ListCategories() ([]models.Category, error)
}

// TransactionQuery returns the transactions dated inside an inclusive range.
type TransactionQuery interface {
	FindInDateRange(start, end time.Time) ([]models.Transaction, error)
}

// BudgetQuery returns the budget of a category for one month, or nil when
// none is defined.
type BudgetQuery interface {
	FindByCategoryAndPeriod(categoryID uint, year, month int) (*models.Budget, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CategoryLookup
	CreateCategory(name string, categoryType models.CategoryType) (*models.Category, error)
	UpdateCategory(categoryID uint, name *string, categoryType *models.CategoryType) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *uint
}

// TransactionUpdateFields holds the fields of a partial transaction update.
// A nil field is left unchanged. An empty Description clears it.
type TransactionUpdateFields struct {
	Date        *time.Time
	Amount      *decimal.Decimal
	CategoryID  *uint
	Description *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	TransactionQuery
	CreateTransaction(categoryID uint, amount decimal.Decimal, description *string, date time.Time) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID uint) (*models.Transaction, error)
	UpdateTransaction(transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(transactionID uint) error
}

// BudgetFilter holds optional filter parameters for listing budgets.
type BudgetFilter struct {
	Year       *int
	Month      *int
	CategoryID *uint
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	BudgetQuery
	CreateBudget(categoryID uint, year, month int, amount decimal.Decimal) (*models.Budget, error)
	GetBudgets(page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID uint) (*models.Budget, error)
	UpdateBudget(budgetID uint, amount decimal.Decimal) (*models.Budget, error)
	DeleteBudget(budgetID uint) error
}

// SummaryServicer defines the contract for the monthly summary.
type SummaryServicer interface {
	GetMonthSummary(year, month int) (*MonthSummary, error)
}

// SetupResult lists the default categories that were created or already present.
type SetupResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// SetupServicer defines the contract for first-run seeding.
type SetupServicer interface {
	CreateDefaultCategories() (*SetupResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
