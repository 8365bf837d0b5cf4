package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/events"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db         *gorm.DB
	categories CategoryLookup
	publisher  events.Publisher
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, categories CategoryLookup, publisher events.Publisher) BudgetServicer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &budgetService{
		db:         db,
		categories: categories,
		publisher:  publisher,
	}
}

// CreateBudget creates the budget of a category for one month.
func (s *budgetService) CreateBudget(categoryID uint, year, month int, amount decimal.Decimal) (*models.Budget, error) {
	if _, err := period.New(year, month); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPeriod, err.Error())
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount cannot be negative")
	}

	category, err := s.categories.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	existing, err := s.FindByCategoryAndPeriod(categoryID, year, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		Year:       year,
		Month:      month,
		CategoryID: category.ID,
		Amount:     amount.Round(2),
	}

	if err := s.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Category = category

	s.publish(events.BudgetCreated, budget)
	return budget, nil
}

// GetBudgets returns a paginated list of budgets with optional filters,
// most recent period first.
func (s *budgetService) GetBudgets(page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})
	if filter.Year != nil {
		base = base.Where("year = ?", *filter.Year)
	}
	if filter.Month != nil {
		base = base.Where("month = ?", *filter.Month)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Category").
		Order("year DESC").
		Order("month DESC").
		Order("id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID with its category.
func (s *budgetService) GetBudgetByID(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// FindByCategoryAndPeriod returns the budget of a category for one month, or
// nil when none is defined. Should several rows exist, the lowest id wins.
func (s *budgetService) FindByCategoryAndPeriod(categoryID uint, year, month int) (*models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.
		Where("category_id = ? AND year = ? AND month = ?", categoryID, year, month).
		Order("id ASC").
		Limit(1).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	return &budgets[0], nil
}

// UpdateBudget changes the planned amount of a budget.
func (s *budgetService) UpdateBudget(budgetID uint, amount decimal.Decimal) (*models.Budget, error) {
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount cannot be negative")
	}

	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Budget{}).Where("id = ?", budgetID).Update("amount", amount.Round(2)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Amount = amount.Round(2)

	s.publish(events.BudgetUpdated, budget)
	return budget, nil
}

// DeleteBudget permanently removes a budget.
func (s *budgetService) DeleteBudget(budgetID uint) error {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Budget{}, budgetID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(events.BudgetDeleted, budget)
	return nil
}

func (s *budgetService) publish(eventType events.Type, budget *models.Budget) {
	s.publisher.Publish(events.Event{
		Type:       eventType,
		ResourceID: budget.ID,
		CategoryID: budget.CategoryID,
		Year:       budget.Year,
		Month:      budget.Month,
		Amount:     budget.Amount,
		OccurredAt: time.Now().UTC(),
	})
}
