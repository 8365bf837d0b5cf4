package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/events"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db         *gorm.DB
	categories CategoryLookup
	publisher  events.Publisher
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categories CategoryLookup, publisher events.Publisher) TransactionServicer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &transactionService{
		db:         db,
		categories: categories,
		publisher:  publisher,
	}
}

// CreateTransaction records a transaction with its amount signed according to
// the category type.
func (s *transactionService) CreateTransaction(
	categoryID uint,
	amount decimal.Decimal,
	description *string,
	date time.Time,
) (*models.Transaction, error) {
	if categoryID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category ID is required")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	category, err := s.categories.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Date:        period.DateOnly(date),
		Amount:      NormalizeAmount(category, amount),
		Description: cleanDescription(description),
		CategoryID:  category.ID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.Category = category

	s.publish(events.TransactionCreated, transaction)
	return transaction, nil
}

// GetTransactions retrieves a paginated, filtered list of transactions,
// newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Order("date DESC").
		Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", period.DateOnly(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", period.DateOnly(*f.ToDate))
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

// FindInDateRange returns every transaction dated within [start, end], both
// days included. No ordering is guaranteed.
func (s *transactionService) FindInDateRange(start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.
		Where("date >= ? AND date <= ?", period.DateOnly(start), period.DateOnly(end)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID with its category.
func (s *transactionService) GetTransactionByID(transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update. The amount is re-normalized
// whenever the amount or the category changes; when only the category changes
// the stored magnitude is re-signed against the new category type.
func (s *transactionService) UpdateTransaction(transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if fields.CategoryID != nil || fields.Amount != nil {
		targetCategoryID := transaction.CategoryID
		if fields.CategoryID != nil {
			targetCategoryID = *fields.CategoryID
		}

		category, err := s.categories.GetCategoryByID(targetCategoryID)
		if err != nil {
			return nil, err
		}

		amount := transaction.Amount
		if fields.Amount != nil {
			amount = *fields.Amount
		}

		updates["category_id"] = category.ID
		updates["amount"] = NormalizeAmount(category, amount)
	}

	if fields.Date != nil {
		if fields.Date.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date cannot be empty")
		}
		updates["date"] = period.DateOnly(*fields.Date)
	}

	if fields.Description != nil {
		updates["description"] = cleanDescription(fields.Description)
	}

	if len(updates) == 0 {
		return transaction, nil
	}

	if err := s.db.Model(&models.Transaction{}).Where("id = ?", transactionID).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updated, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}

	s.publish(events.TransactionUpdated, updated)
	return updated, nil
}

// DeleteTransaction permanently removes a transaction.
func (s *transactionService) DeleteTransaction(transactionID uint) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Transaction{}, transactionID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(events.TransactionDeleted, transaction)
	return nil
}

func (s *transactionService) publish(eventType events.Type, transaction *models.Transaction) {
	m := period.Of(transaction.Date)
	s.publisher.Publish(events.Event{
		Type:       eventType,
		ResourceID: transaction.ID,
		CategoryID: transaction.CategoryID,
		Year:       m.Year,
		Month:      m.Month,
		Amount:     transaction.Amount,
		OccurredAt: time.Now().UTC(),
	})
}

// cleanDescription trims a description and maps blank values to nil.
func cleanDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
