package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(name string, categoryType models.CategoryType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income, expense or saving")
	}

	if err := s.ensureNameAvailable(name, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name: name,
		Type: categoryType,
	}

	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories returns all categories ordered by name.
func (s *categoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory renames a category and/or changes its type. The type of a
// category that is referenced by transactions or budgets cannot change, since
// stored amounts were signed against it.
func (s *categoryService) UpdateCategory(categoryID uint, name *string, categoryType *models.CategoryType) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		if trimmed != category.Name {
			if err := s.ensureNameAvailable(trimmed, categoryID); err != nil {
				return nil, err
			}
			updates["name"] = trimmed
		}
	}

	if categoryType != nil && *categoryType != category.Type {
		if !categoryType.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income, expense or saving")
		}
		inUse, err := s.isReferenced(categoryID)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, apperrors.WithMessage(apperrors.ErrCategoryInUse, "category type cannot change while transactions or budgets reference it")
		}
		updates["type"] = *categoryType
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrDuplicateCategory
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.GetCategoryByID(categoryID)
	}

	return category, nil
}

// DeleteCategory removes a category that nothing references.
func (s *categoryService) DeleteCategory(categoryID uint) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	inUse, err := s.isReferenced(categoryID)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ensureNameAvailable fails with ErrDuplicateCategory when another category
// (other than exceptID) already uses name.
func (s *categoryService) ensureNameAvailable(name string, exceptID uint) error {
	var count int64
	q := s.db.Model(&models.Category{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}

func (s *categoryService) isReferenced(categoryID uint) (bool, error) {
	var txCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&txCount).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 {
		return true, nil
	}

	var budgetCount int64
	if err := s.db.Model(&models.Budget{}).Where("category_id = ?", categoryID).Count(&budgetCount).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgetCount > 0, nil
}
