package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeSaving  CategoryType = "saving"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeSaving:
		return true
	}
	return false
}

// Category represents a transaction category
type Category struct {
	Base
	Name string       `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Type CategoryType `gorm:"size:20;not null" json:"type"`
}
