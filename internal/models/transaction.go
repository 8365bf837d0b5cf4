package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a financial transaction in the system.
// Amount is signed according to the category type at the time it was written.
type Transaction struct {
	Base
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description *string         `gorm:"size:255" json:"description"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
