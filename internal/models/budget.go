package models

import "github.com/shopspring/decimal"

// Budget represents the planned amount for a category in one calendar month.
// At most one budget exists per (category, year, month).
type Budget struct {
	Base
	Year       int             `gorm:"not null;uniqueIndex:idx_budget_period,priority:2" json:"year"`
	Month      int             `gorm:"not null;uniqueIndex:idx_budget_period,priority:3;check:chk_budget_month,month >= 1 AND month <= 12" json:"month"`
	CategoryID uint            `gorm:"not null;uniqueIndex:idx_budget_period,priority:1" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
