package models

import "time"

// Budget is a monthly override of a category's default budgeted amount.
// Month is always normalized to the first day of the month. At most one row
// exists per (user, category, month).
type Budget struct {
	Base
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:idx_budget_month" json:"user_id"`
	CategoryID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_budget_month" json:"category_id"`
	Month          time.Time `gorm:"not null;uniqueIndex:idx_budget_month" json:"month"`
	BudgetedAmount int64     `gorm:"type:bigint;not null" json:"budgeted_amount"`
	RolloverAmount int64     `gorm:"type:bigint;not null;default:0" json:"rollover_amount"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
