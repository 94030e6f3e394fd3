package models

// CategoryType represents the type of category. The three types partition
// categories into mutually exclusive classes aggregated separately.
type CategoryType string

const (
	CategoryTypeSpending CategoryType = "spending"
	CategoryTypeSaving   CategoryType = "saving"
	CategoryTypeIncome   CategoryType = "income"
)

// CategoryGroup is a purely organizational grouping of categories.
type CategoryGroup struct {
	Base
	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`

	Categories []Category `gorm:"foreignKey:GroupID" json:"categories,omitempty"`
}

// Category represents a budget category.
// BudgetedAmount (centavos) is the default monthly allocation, used whenever
// no Budget row overrides it for a given month.
type Category struct {
	Base
	UserID         string       `gorm:"type:uuid;not null;index" json:"user_id"`
	GroupID        *string      `gorm:"type:uuid" json:"group_id,omitempty"`
	Name           string       `gorm:"not null" json:"name"`
	Type           CategoryType `gorm:"not null" json:"type"`
	BudgetedAmount int64        `gorm:"type:bigint;not null;default:0" json:"budgeted_amount"`
	Rollover       bool         `gorm:"default:false" json:"rollover"`
	Color          string       `json:"color"`
	Icon           string       `json:"icon"`
	SortOrder      int          `gorm:"default:0" json:"sort_order"`
	Hidden         bool         `gorm:"default:false" json:"hidden"`

	Group        *CategoryGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Transactions []Transaction  `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget       `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
