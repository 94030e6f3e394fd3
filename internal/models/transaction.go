package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a ledger entry in a user's account.
// Amount is signed centavos: negative for expenses, positive for income.
// The sign is enforced at entry time and assumed downstream.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID   string          `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Cleared     bool            `gorm:"default:false" json:"cleared"`
	Notes       string          `json:"notes,omitempty"`

	// For transfers
	ToAccountID *string `gorm:"type:uuid" json:"to_account_id,omitempty"`

	Account   Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	ToAccount *Account  `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
