package models

// AccountKind represents the kind of account
type AccountKind string

const (
	AccountKindChecking AccountKind = "checking"
	AccountKindSavings  AccountKind = "savings"
	AccountKindCard     AccountKind = "card"
	AccountKindOther    AccountKind = "other"
)

// Account represents a financial account in the system.
// Balance is stored in centavos and is authoritative state: it is updated
// inside the same database transaction that inserts a ledger Transaction,
// never recomputed from transaction history.
type Account struct {
	Base
	UserID   string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string      `gorm:"not null" json:"name"`
	Kind     AccountKind `gorm:"not null" json:"kind"`
	Balance  int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	IsActive bool        `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
