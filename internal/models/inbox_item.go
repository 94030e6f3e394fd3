package models

import "time"

// InboxStatus represents the lifecycle state of an inbox item.
type InboxStatus string

const (
	InboxStatusPending   InboxStatus = "pending"
	InboxStatusConfirmed InboxStatus = "confirmed"
	InboxStatusRejected  InboxStatus = "rejected"
)

// InboxItem is a candidate transaction awaiting user approval.
// Items arrive from external ingestion channels (bank sync, messaging bots)
// and only become ledger Transactions when the user confirms them.
type InboxItem struct {
	Base
	UserID              string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Description         string      `gorm:"not null" json:"description"`
	Amount              int64       `gorm:"type:bigint;not null" json:"amount"`
	Date                time.Time   `gorm:"not null" json:"date"`
	SourceChannel       string      `gorm:"not null" json:"source_channel"`
	SuggestedCategoryID *string     `gorm:"type:uuid" json:"suggested_category_id,omitempty"`
	Status              InboxStatus `gorm:"not null;default:'pending'" json:"status"`

	SuggestedCategory *Category `gorm:"foreignKey:SuggestedCategoryID" json:"suggested_category,omitempty"`
}
