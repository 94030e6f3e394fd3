package models

import "time"

// GoalType represents the type of goal
type GoalType string

const (
	GoalTypeSaveByDate   GoalType = "save_by_date"
	GoalTypeSaveMonthly  GoalType = "save_monthly"
	GoalTypeSpendMonthly GoalType = "spend_monthly"
)

// GoalCadence is the repeating period of a recurring goal.
type GoalCadence string

const (
	GoalCadenceMonthly GoalCadence = "monthly"
	GoalCadenceWeekly  GoalCadence = "weekly"
)

// Goal represents a savings or spending goal tied to a category.
// CurrentAmount is a running total in centavos, adjusted only through
// GoalContribution events.
type Goal struct {
	Base
	UserID              string       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID          string       `gorm:"type:uuid;not null" json:"category_id"`
	Name                string       `gorm:"not null" json:"name"`
	Description         string       `json:"description"`
	TargetAmount        int64        `gorm:"type:bigint;not null" json:"target_amount"`
	InitialAmount       int64        `gorm:"type:bigint;not null;default:0" json:"initial_amount"`
	CurrentAmount       int64        `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	Type                GoalType     `gorm:"not null" json:"type"`
	DueDate             *time.Time   `json:"due_date,omitempty"`
	Cadence             *GoalCadence `json:"cadence,omitempty"`
	MonthlyContribution int64        `gorm:"type:bigint;not null;default:0" json:"monthly_contribution"`
	Achieved            bool         `gorm:"default:false" json:"achieved"`
	IsActive            bool         `gorm:"default:true" json:"is_active"`
	Note                string       `json:"note,omitempty"`
	Color               string       `json:"color"`

	Category      Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Contributions []GoalContribution `gorm:"foreignKey:GoalID" json:"contributions,omitempty"`
}

// GoalContribution is a deposit into (positive) or withdrawal from
// (negative) a goal, in centavos.
type GoalContribution struct {
	Base
	GoalID string    `gorm:"type:uuid;not null;index" json:"goal_id"`
	Amount int64     `gorm:"type:bigint;not null" json:"amount"`
	Date   time.Time `gorm:"not null" json:"date"`
	Note   string    `json:"note,omitempty"`
}
