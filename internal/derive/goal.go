package derive

import (
	"fmt"
	"math"
	"time"

	"bolso/internal/models"
)

// GoalProgress holds the derived figures for one goal.
// Percentage is clamped to [0,100] for display. DaysRemaining, Urgent,
// Overdue, and MonthlyRequired are only populated for save_by_date goals
// carrying a due date.
type GoalProgress struct {
	GoalID              string          `json:"goal_id"`
	Name                string          `json:"name"`
	Type                models.GoalType `json:"type"`
	CurrentAmount       int64           `json:"current_amount"`
	TargetAmount        int64           `json:"target_amount"`
	Percentage          float64         `json:"percentage"`
	Remaining           int64           `json:"remaining"`
	Achieved            bool            `json:"achieved"`
	ProjectedCompletion *time.Time      `json:"projected_completion,omitempty"`
	DaysRemaining       *int            `json:"days_remaining,omitempty"`
	Urgent              bool            `json:"urgent"`
	Overdue             bool            `json:"overdue"`
	MonthlyRequired     int64           `json:"monthly_required,omitempty"`
}

// GoalProgressFrom computes a goal's progress as of today.
//
// The goal's running CurrentAmount is authoritative. When contributions are
// supplied (non-nil), they become the source of truth instead: the current
// amount is the goal's initial amount plus the signed sum of contributions.
//
// A goal with target <= 0 is invalid display input and normalizes to zero
// percentage and zero remaining rather than failing. An unrecognized goal
// type is a programming error and is returned as such, never masked.
func GoalProgressFrom(goal models.Goal, contributions []models.GoalContribution, today time.Time) (GoalProgress, error) {
	switch goal.Type {
	case models.GoalTypeSaveByDate, models.GoalTypeSaveMonthly, models.GoalTypeSpendMonthly:
	default:
		return GoalProgress{}, fmt.Errorf("derive: unknown goal type %q for goal %s", goal.Type, goal.ID)
	}

	current := goal.CurrentAmount
	if contributions != nil {
		current = goal.InitialAmount
		for _, c := range contributions {
			current += c.Amount
		}
	}

	progress := GoalProgress{
		GoalID:        goal.ID,
		Name:          goal.Name,
		Type:          goal.Type,
		CurrentAmount: current,
		TargetAmount:  goal.TargetAmount,
	}

	if goal.TargetAmount <= 0 {
		return progress, nil
	}

	progress.Achieved = current >= goal.TargetAmount
	progress.Percentage = math.Min(100, float64(current)/float64(goal.TargetAmount)*100)
	if progress.Percentage < 0 {
		progress.Percentage = 0
	}
	if remaining := goal.TargetAmount - current; remaining > 0 {
		progress.Remaining = remaining
	}

	if progress.Remaining > 0 && goal.MonthlyContribution > 0 {
		months := ceilDiv(progress.Remaining, goal.MonthlyContribution)
		completion := addMonths(today, int(months))
		progress.ProjectedCompletion = &completion
	}

	if goal.Type == models.GoalTypeSaveByDate && goal.DueDate != nil {
		days := int(math.Ceil(goal.DueDate.Sub(today).Hours() / 24))
		progress.DaysRemaining = &days

		if !progress.Achieved {
			if days <= 0 {
				progress.Overdue = true
			} else if days <= 30 {
				progress.Urgent = true
			}
		}

		monthsLeft := ceilDiv(int64(days), 30)
		if monthsLeft < 1 {
			monthsLeft = 1
		}
		progress.MonthlyRequired = progress.Remaining / monthsLeft
	}

	return progress, nil
}

// addMonths advances t by whole months, clamping the day of month to the
// length of the target month (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// ceilDiv is ceiling division for positive operands.
func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
