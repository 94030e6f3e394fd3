// Package derive computes the dashboard's derived figures from snapshots of
// persisted rows. Every function here is pure: no I/O, no clock reads, no
// hidden state. Where a date matters, "today" is an explicit parameter, so
// calling any function twice with the same snapshot yields identical output.
package derive

import (
	"fmt"
	"time"

	"bolso/internal/models"
)

// BudgetStatus drives the color coding of a category's budget state.
type BudgetStatus string

const (
	BudgetStatusOnTrack   BudgetStatus = "on_track"
	BudgetStatusWatch     BudgetStatus = "watch"
	BudgetStatusNearLimit BudgetStatus = "near_limit"
	BudgetStatusOver      BudgetStatus = "over_budget"
)

// CategoryProgress holds a single category's derived budget figures for a
// month. Percentage is the progress-bar width, clamped to [0,100]; the status
// thresholds are evaluated on the unclamped spent/budgeted ratio.
type CategoryProgress struct {
	CategoryID string       `json:"category_id"`
	Name       string       `json:"name"`
	Type       models.CategoryType `json:"type"`
	Icon       string       `json:"icon"`
	Color      string       `json:"color"`
	Budgeted   int64        `json:"budgeted"`
	Spent      int64        `json:"spent"`
	Available  int64        `json:"available"`
	Percentage float64      `json:"percentage"`
	Status     BudgetStatus `json:"status"`
}

// BudgetSummary aggregates a user's budget state for one month.
// Available is signed and never clamped: a negative value means over-budget
// and callers must preserve it.
type BudgetSummary struct {
	Month         time.Time          `json:"month"`
	TotalBalance  int64              `json:"total_balance"`
	TotalBudgeted int64              `json:"total_budgeted"`
	TotalSpent    int64              `json:"total_spent"`
	Available     int64              `json:"available"`
	Categories    []CategoryProgress `json:"categories"`
}

// MonthBounds returns the half-open interval [first, next) covering the
// calendar month of the given date. Using real calendar arithmetic keeps
// short months correct (February never sees a day 31).
func MonthBounds(month time.Time) (time.Time, time.Time) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first, first.AddDate(0, 1, 0)
}

// InMonth reports whether date falls within the calendar month of month.
func InMonth(date, month time.Time) bool {
	first, next := MonthBounds(month)
	return !date.Before(first) && date.Before(next)
}

// TotalBalance sums the balances of all active accounts in centavos.
func TotalBalance(accounts []models.Account) int64 {
	var total int64
	for _, a := range accounts {
		if a.IsActive {
			total += a.Balance
		}
	}
	return total
}

// Summarize reduces a month's snapshot into a BudgetSummary.
//
// A category with a Budget row for the month is budgeted at that row's
// budgeted + rollover amount; otherwise its default budgeted amount applies.
// Income categories carry no budget and are excluded from the category rows.
// Transactions outside the calendar month are ignored, uncategorized expenses
// count toward TotalSpent but toward no category.
//
// An unrecognized category type is schema drift between store and engine and
// surfaces as an error rather than being silently skipped.
func Summarize(
	month time.Time,
	accounts []models.Account,
	categories []models.Category,
	budgets []models.Budget,
	transactions []models.Transaction,
) (BudgetSummary, error) {
	first, _ := MonthBounds(month)

	budgetByCategory := make(map[string]models.Budget, len(budgets))
	for _, b := range budgets {
		budgetByCategory[b.CategoryID] = b
	}

	spentByCategory := make(map[string]int64)
	var totalSpent int64
	for _, tx := range transactions {
		if tx.Type != models.TransactionTypeExpense || !InMonth(tx.Date, month) {
			continue
		}
		amount := tx.Amount
		if amount < 0 {
			amount = -amount
		}
		totalSpent += amount
		if tx.CategoryID != nil {
			spentByCategory[*tx.CategoryID] += amount
		}
	}

	summary := BudgetSummary{
		Month:        first,
		TotalBalance: TotalBalance(accounts),
		TotalSpent:   totalSpent,
	}

	for _, cat := range categories {
		switch cat.Type {
		case models.CategoryTypeIncome:
			continue
		case models.CategoryTypeSpending, models.CategoryTypeSaving:
		default:
			return BudgetSummary{}, fmt.Errorf("derive: unknown category type %q for category %s", cat.Type, cat.ID)
		}

		budgeted := cat.BudgetedAmount
		if row, ok := budgetByCategory[cat.ID]; ok {
			budgeted = row.BudgetedAmount + row.RolloverAmount
		}
		spent := spentByCategory[cat.ID]

		summary.TotalBudgeted += budgeted
		summary.Categories = append(summary.Categories, categoryProgress(cat, budgeted, spent))
	}

	summary.Available = summary.TotalBudgeted - summary.TotalSpent
	return summary, nil
}

func categoryProgress(cat models.Category, budgeted, spent int64) CategoryProgress {
	available := budgeted - spent

	// Unclamped ratio for the status thresholds; a zero budget with zero
	// spend is simply on track, never NaN.
	var ratio float64
	if budgeted > 0 {
		ratio = float64(spent) / float64(budgeted) * 100
	}

	var status BudgetStatus
	switch {
	case available < 0:
		status = BudgetStatusOver
	case ratio >= 90:
		status = BudgetStatusNearLimit
	case ratio >= 70:
		status = BudgetStatusWatch
	default:
		status = BudgetStatusOnTrack
	}

	percentage := ratio
	if percentage > 100 {
		percentage = 100
	}
	if budgeted <= 0 {
		percentage = 0
	}

	return CategoryProgress{
		CategoryID: cat.ID,
		Name:       cat.Name,
		Type:       cat.Type,
		Icon:       models.NormalizeIconKey(cat.Icon),
		Color:      cat.Color,
		Budgeted:   budgeted,
		Spent:      spent,
		Available:  available,
		Percentage: percentage,
		Status:     status,
	}
}
