package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"bolso/internal/derive"
	apperrors "bolso/internal/errors"
	"bolso/internal/models"
)

// budgetService handles monthly budget rows.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// firstOfMonth normalizes any date to midnight on the first of its month.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SetMonthBudget creates or updates the budget row for (category, month).
// The rollover amount on an existing row is preserved; only the budgeted
// amount is overridden.
func (s *budgetService) SetMonthBudget(userID, categoryID string, month time.Time, budgetedAmount int64) (*models.Budget, error) {
	if budgetedAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budgeted amount cannot be negative")
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	month = firstOfMonth(month)

	var budget models.Budget
	err := s.db.Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, month).
		First(&budget).Error
	switch {
	case err == nil:
		if err := s.db.Model(&budget).Update("budgeted_amount", budgetedAmount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.BudgetedAmount = budgetedAmount
		return &budget, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{
			UserID:         userID,
			CategoryID:     categoryID,
			Month:          month,
			BudgetedAmount: budgetedAmount,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &budget, nil

	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetMonthBudgets returns all budget rows for the user's month.
func (s *budgetService) GetMonthBudgets(userID string, month time.Time) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND month = ?", userID, firstOfMonth(month)).
		Preload("Category").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget row by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// DeleteBudget removes a monthly override, reverting the category to its
// default budgeted amount for that month.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ApplyRollover carries each rollover-flagged category's unspent remainder
// of the given month into the next month's budget row. Overspent categories
// carry nothing. Returns how many categories were carried forward.
func (s *budgetService) ApplyRollover(userID string, month time.Time) (int, error) {
	month = firstOfMonth(month)
	next := month.AddDate(0, 1, 0)
	monthStart, monthEnd := derive.MonthBounds(month)

	var categories []models.Category
	if err := s.db.Where("user_id = ? AND rollover = ?", userID, true).Find(&categories).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	carried := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, cat := range categories {
			budgeted := cat.BudgetedAmount
			var row models.Budget
			err := tx.Where("user_id = ? AND category_id = ? AND month = ?", userID, cat.ID, month).
				First(&row).Error
			switch {
			case err == nil:
				budgeted = row.BudgetedAmount + row.RolloverAmount
			case errors.Is(err, gorm.ErrRecordNotFound):
			default:
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			var spent int64
			if err := tx.Model(&models.Transaction{}).
				Select("COALESCE(SUM(ABS(amount)), 0)").
				Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date < ?",
					userID, cat.ID, models.TransactionTypeExpense, monthStart, monthEnd).
				Scan(&spent).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			carry := budgeted - spent
			if carry < 0 {
				carry = 0
			}

			var nextRow models.Budget
			err = tx.Where("user_id = ? AND category_id = ? AND month = ?", userID, cat.ID, next).
				First(&nextRow).Error
			switch {
			case err == nil:
				if err := tx.Model(&nextRow).Update("rollover_amount", carry).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				nextRow = models.Budget{
					UserID:         userID,
					CategoryID:     cat.ID,
					Month:          next,
					BudgetedAmount: cat.BudgetedAmount,
					RolloverAmount: carry,
				}
				if err := tx.Create(&nextRow).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			default:
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			carried++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return carried, nil
}
