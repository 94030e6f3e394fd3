package services

import (
	"testing"
	"time"

	"bolso/internal/models"
	"bolso/internal/testutil"
)

var august = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

func TestSetMonthBudget(t *testing.T) {
	t.Run("creates_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 20000)

		budget, err := svc.SetMonthBudget(user.ID, cat.ID, august, 50000)
		testutil.AssertNoError(t, err)

		if budget.BudgetedAmount != 50000 {
			t.Errorf("expected 50000, got %d", budget.BudgetedAmount)
		}
		if !budget.Month.Equal(august) {
			t.Errorf("expected month normalized to %v, got %v", august, budget.Month)
		}
	})

	t.Run("normalizes_mid_month_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 0)

		budget, err := svc.SetMonthBudget(user.ID, cat.ID, august.AddDate(0, 0, 14), 30000)
		testutil.AssertNoError(t, err)
		if !budget.Month.Equal(august) {
			t.Errorf("expected first of month, got %v", budget.Month)
		}
	})

	t.Run("updates_existing_row_preserving_rollover", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 0)
		testutil.CreateTestBudget(t, db, user.ID, cat.ID, august, 40000, 1500)

		budget, err := svc.SetMonthBudget(user.ID, cat.ID, august, 60000)
		testutil.AssertNoError(t, err)

		if budget.BudgetedAmount != 60000 {
			t.Errorf("expected 60000, got %d", budget.BudgetedAmount)
		}
		if budget.RolloverAmount != 1500 {
			t.Errorf("expected rollover preserved at 1500, got %d", budget.RolloverAmount)
		}

		var count int64
		db.Model(&models.Budget{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected a single row after upsert, got %d", count)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetMonthBudget(user.ID, "11111111-1111-1111-1111-111111111111", august, 1000)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 0)

		_, err := svc.SetMonthBudget(user.ID, cat.ID, august, -100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestApplyRollover(t *testing.T) {
	t.Run("carries_unspent_remainder", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 0)
		db.Model(cat).Update("rollover", true)
		testutil.CreateTestBudget(t, db, user.ID, cat.ID, august, 50000, 0)
		testutil.CreateTestTransaction(t, db, user.ID, account.ID, &cat.ID,
			models.TransactionTypeExpense, -30000, august.AddDate(0, 0, 10))

		carried, err := svc.ApplyRollover(user.ID, august)
		testutil.AssertNoError(t, err)
		if carried != 1 {
			t.Fatalf("expected 1 category carried, got %d", carried)
		}

		september := august.AddDate(0, 1, 0)
		rows, err := svc.GetMonthBudgets(user.ID, september)
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 september row, got %d", len(rows))
		}
		if rows[0].RolloverAmount != 20000 {
			t.Errorf("expected rollover 20000, got %d", rows[0].RolloverAmount)
		}
	})

	t.Run("overspent_category_carries_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 10000)
		db.Model(cat).Update("rollover", true)
		testutil.CreateTestTransaction(t, db, user.ID, account.ID, &cat.ID,
			models.TransactionTypeExpense, -15000, august.AddDate(0, 0, 5))

		_, err := svc.ApplyRollover(user.ID, august)
		testutil.AssertNoError(t, err)

		rows, err := svc.GetMonthBudgets(user.ID, august.AddDate(0, 1, 0))
		testutil.AssertNoError(t, err)
		if len(rows) != 1 || rows[0].RolloverAmount != 0 {
			t.Errorf("expected zero rollover, got %+v", rows)
		}
	})

	t.Run("non_rollover_categories_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 10000)

		carried, err := svc.ApplyRollover(user.ID, august)
		testutil.AssertNoError(t, err)
		if carried != 0 {
			t.Errorf("expected 0 carried, got %d", carried)
		}
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	user := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeSpending, 0)
	budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, august, 40000, 0)

	testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

	_, err := svc.GetBudgetByID(user.ID, budget.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}
