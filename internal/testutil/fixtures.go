package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bolso/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a checking account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, userID, models.AccountKindChecking, 0)
}

// CreateTestAccountWithBalance creates an account of the given kind with the
// given balance in centavos.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, userID string, kind models.AccountKind, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Kind:     kind,
		Balance:  balance,
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type with the given
// default budgeted amount.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType, budgeted int64) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Category %d", nextID()),
		Type:           categoryType,
		BudgetedAmount: budgeted,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction with a signed amount in
// centavos on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, categoryID *string, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a monthly budget row for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID string, month time.Time, budgeted, rollover int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:         userID,
		CategoryID:     categoryID,
		Month:          month,
		BudgetedAmount: budgeted,
		RolloverAmount: rollover,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates an active save_monthly goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID, categoryID string, target int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		CategoryID:   categoryID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		Type:         models.GoalTypeSaveMonthly,
		TargetAmount: target,
		IsActive:     true,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestInboxItem creates a pending inbox item with a signed amount.
func CreateTestInboxItem(t *testing.T, db *gorm.DB, userID string, amount int64) *models.InboxItem {
	t.Helper()

	item := &models.InboxItem{
		UserID:        userID,
		Description:   fmt.Sprintf("Test Inbox Item %d", nextID()),
		Amount:        amount,
		Date:          time.Now(),
		SourceChannel: "test",
		Status:        models.InboxStatusPending,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test inbox item: %v", err)
	}
	return item
}
