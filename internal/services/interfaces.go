package services

import (
	"time"

	"gorm.io/gorm"

	"bolso/internal/derive"
	"bolso/internal/models"
	"bolso/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string, kind models.AccountKind, initialBalance int64) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetActiveAccounts(userID string) ([]models.Account, error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID, name string) (*models.Account, error)
	DeactivateAccount(userID, accountID string) error
	// ApplyToBalance adjusts an account balance by a signed centavo delta
	// inside the caller's database transaction.
	ApplyToBalance(tx *gorm.DB, account *models.Account, delta int64) error
}

// CategoryServicer defines the contract for category and group business logic.
type CategoryServicer interface {
	CreateGroup(userID, name string, sortOrder int) (*models.CategoryGroup, error)
	GetUserGroups(userID string) ([]models.CategoryGroup, error)
	DeleteGroup(userID, groupID string) error

	CreateCategory(userID, name string, categoryType models.CategoryType, groupID *string, budgetedAmount int64, rollover bool, color, icon string, sortOrder int) (*models.Category, error)
	GetUserCategories(userID string, includeHidden bool) ([]models.Category, error)
	GetUserCategoriesByType(userID string, categoryType models.CategoryType) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, name string, budgetedAmount *int64, rollover *bool, color, icon string, groupID *string, hidden *bool) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// BudgetServicer defines the contract for monthly budget rows.
type BudgetServicer interface {
	SetMonthBudget(userID, categoryID string, month time.Time, budgetedAmount int64) (*models.Budget, error)
	GetMonthBudgets(userID string, month time.Time) ([]models.Budget, error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	// ApplyRollover materializes next-month rollover amounts for every
	// rollover-flagged category, carrying forward the unspent remainder of
	// the given month. Returns the number of categories carried forward.
	ApplyRollover(userID string, month time.Time) (int, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	MinAmount  *int64
	MaxAmount  *int64
	AccountID  *string
	Cleared    *bool
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, accountID string, categoryID *string, transactionType models.TransactionType, amount int64, description string, date time.Time, cleared bool, notes string) (*models.Transaction, error)
	CreateTransfer(userID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetAccountTransactions(userID, accountID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetMonthTransactions(userID string, month time.Time) ([]models.Transaction, error)
	GetLedgerHistory(userID string) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	SetCleared(userID, transactionID string, cleared bool) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// InboxServicer defines the lifecycle of candidate transactions awaiting
// user approval.
type InboxServicer interface {
	Ingest(userID, description string, amount int64, date time.Time, sourceChannel string, suggestedCategoryID *string) (*models.InboxItem, error)
	GetPending(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.InboxItem], error)
	GetItemByID(userID, itemID string) (*models.InboxItem, error)
	// Confirm turns a pending item into a ledger Transaction against the
	// given account, updating the account balance atomically.
	Confirm(userID, itemID, accountID string, categoryID *string) (*models.Transaction, error)
	Reject(userID, itemID string) error
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID, categoryID, name, description string, goalType models.GoalType, targetAmount, initialAmount int64, dueDate *time.Time, cadence *models.GoalCadence, monthlyContribution int64, color string) (*models.Goal, error)
	GetUserGoals(userID string, activeOnly bool) ([]models.Goal, error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, name, description string, targetAmount, monthlyContribution *int64, dueDate *time.Time, note, color string) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
	AddContribution(userID, goalID string, amount int64, date time.Time, note string) (*models.GoalContribution, error)
	GetContributions(userID, goalID string) ([]models.GoalContribution, error)
	GetGoalProgress(userID, goalID string, today time.Time) (*derive.GoalProgress, error)
	GetGoalsProgress(userID string, today time.Time) ([]derive.GoalProgress, error)
}

// DashboardSummary bundles every derived figure the dashboard renders for a
// month. The presentation layer renders these values and never recomputes
// them independently.
type DashboardSummary struct {
	Budget  derive.BudgetSummary         `json:"budget"`
	Savings derive.SavingsClassification `json:"savings"`
	Goals   []derive.GoalProgress        `json:"goals"`
}

// SummaryServicer assembles snapshots from the store and reduces them with
// the derive package.
type SummaryServicer interface {
	GetDashboard(userID string, month, today time.Time) (*DashboardSummary, error)
	GetBudgetSummary(userID string, month time.Time) (*derive.BudgetSummary, error)
	GetSavings(userID string, month time.Time) (*derive.SavingsClassification, error)
	GetAgeOfMoney(userID string) (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
