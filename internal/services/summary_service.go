package services

import (
	"time"

	"golang.org/x/sync/errgroup"

	"bolso/internal/derive"
	apperrors "bolso/internal/errors"
	"bolso/internal/models"
)

// summaryService assembles snapshots from the store and reduces them with
// the pure derive package. All math lives in derive; this service only
// fetches rows and hands results to the presentation layer.
type summaryService struct {
	accountService     AccountServicer
	categoryService    CategoryServicer
	budgetService      BudgetServicer
	transactionService TransactionServicer
	goalService        GoalServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(
	accountService AccountServicer,
	categoryService CategoryServicer,
	budgetService BudgetServicer,
	transactionService TransactionServicer,
	goalService GoalServicer,
) SummaryServicer {
	return &summaryService{
		accountService:     accountService,
		categoryService:    categoryService,
		budgetService:      budgetService,
		transactionService: transactionService,
		goalService:        goalService,
	}
}

// monthSnapshot is the raw material for one month's derived figures.
type monthSnapshot struct {
	accounts     []models.Account
	categories   []models.Category
	budgets      []models.Budget
	transactions []models.Transaction
}

// fetchMonthSnapshot loads the four row sets concurrently. The derivation
// itself stays single-threaded and pure; only the I/O fans out.
func (s *summaryService) fetchMonthSnapshot(userID string, month time.Time) (*monthSnapshot, error) {
	var snap monthSnapshot
	var g errgroup.Group

	g.Go(func() error {
		accounts, err := s.accountService.GetActiveAccounts(userID)
		snap.accounts = accounts
		return err
	})
	g.Go(func() error {
		categories, err := s.categoryService.GetUserCategories(userID, false)
		snap.categories = categories
		return err
	})
	g.Go(func() error {
		budgets, err := s.budgetService.GetMonthBudgets(userID, month)
		snap.budgets = budgets
		return err
	})
	g.Go(func() error {
		transactions, err := s.transactionService.GetMonthTransactions(userID, month)
		snap.transactions = transactions
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetBudgetSummary computes the month's budget aggregates.
func (s *summaryService) GetBudgetSummary(userID string, month time.Time) (*derive.BudgetSummary, error) {
	snap, err := s.fetchMonthSnapshot(userID, month)
	if err != nil {
		return nil, err
	}

	summary, err := derive.Summarize(month, snap.accounts, snap.categories, snap.budgets, snap.transactions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &summary, nil
}

// GetSavings classifies the month's savings rate from its income and
// expense totals.
func (s *summaryService) GetSavings(userID string, month time.Time) (*derive.SavingsClassification, error) {
	transactions, err := s.transactionService.GetMonthTransactions(userID, month)
	if err != nil {
		return nil, err
	}

	income, expenses := incomeAndExpenses(transactions)
	classification := derive.ClassifySavings(income, expenses)
	return &classification, nil
}

// GetAgeOfMoney computes the liquidity metric over the full ledger history.
func (s *summaryService) GetAgeOfMoney(userID string) (int, error) {
	history, err := s.transactionService.GetLedgerHistory(userID)
	if err != nil {
		return 0, err
	}
	return derive.AgeOfMoney(history), nil
}

// GetDashboard bundles every derived figure the dashboard shows for a month.
func (s *summaryService) GetDashboard(userID string, month, today time.Time) (*DashboardSummary, error) {
	snap, err := s.fetchMonthSnapshot(userID, month)
	if err != nil {
		return nil, err
	}

	budget, err := derive.Summarize(month, snap.accounts, snap.categories, snap.budgets, snap.transactions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	income, expenses := incomeAndExpenses(snap.transactions)

	goals, err := s.goalService.GetGoalsProgress(userID, today)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Budget:  budget,
		Savings: derive.ClassifySavings(income, expenses),
		Goals:   goals,
	}, nil
}

// incomeAndExpenses totals the month's income and expense magnitudes.
func incomeAndExpenses(transactions []models.Transaction) (income, expenses int64) {
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			if tx.Amount > 0 {
				income += tx.Amount
			} else {
				income -= tx.Amount
			}
		case models.TransactionTypeExpense:
			if tx.Amount < 0 {
				expenses -= tx.Amount
			} else {
				expenses += tx.Amount
			}
		}
	}
	return income, expenses
}
