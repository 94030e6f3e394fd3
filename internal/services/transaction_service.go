package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"bolso/internal/derive"
	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// signedAmount normalizes a magnitude to the ledger's sign convention:
// expenses are negative, income is positive. Entry points hand us a
// positive magnitude; downstream code relies on the sign matching the type.
func signedAmount(transactionType models.TransactionType, amount int64) (int64, error) {
	if amount < 0 {
		amount = -amount
	}
	switch transactionType {
	case models.TransactionTypeExpense:
		return -amount, nil
	case models.TransactionTypeIncome:
		return amount, nil
	default:
		return 0, apperrors.ErrInvalidTransactionType
	}
}

// CreateTransaction records an income or expense against an account and
// updates the account balance in the same database transaction.
func (s *transactionService) CreateTransaction(
	userID, accountID string,
	categoryID *string,
	transactionType models.TransactionType,
	amount int64,
	description string,
	date time.Time,
	cleared bool,
	notes string,
) (*models.Transaction, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be zero")
	}
	if date.IsZero() {
		date = time.Now()
	}

	signed, err := signedAmount(transactionType, amount)
	if err != nil {
		return nil, err
	}

	account, err := s.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   account.ID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      signed,
		Description: description,
		Date:        date,
		Cleared:     cleared,
		Notes:       notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyToBalance(tx, account, signed)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// CreateTransfer moves money between two of the user's accounts.
func (s *transactionService) CreateTransfer(
	userID, fromAccountID, toAccountID string,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if date.IsZero() {
		date = time.Now()
	}

	from, err := s.accountService.GetAccountByID(userID, fromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.accountService.GetAccountByID(userID, toAccountID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   from.ID,
		ToAccountID: &to.ID,
		Type:        models.TransactionTypeTransfer,
		Amount:      -amount,
		Description: description,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.accountService.ApplyToBalance(tx, from, -amount); err != nil {
			return err
		}
		return s.accountService.ApplyToBalance(tx, to, amount)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's transactions.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountTransactions retrieves a paginated, filtered list for one account.
func (s *transactionService) GetAccountTransactions(userID, accountID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}

	filter.AccountID = &accountID
	return s.GetUserTransactions(userID, page, filter)
}

// GetMonthTransactions returns every transaction within the calendar month,
// unpaginated, for the derivation engine.
func (s *transactionService) GetMonthTransactions(userID string, month time.Time) ([]models.Transaction, error) {
	first, next := derive.MonthBounds(month)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, first, next).
		Order("date").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetLedgerHistory returns the user's full income/expense history in date
// order, as consumed by the age-of-money calculation.
func (s *transactionService) GetLedgerHistory(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND type IN ?", userID,
		[]models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense}).
		Order("date").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID if it belongs to the user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// SetCleared toggles the cleared flag on a transaction.
func (s *transactionService) SetCleared(userID, transactionID string, cleared bool) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(transaction).Update("cleared", cleared).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.Cleared = cleared
	return transaction, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	account, err := s.accountService.GetAccountByID(userID, transaction.AccountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.accountService.ApplyToBalance(tx, account, -transaction.Amount); err != nil {
			return err
		}
		if transaction.Type == models.TransactionTypeTransfer && transaction.ToAccountID != nil {
			to, err := s.accountService.GetAccountByID(userID, *transaction.ToAccountID)
			if err != nil {
				return err
			}
			if err := s.accountService.ApplyToBalance(tx, to, transaction.Amount); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.MinAmount != nil {
		q = q.Where("ABS(amount) >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("ABS(amount) <= ?", *f.MaxAmount)
	}
	if f.Cleared != nil {
		q = q.Where("cleared = ?", *f.Cleared)
	}
	return q
}
