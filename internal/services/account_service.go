package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account with an optional opening balance in centavos.
func (s *accountService) CreateAccount(userID, name string, kind models.AccountKind, initialBalance int64) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	switch kind {
	case models.AccountKindChecking, models.AccountKindSavings, models.AccountKindCard, models.AccountKindOther:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown account kind")
	}

	account := &models.Account{
		UserID:   userID,
		Name:     name,
		Kind:     kind,
		Balance:  initialBalance,
		IsActive: true,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// GetUserAccounts retrieves a paginated list of accounts for a user.
func (s *accountService) GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetActiveAccounts returns all active accounts for a user, unpaginated.
// The dashboard summary needs the full set to total balances.
func (s *accountService) GetActiveAccounts(userID string) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID retrieves an account by ID if it belongs to the user.
func (s *accountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount renames an account.
func (s *accountService) UpdateAccount(userID, accountID, name string) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		if err := s.db.Model(account).Update("name", name).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// DeactivateAccount marks an account inactive. Inactive accounts keep their
// history but stop counting toward the total balance.
func (s *accountService) DeactivateAccount(userID, accountID string) error {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}

	if err := s.db.Model(account).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ApplyToBalance adjusts the account balance by a signed delta within the
// caller's transaction, keeping the stored balance authoritative.
func (s *accountService) ApplyToBalance(tx *gorm.DB, account *models.Account, delta int64) error {
	account.Balance += delta
	if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
