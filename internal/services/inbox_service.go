package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/pagination"
)

// inboxService handles the lifecycle of candidate transactions.
type inboxService struct {
	db                 *gorm.DB
	transactionService TransactionServicer
}

// NewInboxService creates a new InboxServicer.
func NewInboxService(db *gorm.DB, transactionService TransactionServicer) InboxServicer {
	return &inboxService{
		db:                 db,
		transactionService: transactionService,
	}
}

// Ingest records a candidate transaction from an external channel.
// The amount is signed: negative for expenses, positive for income.
func (s *inboxService) Ingest(
	userID, description string,
	amount int64,
	date time.Time,
	sourceChannel string,
	suggestedCategoryID *string,
) (*models.InboxItem, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be zero")
	}
	if date.IsZero() {
		date = time.Now()
	}

	if suggestedCategoryID != nil {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *suggestedCategoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	item := &models.InboxItem{
		UserID:              userID,
		Description:         description,
		Amount:              amount,
		Date:                date,
		SourceChannel:       sourceChannel,
		SuggestedCategoryID: suggestedCategoryID,
		Status:              models.InboxStatusPending,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetPending returns the user's pending inbox items, newest first.
func (s *inboxService) GetPending(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.InboxItem], error) {
	page.Defaults()

	base := s.db.Model(&models.InboxItem{}).
		Where("user_id = ? AND status = ?", userID, models.InboxStatusPending)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.InboxItem
	if err := base.Preload("SuggestedCategory").Scopes(pagination.Paginate(page)).
		Order("date DESC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetItemByID retrieves an inbox item by ID if it belongs to the user.
func (s *inboxService) GetItemByID(userID, itemID string) (*models.InboxItem, error) {
	var item models.InboxItem
	if err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInboxItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// Confirm turns a pending inbox item into a ledger Transaction against the
// chosen account. An explicit category overrides the suggestion. The item can
// only be settled once.
func (s *inboxService) Confirm(userID, itemID, accountID string, categoryID *string) (*models.Transaction, error) {
	item, err := s.GetItemByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != models.InboxStatusPending {
		return nil, apperrors.ErrInboxItemSettled
	}

	if categoryID == nil {
		categoryID = item.SuggestedCategoryID
	}

	transactionType := models.TransactionTypeExpense
	if item.Amount > 0 {
		transactionType = models.TransactionTypeIncome
	}

	transaction, err := s.transactionService.CreateTransaction(
		userID, accountID, categoryID, transactionType,
		item.Amount, item.Description, item.Date, false, "via "+item.SourceChannel,
	)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(item).Update("status", models.InboxStatusConfirmed).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// Reject discards a pending inbox item.
func (s *inboxService) Reject(userID, itemID string) error {
	item, err := s.GetItemByID(userID, itemID)
	if err != nil {
		return err
	}
	if item.Status != models.InboxStatusPending {
		return apperrors.ErrInboxItemSettled
	}

	if err := s.db.Model(item).Update("status", models.InboxStatusRejected).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
