package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/pagination"
	"bolso/internal/services"
)

// --- mock inbox service ---

type mockInboxService struct {
	ingestFn     func(userID, description string, amount int64, date time.Time, sourceChannel string, suggestedCategoryID *string) (*models.InboxItem, error)
	getPendingFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.InboxItem], error)
	confirmFn    func(userID, itemID, accountID string, categoryID *string) (*models.Transaction, error)
	rejectFn     func(userID, itemID string) error
}

func (m *mockInboxService) Ingest(userID, description string, amount int64, date time.Time, sourceChannel string, suggestedCategoryID *string) (*models.InboxItem, error) {
	if m.ingestFn != nil {
		return m.ingestFn(userID, description, amount, date, sourceChannel, suggestedCategoryID)
	}
	return &models.InboxItem{UserID: userID, Description: description, Amount: amount, Status: models.InboxStatusPending}, nil
}

func (m *mockInboxService) GetPending(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.InboxItem], error) {
	if m.getPendingFn != nil {
		return m.getPendingFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.InboxItem{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockInboxService) GetItemByID(_, _ string) (*models.InboxItem, error) {
	return &models.InboxItem{}, nil
}

func (m *mockInboxService) Confirm(userID, itemID, accountID string, categoryID *string) (*models.Transaction, error) {
	if m.confirmFn != nil {
		return m.confirmFn(userID, itemID, accountID, categoryID)
	}
	return &models.Transaction{UserID: userID, AccountID: accountID}, nil
}

func (m *mockInboxService) Reject(userID, itemID string) error {
	if m.rejectFn != nil {
		return m.rejectFn(userID, itemID)
	}
	return nil
}

var _ services.InboxServicer = (*mockInboxService)(nil)

func setupInboxRouter(handler *InboxHandler) *gin.Engine {
	r := gin.New()
	r.POST("/ingest/transactions", handler.Ingest)
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/inbox", handler.GetPending)
	auth.POST("/inbox/:id/confirm", handler.Confirm)
	auth.POST("/inbox/:id/reject", handler.Reject)
	return r
}

func TestInboxHandler_Ingest(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		handler := NewInboxHandler(&mockInboxService{}, &mockUserService{}, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/ingest/transactions",
			`{"user_email":"maria@example.com","description":"uber","amount":-3500,"date":"2026-08-15","source_channel":"whatsapp"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 on unknown email", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewInboxHandler(&mockInboxService{}, userSvc, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/ingest/transactions",
			`{"user_email":"nobody@example.com","description":"uber","amount":-3500,"date":"2026-08-15","source_channel":"whatsapp"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewInboxHandler(&mockInboxService{}, &mockUserService{}, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/ingest/transactions", `{"description":"uber"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewInboxHandler(&mockInboxService{}, &mockUserService{}, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/ingest/transactions",
			`{"user_email":"maria@example.com","description":"uber","amount":-3500,"date":"15/08/2026","source_channel":"whatsapp"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInboxHandler_Confirm(t *testing.T) {
	t.Run("returns 201 with the created transaction", func(t *testing.T) {
		inboxSvc := &mockInboxService{
			confirmFn: func(userID, itemID, accountID string, _ *string) (*models.Transaction, error) {
				return &models.Transaction{
					Base:      models.Base{ID: itemID},
					UserID:    userID,
					AccountID: accountID,
					Type:      models.TransactionTypeExpense,
					Amount:    -3500,
				}, nil
			},
		}
		handler := NewInboxHandler(inboxSvc, &mockUserService{}, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/inbox/"+testUserID+"/confirm",
			`{"account_id":"`+testUserID+`"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["amount"] != float64(-3500) {
			t.Errorf("expected amount -3500, got %v", result["amount"])
		}
	})

	t.Run("returns 409 when already settled", func(t *testing.T) {
		inboxSvc := &mockInboxService{
			confirmFn: func(_, _, _ string, _ *string) (*models.Transaction, error) {
				return nil, apperrors.ErrInboxItemSettled
			},
		}
		handler := NewInboxHandler(inboxSvc, &mockUserService{}, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/inbox/"+testUserID+"/confirm",
			`{"account_id":"`+testUserID+`"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INBOX_ITEM_SETTLED")
	})
}

func TestInboxHandler_Reject(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		handler := NewInboxHandler(&mockInboxService{}, &mockUserService{}, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/inbox/"+testUserID+"/reject", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown item", func(t *testing.T) {
		inboxSvc := &mockInboxService{
			rejectFn: func(_, _ string) error { return apperrors.ErrInboxItemNotFound },
		}
		handler := NewInboxHandler(inboxSvc, &mockUserService{}, &mockAuditService{})
		r := setupInboxRouter(handler)

		rec := doRequest(r, "POST", "/inbox/"+testUserID+"/reject", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
