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

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn func(userID, accountID string, categoryID *string, transactionType models.TransactionType, amount int64, description string, date time.Time, cleared bool, notes string) (*models.Transaction, error)
	createTransferFn    func(userID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	getUserTxFn         func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	deleteTransactionFn func(userID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(userID, accountID string, categoryID *string, transactionType models.TransactionType, amount int64, description string, date time.Time, cleared bool, notes string) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, accountID, categoryID, transactionType, amount, description, date, cleared, notes)
	}
	return &models.Transaction{UserID: userID, AccountID: accountID, Type: transactionType, Amount: amount}, nil
}

func (m *mockTransactionService) CreateTransfer(userID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if m.createTransferFn != nil {
		return m.createTransferFn(userID, fromAccountID, toAccountID, amount, description, date)
	}
	return &models.Transaction{UserID: userID, AccountID: fromAccountID, Type: models.TransactionTypeTransfer}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTxFn != nil {
		return m.getUserTxFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetAccountTransactions(_, _ string, _ pagination.PageRequest, _ services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetMonthTransactions(_ string, _ time.Time) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetLedgerHistory(_ string) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionByID(_, transactionID string) (*models.Transaction, error) {
	return &models.Transaction{Base: models.Base{ID: transactionID}}, nil
}

func (m *mockTransactionService) SetCleared(_, transactionID string, cleared bool) (*models.Transaction, error) {
	return &models.Transaction{Base: models.Base{ID: transactionID}, Cleared: cleared}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.POST("/transactions/transfer", handler.CreateTransfer)
	auth.GET("/transactions", handler.GetTransactions)
	auth.GET("/transactions/:id", handler.GetTransaction)
	auth.PATCH("/transactions/:id/cleared", handler.SetCleared)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(userID, accountID string, _ *string, txType models.TransactionType, amount int64, desc string, _ time.Time, _ bool, _ string) (*models.Transaction, error) {
				return &models.Transaction{
					UserID:      userID,
					AccountID:   accountID,
					Type:        txType,
					Amount:      -amount,
					Description: desc,
				}, nil
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testUserID+`","type":"expense","amount":2500,"description":"padaria","date":"2026-08-15"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["amount_formatted"] != "-R$ 25,00" {
			t.Errorf("expected -R$ 25,00, got %v", result["amount_formatted"])
		}
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testUserID+`","type":"expense","amount":0,"description":"x","date":"2026-08-15"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testUserID+`","type":"loan","amount":100,"description":"x","date":"2026-08-15"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"account_id":"`+testUserID+`","type":"expense","amount":100,"description":"x","date":"15-08-2026"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_CreateTransfer(t *testing.T) {
	t.Run("returns 400 on same account", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransferFn: func(_, _, _ string, _ int64, _ string, _ time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrSameAccountTransfer
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions/transfer",
			`{"from_account_id":"`+testUserID+`","to_account_id":"`+testUserID+`","amount":1000,"date":"2026-08-15"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SAME_ACCOUNT_TRANSFER")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		txSvc := &mockTransactionService{
			getUserTxFn: func(_ string, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?type=expense&cleared=true&from_date=2026-08-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense {
			t.Error("expected expense type filter")
		}
		if gotFilter.Cleared == nil || !*gotFilter.Cleared {
			t.Error("expected cleared filter")
		}
		if gotFilter.FromDate == nil {
			t.Error("expected from_date filter")
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 404 when not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(_, _ string) error { return apperrors.ErrTransactionNotFound },
		}
		handler := NewTransactionHandler(txSvc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/transactions/"+testUserID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
