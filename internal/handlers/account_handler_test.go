package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/pagination"
	"bolso/internal/services"
)

// --- mock account service ---

type mockAccountService struct {
	createAccountFn   func(userID, name string, kind models.AccountKind, initialBalance int64) (*models.Account, error)
	getUserAccountsFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	getAccountByIDFn  func(userID, accountID string) (*models.Account, error)
}

func (m *mockAccountService) CreateAccount(userID, name string, kind models.AccountKind, initialBalance int64) (*models.Account, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(userID, name, kind, initialBalance)
	}
	return &models.Account{UserID: userID, Name: name, Kind: kind, Balance: initialBalance, IsActive: true}, nil
}

func (m *mockAccountService) GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	if m.getUserAccountsFn != nil {
		return m.getUserAccountsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Account{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockAccountService) GetActiveAccounts(_ string) ([]models.Account, error) {
	return []models.Account{}, nil
}

func (m *mockAccountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(userID, accountID)
	}
	return &models.Account{Base: models.Base{ID: accountID}, UserID: userID}, nil
}

func (m *mockAccountService) UpdateAccount(userID, accountID, name string) (*models.Account, error) {
	return &models.Account{Base: models.Base{ID: accountID}, UserID: userID, Name: name}, nil
}

func (m *mockAccountService) DeactivateAccount(_, _ string) error { return nil }

func (m *mockAccountService) ApplyToBalance(_ *gorm.DB, _ *models.Account, _ int64) error {
	return nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/accounts", handler.CreateAccount)
	auth.GET("/accounts", handler.GetAccounts)
	auth.GET("/accounts/:id", handler.GetAccount)
	auth.PUT("/accounts/:id", handler.UpdateAccount)
	auth.DELETE("/accounts/:id", handler.DeactivateAccount)
	return r
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("returns 201 with formatted balance", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockAuditService{})
		r := setupAccountRouter(handler)

		rec := doRequest(r, "POST", "/accounts",
			`{"name":"Nubank","kind":"checking","initial_balance":150000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["balance_formatted"] != "R$ 1.500,00" {
			t.Errorf("expected R$ 1.500,00, got %v", result["balance_formatted"])
		}
	})

	t.Run("returns 400 on unknown kind", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockAuditService{})
		r := setupAccountRouter(handler)

		rec := doRequest(r, "POST", "/accounts", `{"name":"Cofre","kind":"vault"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockAuditService{})
		r := setupAccountRouter(handler)

		rec := doRequest(r, "POST", "/accounts", `{"kind":"checking"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/accounts", handler.CreateAccount)

		rec := doRequest(r, "POST", "/accounts", `{"name":"Nubank","kind":"checking"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_GetAccount(t *testing.T) {
	t.Run("returns 404 when not found", func(t *testing.T) {
		acctSvc := &mockAccountService{
			getAccountByIDFn: func(_, _ string) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		handler := NewAccountHandler(acctSvc, &mockAuditService{})
		r := setupAccountRouter(handler)

		rec := doRequest(r, "GET", "/accounts/"+testUserID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_NOT_FOUND")
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		handler := NewAccountHandler(&mockAccountService{}, &mockAuditService{})
		r := setupAccountRouter(handler)

		rec := doRequest(r, "GET", "/accounts/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAccountHandler_DeactivateAccount(t *testing.T) {
	handler := NewAccountHandler(&mockAccountService{}, &mockAuditService{})
	r := setupAccountRouter(handler)

	rec := doRequest(r, "DELETE", "/accounts/"+testUserID, "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
