package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bolso/internal/currency"
	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/pagination"
	"bolso/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
	auditService   services.AuditServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, auditService services.AuditServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, auditService: auditService}
}

// CreateAccountRequest represents the request payload for creating an account
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Kind           string `json:"kind" binding:"required,account_kind"`
	InitialBalance int64  `json:"initial_balance"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AccountResponse represents an account in the response
type AccountResponse struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Kind             models.AccountKind `json:"kind"`
	Balance          int64              `json:"balance"`
	BalanceFormatted string             `json:"balance_formatted"`
	IsActive         bool               `json:"is_active"`
}

func accountResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Kind:             a.Kind,
		Balance:          a.Balance,
		BalanceFormatted: currency.FormatCents(a.Balance),
		IsActive:         a.IsActive,
	}
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Description Create a new account for the authenticated user
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account data"
// @Success     201 {object} AccountResponse "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(userID, req.Name, models.AccountKind(req.Kind), req.InitialBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "account", account.ID, c.ClientIP(), map[string]interface{}{
		"name": account.Name,
		"kind": account.Kind,
	})

	c.JSON(http.StatusCreated, accountResponse(account))
}

// GetAccounts lists the user's accounts
// @Summary     List accounts
// @Description Get a paginated list of the authenticated user's accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[AccountResponse] "Accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /accounts [get]
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.accountService.GetUserAccounts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]AccountResponse, len(result.Data))
	for i := range result.Data {
		responses[i] = accountResponse(&result.Data[i])
	}

	c.JSON(http.StatusOK, pagination.PageResponse[AccountResponse]{
		Data:       responses,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

// GetAccount fetches a single account
// @Summary     Get an account
// @Description Get one of the authenticated user's accounts by ID
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} AccountResponse "Account"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, accountResponse(account))
}

// UpdateAccount renames an account
// @Summary     Update an account
// @Description Rename one of the authenticated user's accounts
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Param       request body UpdateAccountRequest true "Account data"
// @Success     200 {object} AccountResponse "Account updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "account", account.ID, c.ClientIP(), map[string]interface{}{
		"name": account.Name,
	})

	c.JSON(http.StatusOK, accountResponse(account))
}

// DeactivateAccount hides an account from listings and balances
// @Summary     Deactivate an account
// @Description Deactivate one of the authenticated user's accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     204 "Account deactivated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /accounts/{id} [delete]
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeactivateAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "deactivate", "account", accountID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
