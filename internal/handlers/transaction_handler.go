package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bolso/internal/currency"
	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/pagination"
	"bolso/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount is a positive magnitude in centavos; the type determines the sign.
type CreateTransactionRequest struct {
	AccountID   string  `json:"account_id" binding:"required,uuid"`
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
	Type        string  `json:"type" binding:"required,transaction_type"`
	Amount      int64   `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Date        string  `json:"date" binding:"required"`
	Cleared     bool    `json:"cleared"`
	Notes       string  `json:"notes" binding:"max=1000"`
}

// CreateTransferRequest represents the request payload for a transfer between accounts.
type CreateTransferRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,uuid"`
	ToAccountID   string `json:"to_account_id" binding:"required,uuid"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Description   string `json:"description" binding:"max=255"`
	Date          string `json:"date" binding:"required"`
}

// SetClearedRequest represents the request payload for marking a transaction cleared.
type SetClearedRequest struct {
	Cleared *bool `json:"cleared" binding:"required"`
}

// TransactionResponse represents a transaction in the response.
type TransactionResponse struct {
	ID              string                 `json:"id"`
	AccountID       string                 `json:"account_id"`
	CategoryID      *string                `json:"category_id,omitempty"`
	Type            models.TransactionType `json:"type"`
	Amount          int64                  `json:"amount"`
	AmountFormatted string                 `json:"amount_formatted"`
	Description     string                 `json:"description"`
	Date            time.Time              `json:"date"`
	Cleared         bool                   `json:"cleared"`
	Notes           string                 `json:"notes,omitempty"`
}

func transactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		AccountID:       t.AccountID,
		CategoryID:      t.CategoryID,
		Type:            t.Type,
		Amount:          t.Amount,
		AmountFormatted: currency.FormatCents(t.Amount),
		Description:     t.Description,
		Date:            t.Date,
		Cleared:         t.Cleared,
		Notes:           t.Notes,
	}
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD")
	}
	return date, nil
}

// bindFilter reads the optional transaction filter query parameters.
func bindFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if raw := c.Query("from_date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &date
	}
	if raw := c.Query("to_date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &date
	}
	if raw := c.Query("type"); raw != "" {
		t := models.TransactionType(raw)
		filter.Type = &t
	}
	if raw := c.Query("category_id"); raw != "" {
		filter.CategoryID = &raw
	}
	if raw := c.Query("cleared"); raw != "" {
		cleared := raw == "true"
		filter.Cleared = &cleared
	}

	return filter, nil
}

// CreateTransaction records an income or expense
// @Summary     Create a transaction
// @Description Record an income or expense against one of the user's accounts
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction data"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(userID, req.AccountID, req.CategoryID,
		models.TransactionType(req.Type), req.Amount, req.Description, date, req.Cleared, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "transaction", tx.ID, c.ClientIP(), map[string]interface{}{
		"type":   tx.Type,
		"amount": tx.Amount,
	})

	c.JSON(http.StatusCreated, transactionResponse(tx))
}

// CreateTransfer moves money between two of the user's accounts
// @Summary     Create a transfer
// @Description Move money between two of the user's accounts
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransferRequest true "Transfer data"
// @Success     201 {object} TransactionResponse "Transfer created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /transactions/transfer [post]
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.CreateTransfer(userID, req.FromAccountID, req.ToAccountID,
		req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "transfer", "transaction", tx.ID, c.ClientIP(), map[string]interface{}{
		"amount": req.Amount,
	})

	c.JSON(http.StatusCreated, transactionResponse(tx))
}

// GetTransactions lists the user's transactions
// @Summary     List transactions
// @Description Get a paginated, filterable list of the user's transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       from_date query string false "Start date (YYYY-MM-DD)"
// @Param       to_date query string false "End date (YYYY-MM-DD)"
// @Param       type query string false "Transaction type"
// @Param       category_id query string false "Category ID"
// @Param       cleared query bool false "Cleared flag"
// @Success     200 {object} pagination.PageResponse[TransactionResponse] "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
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

	filter, err := bindFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]TransactionResponse, len(result.Data))
	for i := range result.Data {
		responses[i] = transactionResponse(&result.Data[i])
	}

	c.JSON(http.StatusOK, pagination.PageResponse[TransactionResponse]{
		Data:       responses,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

// GetTransaction fetches a single transaction
// @Summary     Get a transaction
// @Description Get one of the user's transactions by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionResponse(tx))
}

// SetCleared marks a transaction cleared or uncleared
// @Summary     Set cleared flag
// @Description Mark one of the user's transactions as cleared or uncleared
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body SetClearedRequest true "Cleared flag"
// @Success     200 {object} TransactionResponse "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/cleared [patch]
func (h *TransactionHandler) SetCleared(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetClearedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.transactionService.SetCleared(userID, transactionID, *req.Cleared)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionResponse(tx))
}

// DeleteTransaction removes a transaction, reversing its balance effect
// @Summary     Delete a transaction
// @Description Delete one of the user's transactions and reverse its balance effect
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "transaction", transactionID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
