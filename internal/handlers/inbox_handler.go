package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bolso/internal/errors"
	"bolso/internal/pagination"
	"bolso/internal/services"
)

// InboxHandler handles the candidate-transaction inbox.
type InboxHandler struct {
	inboxService services.InboxServicer
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewInboxHandler creates a new InboxHandler.
func NewInboxHandler(inboxService services.InboxServicer, userService services.UserServicer, auditService services.AuditServicer) *InboxHandler {
	return &InboxHandler{inboxService: inboxService, userService: userService, auditService: auditService}
}

// IngestRequest represents a candidate transaction posted by a bridge.
// The bridge identifies the user by email; amount is signed centavos
// (negative for expenses).
type IngestRequest struct {
	UserEmail           string  `json:"user_email" binding:"required,email"`
	Description         string  `json:"description" binding:"required,min=1,max=255"`
	Amount              int64   `json:"amount" binding:"required"`
	Date                string  `json:"date" binding:"required"`
	SourceChannel       string  `json:"source_channel" binding:"required,min=1,max=50"`
	SuggestedCategoryID *string `json:"suggested_category_id" binding:"omitempty,uuid"`
}

// ConfirmRequest represents the request payload for confirming an inbox item.
type ConfirmRequest struct {
	AccountID  string  `json:"account_id" binding:"required,uuid"`
	CategoryID *string `json:"category_id" binding:"omitempty,uuid"`
}

// Ingest accepts a candidate transaction from an external bridge
// @Summary     Ingest a candidate transaction
// @Description Accept a candidate transaction from a WhatsApp or email bridge
// @Tags        inbox
// @Accept      json
// @Produce     json
// @Param       request body IngestRequest true "Candidate transaction"
// @Success     201 {object} models.InboxItem "Item queued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /ingest/transactions [post]
func (h *InboxHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByEmail(req.UserEmail)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.inboxService.Ingest(user.ID, req.Description, req.Amount, date,
		req.SourceChannel, req.SuggestedCategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "ingest", "inbox_item", item.ID, c.ClientIP(), map[string]interface{}{
		"source": req.SourceChannel,
	})

	c.JSON(http.StatusCreated, item)
}

// GetPending lists the user's pending inbox items
// @Summary     List pending inbox items
// @Description Get the user's pending candidate transactions, newest first
// @Tags        inbox
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.InboxItem] "Pending items"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /inbox [get]
func (h *InboxHandler) GetPending(c *gin.Context) {
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

	result, err := h.inboxService.GetPending(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Confirm turns a pending inbox item into a ledger transaction
// @Summary     Confirm an inbox item
// @Description Confirm a pending item, creating a transaction against an account
// @Tags        inbox
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Inbox item ID"
// @Param       request body ConfirmRequest true "Target account and optional category"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     409 {object} ErrorResponse "Item already settled"
// @Router      /inbox/{id}/confirm [post]
func (h *InboxHandler) Confirm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.inboxService.Confirm(userID, itemID, req.AccountID, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "confirm", "inbox_item", itemID, c.ClientIP(), map[string]interface{}{
		"transaction_id": tx.ID,
	})

	c.JSON(http.StatusCreated, transactionResponse(tx))
}

// Reject discards a pending inbox item
// @Summary     Reject an inbox item
// @Description Reject a pending candidate transaction without recording it
// @Tags        inbox
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Inbox item ID"
// @Success     204 "Item rejected"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     409 {object} ErrorResponse "Item already settled"
// @Router      /inbox/{id}/reject [post]
func (h *InboxHandler) Reject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.inboxService.Reject(userID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "reject", "inbox_item", itemID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
