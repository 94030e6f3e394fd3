package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bolso/internal/errors"
	"bolso/internal/services"
)

// BudgetHandler handles monthly budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetBudgetRequest represents the request payload for setting a month budget.
type SetBudgetRequest struct {
	CategoryID     string `json:"category_id" binding:"required,uuid"`
	Month          string `json:"month" binding:"required,month"`
	BudgetedAmount int64  `json:"budgeted_amount" binding:"gte=0"`
}

// ApplyRolloverRequest represents the request payload for rolling a month over.
type ApplyRolloverRequest struct {
	Month string `json:"month" binding:"required,month"`
}

// SetBudget creates or updates the budget row for a category and month
// @Summary     Set a month budget
// @Description Create or update the budgeted amount for a category in a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetBudgetRequest true "Budget data"
// @Success     200 {object} models.Budget "Budget row"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /budgets [put]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month, expected YYYY-MM"))
		return
	}

	budget, err := h.budgetService.SetMonthBudget(userID, req.CategoryID, month, req.BudgetedAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "set", "budget", budget.ID, c.ClientIP(), map[string]interface{}{
		"category_id": req.CategoryID,
		"month":       req.Month,
		"amount":      req.BudgetedAmount,
	})

	c.JSON(http.StatusOK, budget)
}

// GetBudgets lists the budget rows for a month
// @Summary     List month budgets
// @Description Get the budget rows for a month (defaults to the current month)
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month in YYYY-MM format"
// @Success     200 {array} models.Budget "Budget rows"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetMonthBudgets(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// ApplyRollover carries unspent amounts into the next month
// @Summary     Apply rollover
// @Description Carry each rollover category's unspent remainder into the next month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ApplyRolloverRequest true "Month to roll over"
// @Success     200 {object} map[string]int "Number of categories carried"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets/rollover [post]
func (h *BudgetHandler) ApplyRollover(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ApplyRolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month, expected YYYY-MM"))
		return
	}

	carried, err := h.budgetService.ApplyRollover(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "rollover", "budget", req.Month, c.ClientIP(), map[string]interface{}{
		"carried": carried,
	})

	c.JSON(http.StatusOK, gin.H{"carried": carried})
}

// DeleteBudget removes a budget row
// @Summary     Delete a budget row
// @Description Delete a month budget row; the category default applies again
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     204 "Budget deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "budget", budgetID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
