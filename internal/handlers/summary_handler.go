package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bolso/internal/currency"
	"bolso/internal/services"
)

// SummaryHandler exposes the derived dashboard figures.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetDashboard returns the full dashboard for a month
// @Summary     Get dashboard
// @Description Get the derived budget, savings, and goal figures for a month
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month in YYYY-MM format"
// @Success     200 {object} services.DashboardSummary "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/dashboard [get]
func (h *SummaryHandler) GetDashboard(c *gin.Context) {
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

	dashboard, err := h.summaryService.GetDashboard(userID, month, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetBudgetSummary returns the month's budget aggregation
// @Summary     Get budget summary
// @Description Get per-category budget progress and month totals
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month in YYYY-MM format"
// @Success     200 {object} derive.BudgetSummary "Budget summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/budget [get]
func (h *SummaryHandler) GetBudgetSummary(c *gin.Context) {
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

	summary, err := h.summaryService.GetBudgetSummary(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetSavings returns the month's savings classification
// @Summary     Get savings classification
// @Description Get the month's savings rate, band, and recommendation
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month in YYYY-MM format"
// @Success     200 {object} derive.SavingsClassification "Savings classification"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/savings [get]
func (h *SummaryHandler) GetSavings(c *gin.Context) {
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

	savings, err := h.summaryService.GetSavings(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"income":              savings.Income,
		"income_formatted":    currency.FormatCents(savings.Income),
		"expenses":            savings.Expenses,
		"expenses_formatted":  currency.FormatCents(savings.Expenses),
		"available":           savings.Available,
		"available_formatted": currency.FormatCents(savings.Available),
		"savings_percentage":  savings.SavingsPercentage,
		"band":                savings.Band,
		"recommendation":      savings.Recommendation,
	})
}

// GetAgeOfMoney returns the age-of-money figure
// @Summary     Get age of money
// @Description Get the average age in days of the money spent recently
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int "Age of money in days"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/age-of-money [get]
func (h *SummaryHandler) GetAgeOfMoney(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	age, err := h.summaryService.GetAgeOfMoney(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"age_of_money_days": age})
}
