package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	CategoryID          string  `json:"category_id" binding:"required,uuid"`
	Name                string  `json:"name" binding:"required,min=1,max=100"`
	Description         string  `json:"description" binding:"max=500"`
	Type                string  `json:"type" binding:"required,goal_type"`
	TargetAmount        int64   `json:"target_amount" binding:"required,gt=0"`
	InitialAmount       int64   `json:"initial_amount" binding:"gte=0"`
	DueDate             *string `json:"due_date"`
	Cadence             *string `json:"cadence" binding:"omitempty,goal_cadence"`
	MonthlyContribution int64   `json:"monthly_contribution" binding:"gte=0"`
	Color               string  `json:"color" binding:"omitempty,hex_color"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
type UpdateGoalRequest struct {
	Name                string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description         string  `json:"description" binding:"max=500"`
	TargetAmount        *int64  `json:"target_amount" binding:"omitempty,gt=0"`
	MonthlyContribution *int64  `json:"monthly_contribution" binding:"omitempty,gte=0"`
	DueDate             *string `json:"due_date"`
	Color               string  `json:"color" binding:"omitempty,hex_color"`
}

// AddContributionRequest represents the request payload for a goal contribution.
// Amount is signed centavos; withdrawals are negative.
type AddContributionRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Note   string `json:"note" binding:"max=255"`
}

// CreateGoal creates a goal
// @Summary     Create a goal
// @Description Create a savings or spending goal linked to a category
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal data"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := parseDate(*req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		dueDate = &parsed
	}

	var cadence *models.GoalCadence
	if req.Cadence != nil {
		cad := models.GoalCadence(*req.Cadence)
		cadence = &cad
	}

	goal, err := h.goalService.CreateGoal(userID, req.CategoryID, req.Name, req.Description,
		models.GoalType(req.Type), req.TargetAmount, req.InitialAmount, dueDate, cadence,
		req.MonthlyContribution, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "goal", goal.ID, c.ClientIP(), map[string]interface{}{
		"name": goal.Name,
		"type": goal.Type,
	})

	c.JSON(http.StatusCreated, goal)
}

// GetGoals lists the user's goals
// @Summary     List goals
// @Description Get the user's goals, optionally only active ones
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       active query bool false "Only active goals"
// @Success     200 {array} models.Goal "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activeOnly := c.Query("active") == "true"

	goals, err := h.goalService.GetUserGoals(userID, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoal fetches a single goal
// @Summary     Get a goal
// @Description Get one of the user's goals by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.Goal "Goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// UpdateGoal updates a goal
// @Summary     Update a goal
// @Description Update fields of one of the user's goals
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Param       request body UpdateGoalRequest true "Goal data"
// @Success     200 {object} models.Goal "Goal updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := parseDate(*req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		dueDate = &parsed
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, req.Name, req.Description,
		req.TargetAmount, req.MonthlyContribution, dueDate, "", req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "goal", goal.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal deactivates a goal
// @Summary     Delete a goal
// @Description Soft-delete one of the user's goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     204 "Goal deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "goal", goalID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// AddContribution records a contribution toward a goal
// @Summary     Add a contribution
// @Description Record a signed contribution toward one of the user's goals
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Param       request body AddContributionRequest true "Contribution data"
// @Success     201 {object} models.GoalContribution "Contribution recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Goal inactive"
// @Router      /goals/{id}/contributions [post]
func (h *GoalHandler) AddContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contribution, err := h.goalService.AddContribution(userID, goalID, req.Amount, date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "contribute", "goal", goalID, c.ClientIP(), map[string]interface{}{
		"amount": req.Amount,
	})

	c.JSON(http.StatusCreated, contribution)
}

// GetContributions lists a goal's contributions
// @Summary     List contributions
// @Description Get the contribution history of one of the user's goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {array} models.GoalContribution "Contributions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/contributions [get]
func (h *GoalHandler) GetContributions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	contributions, err := h.goalService.GetContributions(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contributions": contributions})
}

// GetGoalProgress derives a goal's progress figures
// @Summary     Get goal progress
// @Description Get derived progress, projection, and urgency for one goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} derive.GoalProgress "Goal progress"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [get]
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.goalService.GetGoalProgress(userID, goalID, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
