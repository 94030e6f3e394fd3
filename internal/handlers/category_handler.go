package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bolso/internal/errors"
	"bolso/internal/models"
	"bolso/internal/services"
)

// CategoryHandler handles category and category group requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateGroupRequest represents the request payload for creating a group.
type CreateGroupRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Type           string  `json:"type" binding:"required,category_type"`
	GroupID        *string `json:"group_id"`
	BudgetedAmount int64   `json:"budgeted_amount" binding:"gte=0"`
	Rollover       bool    `json:"rollover"`
	Color          string  `json:"color" binding:"omitempty,hex_color"`
	Icon           string  `json:"icon" binding:"max=50"`
	SortOrder      int     `json:"sort_order"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
type UpdateCategoryRequest struct {
	Name           string  `json:"name" binding:"omitempty,min=1,max=100"`
	BudgetedAmount *int64  `json:"budgeted_amount" binding:"omitempty,gte=0"`
	Rollover       *bool   `json:"rollover"`
	Color          string  `json:"color" binding:"omitempty,hex_color"`
	Icon           string  `json:"icon" binding:"max=50"`
	GroupID        *string `json:"group_id"`
	Hidden         *bool   `json:"hidden"`
}

// CreateGroup creates a category group
// @Summary     Create a category group
// @Description Create a new category group for organizing budget categories
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGroupRequest true "Group data"
// @Success     201 {object} models.CategoryGroup "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/groups [post]
func (h *CategoryHandler) CreateGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.categoryService.CreateGroup(userID, req.Name, req.SortOrder)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "category_group", group.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, group)
}

// GetGroups lists category groups with their categories
// @Summary     List category groups
// @Description Get the user's category groups, each with its ordered categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.CategoryGroup "Groups"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/groups [get]
func (h *CategoryHandler) GetGroups(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups, err := h.categoryService.GetUserGroups(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// DeleteGroup removes a group, detaching its categories
// @Summary     Delete a category group
// @Description Delete a group; its categories become ungrouped
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     204 "Group deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /categories/groups/{id} [delete]
func (h *CategoryHandler) DeleteGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteGroup(userID, groupID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "category_group", groupID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// CreateCategory creates a budget category
// @Summary     Create a category
// @Description Create a new budget category for the authenticated user
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category data"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, models.CategoryType(req.Type),
		req.GroupID, req.BudgetedAmount, req.Rollover, req.Color, req.Icon, req.SortOrder)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "category", category.ID, c.ClientIP(), map[string]interface{}{
		"name": category.Name,
		"type": category.Type,
	})

	c.JSON(http.StatusCreated, category)
}

// GetCategories lists the user's categories
// @Summary     List categories
// @Description Get the user's categories, optionally including hidden ones
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       include_hidden query bool false "Include hidden categories"
// @Success     200 {array} models.Category "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	includeHidden := c.Query("include_hidden") == "true"

	categories, err := h.categoryService.GetUserCategories(userID, includeHidden)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateCategory updates a category
// @Summary     Update a category
// @Description Update fields of one of the user's categories
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body UpdateCategoryRequest true "Category data"
// @Success     200 {object} models.Category "Category updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.Name,
		req.BudgetedAmount, req.Rollover, req.Color, req.Icon, req.GroupID, req.Hidden)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "category", category.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes an unused category
// @Summary     Delete a category
// @Description Delete a category that no transaction references
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     204 "Category deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category in use"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "category", categoryID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
