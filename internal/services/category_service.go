package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "bolso/internal/errors"
	"bolso/internal/models"
)

// categoryService handles category and group business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateGroup creates a new category group.
func (s *categoryService) CreateGroup(userID, name string, sortOrder int) (*models.CategoryGroup, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	group := &models.CategoryGroup{
		UserID:    userID,
		Name:      name,
		SortOrder: sortOrder,
	}
	if err := s.db.Create(group).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group, nil
}

// GetUserGroups returns the user's groups with their categories nested,
// both ordered by sort order.
func (s *categoryService) GetUserGroups(userID string) ([]models.CategoryGroup, error) {
	var groups []models.CategoryGroup
	if err := s.db.Where("user_id = ?", userID).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, name")
		}).
		Order("sort_order, name").
		Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return groups, nil
}

// DeleteGroup removes a group. Its categories survive, ungrouped.
func (s *categoryService) DeleteGroup(userID, groupID string) error {
	var group models.CategoryGroup
	if err := s.db.Where("id = ? AND user_id = ?", groupID, userID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGroupNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).Where("group_id = ?", groupID).
			Update("group_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&group).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(
	userID string,
	name string,
	categoryType models.CategoryType,
	groupID *string,
	budgetedAmount int64,
	rollover bool,
	color string,
	icon string,
	sortOrder int,
) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	switch categoryType {
	case models.CategoryTypeSpending, models.CategoryTypeSaving, models.CategoryTypeIncome:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category type")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	if groupID != nil {
		var group models.CategoryGroup
		if err := s.db.Where("id = ? AND user_id = ?", *groupID, userID).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrGroupNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	category := &models.Category{
		UserID:         userID,
		GroupID:        groupID,
		Name:           name,
		Type:           categoryType,
		BudgetedAmount: budgetedAmount,
		Rollover:       rollover,
		Color:          color,
		Icon:           models.NormalizeIconKey(icon),
		SortOrder:      sortOrder,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories returns the user's categories ordered by sort order.
// Hidden categories are excluded unless includeHidden is set.
func (s *categoryService) GetUserCategories(userID string, includeHidden bool) ([]models.Category, error) {
	base := s.db.Where("user_id = ?", userID)
	if !includeHidden {
		base = base.Where("hidden = ?", false)
	}

	var categories []models.Category
	if err := base.Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetUserCategoriesByType returns the user's visible categories of one type.
func (s *categoryService) GetUserCategoriesByType(userID string, categoryType models.CategoryType) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ? AND type = ? AND hidden = ?", userID, categoryType, false).
		Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category
func (s *categoryService) UpdateCategory(
	userID string,
	categoryID string,
	name string,
	budgetedAmount *int64,
	rollover *bool,
	color string,
	icon string,
	groupID *string,
	hidden *bool,
) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if groupID != nil && *groupID != "" {
		var group models.CategoryGroup
		if err := s.db.Where("id = ? AND user_id = ?", *groupID, userID).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrGroupNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if budgetedAmount != nil {
		updates["budgeted_amount"] = *budgetedAmount
	}
	if rollover != nil {
		updates["rollover"] = *rollover
	}
	if color != "" {
		updates["color"] = color
	}
	if icon != "" {
		updates["icon"] = models.NormalizeIconKey(icon)
	}
	if groupID != nil {
		updates["group_id"] = groupID
	}
	if hidden != nil {
		updates["hidden"] = *hidden
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory deletes a category that no transaction references.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
