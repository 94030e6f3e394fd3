package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"bolso/internal/derive"
	apperrors "bolso/internal/errors"
	"bolso/internal/models"
)

// goalService handles goal-related business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new goal tied to a category.
func (s *goalService) CreateGoal(
	userID, categoryID, name, description string,
	goalType models.GoalType,
	targetAmount, initialAmount int64,
	dueDate *time.Time,
	cadence *models.GoalCadence,
	monthlyContribution int64,
	color string,
) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	switch goalType {
	case models.GoalTypeSaveByDate:
		if dueDate == nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "save_by_date goals require a due date")
		}
	case models.GoalTypeSaveMonthly, models.GoalTypeSpendMonthly:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown goal type")
	}

	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal := &models.Goal{
		UserID:              userID,
		CategoryID:          categoryID,
		Name:                name,
		Description:         description,
		TargetAmount:        targetAmount,
		InitialAmount:       initialAmount,
		CurrentAmount:       initialAmount,
		Type:                goalType,
		DueDate:             dueDate,
		Cadence:             cadence,
		MonthlyContribution: monthlyContribution,
		Achieved:            initialAmount >= targetAmount,
		IsActive:            true,
		Color:               color,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns the user's goals, optionally active ones only.
func (s *goalService) GetUserGoals(userID string, activeOnly bool) ([]models.Goal, error) {
	base := s.db.Where("user_id = ?", userID)
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var goals []models.Goal
	if err := base.Order("created_at").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID retrieves a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal updates an existing goal's fields.
func (s *goalService) UpdateGoal(
	userID, goalID string,
	name, description string,
	targetAmount, monthlyContribution *int64,
	dueDate *time.Time,
	note, color string,
) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *targetAmount
		updates["achieved"] = goal.CurrentAmount >= *targetAmount
	}
	if monthlyContribution != nil {
		updates["monthly_contribution"] = *monthlyContribution
	}
	if dueDate != nil {
		updates["due_date"] = dueDate
	}
	if note != "" {
		updates["note"] = note
	}
	if color != "" {
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddContribution records a deposit (positive) or withdrawal (negative) and
// adjusts the goal's running total and achieved flag in one database
// transaction, keeping the invariant that CurrentAmount only moves through
// contribution events.
func (s *goalService) AddContribution(userID, goalID string, amount int64, date time.Time, note string) (*models.GoalContribution, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount cannot be zero")
	}

	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if !goal.IsActive {
		return nil, apperrors.ErrGoalInactive
	}
	if date.IsZero() {
		date = time.Now()
	}

	contribution := &models.GoalContribution{
		GoalID: goal.ID,
		Amount: amount,
		Date:   date,
		Note:   note,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contribution).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		newAmount := goal.CurrentAmount + amount
		achieved := newAmount >= goal.TargetAmount
		if err := tx.Model(goal).Updates(map[string]interface{}{
			"current_amount": newAmount,
			"achieved":       achieved,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		goal.CurrentAmount = newAmount
		goal.Achieved = achieved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contribution, nil
}

// GetContributions returns a goal's contribution history in date order.
func (s *goalService) GetContributions(userID, goalID string) ([]models.GoalContribution, error) {
	if _, err := s.GetGoalByID(userID, goalID); err != nil {
		return nil, err
	}

	var contributions []models.GoalContribution
	if err := s.db.Where("goal_id = ?", goalID).Order("date").Find(&contributions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contributions, nil
}

// GetGoalProgress derives one goal's progress as of today, using the
// contribution history as the source of truth for the current amount.
func (s *goalService) GetGoalProgress(userID, goalID string, today time.Time) (*derive.GoalProgress, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	contributions, err := s.GetContributions(userID, goalID)
	if err != nil {
		return nil, err
	}
	if contributions == nil {
		contributions = []models.GoalContribution{}
	}

	progress, err := derive.GoalProgressFrom(*goal, contributions, today)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &progress, nil
}

// GetGoalsProgress derives progress for all of the user's active goals from
// their running totals.
func (s *goalService) GetGoalsProgress(userID string, today time.Time) ([]derive.GoalProgress, error) {
	goals, err := s.GetUserGoals(userID, true)
	if err != nil {
		return nil, err
	}

	progresses := make([]derive.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		progress, err := derive.GoalProgressFrom(goal, nil, today)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		progresses = append(progresses, progress)
	}
	return progresses, nil
}
