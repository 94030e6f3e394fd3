package derive

import (
	"reflect"
	"testing"
	"time"

	"bolso/internal/models"
)

func saveGoal(target, current, monthly int64) models.Goal {
	g := models.Goal{
		Name:                "Reserva",
		Type:                models.GoalTypeSaveMonthly,
		TargetAmount:        target,
		CurrentAmount:       current,
		MonthlyContribution: monthly,
	}
	g.ID = "g1"
	return g
}

func TestGoalProgressFrom(t *testing.T) {
	today := date(2026, time.August, 15)

	t.Run("basic_progress", func(t *testing.T) {
		progress, err := GoalProgressFrom(saveGoal(100000, 25000, 0), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.Percentage != 25 {
			t.Errorf("expected 25%%, got %f", progress.Percentage)
		}
		if progress.Remaining != 75000 {
			t.Errorf("expected remaining 75000, got %d", progress.Remaining)
		}
		if progress.Achieved {
			t.Error("expected not achieved")
		}
	})

	t.Run("achieved_and_clamped", func(t *testing.T) {
		progress, err := GoalProgressFrom(saveGoal(100000, 120000, 0), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.Percentage != 100 {
			t.Errorf("expected clamp at 100, got %f", progress.Percentage)
		}
		if progress.Remaining != 0 {
			t.Errorf("expected remaining 0, got %d", progress.Remaining)
		}
		if !progress.Achieved {
			t.Error("expected achieved")
		}
	})

	t.Run("zero_target_is_safe", func(t *testing.T) {
		progress, err := GoalProgressFrom(saveGoal(0, 5000, 1000), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.Percentage != 0 || progress.Remaining != 0 || progress.Achieved {
			t.Errorf("expected zeroed progress, got %+v", progress)
		}
	})

	t.Run("contributions_as_source_of_truth", func(t *testing.T) {
		goal := saveGoal(100000, 99999, 0)
		goal.InitialAmount = 10000
		contribs := []models.GoalContribution{
			{Amount: 20000, Date: date(2026, time.June, 1)},
			{Amount: -5000, Date: date(2026, time.July, 1)},
		}

		progress, err := GoalProgressFrom(goal, contribs, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.CurrentAmount != 25000 {
			t.Errorf("expected 25000 from initial + contributions, got %d", progress.CurrentAmount)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		goal := saveGoal(100000, 40000, 10000)
		first, err := GoalProgressFrom(goal, nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := GoalProgressFrom(goal, nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical results, got %+v vs %+v", first, second)
		}
	})

	t.Run("contribution_monotonicity", func(t *testing.T) {
		goal := saveGoal(100000, 0, 0)
		goal.InitialAmount = 30000
		contribs := []models.GoalContribution{}

		base, err := GoalProgressFrom(goal, contribs, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		deposited, err := GoalProgressFrom(goal, append(contribs, models.GoalContribution{Amount: 5000}), today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deposited.Percentage < base.Percentage {
			t.Errorf("deposit decreased percentage: %f -> %f", base.Percentage, deposited.Percentage)
		}

		withdrawn, err := GoalProgressFrom(goal, append(contribs, models.GoalContribution{Amount: -5000}), today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if withdrawn.Percentage > base.Percentage {
			t.Errorf("withdrawal increased percentage: %f -> %f", base.Percentage, withdrawn.Percentage)
		}
	})

	t.Run("unknown_goal_type_errors", func(t *testing.T) {
		goal := saveGoal(100000, 0, 0)
		goal.Type = "retire_early"
		if _, err := GoalProgressFrom(goal, nil, today); err == nil {
			t.Fatal("expected error for unknown goal type")
		}
	})
}

func TestGoalProjection(t *testing.T) {
	today := date(2026, time.August, 15)

	t.Run("whole_months_ceiling", func(t *testing.T) {
		// 75000 remaining at 20000/month needs ceil(3.75) = 4 months.
		progress, err := GoalProgressFrom(saveGoal(100000, 25000, 20000), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.ProjectedCompletion == nil {
			t.Fatal("expected a projected completion date")
		}
		want := date(2026, time.December, 15)
		if !progress.ProjectedCompletion.Equal(want) {
			t.Errorf("expected %v, got %v", want, *progress.ProjectedCompletion)
		}
	})

	t.Run("day_of_month_clamped", func(t *testing.T) {
		// Jan 31 + 1 month lands on Feb 28 in a non-leap year.
		progress, err := GoalProgressFrom(saveGoal(10000, 5000, 5000), nil, date(2026, time.January, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := date(2026, time.February, 28)
		if progress.ProjectedCompletion == nil || !progress.ProjectedCompletion.Equal(want) {
			t.Errorf("expected %v, got %v", want, progress.ProjectedCompletion)
		}
	})

	t.Run("no_projection_without_monthly_contribution", func(t *testing.T) {
		progress, err := GoalProgressFrom(saveGoal(100000, 25000, 0), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.ProjectedCompletion != nil {
			t.Error("expected no projection")
		}
	})

	t.Run("no_projection_when_achieved", func(t *testing.T) {
		progress, err := GoalProgressFrom(saveGoal(100000, 100000, 10000), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.ProjectedCompletion != nil {
			t.Error("expected no projection for an achieved goal")
		}
	})
}

func TestGoalDueDate(t *testing.T) {
	today := date(2026, time.August, 15)

	byDate := func(target, current int64, due time.Time) models.Goal {
		goal := saveGoal(target, current, 0)
		goal.Type = models.GoalTypeSaveByDate
		goal.DueDate = &due
		return goal
	}

	t.Run("urgent_within_30_days", func(t *testing.T) {
		progress, err := GoalProgressFrom(byDate(100000, 50000, date(2026, time.September, 1)), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !progress.Urgent || progress.Overdue {
			t.Errorf("expected urgent, not overdue: %+v", progress)
		}
		if progress.DaysRemaining == nil || *progress.DaysRemaining != 17 {
			t.Errorf("expected 17 days remaining, got %v", progress.DaysRemaining)
		}
	})

	t.Run("overdue_replaces_urgency", func(t *testing.T) {
		progress, err := GoalProgressFrom(byDate(100000, 50000, date(2026, time.August, 1)), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !progress.Overdue || progress.Urgent {
			t.Errorf("expected overdue, not urgent: %+v", progress)
		}
	})

	t.Run("achieved_goal_is_never_urgent", func(t *testing.T) {
		progress, err := GoalProgressFrom(byDate(100000, 100000, date(2026, time.August, 20)), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.Urgent || progress.Overdue {
			t.Errorf("expected no urgency flags: %+v", progress)
		}
	})

	t.Run("monthly_required_spreads_remaining", func(t *testing.T) {
		// 60 days out: ceil(60/30) = 2 months, 90000 remaining -> 45000/month.
		progress, err := GoalProgressFrom(byDate(100000, 10000, date(2026, time.October, 14)), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.MonthlyRequired != 45000 {
			t.Errorf("expected monthly required 45000, got %d", progress.MonthlyRequired)
		}
	})

	t.Run("overdue_monthly_required_is_full_remaining", func(t *testing.T) {
		progress, err := GoalProgressFrom(byDate(100000, 40000, date(2026, time.July, 1)), nil, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if progress.MonthlyRequired != 60000 {
			t.Errorf("expected monthly required 60000, got %d", progress.MonthlyRequired)
		}
	})
}
