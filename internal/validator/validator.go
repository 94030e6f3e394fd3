// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	monthRegex    = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("account_kind", validateAccountKind)
		_ = v.RegisterValidation("goal_type", validateGoalType)
		_ = v.RegisterValidation("goal_cadence", validateGoalCadence)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

// validateMonth accepts "YYYY-MM" strings.
func validateMonth(fl validator.FieldLevel) bool {
	return monthRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "transfer":
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "spending", "saving", "income":
		return true
	}
	return false
}

func validateAccountKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "checking", "savings", "card", "other":
		return true
	}
	return false
}

func validateGoalType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "save_by_date", "save_monthly", "spend_monthly":
		return true
	}
	return false
}

func validateGoalCadence(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "monthly":
		return true
	}
	return false
}
