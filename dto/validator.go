package dto

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// GetValidator returns the shared validator instance. Request types call
// it from their Validate methods.
func GetValidator() *validator.Validate {
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("strong_password", strongPassword)
	return v
}

// strongPassword requires at least 8 characters with an uppercase letter,
// a lowercase letter, a digit and a symbol.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit, symbol bool
	password := fl.Field().String()

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	return len(password) >= 8 && upper && lower && digit && symbol
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "alphanum":
		return fe.Field() + " must contain only letters and numbers"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "strong_password":
		return "Password must be at least 8 characters with uppercase, lowercase, number and special character"
	default:
		return fe.Field() + " is invalid"
	}
}

// CreateValidationErrorResponse flattens a validator error into the 400
// envelope handlers return for malformed requests.
func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	resp := ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
	}

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			resp.Errors = append(resp.Errors, ValidationError{
				Field:   fe.Field(),
				Message: fieldErrorMessage(fe),
			})
		}
	}

	return resp
}
