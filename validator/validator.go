package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around the go-playground/validator package.
type Validator struct {
	validator *validator.Validate
}

// New creates a new Validator instance.
func New() *Validator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("notblank", validateNotBlank)

	return &Validator{
		validator: v,
	}
}

// Validate validates a struct using the validator package.
func (v *Validator) Validate(s interface{}) error {
	return v.validator.Struct(s)
}

// validateNotBlank rejects values made only of whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	// If the field is empty, it's valid (use required tag if it's required)
	if fl.Field().String() == "" {
		return true
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

// LoginForm is the admin sign in form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,notblank"`
}

// SignupForm is the admin registration form.
type SignupForm struct {
	FullName string `form:"fullName" validate:"required,notblank,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,notblank,max=128"`
}

// BrandVerifyForm carries the company email a brand verification is sent to.
type BrandVerifyForm struct {
	Email string `form:"email" validate:"required,email"`
}

// VideoStatusForm carries the new moderation status of a video.
type VideoStatusForm struct {
	Status string `form:"status" validate:"required,oneof=approved declined"`
}
