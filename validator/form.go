package validator

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/collabhub/admin-console/errors"
	"github.com/go-playground/validator/v10"
	"go.vocdoni.io/dvote/log"
)

// ValidationError represents an individual validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a slice of ValidationError.
type ValidationErrors []ValidationError

// Error returns a string representation of the validation errors.
func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// Messages returns the validation messages keyed by form field name.
func (ve ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(ve))
	for _, err := range ve {
		out[err.Field] = err.Message
	}
	return out
}

// DecodeForm fills the string fields of dst, a pointer to a struct, from the
// request form values named by their `form` tag, and validates the result.
// It returns errors.ErrMalformedBody when the form cannot be parsed and
// ValidationErrors when a field is invalid.
func (v *Validator) DecodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return errors.ErrMalformedBody.WithErr(err)
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("form target must be a pointer to a struct, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := field.Tag.Get("form")
		if name == "" || field.Type.Kind() != reflect.String {
			continue
		}
		rv.Field(i).SetString(r.PostFormValue(name))
	}
	if err := v.validator.Struct(dst); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var validationErrors ValidationErrors
		for _, fieldErr := range fieldErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   formName(rt, fieldErr.StructField()),
				Message: getErrorMessage(fieldErr),
			})
		}
		log.Debugw("validation errors", "errors", validationErrors)
		return validationErrors
	}
	return nil
}

// formName returns the form tag of a struct field, or its Go name.
func formName(t reflect.Type, field string) string {
	if f, ok := t.FieldByName(field); ok {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
	}
	return field
}

// getErrorMessage returns a human-readable error message for a validation error.
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long", err.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", err.Param())
	default:
		return fmt.Sprintf("Invalid value: %s", err.Tag())
	}
}
