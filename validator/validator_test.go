package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// TestValidateNotBlank tests the notblank validator.
func TestValidateNotBlank(t *testing.T) {
	type TestStruct struct {
		Name string `validate:"omitempty,notblank"`
	}

	v := New()

	if err := v.Validate(&TestStruct{Name: "John"}); err != nil {
		t.Errorf("Expected name to be valid, but got error: %v", err)
	}
	for _, name := range []string{" ", "\t", "  \n "} {
		if err := v.Validate(&TestStruct{Name: name}); err == nil {
			t.Errorf("Expected name %q to be invalid, but it was valid", name)
		}
	}
	// Test empty name (should be valid since we're not using required)
	if err := v.Validate(&TestStruct{Name: ""}); err != nil {
		t.Errorf("Expected empty name to be valid, but got error: %v", err)
	}
}

// TestValidateEmail tests the email validator on the login form.
func TestValidateEmail(t *testing.T) {
	v := New()

	validEmails := []string{
		"test@example.com",
		"test.test@example.com",
		"test+test@example.com",
		"test@example.co.uk",
	}
	for _, email := range validEmails {
		if err := v.Validate(&LoginForm{Email: email, Password: "secret"}); err != nil {
			t.Errorf("Expected email %s to be valid, but got error: %v", email, err)
		}
	}

	invalidEmails := []string{
		"",
		"test",
		"test@",
		"@example.com",
		"test@example..com",
	}
	for _, email := range invalidEmails {
		if err := v.Validate(&LoginForm{Email: email, Password: "secret"}); err == nil {
			t.Errorf("Expected email %s to be invalid, but it was valid", email)
		}
	}
}

// TestValidateSignupForm tests the registration form rules.
func TestValidateSignupForm(t *testing.T) {
	v := New()

	if err := v.Validate(&SignupForm{FullName: "Jane Admin", Email: "jane@example.com", Password: "pw"}); err != nil {
		t.Errorf("Expected form to be valid, but got error: %v", err)
	}
	if err := v.Validate(&SignupForm{FullName: strings.Repeat("a", 101), Email: "jane@example.com", Password: "pw"}); err == nil {
		t.Errorf("Expected a too long name to be invalid, but it was valid")
	}
	if err := v.Validate(&SignupForm{FullName: "   ", Email: "jane@example.com", Password: "pw"}); err == nil {
		t.Errorf("Expected a blank name to be invalid, but it was valid")
	}
}

// TestValidateVideoStatus tests the moderation form.
func TestValidateVideoStatus(t *testing.T) {
	v := New()

	for _, status := range []string{"approved", "declined"} {
		if err := v.Validate(&VideoStatusForm{Status: status}); err != nil {
			t.Errorf("Expected status %s to be valid, but got error: %v", status, err)
		}
	}
	for _, status := range []string{"", "pending", "approve"} {
		if err := v.Validate(&VideoStatusForm{Status: status}); err == nil {
			t.Errorf("Expected status %q to be invalid, but it was valid", status)
		}
	}
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// TestDecodeForm tests decoding and validating a posted form.
func TestDecodeForm(t *testing.T) {
	v := New()

	var form LoginForm
	err := v.DecodeForm(formRequest(url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret"},
	}), &form)
	if err != nil {
		t.Fatalf("Expected form to be valid, but got error: %v", err)
	}
	if form.Email != "admin@example.com" || form.Password != "secret" {
		t.Errorf("Unexpected decoded form: %+v", form)
	}

	var invalid SignupForm
	err = v.DecodeForm(formRequest(url.Values{"email": {"nope"}}), &invalid)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
	messages := verrs.Messages()
	if messages["fullName"] != "This field is required" {
		t.Errorf("Unexpected fullName message: %q", messages["fullName"])
	}
	if messages["email"] != "Invalid email format" {
		t.Errorf("Unexpected email message: %q", messages["email"])
	}
	if _, ok := messages["password"]; !ok {
		t.Errorf("Expected a password message, got %v", messages)
	}

	if err := v.DecodeForm(formRequest(url.Values{}), LoginForm{}); err == nil {
		t.Errorf("Expected a non pointer target to fail")
	}
}
