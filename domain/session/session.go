// Package session provides session-credential value types and pure
// validation functions for the inbound auth payloads. This package has
// NO dependencies on I/O or external packages.
package session

import (
	"regexp"
	"strings"
	"time"

	"github.com/medplant/plantgate/domain/gateway"
)

// CookieName is the session cookie carrying the upstream-issued bearer
// token. HttpOnly, never exposed to client-side script.
const CookieName = "session"

// DefaultMaxAge is the default session cookie lifetime.
const DefaultMaxAge = 7 * 24 * time.Hour

// Token is an opaque upstream-issued bearer token.
type Token string

// Credentials is the inbound login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the inbound signup payload.
type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

// ValidateLogin validates a login payload (pure function).
// A non-empty result means the request must not reach the upstream.
func ValidateLogin(c Credentials) []gateway.FieldError {
	var errs []gateway.FieldError

	if c.Email == "" {
		errs = append(errs, gateway.FieldError{Field: "email", Message: "Email is required"})
	} else if !isValidEmail(c.Email) {
		errs = append(errs, gateway.FieldError{Field: "email", Message: "Invalid email format"})
	}

	if c.Password == "" {
		errs = append(errs, gateway.FieldError{Field: "password", Message: "Password is required"})
	}

	return errs
}

// ValidateSignup validates a signup payload (pure function).
func ValidateSignup(r SignupRequest) []gateway.FieldError {
	var errs []gateway.FieldError

	if r.FirstName == "" {
		errs = append(errs, gateway.FieldError{Field: "firstName", Message: "First name is required"})
	}
	if r.LastName == "" {
		errs = append(errs, gateway.FieldError{Field: "lastName", Message: "Last name is required"})
	}

	if r.Email == "" {
		errs = append(errs, gateway.FieldError{Field: "email", Message: "Email is required"})
	} else if !isValidEmail(r.Email) {
		errs = append(errs, gateway.FieldError{Field: "email", Message: "Invalid email format"})
	}

	if r.Password == "" {
		errs = append(errs, gateway.FieldError{Field: "password", Message: "Password is required"})
	} else if len(r.Password) < 8 {
		errs = append(errs, gateway.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}

	if r.ConfirmPassword == "" {
		errs = append(errs, gateway.FieldError{Field: "confirmPassword", Message: "Password confirmation is required"})
	} else if r.Password != "" && r.Password != r.ConfirmPassword {
		errs = append(errs, gateway.FieldError{Field: "confirmPassword", Message: "Passwords do not match"})
	}

	if !r.AgreeToTerms {
		errs = append(errs, gateway.FieldError{Field: "agreeToTerms", Message: "You must accept the terms of service"})
	}

	return errs
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}
