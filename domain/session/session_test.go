package session

import (
	"testing"

	"github.com/medplant/plantgate/domain/gateway"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name       string
		creds      Credentials
		wantFields []string
	}{
		{"valid", Credentials{Email: "user@example.com", Password: "Secret123"}, nil},
		{"missing email", Credentials{Password: "Secret123"}, []string{"email"}},
		{"bad email", Credentials{Email: "not-an-email", Password: "Secret123"}, []string{"email"}},
		{"missing password", Credentials{Email: "user@example.com"}, []string{"password"}},
		{"missing both", Credentials{}, []string{"email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.creds)
			assertFields(t, errs, tt.wantFields)
		})
	}
}

func TestValidateSignup(t *testing.T) {
	valid := SignupRequest{
		FirstName:       "Ada",
		LastName:        "Obi",
		Email:           "ada@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		AgreeToTerms:    true,
	}

	t.Run("valid", func(t *testing.T) {
		if errs := ValidateSignup(valid); len(errs) != 0 {
			t.Errorf("ValidateSignup() = %+v, want no errors", errs)
		}
	})

	t.Run("mismatched passwords", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "Different123"
		assertFields(t, ValidateSignup(req), []string{"confirmPassword"})
	})

	t.Run("terms not accepted", func(t *testing.T) {
		req := valid
		req.AgreeToTerms = false
		assertFields(t, ValidateSignup(req), []string{"agreeToTerms"})
	})

	t.Run("short password", func(t *testing.T) {
		req := valid
		req.Password = "abc"
		req.ConfirmPassword = "abc"
		assertFields(t, ValidateSignup(req), []string{"password"})
	})

	t.Run("empty request", func(t *testing.T) {
		errs := ValidateSignup(SignupRequest{})
		if len(errs) == 0 {
			t.Fatal("expected errors for empty request")
		}
	})
}

func assertFields(t *testing.T, errs []gateway.FieldError, want []string) {
	t.Helper()
	if len(errs) != len(want) {
		t.Fatalf("got %d errors (%+v), want %d", len(errs), errs, len(want))
	}
	for i, field := range want {
		if errs[i].Field != field {
			t.Errorf("errs[%d].Field = %s, want %s", i, errs[i].Field, field)
		}
		if errs[i].Message == "" {
			t.Errorf("errs[%d].Message is empty", i)
		}
	}
}
