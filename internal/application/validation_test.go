package application

import (
	"errors"
	"testing"

	"dripsim/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "instanceID",
			value:     "abc",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "instanceID",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "programKey",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateEmailID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    domain.EmailID
		wantErr bool
		errMsg  string
	}{
		{name: "main", value: "3", want: "3"},
		{name: "reminder", value: "3a", want: "3a"},
		{name: "empty", value: "", wantErr: true, errMsg: "email ID is required"},
		{name: "malformed", value: "S01", wantErr: true, errMsg: "expected email ID like 3 or 3a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEmailID("emailID", tt.value)
			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ValidateEmailID() = (%q, %v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestValidateSpeedAndMode(t *testing.T) {
	if _, err := ValidateSpeed(0); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
	if s, err := ValidateSpeed(7); err != nil || s != 7 {
		t.Errorf("ValidateSpeed(7) = (%d, %v)", s, err)
	}
	if _, err := ValidateMode("chaos"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
	if m, err := ValidateMode(" random "); err != nil || m != domain.ModeRandomMix {
		t.Errorf("ValidateMode(random) = (%q, %v)", m, err)
	}
	if _, err := ValidateEngagementKind("bounced"); err == nil {
		t.Error("expected error for unknown engagement kind")
	}
}

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"unknown program", &UnknownProgramError{Key: "xx"}, ErrUnknownProgram},
		{"unknown message", &UnknownMessageError{InstanceID: "i"}, ErrUnknownMessage},
		{"unknown email", &UnknownEmailError{Program: "pm", EmailID: "42"}, ErrUnknownEmail},
		{"invalid transition", &InvalidTransitionError{InstanceID: "i", Reason: "r"}, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
			if errors.Is(tt.err, ErrInvalidSpeed) {
				t.Error("matched an unrelated sentinel")
			}
		})
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
