package application

import (
	"fmt"
	"strings"

	"dripsim/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "instanceID" -> "instance ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"instanceID": "instance ID",
		"emailID":    "email ID",
		"programKey": "program key",
		"mode":       "behavior mode",
		"kind":       "engagement kind",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateEmailID parses an email identifier for fieldName
func ValidateEmailID(fieldName, value string) (domain.EmailID, error) {
	if err := ValidateRequired(fieldName, value); err != nil {
		return "", err
	}
	id, err := domain.ParseEmailID(value)
	if err != nil {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected %s like 3 or 3a, got: %s", formatFieldName(fieldName), value),
		}
	}
	return id, nil
}

// ValidateSpeed checks that n is a playback speed
func ValidateSpeed(n int) (domain.Speed, error) {
	s, err := domain.ParseSpeed(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSpeed, err)
	}
	return s, nil
}

// ValidateMode parses a behavior mode name
func ValidateMode(value string) (domain.BehaviorMode, error) {
	m, err := domain.ParseBehaviorMode(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMode, err)
	}
	return m, nil
}

// ValidateEngagementKind parses "opened" or "clicked"
func ValidateEngagementKind(value string) (domain.EngagementKind, error) {
	k, err := domain.ParseEngagementKind(strings.TrimSpace(value))
	if err != nil {
		return "", &ValidationError{Field: "kind", Message: err.Error()}
	}
	return k, nil
}
