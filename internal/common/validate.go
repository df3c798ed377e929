package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateUUID validates a path or body identifier.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, &ValidationError{Message: fmt.Sprintf("%s is required", fieldName)}
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, &ValidationError{Message: fmt.Sprintf("%s is not a valid id", fieldName)}
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Message: fmt.Sprintf("%s is required", fieldName)}
	}
	return nil
}

// ValidatePositiveFloat validates positive monetary amounts.
func ValidatePositiveFloat(value float64, fieldName string) error {
	if value <= 0 {
		return &ValidationError{Message: fmt.Sprintf("%s must be positive", fieldName)}
	}
	return nil
}

// ValidateDate parses a YYYY-MM-DD date string.
func ValidateDate(dateStr, fieldName string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, &ValidationError{Message: fmt.Sprintf("%s must be in YYYY-MM-DD format", fieldName)}
	}
	return date, nil
}

// SafeString safely dereferences an optional string.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
