package utils

import (
	"strings"
	"time"

	"pousada/constants"
	"pousada/errors"
)

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the instant in UTC
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.InvalidArgument(field + " is required")
	}
	if t, err := time.Parse(constants.DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.InvalidArgument(field + " must be a date (YYYY-MM-DD)")
	}
	return t.UTC(), nil
}

// ParseOptionalDate is ParseDate for optional fields; nil or blank yields nil
func ParseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
