package utils

import (
	"strconv"
	"strings"
)

// NormalizeTag lowercases and trims a raw tag string. An empty result means
// the tag should be skipped, not stored.
func NormalizeTag(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// OptionalString maps a blank form value to nil so it is stored as NULL.
func OptionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// OptionalInt maps a zero value to nil so it is stored as NULL.
func OptionalInt(value int) *int {
	if value == 0 {
		return nil
	}
	return &value
}

// CoerceInt parses a form field into an int, treating blank or non-numeric
// input as absent rather than an error.
func CoerceInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return parsed
}

// SplitTags turns a comma-separated tags field into raw tag strings.
// Normalization happens later, in the recipe service.
func SplitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return strings.Split(value, ",")
}
