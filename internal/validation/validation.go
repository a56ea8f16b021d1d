package validation

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername validates username format
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 20 {
		return fmt.Errorf("username must be between 3 and 20 characters")
	}

	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores and hyphens")
	}

	return nil
}

// ValidateEmail checks the identity header carries something shaped like an address
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must be at most 254 characters")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ParseLimit parses an optional limit query parameter. Empty means def; values are capped at max.
func ParseLimit(raw string, def, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	if limit > max {
		limit = max
	}
	return limit, nil
}
