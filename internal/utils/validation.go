package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hanamura/taskdesk/internal/constants"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidUsername reports whether the username meets the minimum length.
func IsValidUsername(username string) bool {
	return len(strings.TrimSpace(username)) >= constants.MinUsernameLength
}

// IsValidTaskName reports whether the task name is non-empty after trimming.
func IsValidTaskName(name string) bool {
	return len(strings.TrimSpace(name)) > 0
}

// IsValidEmail reports whether the address has a plausible mailbox@domain shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword enforces the password policy: minimum length plus at
// least one lowercase, one uppercase, one digit, and one special character.
func IsValidPassword(password string) bool {
	if len(password) < constants.MinPasswordLength {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("!@#$%^&*()", r):
			special = true
		}
	}
	return lower && upper && digit && special
}
