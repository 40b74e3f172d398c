package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\d{11}$`)
	letterRegex   = regexp.MustCompile(`[A-Za-z]`)
	hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

const MinPasswordLength = 8

func IsValidEmail(email string) bool {
	if !IsNonEmpty(email) {
		return false
	}
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsValidPhone accepts a string or a number; the phone must be exactly 11 digits.
func IsValidPhone(phone any) bool {
	if !IsNonEmpty(phone) {
		return false
	}
	return phoneRegex.MatchString(strings.TrimSpace(Stringify(phone)))
}

func IsValidPassword(password string) bool {
	s := strings.TrimSpace(password)
	return utf8.RuneCountInString(s) >= MinPasswordLength && letterRegex.MatchString(s)
}

func IsHexColor(color string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(color))
}
