package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultValue is the sentinel stored for empty or blank form fields.
const DefaultValue = "N/A"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Sanitize HTML-escapes angle brackets in user input.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "<", "&lt;")
	return strings.ReplaceAll(text, ">", "&gt;")
}

// OrDefault replaces empty or blank values with the "N/A" sentinel.
func OrDefault(value string) string {
	if strings.TrimSpace(value) == "" {
		return DefaultValue
	}
	return value
}

// ValidEmail reports whether the address matches the accepted email format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SplitRequirements splits a comma-separated requirements field, skipping blanks.
func SplitRequirements(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if t := strings.TrimSpace(r); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Truncate cuts s to at most n characters, never splitting a rune.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
