// Package classify holds the pure, substring-based detectors the chat engine
// uses to route free text, plus the normalization shared by every matcher.
package classify

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Normalize trims, collapses internal whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeTimeSlot keeps digits, colons, spaces and the letters A, M and P,
// then collapses whitespace. Case is preserved.
func NormalizeTimeSlot(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9', r == ':', r == ' ':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case strings.ContainsRune("AMPamp", r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsValidEmail applies the loose something@something.something check.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}
