// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
	"unicode/utf8"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Truncate cuts s to at most n bytes on a rune boundary, appending an
// ellipsis when it cut. Used for the provider prompt budget and for
// verdict excerpts.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return cutRunes(s, n) + "..."
}

// TruncatePlain cuts s to at most n bytes on a rune boundary, without an
// ellipsis.
func TruncatePlain(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return cutRunes(s, n)
}

// cutRunes returns the longest prefix of s that fits in n bytes without
// splitting a multi-byte rune.
func cutRunes(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
