// Package textutil derives lowercase tokens from free-form text such as
// artist and title strings. Tokens keep ASCII letters, digits, hyphens, and
// underscores; everything else collapses to a single underscore per rune so
// distinct inputs stay distinguishable without escaping.
package textutil

import "strings"

// SanitizeToken lowercases value and maps every rune outside [a-z0-9_-] to an
// underscore. Leading and trailing underscores and hyphens are trimmed, and
// inputs that sanitize to nothing come back as "unknown" so tokens are never
// empty.
func SanitizeToken(value string) string {
	mapped := strings.Map(tokenRune, strings.TrimSpace(value))
	mapped = strings.Trim(mapped, "_-")
	if mapped == "" {
		return "unknown"
	}
	return mapped
}

func tokenRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		return r
	case r >= 'A' && r <= 'Z':
		return r + ('a' - 'A')
	default:
		return '_'
	}
}
