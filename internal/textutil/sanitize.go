package textutil

import "strings"

// SanitizeFileName makes a client-supplied filename safe for the upload
// archive. Path separators, colons, and asterisks become dashes; characters
// that are invalid on common filesystems are dropped. The result is trimmed
// of surrounding whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*':
			return '-'
		case '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(cleaned)
}

// SanitizeToken lowercases a value into a compact token for archive names.
// Letters and digits are kept, hyphens and underscores pass through, and
// anything else becomes an underscore. Returns "unknown" for empty input.
func SanitizeToken(value string) string {
	value = strings.TrimSpace(value)
	token := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '_'
	}, value)
	token = strings.Trim(token, "_-")
	if token == "" {
		return "unknown"
	}
	return token
}
