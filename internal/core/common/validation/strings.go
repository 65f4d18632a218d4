package validation

import "strings"

// IsBlank reports whether a string is empty or only whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
