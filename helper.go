// File: lixenwraith/stanflags/helper.go
package stanflags

import "strings"

// isValidKeySegment checks if a single path segment is a valid option key part.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	// Bare keys are sequences of ASCII letters, ASCII digits, underscores, and dashes (A-Za-z0-9_-).
	if strings.ContainsRune(s, '.') {
		return false // Segments themselves cannot contain dots
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}
