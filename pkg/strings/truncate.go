// Package strings holds string helpers for CLI output.
package strings

import (
	"strings"
)

// DefaultMaxLen is the default maximum length of a table cell.
const DefaultMaxLen = 60

// MinTruncateLen is the minimum maxLen value for Truncate.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// Truncate shortens s to at most maxLen runes for single-line output.
// Whitespace runs, newlines included, collapse into single spaces, and a
// truncated result ends in "...". maxLen below MinTruncateLen is raised to
// MinTruncateLen.
//
// Args:
//   - s: The string to truncate
//   - maxLen: Maximum length of the result (including "..." if truncated)
//
// Returns:
//   - Truncated and sanitized string
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
