// Package utils provides small text helpers shared by the CLI output code.
package utils

import (
	"strings"
)

// Truncate returns a truncated string with "..." if it exceeds maxLen.
// This function is Unicode-safe, counting runes instead of bytes.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Flatten collapses newlines and repeated whitespace so a multi-line gap
// description fits on one table row.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
