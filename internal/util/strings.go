package util

import "unicode/utf8"

// SafeTruncate returns at most maxLen bytes of s, never splitting a UTF-8
// encoded character: when the cut would land inside one, it moves back to
// the start of that character. Used when rendering upstream response bodies
// in error messages, where only a prefix should be shown.
//
// A negative maxLen is treated as 0.
//
// Example:
//
//	SafeTruncate(`{"error":"invalid_grant"}`, 8) // Returns: `{"error"`
//	SafeTruncate("héllo", 2)                     // Returns: "h"
//	SafeTruncate("test", -1)                     // Returns: ""
func SafeTruncate(s string, maxLen int) string {
	if maxLen < 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
