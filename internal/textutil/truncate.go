package textutil

import "strings"

// TruncateLines returns s unchanged if len(s) <= maxLen (measured in bytes).
// Otherwise it keeps the longest prefix of whole lines that fits in maxLen
// and appends suffix. If not even the first line fits, it cuts inside that
// line without splitting a multi-byte UTF-8 sequence.
func TruncateLines(s string, maxLen int, suffix string) string {
	if len(s) <= maxLen {
		return s
	}
	if i := strings.LastIndexByte(s[:maxLen], '\n'); i >= 0 {
		return s[:i+1] + suffix
	}
	cut := maxLen
	for cut > 0 && s[cut]>>6 == 0b10 {
		cut--
	}
	return s[:cut] + suffix
}
