package format

import "fmt"

// FmtPercent formats a rate as a percentage with two decimals.
func FmtPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FmtRatio formats "part of total" counts, e.g. "42/100".
func FmtRatio(part, total int) string {
	return fmt.Sprintf("%d/%d", part, total)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
