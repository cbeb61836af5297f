package format

import (
	"fmt"
	"time"
)

// FmtCost formats an abstract cost with a thousands separator,
// e.g. 1800 -> "1,800".
func FmtCost(n int) string {
	if n < 0 {
		return "-" + FmtCost(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FmtCost(n/1000), n%1000)
}

// FmtDate renders a timestamp as a plain date, or "-" for the zero value.
func FmtDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FmtDays renders a day count, e.g. 45 -> "45d".
func FmtDays(n int) string {
	return fmt.Sprintf("%dd", n)
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
