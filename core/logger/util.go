package logger

import (
	"strings"
	"time"
)

// Status maps a nil/non-nil error to the canonical status enum value.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Took returns the elapsed time since start rounded for logging.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds d to whole milliseconds but never below 1ms for non-zero values.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	r := d.Round(time.Millisecond)
	if r == 0 {
		return time.Millisecond
	}
	return r
}

// SummarizeStrings joins up to max values for a log preview and reports
// whether the slice was truncated.
func SummarizeStrings(values []string, max int) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	if max <= 0 || len(values) <= max {
		return strings.Join(values, ","), false
	}
	return strings.Join(values[:max], ","), true
}
