package ui

import (
	"fmt"
	"time"
)

// FormatDate renders a timestamp as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime renders a timestamp with minutes.
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// FormatDue describes a deadline relative to now, like "due in 3h" or
// "overdue 2d".
func FormatDue(deadline, now time.Time) string {
	if deadline.Before(now) {
		return "overdue " + FormatDurationShort(now.Sub(deadline))
	}
	return "due in " + FormatDurationShort(deadline.Sub(now))
}

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then, now time.Time) string {
	if then.IsZero() || then.After(now) {
		return "-"
	}
	return FormatDurationShort(now.Sub(then)) + " ago"
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d.Truncate(time.Second).Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dd", hours/24)
}
