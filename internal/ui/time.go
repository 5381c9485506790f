package ui

import (
	"fmt"
	"time"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	age := formatTimeAge(then, now)
	if age == "-" {
		return age
	}
	return age + " ago"
}

// FormatTimeAgeShort returns a compact age string like "2m".
func FormatTimeAgeShort(then time.Time, now time.Time) string {
	return formatTimeAge(then, now)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
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

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatHours renders a fractional hour count as whole hours and minutes,
// like "3h 25m", or just "45m" under one hour.
func FormatHours(hours float64) string {
	totalMinutes := int(hours * 60)
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	if totalMinutes >= 60 {
		return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
	}
	return fmt.Sprintf("%dm", totalMinutes)
}

// FormatClock renders a timestamp for time entry listings.
func FormatClock(t time.Time) string {
	return t.Local().Format("Jan 2 15:04")
}

func formatTimeAge(then time.Time, now time.Time) string {
	if then.IsZero() {
		return "-"
	}
	return FormatDurationShort(now.Sub(then))
}
