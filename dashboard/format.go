package dashboard

import (
	"fmt"
	"time"
)

// FormatRelative renders how long ago t was, the way the alert list shows it.
func FormatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}
	hours := int(diff / time.Hour)
	switch {
	case hours < 1:
		return fmt.Sprintf("%d minutes ago", int(diff/time.Minute))
	case hours < 24:
		return plural(hours, "hour") + " ago"
	default:
		return plural(hours/24, "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// FormatMinutes renders a duration in minutes as "Xh Ym".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// ScreenTimeProgress is today's usage as a percentage of limit, capped at 100.
func ScreenTimeProgress(today, limit int) float64 {
	if limit <= 0 {
		return 100
	}
	p := float64(today) / float64(limit) * 100
	if p > 100 {
		return 100
	}
	return p
}
