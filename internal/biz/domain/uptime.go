package domain

import (
	"fmt"
	"time"
)

// FormatUptime renders the time elapsed since start as "1d 2h 3m", "2h 3m"
// or "3m". Seconds are truncated. A start in the future yields "0m".
func FormatUptime(now, start time.Time) string {
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total / 60) % 24
	minutes := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
