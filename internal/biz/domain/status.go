package domain

import "time"

// TimestampLayout is used when rendering login and fetch times
const TimestampLayout = "2006-01-02 15:04:05"

// StatusSnapshot is a point-in-time view of the bot and monitor
type StatusSnapshot struct {
	Monitoring bool
	Uptime     string
	LastLogin  *time.Time
	LastFetch  *time.Time
	OTPCount   int
	CountKnown bool // false when storage could not be queried
}

// FormatOptionalTime renders t with TimestampLayout, or "Never" when nil
func FormatOptionalTime(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Format(TimestampLayout)
}
