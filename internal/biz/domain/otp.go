package domain

import "time"

// OTP is a one-time passcode captured by the monitor
type OTP struct {
	ID          int64
	Code        string
	Service     string
	PhoneNumber string
	Message     string
	ReceivedAt  time.Time
}
