package repo

import "context"

// MonitorRepo is the lifecycle control interface of the OTP monitor
type MonitorRepo interface {
	// Start starts the monitor loop
	Start(ctx context.Context) error

	// Stop stops the monitor loop
	Stop(ctx context.Context) error

	// Restart restarts the monitor (re-login included)
	Restart(ctx context.Context) error

	// ForceFetch runs one fetch cycle immediately
	ForceFetch(ctx context.Context) error
}
