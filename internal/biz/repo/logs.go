package repo

import "context"

// LogRepo reads the configured log sink
type LogRepo interface {
	// Tail returns the last n lines in chronological order.
	// Returns domain.ErrLogNotFound or domain.ErrLogEmpty.
	Tail(ctx context.Context, n int) ([]string, error)
}
