package repo

import "context"

// ConfigViewRepo renders the /config and /info views.
// Returned text must already be MarkdownV2 safe.
type ConfigViewRepo interface {
	ConfigView(ctx context.Context) (string, error)
	InfoView(ctx context.Context) (string, error)
}
