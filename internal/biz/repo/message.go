package repo

import (
	"context"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
)

// MessageRepo is the chat transport interface
// Responsible for delivering messages through the Telegram Bot API
type MessageRepo interface {
	// Send delivers a message to a single chat
	Send(ctx context.Context, chatID int64, msg domain.OutgoingMessage) error
}
