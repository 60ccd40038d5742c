package data

import (
	"context"
	"fmt"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
	"github.com/otpwatch/ivasms-admin-bot/internal/infra/telegram"
)

// telegramSender is the subset of telegram.Client used for delivery
type telegramSender interface {
	Send(chatID int64, text, parseMode string, silent bool) error
}

// telegramRepo implements the Telegram message repository
type telegramRepo struct {
	client  telegramSender
	timeout time.Duration // per-send deadline, none when zero
}

// NewTelegramRepo creates a new Telegram repository. Each send is abandoned
// after timeout so a stalled API call cannot hold up a reply or broadcast.
func NewTelegramRepo(client *telegram.Client, timeout time.Duration) repo.MessageRepo {
	return &telegramRepo{client: client, timeout: timeout}
}

// Send delivers msg to chatID
func (r *telegramRepo) Send(ctx context.Context, chatID int64, msg domain.OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- r.client.Send(chatID, msg.Text, string(msg.Mode), msg.Silent)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("send to chat %d: %w", chatID, ctx.Err())
	}
}
