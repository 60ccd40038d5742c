package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
)

// NotifyConfig contains notification configuration
type NotifyConfig struct {
	MaxTraceLen int        // Max trace characters in an error report
	SendRate    rate.Limit // Sends per second across all admins
	SendBurst   int
}

// DefaultNotifyConfig returns default notification configuration.
// Telegram allows roughly 30 messages per second per bot.
func DefaultNotifyConfig() NotifyConfig {
	return NotifyConfig{
		MaxTraceLen: 500,
		SendRate:    rate.Limit(25),
		SendBurst:   5,
	}
}

// truncationMarker is appended to a cut trace
const truncationMarker = "..."

// NotifyUsecase fans messages out to every admin and formats error reports
type NotifyUsecase struct {
	messageRepo repo.MessageRepo
	admins      domain.AdminSet
	limiter     *rate.Limiter
	config      NotifyConfig
}

// NewNotifyUsecase creates a new notify usecase
func NewNotifyUsecase(messageRepo repo.MessageRepo, admins domain.AdminSet, config NotifyConfig) *NotifyUsecase {
	if config.MaxTraceLen <= 0 {
		config.MaxTraceLen = DefaultNotifyConfig().MaxTraceLen
	}
	if config.SendRate <= 0 {
		config.SendRate = DefaultNotifyConfig().SendRate
	}
	if config.SendBurst <= 0 {
		config.SendBurst = 1
	}
	return &NotifyUsecase{
		messageRepo: messageRepo,
		admins:      admins,
		limiter:     rate.NewLimiter(config.SendRate, config.SendBurst),
		config:      config,
	}
}

// Broadcast sends msg to every admin independently. A failed recipient is
// logged and skipped; the returned error joins every DeliveryError.
func (uc *NotifyUsecase) Broadcast(ctx context.Context, msg domain.OutgoingMessage) error {
	var errs []error
	for _, chatID := range uc.admins.IDs() {
		if err := uc.deliver(ctx, chatID, msg); err != nil {
			fmt.Printf("[Notify] Failed to send message to admin %d: %v\n", chatID, err)
			errs = append(errs, &domain.DeliveryError{ChatID: chatID, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (uc *NotifyUsecase) deliver(ctx context.Context, chatID int64, msg domain.OutgoingMessage) error {
	if err := uc.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return uc.messageRepo.Send(ctx, chatID, msg)
}

// SendAdminMessage broadcasts text with the given parse mode
func (uc *NotifyUsecase) SendAdminMessage(ctx context.Context, text string, mode domain.ParseMode, silent bool) error {
	return uc.Broadcast(ctx, domain.OutgoingMessage{Text: text, Mode: mode, Silent: silent})
}

// SendStatusMessage broadcasts a one-line status update
func (uc *NotifyUsecase) SendStatusMessage(ctx context.Context, text string, isError bool) error {
	emoji := "ℹ️"
	if isError {
		emoji = "❌"
	}
	return uc.SendAdminMessage(ctx, emoji+" "+domain.EscapeMarkdown(text), domain.ParseModeMarkdownV2, false)
}

// ReportError broadcasts a failure report with a bounded trace.
// It never panics and never returns an error; secondary failures are logged.
func (uc *NotifyUsecase) ReportError(ctx context.Context, err error, label string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Notify] Failed to send error message: panic: %v\n", r)
		}
	}()

	if err == nil {
		return
	}

	text := uc.FormatErrorReport(err, label)
	if bErr := uc.Broadcast(ctx, domain.OutgoingMessage{Text: text, Mode: domain.ParseModeMarkdownV2}); bErr != nil {
		fmt.Printf("[Notify] Failed to send error message: %v\n", bErr)
	}
}

// FormatErrorReport renders the MarkdownV2 error report for err
func (uc *NotifyUsecase) FormatErrorReport(err error, label string) string {
	var b strings.Builder
	b.WriteString("❌ *Error*\n\n")
	if label != "" {
		b.WriteString("*Context:* " + domain.EscapeMarkdown(label) + "\n")
	}
	b.WriteString(domain.EscapeMarkdown(err.Error()))

	trace := TruncateTrace(errorTrace(err), uc.config.MaxTraceLen)
	if trace != "" {
		b.WriteString("\n\n```\n" + domain.EscapeCode(trace) + "\n```")
	}
	return b.String()
}

// errorTrace returns the panic stack for recovered panics, otherwise the
// wrapped error chain one level per line
func errorTrace(err error) string {
	var pe *domain.PanicError
	if errors.As(err, &pe) {
		return pe.Stack
	}

	var lines []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		lines = append(lines, fmt.Sprintf("%T: %v", e, e))
	}
	return strings.Join(lines, "\n")
}

// TruncateTrace cuts s to at most max characters on a rune boundary and
// appends a truncation marker when anything was removed
func TruncateTrace(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + truncationMarker
}
