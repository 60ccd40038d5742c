package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/usecase"
)

const commandList = "Available commands:\n" +
	"• `/status` \\- Bot status\n" +
	"• `/config` \\- Configuration\n" +
	"• `/info` \\- Information\n" +
	"• `/recent_otps` \\- Recent OTPs\n" +
	"• `/last_otp` \\- Last OTP\n" +
	"• `/new_otp` \\- Force fetch\n" +
	"• `/start_monitor` \\- Start monitor\n" +
	"• `/stop` \\- Stop monitor\n" +
	"• `/restart` \\- Restart monitor\n" +
	"• `/logs [n]` \\- View logs\n"

func (s *CommandService) handleStart(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	status := "🔴 Stopped"
	if s.statusUC.IsMonitoring() {
		status = "🟢 Running"
	}

	var b strings.Builder
	b.WriteString("🤖 *" + domain.EscapeMarkdown(s.texts.BotTitle) + "*\n\n")
	b.WriteString("Status: " + status + "\n")
	b.WriteString("Uptime: " + domain.EscapeMarkdown(s.statusUC.Uptime()) + "\n")
	b.WriteString("Admin Chat ID: `" + strconv.FormatInt(msg.ChatID, 10) + "`\n\n")
	b.WriteString(commandList)
	return markdown(b.String()), nil
}

func (s *CommandService) handleStatus(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	snap, err := s.statusUC.Snapshot(ctx)
	return markdown(RenderStatus(snap)), err
}

// RenderStatus renders a snapshot as MarkdownV2
func RenderStatus(snap *domain.StatusSnapshot) string {
	monitoring := "🔴 Inactive"
	if snap.Monitoring {
		monitoring = "🟢 Active"
	}
	count := "unknown"
	if snap.CountKnown {
		count = strconv.Itoa(snap.OTPCount)
	}

	var b strings.Builder
	b.WriteString("📊 *Bot Status*\n\n")
	b.WriteString("Monitoring: " + monitoring + "\n")
	b.WriteString("Uptime: " + domain.EscapeMarkdown(snap.Uptime) + "\n")
	b.WriteString("Last Login: " + domain.EscapeMarkdown(domain.FormatOptionalTime(snap.LastLogin)) + "\n")
	b.WriteString("Last Fetch: " + domain.EscapeMarkdown(domain.FormatOptionalTime(snap.LastFetch)) + "\n")
	b.WriteString("Total OTPs: " + count + "\n")
	return b.String()
}

func (s *CommandService) handleConfig(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	if s.configView == nil {
		return domain.OutgoingMessage{}, errors.New("config view not available")
	}
	text, err := s.configView.ConfigView(ctx)
	if err != nil {
		return domain.OutgoingMessage{}, fmt.Errorf("config view: %w", err)
	}
	return markdown(text), nil
}

func (s *CommandService) handleInfo(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	if s.configView == nil {
		return domain.OutgoingMessage{}, errors.New("info view not available")
	}
	text, err := s.configView.InfoView(ctx)
	if err != nil {
		return domain.OutgoingMessage{}, fmt.Errorf("info view: %w", err)
	}
	return markdown(text), nil
}

func (s *CommandService) handleRecentOTPs(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	n, err := usecase.ParseCount(msg.Args, usecase.DefaultRecentOTPs, 1, usecase.MaxRecentOTPs)
	if err != nil {
		return markdown(domain.EscapeMarkdown(s.texts.InvalidNumber)), err
	}

	otps, err := s.otpUC.Recent(ctx, n)
	if err != nil {
		return markdown(domain.EscapeMarkdown(storageUnavailable)), err
	}
	if len(otps) == 0 {
		return markdown(domain.EscapeMarkdown(s.texts.NoOTPs)), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 *Recent OTPs* \\(%d\\)\n\n", len(otps)))
	for i, otp := range otps {
		b.WriteString(fmt.Sprintf("%d\\. `%s` %s\n", i+1, domain.EscapeCode(otp.Code), domain.EscapeMarkdown(otpSummary(otp))))
	}
	return markdown(b.String()), nil
}

func (s *CommandService) handleLastOTP(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	otp, err := s.otpUC.Last(ctx)
	if err != nil {
		return markdown(domain.EscapeMarkdown(storageUnavailable)), err
	}
	if otp == nil {
		return markdown(domain.EscapeMarkdown(s.texts.NoOTPs)), nil
	}

	var b strings.Builder
	b.WriteString("🔑 *Last OTP*\n\n")
	b.WriteString("Code: `" + domain.EscapeCode(otp.Code) + "`\n")
	if otp.Service != "" {
		b.WriteString("Service: " + domain.EscapeMarkdown(otp.Service) + "\n")
	}
	if otp.PhoneNumber != "" {
		b.WriteString("Number: " + domain.EscapeMarkdown(otp.PhoneNumber) + "\n")
	}
	b.WriteString("Received: " + domain.EscapeMarkdown(otp.ReceivedAt.Format(domain.TimestampLayout)) + "\n")
	if otp.Message != "" {
		b.WriteString("\n" + domain.EscapeMarkdown(otp.Message) + "\n")
	}
	return markdown(b.String()), nil
}

const (
	storageUnavailable = "⚠️ Storage unavailable, admins have been notified"
	monitorUnavailable = "⚠️ Monitor unavailable, admins have been notified"
)

// otpSummary renders "service · number · time" with empty parts skipped
func otpSummary(otp domain.OTP) string {
	var parts []string
	if otp.Service != "" {
		parts = append(parts, otp.Service)
	}
	if otp.PhoneNumber != "" {
		parts = append(parts, otp.PhoneNumber)
	}
	parts = append(parts, otp.ReceivedAt.Format(domain.TimestampLayout))
	return strings.Join(parts, " · ")
}

// monitorHandler builds a handler that signals the monitor and acknowledges
func (s *CommandService) monitorHandler(action usecase.MonitorAction, ack string) handlerFunc {
	return func(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
		if err := s.monitorUC.Signal(ctx, action); err != nil {
			return markdown(domain.EscapeMarkdown(monitorUnavailable)), err
		}
		return markdown(domain.EscapeMarkdown(ack)), nil
	}
}

func (s *CommandService) handleLogs(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	n, err := usecase.ParseLineCount(msg.Args)
	if err != nil {
		return markdown(domain.EscapeMarkdown(s.texts.InvalidNumber)), err
	}

	lines, err := s.logUC.Tail(ctx, n)
	switch {
	case errors.Is(err, domain.ErrLogNotFound):
		return markdown(domain.EscapeMarkdown(s.texts.LogNotFound)), nil
	case errors.Is(err, domain.ErrLogEmpty):
		return markdown(domain.EscapeMarkdown(s.texts.LogEmpty)), nil
	case err != nil:
		return domain.OutgoingMessage{}, err
	}

	return markdown(renderLogs(lines, maxMessageRunes)), nil
}

// maxMessageRunes is Telegram's limit on a single message
const maxMessageRunes = 4096

// renderLogs renders lines as a code block within limit runes. The oldest
// lines are dropped first; a single oversized line keeps its tail.
func renderLogs(lines []string, limit int) string {
	for {
		text := fmt.Sprintf("📄 *Last %d log lines*\n\n```\n%s\n```", len(lines), domain.EscapeCode(strings.Join(lines, "\n")))
		over := utf8.RuneCountInString(text) - limit
		if over <= 0 {
			return text
		}
		if len(lines) > 1 {
			lines = lines[1:]
			continue
		}
		r := []rune(lines[0])
		if len(r) == 0 {
			return text
		}
		if over >= len(r) {
			lines = []string{""}
			continue
		}
		lines = []string{string(r[over:])}
	}
}

func (s *CommandService) handleHint(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
	return markdown(domain.EscapeMarkdown(s.texts.Hint)), nil
}
