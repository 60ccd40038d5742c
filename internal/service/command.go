package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/usecase"
)

// ReplyTexts contains the configurable plain-text replies
type ReplyTexts struct {
	BotTitle      string
	Unauthorized  string
	Hint          string
	GenericError  string
	InvalidNumber string
	LogNotFound   string
	LogEmpty      string
	NoOTPs        string
}

// Outcome is the terminal state of one dispatched update
type Outcome string

const (
	OutcomeReplied      Outcome = "replied"
	OutcomeDegraded     Outcome = "degraded"     // partial reply, failure reported to admins
	OutcomeRejected     Outcome = "rejected"     // validation error
	OutcomeUnauthorized Outcome = "unauthorized" // sender not an admin
	OutcomeHandlerError Outcome = "handler_error"
)

// Reply is the single response produced for an inbound update
type Reply struct {
	ChatID  int64
	Message domain.OutgoingMessage
	Outcome Outcome
}

// handlerFunc executes one command for an authorized sender
type handlerFunc func(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error)

// CommandService routes commands to handlers behind the admin check
type CommandService struct {
	admins     domain.AdminSet
	statusUC   *usecase.StatusUsecase
	otpUC      *usecase.OTPUsecase
	monitorUC  *usecase.MonitorUsecase
	logUC      *usecase.LogUsecase
	notifyUC   *usecase.NotifyUsecase
	configView repo.ConfigViewRepo
	texts      ReplyTexts
}

// NewCommandService creates a new command service
func NewCommandService(
	admins domain.AdminSet,
	statusUC *usecase.StatusUsecase,
	otpUC *usecase.OTPUsecase,
	monitorUC *usecase.MonitorUsecase,
	logUC *usecase.LogUsecase,
	notifyUC *usecase.NotifyUsecase,
	configView repo.ConfigViewRepo,
	texts ReplyTexts,
) *CommandService {
	return &CommandService{
		admins:     admins,
		statusUC:   statusUC,
		otpUC:      otpUC,
		monitorUC:  monitorUC,
		logUC:      logUC,
		notifyUC:   notifyUC,
		configView: configView,
		texts:      texts,
	}
}

// Dispatch handles one inbound update and returns its reply.
// It returns nil for commands that are not registered.
func (s *CommandService) Dispatch(ctx context.Context, msg *domain.InboundMessage) *Reply {
	var (
		handler handlerFunc
		label   string
	)
	if msg.IsCommand() {
		cmd, ok := domain.ParseCommand(msg.Command)
		if !ok {
			return nil
		}
		handler = s.handlerFor(cmd)
		label = "Command /" + string(cmd)
	} else {
		handler = s.handleHint
		label = "Message"
	}

	if !s.authorized(msg) {
		fmt.Printf("[Command] Unauthorized %s from chat %d\n", label, msg.ChatID)
		return &Reply{
			ChatID:  msg.ChatID,
			Message: domain.OutgoingMessage{Text: s.texts.Unauthorized},
			Outcome: OutcomeUnauthorized,
		}
	}

	out, err := s.execute(ctx, handler, msg)
	if err == nil {
		return &Reply{ChatID: msg.ChatID, Message: out, Outcome: OutcomeReplied}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		if out.Text == "" {
			out = markdown(domain.EscapeMarkdown("❌ " + ve.Message))
		}
		return &Reply{ChatID: msg.ChatID, Message: out, Outcome: OutcomeRejected}
	}

	fmt.Printf("[Command] %s failed: %v\n", label, err)
	s.notifyUC.ReportError(ctx, err, label)

	if out.Text != "" {
		return &Reply{ChatID: msg.ChatID, Message: out, Outcome: OutcomeDegraded}
	}
	return &Reply{
		ChatID:  msg.ChatID,
		Message: markdown(domain.EscapeMarkdown(s.texts.GenericError)),
		Outcome: OutcomeHandlerError,
	}
}

// authorized is the admin gate every handler sits behind
func (s *CommandService) authorized(msg *domain.InboundMessage) bool {
	return s.admins.Contains(msg.ChatID)
}

// execute runs a handler, turning a panic into a *domain.PanicError
func (s *CommandService) execute(ctx context.Context, handler handlerFunc, msg *domain.InboundMessage) (out domain.OutgoingMessage, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.OutgoingMessage{}
			err = &domain.PanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()
	return handler(ctx, msg)
}

// handlerFor maps every registered command to its handler
func (s *CommandService) handlerFor(cmd domain.Command) handlerFunc {
	switch cmd {
	case domain.CommandStart:
		return s.handleStart
	case domain.CommandStatus:
		return s.handleStatus
	case domain.CommandConfig:
		return s.handleConfig
	case domain.CommandInfo:
		return s.handleInfo
	case domain.CommandRecentOTPs:
		return s.handleRecentOTPs
	case domain.CommandLastOTP:
		return s.handleLastOTP
	case domain.CommandNewOTP:
		return s.monitorHandler(usecase.MonitorForceFetch, "🔄 Manual fetch triggered")
	case domain.CommandRestart:
		return s.monitorHandler(usecase.MonitorRestart, "🔁 Restart signal sent to monitor")
	case domain.CommandStop:
		return s.monitorHandler(usecase.MonitorStop, "⏹ Stop signal sent to monitor")
	case domain.CommandStartMonitor:
		return s.monitorHandler(usecase.MonitorStart, "▶️ Start signal sent to monitor")
	case domain.CommandLogs:
		return s.handleLogs
	}
	return func(ctx context.Context, msg *domain.InboundMessage) (domain.OutgoingMessage, error) {
		return domain.OutgoingMessage{}, fmt.Errorf("no handler registered for %q", cmd)
	}
}

func markdown(text string) domain.OutgoingMessage {
	return domain.OutgoingMessage{Text: text, Mode: domain.ParseModeMarkdownV2}
}
