package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/usecase"
	"github.com/otpwatch/ivasms-admin-bot/internal/infra/telegram"
	"github.com/otpwatch/ivasms-admin-bot/internal/service"
)

// seenUpdateTTL is how long an update ID is remembered for deduplication
const seenUpdateTTL = 5 * time.Minute

// updateSource is the part of telegram.Client the server drives
type updateSource interface {
	OnMessage(handler telegram.MessageHandler)
	Start(ctx context.Context) error
	Stop()
}

// TelegramServer handles Telegram update processing
type TelegramServer struct {
	client      updateSource
	messageRepo repo.MessageRepo
	cmdSvc      *service.CommandService
	notifyUC    *usecase.NotifyUsecase
	startedText string

	// Update deduplication cache
	seenMu sync.Mutex
	seen   map[int]time.Time // updateID -> timestamp
}

// NewTelegramServer creates a new Telegram server
func NewTelegramServer(
	client *telegram.Client,
	messageRepo repo.MessageRepo,
	cmdSvc *service.CommandService,
	notifyUC *usecase.NotifyUsecase,
	startedText string,
) *TelegramServer {
	return newTelegramServer(client, messageRepo, cmdSvc, notifyUC, startedText)
}

func newTelegramServer(
	client updateSource,
	messageRepo repo.MessageRepo,
	cmdSvc *service.CommandService,
	notifyUC *usecase.NotifyUsecase,
	startedText string,
) *TelegramServer {
	return &TelegramServer{
		client:      client,
		messageRepo: messageRepo,
		cmdSvc:      cmdSvc,
		notifyUC:    notifyUC,
		startedText: startedText,
		seen:        make(map[int]time.Time),
	}
}

// Start announces the bot to the admins in the background and polls until
// ctx ends or Stop is called.
// A polling failure is reported to the admins before it is returned.
func (s *TelegramServer) Start(ctx context.Context) error {
	s.client.OnMessage(s.handleMessage)

	if s.startedText != "" {
		go s.announceStart(ctx)
	}

	err := s.client.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("[Server] Polling stopped: %v\n", err)
		s.notifyUC.ReportError(context.Background(), err, "Bot runtime")
		return err
	}
	return nil
}

func (s *TelegramServer) announceStart(ctx context.Context) {
	if err := s.notifyUC.SendStatusMessage(ctx, s.startedText, false); err != nil {
		fmt.Printf("[Server] Startup notification incomplete: %v\n", err)
	}
}

// Stop stops the server
func (s *TelegramServer) Stop() {
	s.client.Stop()
}

// handleMessage dispatches one update and sends its reply
func (s *TelegramServer) handleMessage(msg *telegram.Message) {
	fmt.Printf("[Server] Received update %d from chat %d: %s\n", msg.UpdateID, msg.ChatID, truncate(msg.Text, 50))

	if s.isUpdateSeen(msg.UpdateID) {
		fmt.Printf("[Server] Duplicate update ignored: %d\n", msg.UpdateID)
		return
	}

	ctx := context.Background()
	reply := s.cmdSvc.Dispatch(ctx, toInbound(msg))
	if reply == nil {
		return
	}

	if err := s.messageRepo.Send(ctx, reply.ChatID, reply.Message); err != nil {
		fmt.Printf("[Server] Failed to send reply to chat %d: %v\n", reply.ChatID, err)
		return
	}
	if reply.Outcome != service.OutcomeReplied {
		fmt.Printf("[Server] Update %d finished: %s\n", msg.UpdateID, reply.Outcome)
	}
}

func toInbound(msg *telegram.Message) *domain.InboundMessage {
	return &domain.InboundMessage{
		UpdateID:  msg.UpdateID,
		ChatID:    msg.ChatID,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		Command:   msg.Command,
		Args:      msg.Args,
		CreatedAt: msg.Date,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// isUpdateSeen records updateID and reports whether it was already processed.
// Expired records are pruned on every call.
func (s *TelegramServer) isUpdateSeen(updateID int) bool {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()

	now := time.Now()
	cutoff := now.Add(-seenUpdateTTL)
	for id, ts := range s.seen {
		if ts.Before(cutoff) {
			delete(s.seen, id)
		}
	}

	if _, exists := s.seen[updateID]; exists {
		return true
	}
	s.seen[updateID] = now
	return false
}
