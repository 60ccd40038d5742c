package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
)

// Mock implementations

type sentMessage struct {
	ChatID int64
	Msg    domain.OutgoingMessage
}

type mockMessageRepo struct {
	failFor map[int64]bool
	sent    []sentMessage
	mu      sync.Mutex
}

func (m *mockMessageRepo) Send(ctx context.Context, chatID int64, msg domain.OutgoingMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[chatID] {
		return errors.New("chat not found")
	}
	m.sent = append(m.sent, sentMessage{ChatID: chatID, Msg: msg})
	return nil
}

func (m *mockMessageRepo) recipients() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for _, s := range m.sent {
		ids = append(ids, s.ChatID)
	}
	return ids
}

type mockStorageRepo struct {
	count int
	otps  []domain.OTP
	err   error
	block bool
	calls int
	mu    sync.Mutex
}

func (m *mockStorageRepo) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *mockStorageRepo) GetOTPCount(ctx context.Context) (int, error) {
	m.record()
	if m.block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	return m.count, m.err
}

func (m *mockStorageRepo) GetRecentOTPs(ctx context.Context, limit int) ([]domain.OTP, error) {
	m.record()
	if m.err != nil {
		return nil, m.err
	}
	if len(m.otps) > limit {
		return m.otps[:limit], nil
	}
	return m.otps, nil
}

func (m *mockStorageRepo) GetLastOTP(ctx context.Context) (*domain.OTP, error) {
	m.record()
	if m.err != nil {
		return nil, m.err
	}
	if len(m.otps) == 0 {
		return nil, nil
	}
	return &m.otps[0], nil
}

func (m *mockStorageRepo) Close() error { return nil }

type mockMonitorRepo struct {
	actions []string
	err     error
}

func (m *mockMonitorRepo) Start(ctx context.Context) error {
	m.actions = append(m.actions, "start")
	return m.err
}

func (m *mockMonitorRepo) Stop(ctx context.Context) error {
	m.actions = append(m.actions, "stop")
	return m.err
}

func (m *mockMonitorRepo) Restart(ctx context.Context) error {
	m.actions = append(m.actions, "restart")
	return m.err
}

func (m *mockMonitorRepo) ForceFetch(ctx context.Context) error {
	m.actions = append(m.actions, "fetch")
	return m.err
}

type mockLogRepo struct {
	lines []string
	err   error
	calls int
}

func (m *mockLogRepo) Tail(ctx context.Context, n int) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.lines) > n {
		return m.lines[len(m.lines)-n:], nil
	}
	return m.lines, nil
}
