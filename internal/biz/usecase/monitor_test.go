package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
)

func TestMonitorSignal(t *testing.T) {
	monitorRepo := &mockMonitorRepo{}
	uc := NewMonitorUsecase(monitorRepo, domain.NewBotState(time.Now()), nil, time.Second)

	for _, a := range []MonitorAction{MonitorStart, MonitorStop, MonitorRestart, MonitorForceFetch} {
		if err := uc.Signal(context.Background(), a); err != nil {
			t.Errorf("Signal(%s) unexpected error: %v", a, err)
		}
	}

	expected := []string{"start", "stop", "restart", "fetch"}
	if len(monitorRepo.actions) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, monitorRepo.actions)
	}
	for i, a := range expected {
		if monitorRepo.actions[i] != a {
			t.Errorf("Action %d: expected %s, got %s", i, a, monitorRepo.actions[i])
		}
	}
}

func TestMonitorSignal_Failure(t *testing.T) {
	monitorRepo := &mockMonitorRepo{err: errors.New("connection refused")}
	uc := NewMonitorUsecase(monitorRepo, domain.NewBotState(time.Now()), nil, time.Second)

	err := uc.Signal(context.Background(), MonitorForceFetch)
	var ce *domain.CollaboratorError
	if !errors.As(err, &ce) || ce.Collaborator != "monitor" || ce.Op != "fetch" {
		t.Errorf("Expected monitor CollaboratorError, got %v", err)
	}

	if err := uc.Signal(context.Background(), MonitorAction("reboot")); err == nil {
		t.Error("Expected error for unknown action")
	}
}

func TestMonitorPushBacks(t *testing.T) {
	state := domain.NewBotState(time.Now())
	msgRepo := &mockMessageRepo{}
	notifyUC := NewNotifyUsecase(msgRepo, domain.NewAdminSet([]int64{1, 2}), testNotifyConfig())
	uc := NewMonitorUsecase(&mockMonitorRepo{}, state, notifyUC, time.Second)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.OnMonitoring(true)
	uc.OnLogin(now)
	uc.OnFetch(now.Add(time.Minute))

	if !state.IsMonitoring() {
		t.Error("Expected monitoring flag set")
	}
	if got, ok := state.LastLogin(); !ok || !got.Equal(now) {
		t.Errorf("Unexpected last login %v", got)
	}
	if got, ok := state.LastFetch(); !ok || !got.Equal(now.Add(time.Minute)) {
		t.Errorf("Unexpected last fetch %v", got)
	}

	uc.OnError(context.Background(), errors.New("session expired"), "")
	if len(msgRepo.sent) != 2 {
		t.Errorf("Expected error report to both admins, got %d sends", len(msgRepo.sent))
	}
}
