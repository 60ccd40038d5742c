package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
)

// MonitorAction is a lifecycle signal sent to the monitor
type MonitorAction string

const (
	MonitorStart      MonitorAction = "start"
	MonitorStop       MonitorAction = "stop"
	MonitorRestart    MonitorAction = "restart"
	MonitorForceFetch MonitorAction = "fetch"
)

// MonitorUsecase controls the monitor and receives its state push-backs.
// The push-backs are the only writers of BotState.
type MonitorUsecase struct {
	monitorRepo repo.MonitorRepo
	state       *domain.BotState
	notifyUC    *NotifyUsecase
	timeout     time.Duration
}

// NewMonitorUsecase creates a new monitor usecase
func NewMonitorUsecase(monitorRepo repo.MonitorRepo, state *domain.BotState, notifyUC *NotifyUsecase, timeout time.Duration) *MonitorUsecase {
	return &MonitorUsecase{
		monitorRepo: monitorRepo,
		state:       state,
		notifyUC:    notifyUC,
		timeout:     timeout,
	}
}

// Signal sends a lifecycle action to the monitor
func (uc *MonitorUsecase) Signal(ctx context.Context, action MonitorAction) error {
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	var err error
	switch action {
	case MonitorStart:
		err = uc.monitorRepo.Start(ctx)
	case MonitorStop:
		err = uc.monitorRepo.Stop(ctx)
	case MonitorRestart:
		err = uc.monitorRepo.Restart(ctx)
	case MonitorForceFetch:
		err = uc.monitorRepo.ForceFetch(ctx)
	default:
		return fmt.Errorf("unknown monitor action %q", action)
	}
	if err != nil {
		return &domain.CollaboratorError{Collaborator: "monitor", Op: string(action), Err: err}
	}
	return nil
}

// OnLogin records a successful upstream login
func (uc *MonitorUsecase) OnLogin(t time.Time) {
	uc.state.MarkLogin(t)
}

// OnFetch records a completed fetch cycle
func (uc *MonitorUsecase) OnFetch(t time.Time) {
	uc.state.MarkFetch(t)
}

// OnMonitoring records whether the monitor loop is running
func (uc *MonitorUsecase) OnMonitoring(active bool) {
	uc.state.SetMonitoring(active)
}

// OnError reports a monitor runtime error to every admin
func (uc *MonitorUsecase) OnError(ctx context.Context, err error, label string) {
	if label == "" {
		label = "Monitor"
	}
	uc.notifyUC.ReportError(ctx, err, label)
}
