package biz

import (
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Notify  *usecase.NotifyUsecase
	Status  *usecase.StatusUsecase
	OTP     *usecase.OTPUsecase
	Monitor *usecase.MonitorUsecase
	Logs    *usecase.LogUsecase
}

// NewUsecases wires every usecase around a shared BotState
func NewUsecases(
	state *domain.BotState,
	admins domain.AdminSet,
	messageRepo repo.MessageRepo,
	storageRepo repo.StorageRepo,
	monitorRepo repo.MonitorRepo,
	logRepo repo.LogRepo,
	notifyCfg usecase.NotifyConfig,
	timeout time.Duration,
) *Usecases {
	notifyUC := usecase.NewNotifyUsecase(messageRepo, admins, notifyCfg)
	return &Usecases{
		Notify:  notifyUC,
		Status:  usecase.NewStatusUsecase(state, storageRepo, timeout),
		OTP:     usecase.NewOTPUsecase(storageRepo, timeout),
		Monitor: usecase.NewMonitorUsecase(monitorRepo, state, notifyUC, timeout),
		Logs:    usecase.NewLogUsecase(logRepo),
	}
}
