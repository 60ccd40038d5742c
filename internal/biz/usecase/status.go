package usecase

import (
	"context"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
)

// StatusUsecase assembles status snapshots
type StatusUsecase struct {
	state       *domain.BotState
	storageRepo repo.StorageRepo
	timeout     time.Duration
	now         func() time.Time
}

// NewStatusUsecase creates a new status usecase
func NewStatusUsecase(state *domain.BotState, storageRepo repo.StorageRepo, timeout time.Duration) *StatusUsecase {
	return &StatusUsecase{
		state:       state,
		storageRepo: storageRepo,
		timeout:     timeout,
		now:         time.Now,
	}
}

// Uptime returns the formatted time since process start
func (uc *StatusUsecase) Uptime() string {
	return domain.FormatUptime(uc.now(), uc.state.StartTime())
}

// IsMonitoring reports the monitor's running flag
func (uc *StatusUsecase) IsMonitoring() bool {
	return uc.state.IsMonitoring()
}

// Snapshot returns the current status. A storage failure still yields a
// snapshot (CountKnown=false) together with a *domain.CollaboratorError.
func (uc *StatusUsecase) Snapshot(ctx context.Context) (*domain.StatusSnapshot, error) {
	snap := &domain.StatusSnapshot{
		Monitoring: uc.state.IsMonitoring(),
		Uptime:     uc.Uptime(),
	}
	if t, ok := uc.state.LastLogin(); ok {
		snap.LastLogin = &t
	}
	if t, ok := uc.state.LastFetch(); ok {
		snap.LastFetch = &t
	}

	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	count, err := uc.storageRepo.GetOTPCount(ctx)
	if err != nil {
		return snap, &domain.CollaboratorError{Collaborator: "storage", Op: "count", Err: err}
	}
	snap.OTPCount = count
	snap.CountKnown = true
	return snap, nil
}

// withTimeout bounds a collaborator call; a non-positive timeout leaves ctx as is
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
