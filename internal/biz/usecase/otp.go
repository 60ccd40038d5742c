package usecase

import (
	"context"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
)

// Recent OTP listing bounds
const (
	DefaultRecentOTPs = 5
	MaxRecentOTPs     = 20
)

// OTPUsecase queries the storage collaborator for OTP records
type OTPUsecase struct {
	storageRepo repo.StorageRepo
	timeout     time.Duration
}

// NewOTPUsecase creates a new OTP usecase
func NewOTPUsecase(storageRepo repo.StorageRepo, timeout time.Duration) *OTPUsecase {
	return &OTPUsecase{storageRepo: storageRepo, timeout: timeout}
}

// Recent returns up to limit OTPs, newest first
func (uc *OTPUsecase) Recent(ctx context.Context, limit int) ([]domain.OTP, error) {
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	otps, err := uc.storageRepo.GetRecentOTPs(ctx, limit)
	if err != nil {
		return nil, &domain.CollaboratorError{Collaborator: "storage", Op: "recent", Err: err}
	}
	return otps, nil
}

// Last returns the newest OTP, or nil if storage is empty
func (uc *OTPUsecase) Last(ctx context.Context) (*domain.OTP, error) {
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	otp, err := uc.storageRepo.GetLastOTP(ctx)
	if err != nil {
		return nil, &domain.CollaboratorError{Collaborator: "storage", Op: "last", Err: err}
	}
	return otp, nil
}
