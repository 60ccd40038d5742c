package repo

import (
	"context"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
)

// StorageRepo is the OTP storage collaborator interface
type StorageRepo interface {
	// GetOTPCount returns the total number of stored OTPs
	GetOTPCount(ctx context.Context) (int, error)

	// GetRecentOTPs returns up to limit OTPs, newest first
	GetRecentOTPs(ctx context.Context, limit int) ([]domain.OTP, error)

	// GetLastOTP returns the newest OTP, or nil if none are stored
	GetLastOTP(ctx context.Context) (*domain.OTP, error)

	Close() error
}
