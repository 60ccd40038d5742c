package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// storageRepo reads OTP records from the SQLite database shared with the monitor
type storageRepo struct {
	db *sql.DB
}

// NewStorageRepo opens the OTP database
func NewStorageRepo(dbPath string) (repo.StorageRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The monitor owns writes; wait instead of failing while it holds the lock
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Create table so an empty database reports zero OTPs
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS otps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL,
			service TEXT,
			phone_number TEXT,
			message TEXT,
			received_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create otps table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_otps_received ON otps(received_at)`); err != nil {
		fmt.Printf("[Storage] Warning: failed to create received_at index: %v\n", err)
	}

	fmt.Println("[Storage] Database initialized")
	return &storageRepo{db: db}, nil
}

// GetOTPCount returns the total number of stored OTPs
func (r *storageRepo) GetOTPCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM otps`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count otps: %w", err)
	}
	return count, nil
}

// GetRecentOTPs returns up to limit OTPs, newest first
func (r *storageRepo) GetRecentOTPs(ctx context.Context, limit int) ([]domain.OTP, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, service, phone_number, message, received_at
		FROM otps
		ORDER BY received_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query otps: %w", err)
	}
	defer rows.Close()

	var otps []domain.OTP
	for rows.Next() {
		otp, err := scanOTP(rows)
		if err != nil {
			return nil, err
		}
		otps = append(otps, *otp)
	}
	return otps, rows.Err()
}

// GetLastOTP returns the newest OTP, or nil if none are stored
func (r *storageRepo) GetLastOTP(ctx context.Context) (*domain.OTP, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, code, service, phone_number, message, received_at
		FROM otps
		ORDER BY received_at DESC, id DESC
		LIMIT 1
	`)
	otp, err := scanOTP(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return otp, err
}

// Close closes the database
func (r *storageRepo) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOTP(s rowScanner) (*domain.OTP, error) {
	var (
		otp                     domain.OTP
		service, phone, message sql.NullString
		receivedAt              int64
	)
	if err := s.Scan(&otp.ID, &otp.Code, &service, &phone, &message, &receivedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan otp: %w", err)
	}
	otp.Service = service.String
	otp.PhoneNumber = phone.String
	otp.Message = message.String
	otp.ReceivedAt = time.Unix(receivedAt, 0)
	return &otp, nil
}
