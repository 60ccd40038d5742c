package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T) *storageRepo {
	t.Helper()
	r, err := NewStorageRepo(filepath.Join(t.TempDir(), "nested", "otps.db"))
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r.(*storageRepo)
}

func insertOTP(t *testing.T, r *storageRepo, code, service string, at time.Time) {
	t.Helper()
	_, err := r.db.Exec(`INSERT INTO otps (code, service, phone_number, message, received_at) VALUES (?, ?, ?, ?, ?)`,
		code, service, "+10000000", "Your code is "+code, at.Unix())
	if err != nil {
		t.Fatalf("Failed to insert otp: %v", err)
	}
}

func TestStorage_Empty(t *testing.T) {
	r := newTestStorage(t)
	ctx := context.Background()

	count, err := r.GetOTPCount(ctx)
	if err != nil || count != 0 {
		t.Errorf("Expected 0 otps, got %d (%v)", count, err)
	}

	last, err := r.GetLastOTP(ctx)
	if err != nil || last != nil {
		t.Errorf("Expected nil last otp, got %+v (%v)", last, err)
	}

	recent, err := r.GetRecentOTPs(ctx, 5)
	if err != nil || len(recent) != 0 {
		t.Errorf("Expected no recent otps, got %v (%v)", recent, err)
	}
}

func TestStorage_Queries(t *testing.T) {
	r := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	insertOTP(t, r, "111111", "WhatsApp", base)
	insertOTP(t, r, "333333", "Google", base.Add(2*time.Minute))
	insertOTP(t, r, "222222", "Telegram", base.Add(time.Minute))

	count, err := r.GetOTPCount(ctx)
	if err != nil || count != 3 {
		t.Errorf("Expected 3 otps, got %d (%v)", count, err)
	}

	last, err := r.GetLastOTP(ctx)
	if err != nil {
		t.Fatalf("GetLastOTP failed: %v", err)
	}
	if last.Code != "333333" || last.Service != "Google" || !last.ReceivedAt.Equal(base.Add(2*time.Minute)) {
		t.Errorf("Unexpected last otp %+v", last)
	}

	recent, err := r.GetRecentOTPs(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecentOTPs failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Code != "333333" || recent[1].Code != "222222" {
		t.Errorf("Expected newest first, got %+v", recent)
	}
	if recent[0].PhoneNumber != "+10000000" || recent[0].Message != "Your code is 333333" {
		t.Errorf("Unexpected fields %+v", recent[0])
	}
}

func TestStorage_ClosedDatabaseFails(t *testing.T) {
	r := newTestStorage(t)
	r.Close()

	if _, err := r.GetOTPCount(context.Background()); err == nil {
		t.Error("Expected error from closed database")
	}
}

func TestStorage_CreatesReceivedAtIndex(t *testing.T) {
	r := newTestStorage(t)

	var name string
	err := r.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_otps_received'`).Scan(&name)
	if err != nil {
		t.Fatalf("Expected received_at index: %v", err)
	}
}
