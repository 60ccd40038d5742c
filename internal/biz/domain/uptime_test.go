package domain

import (
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{0, "0m"},
		{59 * time.Second, "0m"},
		{60 * time.Second, "1m"},
		{3599 * time.Second, "59m"},
		{3600 * time.Second, "1h 0m"},
		{2*time.Hour + 5*time.Minute + 59*time.Second, "2h 5m"},
		{90000 * time.Second, "1d 1h 0m"},
		{3*24*time.Hour + 23*time.Hour + 59*time.Minute, "3d 23h 59m"},
	}

	for _, tt := range tests {
		result := FormatUptime(start.Add(tt.elapsed), start)
		if result != tt.expected {
			t.Errorf("FormatUptime(%v) = %q, want %q", tt.elapsed, result, tt.expected)
		}
	}
}

func TestFormatUptime_ClockSkew(t *testing.T) {
	start := time.Now()
	if got := FormatUptime(start.Add(-time.Minute), start); got != "0m" {
		t.Errorf("Expected 0m for negative elapsed time, got %q", got)
	}
}
