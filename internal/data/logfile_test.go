package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLogTail_NotFound(t *testing.T) {
	r := NewLogFileRepo(filepath.Join(t.TempDir(), "missing.log"))
	if _, err := r.Tail(context.Background(), 20); !errors.Is(err, domain.ErrLogNotFound) {
		t.Errorf("Expected ErrLogNotFound, got %v", err)
	}
}

func TestLogTail_Empty(t *testing.T) {
	r := NewLogFileRepo(writeLog(t, ""))
	if _, err := r.Tail(context.Background(), 20); !errors.Is(err, domain.ErrLogEmpty) {
		t.Errorf("Expected ErrLogEmpty, got %v", err)
	}
}

func TestLogTail_FewerLinesThanRequested(t *testing.T) {
	r := NewLogFileRepo(writeLog(t, "a\nb\nc\nd\ne\n"))

	lines, err := r.Tail(context.Background(), 20)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Join(lines, ",") != "a,b,c,d,e" {
		t.Errorf("Expected all 5 lines in order, got %v", lines)
	}
}

func TestLogTail_LastN(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 250; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	r := NewLogFileRepo(writeLog(t, b.String()))

	lines, err := r.Tail(context.Background(), 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Join(lines, ",") != "line 248,line 249,line 250" {
		t.Errorf("Unexpected tail %v", lines)
	}
}

func TestLogTail_NoTrailingNewline(t *testing.T) {
	r := NewLogFileRepo(writeLog(t, "first\nsecond"))

	lines, err := r.Tail(context.Background(), 1)
	if err != nil || len(lines) != 1 || lines[0] != "second" {
		t.Errorf("Expected [second], got %v (%v)", lines, err)
	}
}

func TestLogTail_InvalidCount(t *testing.T) {
	r := NewLogFileRepo(writeLog(t, "x\n"))
	var ve *domain.ValidationError
	if _, err := r.Tail(context.Background(), 0); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}
