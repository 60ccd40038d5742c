package data

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
)

// maxLogLineBytes bounds a single log line read by the scanner
const maxLogLineBytes = 1024 * 1024

// logFileRepo tails a log file on disk
type logFileRepo struct {
	path string
}

// NewLogFileRepo creates a log repository for path
func NewLogFileRepo(path string) repo.LogRepo {
	return &logFileRepo{path: path}
}

// Tail returns the last n lines of the file in chronological order.
// Only a ring of n lines is kept in memory.
func (r *logFileRepo) Tail(ctx context.Context, n int) ([]string, error) {
	if n < 1 {
		return nil, &domain.ValidationError{Field: "lines", Message: "must be positive"}
	}

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	ring := make([]string, n)
	total := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLogLineBytes)
	for scanner.Scan() {
		ring[total%n] = scanner.Text()
		total++
		if total%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	if total == 0 {
		return nil, domain.ErrLogEmpty
	}

	count := n
	if total < n {
		count = total
	}
	lines := make([]string, 0, count)
	for i := total - count; i < total; i++ {
		lines = append(lines, ring[i%n])
	}
	return lines, nil
}
