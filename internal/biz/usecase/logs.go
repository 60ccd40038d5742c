package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
)

// Log tail bounds
const (
	DefaultLogLines = 20
	MinLogLines     = 1
	MaxLogLines     = 100
)

// LogUsecase tails the log sink
type LogUsecase struct {
	logRepo repo.LogRepo
}

// NewLogUsecase creates a new log usecase
func NewLogUsecase(logRepo repo.LogRepo) *LogUsecase {
	return &LogUsecase{logRepo: logRepo}
}

// Tail returns the last n lines. n outside [MinLogLines, MaxLogLines] is
// rejected without touching the log sink.
func (uc *LogUsecase) Tail(ctx context.Context, n int) ([]string, error) {
	if n < MinLogLines || n > MaxLogLines {
		return nil, &domain.ValidationError{
			Field:   "lines",
			Message: fmt.Sprintf("must be between %d and %d", MinLogLines, MaxLogLines),
		}
	}
	return uc.logRepo.Tail(ctx, n)
}

// ParseLineCount parses the optional /logs argument
func ParseLineCount(args []string) (int, error) {
	return ParseCount(args, DefaultLogLines, MinLogLines, MaxLogLines)
}

// ParseCount parses an optional numeric first argument, defaulting to def
// and clamping to [min, max]. Non-numeric input is a ValidationError.
func ParseCount(args []string, def, min, max int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, &domain.ValidationError{Field: "count", Message: "invalid number format"}
	}
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n, nil
}
