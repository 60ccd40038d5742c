package domain

import (
	"sync/atomic"
	"time"
)

// BotState is the process-wide status record read by /status and /start.
//
// StartTime is fixed at construction. The remaining fields are written only
// by the monitor callbacks; each field is swapped atomically so concurrent
// readers never see a partial value.
type BotState struct {
	startTime     time.Time
	monitoring    atomic.Bool
	lastLoginTime atomic.Pointer[time.Time]
	lastFetchTime atomic.Pointer[time.Time]
}

// NewBotState creates a BotState started at startTime
func NewBotState(startTime time.Time) *BotState {
	return &BotState{startTime: startTime}
}

// StartTime returns the process start time
func (s *BotState) StartTime() time.Time {
	return s.startTime
}

// IsMonitoring reports whether the monitor is currently running
func (s *BotState) IsMonitoring() bool {
	return s.monitoring.Load()
}

// SetMonitoring records the monitor's running flag
func (s *BotState) SetMonitoring(active bool) {
	s.monitoring.Store(active)
}

// MarkLogin records a successful upstream login
func (s *BotState) MarkLogin(t time.Time) {
	s.lastLoginTime.Store(&t)
}

// MarkFetch records a successful fetch cycle
func (s *BotState) MarkFetch(t time.Time) {
	s.lastFetchTime.Store(&t)
}

// LastLogin returns the last login time, ok is false if none was recorded
func (s *BotState) LastLogin() (time.Time, bool) {
	return load(&s.lastLoginTime)
}

// LastFetch returns the last fetch time, ok is false if none was recorded
func (s *BotState) LastFetch() (time.Time, bool) {
	return load(&s.lastFetchTime)
}

func load(p *atomic.Pointer[time.Time]) (time.Time, bool) {
	t := p.Load()
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}
