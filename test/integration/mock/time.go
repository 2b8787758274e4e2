package mock

import (
	"sync"
	"time"
)

// Time is a clock that can be pinned to a date. Once pinned it keeps
// advancing with the wall clock from that point.
type Time struct {
	mu        sync.RWMutex
	pinnedAt  time.Time
	setAt     time.Time
	isPinned  bool
}

// NewTime returns a clock following the wall clock.
func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime pins the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinnedAt = currentTime
	t.setAt = time.Now()
	t.isPinned = true
}

// Reset returns the clock to the wall clock.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.isPinned = false
}

// Now returns the current mocked time.
func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.isPinned {
		return time.Now()
	}
	return t.pinnedAt.Add(time.Since(t.setAt))
}
