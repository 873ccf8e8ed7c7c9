package clock

import (
	"sync"
	"time"
)

const day = 24 * time.Hour

// Clock supplies the current instant. Ledger code never reads time.Now directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System is the wall clock.
var System Clock = systemClock{}

// Manual is a settable clock for tests and tooling.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Advance moves the clock forward by the given number of whole days.
func (m *Manual) Advance(days int) {
	m.mu.Lock()
	m.now = m.now.AddDate(0, 0, days)
	m.mu.Unlock()
}

// Today returns the calendar date of c.Now() as UTC midnight.
func Today(c Clock) time.Time {
	return Date(c.Now())
}

// Date truncates t to its calendar date, expressed as UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)) / day)
}
