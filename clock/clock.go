// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// tickInterval is how often the cached wall clock refreshes. The
// countdown only needs minute resolution.
const tickInterval = 60 * time.Second

// Clock answers "is voting still open" against a fixed deadline. The
// current time is sampled on a fixed interval rather than per call, the
// same cadence a browser poll view re-renders its countdown on.
//
// A zero deadline disables enforcement: voting never closes and the
// countdown is empty.
type Clock struct {
	deadline time.Time

	mu  sync.RWMutex
	now time.Time
}

// New creates a Clock anchored at the current time.
func New(deadline time.Time) *Clock {
	return &Clock{deadline: deadline, now: time.Now()}
}

// Run refreshes the cached time every minute until ctx is cancelled.
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case t := <-ticker.C:
			c.mu.Lock()
			c.now = t
			c.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// Deadline returns the configured deadline, zero when enforcement is off.
func (c *Clock) Deadline() time.Time {
	return c.deadline
}

// Enforced reports whether a deadline is configured at all.
func (c *Clock) Enforced() bool {
	return !c.deadline.IsZero()
}

// Closed reports whether voting is closed as of the last tick.
func (c *Clock) Closed() bool {
	c.mu.RLock()
	now := c.now
	c.mu.RUnlock()
	return ClosedAt(c.deadline, now)
}

// Countdown returns the human countdown as of the last tick.
func (c *Clock) Countdown() string {
	c.mu.RLock()
	now := c.now
	c.mu.RUnlock()
	return Countdown(c.deadline, now)
}

// ClosedAt reports whether voting is closed at a given instant. A zero
// deadline never closes.
func ClosedAt(deadline, now time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	return !now.Before(deadline)
}

// Countdown formats the remaining time in the coarsest applicable
// bucket: days+hours, else hours+minutes, else minutes. Past the
// deadline it reports closure. This exact bucketing is part of the UI
// contract; do not swap in a generic duration formatter.
func Countdown(deadline, now time.Time) string {
	if deadline.IsZero() {
		return ""
	}

	diff := deadline.Sub(now)
	if diff <= 0 {
		return "Voting closed"
	}

	totalMinutes := int(diff / time.Minute)
	days := totalMinutes / (60 * 24)
	hours := (totalMinutes % (60 * 24)) / 60
	minutes := totalMinutes % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh left", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	}
	return fmt.Sprintf("%dm left", minutes)
}
