package game

import "time"

// GameClock is the session's authoritative pause-aware countdown. TimeLeft is
// non-increasing while the clock runs and constant while it is paused.
type GameClock struct {
	start       time.Time
	duration    time.Duration
	pausedTotal time.Duration
	pausedAt    time.Time
	paused      bool
}

// NewGameClock returns a clock that starts counting from now.
func NewGameClock(duration time.Duration, now time.Time) GameClock {
	return GameClock{start: now, duration: duration}
}

// Reset restarts the countdown from now, discarding accumulated pauses.
func (c *GameClock) Reset(now time.Time) {
	c.start = now
	c.pausedTotal = 0
	c.pausedAt = time.Time{}
	c.paused = false
}

// Pause freezes elapsed-time accounting. Pausing an already-paused clock is a
// no-op.
func (c *GameClock) Pause(now time.Time) {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = now
}

// Resume unfreezes the clock, folding the pause into pausedTotal.
func (c *GameClock) Resume(now time.Time) {
	if !c.paused {
		return
	}
	c.pausedTotal += now.Sub(c.pausedAt)
	c.pausedAt = time.Time{}
	c.paused = false
}

// Paused reports whether the clock is currently frozen.
func (c *GameClock) Paused() bool {
	return c.paused
}

// TimeLeft returns the remaining session time, never below zero.
func (c *GameClock) TimeLeft(now time.Time) time.Duration {
	elapsed := now.Sub(c.start) - c.pausedTotal
	if c.paused {
		elapsed -= now.Sub(c.pausedAt)
	}
	left := c.duration - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// SecondsLeft is TimeLeft rounded down to whole seconds for broadcast.
func (c *GameClock) SecondsLeft(now time.Time) int {
	return int(c.TimeLeft(now) / time.Second)
}
