package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockCountsDown(t *testing.T) {
	start := time.Now()
	c := NewGameClock(60*time.Second, start)

	assert.Equal(t, 60*time.Second, c.TimeLeft(start))
	assert.Equal(t, 45*time.Second, c.TimeLeft(start.Add(15*time.Second)))
	assert.Equal(t, 59, c.SecondsLeft(start.Add(500*time.Millisecond)))
}

func TestClockNeverNegative(t *testing.T) {
	start := time.Now()
	c := NewGameClock(60*time.Second, start)

	assert.Equal(t, time.Duration(0), c.TimeLeft(start.Add(2*time.Minute)))
}

func TestClockPauseFreezesTime(t *testing.T) {
	start := time.Now()
	c := NewGameClock(60*time.Second, start)

	c.Pause(start.Add(10 * time.Second))
	assert.True(t, c.Paused())

	// Time does not advance while paused, regardless of wall time.
	assert.Equal(t, 50*time.Second, c.TimeLeft(start.Add(10*time.Second)))
	assert.Equal(t, 50*time.Second, c.TimeLeft(start.Add(30*time.Second)))

	c.Resume(start.Add(30 * time.Second))
	assert.False(t, c.Paused())
	// 20s of pause are excluded: at +45s only 25s of active play elapsed.
	assert.Equal(t, 35*time.Second, c.TimeLeft(start.Add(45*time.Second)))
}

func TestClockDoublePauseIsNoop(t *testing.T) {
	start := time.Now()
	c := NewGameClock(60*time.Second, start)

	c.Pause(start.Add(5 * time.Second))
	c.Pause(start.Add(20 * time.Second))
	c.Resume(start.Add(25 * time.Second))
	c.Resume(start.Add(40 * time.Second))

	// Only the 5s..25s window counts as paused.
	assert.Equal(t, 50*time.Second, c.TimeLeft(start.Add(30*time.Second)))
}

func TestClockReset(t *testing.T) {
	start := time.Now()
	c := NewGameClock(60*time.Second, start)
	c.Pause(start.Add(10 * time.Second))

	later := start.Add(2 * time.Minute)
	c.Reset(later)

	assert.False(t, c.Paused())
	assert.Equal(t, 60*time.Second, c.TimeLeft(later))
	assert.Equal(t, 30*time.Second, c.TimeLeft(later.Add(30*time.Second)))
}
