package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectsOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 40, H: 40}

	assert.True(t, RectsOverlap(a, Rect{X: 20, Y: 20, W: 40, H: 40}))
	assert.True(t, RectsOverlap(a, Rect{X: 10, Y: 10, W: 10, H: 10}), "containment counts as overlap")
	assert.False(t, RectsOverlap(a, Rect{X: 100, Y: 100, W: 40, H: 40}))

	// Edge contact is not overlap.
	assert.False(t, RectsOverlap(a, Rect{X: 40, Y: 0, W: 40, H: 40}))
	assert.False(t, RectsOverlap(a, Rect{X: 0, Y: 40, W: 40, H: 40}))
}

func TestPointInAnyWall(t *testing.T) {
	walls := []Wall{
		{X: 100, Y: 100, Width: 50, Height: 50},
		{X: 300, Y: 0, Width: 50, Height: 50},
	}

	assert.True(t, PointInAnyWall(125, 125, walls))
	assert.True(t, PointInAnyWall(100, 100, walls), "lower bound is inclusive")
	assert.False(t, PointInAnyWall(150, 150, walls), "upper bound is exclusive")
	assert.False(t, PointInAnyWall(50, 50, walls))
	assert.False(t, PointInAnyWall(0, 0, nil))
}

func TestRectInAnyWall(t *testing.T) {
	walls := []Wall{{X: 100, Y: 100, Width: 50, Height: 50}}

	assert.True(t, rectInAnyWall(Rect{X: 90, Y: 90, W: 40, H: 40}, walls))
	assert.False(t, rectInAnyWall(Rect{X: 0, Y: 0, W: 40, H: 40}, walls))
	// A rect whose corner only touches the wall edge stays legal.
	assert.False(t, rectInAnyWall(Rect{X: 60, Y: 60, W: 40, H: 40}, walls))
}
