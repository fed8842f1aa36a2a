package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labyrinth-server/config"
)

func TestGenerateLabyrinthKeepsClearZoneEmpty(t *testing.T) {
	centerCol := config.GRID_COLS / 2
	centerRow := config.GRID_ROWS / 2

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		for seed := int64(0); seed < 20; seed++ {
			walls := GenerateLabyrinth(d, rand.New(rand.NewSource(seed)))
			for _, w := range walls {
				col := int(w.X / config.CELL_WIDTH)
				row := int(w.Y / config.CELL_HEIGHT)
				inClearZone := col >= centerCol-config.CLEAR_ZONE && col <= centerCol+config.CLEAR_ZONE &&
					row >= centerRow-config.CLEAR_ZONE && row <= centerRow+config.CLEAR_ZONE
				assert.False(t, inClearZone, "difficulty %s seed %d: wall at col=%d row=%d inside clear zone", d, seed, col, row)
			}
		}
	}
}

func TestGenerateLabyrinthRespectsSafeDistance(t *testing.T) {
	safeDistance := math.Max(config.CELL_WIDTH, config.CELL_HEIGHT) * 3
	centerX := config.BOARD_WIDTH / 2
	centerY := config.BOARD_HEIGHT / 2

	walls := GenerateLabyrinth(Hard, rand.New(rand.NewSource(7)))
	require.NotEmpty(t, walls)
	for _, w := range walls {
		dx := (w.X + w.Width/2) - centerX
		dy := (w.Y + w.Height/2) - centerY
		assert.Greater(t, math.Sqrt(dx*dx+dy*dy), safeDistance)
	}
}

func TestGenerateLabyrinthWallsAlignToGrid(t *testing.T) {
	walls := GenerateLabyrinth(Medium, rand.New(rand.NewSource(3)))
	require.NotEmpty(t, walls)
	for _, w := range walls {
		assert.Equal(t, config.CELL_WIDTH, w.Width)
		assert.Equal(t, config.CELL_HEIGHT, w.Height)
		assert.Zero(t, math.Mod(w.X, config.CELL_WIDTH))
		assert.Zero(t, math.Mod(w.Y, config.CELL_HEIGHT))
		assert.GreaterOrEqual(t, w.X, 0.0)
		assert.Less(t, w.X, config.BOARD_WIDTH)
		assert.GreaterOrEqual(t, w.Y, 0.0)
		assert.Less(t, w.Y, config.BOARD_HEIGHT)
	}
}

func TestGenerateLabyrinthDensityGrowsWithDifficulty(t *testing.T) {
	// The generator draws one roll per eligible cell, so with the same seed
	// every easy wall is also a medium wall, and every medium wall a hard one.
	for seed := int64(0); seed < 10; seed++ {
		easy := GenerateLabyrinth(Easy, rand.New(rand.NewSource(seed)))
		medium := GenerateLabyrinth(Medium, rand.New(rand.NewSource(seed)))
		hard := GenerateLabyrinth(Hard, rand.New(rand.NewSource(seed)))

		assert.LessOrEqual(t, len(easy), len(medium), "seed %d", seed)
		assert.LessOrEqual(t, len(medium), len(hard), "seed %d", seed)
	}
}
