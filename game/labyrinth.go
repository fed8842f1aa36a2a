package game

import (
	"math"
	"math/rand"

	"labyrinth-server/config"
)

// wallProbability returns the per-cell wall chance for a maze difficulty.
func wallProbability(d Difficulty) float64 {
	switch d {
	case Hard:
		return 0.25
	case Medium:
		return 0.175
	default:
		return 0.10
	}
}

// GenerateLabyrinth produces a fresh set of non-overlapping wall cells on the
// fixed board grid. Cells inside the centered clear zone are skipped outright,
// and a secondary distance filter keeps the spawn region traversable. Two
// calls with the same difficulty yield different but structurally-equivalent
// mazes; pass a seeded rng for deterministic output.
func GenerateLabyrinth(d Difficulty, rng *rand.Rand) []Wall {
	prob := wallProbability(d)

	centerCol := config.GRID_COLS / 2
	centerRow := config.GRID_ROWS / 2
	centerX := config.BOARD_WIDTH / 2
	centerY := config.BOARD_HEIGHT / 2
	safeDistance := math.Max(config.CELL_WIDTH, config.CELL_HEIGHT) * 3

	var walls []Wall
	for r := 0; r < config.GRID_ROWS; r++ {
		for c := 0; c < config.GRID_COLS; c++ {
			if c >= centerCol-config.CLEAR_ZONE && c <= centerCol+config.CLEAR_ZONE &&
				r >= centerRow-config.CLEAR_ZONE && r <= centerRow+config.CLEAR_ZONE {
				continue
			}
			if rng.Float64() >= prob {
				continue
			}

			wallX := float64(c) * config.CELL_WIDTH
			wallY := float64(r) * config.CELL_HEIGHT

			// Cell-center distance from the board center guards the spawn zone
			// even for cells just outside the clear rectangle.
			dx := (wallX + config.CELL_WIDTH/2) - centerX
			dy := (wallY + config.CELL_HEIGHT/2) - centerY
			if math.Sqrt(dx*dx+dy*dy) <= safeDistance {
				continue
			}

			walls = append(walls, Wall{
				X:      wallX,
				Y:      wallY,
				Width:  config.CELL_WIDTH,
				Height: config.CELL_HEIGHT,
			})
		}
	}
	return walls
}
