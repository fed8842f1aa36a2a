package config

import "time"

// Board Dimensions and Entity Sizes
const (
	BOARD_WIDTH   = 1300.0 // Game board width in pixels
	BOARD_HEIGHT  = 1000.0 // Game board height in pixels
	GRID_COLS     = 26     // Maze grid columns
	GRID_ROWS     = 20     // Maze grid rows
	PLAYER_SIZE   = 40.0   // Player and bot avatar size in pixels (square)
	RESOURCE_SIZE = 20.0   // Collectible resource size in pixels (square)
	CELL_WIDTH    = BOARD_WIDTH / GRID_COLS
	CELL_HEIGHT   = BOARD_HEIGHT / GRID_ROWS
	CLEAR_ZONE    = 3 // Wall-free cells on each side of the center cell
)

// Session Timing
const (
	GAME_DURATION          = 60 * time.Second      // Fixed session length
	CLOCK_TICK_INTERVAL    = 1 * time.Second       // Countdown broadcast interval
	RESOURCE_TICK_INTERVAL = 1 * time.Second       // Resource population interval
	BOT_TICK_INTERVAL      = 50 * time.Millisecond // Bot dispatch interval
	EMPTY_ROOM_GRACE       = 60 * time.Second      // Delay before deleting an empty room
)

// Resource Economy
const (
	ResourceFloor       = 5    // Minimum live resources while running
	ResourceMaxAttempts = 10   // Wall-rejection attempts before the fallback point
	PowerUpProbability  = 0.05 // Chance a spawned resource is a power-up
	ResourcePoints      = 10   // Score awarded per collection
	ResourceTTLMin      = 6 * time.Second
	ResourceTTLSpread   = 4 * time.Second // TTL = min + rand(0, spread)
	SlowEffectDuration  = 5 * time.Second // Power-up debuff length on other players
	SlowEffectFactor    = 0.5             // Speed multiplier while debuffed
)

// Room Limits
const (
	MaxPlayersPerRoom = 5
	RoomCodeLength    = 6
)

// DefaultPlayerSpawn is the fallback spawn point at the board center.
var DefaultPlayerSpawn = [2]float64{
	BOARD_WIDTH/2 - PLAYER_SIZE/2,
	BOARD_HEIGHT/2 - PLAYER_SIZE/2,
}
