package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Point is a position on the game board.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Wall is an impassable maze cell. Walls are immutable once generated; the
// whole set is replaced on start and restart.
type Wall struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the wall as a Rect.
func (w Wall) Rect() Rect {
	return Rect{X: w.X, Y: w.Y, W: w.Width, H: w.Height}
}

// ResourceKind distinguishes normal collectibles from power-ups.
type ResourceKind string

const (
	ResourceNormal  ResourceKind = "normal"
	ResourcePowerUp ResourceKind = "powerup"
)

// Resource is a time-limited collectible. It is removed on collection or TTL
// expiry, never both; removal is idempotent by id.
type Resource struct {
	ID        string       `json:"id"`
	Left      float64      `json:"left"`
	Top       float64      `json:"top"`
	Kind      ResourceKind `json:"type"`
	CreatedAt time.Time    `json:"-"`
	ExpiresAt time.Time    `json:"-"`
}

// Player is a human participant in a room.
type Player struct {
	ID        string // connection id, stable for the life of the socket
	Name      string // unique within the room
	Pos       Point
	Score     int
	SlowUntil time.Time // speed debuff applied by another player's power-up
}

// Difficulty is the closed tier enum parameterizing maze density and bot
// behavior.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = [...]string{"Easy", "Medium", "Hard"}

func (d Difficulty) String() string {
	if d < Easy || d > Hard {
		return "Medium"
	}
	return difficultyNames[d]
}

// ParseDifficulty maps a wire string to a Difficulty tier. Matching is
// case-insensitive since clients send both "hard" and "Hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GameMode selects between human-vs-human and human-vs-bots sessions.
type GameMode string

const (
	Multiplayer  GameMode = "Multiplayer"
	SinglePlayer GameMode = "SinglePlayer"
)

// Settings are the room's adjustable parameters. Updates are field-wise
// patches; fields absent from an update keep their previous value.
type Settings struct {
	Difficulty    Difficulty `json:"difficulty"`
	GameMode      GameMode   `json:"gameMode"`
	BotCount      int        `json:"botCount"`
	BotDifficulty Difficulty `json:"botDifficulty"`
}

// DefaultSettings returns the settings a freshly created room starts with.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:    Easy,
		GameMode:      Multiplayer,
		BotCount:      1,
		BotDifficulty: Medium,
	}
}

// Phase is the room lifecycle state.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "lobby"
	}
}

// PlayerInfo is the lobby-facing player-list entry. The moderator is always
// first in the list.
type PlayerInfo struct {
	Name  string `json:"name"`
	IsBot bool   `json:"isBot,omitempty"`
}
