package game

// Broadcaster delivers engine events to the transport layer. Broadcast fans an
// event out to every client in a room; SendTo targets a single client. The
// engine never blocks on either call.
type Broadcaster interface {
	Broadcast(roomCode, event string, payload any)
	SendTo(clientID, event string, payload any)
}

// Outbound event names as they appear on the wire.
const (
	EvGameCreated        = "gameCreated"
	EvJoinError          = "joinError"
	EvSettingsError      = "settingsError"
	EvGameModeError      = "gameModeError"
	EvBotSettingsError   = "botSettingsError"
	EvStartError         = "startError"
	EvUpdatePlayerList   = "updatePlayerList"
	EvSettingsUpdated    = "settingsUpdated"
	EvGameModeUpdated    = "gameModeUpdated"
	EvBotSettingsUpdated = "botSettingsUpdated"
	EvGameStarted        = "gameStarted"
	EvLabyrinthLayout    = "labyrinthLayout"
	EvResourceSpawned    = "resourceSpawned"
	EvResourceRemoved    = "resourceRemoved"
	EvPlayerPositions    = "playerPositions"
	EvScoresUpdated      = "scoresUpdated"
	EvTimeUpdate         = "timeUpdate"
	EvPowerUpEffect      = "powerUpEffect"
	EvGamePaused         = "gamePaused"
	EvGameResumed        = "gameResumed"
	EvGameRestart        = "gameRestart"
	EvGameOver           = "gameOver"
	EvPlayerLeft         = "playerLeft"
	EvGameQuit           = "gameQuit"
	EvLobbyClosed        = "lobbyClosed"
)

// GameCreatedPayload is sent to the creator only.
type GameCreatedPayload struct {
	RoomCode string `json:"roomCode"`
}

// ErrorPayload carries a short user-visible message to one client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// PlayerListPayload lists all participants, moderator first, bots flagged.
type PlayerListPayload struct {
	Players []PlayerInfo `json:"players"`
}

// GameModePayload announces a game-mode change.
type GameModePayload struct {
	GameMode GameMode `json:"gameMode"`
}

// BotSettingsPayload announces a bot-roster change.
type BotSettingsPayload struct {
	BotCount      int        `json:"botCount"`
	BotDifficulty Difficulty `json:"botDifficulty"`
}

// LabyrinthPayload carries the freshly generated wall set.
type LabyrinthPayload struct {
	Walls []Wall `json:"walls"`
}

// ResourceRemovedPayload names a resource that left play.
type ResourceRemovedPayload struct {
	ResourceID string `json:"resourceId"`
}

// PositionEntry is one entity's renderable position.
type PositionEntry struct {
	PlayerName string `json:"playerName"`
	Position   Point  `json:"position"`
}

// PositionsPayload maps entity ids to positions for rendering.
type PositionsPayload struct {
	PositionsByID map[string]PositionEntry `json:"positionsById"`
}

// ScoresPayload maps participant names to cumulative scores.
type ScoresPayload struct {
	ScoreByName map[string]int `json:"scoreByName"`
}

// TimeUpdatePayload is the 1s countdown broadcast.
type TimeUpdatePayload struct {
	SecondsLeft int `json:"secondsLeft"`
}

// PowerUpPayload announces a power-up collection and the debuff it applies to
// every player other than the source.
type PowerUpPayload struct {
	Source     string  `json:"source"`
	Effect     string  `json:"effect"`
	Factor     float64 `json:"factor"` // speed multiplier applied to affected players
	DurationMs int64   `json:"durationMs"`
}

// MessagePayload is a plain room-scoped notice (pause, resume, leave, quit).
type MessagePayload struct {
	Message string `json:"message"`
}

// RestartPayload announces a restart with its score reset.
type RestartPayload struct {
	Message     string `json:"message"`
	ResetScores bool   `json:"resetScores"`
}

// GameOverPayload reports the session result: a single winner, or the set of
// tied players sharing the highest score.
type GameOverPayload struct {
	Winner      string   `json:"winner,omitempty"`
	TiedPlayers []string `json:"tiedPlayers,omitempty"`
	Score       int      `json:"score"`
	Message     string   `json:"message"`
}
