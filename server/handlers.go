package server

import (
	"encoding/json"
	"errors"
	"log"

	"labyrinth-server/game"
)

// message is the envelope every client frame arrives in.
type message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type createGameData struct {
	PlayerName string `json:"playerName"`
	GameName   string `json:"gameName"`
}

type joinGameData struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type settingsData struct {
	RoomCode string `json:"roomCode"`
	Settings struct {
		Difficulty game.Difficulty `json:"difficulty"`
	} `json:"settings"`
}

type gameModeData struct {
	RoomCode string        `json:"roomCode"`
	GameMode game.GameMode `json:"gameMode"`
}

type botSettingsData struct {
	RoomCode      string          `json:"roomCode"`
	BotCount      int             `json:"botCount"`
	BotDifficulty game.Difficulty `json:"botDifficulty"`
}

type roomOnlyData struct {
	RoomCode string `json:"roomCode"`
}

type playerMoveData struct {
	RoomCode   string     `json:"roomCode"`
	PlayerName string     `json:"playerName"`
	Position   game.Point `json:"position"`
}

type resourceCollectedData struct {
	RoomCode   string `json:"roomCode"`
	ResourceID string `json:"resourceId"`
	PlayerName string `json:"playerName"`
}

type gameActionData struct {
	RoomCode   string `json:"roomCode"`
	Action     string `json:"action"`
	PlayerName string `json:"playerName"`
}

// handleClientMessage decodes one inbound frame and dispatches it to the game
// layer. Malformed frames are logged and dropped; game-level rejections go
// back to the sender as the matching error event.
func (s *GameServer) handleClientMessage(c *Client, raw []byte) {
	var msg message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("Client %s: malformed message: %v", c.id, err)
		return
	}

	switch msg.Type {
	case "createGame":
		s.handleCreateGame(c, msg.Data)
	case "joinGame":
		s.handleJoinGame(c, msg.Data)
	case "joinGameState":
		s.handleJoinGameState(c, msg.Data)
	case "updateGameSettings":
		s.handleUpdateSettings(c, msg.Data)
	case "updateGameMode":
		s.handleUpdateGameMode(c, msg.Data)
	case "updateBotSettings":
		s.handleUpdateBotSettings(c, msg.Data)
	case "startGame":
		s.handleStartGame(c, msg.Data)
	case "leaveLobby":
		s.handleLeaveLobby(c, msg.Data)
	case "playerMove":
		s.handlePlayerMove(c, msg.Data)
	case "resourceCollected":
		s.handleResourceCollected(c, msg.Data)
	case "gameAction":
		s.handleGameAction(c, msg.Data)
	default:
		log.Printf("Client %s: unknown message type %q", c.id, msg.Type)
	}
}

func decode[T any](c *Client, raw json.RawMessage, out *T) bool {
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("Client %s: bad payload: %v", c.id, err)
		return false
	}
	return true
}

func (s *GameServer) handleCreateGame(c *Client, raw json.RawMessage) {
	var data createGameData
	if !decode(c, raw, &data) {
		return
	}
	if data.PlayerName == "" {
		s.SendTo(c.id, game.EvJoinError, game.ErrorPayload{Message: "A player name is required."})
		return
	}

	room := s.registry.CreateRoom(c.id, data.PlayerName)
	s.joinRoom(c.id, room.Code)
	s.SendTo(c.id, game.EvGameCreated, game.GameCreatedPayload{RoomCode: room.Code})
	room.AnnounceLobby()
}

func (s *GameServer) handleJoinGame(c *Client, raw json.RawMessage) {
	var data joinGameData
	if !decode(c, raw, &data) {
		return
	}

	room, ok := s.registry.Get(data.RoomCode)
	if !ok {
		s.SendTo(c.id, game.EvJoinError, game.ErrorPayload{Message: "Room not found."})
		return
	}
	// Subscribe before joining so the join's own player-list broadcast
	// reaches the new member too.
	s.joinRoom(c.id, room.Code)
	if err := room.AddPlayer(c.id, data.PlayerName); err != nil {
		s.leaveRoom(c.id)
		s.SendTo(c.id, game.EvJoinError, game.ErrorPayload{Message: joinErrorMessage(err)})
		return
	}
	log.Printf("Room %s: %s joined", room.Code, data.PlayerName)
}

// handleJoinGameState rebinds a known player name to this connection, used
// when the client navigates from the lobby page to the game view and
// reconnects. The live session state is replayed to the new socket.
func (s *GameServer) handleJoinGameState(c *Client, raw json.RawMessage) {
	var data joinGameData
	if !decode(c, raw, &data) {
		return
	}

	room, ok := s.registry.Get(data.RoomCode)
	if !ok {
		s.SendTo(c.id, game.EvJoinError, game.ErrorPayload{Message: "Room not found."})
		return
	}
	s.joinRoom(c.id, room.Code)
	if err := room.RebindClient(data.PlayerName, c.id); err != nil {
		s.leaveRoom(c.id)
		s.SendTo(c.id, game.EvJoinError, game.ErrorPayload{Message: joinErrorMessage(err)})
	}
}

func (s *GameServer) handleUpdateSettings(c *Client, raw json.RawMessage) {
	var data settingsData
	if !decode(c, raw, &data) {
		return
	}
	room, ok := s.registry.Get(data.RoomCode)
	if !ok {
		return
	}
	if err := room.UpdateSettings(c.id, data.Settings.Difficulty); err != nil {
		s.SendTo(c.id, game.EvSettingsError, game.ErrorPayload{Message: "Only the moderator can change settings."})
	}
}

func (s *GameServer) handleUpdateGameMode(c *Client, raw json.RawMessage) {
	var data gameModeData
	if !decode(c, raw, &data) {
		return
	}
	room, ok := s.registry.Get(data.RoomCode)
	if !ok {
		return
	}
	if data.GameMode != game.Multiplayer && data.GameMode != game.SinglePlayer {
		s.SendTo(c.id, game.EvGameModeError, game.ErrorPayload{Message: "Unknown game mode."})
		return
	}
	if err := room.UpdateGameMode(c.id, data.GameMode); err != nil {
		s.SendTo(c.id, game.EvGameModeError, game.ErrorPayload{Message: "Only the moderator can change the game mode."})
	}
}

func (s *GameServer) handleUpdateBotSettings(c *Client, raw json.RawMessage) {
	var data botSettingsData
	if !decode(c, raw, &data) {
		return
	}
	room, ok := s.registry.Get(data.RoomCode)
	if !ok {
		return
	}
	if err := room.UpdateBotSettings(c.id, data.BotCount, data.BotDifficulty); err != nil {
		s.SendTo(c.id, game.EvBotSettingsError, game.ErrorPayload{Message: "Only the moderator can change bot settings."})
	}
}

func (s *GameServer) handleStartGame(c *Client, raw json.RawMessage) {
	var data roomOnlyData
	if !decode(c, raw, &data) {
		return
	}
	room, ok := s.registry.Get(data.RoomCode)
	if !ok {
		s.SendTo(c.id, game.EvStartError, game.ErrorPayload{Message: "Room not found."})
		return
	}
	if err := room.Start(c.id); err != nil {
		s.SendTo(c.id, game.EvStartError, game.ErrorPayload{Message: startErrorMessage(err)})
	}
}

func (s *GameServer) handleLeaveLobby(c *Client, raw json.RawMessage) {
	var data roomOnlyData
	if !decode(c, raw, &data) {
		return
	}
	s.registry.Leave(data.RoomCode, c.id)
	s.leaveRoom(c.id)
}

func (s *GameServer) handlePlayerMove(c *Client, raw json.RawMessage) {
	var data playerMoveData
	if !decode(c, raw, &data) {
		return
	}
	if room, ok := s.registry.Get(data.RoomCode); ok {
		room.Move(data.PlayerName, data.Position)
	}
}

func (s *GameServer) handleResourceCollected(c *Client, raw json.RawMessage) {
	var data resourceCollectedData
	if !decode(c, raw, &data) {
		return
	}
	if room, ok := s.registry.Get(data.RoomCode); ok {
		room.CollectResource(data.ResourceID, data.PlayerName)
	}
}

func (s *GameServer) handleGameAction(c *Client, raw json.RawMessage) {
	var data gameActionData
	if !decode(c, raw, &data) {
		return
	}
	if room, ok := s.registry.Get(data.RoomCode); ok {
		room.HandleAction(data.Action, data.PlayerName)
	}
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrRoomFull):
		return "The room is full."
	case errors.Is(err, game.ErrNameTaken):
		return "That name is already taken in this room."
	case errors.Is(err, game.ErrGameInProgress):
		return "The game is already in progress."
	case errors.Is(err, game.ErrUnknownPlayer):
		return "You are not part of this game."
	default:
		return "Unable to join the room."
	}
}

func startErrorMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrNotModerator):
		return "Only the moderator can start the game."
	case errors.Is(err, game.ErrNotEnoughHuman):
		return "Multiplayer needs at least two players."
	case errors.Is(err, game.ErrTooManyHumans):
		return "Single player allows exactly one player."
	case errors.Is(err, game.ErrGameInProgress):
		return "The game is already in progress."
	default:
		return "Unable to start the game."
	}
}
