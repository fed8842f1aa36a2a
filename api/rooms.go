package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"labyrinth-server/game"
	"labyrinth-server/server"
)

// RoomSummary is the read-only view of one live room.
type RoomSummary struct {
	Code       string          `json:"code"`
	Phase      string          `json:"phase"`
	Players    int             `json:"players"`
	Bots       int             `json:"bots"`
	Difficulty game.Difficulty `json:"difficulty"`
	GameMode   game.GameMode   `json:"gameMode"`
}

// RoomHandler exposes read-only room listings for dashboards and debugging.
type RoomHandler struct {
	gameServer *server.GameServer
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(gameServer *server.GameServer) *RoomHandler {
	return &RoomHandler{gameServer: gameServer}
}

// Routes registers room routes
func (h *RoomHandler) Routes(r chi.Router) {
	r.Get("/rooms", h.ListRooms)
	r.Get("/rooms/{code}", h.GetRoom)
}

// ListRooms returns a summary of every live room.
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	reg := h.gameServer.Registry()
	summaries := make([]RoomSummary, 0)
	for _, code := range reg.Codes() {
		room, ok := reg.Get(code)
		if !ok {
			continue
		}
		summaries = append(summaries, summarize(room))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"rooms": summaries})
}

// GetRoom returns one room's summary, 404 when the code is unknown.
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	room, ok := h.gameServer.Registry().Get(code)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "room not found"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summarize(room))
}

func summarize(room *game.Room) RoomSummary {
	settings := room.Settings()
	return RoomSummary{
		Code:       room.Code,
		Phase:      room.Phase().String(),
		Players:    room.PlayerCount(),
		Bots:       room.BotCount(),
		Difficulty: settings.Difficulty,
		GameMode:   settings.GameMode,
	}
}
