package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"labyrinth-server/server"
)

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthOk       HealthStatus = "ok"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// RoomMetrics holds aggregate counts across all live rooms
type RoomMetrics struct {
	Rooms     int `json:"rooms"`
	Running   int `json:"running"`
	Players   int `json:"players"`
	Bots      int `json:"bots"`
	Resources int `json:"resources"`
}

// WebSocketMetrics holds WebSocket server status
type WebSocketMetrics struct {
	ActiveConnections int   `json:"active_connections"`
	UptimeSec         int64 `json:"uptime_sec"`
}

// MetricsResponse is the complete metrics response structure
type MetricsResponse struct {
	Timestamp time.Time        `json:"timestamp"`
	Health    HealthStatus     `json:"health"`
	Rooms     RoomMetrics      `json:"rooms"`
	WebSocket WebSocketMetrics `json:"websocket"`
}

// MetricsHandler reports live game-server metrics
type MetricsHandler struct {
	gameServer      *server.GameServer
	serverStartTime time.Time

	// Thresholds for health status
	warningRoomThreshold  int
	criticalRoomThreshold int
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(gameServer *server.GameServer) *MetricsHandler {
	return &MetricsHandler{
		gameServer:            gameServer,
		serverStartTime:       time.Now(),
		warningRoomThreshold:  800,
		criticalRoomThreshold: 950,
	}
}

// Routes registers metrics routes
func (h *MetricsHandler) Routes(r chi.Router) {
	r.Get("/metrics", h.GetMetrics)
	r.Get("/metrics/health", h.GetHealth)
	r.Get("/metrics/rooms", h.GetRooms)
	r.Get("/metrics/websocket", h.GetWebSocket)
}

// GetMetrics returns complete metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(metrics)
}

// GetHealth returns only health status
func (h *MetricsHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics()
	response := map[string]interface{}{
		"timestamp":  metrics.Timestamp,
		"health":     metrics.Health,
		"uptime_sec": metrics.WebSocket.UptimeSec,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// GetRooms returns only room metrics
func (h *MetricsHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(metrics.Rooms)
}

// GetWebSocket returns only WebSocket metrics
func (h *MetricsHandler) GetWebSocket(w http.ResponseWriter, r *http.Request) {
	metrics := h.collectMetrics()
	response := map[string]interface{}{
		"timestamp": metrics.Timestamp,
		"websocket": metrics.WebSocket,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// collectMetrics gathers all metrics from the system
func (h *MetricsHandler) collectMetrics() *MetricsResponse {
	counts := h.gameServer.Registry().Counts()
	rooms := RoomMetrics{
		Rooms:     counts["rooms"],
		Running:   counts["running"],
		Players:   counts["players"],
		Bots:      counts["bots"],
		Resources: counts["resources"],
	}

	health := HealthOk
	switch {
	case rooms.Rooms >= h.criticalRoomThreshold:
		health = HealthCritical
	case rooms.Rooms >= h.warningRoomThreshold:
		health = HealthWarning
	}

	return &MetricsResponse{
		Timestamp: time.Now(),
		Health:    health,
		Rooms:     rooms,
		WebSocket: WebSocketMetrics{
			ActiveConnections: h.gameServer.ClientCount(),
			UptimeSec:         int64(time.Since(h.serverStartTime).Seconds()),
		},
	}
}
