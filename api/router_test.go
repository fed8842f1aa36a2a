package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labyrinth-server/server"
)

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := server.NewGameServer()
	router := NewAPIRouter(s)

	rec := doRequest(t, router, "/v1/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListRoomsEmpty(t *testing.T) {
	s := server.NewGameServer()
	router := NewAPIRouter(s)

	rec := doRequest(t, router, "/v1/rooms")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Rooms []RoomSummary `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Rooms)
}

func TestListRoomsShowsLiveRoom(t *testing.T) {
	s := server.NewGameServer()
	room := s.Registry().CreateRoom("c1", "Alice")
	router := NewAPIRouter(s)

	rec := doRequest(t, router, "/v1/rooms")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Rooms []RoomSummary `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Rooms, 1)
	assert.Equal(t, room.Code, body.Rooms[0].Code)
	assert.Equal(t, "lobby", body.Rooms[0].Phase)
	assert.Equal(t, 1, body.Rooms[0].Players)
}

func TestGetRoom(t *testing.T) {
	s := server.NewGameServer()
	room := s.Registry().CreateRoom("c1", "Alice")
	router := NewAPIRouter(s)

	rec := doRequest(t, router, "/v1/rooms/"+room.Code)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary RoomSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, room.Code, summary.Code)
}

func TestGetRoomNotFound(t *testing.T) {
	s := server.NewGameServer()
	router := NewAPIRouter(s)

	rec := doRequest(t, router, "/v1/rooms/NOPE99")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := server.NewGameServer()
	s.Registry().CreateRoom("c1", "Alice")
	router := NewAPIRouter(s)

	rec := doRequest(t, router, "/v1/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	var metrics MetricsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, HealthOk, metrics.Health)
	assert.Equal(t, 1, metrics.Rooms.Rooms)
	assert.Equal(t, 1, metrics.Rooms.Players)
	assert.Zero(t, metrics.WebSocket.ActiveConnections)
}
