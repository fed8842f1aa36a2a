package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"labyrinth-server/game"
)

// GameServer owns the WebSocket side of the arena: connected clients, their
// room membership, and the fan-out of game events. It satisfies
// game.Broadcaster so the game package never touches a socket directly.
type GameServer struct {
	upgrader websocket.Upgrader
	registry *game.Registry

	clientsMutex sync.RWMutex               // protects 'clients', 'rooms' and 'clientRoom'
	clients      map[string]*Client         // clientID -> client
	rooms        map[string]map[string]bool // roomCode -> set of clientIDs
	clientRoom   map[string]string          // clientID -> roomCode
}

// NewGameServer builds the server and its room registry.
func NewGameServer() *GameServer {
	s := &GameServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // game clients connect from any origin
			},
		},
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]bool),
		clientRoom: make(map[string]string),
	}
	s.registry = game.NewRegistry(s)
	s.registry.OnRemove = s.dropRoom
	return s
}

// Registry exposes the room table for the HTTP API.
func (s *GameServer) Registry() *game.Registry {
	return s.registry
}

// ClientCount reports currently connected sockets.
func (s *GameServer) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// HandleConnections upgrades an HTTP request and starts the client pumps.
func (s *GameServer) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Server: upgrade failed: %v", err)
		return
	}

	client := NewClient(conn, uuid.New().String())

	s.clientsMutex.Lock()
	s.clients[client.id] = client
	s.clientsMutex.Unlock()
	log.Printf("Client %s: connected", client.id)

	go client.WritePump()
	go client.ReadPump(s)
}

func (s *GameServer) unregisterClient(c *Client) {
	s.clientsMutex.Lock()
	delete(s.clients, c.id)
	if code, ok := s.clientRoom[c.id]; ok {
		delete(s.clientRoom, c.id)
		if members, ok := s.rooms[code]; ok {
			delete(members, c.id)
		}
	}
	s.clientsMutex.Unlock()

	s.registry.HandleDisconnect(c.id)
	log.Printf("Client %s: disconnected", c.id)
}

// joinRoom records the client as a member of the room so broadcasts reach it.
// A client belongs to at most one room at a time.
func (s *GameServer) joinRoom(clientID, code string) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if prev, ok := s.clientRoom[clientID]; ok && prev != code {
		if members, ok := s.rooms[prev]; ok {
			delete(members, clientID)
		}
	}
	if _, ok := s.rooms[code]; !ok {
		s.rooms[code] = make(map[string]bool)
	}
	s.rooms[code][clientID] = true
	s.clientRoom[clientID] = code
}

// leaveRoom forgets the client's membership without touching game state.
func (s *GameServer) leaveRoom(clientID string) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if code, ok := s.clientRoom[clientID]; ok {
		delete(s.clientRoom, clientID)
		if members, ok := s.rooms[code]; ok {
			delete(members, clientID)
		}
	}
}

// dropRoom clears all membership for a room removed from the registry.
func (s *GameServer) dropRoom(code string) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	for clientID := range s.rooms[code] {
		delete(s.clientRoom, clientID)
	}
	delete(s.rooms, code)
}

func encodeEvent(event string, payload any) ([]byte, bool) {
	msg, err := json.Marshal(map[string]any{
		"type": event,
		"data": payload,
	})
	if err != nil {
		log.Printf("Server: marshal %s failed: %v", event, err)
		return nil, false
	}
	return msg, true
}

// Broadcast sends one event to every member of a room. Slow clients with a
// full buffer are skipped rather than blocking the game loop.
func (s *GameServer) Broadcast(roomCode, event string, payload any) {
	msg, ok := encodeEvent(event, payload)
	if !ok {
		return
	}

	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	for clientID := range s.rooms[roomCode] {
		client, ok := s.clients[clientID]
		if !ok {
			continue
		}
		select {
		case client.send <- msg:
		default:
			log.Printf("Client %s: send buffer full, dropping %s", clientID, event)
		}
	}
}

// SendTo sends one event to a single client.
func (s *GameServer) SendTo(clientID, event string, payload any) {
	msg, ok := encodeEvent(event, payload)
	if !ok {
		return
	}

	s.clientsMutex.RLock()
	client, found := s.clients[clientID]
	s.clientsMutex.RUnlock()
	if !found {
		return
	}

	select {
	case client.send <- msg:
	default:
		log.Printf("Client %s: send buffer full, dropping %s", clientID, event)
	}
}
