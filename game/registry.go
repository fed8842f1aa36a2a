package game

import (
	"crypto/rand"
	"log"
	mrand "math/rand"
	"sync"
	"time"

	"labyrinth-server/config"
)

// Registry owns the code-to-room table. It is the only structure touched by
// multiple rooms' lifecycles; every room's own state stays behind that room's
// lock.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	b     Broadcaster

	// OnRemove, when set, is invoked after a room is removed from the table.
	// The transport layer uses it to drop its membership bookkeeping.
	OnRemove func(code string)
}

// NewRegistry creates an empty room registry broadcasting through b.
func NewRegistry(b Broadcaster) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		b:     b,
	}
}

// codeChars holds 32 symbols, so reducing a random byte modulo its length
// introduces no bias.
const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = codeChars[int(b[i])%len(codeChars)]
	}
	return string(b)
}

// CreateRoom allocates a room under a fresh unique code with the creator as
// moderator.
func (reg *Registry) CreateRoom(creatorID, creatorName string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for {
		code := generateCode(config.RoomCodeLength)
		if _, exists := reg.rooms[code]; exists {
			continue
		}
		r := NewRoom(code, creatorID, creatorName, reg.b, mrand.New(mrand.NewSource(time.Now().UnixNano())))
		r.onClose = reg.Remove
		reg.rooms[code] = r
		log.Printf("Room %s: created by %s", code, creatorName)
		return r
	}
}

// Get looks a room up by code.
func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[code]
	return r, ok
}

// Remove drops the room from the table and cancels its timers. After removal
// the code is unreachable for any subsequent join.
func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	r, ok := reg.rooms[code]
	if ok {
		delete(reg.rooms, code)
	}
	reg.mu.Unlock()

	if ok {
		r.Close()
		if reg.OnRemove != nil {
			reg.OnRemove(code)
		}
		log.Printf("Room %s: removed", code)
	}
}

// Leave removes the client from a known room, applying the same emptiness
// policy as a disconnect.
func (reg *Registry) Leave(code, clientID string) {
	room, ok := reg.Get(code)
	if !ok {
		return
	}
	if empty := room.RemoveClient(clientID); empty {
		reg.scheduleRemoval(room)
	}
}

// HandleDisconnect removes the client from whichever room holds it, applying
// the room-emptiness policy: an empty non-running room is deleted at once, a
// room emptied mid-game gets a grace period in case players reconnect.
func (reg *Registry) HandleDisconnect(clientID string) {
	reg.mu.RLock()
	var room *Room
	for _, r := range reg.rooms {
		if r.HasClient(clientID) {
			room = r
			break
		}
	}
	reg.mu.RUnlock()

	if room == nil {
		return
	}
	if empty := room.RemoveClient(clientID); empty {
		reg.scheduleRemoval(room)
	}
}

func (reg *Registry) scheduleRemoval(room *Room) {
	if room.Phase() != PhaseRunning {
		reg.Remove(room.Code)
		return
	}
	code := room.Code
	time.AfterFunc(config.EMPTY_ROOM_GRACE, func() {
		r, ok := reg.Get(code)
		if ok && r.PlayerCount() == 0 {
			reg.Remove(code)
			log.Printf("Room %s: deleted after emptiness grace period", code)
		}
	})
}

// Codes returns the active room codes.
func (reg *Registry) Codes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	codes := make([]string, 0, len(reg.rooms))
	for code := range reg.rooms {
		codes = append(codes, code)
	}
	return codes
}

// Counts aggregates entity totals across all rooms for the metrics endpoint.
func (reg *Registry) Counts() map[string]int {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.mu.RUnlock()

	counts := map[string]int{
		"rooms":     len(rooms),
		"players":   0,
		"bots":      0,
		"resources": 0,
		"running":   0,
	}
	for _, r := range rooms {
		counts["players"] += r.PlayerCount()
		counts["bots"] += r.BotCount()
		counts["resources"] += r.ResourceCount()
		if r.Phase() == PhaseRunning {
			counts["running"]++
		}
	}
	return counts
}
