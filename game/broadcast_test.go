package game

import (
	"math/rand"
	"sync"
)

// recordedEvent is one captured broadcast or direct send.
type recordedEvent struct {
	Room    string
	To      string // empty for room broadcasts
	Event   string
	Payload any
}

// fakeBroadcaster records every event so tests can assert on the outbound
// stream without any sockets.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeBroadcaster) Broadcast(roomCode, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Room: roomCode, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) SendTo(clientID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{To: clientID, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) eventsOf(event string) []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedEvent
	for _, e := range f.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeBroadcaster) last(event string) (recordedEvent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].Event == event {
			return f.events[i], true
		}
	}
	return recordedEvent{}, false
}

func (f *fakeBroadcaster) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

// newTestRoom builds a room with a recording broadcaster and a deterministic
// rng.
func newTestRoom(seed int64) (*Room, *fakeBroadcaster) {
	b := &fakeBroadcaster{}
	r := NewRoom("TEST42", "client-1", "Alice", b, rand.New(rand.NewSource(seed)))
	return r, b
}
