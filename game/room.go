package game

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"labyrinth-server/config"
)

// Room-scoped client errors. These are reported to the originating client
// only and are never fatal to the room.
var (
	ErrRoomFull       = errors.New("room is full")
	ErrNameTaken      = errors.New("name already taken in this room")
	ErrGameInProgress = errors.New("game already in progress")
	ErrNotModerator   = errors.New("only the moderator can do that")
	ErrNotEnoughHuman = errors.New("at least 2 human players are required to start multiplayer")
	ErrTooManyHumans  = errors.New("single-player mode allows exactly one human player")
	ErrUnknownPlayer  = errors.New("player is not part of this room")
)

// Room is one isolated game session: its players, bots, maze, resources,
// settings and clock. All access to a room's mutable state is serialized
// through its mutex; the run loop and inbound commands are the only writers.
type Room struct {
	mu sync.Mutex

	Code        string
	moderatorID string
	players     map[string]*Player // keyed by connection id
	order       []string           // join order; order[0] is the moderator
	bots        map[string]*Bot
	botOrder    []string
	walls       []Wall
	resources   map[string]*Resource
	settings    Settings
	clock       GameClock
	phase       Phase
	paused      bool

	done chan struct{} // closes the run loop; replaced on every start
	rng  *rand.Rand
	b    Broadcaster

	// onClose is invoked when the room tears itself down (moderator quit,
	// emptiness); the registry installs it to drop its entry.
	onClose func(code string)
}

// NewRoom creates an empty lobby-phase room with the given creator as its
// moderator and first player.
func NewRoom(code string, creatorID, creatorName string, b Broadcaster, rng *rand.Rand) *Room {
	r := &Room{
		Code:        code,
		moderatorID: creatorID,
		players:     make(map[string]*Player),
		bots:        make(map[string]*Bot),
		resources:   make(map[string]*Resource),
		settings:    DefaultSettings(),
		phase:       PhaseLobby,
		rng:         rng,
		b:           b,
	}
	r.players[creatorID] = &Player{
		ID:   creatorID,
		Name: creatorName,
		Pos:  Point{X: config.DefaultPlayerSpawn[0], Y: config.DefaultPlayerSpawn[1]},
	}
	r.order = append(r.order, creatorID)
	return r
}

// AddPlayer joins a client to the room. Once the game is running only clients
// whose name is already known may (re)join; everyone else is turned away.
func (r *Room) AddPlayer(clientID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseRunning {
		if _, ok := r.playerByName(name); ok {
			r.rebindLocked(name, clientID)
			return nil
		}
		return ErrGameInProgress
	}
	if _, rejoin := r.players[clientID]; rejoin {
		return nil
	}
	if len(r.players) >= config.MaxPlayersPerRoom {
		return ErrRoomFull
	}
	if _, taken := r.playerByName(name); taken {
		return ErrNameTaken
	}

	r.players[clientID] = &Player{
		ID:   clientID,
		Name: name,
		Pos:  Point{X: config.DefaultPlayerSpawn[0], Y: config.DefaultPlayerSpawn[1]},
	}
	r.order = append(r.order, clientID)
	r.broadcastPlayerList()
	return nil
}

// RebindClient re-associates a known player name with a new connection id,
// used when a client transitions from the lobby page to the game view. The
// live game state is replayed to the new connection.
func (r *Room) RebindClient(name, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.playerByName(name); !ok {
		return ErrUnknownPlayer
	}
	r.rebindLocked(name, clientID)
	r.sendSnapshotLocked(clientID)
	return nil
}

func (r *Room) rebindLocked(name, clientID string) {
	for id, p := range r.players {
		if p.Name != name || id == clientID {
			continue
		}
		delete(r.players, id)
		p.ID = clientID
		r.players[clientID] = p
		for i, oid := range r.order {
			if oid == id {
				r.order[i] = clientID
			}
		}
		if r.moderatorID == id {
			r.moderatorID = clientID
		}
		return
	}
}

// sendSnapshotLocked replays the current session state to one client.
func (r *Room) sendSnapshotLocked(clientID string) {
	if r.phase != PhaseRunning {
		return
	}
	r.b.SendTo(clientID, EvLabyrinthLayout, LabyrinthPayload{Walls: r.walls})
	for _, res := range r.resources {
		r.b.SendTo(clientID, EvResourceSpawned, res)
	}
	r.b.SendTo(clientID, EvScoresUpdated, ScoresPayload{ScoreByName: r.scoreByNameLocked()})
	r.b.SendTo(clientID, EvPlayerPositions, PositionsPayload{PositionsByID: r.positionsLocked()})
	r.b.SendTo(clientID, EvTimeUpdate, TimeUpdatePayload{SecondsLeft: r.clock.SecondsLeft(time.Now())})
}

// RemoveClient drops a client from the room, reassigning the moderator role
// to the earliest remaining joiner when needed. It reports whether the room
// became empty.
func (r *Room) RemoveClient(clientID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[clientID]
	if !ok {
		return false
	}
	delete(r.players, clientID)
	for i, id := range r.order {
		if id == clientID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.moderatorID == clientID && len(r.order) > 0 {
		r.moderatorID = r.order[0]
		log.Printf("Room %s: moderator reassigned to %s", r.Code, r.players[r.moderatorID].Name)
	}

	r.b.Broadcast(r.Code, EvPlayerLeft, MessagePayload{Message: p.Name + " left the game."})
	r.broadcastPlayerList()
	return len(r.players) == 0
}

// HasClient reports whether the connection id belongs to this room.
func (r *Room) HasClient(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[clientID]
	return ok
}

// Phase returns the room lifecycle phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// PlayerCount returns the number of human participants.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// BotCount returns the number of bots in the room.
func (r *Room) BotCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bots)
}

// ResourceCount returns the number of live resources.
func (r *Room) ResourceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resources)
}

// UpdateSettings patches the room difficulty, preserving the other fields.
func (r *Room) UpdateSettings(actorID string, difficulty Difficulty) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.moderatorID {
		return ErrNotModerator
	}
	r.settings.Difficulty = difficulty
	r.b.Broadcast(r.Code, EvSettingsUpdated, r.settings)
	return nil
}

// UpdateGameMode patches the game mode, preserving the other fields.
func (r *Room) UpdateGameMode(actorID string, mode GameMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.moderatorID {
		return ErrNotModerator
	}
	r.settings.GameMode = mode
	r.b.Broadcast(r.Code, EvGameModeUpdated, GameModePayload{GameMode: mode})
	return nil
}

// UpdateBotSettings patches the bot roster settings, preserving the other
// fields.
func (r *Room) UpdateBotSettings(actorID string, count int, tier Difficulty) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.moderatorID {
		return ErrNotModerator
	}
	if count < 1 {
		count = 1
	}
	if count > config.MaxPlayersPerRoom-1 {
		count = config.MaxPlayersPerRoom - 1
	}
	r.settings.BotCount = count
	r.settings.BotDifficulty = tier
	r.b.Broadcast(r.Code, EvBotSettingsUpdated, BotSettingsPayload{BotCount: count, BotDifficulty: tier})
	return nil
}

// AnnounceLobby broadcasts the current participant list, used right after
// room creation once the creator's connection is subscribed.
func (r *Room) AnnounceLobby() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastPlayerList()
}

// Settings returns a copy of the room settings.
func (r *Room) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// playerByName finds a human player by room-unique name. Lock must be held.
func (r *Room) playerByName(name string) (*Player, bool) {
	for _, p := range r.players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// playerListLocked builds the lobby list, moderator first, bots flagged.
func (r *Room) playerListLocked() []PlayerInfo {
	list := make([]PlayerInfo, 0, len(r.order)+len(r.botOrder))
	if mod, ok := r.players[r.moderatorID]; ok {
		list = append(list, PlayerInfo{Name: mod.Name})
	}
	for _, id := range r.order {
		if id == r.moderatorID {
			continue
		}
		list = append(list, PlayerInfo{Name: r.players[id].Name})
	}
	for _, id := range r.botOrder {
		list = append(list, PlayerInfo{Name: r.bots[id].Name, IsBot: true})
	}
	return list
}

func (r *Room) broadcastPlayerList() {
	r.b.Broadcast(r.Code, EvUpdatePlayerList, PlayerListPayload{Players: r.playerListLocked()})
}

// scoreByNameLocked merges human and bot scores for broadcast.
func (r *Room) scoreByNameLocked() map[string]int {
	scores := make(map[string]int, len(r.players)+len(r.bots))
	for _, p := range r.players {
		scores[p.Name] = p.Score
	}
	for _, bot := range r.bots {
		scores[bot.Name] = bot.Score
	}
	return scores
}

func (r *Room) broadcastScores() {
	r.b.Broadcast(r.Code, EvScoresUpdated, ScoresPayload{ScoreByName: r.scoreByNameLocked()})
}

// positionsLocked builds the renderable position map for all entities.
func (r *Room) positionsLocked() map[string]PositionEntry {
	positions := make(map[string]PositionEntry, len(r.players)+len(r.bots))
	for id, p := range r.players {
		positions[id] = PositionEntry{PlayerName: p.Name, Position: p.Pos}
	}
	for id, bot := range r.bots {
		positions[id] = PositionEntry{PlayerName: bot.Name, Position: bot.Pos}
	}
	return positions
}

func (r *Room) broadcastPositions() {
	r.b.Broadcast(r.Code, EvPlayerPositions, PositionsPayload{PositionsByID: r.positionsLocked()})
}
