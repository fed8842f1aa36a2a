package game

import (
	"log"
	"strconv"
	"strings"
	"time"

	"labyrinth-server/config"
)

// Start begins the session. Only the moderator may trigger it; multiplayer
// needs at least two humans, single-player exactly one. It generates the
// maze, seeds bots and resources, resets the clock, and launches the run
// loop that owns the three session tickers.
func (r *Room) Start(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if actorID != r.moderatorID {
		return ErrNotModerator
	}
	// A second start would orphan the live run loop's done channel.
	if r.phase == PhaseRunning {
		return ErrGameInProgress
	}
	switch r.settings.GameMode {
	case SinglePlayer:
		if len(r.players) != 1 {
			return ErrTooManyHumans
		}
	default:
		if len(r.players) < 2 {
			return ErrNotEnoughHuman
		}
	}

	now := time.Now()
	r.walls = GenerateLabyrinth(r.settings.Difficulty, r.rng)
	if r.settings.GameMode == SinglePlayer {
		r.spawnBotsLocked(now)
	}
	for _, p := range r.players {
		p.Score = 0
		p.Pos = Point{X: config.DefaultPlayerSpawn[0], Y: config.DefaultPlayerSpawn[1]}
		p.SlowUntil = time.Time{}
	}
	r.clock = NewGameClock(config.GAME_DURATION, now)
	r.phase = PhaseRunning
	r.paused = false

	r.b.Broadcast(r.Code, EvGameStarted, struct{}{})
	r.b.Broadcast(r.Code, EvLabyrinthLayout, LabyrinthPayload{Walls: r.walls})
	r.broadcastPlayerList()
	r.broadcastScores()
	for i := 0; i < config.ResourceFloor; i++ {
		r.spawnResourceLocked(now)
	}

	r.done = make(chan struct{})
	go r.run(r.done)
	log.Printf("Room %s: game started (%s, difficulty %s)", r.Code, r.settings.GameMode, r.settings.Difficulty)
	return nil
}

// run is the session loop. All three tickers live here so that one close of
// done cancels the whole set; every tick re-checks phase and pause under the
// room lock, making late ticks against a stopped session harmless no-ops.
func (r *Room) run(done chan struct{}) {
	clockTicker := time.NewTicker(config.CLOCK_TICK_INTERVAL)
	resourceTicker := time.NewTicker(config.RESOURCE_TICK_INTERVAL)
	botTicker := time.NewTicker(config.BOT_TICK_INTERVAL)
	defer func() {
		clockTicker.Stop()
		resourceTicker.Stop()
		botTicker.Stop()
		log.Printf("Room %s: session loop stopped", r.Code)
	}()

	for {
		select {
		case <-done:
			return
		case now := <-clockTicker.C:
			r.tickClock(now)
		case now := <-resourceTicker.C:
			r.tickResources(now)
		case now := <-botTicker.C:
			r.tickBots(now)
		}
	}
}

func (r *Room) tickClock(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning || r.paused {
		return
	}
	left := r.clock.SecondsLeft(now)
	r.b.Broadcast(r.Code, EvTimeUpdate, TimeUpdatePayload{SecondsLeft: left})
	if r.clock.TimeLeft(now) == 0 {
		r.finishLocked()
	}
}

func (r *Room) tickResources(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning || r.paused {
		return
	}
	r.tickResourcesLocked(now)
}

func (r *Room) tickBots(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning || r.paused {
		return
	}
	r.tickBotsLocked(now)
}

// finishLocked ends the session: tickers are cancelled, the result computed
// and broadcast, and the room returns to a joinable lobby phase.
func (r *Room) finishLocked() {
	r.stopTickersLocked()
	r.phase = PhaseEnded

	result := r.resultLocked()
	r.b.Broadcast(r.Code, EvGameOver, result)
	r.clearResourcesLocked()
	log.Printf("Room %s: game over, %s", r.Code, result.Message)
}

// resultLocked computes the winner, or the tied set sharing the top score.
func (r *Room) resultLocked() GameOverPayload {
	best := 0
	first := true
	for _, p := range r.players {
		if first || p.Score > best {
			best = p.Score
			first = false
		}
	}
	for _, bot := range r.bots {
		if first || bot.Score > best {
			best = bot.Score
			first = false
		}
	}

	var leaders []string
	for _, id := range r.order {
		if p := r.players[id]; p.Score == best {
			leaders = append(leaders, p.Name)
		}
	}
	for _, id := range r.botOrder {
		if bot := r.bots[id]; bot.Score == best {
			leaders = append(leaders, bot.Name)
		}
	}

	if len(leaders) == 1 {
		return GameOverPayload{
			Winner:  leaders[0],
			Score:   best,
			Message: leaders[0] + " wins with " + strconv.Itoa(best) + " points!",
		}
	}
	return GameOverPayload{
		TiedPlayers: leaders,
		Score:       best,
		Message:     "Tie between " + strings.Join(leaders, ", ") + " at " + strconv.Itoa(best) + " points!",
	}
}

// stopTickersLocked is the single cancellation path for the session's ticker
// set.
func (r *Room) stopTickersLocked() {
	if r.done != nil {
		close(r.done)
		r.done = nil
	}
}

// HandleAction dispatches a game action (pause, resume, restart, quit) from
// the named actor. Unknown actors and unknown actions are dropped.
func (r *Room) HandleAction(action, playerName string) {
	switch action {
	case "pause":
		r.pause(playerName)
	case "resume":
		r.resume(playerName)
	case "restart":
		r.restart(playerName)
	case "quit":
		r.Quit(playerName)
	default:
		log.Printf("Room %s: unknown game action %q from %s", r.Code, action, playerName)
	}
}

// pause freezes the clock and suspends gameplay ticks; the tickers keep
// firing but no-op until resume.
func (r *Room) pause(playerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning || r.paused {
		return
	}
	r.paused = true
	r.clock.Pause(time.Now())
	r.b.Broadcast(r.Code, EvGamePaused, MessagePayload{Message: playerName + " paused the game."})
}

func (r *Room) resume(playerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning || !r.paused {
		return
	}
	r.paused = false
	r.clock.Resume(time.Now())
	r.b.Broadcast(r.Code, EvGameResumed, MessagePayload{Message: playerName + " resumed the game."})
}

// restart resets the session in place: all scores to zero, resources cleared,
// a fresh maze, bots re-seated, and the clock restarted. The run loop keeps
// going; only the state is replaced.
func (r *Room) restart(playerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning {
		return
	}
	now := time.Now()
	for _, p := range r.players {
		p.Score = 0
		p.Pos = Point{X: config.DefaultPlayerSpawn[0], Y: config.DefaultPlayerSpawn[1]}
		p.SlowUntil = time.Time{}
	}
	r.clearResourcesLocked()
	r.walls = GenerateLabyrinth(r.settings.Difficulty, r.rng)
	r.resetBotsLocked(now)
	r.clock.Reset(now)
	r.paused = false

	r.b.Broadcast(r.Code, EvGameRestart, RestartPayload{Message: playerName + " restarted the game.", ResetScores: true})
	r.b.Broadcast(r.Code, EvLabyrinthLayout, LabyrinthPayload{Walls: r.walls})
	r.broadcastScores()
	r.broadcastPositions()
	for i := 0; i < config.ResourceFloor; i++ {
		r.spawnResourceLocked(now)
	}
	log.Printf("Room %s: game restarted by %s", r.Code, playerName)
}

// Quit handles a participant leaving mid-session. A moderator quit tears the
// whole room down; anyone else is removed and play continues.
func (r *Room) Quit(playerName string) {
	r.mu.Lock()
	p, ok := r.playerByName(playerName)
	if !ok {
		r.mu.Unlock()
		return
	}
	if p.ID == r.moderatorID {
		r.stopTickersLocked()
		r.phase = PhaseEnded
		r.b.Broadcast(r.Code, EvGameQuit, MessagePayload{Message: playerName + " ended the game."})
		r.b.Broadcast(r.Code, EvLobbyClosed, struct{}{})
		onClose := r.onClose
		code := r.Code
		r.mu.Unlock()
		if onClose != nil {
			onClose(code)
		}
		return
	}
	id := p.ID
	r.mu.Unlock()
	r.RemoveClient(id)
}

// Close cancels the ticker set without broadcasting; the registry calls it
// when it drops the room.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTickersLocked()
	r.phase = PhaseEnded
}

// Move validates and commits a human move. The server is authoritative: a
// candidate position overlapping any wall is rejected and the stored position
// stays unchanged. This is an expected race with client prediction, not an
// error.
func (r *Room) Move(playerName string, pos Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning || r.paused {
		return
	}
	p, ok := r.playerByName(playerName)
	if !ok {
		return
	}
	next := pos
	if time.Now().Before(p.SlowUntil) {
		// An active power-up debuff scales the committed displacement down.
		next = Point{
			X: p.Pos.X + (pos.X-p.Pos.X)*config.SlowEffectFactor,
			Y: p.Pos.Y + (pos.Y-p.Pos.Y)*config.SlowEffectFactor,
		}
	}
	next = clampToBoard(next)
	if rectInAnyWall(Rect{X: next.X, Y: next.Y, W: config.PLAYER_SIZE, H: config.PLAYER_SIZE}, r.walls) {
		return
	}
	p.Pos = next
	r.broadcastPositions()
}
