package game

import (
	"fmt"
	"math"
	"time"

	"labyrinth-server/config"

	"github.com/google/uuid"
)

// botParams is the per-tier behavior table. Harder bots decide faster, move
// faster, see further, and collect more precisely.
type botParams struct {
	DecisionInterval time.Duration // gate between retargeting decisions
	MoveSpeed        float64       // pixels per second
	DetectionRadius  float64       // resource scan range
	CollectRadius    float64       // attempt collection inside this range
	CollectChance    float64       // probability an attempt succeeds
	PowerUpBias      float64       // probability of preferring power-ups
	MissChance       float64       // probability of substituting a random direction
}

var botTiers = map[Difficulty]botParams{
	Easy:   {DecisionInterval: 3500 * time.Millisecond, MoveSpeed: 50, DetectionRadius: 250, CollectRadius: 30, CollectChance: 0.70, PowerUpBias: 0.20, MissChance: 0.20},
	Medium: {DecisionInterval: 3 * time.Second, MoveSpeed: 65, DetectionRadius: 400, CollectRadius: 25, CollectChance: 0.85, PowerUpBias: 0.50, MissChance: 0.10},
	Hard:   {DecisionInterval: 2 * time.Second, MoveSpeed: 90, DetectionRadius: 600, CollectRadius: 20, CollectChance: 0.95, PowerUpBias: 0.80, MissChance: 0.03},
}

const (
	botTrailLen   = 5   // recent positions kept for stuck detection
	stuckEpsilon  = 2.5 // total displacement under this across the trail means stuck
	arriveEpsilon = 1.0
)

// Bot is a server-controlled participant following the controller state
// machine instead of client input.
type Bot struct {
	ID           string
	Name         string
	Pos          Point
	Score        int
	Tier         Difficulty
	params       botParams
	TargetID     string // live resource id; empty while wandering
	TargetPos    Point
	HasTarget    bool
	LastDecision time.Time
	StuckResets  int

	trail    [botTrailLen]Point
	trailLen int
	trailIdx int
}

// spawnBotsLocked creates the room's bot roster from its settings, replacing
// any previous one. Spawn points are spaced per bot so they do not stack.
func (r *Room) spawnBotsLocked(now time.Time) {
	for id := range r.bots {
		delete(r.bots, id)
	}
	r.botOrder = r.botOrder[:0]

	tier := r.settings.BotDifficulty
	for i := 0; i < r.settings.BotCount; i++ {
		n := float64(i + 1)
		bot := &Bot{
			ID:     uuid.New().String(),
			Name:   fmt.Sprintf("Bot-%d", i+1),
			Tier:   tier,
			params: botTiers[tier],
			Pos: Point{
				X: r.rng.Float64()*500 + 250 + n*50,
				Y: r.rng.Float64()*400 + 200 + n*50,
			},
			LastDecision: now,
		}
		r.bots[bot.ID] = bot
		r.botOrder = append(r.botOrder, bot.ID)
	}
}

// resetBotsLocked re-seats every bot for a restart: fresh spaced position,
// no target, zero score, clean stuck state.
func (r *Room) resetBotsLocked(now time.Time) {
	for i, id := range r.botOrder {
		bot := r.bots[id]
		n := float64(i + 1)
		bot.Pos = Point{
			X: r.rng.Float64()*500 + 250 + n*50,
			Y: r.rng.Float64()*400 + 200 + n*50,
		}
		bot.Score = 0
		bot.TargetID = ""
		bot.HasTarget = false
		bot.LastDecision = now
		bot.trailLen = 0
		bot.trailIdx = 0
		bot.StuckResets = 0
	}
}

// tickBotsLocked is the fine-grained dispatch pass. Each bot moves every
// tick; retargeting is gated by its own decision interval.
func (r *Room) tickBotsLocked(now time.Time) {
	moved := false
	for _, id := range r.botOrder {
		bot := r.bots[id]

		stale := bot.TargetID != "" && r.resources[bot.TargetID] == nil
		if !bot.HasTarget || stale || now.Sub(bot.LastDecision) >= bot.params.DecisionInterval {
			r.acquireTargetLocked(bot, now)
		}
		if bot.HasTarget {
			if r.moveBotLocked(bot) {
				moved = true
			}
			r.tryCollectLocked(bot, now)
		}
		r.recordTrail(bot)
	}
	if moved {
		r.broadcastPositions()
	}
}

// acquireTargetLocked picks the bot's next destination. Resources inside the
// detection radius are preferred; power-ups win a bias roll; Hard bots take
// the nearest candidate while lower tiers choose at random. Non-Easy bots may
// chase out-of-range resources when nothing is near. With no resources at
// all the bot drifts to a random open spot.
func (r *Room) acquireTargetLocked(bot *Bot, now time.Time) {
	bot.LastDecision = now

	candidates := make([]*Resource, 0, len(r.resources))
	for _, res := range r.resources {
		if distance(bot.Pos, resourceCenter(res)) <= bot.params.DetectionRadius {
			candidates = append(candidates, res)
		}
	}
	if len(candidates) == 0 && len(r.resources) > 0 && bot.Tier != Easy {
		for _, res := range r.resources {
			candidates = append(candidates, res)
		}
	}

	if len(candidates) == 0 {
		bot.TargetID = ""
		bot.TargetPos = r.wanderPointLocked()
		bot.HasTarget = true
		return
	}

	if r.rng.Float64() < bot.params.PowerUpBias {
		powerUps := candidates[:0:0]
		for _, res := range candidates {
			if res.Kind == ResourcePowerUp {
				powerUps = append(powerUps, res)
			}
		}
		if len(powerUps) > 0 {
			candidates = powerUps
		}
	}

	var chosen *Resource
	if bot.Tier == Hard {
		best := math.MaxFloat64
		for _, res := range candidates {
			if d := distance(bot.Pos, resourceCenter(res)); d < best {
				best = d
				chosen = res
			}
		}
	} else {
		chosen = candidates[r.rng.Intn(len(candidates))]
	}

	bot.TargetID = chosen.ID
	bot.TargetPos = resourceCenter(chosen)
	bot.HasTarget = true
}

// wanderPointLocked returns a random drift destination away from the board
// edges.
func (r *Room) wanderPointLocked() Point {
	return Point{
		X: r.rng.Float64()*(config.BOARD_WIDTH-100-config.PLAYER_SIZE) + 50,
		Y: r.rng.Float64()*(config.BOARD_HEIGHT-100-config.PLAYER_SIZE) + 50,
	}
}

// moveBotLocked advances the bot one tick toward its target, with an
// accuracy roll that occasionally substitutes a random heading. Blocked moves
// degrade to axis-separated attempts and then a perpendicular nudge; a bot
// with no legal move simply holds position for the tick.
func (r *Room) moveBotLocked(bot *Bot) bool {
	step := bot.params.MoveSpeed * config.BOT_TICK_INTERVAL.Seconds()
	dx := bot.TargetPos.X - bot.Pos.X
	dy := bot.TargetPos.Y - bot.Pos.Y
	dist := math.Hypot(dx, dy)
	if dist < arriveEpsilon {
		if bot.TargetID == "" {
			bot.HasTarget = false
		}
		return false
	}

	dirX, dirY := dx/dist, dy/dist
	if r.rng.Float64() < bot.params.MissChance {
		ang := r.rng.Float64() * 2 * math.Pi
		dirX, dirY = math.Cos(ang), math.Sin(ang)
	}
	if dist < step {
		step = dist
	}

	next := Point{X: bot.Pos.X + dirX*step, Y: bot.Pos.Y + dirY*step}
	if !r.botBlockedLocked(next) {
		bot.Pos = clampToBoard(next)
		return true
	}
	// Axis-separated fallback: slide along whichever axis is open.
	xOnly := Point{X: bot.Pos.X + dirX*step, Y: bot.Pos.Y}
	if !r.botBlockedLocked(xOnly) {
		bot.Pos = clampToBoard(xOnly)
		return true
	}
	yOnly := Point{X: bot.Pos.X, Y: bot.Pos.Y + dirY*step}
	if !r.botBlockedLocked(yOnly) {
		bot.Pos = clampToBoard(yOnly)
		return true
	}
	// Perpendicular nudge as a last resort.
	sign := 1.0
	if r.rng.Intn(2) == 0 {
		sign = -1.0
	}
	nudge := Point{X: bot.Pos.X - dirY*step*sign, Y: bot.Pos.Y + dirX*step*sign}
	if !r.botBlockedLocked(nudge) {
		bot.Pos = clampToBoard(nudge)
		return true
	}
	return false
}

func (r *Room) botBlockedLocked(p Point) bool {
	return rectInAnyWall(Rect{X: p.X, Y: p.Y, W: config.PLAYER_SIZE, H: config.PLAYER_SIZE}, r.walls)
}

func clampToBoard(p Point) Point {
	p.X = math.Max(0, math.Min(config.BOARD_WIDTH-config.PLAYER_SIZE, p.X))
	p.Y = math.Max(0, math.Min(config.BOARD_HEIGHT-config.PLAYER_SIZE, p.Y))
	return p
}

// tryCollectLocked attempts collection once the bot is inside its collection
// radius: a precise AABB test gated by the tier's precision roll. The target
// is cleared on both outcome paths so the bot never oscillates on a missed
// roll.
func (r *Room) tryCollectLocked(bot *Bot, now time.Time) {
	if bot.TargetID == "" {
		return
	}
	res, ok := r.resources[bot.TargetID]
	if !ok {
		bot.TargetID = ""
		bot.HasTarget = false
		return
	}
	if distance(bot.Pos, resourceCenter(res)) > bot.params.CollectRadius+config.PLAYER_SIZE/2 {
		return
	}

	botRect := Rect{X: bot.Pos.X, Y: bot.Pos.Y, W: config.PLAYER_SIZE, H: config.PLAYER_SIZE}
	resRect := Rect{X: res.Left, Y: res.Top, W: config.RESOURCE_SIZE, H: config.RESOURCE_SIZE}
	if RectsOverlap(botRect, resRect) && r.rng.Float64() < bot.params.CollectChance {
		r.collectBotLocked(res.ID, bot, now)
	}
	bot.TargetID = ""
	bot.HasTarget = false
}

// recordTrail pushes the current position into the stuck-detection ring and
// forces a target reset once a full ring shows near-zero displacement.
func (r *Room) recordTrail(bot *Bot) {
	bot.trail[bot.trailIdx] = bot.Pos
	bot.trailIdx = (bot.trailIdx + 1) % botTrailLen
	if bot.trailLen < botTrailLen {
		bot.trailLen++
		return
	}

	oldest := bot.trail[bot.trailIdx] // next slot to overwrite is the oldest
	if distance(oldest, bot.Pos) < stuckEpsilon {
		bot.TargetID = ""
		bot.HasTarget = false
		bot.LastDecision = time.Time{} // retarget on the next tick
		bot.StuckResets++
		bot.trailLen = 0
		bot.trailIdx = 0
	}
}

func resourceCenter(res *Resource) Point {
	return Point{X: res.Left + config.RESOURCE_SIZE/2, Y: res.Top + config.RESOURCE_SIZE/2}
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
