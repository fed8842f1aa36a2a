package game

import (
	"time"

	"labyrinth-server/config"

	"github.com/google/uuid"
)

// spawnResourceLocked places one new resource at a random wall-free point and
// announces it. Points inside walls are re-rolled a bounded number of times;
// if every attempt lands in a wall the resource falls back to the board
// center, which the maze generator keeps clear.
func (r *Room) spawnResourceLocked(now time.Time) *Resource {
	var x, y float64
	placed := false
	for attempt := 0; attempt < config.ResourceMaxAttempts; attempt++ {
		x = r.rng.Float64() * config.BOARD_WIDTH
		y = r.rng.Float64() * config.BOARD_HEIGHT
		if !PointInAnyWall(x, y, r.walls) {
			placed = true
			break
		}
	}
	if !placed {
		x = config.BOARD_WIDTH/2 - config.RESOURCE_SIZE/2
		y = config.BOARD_HEIGHT/2 - config.RESOURCE_SIZE/2
	}

	kind := ResourceNormal
	if r.rng.Float64() < config.PowerUpProbability {
		kind = ResourcePowerUp
	}
	ttl := config.ResourceTTLMin + time.Duration(r.rng.Int63n(int64(config.ResourceTTLSpread)))
	res := &Resource{
		ID:        uuid.New().String(),
		Left:      x,
		Top:       y,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	r.resources[res.ID] = res
	r.b.Broadcast(r.Code, EvResourceSpawned, res)
	return res
}

// tickResourcesLocked is the 1s population pass: expired resources are swept,
// 1-3 new ones spawn, and the pool is topped up to the floor.
func (r *Room) tickResourcesLocked(now time.Time) {
	for id, res := range r.resources {
		if now.After(res.ExpiresAt) {
			delete(r.resources, id)
			r.b.Broadcast(r.Code, EvResourceRemoved, ResourceRemovedPayload{ResourceID: id})
		}
	}

	n := r.rng.Intn(3) + 1
	for i := 0; i < n; i++ {
		r.spawnResourceLocked(now)
	}
	r.replenishLocked(now)
}

// replenishLocked tops the live-resource pool up to the population floor.
func (r *Room) replenishLocked(now time.Time) {
	for len(r.resources) < config.ResourceFloor {
		r.spawnResourceLocked(now)
	}
}

// CollectResource handles a human player's collection claim. A claim for a
// resource that is already gone is a harmless no-op: collection and expiry
// race by design and first writer wins.
func (r *Room) CollectResource(resourceID, playerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRunning || r.paused {
		return
	}
	p, ok := r.playerByName(playerName)
	if !ok {
		return
	}
	r.collectLocked(resourceID, playerName, &p.Score, time.Now())
}

// collectBotLocked routes a bot's collection through the same at-most-once
// path as human claims.
func (r *Room) collectBotLocked(resourceID string, bot *Bot, now time.Time) bool {
	return r.collectLocked(resourceID, bot.Name, &bot.Score, now)
}

// collectLocked removes the resource if still present, awards points, and
// applies power-up side effects. Returns false when the resource was already
// gone.
func (r *Room) collectLocked(resourceID, collectorName string, score *int, now time.Time) bool {
	res, ok := r.resources[resourceID]
	if !ok {
		return false
	}
	delete(r.resources, resourceID)
	r.b.Broadcast(r.Code, EvResourceRemoved, ResourceRemovedPayload{ResourceID: resourceID})

	*score += config.ResourcePoints

	if res.Kind == ResourcePowerUp {
		until := now.Add(config.SlowEffectDuration)
		for _, other := range r.players {
			if other.Name != collectorName {
				other.SlowUntil = until
			}
		}
		r.b.Broadcast(r.Code, EvPowerUpEffect, PowerUpPayload{
			Source:     collectorName,
			Effect:     "slow",
			Factor:     config.SlowEffectFactor,
			DurationMs: config.SlowEffectDuration.Milliseconds(),
		})
	}

	r.broadcastScores()
	r.replenishLocked(now)
	return true
}

// clearResourcesLocked removes every live resource, broadcasting each removal
// so clients drop them from view.
func (r *Room) clearResourcesLocked() {
	for id := range r.resources {
		delete(r.resources, id)
		r.b.Broadcast(r.Code, EvResourceRemoved, ResourceRemovedPayload{ResourceID: id})
	}
}
