// Package snapshot builds the read-only WorldSnapshot every planner sees.
// BuildSnapshot is a pure function of its inputs: it never mutates the
// world, and identical inputs always yield byte-identical JSON (spec §8,
// property 3).
package snapshot

import (
	"encoding/json"

	"github.com/astraweave/core/pkg/ecs"
	"github.com/astraweave/core/pkg/world"
)

// Poi is a point of interest the snapshot may surface to planners.
type Poi struct {
	Kind string     `json:"k"`
	Pos  world.IVec2 `json:"pos"`
}

// POIs is the world-resource type carrying every POI the host has
// registered; install with ecs.Set(w.Resources, snapshot.POIs{...}).
type POIs []Poi

// Stances is an optional per-entity stance override resource; entities
// absent from the map default to "stand".
type Stances map[ecs.Entity]string

// Orders is an optional per-entity standing-orders override resource.
type Orders map[ecs.Entity][]string

// Morales is an optional per-entity morale override resource; entities
// absent from the map default to 1.0.
type Morales map[ecs.Entity]float64

// Covers is an optional per-enemy cover-description override resource;
// entities absent from the map default to "none".
type Covers map[ecs.Entity]string

// CompanionState is the snapshot's view of the planning agent itself.
type CompanionState struct {
	Pos       world.IVec2          `json:"pos"`
	Ammo      int32                `json:"ammo"`
	Cooldowns map[string]float64   `json:"cooldowns"`
	Morale    float64              `json:"morale"`
}

// PlayerState is the snapshot's view of the human-led character.
type PlayerState struct {
	Pos    world.IVec2 `json:"pos"`
	HP     int32       `json:"hp"`
	Stance string      `json:"stance"`
	Orders []string    `json:"orders"`
}

// EnemyState is one LOS-visible hostile.
type EnemyState struct {
	ID       uint32      `json:"id"`
	Pos      world.IVec2 `json:"pos"`
	HP       int32       `json:"hp"`
	Cover    string      `json:"cover"`
	LastSeen float64     `json:"last_seen"`
}

// Snapshot is the complete, self-contained, serializable per-agent view
// of the world. It is the only input a planner sees.
type Snapshot struct {
	T         float64        `json:"t"`
	Me        CompanionState `json:"me"`
	Player    PlayerState    `json:"player"`
	Enemies   []EnemyState   `json:"enemies"`
	Pois      []Poi          `json:"pois"`
	Obstacles []world.IVec2  `json:"obstacles"`
	Objective *string        `json:"objective"`
}

// Config gates how far perception reaches.
type Config struct {
	LosMax int32
}

// Build derives a Snapshot for companion, as seen from its own position,
// given player and a candidate list of enemy entities. It never mutates w.
func Build(w *world.World, player, companion ecs.Entity, candidateEnemies []ecs.Entity, objective *string, cfg Config) Snapshot {
	me := companionState(w, companion)
	ps := playerState(w, companion, player)

	enemies := make([]EnemyState, 0, len(candidateEnemies))
	covers, _ := ecs.Get[Covers](w.Resources)
	for _, enemy := range candidateEnemies {
		pos, ok := w.PosOf(enemy)
		if !ok {
			continue
		}
		if !visible(w, me.Pos, pos, cfg.LosMax) {
			continue
		}
		hp, _ := w.Health(enemy)
		cover := "none"
		if covers != nil {
			if c, ok := covers[enemy]; ok {
				cover = c
			}
		}
		enemies = append(enemies, EnemyState{
			ID:       enemy.ID,
			Pos:      pos,
			HP:       hp.HP,
			Cover:    cover,
			LastSeen: 0,
		})
	}

	var pois []Poi
	if all, ok := ecs.Get[POIs](w.Resources); ok {
		for _, p := range all {
			if visible(w, me.Pos, p.Pos, cfg.LosMax) {
				pois = append(pois, p)
			}
		}
	}

	var obstacles []world.IVec2
	for _, cell := range w.Obstacles() {
		if me.Pos.Chebyshev(cell) <= cfg.LosMax {
			obstacles = append(obstacles, cell)
		}
	}

	return Snapshot{
		T:         w.Time(),
		Me:        me,
		Player:    ps,
		Enemies:   enemies,
		Pois:      pois,
		Obstacles: obstacles,
		Objective: objective,
	}
}

func companionState(w *world.World, companion ecs.Entity) CompanionState {
	pos, _ := w.PosOf(companion)
	ammo, _ := w.Ammo(companion)
	cds, _ := w.Cooldowns(companion)

	morale := 1.0
	if morales, ok := ecs.Get[Morales](w.Resources); ok {
		if m, ok := morales[companion]; ok {
			morale = m
		}
	}

	sorted := make(map[string]float64, len(cds))
	for _, entry := range cds.Sorted() {
		sorted[entry.Key] = entry.Remaining
	}

	return CompanionState{Pos: pos, Ammo: ammo.Rounds, Cooldowns: sorted, Morale: morale}
}

func playerState(w *world.World, companion, player ecs.Entity) PlayerState {
	pos, _ := w.PosOf(player)
	hp, _ := w.Health(player)

	stance := "stand"
	if stances, ok := ecs.Get[Stances](w.Resources); ok {
		if s, ok := stances[player]; ok {
			stance = s
		}
	}

	var orders []string
	if all, ok := ecs.Get[Orders](w.Resources); ok {
		orders = all[player]
	}

	return PlayerState{Pos: pos, HP: hp.HP, Stance: stance, Orders: orders}
}

// visible reports whether target is within los_max of origin (Chebyshev)
// and unobstructed by any cell on the line between them, per spec §4.3:
// exactly los_max is included, one cell beyond is excluded.
func visible(w *world.World, origin, target world.IVec2, losMax int32) bool {
	if origin.Chebyshev(target) > losMax {
		return false
	}
	for _, cell := range lineCells(origin, target) {
		if cell == origin || cell == target {
			continue
		}
		if w.Obstacle(cell) {
			return false
		}
	}
	return true
}

// lineCells walks a with a digital differential analyzer from a to b
// inclusive, the integer-grid line-of-sight trace spec §3 names.
func lineCells(a, b world.IVec2) []world.IVec2 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	steps := int32(maxAbs(dx, dy))
	if steps == 0 {
		return []world.IVec2{a}
	}
	xInc := dx / float64(steps)
	yInc := dy / float64(steps)

	cells := make([]world.IVec2, 0, steps+1)
	x, y := float64(a.X), float64(a.Y)
	for i := int32(0); i <= steps; i++ {
		cells = append(cells, world.IVec2{X: roundToInt(x), Y: roundToInt(y)})
		x += xInc
		y += yInc
	}
	return cells
}

func maxAbs(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}

func roundToInt(v float64) int32 {
	if v >= 0 {
		return int32(v + 0.5)
	}
	return -int32(-v + 0.5)
}

// MarshalDeterministicJSON renders the snapshot with Go's stable
// map-key-sorted object encoding (encoding/json always sorts map keys),
// satisfying spec §8 property 3's byte-identical requirement.
func (s Snapshot) MarshalDeterministicJSON() ([]byte, error) {
	return json.Marshal(s)
}
