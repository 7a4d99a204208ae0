// Package world implements the authoritative simulation state: entity
// lifecycle, components, obstacles, and simulation time. World exclusively
// owns every component storage and resource; planners, validators, and
// systems borrow it per stage and never hold a reference across stages.
package world

import (
	"sort"

	"github.com/astraweave/core/pkg/ecs"
)

// World is the authoritative state container. Zero value is not usable;
// construct with New.
type World struct {
	alloc   *ecs.Allocator
	alive   map[ecs.Entity]struct{}
	names   map[ecs.Entity]string
	idIndex map[uint32]ecs.Entity

	poses       *ecs.Storage[Pose]
	healths     *ecs.Storage[Health]
	teams       *ecs.Storage[Team]
	ammos       *ecs.Storage[Ammo]
	cooldowns   *ecs.Storage[Cooldowns]
	desiredPos  *ecs.Storage[DesiredPos]
	controllers *ecs.Storage[AiController]
	behaviors   *ecs.Storage[BehaviorGraph]
	legacyIDs   *ecs.Storage[LegacyId]

	obstacles map[IVec2]struct{}

	t float64

	Resources *ecs.Resources
}

// New returns an empty world at t=0.
func New() *World {
	return &World{
		alloc:       ecs.NewAllocator(),
		alive:       make(map[ecs.Entity]struct{}),
		names:       make(map[ecs.Entity]string),
		idIndex:     make(map[uint32]ecs.Entity),
		poses:       ecs.NewStorage[Pose](),
		healths:     ecs.NewStorage[Health](),
		teams:       ecs.NewStorage[Team](),
		ammos:       ecs.NewStorage[Ammo](),
		cooldowns:   ecs.NewStorage[Cooldowns](),
		desiredPos:  ecs.NewStorage[DesiredPos](),
		controllers: ecs.NewStorage[AiController](),
		behaviors:   ecs.NewStorage[BehaviorGraph](),
		legacyIDs:   ecs.NewStorage[LegacyId](),
		obstacles:   make(map[IVec2]struct{}),
		Resources:   ecs.NewResources(),
	}
}

// Time returns the current simulation time in seconds.
func (w *World) Time() float64 { return w.t }

// Spawn creates an entity carrying Pose, Health, Team, Ammo, and an empty
// Cooldowns map. name is advisory (used for diagnostics only).
func (w *World) Spawn(name string, pos IVec2, team uint8, hp, ammo int32) ecs.Entity {
	e := w.alloc.Alloc()
	w.alive[e] = struct{}{}
	w.names[e] = name
	w.idIndex[e.ID] = e
	w.poses.Insert(e, Pose{Pos: pos, Scale: 1})
	w.healths.Insert(e, Health{HP: hp})
	w.teams.Insert(e, Team{ID: team})
	w.ammos.Insert(e, Ammo{Rounds: ammo})
	w.cooldowns.Insert(e, Cooldowns{})
	return e
}

// Despawn removes e and every component it carries. No-op if e is absent.
func (w *World) Despawn(e ecs.Entity) {
	if _, ok := w.alive[e]; !ok {
		return
	}
	delete(w.alive, e)
	delete(w.names, e)
	delete(w.idIndex, e.ID)
	w.poses.Remove(e)
	w.healths.Remove(e)
	w.teams.Remove(e)
	w.ammos.Remove(e)
	w.cooldowns.Remove(e)
	w.desiredPos.Remove(e)
	w.controllers.Remove(e)
	w.behaviors.Remove(e)
	w.legacyIDs.Remove(e)
	w.alloc.Free(e)
}

// ByID resolves a raw entity id (as carried by snapshot.EnemyState.ID or
// a plan.ActionStep target id) to its current live Entity handle,
// including generation. Returns false if no live entity currently holds
// that id.
func (w *World) ByID(id uint32) (ecs.Entity, bool) {
	e, ok := w.idIndex[id]
	return e, ok
}

// Alive reports whether e currently exists.
func (w *World) Alive(e ecs.Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Name returns e's advisory spawn name.
func (w *World) Name(e ecs.Entity) string { return w.names[e] }

// Pose/Health/Team/Ammo/Cooldowns/DesiredPos/AiController/BehaviorGraph/
// LegacyId: read accessors. Each returns (zero, false) if e lacks the
// component rather than panicking.
func (w *World) Pose(e ecs.Entity) (Pose, bool)             { return w.poses.Get(e) }
func (w *World) Health(e ecs.Entity) (Health, bool)         { return w.healths.Get(e) }
func (w *World) Team(e ecs.Entity) (Team, bool)             { return w.teams.Get(e) }
func (w *World) Ammo(e ecs.Entity) (Ammo, bool)             { return w.ammos.Get(e) }
func (w *World) Cooldowns(e ecs.Entity) (Cooldowns, bool)   { return w.cooldowns.Get(e) }
func (w *World) DesiredPos(e ecs.Entity) (DesiredPos, bool) { return w.desiredPos.Get(e) }
func (w *World) Controller(e ecs.Entity) (AiController, bool) {
	return w.controllers.Get(e)
}
func (w *World) Behavior(e ecs.Entity) (BehaviorGraph, bool) { return w.behaviors.Get(e) }
func (w *World) Legacy(e ecs.Entity) (LegacyId, bool)        { return w.legacyIDs.Get(e) }

// PoseMut/HealthMut/AmmoMut: mutable accessors, nil if the entity lacks
// the component.
func (w *World) PoseMut(e ecs.Entity) *Pose     { return w.poses.GetMut(e) }
func (w *World) HealthMut(e ecs.Entity) *Health { return w.healths.GetMut(e) }
func (w *World) AmmoMut(e ecs.Entity) *Ammo     { return w.ammos.GetMut(e) }

// SetHealth clamps hp to >= 0 and writes it, enforcing spec's Health
// invariant at the single mutation point every caller goes through.
func (w *World) SetHealth(e ecs.Entity, hp int32) {
	if hp < 0 {
		hp = 0
	}
	if h := w.healths.GetMut(e); h != nil {
		h.HP = hp
	}
}

// SetAmmo clamps rounds to >= 0 and writes it.
func (w *World) SetAmmo(e ecs.Entity, rounds int32) {
	if rounds < 0 {
		rounds = 0
	}
	if a := w.ammos.GetMut(e); a != nil {
		a.Rounds = rounds
	}
}

// SetDesiredPos installs or overwrites e's movement intent.
func (w *World) SetDesiredPos(e ecs.Entity, target IVec2) {
	w.desiredPos.Insert(e, DesiredPos{Target: target})
}

// SetController installs or overwrites e's AI mode.
func (w *World) SetController(e ecs.Entity, c AiController) {
	w.controllers.Insert(e, c)
}

// SetBehavior installs or overwrites e's BT/arbiter scratch state.
func (w *World) SetBehavior(e ecs.Entity, b BehaviorGraph) {
	w.behaviors.Insert(e, b)
}

// SetLegacy installs e's legacy-world bridge id.
func (w *World) SetLegacy(e ecs.Entity, id uint64) {
	w.legacyIDs.Insert(e, LegacyId{ID: id})
}

// SetPose overwrites e's pose wholesale.
func (w *World) SetPose(e ecs.Entity, p Pose) {
	w.poses.Insert(e, p)
}

// PosOf is a convenience accessor returning just the position.
func (w *World) PosOf(e ecs.Entity) (IVec2, bool) {
	p, ok := w.poses.Get(e)
	if !ok {
		return IVec2{}, false
	}
	return p.Pos, true
}

// AllOfTeam returns every entity on the given team, in entity-id order.
func (w *World) AllOfTeam(team uint8) []ecs.Entity {
	var out []ecs.Entity
	for _, pair := range w.teams.All() {
		if pair.Value.ID == team {
			out = append(out, pair.Entity)
		}
	}
	return out
}

// EnemiesOf returns every entity whose team differs from team, in
// entity-id order.
func (w *World) EnemiesOf(team uint8) []ecs.Entity {
	var out []ecs.Entity
	for _, pair := range w.teams.All() {
		if pair.Value.ID != team {
			out = append(out, pair.Entity)
		}
	}
	return out
}

// Obstacle reports whether cell is blocked for movement and LOS.
func (w *World) Obstacle(cell IVec2) bool {
	_, blocked := w.obstacles[cell]
	return blocked
}

// SetObstacle marks or clears cell as an obstacle.
func (w *World) SetObstacle(cell IVec2, blocked bool) {
	if blocked {
		w.obstacles[cell] = struct{}{}
	} else {
		delete(w.obstacles, cell)
	}
}

// Obstacles returns every obstacle cell, sorted for deterministic
// iteration (first by X, then Y).
func (w *World) Obstacles() []IVec2 {
	out := make([]IVec2, 0, len(w.obstacles))
	for c := range w.obstacles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

// Tick advances simulation time by dt and decays every entity's
// cooldowns toward zero.
func (w *World) Tick(dt float64) {
	w.t += dt
	for _, pair := range w.cooldowns.All() {
		pair.Value.Decay(dt)
	}
}
