// Package validate implements the admission gate between a planner's
// proposed plan.Intent and the authoritative world.World: validate_and_execute
// walks a plan step by step, applying each step's effect only if it passes
// that step's preconditions, and stops at the first rejected step while
// keeping every earlier effect committed (spec §4.4/§7).
package validate

import (
	"github.com/astraweave/core/pkg/ecs"
	"github.com/astraweave/core/pkg/events"
	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/world"
)

// Execute walks p.Steps in order against w on behalf of actor, applying
// each step's effect in turn. It returns nil once every step has been
// applied; otherwise it returns the *Error for the first rejected step,
// with every step before it already committed to w. A PlanExecutedEvent
// is always published (however many steps were applied); an
// AiPlanningFailedEvent is published additionally when a step is
// rejected.
func Execute(w *world.World, actor ecs.Entity, p plan.Intent, cfg Cfg) error {
	applied := 0
	rejectErr := stepLoop(w, actor, p, cfg, &applied)

	publish(w, events.PlanExecutedEvent{
		Entity:       actor.ID,
		PlanID:       p.PlanID,
		StepsApplied: applied,
	})
	if rejectErr != nil {
		publish(w, events.AiPlanningFailedEvent{
			Entity:    actor.ID,
			Reason:    string(rejectErr.Reason),
			StepIndex: rejectErr.StepIndex,
		})
		return rejectErr
	}
	return nil
}

func stepLoop(w *world.World, actor ecs.Entity, p plan.Intent, cfg Cfg, applied *int) *Error {
	if !w.Alive(actor) {
		return newError(ReasonUnknownTarget, 0)
	}
	for i, step := range p.Steps {
		if err := applyStep(w, actor, i, step, cfg); err != nil {
			return err
		}
		*applied++
	}
	return nil
}

func applyStep(w *world.World, actor ecs.Entity, idx int, step plan.ActionStep, cfg Cfg) *Error {
	switch step.Kind {
	case plan.KindMoveTo:
		return applyMoveTo(w, actor, idx, step.MoveTo, cfg)
	case plan.KindAttack:
		return applyAttack(w, actor, idx, step.Attack, cfg)
	case plan.KindCoverFire:
		return applyCoverFire(w, actor, idx, step.CoverFire, cfg)
	case plan.KindThrow:
		return applyThrow(w, actor, idx, step.Throw, cfg)
	case plan.KindReload:
		return applyReload(w, actor, idx, cfg)
	case plan.KindHeal:
		return applyHeal(w, actor, idx, step.Heal, cfg)
	case plan.KindRevive:
		return applyRevive(w, actor, idx, step.Revive, cfg)
	case plan.KindScan:
		return applyScan(w, actor, idx, step.Scan, cfg)
	case plan.KindWait:
		return nil
	default:
		return newError(ReasonUnsupportedStep, idx)
	}
}

func applyMoveTo(w *world.World, actor ecs.Entity, idx int, step *plan.MoveTo, cfg Cfg) *Error {
	target := world.IVec2{X: step.X, Y: step.Y}
	if !cfg.Bounds.Contains(target) {
		return newError(ReasonOutOfBounds, idx)
	}
	if w.Obstacle(target) {
		return newError(ReasonObstructed, idx)
	}
	from, ok := w.PosOf(actor)
	if !ok {
		return newError(ReasonUnknownTarget, idx)
	}
	if from == target {
		return nil
	}
	next, ok := firstStepToward(w, from, target)
	if !ok {
		return newError(ReasonObstructed, idx)
	}
	if pose := w.PoseMut(actor); pose != nil {
		pose.Pos = next
	}
	publish(w, events.MovedEvent{Entity: actor.ID, From: from, To: next})
	return nil
}

func applyAttack(w *world.World, actor ecs.Entity, idx int, step *plan.Attack, cfg Cfg) *Error {
	target, ok := w.ByID(step.TargetID)
	if !ok || !w.Alive(target) {
		return newError(ReasonUnknownTarget, idx)
	}
	health, ok := w.Health(target)
	if !ok || health.HP <= 0 {
		return newError(ReasonUnknownTarget, idx)
	}
	actorPos, _ := w.PosOf(actor)
	targetPos, _ := w.PosOf(target)
	if actorPos.Chebyshev(targetPos) > cfg.AttackRange {
		return newError(ReasonOutOfBounds, idx)
	}
	if cfg.EnforceLOS && !losClear(w, actorPos, targetPos) {
		return newError(ReasonNoLOS, idx)
	}
	w.SetHealth(target, health.HP-cfg.WeaponDamage)
	return nil
}

func applyCoverFire(w *world.World, actor ecs.Entity, idx int, step *plan.CoverFire, cfg Cfg) *Error {
	const key = "cover_fire"
	cds, _ := w.Cooldowns(actor)
	if cfg.EnforceCooldowns && !cds.Ready(key) {
		return &Error{Reason: ReasonOnCooldown, StepIndex: idx, CooldownKey: key}
	}
	ammo, ok := w.Ammo(actor)
	if !ok || ammo.Rounds < cfg.CoverFireAmmoCost {
		return newError(ReasonInsufficientAmmo, idx)
	}
	if _, ok := w.ByID(step.TargetID); !ok {
		return newError(ReasonUnknownTarget, idx)
	}
	w.SetAmmo(actor, ammo.Rounds-cfg.CoverFireAmmoCost)
	if cds != nil {
		cds[key] = cfg.CoverFireCooldown
	}
	return nil
}

func applyThrow(w *world.World, actor ecs.Entity, idx int, step *plan.Throw, cfg Cfg) *Error {
	target := world.IVec2{X: step.X, Y: step.Y}
	if !cfg.Bounds.Contains(target) {
		return newError(ReasonOutOfBounds, idx)
	}
	key := "throw:" + step.Item
	cds, _ := w.Cooldowns(actor)
	if cfg.EnforceCooldowns && !cds.Ready(key) {
		return &Error{Reason: ReasonOnCooldown, StepIndex: idx, CooldownKey: key}
	}
	if cds != nil {
		cds[key] = cfg.throwCooldown(step.Item)
	}
	return nil
}

func applyReload(w *world.World, actor ecs.Entity, idx int, cfg Cfg) *Error {
	const key = "reload"
	cds, _ := w.Cooldowns(actor)
	if cfg.EnforceCooldowns && !cds.Ready(key) {
		return &Error{Reason: ReasonOnCooldown, StepIndex: idx, CooldownKey: key}
	}
	w.SetAmmo(actor, cfg.ReloadCapacity)
	if cds != nil {
		cds[key] = cfg.ReloadCooldown
	}
	return nil
}

func applyHeal(w *world.World, actor ecs.Entity, idx int, step *plan.Heal, cfg Cfg) *Error {
	target := actor
	if step.TargetID != nil {
		t, ok := w.ByID(*step.TargetID)
		if !ok {
			return newError(ReasonUnknownTarget, idx)
		}
		target = t
	}
	health, ok := w.Health(target)
	if !ok {
		return newError(ReasonUnknownTarget, idx)
	}
	w.SetHealth(target, health.HP+cfg.HealAmount)
	return nil
}

func applyRevive(w *world.World, actor ecs.Entity, idx int, step *plan.Revive, cfg Cfg) *Error {
	ally, ok := w.ByID(step.AllyID)
	if !ok {
		return newError(ReasonUnknownTarget, idx)
	}
	w.SetHealth(ally, cfg.ReviveHP)
	return nil
}

func applyScan(w *world.World, actor ecs.Entity, idx int, step *plan.Scan, cfg Cfg) *Error {
	if !w.Alive(actor) {
		return newError(ReasonUnknownTarget, idx)
	}
	return nil
}

// publish writes e to the bus of type T installed in w's resources, if
// any. Validation and execution never require an event bus to be wired —
// callers that only want effect application (e.g. unit tests) simply
// don't install one, and publish becomes a no-op.
func publish[T any](w *world.World, e T) {
	bus, ok := ecs.Get[*ecs.Bus[T]](w.Resources)
	if !ok {
		return
	}
	bus.Writer().Send(e)
}

// losClear reports whether every grid cell strictly between a and b is
// free of obstacles, using the same integer DDA walk pkg/snapshot uses
// for perception — duplicated here rather than imported because the
// validator's LOS check happens at execution time against possibly
// different actor/target pairs than any snapshot that was built earlier
// in the tick, and the two concerns (perception visibility vs. execution
// legality) are deliberately independent per spec §4.3/§4.4.
func losClear(w *world.World, a, b world.IVec2) bool {
	for _, cell := range lineCells(a, b) {
		if w.Obstacle(cell) {
			return false
		}
	}
	return true
}

func lineCells(a, b world.IVec2) []world.IVec2 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	steps := maxAbsF(dx, dy)
	if steps == 0 {
		return nil
	}
	out := make([]world.IVec2, 0, int(steps)-1)
	for i := 1; i < int(steps); i++ {
		t := float64(i) / steps
		out = append(out, world.IVec2{
			X: a.X + roundToInt(dx*t),
			Y: a.Y + roundToInt(dy*t),
		})
	}
	return out
}

func maxAbsF(dx, dy float64) float64 {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func roundToInt(v float64) int32 {
	if v >= 0 {
		return int32(v + 0.5)
	}
	return -int32(-v + 0.5)
}

// firstStepToward returns the next cell on a shortest 4-connected path
// from from to target avoiding obstacles, bounded to a box around the two
// points so an unreachable target fails fast instead of scanning the
// whole grid. Returns ok=false if no such path exists within the box.
func firstStepToward(w *world.World, from, target world.IVec2) (world.IVec2, bool) {
	const margin = 8
	minX, maxX := minI32(from.X, target.X)-margin, maxI32(from.X, target.X)+margin
	minY, maxY := minI32(from.Y, target.Y)-margin, maxI32(from.Y, target.Y)+margin

	visited := map[world.IVec2]world.IVec2{from: from}
	queue := []world.IVec2{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			return firstHop(visited, from, target), true
		}
		for _, d := range []world.IVec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			next := world.IVec2{X: cur.X + d.X, Y: cur.Y + d.Y}
			if next.X < minX || next.X > maxX || next.Y < minY || next.Y > maxY {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			if w.Obstacle(next) && next != target {
				continue
			}
			visited[next] = cur
			queue = append(queue, next)
		}
	}
	return world.IVec2{}, false
}

func firstHop(visited map[world.IVec2]world.IVec2, from, target world.IVec2) world.IVec2 {
	cur := target
	for {
		prev := visited[cur]
		if prev == from {
			return cur
		}
		cur = prev
	}
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
