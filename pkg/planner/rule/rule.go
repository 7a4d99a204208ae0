// Package rule implements the rule planner: a pure function from a
// snapshot.Snapshot to a plan.Intent, with no world access and no I/O
// (spec §4.5). It is the simplest of the engine's planners and the
// default fallback when neither GOAP nor the behavior tree apply.
package rule

import (
	"fmt"
	"math"

	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/snapshot"
	"github.com/astraweave/core/pkg/world"
)

const (
	smokeCooldownKey = "throw:smoke"
	coverFireRange   = 2.0
)

// ProposePlan implements spec §4.5's canonical algorithm exactly:
//  1. no enemies → empty plan;
//  2. else plan_id = "plan-" + round(t*1000);
//  3. throw smoke at the midpoint between me and the nearest enemy, if
//     that ability is off cooldown;
//  4. move toward the nearest enemy's cover or flank cell;
//  5. cover-fire the nearest enemy.
func ProposePlan(s snapshot.Snapshot) plan.Intent {
	planID := fmt.Sprintf("plan-%d", int64(math.Round(s.T*1000)))

	if len(s.Enemies) == 0 {
		return plan.New(planID)
	}

	nearest := nearestEnemy(s)

	var steps []plan.ActionStep
	if s.Me.Cooldowns[smokeCooldownKey] == 0 {
		mid := midpoint(s.Me.Pos, nearest.Pos)
		steps = append(steps, plan.ActionStep{
			Kind:  plan.KindThrow,
			Throw: &plan.Throw{Item: "smoke", X: mid.X, Y: mid.Y},
		})
	}

	dest := coverOrFlank(s, nearest)
	steps = append(steps, plan.ActionStep{
		Kind:   plan.KindMoveTo,
		MoveTo: &plan.MoveTo{X: dest.X, Y: dest.Y},
	})

	steps = append(steps, plan.ActionStep{
		Kind: plan.KindCoverFire,
		CoverFire: &plan.CoverFire{
			TargetID: nearest.ID,
			Duration: coverFireRange,
		},
	})

	return plan.New(planID, steps...)
}

// nearestEnemy picks the Chebyshev-closest enemy, breaking ties by the
// lowest entity id so the result is deterministic regardless of slice
// order (spec §8 determinism property).
func nearestEnemy(s snapshot.Snapshot) snapshot.EnemyState {
	best := s.Enemies[0]
	bestDist := s.Me.Pos.Chebyshev(best.Pos)
	for _, e := range s.Enemies[1:] {
		d := s.Me.Pos.Chebyshev(e.Pos)
		if d < bestDist || (d == bestDist && e.ID < best.ID) {
			best, bestDist = e, d
		}
	}
	return best
}

func midpoint(a, b world.IVec2) world.IVec2 {
	return world.IVec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// coverOrFlank prefers a registered "cover" point of interest nearest the
// target enemy; absent any, it computes a flank cell one step
// perpendicular to the me-enemy line so the companion doesn't walk
// straight down the enemy's sightline.
func coverOrFlank(s snapshot.Snapshot, target snapshot.EnemyState) world.IVec2 {
	var bestPoi *world.IVec2
	var bestDist int32
	for _, poi := range s.Pois {
		if poi.Kind != "cover" {
			continue
		}
		d := target.Pos.Chebyshev(poi.Pos)
		if bestPoi == nil || d < bestDist {
			pos := poi.Pos
			bestPoi = &pos
			bestDist = d
		}
	}
	if bestPoi != nil {
		return *bestPoi
	}

	dx := target.Pos.X - s.Me.Pos.X
	dy := target.Pos.Y - s.Me.Pos.Y
	// perpendicular to (dx, dy); sign(0) treated as +1 so the flank is
	// always determinate even on a perfectly axis-aligned approach.
	perpX := sign(-dy)
	perpY := sign(dx)
	return world.IVec2{X: target.Pos.X + perpX, Y: target.Pos.Y + perpY}
}

func sign(v int32) int32 {
	if v < 0 {
		return -1
	}
	return 1
}
