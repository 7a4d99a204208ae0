package arbiter

import (
	"github.com/astraweave/core/pkg/bt"
	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/snapshot"
)

// defaultTree is the arbiter's built-in BT fallback, sharing the GOAP
// action vocabulary (attack/reload/take_cover/scan) so the two planning
// tiers agree on what the agent is capable of even though they decide
// differently.
func defaultTree() *bt.Node {
	return bt.Selector(
		bt.Sequence(
			bt.Condition("enemy_visible"),
			bt.Condition("in_range"),
			bt.Condition("has_ammo"),
			bt.Action("attack"),
		),
		bt.Sequence(
			bt.Condition("enemy_visible"),
			bt.Condition("in_range"),
			bt.Action("reload"),
		),
		bt.Sequence(
			bt.Condition("enemy_visible"),
			bt.Action("take_cover"),
		),
		bt.Action("scan"),
	)
}

// decisionContext adapts a snapshot into a bt.Context, recording the
// ActionStep its last successful action leaf resolved to so the arbiter
// can read back a decision after ticking the tree (the tree itself only
// returns a Status, never a step).
type decisionContext struct {
	s       snapshot.Snapshot
	decided plan.ActionStep
	ok      bool
}

func (c *decisionContext) RunAction(name string) bt.Status {
	step, ok := decisionStep(name, c.s)
	if !ok {
		return bt.Failure
	}
	c.decided = step
	c.ok = true
	return bt.Success
}

func (c *decisionContext) CheckCondition(name string) bt.Status {
	switch name {
	case "enemy_visible":
		if len(c.s.Enemies) > 0 {
			return bt.Success
		}
		return bt.Failure
	case "in_range":
		if len(c.s.Enemies) > 0 && c.s.Me.Pos.Chebyshev(c.s.Enemies[0].Pos) <= 2 {
			return bt.Success
		}
		return bt.Failure
	case "has_ammo":
		if c.s.Me.Ammo > 0 {
			return bt.Success
		}
		return bt.Failure
	default:
		return bt.Failure
	}
}

func decisionStep(name string, s snapshot.Snapshot) (plan.ActionStep, bool) {
	switch name {
	case "attack":
		if len(s.Enemies) == 0 {
			return plan.ActionStep{}, false
		}
		return plan.ActionStep{Kind: plan.KindAttack, Attack: &plan.Attack{TargetID: s.Enemies[0].ID}}, true
	case "reload":
		return plan.ActionStep{Kind: plan.KindReload, Reload: &plan.Reload{}}, true
	case "take_cover":
		dest := s.Me.Pos
		dest.X++
		return plan.ActionStep{Kind: plan.KindMoveTo, MoveTo: &plan.MoveTo{X: dest.X, Y: dest.Y}}, true
	case "scan":
		return plan.ActionStep{Kind: plan.KindScan, Scan: &plan.Scan{Radius: 10}}, true
	default:
		return plan.ActionStep{}, false
	}
}
