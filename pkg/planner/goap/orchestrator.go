package goap

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/snapshot"
)

// StartState translates a snapshot into the symbolic WorldState the
// planner searches over. This is the engine-specific half of spec
// §4.6.5's orchestrator: the planner itself never sees a snapshot.
func StartState(s snapshot.Snapshot) WorldState {
	visible := len(s.Enemies) > 0
	inRange := false
	if visible {
		inRange = s.Me.Pos.Chebyshev(s.Enemies[0].Pos) <= 2
	}
	return WorldState{
		"enemy_visible": Bool(visible),
		"in_range":      Bool(inRange),
		"has_ammo":      Bool(s.Me.Ammo > 0),
		"in_cover":      Bool(false),
		"target_down":   Bool(false),
		"ally_down":     Bool(false),
		"low_hp":        Bool(false),
		"scanned":       Bool(false),
	}
}

// SelectGoal picks the prioritized goal spec §4.6's arbiter integration
// names: combat when an enemy is visible, exploration otherwise.
func SelectGoal(s snapshot.Snapshot) Goal {
	if len(s.Enemies) > 0 {
		return CombatGoal()
	}
	return ExplorationGoal()
}

// ToActionSteps translates a GOAP action-name sequence into
// plan.ActionStep values using s for spatial data, logging and skipping
// any name the engine's action vocabulary doesn't recognize (spec
// §4.6.5's "unknown action names are logged and skipped").
func ToActionSteps(names []string, s snapshot.Snapshot, logger *slog.Logger) []plan.ActionStep {
	if logger == nil {
		logger = slog.Default()
	}
	steps := make([]plan.ActionStep, 0, len(names))
	for _, name := range names {
		step, ok := toStep(name, s)
		if !ok {
			logger.Warn("goap: unknown action name, skipping", "action", name)
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

func toStep(name string, s snapshot.Snapshot) (plan.ActionStep, bool) {
	switch name {
	case "attack":
		if len(s.Enemies) == 0 {
			return plan.ActionStep{}, false
		}
		return plan.ActionStep{Kind: plan.KindAttack, Attack: &plan.Attack{TargetID: s.Enemies[0].ID}}, true
	case "reload":
		return plan.ActionStep{Kind: plan.KindReload, Reload: &plan.Reload{}}, true
	case "heal":
		return plan.ActionStep{Kind: plan.KindHeal, Heal: &plan.Heal{}}, true
	case "take_cover":
		dest := s.Me.Pos
		dest.X++
		return plan.ActionStep{Kind: plan.KindMoveTo, MoveTo: &plan.MoveTo{X: dest.X, Y: dest.Y}}, true
	case "throw_smoke":
		target := s.Me.Pos
		if len(s.Enemies) > 0 {
			mid := s.Enemies[0].Pos
			target.X = (s.Me.Pos.X + mid.X) / 2
			target.Y = (s.Me.Pos.Y + mid.Y) / 2
		}
		return plan.ActionStep{Kind: plan.KindThrow, Throw: &plan.Throw{Item: "smoke", X: target.X, Y: target.Y}}, true
	case "retreat":
		dest := s.Me.Pos
		dest.X--
		return plan.ActionStep{Kind: plan.KindMoveTo, MoveTo: &plan.MoveTo{X: dest.X, Y: dest.Y}}, true
	case "revive":
		if len(s.Enemies) == 0 {
			return plan.ActionStep{}, false
		}
		return plan.ActionStep{Kind: plan.KindRevive, Revive: &plan.Revive{AllyID: s.Enemies[0].ID}}, true
	case "scan":
		return plan.ActionStep{Kind: plan.KindScan, Scan: &plan.Scan{Radius: 10}}, true
	case "approach_enemy":
		if len(s.Enemies) == 0 {
			return plan.ActionStep{}, false
		}
		e := s.Enemies[0]
		return plan.ActionStep{Kind: plan.KindMoveTo, MoveTo: &plan.MoveTo{X: e.Pos.X, Y: e.Pos.Y}}, true
	default:
		return plan.ActionStep{}, false
	}
}

// ProposePlan runs SelectGoal → Plan → ToActionSteps end to end, giving
// callers a single entry point symmetrical with pkg/planner/rule's
// ProposePlan.
func (p *Planner) ProposePlan(s snapshot.Snapshot, logger *slog.Logger) plan.Intent {
	goal := SelectGoal(s)
	names, _ := p.Plan(StartState(s), goal)
	steps := ToActionSteps(names, s, logger)
	return plan.New(fmt.Sprintf("plan-%d", int64(math.Round(s.T*1000))), steps...)
}
