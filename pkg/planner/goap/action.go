package goap

// Action is the capability set spec §4.6.1 requires of every GOAP action:
// a name, a base cost, preconditions and effects over WorldState, and an
// optional extra applicability guard beyond precondition matching (e.g. a
// resource check the symbolic state doesn't model).
type Action interface {
	Name() string
	Cost() float64
	Preconditions() WorldState
	Effects() WorldState
	ApplicableIn(ws WorldState) bool
}

// Static is the common Action implementation every builtin action uses:
// fixed preconditions/effects/cost, always applicable once preconditions
// match. Actions with extra runtime guards embed Static and override
// ApplicableIn.
type Static struct {
	NameVal string
	CostVal float64
	Pre     WorldState
	Eff     WorldState
}

func (s Static) Name() string             { return s.NameVal }
func (s Static) Cost() float64             { return s.CostVal }
func (s Static) Preconditions() WorldState { return s.Pre }
func (s Static) Effects() WorldState       { return s.Eff }
func (s Static) ApplicableIn(WorldState) bool { return true }

// DefaultActions returns the builtin action library spec §4.6.1 names,
// registered at startup by the engine host. Every precondition/effect
// pair is expressed over a small vocabulary of boolean/int state keys a
// snapshot-to-WorldState translation (see orchestrator.go) is expected to
// populate: enemy_visible, in_range, has_ammo, in_cover, target_down,
// ally_down, low_hp, scanned.
func DefaultActions() []Action {
	return []Action{
		Static{
			NameVal: "attack",
			CostVal: 1.0,
			Pre:     WorldState{"enemy_visible": Bool(true), "in_range": Bool(true), "has_ammo": Bool(true)},
			Eff:     WorldState{"target_down": Bool(true)},
		},
		Static{
			NameVal: "reload",
			CostVal: 1.0,
			Pre:     WorldState{"has_ammo": Bool(false)},
			Eff:     WorldState{"has_ammo": Bool(true)},
		},
		Static{
			NameVal: "heal",
			CostVal: 1.5,
			Pre:     WorldState{"low_hp": Bool(true)},
			Eff:     WorldState{"low_hp": Bool(false)},
		},
		Static{
			NameVal: "take_cover",
			CostVal: 1.0,
			Pre:     WorldState{"in_cover": Bool(false)},
			Eff:     WorldState{"in_cover": Bool(true)},
		},
		Static{
			NameVal: "throw_smoke",
			CostVal: 2.0,
			Pre:     WorldState{"enemy_visible": Bool(true)},
			Eff:     WorldState{"enemy_visible": Bool(false), "in_cover": Bool(true)},
		},
		Static{
			NameVal: "retreat",
			CostVal: 1.0,
			Pre:     WorldState{"low_hp": Bool(true)},
			Eff:     WorldState{"in_range": Bool(false), "in_cover": Bool(true)},
		},
		Static{
			NameVal: "revive",
			CostVal: 2.0,
			Pre:     WorldState{"ally_down": Bool(true)},
			Eff:     WorldState{"ally_down": Bool(false)},
		},
		Static{
			NameVal: "scan",
			CostVal: 0.5,
			Pre:     WorldState{"enemy_visible": Bool(false), "scanned": Bool(false)},
			Eff:     WorldState{"scanned": Bool(true)},
		},
		Static{
			NameVal: "approach_enemy",
			CostVal: 1.0,
			Pre:     WorldState{"enemy_visible": Bool(true), "in_range": Bool(false)},
			Eff:     WorldState{"in_range": Bool(true)},
		},
	}
}

// CombatGoal is satisfied once the visible enemy is down.
func CombatGoal() Goal {
	return Goal{Name: "combat", Priority: 10, Conditions: WorldState{"target_down": Bool(true)}}
}

// ExplorationGoal is satisfied once the area has been scanned.
func ExplorationGoal() Goal {
	return Goal{Name: "exploration", Priority: 1, Conditions: WorldState{"scanned": Bool(true)}}
}
