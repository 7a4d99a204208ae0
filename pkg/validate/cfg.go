package validate

import "github.com/astraweave/core/pkg/world"

// Bounds restricts MoveTo/Throw targets to a rectangular region of the
// grid. A nil *Bounds on Cfg means unrestricted.
type Bounds struct {
	Min, Max world.IVec2
}

// Contains reports whether cell lies within b, inclusive.
func (b *Bounds) Contains(cell world.IVec2) bool {
	if b == nil {
		return true
	}
	return cell.X >= b.Min.X && cell.X <= b.Max.X && cell.Y >= b.Min.Y && cell.Y <= b.Max.Y
}

// Cfg gates which checks validate_and_execute enforces and carries the
// engine-content constants spec §9's Open Questions defer to a config
// file. Zero value is NOT safe to use directly — call Default() for the
// demo-quality defaults the spec names explicitly (smoke cooldown 3.0s,
// attack damage 5).
type Cfg struct {
	EnforceCooldowns bool
	EnforceLOS       bool
	EnforceStamina   bool

	Bounds *Bounds

	AttackRange  int32
	WeaponDamage int32

	CoverFireAmmoCost   int32
	CoverFireCooldown   float64
	ThrowCooldowns      map[string]float64 // item -> cooldown seconds; "" is the fallback default
	ReloadCapacity      int32
	ReloadCooldown      float64
	HealAmount          int32
	ReviveHP            int32
	StaminaCostPerMove  int32 // not read by Execute: no stamina check is made, even with EnforceStamina set
}

// Default returns the engine's demo-quality defaults. These are exactly
// the values spec.md §9 names as the source repository's demo defaults
// (rule planner smoke throw 3.0s cooldown; BT/attack damage 5) — spec §9
// recommends centralizing them in a data file referenced by ValidateCfg,
// which pkg/config does by unmarshalling onto this struct.
func Default() Cfg {
	return Cfg{
		EnforceCooldowns:   true,
		EnforceLOS:         true,
		EnforceStamina:     false,
		AttackRange:        10,
		WeaponDamage:       5,
		CoverFireAmmoCost:  5,
		CoverFireCooldown:  1.0,
		ThrowCooldowns:     map[string]float64{"": 2.0, "smoke": 3.0},
		ReloadCapacity:     30,
		ReloadCooldown:     1.0,
		HealAmount:         20,
		ReviveHP:           50,
		StaminaCostPerMove: 1,
	}
}

func (c Cfg) throwCooldown(item string) float64 {
	if d, ok := c.ThrowCooldowns[item]; ok {
		return d
	}
	return c.ThrowCooldowns[""]
}
