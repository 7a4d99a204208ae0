package config

import "github.com/astraweave/core/pkg/validate"

// Default returns the engine's demo-quality defaults, mirroring
// validate.Default()'s values plus the scheduler/planner/arbiter
// settings spec.md's worked examples use.
func Default() *Config {
	vd := validate.Default()
	d := ValidateConfig{
		EnforceCooldowns:   vd.EnforceCooldowns,
		EnforceLOS:         vd.EnforceLOS,
		EnforceStamina:     vd.EnforceStamina,
		AttackRange:        vd.AttackRange,
		WeaponDamage:       vd.WeaponDamage,
		CoverFireAmmoCost:  vd.CoverFireAmmoCost,
		CoverFireCooldown:  vd.CoverFireCooldown,
		ThrowCooldowns:     vd.ThrowCooldowns,
		ReloadCapacity:     vd.ReloadCapacity,
		ReloadCooldown:     vd.ReloadCooldown,
		HealAmount:         vd.HealAmount,
		ReviveHP:           vd.ReviveHP,
		StaminaCostPerMove: vd.StaminaCostPerMove,
	}
	return &Config{
		Dt:         0.1,
		Validate:   d,
		Perception: PerceptionConfig{LosMax: 12},
		GOAP:       GOAPConfig{MaxNodes: 10000},
		Arbiter: ArbiterConfig{
			BudgetMs:        200,
			BaseCooldownStr: "2s",
			MaxCooldownStr:  "60s",
		},
	}
}
