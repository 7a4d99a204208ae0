package config

import (
	"github.com/astraweave/core/pkg/llmiface"
	"github.com/astraweave/core/pkg/snapshot"
	"github.com/astraweave/core/pkg/validate"
	"github.com/astraweave/core/pkg/world"
)

// ValidateConfig mirrors pkg/validate.Cfg with YAML tags, so the gates
// validate_and_execute enforces are authorable from astraweave.yaml
// instead of hardcoded at call sites.
type ValidateConfig struct {
	EnforceCooldowns bool `yaml:"enforce_cooldowns"`
	EnforceLOS       bool `yaml:"enforce_los"`
	EnforceStamina   bool `yaml:"enforce_stamina"`

	Bounds *BoundsConfig `yaml:"bounds,omitempty"`

	AttackRange  int32 `yaml:"attack_range"`
	WeaponDamage int32 `yaml:"weapon_damage"`

	CoverFireAmmoCost  int32              `yaml:"cover_fire_ammo_cost"`
	CoverFireCooldown  float64            `yaml:"cover_fire_cooldown"`
	ThrowCooldowns     map[string]float64 `yaml:"throw_cooldowns,omitempty"`
	ReloadCapacity     int32              `yaml:"reload_capacity"`
	ReloadCooldown     float64            `yaml:"reload_cooldown"`
	HealAmount         int32              `yaml:"heal_amount"`
	ReviveHP           int32              `yaml:"revive_hp"`
	StaminaCostPerMove int32              `yaml:"stamina_cost_per_move"`
}

// BoundsConfig mirrors validate.Bounds with YAML tags.
type BoundsConfig struct {
	Min world.IVec2 `yaml:"min"`
	Max world.IVec2 `yaml:"max"`
}

// ToCfg converts the YAML-authored shape into pkg/validate's runtime Cfg.
func (v ValidateConfig) ToCfg() validate.Cfg {
	var bounds *validate.Bounds
	if v.Bounds != nil {
		bounds = &validate.Bounds{Min: v.Bounds.Min, Max: v.Bounds.Max}
	}
	return validate.Cfg{
		EnforceCooldowns:   v.EnforceCooldowns,
		EnforceLOS:         v.EnforceLOS,
		EnforceStamina:     v.EnforceStamina,
		Bounds:             bounds,
		AttackRange:        v.AttackRange,
		WeaponDamage:       v.WeaponDamage,
		CoverFireAmmoCost:  v.CoverFireAmmoCost,
		CoverFireCooldown:  v.CoverFireCooldown,
		ThrowCooldowns:     v.ThrowCooldowns,
		ReloadCapacity:     v.ReloadCapacity,
		ReloadCooldown:     v.ReloadCooldown,
		HealAmount:         v.HealAmount,
		ReviveHP:           v.ReviveHP,
		StaminaCostPerMove: v.StaminaCostPerMove,
	}
}

// PerceptionConfig mirrors snapshot.Config with YAML tags (the
// `PerceptionConfig { los_max: i32 }` the build-snapshot operation takes).
type PerceptionConfig struct {
	LosMax int32 `yaml:"los_max"`
}

// ToSnapshotConfig converts to pkg/snapshot's runtime Config.
func (p PerceptionConfig) ToSnapshotConfig() snapshot.Config {
	return snapshot.Config{LosMax: p.LosMax}
}

// GOAPConfig tunes the A* planner's search bound (its termination clause).
type GOAPConfig struct {
	MaxNodes int `yaml:"max_nodes,omitempty"`
}

// ArbiterConfig tunes the hybrid arbiter's LLM cadence. The cooldowns
// are authored as duration strings and parsed at load time, the same
// split the teacher's runbooks cache_ttl setting uses: a human-readable
// string in YAML, a time.Duration at runtime.
type ArbiterConfig struct {
	BudgetMs        int64  `yaml:"budget_ms"`
	BaseCooldownStr string `yaml:"base_cooldown,omitempty"`
	MaxCooldownStr  string `yaml:"max_cooldown,omitempty"`
}

// LLMConfig points the engine at an AsyncPlanner's tool registry.
type LLMConfig struct {
	RegistryPath   string `yaml:"registry_path,omitempty"`
	RegistryFormat string `yaml:"registry_format,omitempty"` // "toml" or "json"
}

// LoadRegistry resolves the configured registry file, falling back to
// llmiface.DefaultRegistry() when no path is configured.
func (l LLMConfig) LoadRegistry() (llmiface.ToolRegistry, error) {
	switch {
	case l.RegistryPath == "":
		return llmiface.DefaultRegistry(), nil
	case l.RegistryFormat == "json":
		return llmiface.LoadRegistryJSON(l.RegistryPath)
	default:
		return llmiface.LoadRegistryTOML(l.RegistryPath)
	}
}
