// Package llmiface defines the contract between the core and an async LLM
// planner (spec §4.10/§6.2): a narrow interface the arbiter calls from a
// background task, a tool registry describing what actions the model may
// propose, and an error taxonomy the arbiter's fallback logic switches on.
// The core never trusts the LLM with direct world mutation — every
// returned plan.Intent still passes through pkg/validate.
package llmiface

import (
	"context"

	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/snapshot"
)

// AsyncPlanner is the contract spec §4.10 names: plan(snapshot, budget_ms)
// → Result<PlanIntent>. budgetMs bounds how long the call may run; an
// implementation that cannot finish in time should return NewTimeout()
// (a *PlannerError of KindTimeout) rather than block past the budget.
type AsyncPlanner interface {
	Plan(ctx context.Context, s snapshot.Snapshot, budgetMs int64) (plan.Intent, error)
}

// Kind classifies why a planner call failed, so the arbiter's fallback
// chain (spec §4.8) can distinguish "try again later" from "never trust
// this response".
type Kind string

const (
	KindTimeout  Kind = "Timeout"
	KindSchema   Kind = "Schema"
	KindEmpty    Kind = "Empty"
	KindInternal Kind = "Internal"
)

// PlannerError is the typed error every AsyncPlanner implementation
// should return instead of an opaque error, so callers can switch on Kind
// without string matching.
type PlannerError struct {
	Kind Kind
	Msg  string
}

func (e *PlannerError) Error() string {
	if e.Msg == "" {
		return "llmiface: " + string(e.Kind)
	}
	return "llmiface: " + string(e.Kind) + ": " + e.Msg
}

func NewTimeout() *PlannerError           { return &PlannerError{Kind: KindTimeout} }
func NewSchema(msg string) *PlannerError  { return &PlannerError{Kind: KindSchema, Msg: msg} }
func NewEmpty() *PlannerError             { return &PlannerError{Kind: KindEmpty} }
func NewInternal(msg string) *PlannerError { return &PlannerError{Kind: KindInternal, Msg: msg} }

// Tool describes one action the registry exposes to the model, by name
// and argument types (spec §6.1's tool registry schema).
type Tool struct {
	Name string            `toml:"name" json:"name"`
	Args map[string]string `toml:"args" json:"args"`
}

// Constraints mirrors the validator's enforcement gates (Cfg in
// pkg/validate) so a registry can advertise them to the model verbatim.
type Constraints struct {
	EnforceCooldowns bool `toml:"enforce_cooldowns" json:"enforce_cooldowns"`
	EnforceLOS       bool `toml:"enforce_los" json:"enforce_los"`
	EnforceStamina   bool `toml:"enforce_stamina" json:"enforce_stamina"`
}

// ToolRegistry is the full schema spec §6.1 names:
// { tools:[{name, args:{name:type}}], constraints:{...} }.
type ToolRegistry struct {
	Tools       []Tool      `toml:"tools" json:"tools"`
	Constraints Constraints `toml:"constraints" json:"constraints"`
}

// Has reports whether name is a registered tool.
func (r ToolRegistry) Has(name string) bool {
	for _, t := range r.Tools {
		if t.Name == name {
			return true
		}
	}
	return false
}

// DefaultRegistry enumerates the engine's built-in ActionStep kinds, the
// schema a host's LLM integration ships by default.
func DefaultRegistry() ToolRegistry {
	return ToolRegistry{
		Tools: []Tool{
			{Name: "MoveTo", Args: map[string]string{"x": "int", "y": "int", "speed": "float?"}},
			{Name: "Attack", Args: map[string]string{"target_id": "uint32"}},
			{Name: "CoverFire", Args: map[string]string{"target_id": "uint32", "duration": "float"}},
			{Name: "Throw", Args: map[string]string{"item": "string", "x": "int", "y": "int"}},
			{Name: "Reload", Args: map[string]string{}},
			{Name: "Heal", Args: map[string]string{"target_id": "uint32?"}},
			{Name: "Revive", Args: map[string]string{"ally_id": "uint32"}},
			{Name: "Scan", Args: map[string]string{"radius": "float"}},
			{Name: "Wait", Args: map[string]string{"duration": "float"}},
		},
		Constraints: Constraints{EnforceCooldowns: true, EnforceLOS: true, EnforceStamina: false},
	}
}
