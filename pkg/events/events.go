// Package events defines the payload types published on the core's
// in-process event buses (pkg/ecs.Bus[T]). Each type is a plain value;
// the bus mechanism itself lives in pkg/ecs so every stage can publish
// and drain without this package knowing about storage or scheduling.
package events

import "github.com/astraweave/core/pkg/world"

// MovedEvent is published whenever the validator/executor moves an
// entity, so a renderer can interpolate (spec §6.3).
type MovedEvent struct {
	Entity uint32
	From   world.IVec2
	To     world.IVec2
}

// AiPlannedEvent is published once a planner's intent has been accepted
// for execution, carrying the entity and the first step's rough target
// so a renderer can anticipate motion (spec §6.3).
type AiPlannedEvent struct {
	Entity uint32
	Target world.IVec2
}

// PlanExecutedEvent is published once validate_and_execute finishes
// applying a plan (whether fully or partially accepted), for
// observability tooling (spec §4.4, §7).
type PlanExecutedEvent struct {
	Entity       uint32
	PlanID       string
	StepsApplied int
}

// AiPlanningFailedEvent is published when a plan is rejected, instead of
// surfacing the error to the caller directly (spec §7's "default policy
// is to skip invalid plans silently with an event published for
// observability").
type AiPlanningFailedEvent struct {
	Entity    uint32
	Reason    string
	StepIndex int
}
