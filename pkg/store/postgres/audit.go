package postgres

import (
	"context"
	"fmt"

	"github.com/astraweave/core/pkg/events"
)

// AuditLog records PlanExecutedEvent/AiPlanningFailedEvent to the
// audit_log table for operators to query after the fact — the
// deterministic core publishes these on its in-process event buses;
// this is one possible consumer, wired from the scheduler's sync stage.
type AuditLog struct {
	pool *Pool
}

// NewAuditLog wraps pool.
func NewAuditLog(pool *Pool) *AuditLog {
	return &AuditLog{pool: pool}
}

// RecordPlanExecuted inserts one row per PlanExecutedEvent.
func (a *AuditLog) RecordPlanExecuted(ctx context.Context, e events.PlanExecutedEvent) error {
	_, err := a.pool.Exec(ctx, `
		INSERT INTO audit_log (kind, entity, plan_id, steps_applied, reason, step_index, recorded_at)
		VALUES ('plan_executed', $1, $2, $3, '', 0, now())
	`, e.Entity, e.PlanID, e.StepsApplied)
	if err != nil {
		return fmt.Errorf("failed to record plan_executed event: %w", err)
	}
	return nil
}

// RecordPlanningFailed inserts one row per AiPlanningFailedEvent.
func (a *AuditLog) RecordPlanningFailed(ctx context.Context, e events.AiPlanningFailedEvent) error {
	_, err := a.pool.Exec(ctx, `
		INSERT INTO audit_log (kind, entity, plan_id, steps_applied, reason, step_index, recorded_at)
		VALUES ('planning_failed', $1, '', 0, $2, $3, now())
	`, e.Entity, e.Reason, e.StepIndex)
	if err != nil {
		return fmt.Errorf("failed to record planning_failed event: %w", err)
	}
	return nil
}
