package postgres

import (
	"context"
	"fmt"

	"github.com/astraweave/core/pkg/planner/goap"
)

// ActionHistoryStore persists goap.ActionHistory's per-action counters
// across restarts, and optionally merges histories recorded by
// independent agents sharing one action vocabulary (spec §4.6.3
// "optionally merged across agents"). The deterministic core never
// calls this mid-tick; a host loads once at startup and saves
// periodically from the scheduler's sync stage.
type ActionHistoryStore struct {
	pool *Pool
}

// NewActionHistoryStore wraps pool.
func NewActionHistoryStore(pool *Pool) *ActionHistoryStore {
	return &ActionHistoryStore{pool: pool}
}

// Load reads every persisted action's counters into a fresh
// goap.ActionHistory.
func (s *ActionHistoryStore) Load(ctx context.Context) (*goap.ActionHistory, error) {
	rows, err := s.pool.Query(ctx, `SELECT action_name, executions, successes, failures, avg_duration FROM action_history`)
	if err != nil {
		return nil, fmt.Errorf("failed to query action_history: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[string]goap.Stats)
	for rows.Next() {
		var name string
		var s goap.Stats
		if err := rows.Scan(&name, &s.Executions, &s.Successes, &s.Failures, &s.AvgDuration); err != nil {
			return nil, fmt.Errorf("failed to scan action_history row: %w", err)
		}
		snapshot[name] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read action_history rows: %w", err)
	}

	h := goap.NewActionHistory()
	h.Load(snapshot)
	return h, nil
}

// Save upserts every counter in h with h's current cumulative totals —
// h.All() already reflects everything recorded since the last Load, so
// this overwrites rather than adds (Merge two histories explicitly
// before calling Save if combining counts from independent agents).
func (s *ActionHistoryStore) Save(ctx context.Context, h *goap.ActionHistory) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for name, stats := range h.All() {
		_, err := tx.Exec(ctx, `
			INSERT INTO action_history (action_name, executions, successes, failures, avg_duration, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (action_name) DO UPDATE SET
				executions   = EXCLUDED.executions,
				successes    = EXCLUDED.successes,
				failures     = EXCLUDED.failures,
				avg_duration = EXCLUDED.avg_duration,
				updated_at   = now()
		`, name, stats.Executions, stats.Successes, stats.Failures, stats.AvgDuration)
		if err != nil {
			return fmt.Errorf("failed to upsert action_history row %q: %w", name, err)
		}
	}

	return tx.Commit(ctx)
}
