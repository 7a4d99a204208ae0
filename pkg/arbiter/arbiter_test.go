package arbiter_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraweave/core/pkg/arbiter"
	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/planner/goap"
	"github.com/astraweave/core/pkg/snapshot"
	"github.com/astraweave/core/pkg/world"
)

// blockingPlanner never resolves until release is closed, letting tests
// observe the arbiter mid in-flight-request.
type blockingPlanner struct {
	mu       sync.Mutex
	calls    int
	release  chan struct{}
	response plan.Intent
	err      error
}

func (p *blockingPlanner) Plan(ctx context.Context, _ snapshot.Snapshot, _ int64) (plan.Intent, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	select {
	case <-p.release:
	case <-ctx.Done():
		return plan.Intent{}, ctx.Err()
	}
	return p.response, p.err
}

func (p *blockingPlanner) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func noEnemySnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Me: snapshot.CompanionState{Pos: world.IVec2{X: 0, Y: 0}, Ammo: 10},
	}
}

func combatSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Me: snapshot.CompanionState{Pos: world.IVec2{X: 0, Y: 0}, Ammo: 10},
		Enemies: []snapshot.EnemyState{
			{ID: 7, Pos: world.IVec2{X: 1, Y: 0}},
		},
	}
}

func TestUpdateFallsBackToGOAPWhenNoLLMConfigured(t *testing.T) {
	p := goap.NewPlanner(goap.DefaultActions())
	a := arbiter.New(p, nil, 100, slog.Default())

	step := a.Update(combatSnapshot())
	require.Equal(t, plan.KindAttack, step.Kind)
	assert.Equal(t, uint32(7), step.Attack.TargetID)
	assert.Equal(t, arbiter.ModeGOAP, a.Mode())
}

func TestUpdateFallsBackToBTScanWhenGOAPGoalIsUnreachable(t *testing.T) {
	p := goap.NewPlanner(nil)
	a := arbiter.New(p, nil, 100, slog.Default())

	step := a.Update(noEnemySnapshot())
	require.Equal(t, plan.KindScan, step.Kind)
}

func TestUpdateSpawnsAtMostOneInFlightLLMTask(t *testing.T) {
	bp := &blockingPlanner{release: make(chan struct{})}
	p := goap.NewPlanner(goap.DefaultActions())
	a := arbiter.New(p, bp, 5000, slog.Default())

	a.Update(noEnemySnapshot())
	a.Update(noEnemySnapshot())
	a.Update(noEnemySnapshot())

	assert.Equal(t, 1, bp.callCount())
	close(bp.release)
}

func TestUpdateTransitionsToExecutingLLMOnSuccessThenDrainsPlan(t *testing.T) {
	bp := &blockingPlanner{
		release: make(chan struct{}),
		response: plan.New("plan-1",
			plan.ActionStep{Kind: plan.KindWait, Wait: &plan.Wait{Duration: 1}},
			plan.ActionStep{Kind: plan.KindScan, Scan: &plan.Scan{Radius: 5}},
		),
	}
	close(bp.release)

	p := goap.NewPlanner(goap.DefaultActions())
	a := arbiter.New(p, bp, 5000, slog.Default())

	// First Update: GOAP/BT fallback answers immediately, and the spawn
	// at the tail of Update kicks off the background LLM call. The
	// release channel is already closed, so the goroutine finishes
	// almost instantly.
	a.Update(noEnemySnapshot())
	time.Sleep(50 * time.Millisecond)

	// pollLLM only runs inside Update, so the very call that discovers
	// the completed background result also starts serving it.
	step := a.Update(noEnemySnapshot())
	assert.Equal(t, plan.KindWait, step.Kind)
	assert.Equal(t, arbiter.ModeExecutingLLM, a.Mode())

	step = a.Update(noEnemySnapshot())
	assert.Equal(t, plan.KindScan, step.Kind)
	assert.Equal(t, arbiter.ModeGOAP, a.Mode(), "arbiter should return to GOAP once the LLM plan is exhausted")
}

func TestUpdateExtendsCooldownOnLLMFailureAndDoesNotRetryImmediately(t *testing.T) {
	bp := &blockingPlanner{release: make(chan struct{})}
	bp.err = assertErr{}
	close(bp.release)

	p := goap.NewPlanner(goap.DefaultActions())
	a := arbiter.New(p, bp, 5000, slog.Default(), arbiter.WithCooldown(50*time.Millisecond, time.Second))

	a.Update(noEnemySnapshot())
	require.Eventually(t, func() bool { return bp.callCount() >= 1 }, time.Second, time.Millisecond)

	// Still within cooldown: no second call yet.
	a.Update(noEnemySnapshot())
	assert.Equal(t, 1, bp.callCount())

	// The failure doubled the 50ms base cooldown to 100ms; wait past it.
	time.Sleep(150 * time.Millisecond)
	a.Update(noEnemySnapshot())
	require.Eventually(t, func() bool { return bp.callCount() >= 2 }, time.Second, time.Millisecond)
}

type assertErr struct{}

func (assertErr) Error() string { return "planner unavailable" }
