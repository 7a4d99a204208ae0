// Package arbiter implements AIArbiter, the hybrid GOAP/BT/LLM orchestrator
// spec §4.8 describes: a synchronous GOAP planner with a BT fallback, and
// an LLM executor whose planning call runs on a background goroutine and
// is polled non-blockingly at the start of every Update — the only
// concurrency the core admits (spec §5).
package arbiter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/astraweave/core/pkg/bt"
	"github.com/astraweave/core/pkg/llmiface"
	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/planner/goap"
	"github.com/astraweave/core/pkg/snapshot"
)

// Mode is the arbiter's current driving strategy.
type Mode int

const (
	ModeGOAP Mode = iota
	ModeExecutingLLM
)

type llmResult struct {
	intent plan.Intent
	err    error
}

// AIArbiter owns one agent's synchronous GOAP planner, BT fallback, and
// asynchronous LLM executor. Zero value is not usable — construct with
// New.
type AIArbiter struct {
	mu sync.Mutex

	mode    Mode
	llmPlan plan.Intent
	llmStep int

	goapPlanner *goap.Planner
	tree        *bt.Node
	btState     *bt.RunState

	asyncPlanner llmiface.AsyncPlanner
	budgetMs     int64

	inFlight bool
	resultCh chan llmResult

	baseCooldown  time.Duration
	maxCooldown   time.Duration
	cooldown      time.Duration
	cooldownUntil time.Time

	logger *slog.Logger
}

// Option configures New.
type Option func(*AIArbiter)

// WithBehaviorTree overrides the default fallback tree.
func WithBehaviorTree(tree *bt.Node) Option {
	return func(a *AIArbiter) { a.tree = tree }
}

// WithCooldown overrides the base/max cooldown between LLM requests
// (defaults: 2s base, 60s cap).
func WithCooldown(base, max time.Duration) Option {
	return func(a *AIArbiter) { a.baseCooldown, a.maxCooldown, a.cooldown = base, max, base }
}

// New builds an arbiter around goapPlanner (required), an optional
// asyncPlanner (nil disables LLM planning entirely — the arbiter then
// always runs GOAP→BT→Wait), and budgetMs for each LLM call.
func New(goapPlanner *goap.Planner, asyncPlanner llmiface.AsyncPlanner, budgetMs int64, logger *slog.Logger, opts ...Option) *AIArbiter {
	if logger == nil {
		logger = slog.Default()
	}
	a := &AIArbiter{
		mode:         ModeGOAP,
		goapPlanner:  goapPlanner,
		tree:         defaultTree(),
		asyncPlanner: asyncPlanner,
		budgetMs:     budgetMs,
		btState:      bt.NewRunState(),
		baseCooldown: 2 * time.Second,
		maxCooldown:  60 * time.Second,
		logger:       logger,
	}
	a.cooldown = a.baseCooldown
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mode reports the arbiter's current driving strategy (for diagnostics).
func (a *AIArbiter) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Update implements spec §4.8's per-tick contract: poll the LLM
// non-blockingly, consume a step from an in-progress LLM plan or fall
// back to GOAP/BT/Wait, then possibly spawn a new LLM request.
func (a *AIArbiter) Update(s snapshot.Snapshot) plan.ActionStep {
	a.pollLLM()

	a.mu.Lock()
	mode := a.mode
	a.mu.Unlock()

	var step plan.ActionStep
	if mode == ModeExecutingLLM {
		step = a.consumeLLMStep()
	} else {
		step = a.decideGOAPThenBT(s)
	}

	a.maybeSpawnLLM(s)
	return step
}

// pollLLM consumes a completed background result if one is ready,
// without blocking if none is (spec §5 "Polling is O(1) when no task
// exists").
func (a *AIArbiter) pollLLM() {
	a.mu.Lock()
	ch := a.resultCh
	a.mu.Unlock()
	if ch == nil {
		return
	}

	select {
	case res := <-ch:
		a.mu.Lock()
		a.resultCh = nil
		a.inFlight = false
		switch {
		case res.err != nil:
			a.logger.Warn("arbiter: llm planning failed", "error", res.err)
			a.extendCooldownLocked()
		case len(res.intent.Steps) == 0:
			a.logger.Warn("arbiter: llm returned empty plan")
			a.extendCooldownLocked()
		default:
			a.mode = ModeExecutingLLM
			a.llmPlan = res.intent
			a.llmStep = 0
			a.cooldown = a.baseCooldown
		}
		a.mu.Unlock()
	default:
	}
}

// extendCooldownLocked doubles the retry cooldown up to maxCooldown
// (spec §4.8 "Monotonic cooldown: on LLM failure, cooldown doubles up
// to a cap"). Caller must hold a.mu.
func (a *AIArbiter) extendCooldownLocked() {
	a.cooldown *= 2
	if a.cooldown > a.maxCooldown {
		a.cooldown = a.maxCooldown
	}
	a.cooldownUntil = time.Now().Add(a.cooldown)
}

// consumeLLMStep returns the next step of an in-progress LLM plan,
// transitioning back to GOAP once the plan is exhausted (spec §4.8's
// ExecutingLLM state).
func (a *AIArbiter) consumeLLMStep() plan.ActionStep {
	a.mu.Lock()
	defer a.mu.Unlock()

	step := a.llmPlan.Steps[a.llmStep]
	a.llmStep++
	if a.llmStep >= len(a.llmPlan.Steps) {
		a.mode = ModeGOAP
		a.llmPlan = plan.Intent{}
		a.llmStep = 0
	}
	return step
}

// decideGOAPThenBT implements the GOAP-with-BT-fallback chain: GOAP
// first, then the behavior tree, then an unconditional Wait (spec §4.8
// step 3's fallback chain).
func (a *AIArbiter) decideGOAPThenBT(s snapshot.Snapshot) plan.ActionStep {
	goal := goap.SelectGoal(s)
	if names, ok := a.goapPlanner.Plan(goap.StartState(s), goal); ok && len(names) > 0 {
		if steps := goap.ToActionSteps(names[:1], s, a.logger); len(steps) > 0 {
			return steps[0]
		}
	}

	dc := &decisionContext{s: s}
	a.tree.Tick(dc, a.btState, 0)
	if dc.ok {
		return dc.decided
	}

	return plan.ActionStep{Kind: plan.KindWait, Wait: &plan.Wait{Duration: 1.0}}
}

// maybeSpawnLLM starts a background LLM planning call if none is
// in-flight and the cooldown since the last request (or since the last
// failure) has elapsed (spec §4.8 step 4, "At-most-one in-flight LLM task
// per arbiter").
func (a *AIArbiter) maybeSpawnLLM(s snapshot.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.asyncPlanner == nil || a.inFlight {
		return
	}
	if !a.cooldownUntil.IsZero() && time.Now().Before(a.cooldownUntil) {
		return
	}

	a.inFlight = true
	a.cooldownUntil = time.Now().Add(a.cooldown)
	ch := make(chan llmResult, 1)
	a.resultCh = ch

	taskID := uuid.New().String()
	planner := a.asyncPlanner
	budget := a.budgetMs
	logger := a.logger
	logger.Debug("arbiter: spawning llm planning task", "task_id", taskID)
	go func(snap snapshot.Snapshot) {
		intent, err := planner.Plan(context.Background(), snap, budget)
		if err != nil {
			logger.Debug("arbiter: llm planning task finished with error", "task_id", taskID, "error", err)
		} else {
			logger.Debug("arbiter: llm planning task finished", "task_id", taskID, "steps", len(intent.Steps))
		}
		ch <- llmResult{intent: intent, err: err}
	}(s)
}
