package llmiface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/snapshot"
)

// HTTPPlanner is an AsyncPlanner backed by a plain JSON-over-HTTP
// endpoint — no codegen, no grpc/protobuf, just a client struct passed
// into the simulation, the shape `llm.Client` follows in the pack's
// mini-world engine. The endpoint receives
// {snapshot, budget_ms, tools} and must return plan.Intent's wire JSON
// (spec §6.1); any status other than 200 is mapped by HTTPPlanner to a
// *PlannerError.
type HTTPPlanner struct {
	Endpoint string
	Registry ToolRegistry
	Client   *http.Client
}

// NewHTTPPlanner returns a planner posting to endpoint with a sane
// request timeout default; override Client for custom transport.
func NewHTTPPlanner(endpoint string, registry ToolRegistry) *HTTPPlanner {
	return &HTTPPlanner{
		Endpoint: endpoint,
		Registry: registry,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type planRequest struct {
	Snapshot snapshot.Snapshot `json:"snapshot"`
	BudgetMs int64             `json:"budget_ms"`
	Tools    ToolRegistry      `json:"tools"`
}

// Plan implements AsyncPlanner. It respects ctx cancellation and
// budgetMs via an http.Request deadline, and classifies every failure
// mode into the Kind taxonomy the arbiter's fallback switches on.
func (p *HTTPPlanner) Plan(ctx context.Context, s snapshot.Snapshot, budgetMs int64) (plan.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(budgetMs)*time.Millisecond)
	defer cancel()

	body, err := json.Marshal(planRequest{Snapshot: s, BudgetMs: budgetMs, Tools: p.Registry})
	if err != nil {
		return plan.Intent{}, NewInternal(fmt.Sprintf("marshal request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return plan.Intent{}, NewInternal(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return plan.Intent{}, NewTimeout()
		}
		return plan.Intent{}, NewInternal(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return plan.Intent{}, NewInternal(fmt.Sprintf("read response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return plan.Intent{}, NewSchema(fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, data))
	}

	intent, err := plan.FromWireJSON(data)
	if err != nil {
		return plan.Intent{}, NewSchema(err.Error())
	}
	if len(intent.Steps) == 0 {
		return plan.Intent{}, NewEmpty()
	}
	for _, step := range intent.Steps {
		if !p.Registry.Has(string(step.Kind)) {
			return plan.Intent{}, NewSchema(fmt.Sprintf("step kind %q not in tool registry", step.Kind))
		}
	}
	return intent, nil
}
