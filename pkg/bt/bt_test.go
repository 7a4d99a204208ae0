package bt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/astraweave/core/pkg/bt"
)

func always(status bt.Status) func() bt.Status {
	return func() bt.Status { return status }
}

func TestSequenceStopsAtFirstNonSuccessWithoutTickingSiblings(t *testing.T) {
	ticked3 := false
	ctx := bt.NewMapContext()
	ctx.Actions["a1"] = always(bt.Success)
	ctx.Actions["a2"] = always(bt.Running)
	ctx.Actions["a3"] = func() bt.Status { ticked3 = true; return bt.Success }

	tree := bt.Sequence(bt.Action("a1"), bt.Action("a2"), bt.Action("a3"))
	st := tree.Tick(ctx, bt.NewRunState(), 0)

	assert.Equal(t, bt.Running, st)
	assert.False(t, ticked3, "sibling after a Running child must not be ticked this frame")
}

func TestSelectorReturnsFirstNonFailure(t *testing.T) {
	ctx := bt.NewMapContext()
	ctx.Actions["a1"] = always(bt.Failure)
	ctx.Actions["a2"] = always(bt.Success)
	ctx.Actions["a3"] = func() bt.Status { t.Fatal("must not tick past first non-failure"); return bt.Failure }

	tree := bt.Selector(bt.Action("a1"), bt.Action("a2"), bt.Action("a3"))
	st := tree.Tick(ctx, bt.NewRunState(), 0)
	assert.Equal(t, bt.Success, st)
}

func TestParallelThresholdSuccessAndFailure(t *testing.T) {
	ctx := bt.NewMapContext()
	ctx.Actions["ok1"] = always(bt.Success)
	ctx.Actions["ok2"] = always(bt.Success)
	ctx.Actions["bad"] = always(bt.Failure)

	successTree := bt.Parallel(2, bt.Action("ok1"), bt.Action("ok2"), bt.Action("bad"))
	assert.Equal(t, bt.Success, successTree.Tick(ctx, bt.NewRunState(), 0))

	failTree := bt.Parallel(2, bt.Action("ok1"), bt.Action("bad"), bt.Action("bad"))
	assert.Equal(t, bt.Failure, failTree.Tick(ctx, bt.NewRunState(), 0))

	unreachableTree := bt.Parallel(3, bt.Action("ok1"), bt.Action("ok2"), bt.Action("bad"))
	// two succeed, one fails: threshold 3 is now unreachable => Failure, not Running
	assert.Equal(t, bt.Failure, unreachableTree.Tick(ctx, bt.NewRunState(), 0))
}

func TestInverterFlipsSuccessAndFailure(t *testing.T) {
	ctx := bt.NewMapContext()
	ctx.Conditions["ready"] = always(bt.Success)

	tree := bt.Inverter(bt.Condition("ready"))
	assert.Equal(t, bt.Failure, tree.Tick(ctx, bt.NewRunState(), 0))
}

func TestRepeaterRunsUntilNSuccesses(t *testing.T) {
	calls := 0
	ctx := bt.NewMapContext()
	ctx.Actions["tick"] = func() bt.Status { calls++; return bt.Success }

	tree := bt.Repeater(3, bt.Action("tick"))
	rs := bt.NewRunState()

	assert.Equal(t, bt.Running, tree.Tick(ctx, rs, 0))
	assert.Equal(t, bt.Running, tree.Tick(ctx, rs, 0))
	assert.Equal(t, bt.Success, tree.Tick(ctx, rs, 0))
	assert.Equal(t, 3, calls)

	// counter resets after completion
	assert.Equal(t, bt.Running, tree.Tick(ctx, rs, 0))
}

func TestCooldownBlocksReuseUntilElapsed(t *testing.T) {
	ctx := bt.NewMapContext()
	ctx.Actions["fire"] = always(bt.Success)

	tree := bt.Cooldown(1.0, bt.Action("fire"))
	rs := bt.NewRunState()

	assert.Equal(t, bt.Success, tree.Tick(ctx, rs, 0))
	assert.Equal(t, bt.Failure, tree.Tick(ctx, rs, 0.5), "still on cooldown at +0.5s of a 1.0s cooldown")
	assert.Equal(t, bt.Failure, tree.Tick(ctx, rs, 0.4), "still on cooldown at +0.9s")
	assert.Equal(t, bt.Success, tree.Tick(ctx, rs, 0.2), "cooldown has elapsed by +1.1s")
}

func TestMissingLeafYieldsFailureAndIsRecorded(t *testing.T) {
	ctx := bt.NewMapContext()
	tree := bt.Action("does_not_exist")
	st := tree.Tick(ctx, bt.NewRunState(), 0)
	assert.Equal(t, bt.Failure, st)
	assert.Contains(t, ctx.Missing, "does_not_exist")
}

func TestCurrentNodeNameTracksLastLeafTicked(t *testing.T) {
	ctx := bt.NewMapContext()
	ctx.Actions["leaf"] = always(bt.Success)
	rs := bt.NewRunState()

	bt.Sequence(bt.Action("leaf")).Tick(ctx, rs, 0)
	assert.Equal(t, "leaf", rs.CurrentNodeName)
}
