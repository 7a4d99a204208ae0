package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astraweave/core/pkg/plan"
	"github.com/astraweave/core/pkg/planner/rule"
	"github.com/astraweave/core/pkg/snapshot"
	"github.com/astraweave/core/pkg/world"
)

func TestProposePlanEmptyEnemiesYieldsEmptyPlan(t *testing.T) {
	s := snapshot.Snapshot{T: 1.5}
	p := rule.ProposePlan(s)

	assert.Equal(t, "plan-1500", p.PlanID)
	assert.Empty(t, p.Steps)
}

func TestProposePlanThrowsSmokeWhenCooldownReady(t *testing.T) {
	s := snapshot.Snapshot{
		T:  0,
		Me: snapshot.CompanionState{Pos: world.IVec2{X: 2, Y: 3}, Cooldowns: map[string]float64{}},
		Enemies: []snapshot.EnemyState{
			{ID: 7, Pos: world.IVec2{X: 12, Y: 3}, HP: 40},
		},
	}
	p := rule.ProposePlan(s)

	require.Len(t, p.Steps, 3)
	assert.Equal(t, plan.KindThrow, p.Steps[0].Kind)
	require.NotNil(t, p.Steps[0].Throw)
	assert.Equal(t, "smoke", p.Steps[0].Throw.Item)
	assert.Equal(t, int32(7), p.Steps[0].Throw.X)
	assert.Equal(t, int32(3), p.Steps[0].Throw.Y)

	assert.Equal(t, plan.KindMoveTo, p.Steps[1].Kind)

	assert.Equal(t, plan.KindCoverFire, p.Steps[2].Kind)
	require.NotNil(t, p.Steps[2].CoverFire)
	assert.Equal(t, uint32(7), p.Steps[2].CoverFire.TargetID)
}

func TestProposePlanSkipsThrowWhenSmokeOnCooldown(t *testing.T) {
	s := snapshot.Snapshot{
		Me: snapshot.CompanionState{Pos: world.IVec2{X: 2, Y: 3}, Cooldowns: map[string]float64{"throw:smoke": 1.2}},
		Enemies: []snapshot.EnemyState{
			{ID: 7, Pos: world.IVec2{X: 12, Y: 3}, HP: 40},
		},
	}
	p := rule.ProposePlan(s)

	require.Len(t, p.Steps, 2)
	assert.Equal(t, plan.KindMoveTo, p.Steps[0].Kind)
	assert.Equal(t, plan.KindCoverFire, p.Steps[1].Kind)
}

func TestProposePlanPicksNearestEnemyByChebyshevThenLowestID(t *testing.T) {
	s := snapshot.Snapshot{
		Me: snapshot.CompanionState{Pos: world.IVec2{X: 0, Y: 0}, Cooldowns: map[string]float64{"throw:smoke": 1}},
		Enemies: []snapshot.EnemyState{
			{ID: 9, Pos: world.IVec2{X: 5, Y: 0}, HP: 10},
			{ID: 3, Pos: world.IVec2{X: 2, Y: 0}, HP: 10},
			{ID: 4, Pos: world.IVec2{X: -2, Y: 0}, HP: 10}, // same Chebyshev distance as id 3
		},
	}
	p := rule.ProposePlan(s)

	require.Len(t, p.Steps, 2)
	require.NotNil(t, p.Steps[1].CoverFire)
	assert.Equal(t, uint32(3), p.Steps[1].CoverFire.TargetID, "ties broken by lowest entity id")
}

func TestProposePlanPrefersRegisteredCoverPOI(t *testing.T) {
	s := snapshot.Snapshot{
		Me:      snapshot.CompanionState{Pos: world.IVec2{X: 0, Y: 0}, Cooldowns: map[string]float64{"throw:smoke": 1}},
		Enemies: []snapshot.EnemyState{{ID: 1, Pos: world.IVec2{X: 5, Y: 0}, HP: 10}},
		Pois: []snapshot.Poi{
			{Kind: "cover", Pos: world.IVec2{X: 4, Y: 1}},
			{Kind: "ammo_cache", Pos: world.IVec2{X: 0, Y: 5}},
		},
	}
	p := rule.ProposePlan(s)

	require.Len(t, p.Steps, 2)
	require.NotNil(t, p.Steps[0].MoveTo)
	assert.Equal(t, int32(4), p.Steps[0].MoveTo.X)
	assert.Equal(t, int32(1), p.Steps[0].MoveTo.Y)
}

func TestProposePlanIsPureAndDeterministic(t *testing.T) {
	s := snapshot.Snapshot{
		Me:      snapshot.CompanionState{Pos: world.IVec2{X: 2, Y: 3}, Cooldowns: map[string]float64{}},
		Enemies: []snapshot.EnemyState{{ID: 7, Pos: world.IVec2{X: 12, Y: 3}, HP: 40}},
	}
	p1 := rule.ProposePlan(s)
	p2 := rule.ProposePlan(s)

	j1, err := p1.ToWireJSON()
	require.NoError(t, err)
	j2, err := p2.ToWireJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(j1), string(j2))
}
