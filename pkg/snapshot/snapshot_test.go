package snapshot

import (
	"testing"

	"github.com/astraweave/core/pkg/ecs"
	"github.com/astraweave/core/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildS1World reproduces spec.md scenario S1: player@(2,2), companion@(2,3),
// enemy@(12,2), a vertical obstacle wall at x=6, y in [1,8].
func buildS1World(t *testing.T) (*world.World, ecs.Entity, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := world.New()
	player := w.Spawn("player", world.IVec2{X: 2, Y: 2}, world.TeamPlayer, 100, 0)
	companion := w.Spawn("companion", world.IVec2{X: 2, Y: 3}, world.TeamAlly, 100, 30)
	enemy := w.Spawn("enemy", world.IVec2{X: 12, Y: 2}, world.TeamEnemy, 40, 0)
	for y := int32(1); y <= 8; y++ {
		w.SetObstacle(world.IVec2{X: 6, Y: y}, true)
	}
	return w, player, companion, enemy
}

func TestBuildSnapshotS1EnemyOccludedByWall(t *testing.T) {
	w, player, companion, enemy := buildS1World(t)
	snap := Build(w, player, companion, []ecs.Entity{enemy}, nil, Config{LosMax: 12})

	// The enemy at (12,2) is within los_max Chebyshev 12 but the line from
	// (2,3) crosses the x=6 wall, so it must be occluded.
	assert.Empty(t, snap.Enemies)
}

func TestBuildSnapshotEnemyVisibleWithClearLine(t *testing.T) {
	w := world.New()
	player := w.Spawn("player", world.IVec2{}, world.TeamPlayer, 100, 0)
	companion := w.Spawn("companion", world.IVec2{X: 5, Y: 5}, world.TeamAlly, 100, 30)
	enemy := w.Spawn("enemy", world.IVec2{X: 8, Y: 8}, world.TeamEnemy, 40, 0)

	snap := Build(w, player, companion, []ecs.Entity{enemy}, nil, Config{LosMax: 6})
	require.Len(t, snap.Enemies, 1)
	assert.Equal(t, enemy.ID, snap.Enemies[0].ID)
	assert.Equal(t, world.IVec2{X: 8, Y: 8}, snap.Enemies[0].Pos)
}

func TestLOSBoundaryExactlyAtLosMaxIncludedOneBeyondExcluded(t *testing.T) {
	w := world.New()
	player := w.Spawn("player", world.IVec2{}, world.TeamPlayer, 100, 0)
	companion := w.Spawn("companion", world.IVec2{X: 0, Y: 0}, world.TeamAlly, 100, 30)
	atMax := w.Spawn("at-max", world.IVec2{X: 6, Y: 0}, world.TeamEnemy, 10, 0)
	beyond := w.Spawn("beyond", world.IVec2{X: 7, Y: 0}, world.TeamEnemy, 10, 0)

	snap := Build(w, player, companion, []ecs.Entity{atMax, beyond}, nil, Config{LosMax: 6})
	require.Len(t, snap.Enemies, 1)
	assert.Equal(t, atMax.ID, snap.Enemies[0].ID)
}

func TestBuildSnapshotIsPureAndDeterministic(t *testing.T) {
	w, player, companion, enemy := buildS1World(t)
	cds, _ := w.Cooldowns(companion)
	cds["throw:smoke"] = 0

	snap1 := Build(w, player, companion, []ecs.Entity{enemy}, nil, Config{LosMax: 12})
	data1, err := snap1.MarshalDeterministicJSON()
	require.NoError(t, err)

	snap2 := Build(w, player, companion, []ecs.Entity{enemy}, nil, Config{LosMax: 12})
	data2, err := snap2.MarshalDeterministicJSON()
	require.NoError(t, err)

	assert.Equal(t, string(data1), string(data2), "identical inputs must yield byte-identical JSON")

	// Build must not have mutated the world.
	pos, _ := w.PosOf(companion)
	assert.Equal(t, world.IVec2{X: 2, Y: 3}, pos)
}

func TestBuildSnapshotDefaultsStanceAndMorale(t *testing.T) {
	w, player, companion, _ := buildS1World(t)
	snap := Build(w, player, companion, nil, nil, Config{LosMax: 12})
	assert.Equal(t, "stand", snap.Player.Stance)
	assert.Equal(t, 1.0, snap.Me.Morale)
}

func TestBuildSnapshotPOIsWithinRange(t *testing.T) {
	w, player, companion, _ := buildS1World(t)
	ecs.Set(w.Resources, POIs{
		{Kind: "ammo_cache", Pos: world.IVec2{X: 3, Y: 3}},
		{Kind: "far_away", Pos: world.IVec2{X: 100, Y: 100}},
	})
	snap := Build(w, player, companion, nil, nil, Config{LosMax: 12})
	require.Len(t, snap.Pois, 1)
	assert.Equal(t, "ammo_cache", snap.Pois[0].Kind)
}
