package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireRoundTrip(t *testing.T) {
	speed := float32(1.5)
	original := New("plan-1000",
		ActionStep{Kind: KindThrow, Throw: &Throw{Item: "smoke", X: 7, Y: 2}},
		ActionStep{Kind: KindMoveTo, MoveTo: &MoveTo{X: 7, Y: 3, Speed: &speed}},
		ActionStep{Kind: KindCoverFire, CoverFire: &CoverFire{TargetID: 4, Duration: 2}},
	)

	data, err := original.ToWireJSON()
	require.NoError(t, err)

	parsed, err := FromWireJSON(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestWireShapeMatchesSpec(t *testing.T) {
	p := New("plan-0", ActionStep{Kind: KindWait, Wait: &Wait{Duration: 1}})
	data, err := p.ToWireJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"plan_id":"plan-0","steps":[{"Wait":{"duration":1}}]}`, string(data))
}

func TestFromWireJSONRejectsMultiKeyStep(t *testing.T) {
	_, err := FromWireJSON([]byte(`{"plan_id":"p","steps":[{"MoveTo":{},"Attack":{}}]}`))
	assert.Error(t, err)
}

func TestFromWireJSONRejectsUnknownKind(t *testing.T) {
	_, err := FromWireJSON([]byte(`{"plan_id":"p","steps":[{"Teleport":{}}]}`))
	assert.Error(t, err)
}
