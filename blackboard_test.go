package rendergraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cameraData struct {
	Near, Far float32
}

type gbuffer struct {
	Albedo, Normal TextureVersionID
}

func TestBlackboard(t *testing.T) {
	bb := NewBlackboard()

	cam := Add[cameraData](bb)
	require.NotNil(t, cam)
	cam.Near, cam.Far = 0.1, 100

	got := Get[cameraData](bb)
	assert.Same(t, cam, got)
	assert.InDelta(t, 100, got.Far, 1e-6)

	_, ok := Lookup[gbuffer](bb)
	assert.False(t, ok)

	gb := Add[gbuffer](bb)
	gb.Albedo = 3
	looked, ok := Lookup[gbuffer](bb)
	require.True(t, ok)
	assert.Equal(t, TextureVersionID(3), looked.Albedo)
	assert.Equal(t, 2, bb.Len())
}

func TestBlackboardContract(t *testing.T) {
	bb := NewBlackboard()
	Add[cameraData](bb)

	assert.Panics(t, func() { Add[cameraData](bb) }, "duplicate Add")
	assert.Panics(t, func() { Get[gbuffer](bb) }, "Get of absent type")
	assert.PanicsWithValue(t, "rendergraph: blackboard holds no rendergraph.gbuffer", func() {
		Get[gbuffer](bb)
	})
}
