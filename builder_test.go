package lanegeom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshBuilder(t *testing.T) {
	network, section := twoLaneNetwork(t, 20, 3.5)
	right, err := section.Lane(-1)
	require.NoError(t, err)
	right.AddRoadMark(NewRoadMark(0, ROADMARK_SOLID))
	section.CenterLane().AddRoadMark(NewRoadMark(0, ROADMARK_BROKEN))

	tessellator := NewTessellator()
	samples := len(tessellator.Stations(section))
	builder := NewMeshBuilder(tessellator)
	assert.Same(t, tessellator, builder.Tessellator())

	meshes, err := builder.Build(network, LineResolver{})
	require.NoError(t, err)
	// two lane surfaces, the right lane mark and the center mark
	require.Len(t, meshes, 4)
	kinds := map[MeshKind]int{}
	for _, mesh := range meshes {
		kinds[mesh.Kind]++
		assert.False(t, mesh.Buffers.Empty())
		assert.Equal(t, section.ID(), mesh.SectionID)
		lane, ok := network.ResolveHandle(mesh.Handle)
		require.True(t, ok)
		assert.Equal(t, lane.ID(), mesh.LaneID)
		assert.Equal(t, lane.Type(), mesh.LaneType)
	}
	assert.Equal(t, map[MeshKind]int{MESH_LANE_SURFACE: 2, MESH_ROAD_MARK: 2}, kinds)

	surface := Merge(meshes, MESH_LANE_SURFACE)
	assert.Equal(t, 2*2*samples, surface.VertexCount())
	marks := Merge(meshes, MESH_ROAD_MARK)
	assert.False(t, marks.Empty())

	surfacesOnly := NewMeshBuilder(nil, WithMeshKinds(MESH_LANE_SURFACE), WithSkipEmpty(false), WithVerbose(false))
	meshes, err = surfacesOnly.Build(network, LineResolver{})
	require.NoError(t, err)
	require.Len(t, meshes, 3, "empty center lane surface is kept")
	for _, mesh := range meshes {
		assert.Equal(t, MESH_LANE_SURFACE, mesh.Kind)
	}
}

func TestMeshBuilderErrors(t *testing.T) {
	network, section := twoLaneNetwork(t, 20, 3.5)
	builder := NewMeshBuilder(nil)
	_, err := builder.BuildLane(MeshKind(100), section.CenterLane(), section, LineResolver{})
	assert.Error(t, err)

	// stale coordinates: a fresh section has no length until coordinates are recomputed
	_, err = network.AddSection(10)
	require.NoError(t, err)
	_, err = builder.Build(network, LineResolver{})
	assert.Error(t, err)
	require.NoError(t, network.RecomputeCoordinates())
	_, err = builder.Build(network, LineResolver{})
	assert.NoError(t, err)
}
