package lanegeom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routingNetwork prepares two linked 50 m sections with lanes 1, -1, -2 (driving) and -3 (sidewalk)
func routingNetwork(t *testing.T) (*LaneNetwork, []*LaneSection) {
	t.Helper()
	network := NewLaneNetwork(100)
	for _, s := range []float64{0, 50} {
		section, err := network.AddSection(s)
		require.NoError(t, err)
		for _, id := range []int32{1, -1, -2} {
			lane, err := section.CreateLane(id, LANE_DRIVING)
			require.NoError(t, err)
			require.NoError(t, lane.AddWidthRecord(ConstantPolynomial(0, 3.5)))
		}
		sidewalk, err := section.CreateLane(-3, LANE_SIDEWALK)
		require.NoError(t, err)
		require.NoError(t, sidewalk.AddWidthRecord(ConstantPolynomial(0, 2)))
	}
	require.NoError(t, network.RecomputeCoordinates())
	require.Equal(t, 4, network.LinkAll())
	return network, network.Sections()
}

func laneHandle(t *testing.T, section *LaneSection, id int32) LaneHandle {
	t.Helper()
	lane, err := section.Lane(id)
	require.NoError(t, err)
	return lane.Handle()
}

func TestLaneGraphAuto(t *testing.T) {
	network, sections := routingNetwork(t)
	graph, err := NewLaneGraph(network, AGENT_AUTO, WithLaneChangePenalty(10))
	require.NoError(t, err)
	assert.Equal(t, 6, graph.VerticesNum())
	// two forward links, one backward link and a lane change pair per section
	assert.Equal(t, 7, graph.EdgesNum())

	from := laneHandle(t, sections[0], -1)
	to := laneHandle(t, sections[1], -2)
	cost, path, err := graph.ShortestPath(from, to)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, cost, 1e-9)
	require.Len(t, path, 3)
	assert.Equal(t, from, path[0])
	assert.Equal(t, to, path[2])

	cost, path, err = graph.ShortestPath(laneHandle(t, sections[1], 1), laneHandle(t, sections[0], 1))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, cost, 1e-9)
	assert.Len(t, path, 2)

	cost, path, err = graph.ShortestPath(from, from)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
	assert.Equal(t, []LaneHandle{from}, path)

	_, _, err = graph.ShortestPath(from, laneHandle(t, sections[0], 1))
	assert.True(t, errors.Is(err, ErrNoRoute))

	_, _, err = graph.ShortestPath(from, laneHandle(t, sections[1], -3))
	assert.True(t, errors.Is(err, ErrLaneNotFound), "sidewalk is not in the graph of cars")
}

func TestLaneGraphWalk(t *testing.T) {
	network, sections := routingNetwork(t)
	graph, err := NewLaneGraph(network, AGENT_WALK)
	require.NoError(t, err)
	assert.Equal(t, 2, graph.VerticesNum())
	assert.Equal(t, 2, graph.EdgesNum(), "pedestrians walk both ways")

	cost, path, err := graph.ShortestPath(laneHandle(t, sections[1], -3), laneHandle(t, sections[0], -3))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, cost, 1e-9)
	assert.Len(t, path, 2)
}
