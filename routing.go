package lanegeom

import (
	"fmt"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

const (
	DefaultLaneChangePenalty = 10.0
)

var (
	ErrNoRoute = errors.New("no route between lanes")
)

// LaneGraph is a lane-level routing graph over a lane network. Vertices are lanes usable by
// one agent type, edges follow lane links in travel direction (weighted by the length of the
// section being left) plus lane changes between neighbouring lanes of the same direction.
// Shortest paths are answered with contraction hierarchies
type LaneGraph struct {
	graph             ch.Graph
	network           *LaneNetwork
	agent             AgentType
	laneChangePenalty float64
	vertices          map[LaneHandle]int64
	handles           map[int64]LaneHandle
	edgesNum          int
	verbose           bool
}

func WithLaneChangePenalty(penalty float64) func(*LaneGraph) {
	return func(graph *LaneGraph) {
		graph.laneChangePenalty = penalty
	}
}

func WithGraphVerbose(verbose bool) func(*LaneGraph) {
	return func(graph *LaneGraph) {
		graph.verbose = verbose
	}
}

// NewLaneGraph builds and contracts lane graph for given agent type
func NewLaneGraph(network *LaneNetwork, agent AgentType, options ...func(*LaneGraph)) (*LaneGraph, error) {
	laneGraph := &LaneGraph{
		graph:             ch.Graph{},
		network:           network,
		agent:             agent,
		laneChangePenalty: DefaultLaneChangePenalty,
		vertices:          make(map[LaneHandle]int64),
		handles:           make(map[int64]LaneHandle),
	}
	for _, option := range options {
		option(laneGraph)
	}
	if laneGraph.verbose {
		fmt.Printf("Preparing lane graph for '%s'...", agent)
	}
	st := time.Now()

	for _, section := range network.Sections() {
		for _, lane := range section.Lanes() {
			if !laneGraph.usable(lane) {
				continue
			}
			label := int64(len(laneGraph.vertices))
			if err := laneGraph.graph.CreateVertex(label); err != nil {
				return nil, errors.Wrap(err, "Can't create vertex")
			}
			laneGraph.vertices[lane.Handle()] = label
			laneGraph.handles[label] = lane.Handle()
		}
	}

	for _, section := range network.Sections() {
		for _, side := range []LaneSide{SIDE_LEFT, SIDE_RIGHT} {
			lanes := section.sideLanes(side)
			for i, lane := range lanes {
				if !laneGraph.usable(lane) {
					continue
				}
				if err := laneGraph.addLongitudinal(lane, section); err != nil {
					return nil, err
				}
				if i+1 < len(lanes) && laneGraph.usable(lanes[i+1]) && lanes[i+1].direction == lane.direction {
					if err := laneGraph.addEdge(lane, lanes[i+1], laneGraph.laneChangePenalty); err != nil {
						return nil, err
					}
					if err := laneGraph.addEdge(lanes[i+1], lane, laneGraph.laneChangePenalty); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	laneGraph.graph.PrepareContractionHierarchies()
	if laneGraph.verbose {
		fmt.Printf("Done in %v (vertices: %d, edges: %d)\n", time.Since(st), len(laneGraph.vertices), laneGraph.edgesNum)
	}
	return laneGraph, nil
}

func (laneGraph *LaneGraph) usable(lane *Lane) bool {
	return lane.side != SIDE_CENTER && lane.AllowsAgent(laneGraph.agent)
}

// bothWays tells whether lane can be travelled against its derived direction
func (laneGraph *LaneGraph) bothWays(lane *Lane) bool {
	return lane.laneType == LANE_BIDIRECTIONAL || laneGraph.agent == AGENT_WALK
}

func (laneGraph *LaneGraph) addLongitudinal(lane *Lane, section *LaneSection) error {
	forward := lane.direction == DIRECTION_FORWARD || laneGraph.bothWays(lane)
	backward := lane.direction == DIRECTION_BACKWARD || laneGraph.bothWays(lane)
	if forward {
		if next, ok := laneGraph.network.Successor(lane); ok && laneGraph.usable(next) {
			if err := laneGraph.addEdge(lane, next, section.Length()); err != nil {
				return err
			}
		}
	}
	if backward {
		if prev, ok := laneGraph.network.Predecessor(lane); ok && laneGraph.usable(prev) {
			if err := laneGraph.addEdge(lane, prev, section.Length()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (laneGraph *LaneGraph) addEdge(from, to *Lane, weight float64) error {
	source, ok := laneGraph.vertices[from.Handle()]
	if !ok {
		return nil
	}
	target, ok := laneGraph.vertices[to.Handle()]
	if !ok {
		return nil
	}
	err := laneGraph.graph.AddEdge(source, target, weight)
	if err != nil {
		return errors.Wrapf(err, "Can't add edge %s -> %s", from.Handle(), to.Handle())
	}
	laneGraph.edgesNum++
	return nil
}

// VerticesNum returns number of lanes in the graph
func (laneGraph *LaneGraph) VerticesNum() int {
	return len(laneGraph.vertices)
}

// EdgesNum returns number of lane-to-lane transitions in the graph
func (laneGraph *LaneGraph) EdgesNum() int {
	return laneGraph.edgesNum
}

// ShortestPath returns cost and sequence of lanes from one lane to another
func (laneGraph *LaneGraph) ShortestPath(from, to LaneHandle) (float64, []LaneHandle, error) {
	source, ok := laneGraph.vertices[from]
	if !ok {
		return -1, nil, errors.Wrapf(ErrLaneNotFound, "source lane %s is not in the graph", from)
	}
	target, ok := laneGraph.vertices[to]
	if !ok {
		return -1, nil, errors.Wrapf(ErrLaneNotFound, "target lane %s is not in the graph", to)
	}
	if source == target {
		return 0, []LaneHandle{from}, nil
	}
	cost, path := laneGraph.graph.ShortestPath(source, target)
	if cost < 0 || len(path) == 0 {
		return -1, nil, errors.Wrapf(ErrNoRoute, "%s -> %s", from, to)
	}
	handles := make([]LaneHandle, len(path))
	for i, label := range path {
		handles[i] = laneGraph.handles[label]
	}
	return cost, handles, nil
}
