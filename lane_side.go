package lanegeom

// LaneSide is the side of the reference line a lane lives on
type LaneSide uint16

const (
	SIDE_RIGHT = LaneSide(iota)
	SIDE_CENTER
	SIDE_LEFT
)

func (iotaIdx LaneSide) String() string {
	return [...]string{"right", "center", "left"}[iotaIdx]
}

// Sign returns +1 for left lanes, -1 for right lanes and 0 for the center lane.
// Multiplying a lateral width by it gives the signed t coordinate.
func (iotaIdx LaneSide) Sign() float64 {
	switch iotaIdx {
	case SIDE_LEFT:
		return 1
	case SIDE_RIGHT:
		return -1
	default:
		return 0
	}
}

// sideForID derives side from the lane id sign
func sideForID(id int32) LaneSide {
	switch {
	case id > 0:
		return SIDE_LEFT
	case id < 0:
		return SIDE_RIGHT
	default:
		return SIDE_CENTER
	}
}

// LaneDirection is the travel direction of a lane relative to the reference line
type LaneDirection uint16

const (
	DIRECTION_UNDIRECTED = LaneDirection(iota)
	DIRECTION_FORWARD
	DIRECTION_BACKWARD
)

func (iotaIdx LaneDirection) String() string {
	return [...]string{"undirected", "forward", "backward"}[iotaIdx]
}

// TrafficRule is the driving convention of a road
type TrafficRule uint16

const (
	TRAFFIC_RHT = TrafficRule(iota)
	TRAFFIC_LHT
)

func (iotaIdx TrafficRule) String() string {
	return [...]string{"RHT", "LHT"}[iotaIdx]
}

// TrafficRuleProvider supplies driving convention for a road
type TrafficRuleProvider interface {
	TrafficRule() TrafficRule
}

// staticTrafficRule is the TrafficRuleProvider for a constant rule
type staticTrafficRule TrafficRule

func (rule staticTrafficRule) TrafficRule() TrafficRule {
	return TrafficRule(rule)
}

// DeriveDirection returns travel direction for a lane on the given side.
// Right-hand traffic: right lanes go forward, left lanes go backward. Left-hand traffic is mirrored.
// Non-traffic lane types get the same side-based direction (it is used for geometry only).
func DeriveDirection(side LaneSide, rule TrafficRule) LaneDirection {
	switch side {
	case SIDE_RIGHT:
		if rule == TRAFFIC_LHT {
			return DIRECTION_BACKWARD
		}
		return DIRECTION_FORWARD
	case SIDE_LEFT:
		if rule == TRAFFIC_LHT {
			return DIRECTION_FORWARD
		}
		return DIRECTION_BACKWARD
	default:
		return DIRECTION_UNDIRECTED
	}
}

// ContactPoint tells which end of a neighbour section takes part in a link
type ContactPoint uint16

const (
	CONTACT_START = ContactPoint(iota)
	CONTACT_END
)

func (iotaIdx ContactPoint) String() string {
	return [...]string{"start", "end"}[iotaIdx]
}

// LaneEdge selects which lateral edge of a lane a cumulative width refers to
type LaneEdge uint16

const (
	EDGE_START = LaneEdge(iota)
	EDGE_CENTER
	EDGE_END
)

func (iotaIdx LaneEdge) String() string {
	return [...]string{"start", "center", "end"}[iotaIdx]
}
