package lanegeom

import (
	"github.com/pkg/errors"
)

// Lane is a single lane of a lane section. Its cross-section is defined by
// width, height and road mark profiles over the section-local s coordinate
type Lane struct {
	id        int32
	side      LaneSide
	laneType  LaneType
	level     bool
	direction LaneDirection

	width     Profile[*Polynomial]
	height    Profile[*HeightRecord]
	roadMarks Profile[*RoadMark]

	predecessor LaneHandle
	successor   LaneHandle

	section *LaneSection // owner, nil for detached lanes
	key     laneKey      // arena slot in the owning section
}

// NewLane creates detached lane. Side is derived from the id sign. The center lane (id 0)
// always gets undirected direction and a single zero width record
func NewLane(id int32, laneType LaneType) *Lane {
	lane := &Lane{
		id:        id,
		side:      sideForID(id),
		laneType:  laneType,
		direction: DeriveDirection(sideForID(id), TRAFFIC_RHT),
	}
	if lane.side == SIDE_CENTER {
		lane.laneType = LANE_NONE
		lane.width.Insert(&Polynomial{})
	}
	return lane
}

// ID returns signed lane id: positive for left lanes, negative for right lanes, 0 for center
func (lane *Lane) ID() int32 {
	return lane.id
}

// Side returns side of the reference line the lane lives on
func (lane *Lane) Side() LaneSide {
	return lane.side
}

// Type returns lane usage type
func (lane *Lane) Type() LaneType {
	return lane.laneType
}

// SetType changes lane usage type. Ignored for the center lane
func (lane *Lane) SetType(laneType LaneType) {
	if lane.side == SIDE_CENTER {
		return
	}
	lane.laneType = laneType
}

// Level tells whether lane is excluded from superelevation
func (lane *Lane) Level() bool {
	return lane.level
}

func (lane *Lane) SetLevel(level bool) {
	lane.level = level
}

// Direction returns travel direction derived from side and traffic rule of the owning road
func (lane *Lane) Direction() LaneDirection {
	return lane.direction
}

// IsTrafficLane tells whether lane participates in traffic flow
func (lane *Lane) IsTrafficLane() bool {
	return lane.side != SIDE_CENTER && lane.laneType.IsTraffic()
}

// AllowsAgent tells whether given road user may travel on the lane
func (lane *Lane) AllowsAgent(agent AgentType) bool {
	return allowsAgent(lane.laneType, agent)
}

// AllowedAgents returns every agent type the lane serves
func (lane *Lane) AllowedAgents() []AgentType {
	agents := agentsByLaneType[lane.laneType]
	out := make([]AgentType, len(agents))
	copy(out, agents)
	return out
}

// Section returns owning lane section or nil for detached lanes
func (lane *Lane) Section() *LaneSection {
	return lane.section
}

// Handle returns weak reference to the lane. Zero handle for detached lanes
func (lane *Lane) Handle() LaneHandle {
	if lane.section == nil {
		return LaneHandle{LaneID: lane.id}
	}
	return LaneHandle{LaneID: lane.id, Section: lane.section.uuid, key: lane.key}
}

func (lane *Lane) deriveDirection(rule TrafficRule) {
	lane.direction = DeriveDirection(lane.side, rule)
}

/* Width */

// Width returns lane width at local s. Before the first record the first record's
// starting value is used; a lane without width records is 0 wide
func (lane *Lane) Width(s float64) float64 {
	if rec, ok := lane.width.FindAt(s); ok {
		return rec.Value(s)
	}
	if first, ok := lane.width.First(); ok {
		return first.A
	}
	return 0
}

// widthDerivative returns slope of lane width at s (0 outside the profile)
func (lane *Lane) widthDerivative(s float64) float64 {
	if rec, ok := lane.width.FindAt(s); ok {
		return rec.Derivative(s)
	}
	return 0
}

// AddWidthRecord inserts width polynomial. A record with an equal breakpoint is overwritten.
// The center lane keeps its zero width
func (lane *Lane) AddWidthRecord(poly Polynomial) error {
	if lane.side == SIDE_CENTER {
		return errors.Wrap(ErrCenterLane, "Can't add width record")
	}
	lane.width.Insert(&poly)
	return nil
}

// RemoveWidthRecord removes width record governing s. Returns false if there is none
func (lane *Lane) RemoveWidthRecord(s float64) bool {
	if lane.side == SIDE_CENTER {
		return false
	}
	rec, ok := lane.width.FindAt(s)
	if !ok {
		return false
	}
	return lane.width.Remove(rec)
}

// WidthRecords returns copies of width records in breakpoint order
func (lane *Lane) WidthRecords() []Polynomial {
	out := make([]Polynomial, lane.width.Len())
	for i := range out {
		out[i] = *lane.width.At(i)
	}
	return out
}

/* Height */

// Height returns inner/outer lift at local s or zero sample before the first record
func (lane *Lane) Height(s float64) HeightSample {
	if rec, ok := lane.height.FindAt(s); ok {
		return HeightSample{Inner: rec.Inner, Outer: rec.Outer}
	}
	return HeightSample{}
}

// AddHeightRecord inserts height record. Not allowed for the center lane
func (lane *Lane) AddHeightRecord(rec HeightRecord) error {
	if lane.side == SIDE_CENTER {
		return errors.Wrap(ErrCenterLane, "Can't add height record")
	}
	lane.height.Insert(&rec)
	return nil
}

// RemoveHeightRecord removes height record governing s
func (lane *Lane) RemoveHeightRecord(s float64) bool {
	rec, ok := lane.height.FindAt(s)
	if !ok {
		return false
	}
	return lane.height.Remove(rec)
}

// HeightRecords returns copies of height records in breakpoint order
func (lane *Lane) HeightRecords() []HeightRecord {
	out := make([]HeightRecord, lane.height.Len())
	for i := range out {
		out[i] = *lane.height.At(i)
	}
	return out
}

/* Road marks */

// RoadMarkAt returns road mark governing s or a "none" mark when the lane has no mark there
func (lane *Lane) RoadMarkAt(s float64) RoadMark {
	if mark, ok := lane.roadMarks.FindAt(s); ok {
		return *mark
	}
	return noRoadMark(s)
}

// AddRoadMark inserts road mark. Zero width is replaced by DefaultRoadMarkWidth
func (lane *Lane) AddRoadMark(mark RoadMark) {
	if mark.Width <= 0 {
		mark.Width = DefaultRoadMarkWidth
	}
	lane.roadMarks.Insert(&mark)
}

// RemoveRoadMark removes road mark governing s
func (lane *Lane) RemoveRoadMark(s float64) bool {
	mark, ok := lane.roadMarks.FindAt(s)
	if !ok {
		return false
	}
	return lane.roadMarks.Remove(mark)
}

// RoadMarks returns copies of road marks in breakpoint order
func (lane *Lane) RoadMarks() []RoadMark {
	out := make([]RoadMark, lane.roadMarks.Len())
	for i := range out {
		out[i] = *lane.roadMarks.At(i)
	}
	return out
}

/* Links */

// Predecessor returns weak reference to the preceding lane
func (lane *Lane) Predecessor() (LaneHandle, bool) {
	return lane.predecessor, !lane.predecessor.IsZero()
}

// Successor returns weak reference to the following lane
func (lane *Lane) Successor() (LaneHandle, bool) {
	return lane.successor, !lane.successor.IsZero()
}

// SetPredecessor links the lane to the lane preceding it. Links between lanes of
// different types, links involving the center lane and links to detached lanes are
// silently ignored; the return value tells whether the link was made
func (lane *Lane) SetPredecessor(other *Lane) bool {
	if ValidateLink(lane, other) != nil {
		return false
	}
	lane.predecessor = other.Handle()
	return true
}

// SetSuccessor links the lane to the lane following it. Same rules as SetPredecessor
func (lane *Lane) SetSuccessor(other *Lane) bool {
	if ValidateLink(lane, other) != nil {
		return false
	}
	lane.successor = other.Handle()
	return true
}

// ClearPredecessor drops predecessor link
func (lane *Lane) ClearPredecessor() {
	lane.predecessor = LaneHandle{}
}

// ClearSuccessor drops successor link
func (lane *Lane) ClearSuccessor() {
	lane.successor = LaneHandle{}
}

// ValidateLink returns ErrInvalidLinkage if two lanes can't be linked with each other
func ValidateLink(lane, other *Lane) error {
	if lane == nil || other == nil {
		return errors.Wrap(ErrInvalidLinkage, "nil lane")
	}
	if lane.side == SIDE_CENTER || other.side == SIDE_CENTER {
		return errors.Wrap(ErrInvalidLinkage, "center lane can't be linked")
	}
	if lane.laneType != other.laneType {
		return errors.Wrapf(ErrInvalidLinkage, "lane types differ: %s vs %s", lane.laneType, other.laneType)
	}
	if other.section == nil {
		return errors.Wrap(ErrInvalidLinkage, "target lane is detached")
	}
	return nil
}

/* Copies */

// Clone deep-copies the lane: same id, side, type and level, every profile entry copied.
// Links and ownership are not copied
func (lane *Lane) Clone() *Lane {
	return &Lane{
		id:        lane.id,
		side:      lane.side,
		laneType:  lane.laneType,
		level:     lane.level,
		direction: lane.direction,
		width:     lane.width.Clone(),
		height:    lane.height.Clone(),
		roadMarks: lane.roadMarks.Clone(),
	}
}

// CloneAtS copies the lane keeping only values governing s, re-based to local s=0.
// Used when a lane section is split so the new section does not inherit unrelated breakpoints
func (lane *Lane) CloneAtS(s float64) *Lane {
	cp := &Lane{
		id:        lane.id,
		side:      lane.side,
		laneType:  lane.laneType,
		level:     lane.level,
		direction: lane.direction,
	}
	if rec, ok := lane.width.FindAt(s); ok {
		rebased := rec.Rebase(s, 0)
		cp.width.Insert(&rebased)
	} else if lane.width.Len() > 0 {
		cp.width.Insert(&Polynomial{A: lane.Width(s)})
	}
	if rec, ok := lane.height.FindAt(s); ok {
		cp.height.Insert(&HeightRecord{Inner: rec.Inner, Outer: rec.Outer})
	}
	if mark, ok := lane.roadMarks.FindAt(s); ok {
		markCopy := mark.copy()
		markCopy.S = 0
		cp.roadMarks.Insert(markCopy)
	}
	return cp
}
