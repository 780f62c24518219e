package lanegeom

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// DefaultWidthSyncEpsilon is the largest width mismatch tolerated between linked lanes
	DefaultWidthSyncEpsilon = 1e-5
)

type laneKey int

// LaneSection is a longitudinal slice of a road with a fixed lane set.
// Lanes live in an arena indexed by a stable key; the id -> key index is rebuilt
// after every renumbering so lane ids can change without moving lanes around
type LaneSection struct {
	uuid uuid.UUID
	id   int32
	s    float64
	endS float64

	arena []*Lane
	index map[int32]laneKey
	order []laneKey // iteration order, descending by lane id after sorted edits

	rule             TrafficRule
	widthSyncEpsilon float64
	network          *LaneNetwork
}

// NewLaneSection creates standalone lane section starting at absolute s with the center lane only.
// Sections which belong to a road should be created with LaneNetwork.AddSection
func NewLaneSection(id int32, s float64) *LaneSection {
	section := &LaneSection{
		uuid:             uuid.New(),
		id:               id,
		s:                s,
		endS:             s,
		index:            make(map[int32]laneKey),
		rule:             TRAFFIC_RHT,
		widthSyncEpsilon: DefaultWidthSyncEpsilon,
	}
	center := NewLane(0, LANE_NONE)
	center.section = section
	section.arena = append(section.arena, center)
	section.order = []laneKey{0}
	section.rebuildIndex()
	return section
}

// String returns pretty printed value for LaneSection
func (section *LaneSection) String() string {
	return fmt.Sprintf("LaneSection %d [%f; %f) lanes: %v", section.id, section.s, section.endS, section.LaneIDs())
}

// UUID returns stable identity of the section, used by lane handles
func (section *LaneSection) UUID() uuid.UUID {
	return section.uuid
}

func (section *LaneSection) ID() int32 {
	return section.id
}

// S returns absolute start of the section
func (section *LaneSection) S() float64 {
	return section.s
}

// EndS returns absolute end of the section as of the last LaneNetwork.RecomputeCoordinates call
func (section *LaneSection) EndS() float64 {
	return section.endS
}

// Length returns EndS - S
func (section *LaneSection) Length() float64 {
	return section.endS - section.s
}

// SetEndS sets absolute end of a standalone section. Sections owned by a network get it from RecomputeCoordinates
func (section *LaneSection) SetEndS(endS float64) error {
	if endS <= section.s {
		return errors.Wrapf(ErrInvalidSectionRange, "s=%f, endS=%f", section.s, endS)
	}
	section.endS = endS
	return nil
}

// Network returns owning lane network or nil for standalone sections
func (section *LaneSection) Network() *LaneNetwork {
	return section.network
}

// TrafficRule returns traffic rule used for lane direction derivation
func (section *LaneSection) TrafficRule() TrafficRule {
	return section.rule
}

func (section *LaneSection) setTrafficRule(rule TrafficRule) {
	section.rule = rule
	for _, lane := range section.arena {
		if lane != nil {
			lane.deriveDirection(rule)
		}
	}
}

// LaneOffset returns lateral shift of the reference line at section-local s
func (section *LaneSection) LaneOffset(localS float64) float64 {
	if section.network == nil {
		return 0
	}
	return section.network.LaneOffsetAt(section.s + localS)
}

/* Lane lookup */

// Lane returns lane by id
func (section *LaneSection) Lane(id int32) (*Lane, error) {
	key, ok := section.index[id]
	if !ok {
		return nil, &LaneNotFoundError{ID: id}
	}
	return section.arena[key], nil
}

// ResolveHandle returns lane referenced by handle. False when the handle points into another
// section or the lane it was taken from has been renumbered or removed since
func (section *LaneSection) ResolveHandle(handle LaneHandle) (*Lane, bool) {
	if handle.Section != section.uuid {
		return nil, false
	}
	key, ok := section.index[handle.LaneID]
	if !ok || key != handle.key {
		return nil, false
	}
	return section.arena[key], true
}

// HasLane tells whether lane with given id exists
func (section *LaneSection) HasLane(id int32) bool {
	_, ok := section.index[id]
	return ok
}

// CenterLane returns lane with id 0
func (section *LaneSection) CenterLane() *Lane {
	return section.arena[section.index[0]]
}

// Lanes returns all lanes ordered by id descending (left lanes first)
func (section *LaneSection) Lanes() []*Lane {
	out := make([]*Lane, 0, len(section.order))
	for _, key := range section.order {
		out = append(out, section.arena[key])
	}
	return out
}

// LaneIDs returns ids of all lanes in descending order
func (section *LaneSection) LaneIDs() []int32 {
	out := make([]int32, 0, len(section.order))
	for _, key := range section.order {
		out = append(out, section.arena[key].id)
	}
	return out
}

// LanesCount returns number of lanes including the center one
func (section *LaneSection) LanesCount() int {
	return len(section.order)
}

// LeftLanes returns left lanes ordered from the center outward
func (section *LaneSection) LeftLanes() []*Lane {
	return section.sideLanes(SIDE_LEFT)
}

// RightLanes returns right lanes ordered from the center outward
func (section *LaneSection) RightLanes() []*Lane {
	return section.sideLanes(SIDE_RIGHT)
}

// sideLanes returns lanes of one side closest to the center first. Ordered by |id| on every
// call, so it does not depend on whether the iteration order was sorted after the last edit
func (section *LaneSection) sideLanes(side LaneSide) []*Lane {
	lanes := []*Lane{}
	for _, lane := range section.arena {
		if lane != nil && lane.side == side {
			lanes = append(lanes, lane)
		}
	}
	sort.Slice(lanes, func(i, j int) bool {
		return abs32(lanes[i].id) < abs32(lanes[j].id)
	})
	return lanes
}

/* Widths */

// WidthUpTo returns cumulative lateral distance from the reference line to the given edge of
// lane at section-local s: EDGE_START is the inner border, EDGE_END the outer one and
// EDGE_CENTER the middle of the lane. The center lane always gives 0
func (section *LaneSection) WidthUpTo(lane *Lane, s float64, edge LaneEdge) (float64, error) {
	if lane.side == SIDE_CENTER {
		return 0, nil
	}
	accumulated := 0.0
	for _, current := range section.sideLanes(lane.side) {
		if current == lane {
			switch edge {
			case EDGE_START:
				return accumulated, nil
			case EDGE_CENTER:
				return accumulated + current.Width(s)/2.0, nil
			default:
				return accumulated + current.Width(s), nil
			}
		}
		accumulated += current.Width(s)
	}
	return 0, &LaneNotFoundError{ID: lane.id}
}

// TotalWidth returns width of all lanes on one side at section-local s
func (section *LaneSection) TotalWidth(side LaneSide, s float64) float64 {
	total := 0.0
	for _, lane := range section.sideLanes(side) {
		total += lane.Width(s)
	}
	return total
}

/* Structural edits */

// CreateLane creates lane with given id and type and inserts it with renumbering (see AddLane)
func (section *LaneSection) CreateLane(id int32, laneType LaneType) (*Lane, error) {
	if id == 0 {
		return nil, errors.Wrap(ErrCenterLane, "Can't create lane")
	}
	lane := NewLane(id, laneType)
	err := section.AddLane(lane, true)
	if err != nil {
		return nil, err
	}
	return lane, nil
}

// AddLane inserts lane at its id. Every lane on the same side which is at least as far
// from the center as the new lane is shifted one step outward first, so ids stay unique
// and a gap in front of outer lanes is kept (-1, -3 plus -2 gives -1, -2, -4).
// When sortLanes is false only the iteration order of Lanes and LaneIDs is left as is until the
// next sorted edit; width and point queries always walk lanes outward from the center
func (section *LaneSection) AddLane(lane *Lane, sortLanes bool) error {
	if err := section.checkAttachable(lane); err != nil {
		return err
	}
	section.shiftOutward(lane.id)
	section.attachLane(lane)
	if sortLanes {
		section.sortLanes()
	}
	return nil
}

func (section *LaneSection) checkAttachable(lane *Lane) error {
	if lane.side == SIDE_CENTER {
		return errors.Wrap(ErrCenterLane, "Can't add lane")
	}
	if lane.section != nil {
		return errors.Errorf("Lane %d already belongs to section %s", lane.id, lane.section.uuid)
	}
	return nil
}

// attachLane stores lane without renumbering. Caller guarantees the id is free
func (section *LaneSection) attachLane(lane *Lane) {
	lane.section = section
	lane.key = laneKey(len(section.arena))
	lane.deriveDirection(section.rule)
	section.arena = append(section.arena, lane)
	section.order = append(section.order, lane.key)
	section.rebuildIndex()
}

// RemoveLane deletes lane from section. Same side lanes farther from the center move one step inward
func (section *LaneSection) RemoveLane(lane *Lane) error {
	if lane.side == SIDE_CENTER {
		return errors.Wrap(ErrCenterLane, "Can't remove lane")
	}
	key, ok := section.index[lane.id]
	if !ok || section.arena[key] != lane {
		return &LaneNotFoundError{ID: lane.id}
	}
	section.arena[key] = nil
	for i, orderKey := range section.order {
		if orderKey == key {
			section.order = append(section.order[:i], section.order[i+1:]...)
			break
		}
	}
	section.shiftInward(lane.id)
	lane.section = nil
	section.rebuildIndex()
	section.sortLanes()
	return nil
}

// shiftOutward moves every lane of id's side with |lane id| >= |id| one step away from the center
func (section *LaneSection) shiftOutward(id int32) {
	for _, lane := range section.arena {
		if lane == nil || lane.side != sideForID(id) {
			continue
		}
		if abs32(lane.id) >= abs32(id) {
			lane.id += sign32(id)
		}
	}
}

// shiftInward moves every lane of id's side with |lane id| > |id| one step toward the center
func (section *LaneSection) shiftInward(id int32) {
	for _, lane := range section.arena {
		if lane == nil || lane.side != sideForID(id) {
			continue
		}
		if abs32(lane.id) > abs32(id) {
			lane.id -= sign32(id)
		}
	}
}

func (section *LaneSection) rebuildIndex() {
	section.index = make(map[int32]laneKey, len(section.arena))
	for key, lane := range section.arena {
		if lane != nil {
			section.index[lane.id] = laneKey(key)
		}
	}
}

// sortLanes orders lanes descending by id. Ids are not touched
func (section *LaneSection) sortLanes() {
	sort.SliceStable(section.order, func(i, j int) bool {
		return section.arena[section.order[i]].id > section.arena[section.order[j]].id
	})
}

/* Linking */

// LinkSuccessor links lanes of this section with lanes of the next one. Lanes are paired by
// id * sign(contact): with CONTACT_START ids match, with CONTACT_END (the next section is
// traversed backwards) they are mirrored. After linking, widths of the next section's lanes at
// the shared boundary are corrected to match this section. Returns number of linked pairs
func (section *LaneSection) LinkSuccessor(next *LaneSection, contact ContactPoint) int {
	sign := int32(1)
	otherBoundary := 0.0
	if contact == CONTACT_END {
		sign = -1
		otherBoundary = next.Length()
	}
	linked := 0
	for _, lane := range section.Lanes() {
		if lane.side == SIDE_CENTER {
			continue
		}
		other, err := next.Lane(lane.id * sign)
		if err != nil {
			continue
		}
		if !lane.SetSuccessor(other) {
			continue
		}
		if contact == CONTACT_END {
			other.SetSuccessor(lane)
		} else {
			other.SetPredecessor(lane)
		}
		next.syncWidth(other, otherBoundary, lane.Width(section.Length()))
		linked++
	}
	return linked
}

// LinkPredecessor links lanes of this section with lanes of the previous one.
// CONTACT_END is the natural contact (previous section ends where this one starts).
// Widths of this section's lanes at s=0 are corrected to match the previous section
func (section *LaneSection) LinkPredecessor(prev *LaneSection, contact ContactPoint) int {
	sign := int32(1)
	otherBoundary := prev.Length()
	if contact == CONTACT_START {
		sign = -1
		otherBoundary = 0
	}
	linked := 0
	for _, lane := range section.Lanes() {
		if lane.side == SIDE_CENTER {
			continue
		}
		other, err := prev.Lane(lane.id * sign)
		if err != nil {
			continue
		}
		if !lane.SetPredecessor(other) {
			continue
		}
		if contact == CONTACT_START {
			other.SetPredecessor(lane)
		} else {
			other.SetSuccessor(lane)
		}
		section.syncWidth(lane, 0, other.Width(otherBoundary))
		linked++
	}
	return linked
}

// syncWidth makes lane width at boundary (0 or section length) equal to value if they differ by more
// than the width sync epsilon. At s=0 a corrective record is put at the boundary and blended
// into the next breakpoint; at the section end the governing record is refitted
func (section *LaneSection) syncWidth(lane *Lane, boundary, value float64) {
	if math.Abs(lane.Width(boundary)-value) <= section.widthSyncEpsilon {
		return
	}
	length := section.Length()
	if boundary <= 0 || length <= 0 {
		s1, v1, d1 := length, lane.Width(length), lane.widthDerivative(length)
		for i := 0; i < lane.width.Len(); i++ {
			rec := lane.width.At(i)
			if rec.S > 0 {
				s1, v1, d1 = rec.S, rec.Value(rec.S), rec.Derivative(rec.S)
				break
			}
		}
		corrective := Hermite(0, value, lane.widthDerivative(0), s1, v1, d1)
		if s1 <= 0 {
			corrective = ConstantPolynomial(0, value)
		}
		lane.width.Insert(&corrective)
		return
	}
	rec, ok := lane.width.FindAt(boundary)
	switch {
	case !ok:
		lane.width.Insert(&Polynomial{A: value})
	case rec.S >= boundary:
		rec.overwrite(&Polynomial{A: value})
	default:
		refit := Hermite(rec.S, rec.Value(rec.S), rec.Derivative(rec.S), boundary, value, rec.Derivative(boundary))
		rec.overwrite(&refit)
	}
}

// Clone deep-copies the section with a fresh UUID. Lanes are cloned without links
func (section *LaneSection) Clone() *LaneSection {
	cp := NewLaneSection(section.id, section.s)
	cp.endS = section.endS
	cp.rule = section.rule
	cp.widthSyncEpsilon = section.widthSyncEpsilon
	for _, lane := range section.Lanes() {
		if lane.side == SIDE_CENTER {
			center := cp.CenterLane()
			center.roadMarks = lane.roadMarks.Clone()
			continue
		}
		cp.attachLane(lane.Clone())
	}
	cp.sortLanes()
	return cp
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign32(v int32) int32 {
	if v < 0 {
		return -1
	}
	return 1
}
