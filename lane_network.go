package lanegeom

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// CenterLaneTolerance is the lateral band around the reference line which always resolves to the center lane
	CenterLaneTolerance = 0.1
)

// LaneNetwork is the lane model of a single road: ordered lane sections plus a lane offset profile
// which shifts the lane reference line away from the road centerline.
//
// Structural edits (adding, removing or splitting sections, changing road length) are not
// propagated automatically: call RecomputeCoordinates before running geometry queries
type LaneNetwork struct {
	length      float64
	sections    []*LaneSection
	byUUID      map[uuid.UUID]*LaneSection
	laneOffsets Profile[*Polynomial]

	rules            TrafficRuleProvider
	junction         bool
	widthSyncEpsilon float64
	nextSectionID    int32
}

// NewLaneNetwork creates empty lane network for a road of given length
func NewLaneNetwork(length float64, options ...func(*LaneNetwork)) *LaneNetwork {
	network := &LaneNetwork{
		length:           length,
		byUUID:           make(map[uuid.UUID]*LaneSection),
		rules:            staticTrafficRule(TRAFFIC_RHT),
		widthSyncEpsilon: DefaultWidthSyncEpsilon,
	}
	for _, option := range options {
		option(network)
	}
	return network
}

func WithTrafficRule(rule TrafficRule) func(*LaneNetwork) {
	return func(network *LaneNetwork) {
		network.rules = staticTrafficRule(rule)
	}
}

// WithTrafficRuleProvider sets source of the traffic rule. It is consulted when a section is
// attached and on every RecomputeCoordinates call
func WithTrafficRuleProvider(provider TrafficRuleProvider) func(*LaneNetwork) {
	return func(network *LaneNetwork) {
		if provider != nil {
			network.rules = provider
		}
	}
}

// WithJunction marks road as a junction connecting road (tessellated with the finer step)
func WithJunction(junction bool) func(*LaneNetwork) {
	return func(network *LaneNetwork) {
		network.junction = junction
	}
}

func WithWidthSyncEpsilon(eps float64) func(*LaneNetwork) {
	return func(network *LaneNetwork) {
		network.widthSyncEpsilon = eps
	}
}

// String returns pretty printed value for LaneNetwork
func (network *LaneNetwork) String() string {
	return fmt.Sprintf("LaneNetwork length=%f sections=%d rule=%s junction=%t", network.length, len(network.sections), network.TrafficRule(), network.junction)
}

// Length returns road length
func (network *LaneNetwork) Length() float64 {
	return network.length
}

// SetLength changes road length. Call RecomputeCoordinates afterwards
func (network *LaneNetwork) SetLength(length float64) {
	network.length = length
}

// IsJunction tells whether road is a junction connecting road
func (network *LaneNetwork) IsJunction() bool {
	return network.junction
}

// TrafficRule returns current traffic rule of the road
func (network *LaneNetwork) TrafficRule() TrafficRule {
	return network.rules.TrafficRule()
}

// SetTrafficRule replaces traffic rule provider with a fixed rule and re-derives directions of every lane
func (network *LaneNetwork) SetTrafficRule(rule TrafficRule) {
	network.rules = staticTrafficRule(rule)
	for _, section := range network.sections {
		section.setTrafficRule(rule)
	}
}

/* Sections */

// AddSection creates lane section (with the center lane only) starting at absolute s
func (network *LaneNetwork) AddSection(s float64) (*LaneSection, error) {
	if s < 0 || (network.length > 0 && s >= network.length) {
		return nil, errors.Wrapf(ErrInvalidSectionRange, "s=%f is outside of road [0; %f)", s, network.length)
	}
	for _, existing := range network.sections {
		if existing.s == s {
			return nil, errors.Wrapf(ErrDuplicateSection, "s=%f", s)
		}
	}
	section := NewLaneSection(network.nextSectionID, s)
	network.nextSectionID++
	network.attach(section)
	return section, nil
}

func (network *LaneNetwork) attach(section *LaneSection) {
	section.network = network
	section.widthSyncEpsilon = network.widthSyncEpsilon
	section.setTrafficRule(network.TrafficRule())
	network.sections = append(network.sections, section)
	network.byUUID[section.uuid] = section
	network.sortSections()
}

// RemoveSection deletes lane section. Lane handles pointing into it resolve to nothing afterwards
func (network *LaneNetwork) RemoveSection(section *LaneSection) error {
	for i, existing := range network.sections {
		if existing == section {
			network.sections = append(network.sections[:i], network.sections[i+1:]...)
			delete(network.byUUID, section.uuid)
			section.network = nil
			return nil
		}
	}
	return &LaneSectionNotFoundError{S: section.s}
}

// Sections returns lane sections ordered by s
func (network *LaneNetwork) Sections() []*LaneSection {
	out := make([]*LaneSection, len(network.sections))
	copy(out, network.sections)
	return out
}

// SectionsCount returns number of lane sections
func (network *LaneNetwork) SectionsCount() int {
	return len(network.sections)
}

// SectionAt returns lane section governing absolute s: the one with the greatest start <= s
func (network *LaneNetwork) SectionAt(s float64) (*LaneSection, error) {
	idx := sort.Search(len(network.sections), func(i int) bool {
		return network.sections[i].s > s
	})
	if idx == 0 {
		return nil, &LaneSectionNotFoundError{S: s}
	}
	return network.sections[idx-1], nil
}

// SectionByUUID returns lane section by its identity
func (network *LaneNetwork) SectionByUUID(id uuid.UUID) (*LaneSection, bool) {
	section, ok := network.byUUID[id]
	return section, ok
}

// ResolveHandle returns lane referenced by handle or false if the section or the lane is gone
// (a renumbered lane counts as gone for handles taken before renumbering)
func (network *LaneNetwork) ResolveHandle(handle LaneHandle) (*Lane, bool) {
	section, ok := network.byUUID[handle.Section]
	if !ok {
		return nil, false
	}
	return section.ResolveHandle(handle)
}

// Successor resolves successor link of the lane
func (network *LaneNetwork) Successor(lane *Lane) (*Lane, bool) {
	handle, ok := lane.Successor()
	if !ok {
		return nil, false
	}
	return network.ResolveHandle(handle)
}

// Predecessor resolves predecessor link of the lane
func (network *LaneNetwork) Predecessor(lane *Lane) (*Lane, bool) {
	handle, ok := lane.Predecessor()
	if !ok {
		return nil, false
	}
	return network.ResolveHandle(handle)
}

// RecomputeCoordinates sets end of every section to the start of the next one
// (road length for the last section) and re-reads the traffic rule provider, re-deriving
// lane directions when the rule has changed. Must be called after structural edits
func (network *LaneNetwork) RecomputeCoordinates() error {
	if len(network.sections) == 0 {
		return ErrEmptyNetwork
	}
	network.sortSections()
	rule := network.TrafficRule()
	for i, section := range network.sections {
		if section.rule != rule {
			section.setTrafficRule(rule)
		}
		endS := network.length
		if i+1 < len(network.sections) {
			endS = network.sections[i+1].s
		}
		if endS <= section.s {
			return errors.Wrapf(ErrInvalidSectionRange, "section %d: s=%f, endS=%f", section.id, section.s, endS)
		}
		section.endS = endS
	}
	return nil
}

// LinkAll links every pair of consecutive sections (with width synchronization). Returns number of linked lane pairs
func (network *LaneNetwork) LinkAll() int {
	linked := 0
	for i := 1; i < len(network.sections); i++ {
		linked += network.sections[i-1].LinkSuccessor(network.sections[i], CONTACT_START)
	}
	return linked
}

// SplitSection cuts the section governing absolute s in two. The new section starts at s, its
// lanes carry only values governing s (see Lane.CloneAtS), it inherits successor links of
// the original lanes and is linked after the original section. Coordinates are recomputed
func (network *LaneNetwork) SplitSection(s float64) (*LaneSection, error) {
	original, err := network.SectionAt(s)
	if err != nil {
		return nil, errors.Wrap(err, "Can't split section")
	}
	if original.s == s {
		return original, nil
	}
	if s >= network.length {
		return nil, errors.Wrapf(ErrInvalidSectionRange, "can't split at s=%f, road length is %f", s, network.length)
	}
	localS := s - original.s
	split := NewLaneSection(network.nextSectionID, s)
	network.nextSectionID++
	center := original.CenterLane().CloneAtS(localS)
	split.CenterLane().roadMarks = center.roadMarks
	for _, lane := range original.Lanes() {
		if lane.side == SIDE_CENTER {
			continue
		}
		split.attachLane(lane.CloneAtS(localS))
	}
	split.sortLanes()
	network.attach(split)
	if err := network.RecomputeCoordinates(); err != nil {
		return nil, errors.Wrap(err, "Can't recompute coordinates after split")
	}

	// Hand successor links of the original over to the new section
	for _, lane := range original.Lanes() {
		next, ok := network.Successor(lane)
		if !ok {
			continue
		}
		splitLane, err := split.Lane(lane.id)
		if err != nil {
			continue
		}
		splitLane.SetSuccessor(next)
		if handle, _ := next.Predecessor(); handle == lane.Handle() {
			next.SetPredecessor(splitLane)
		}
		lane.ClearSuccessor()
	}
	original.LinkSuccessor(split, CONTACT_START)
	return split, nil
}

func (network *LaneNetwork) sortSections() {
	sort.SliceStable(network.sections, func(i, j int) bool {
		return network.sections[i].s < network.sections[j].s
	})
}

/* Lane offset */

// AddLaneOffset inserts lane offset polynomial (breakpoint in absolute s)
func (network *LaneNetwork) AddLaneOffset(poly Polynomial) {
	network.laneOffsets.Insert(&poly)
}

// RemoveLaneOffset removes lane offset record governing absolute s
func (network *LaneNetwork) RemoveLaneOffset(s float64) bool {
	rec, ok := network.laneOffsets.FindAt(s)
	if !ok {
		return false
	}
	return network.laneOffsets.Remove(rec)
}

// LaneOffsetAt returns lateral shift of the lane reference line at absolute s; 0 before the first record
func (network *LaneNetwork) LaneOffsetAt(s float64) float64 {
	if rec, ok := network.laneOffsets.FindAt(s); ok {
		return rec.Value(s)
	}
	return 0
}

/* Point queries */

// LaneAt returns lane containing point with absolute s and signed lateral offset t.
// Points closer than CenterLaneTolerance to the lane reference line belong to the center lane.
// The second value is false when the point lies beyond the outermost lane
func (network *LaneNetwork) LaneAt(s, t float64) (*Lane, bool, error) {
	section, err := network.SectionAt(s)
	if err != nil {
		return nil, false, err
	}
	localS := s - section.s
	tRef := t - network.LaneOffsetAt(s)
	if math.Abs(tRef) < CenterLaneTolerance {
		return section.CenterLane(), true, nil
	}
	side := SIDE_RIGHT
	if tRef > 0 {
		side = SIDE_LEFT
	}
	dist := math.Abs(tRef)
	start := 0.0
	for _, lane := range section.sideLanes(side) {
		end := start + lane.Width(localS)
		if dist >= start && dist < end {
			return lane, true, nil
		}
		start = end
	}
	return nil, false, nil
}
