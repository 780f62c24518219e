package lanegeom

import "strings"

// RoadMarkType is the painted pattern of a road mark
type RoadMarkType uint16

const (
	ROADMARK_NONE = RoadMarkType(iota)
	ROADMARK_SOLID
	ROADMARK_BROKEN
	ROADMARK_SOLID_SOLID
	ROADMARK_SOLID_BROKEN
	ROADMARK_BROKEN_SOLID
	ROADMARK_BROKEN_BROKEN
	ROADMARK_CURB
)

func (iotaIdx RoadMarkType) String() string {
	return [...]string{"none", "solid", "broken", "solid solid", "solid broken", "broken solid", "broken broken", "curb"}[iotaIdx]
}

// ParseRoadMarkType returns road mark type by its name. Unknown names give ROADMARK_NONE
func ParseRoadMarkType(str string) RoadMarkType {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "solid":
		return ROADMARK_SOLID
	case "broken":
		return ROADMARK_BROKEN
	case "solid solid", "solid_solid":
		return ROADMARK_SOLID_SOLID
	case "solid broken", "solid_broken":
		return ROADMARK_SOLID_BROKEN
	case "broken solid", "broken_solid":
		return ROADMARK_BROKEN_SOLID
	case "broken broken", "broken_broken":
		return ROADMARK_BROKEN_BROKEN
	case "curb":
		return ROADMARK_CURB
	default:
		return ROADMARK_NONE
	}
}

// strips returns pattern of every painted line of the mark (inner first); true means dashed
func (iotaIdx RoadMarkType) strips() []bool {
	switch iotaIdx {
	case ROADMARK_SOLID:
		return []bool{false}
	case ROADMARK_BROKEN:
		return []bool{true}
	case ROADMARK_SOLID_SOLID:
		return []bool{false, false}
	case ROADMARK_SOLID_BROKEN:
		return []bool{false, true}
	case ROADMARK_BROKEN_SOLID:
		return []bool{true, false}
	case ROADMARK_BROKEN_BROKEN:
		return []bool{true, true}
	default:
		return nil
	}
}

// RoadMarkColor is a paint color
type RoadMarkColor uint16

const (
	COLOR_STANDARD = RoadMarkColor(iota)
	COLOR_WHITE
	COLOR_YELLOW
	COLOR_BLUE
	COLOR_RED
)

func (iotaIdx RoadMarkColor) String() string {
	return [...]string{"standard", "white", "yellow", "blue", "red"}[iotaIdx]
}

// LaneChange tells which lane changes a road mark permits
type LaneChange uint16

const (
	LANE_CHANGE_BOTH = LaneChange(iota)
	LANE_CHANGE_INCREASE
	LANE_CHANGE_DECREASE
	LANE_CHANGE_NONE
)

func (iotaIdx LaneChange) String() string {
	return [...]string{"both", "increase", "decrease", "none"}[iotaIdx]
}

const (
	DefaultRoadMarkWidth = 0.15
)

// RoadMark describes painting on the outer border of a lane starting at local S
type RoadMark struct {
	S          float64
	Type       RoadMarkType
	Color      RoadMarkColor
	Width      float64
	Height     float64
	LaneChange LaneChange
	Material   string
}

// NewRoadMark returns road mark of given type with default width
func NewRoadMark(s float64, markType RoadMarkType) RoadMark {
	return RoadMark{
		S:     s,
		Type:  markType,
		Color: COLOR_STANDARD,
		Width: DefaultRoadMarkWidth,
	}
}

// noRoadMark is what a lane without road marks reports
func noRoadMark(s float64) RoadMark {
	return RoadMark{S: s, Type: ROADMARK_NONE, LaneChange: LANE_CHANGE_BOTH}
}

func (mark *RoadMark) Start() float64 {
	return mark.S
}

func (mark *RoadMark) overwrite(other *RoadMark) {
	s := mark.S
	*mark = *other
	mark.S = s
}

func (mark *RoadMark) copy() *RoadMark {
	cp := *mark
	return &cp
}

// HeightRecord lifts the inner and outer border of a lane starting at local S (curbs, sidewalks)
type HeightRecord struct {
	S     float64
	Inner float64
	Outer float64
}

// HeightSample is the lane height evaluated at some s
type HeightSample struct {
	Inner float64
	Outer float64
}

func (rec *HeightRecord) Start() float64 {
	return rec.S
}

func (rec *HeightRecord) overwrite(other *HeightRecord) {
	rec.Inner, rec.Outer = other.Inner, other.Outer
}

func (rec *HeightRecord) copy() *HeightRecord {
	cp := *rec
	return &cp
}
