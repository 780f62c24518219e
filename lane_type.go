package lanegeom

import "strings"

// LaneType is the usage class of a lane
type LaneType uint16

const (
	LANE_NONE = LaneType(iota)
	LANE_DRIVING
	LANE_STOP
	LANE_SHOULDER
	LANE_BIKING
	LANE_SIDEWALK
	LANE_BORDER
	LANE_RESTRICTED
	LANE_PARKING
	LANE_MEDIAN
	LANE_CURB
	LANE_ENTRY
	LANE_EXIT
	LANE_ON_RAMP
	LANE_OFF_RAMP
	LANE_BIDIRECTIONAL
)

func (iotaIdx LaneType) String() string {
	return [...]string{"none", "driving", "stop", "shoulder", "biking", "sidewalk", "border", "restricted", "parking", "median", "curb", "entry", "exit", "onRamp", "offRamp", "bidirectional"}[iotaIdx]
}

// IsTraffic tells whether lanes of this type carry traffic flow
func (iotaIdx LaneType) IsTraffic() bool {
	_, ok := trafficLaneTypes[iotaIdx]
	return ok
}

// ParseLaneType returns lane type for its textual name (case-insensitive). Unknown names give LANE_NONE
func ParseLaneType(str string) LaneType {
	if found, ok := laneTypesByName[strings.ToLower(str)]; ok {
		return found
	}
	return LANE_NONE
}

var (
	trafficLaneTypes = map[LaneType]struct{}{
		LANE_DRIVING:       {},
		LANE_STOP:          {},
		LANE_BIKING:        {},
		LANE_ENTRY:         {},
		LANE_EXIT:          {},
		LANE_ON_RAMP:       {},
		LANE_OFF_RAMP:      {},
		LANE_BIDIRECTIONAL: {},
	}

	laneTypesByName = map[string]LaneType{
		"none":          LANE_NONE,
		"driving":       LANE_DRIVING,
		"stop":          LANE_STOP,
		"shoulder":      LANE_SHOULDER,
		"biking":        LANE_BIKING,
		"sidewalk":      LANE_SIDEWALK,
		"border":        LANE_BORDER,
		"restricted":    LANE_RESTRICTED,
		"parking":       LANE_PARKING,
		"median":        LANE_MEDIAN,
		"curb":          LANE_CURB,
		"entry":         LANE_ENTRY,
		"exit":          LANE_EXIT,
		"onramp":        LANE_ON_RAMP,
		"offramp":       LANE_OFF_RAMP,
		"bidirectional": LANE_BIDIRECTIONAL,
	}
)
