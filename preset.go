package lanegeom

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

const (
	DefaultSidewalkWidth  = 2.0
	DefaultSidewalkHeight = 0.15
	DefaultCyclewayWidth  = 1.5
)

var (
	numberRegExp = regexp.MustCompile(`\d+\.?\d*`)
)

// SectionPreset is a cross-section template derived from OSM way tags
type SectionPreset struct {
	Highway       HighwayType
	LanesForward  int
	LanesBackward int
	LaneType      LaneType
	LaneWidth     float64
	Oneway        bool

	SidewalkLeft   bool
	SidewalkRight  bool
	SidewalkWidth  float64
	SidewalkHeight float64

	CyclewayLeft  bool
	CyclewayRight bool
	CyclewayWidth float64

	// Warnings collects tag values which could not be understood
	Warnings []string
}

// String returns pretty printed value for SectionPreset
func (preset SectionPreset) String() string {
	return fmt.Sprintf("highway=%s forward=%d backward=%d width=%f oneway=%t sidewalks=%t/%t cycleways=%t/%t",
		preset.Highway, preset.LanesForward, preset.LanesBackward, preset.LaneWidth, preset.Oneway,
		preset.SidewalkLeft, preset.SidewalkRight, preset.CyclewayLeft, preset.CyclewayRight)
}

// PresetFromTags reads `highway`, `oneway`, `junction`, `lanes`, `lanes:forward`, `lanes:backward`,
// `width`, `sidewalk` and `cycleway` tags. Missing values come from defaults of the highway type
func PresetFromTags(tags osm.Tags) SectionPreset {
	highway := getHighwayType(tags.Find("highway"))
	defaults := defaultsByHighway[highway]
	preset := SectionPreset{
		Highway:        highway,
		LaneType:       defaults.laneType,
		LaneWidth:      defaults.laneWidth,
		Oneway:         defaults.oneway,
		SidewalkLeft:   defaults.sidewalks,
		SidewalkRight:  defaults.sidewalks,
		SidewalkWidth:  DefaultSidewalkWidth,
		SidewalkHeight: DefaultSidewalkHeight,
		CyclewayWidth:  DefaultCyclewayWidth,
	}

	reversed := false
	onewayText := tags.Find("oneway")
	if onewayText != "" {
		if onewayText == "yes" || onewayText == "1" || onewayText == "true" {
			preset.Oneway = true
		} else if onewayText == "no" || onewayText == "0" || onewayText == "false" {
			preset.Oneway = false
		} else if onewayText == "-1" {
			preset.Oneway = true
			reversed = true
		} else if _, found := onewayReversible[onewayText]; found {
			preset.Oneway = false
		} else {
			preset.Warnings = append(preset.Warnings, fmt.Sprintf("Unhandled `oneway` tag value: '%s'", onewayText))
		}
	} else if _, ok := junctionTypes[tags.Find("junction")]; ok {
		preset.Oneway = true
	}

	lanes := preset.intTag(tags, "lanes")
	lanesForward := preset.intTag(tags, "lanes:forward")
	lanesBackward := preset.intTag(tags, "lanes:backward")
	if lanes <= 0 {
		lanes = defaults.lanes
		if preset.Oneway {
			lanes = (defaults.lanes + 1) / 2
		}
	}
	switch {
	case preset.Oneway:
		preset.LanesForward = lanes
	case lanesForward > 0 && lanesBackward > 0:
		preset.LanesForward, preset.LanesBackward = lanesForward, lanesBackward
	case lanesForward > 0:
		preset.LanesForward = lanesForward
		preset.LanesBackward = maxInt(lanes-lanesForward, 1)
	case lanesBackward > 0:
		preset.LanesBackward = lanesBackward
		preset.LanesForward = maxInt(lanes-lanesBackward, 1)
	default:
		preset.LanesForward = (lanes + 1) / 2
		preset.LanesBackward = lanes - preset.LanesForward
	}
	if reversed {
		preset.LanesForward, preset.LanesBackward = preset.LanesBackward, preset.LanesForward
	}

	if width := preset.floatTag(tags, "width"); width > 0 && preset.LanesForward+preset.LanesBackward > 0 {
		preset.LaneWidth = width / float64(preset.LanesForward+preset.LanesBackward)
	}

	switch tags.Find("sidewalk") {
	case "both", "yes":
		preset.SidewalkLeft, preset.SidewalkRight = true, true
	case "left":
		preset.SidewalkLeft, preset.SidewalkRight = true, false
	case "right":
		preset.SidewalkLeft, preset.SidewalkRight = false, true
	case "no", "none", "separate":
		preset.SidewalkLeft, preset.SidewalkRight = false, false
	case "":
	default:
		preset.Warnings = append(preset.Warnings, fmt.Sprintf("Unhandled `sidewalk` tag value: '%s'", tags.Find("sidewalk")))
	}

	switch tags.Find("cycleway") {
	case "lane", "track":
		preset.CyclewayLeft, preset.CyclewayRight = !preset.Oneway, true
	}
	if tags.Find("cycleway:left") == "lane" {
		preset.CyclewayLeft = true
	}
	if tags.Find("cycleway:right") == "lane" {
		preset.CyclewayRight = true
	}
	if tags.Find("cycleway:both") == "lane" {
		preset.CyclewayLeft, preset.CyclewayRight = true, true
	}
	return preset
}

func (preset *SectionPreset) intTag(tags osm.Tags, key string) int {
	text := tags.Find(key)
	if text == "" {
		return -1
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		preset.Warnings = append(preset.Warnings, fmt.Sprintf("Provided `%s` tag value should be an integer. Got '%s'", key, text))
		return -1
	}
	return value
}

func (preset *SectionPreset) floatTag(tags osm.Tags, key string) float64 {
	text := numberRegExp.FindString(tags.Find(key))
	if text == "" {
		return -1
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		preset.Warnings = append(preset.Warnings, fmt.Sprintf("Provided `%s` tag value should be a number. Got '%s'", key, tags.Find(key)))
		return -1
	}
	return value
}

// Apply creates lanes of the preset in an empty lane section: driving lanes closest to the
// center, then cycle lanes, then raised sidewalks. Forward lanes go to the right side for
// right-hand traffic and to the left side for left-hand traffic
func (preset SectionPreset) Apply(section *LaneSection) error {
	if section.LanesCount() > 1 {
		return errors.Errorf("Lane section %d already has lanes", section.id)
	}
	rightCount, leftCount := preset.LanesForward, preset.LanesBackward
	rightSidewalk, leftSidewalk := preset.SidewalkRight, preset.SidewalkLeft
	rightCycle, leftCycle := preset.CyclewayRight, preset.CyclewayLeft
	if section.rule == TRAFFIC_LHT {
		rightCount, leftCount = leftCount, rightCount
	}

	if preset.LanesForward > 0 && preset.LanesBackward > 0 {
		section.CenterLane().AddRoadMark(NewRoadMark(0, ROADMARK_SOLID))
	}
	if err := preset.applySide(section, SIDE_RIGHT, rightCount, rightCycle, rightSidewalk); err != nil {
		return errors.Wrap(err, "Can't prepare right side")
	}
	if err := preset.applySide(section, SIDE_LEFT, leftCount, leftCycle, leftSidewalk); err != nil {
		return errors.Wrap(err, "Can't prepare left side")
	}
	return nil
}

func (preset SectionPreset) applySide(section *LaneSection, side LaneSide, count int, cycleway, sidewalk bool) error {
	sign := int32(1)
	if side == SIDE_RIGHT {
		sign = -1
	}
	id := int32(0)
	for i := 0; i < count; i++ {
		id++
		lane, err := section.CreateLane(id*sign, preset.LaneType)
		if err != nil {
			return err
		}
		if err := lane.AddWidthRecord(ConstantPolynomial(0, preset.LaneWidth)); err != nil {
			return err
		}
		markType := ROADMARK_BROKEN
		if i == count-1 {
			markType = ROADMARK_SOLID
		}
		lane.AddRoadMark(RoadMark{Type: markType, Color: COLOR_WHITE})
	}
	if cycleway {
		id++
		lane, err := section.CreateLane(id*sign, LANE_BIKING)
		if err != nil {
			return err
		}
		if err := lane.AddWidthRecord(ConstantPolynomial(0, preset.CyclewayWidth)); err != nil {
			return err
		}
		lane.AddRoadMark(RoadMark{Type: ROADMARK_SOLID, Color: COLOR_WHITE})
	}
	if sidewalk {
		id++
		lane, err := section.CreateLane(id*sign, LANE_SIDEWALK)
		if err != nil {
			return err
		}
		if err := lane.AddWidthRecord(ConstantPolynomial(0, preset.SidewalkWidth)); err != nil {
			return err
		}
		if err := lane.AddHeightRecord(HeightRecord{Inner: preset.SidewalkHeight, Outer: preset.SidewalkHeight}); err != nil {
			return err
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
