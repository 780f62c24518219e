package lanegeom

type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_CYCLEWAY
	HIGHWAY_FOOTWAY
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_UNDEFINED = HighwayType(0)
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"undefined", "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "living_street", "service", "cycleway", "footway", "unclassified"}[iotaIdx]
}

func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return HIGHWAY_UNDEFINED
}

// highwayDefaults is the cross-section used when OSM tags don't say otherwise
type highwayDefaults struct {
	lanes     int // both directions together
	laneWidth float64
	laneType  LaneType
	oneway    bool
	sidewalks bool
}

var (
	defaultsByHighway = map[HighwayType]highwayDefaults{
		HIGHWAY_MOTORWAY:       {lanes: 4, laneWidth: 3.75, laneType: LANE_DRIVING},
		HIGHWAY_MOTORWAY_LINK:  {lanes: 1, laneWidth: 3.75, laneType: LANE_DRIVING, oneway: true},
		HIGHWAY_TRUNK:          {lanes: 3, laneWidth: 3.5, laneType: LANE_DRIVING},
		HIGHWAY_TRUNK_LINK:     {lanes: 1, laneWidth: 3.5, laneType: LANE_DRIVING, oneway: true},
		HIGHWAY_PRIMARY:        {lanes: 3, laneWidth: 3.5, laneType: LANE_DRIVING, sidewalks: true},
		HIGHWAY_PRIMARY_LINK:   {lanes: 1, laneWidth: 3.5, laneType: LANE_DRIVING, oneway: true},
		HIGHWAY_SECONDARY:      {lanes: 2, laneWidth: 3.25, laneType: LANE_DRIVING, sidewalks: true},
		HIGHWAY_SECONDARY_LINK: {lanes: 1, laneWidth: 3.25, laneType: LANE_DRIVING, oneway: true},
		HIGHWAY_TERTIARY:       {lanes: 2, laneWidth: 3.0, laneType: LANE_DRIVING, sidewalks: true},
		HIGHWAY_TERTIARY_LINK:  {lanes: 1, laneWidth: 3.0, laneType: LANE_DRIVING, oneway: true},
		HIGHWAY_RESIDENTIAL:    {lanes: 2, laneWidth: 3.0, laneType: LANE_DRIVING, sidewalks: true},
		HIGHWAY_LIVING_STREET:  {lanes: 2, laneWidth: 2.75, laneType: LANE_DRIVING},
		HIGHWAY_SERVICE:        {lanes: 2, laneWidth: 2.75, laneType: LANE_DRIVING},
		HIGHWAY_CYCLEWAY:       {lanes: 2, laneWidth: 1.5, laneType: LANE_BIKING},
		HIGHWAY_FOOTWAY:        {lanes: 1, laneWidth: 2.0, laneType: LANE_SIDEWALK, oneway: true},
		HIGHWAY_UNCLASSIFIED:   {lanes: 2, laneWidth: 3.0, laneType: LANE_DRIVING},
		HIGHWAY_UNDEFINED:      {lanes: 2, laneWidth: 3.0, laneType: LANE_DRIVING},
	}

	highwaysTypes = map[string]HighwayType{
		"motorway":       HIGHWAY_MOTORWAY,
		"motorway_link":  HIGHWAY_MOTORWAY_LINK,
		"trunk":          HIGHWAY_TRUNK,
		"trunk_link":     HIGHWAY_TRUNK_LINK,
		"primary":        HIGHWAY_PRIMARY,
		"primary_link":   HIGHWAY_PRIMARY_LINK,
		"secondary":      HIGHWAY_SECONDARY,
		"secondary_link": HIGHWAY_SECONDARY_LINK,
		"tertiary":       HIGHWAY_TERTIARY,
		"tertiary_link":  HIGHWAY_TERTIARY_LINK,
		"residential":    HIGHWAY_RESIDENTIAL,
		"living_street":  HIGHWAY_LIVING_STREET,
		"service":        HIGHWAY_SERVICE,
		"cycleway":       HIGHWAY_CYCLEWAY,
		"footway":        HIGHWAY_FOOTWAY,
		"pedestrian":     HIGHWAY_FOOTWAY,
		"unclassified":   HIGHWAY_UNCLASSIFIED,
	}

	junctionTypes = map[string]struct{}{
		"circular":   {},
		"roundabout": {},
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Tag:oneway%3Dreversible
	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}
)
