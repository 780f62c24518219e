package lanegeom

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// LaneOutline returns closed lane border polygon (inner border forward, outer border backward)
// sampled at the tessellator's stations
func LaneOutline(lane *Lane, section *LaneSection, resolver CoordinateResolver, tessellator *Tessellator) (orb.Polygon, error) {
	if err := tessellator.checkLane(lane, section); err != nil {
		return nil, errors.Wrap(err, "Can't prepare outline")
	}
	if lane.side == SIDE_CENTER {
		return nil, errors.Wrap(ErrCenterLane, "Center lane has no outline")
	}
	samples, err := tessellator.sampleLane(lane, section, resolver)
	if err != nil {
		return nil, errors.Wrap(err, "Can't sample lane")
	}
	inner := make(orb.LineString, 0, len(samples))
	outer := make(orb.LineString, 0, len(samples))
	for _, sample := range samples {
		inner = append(inner, sample.inner)
		outer = append(outer, sample.outer)
	}
	ring := make(orb.Ring, 0, 2*len(samples)+1)
	ring = append(ring, inner...)
	ring = append(ring, reverseLine(outer)...)
	ring = append(ring, inner[0])
	return orb.Polygon{ring}, nil
}

// ReferenceLine returns lane reference line (centerline shifted by lane offset) of the section
func ReferenceLine(section *LaneSection, resolver CoordinateResolver, tessellator *Tessellator) orb.LineString {
	stations := tessellator.Stations(section)
	line := make(orb.LineString, 0, len(stations))
	for _, localS := range stations {
		pose := resolver.PositionAt(section.s + localS)
		line = append(line, LateralOffset(pose, section.LaneOffset(localS)))
	}
	return line
}
