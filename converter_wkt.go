package lanegeom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// PrepareWKTPolygon returns WKT representation of Polygon
func PrepareWKTPolygon(poly orb.Polygon) string {
	return wkt.MarshalString(poly)
}

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(line orb.LineString) string {
	return wkt.MarshalString(line)
}

// ParseWKTLinestring parses centerline given as WKT LINESTRING
func ParseWKTLinestring(str string) (orb.LineString, error) {
	line, err := wkt.UnmarshalLineString(str)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse WKT linestring")
	}
	return line, nil
}
