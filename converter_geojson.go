package lanegeom

import (
	"github.com/paulmach/orb"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// ExportOutlinesGeoJSON returns GeoJSON FeatureCollection with one polygon per non-center lane
// and one linestring per section for the lane reference line.
// When geographic is true the planar coordinates are treated as EPSG:3857 and written as lon/lat
// (use it together with NewGeoPolylineResolver)
func ExportOutlinesGeoJSON(network *LaneNetwork, resolver CoordinateResolver, tessellator *Tessellator, geographic bool) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, section := range network.Sections() {
		reference := ReferenceLine(section, resolver, tessellator)
		if geographic {
			reference = lineToGeo(reference)
		}
		referenceFeature := geojson.NewLineStringFeature(lineCoordinates(reference))
		referenceFeature.SetProperty("section_id", section.id)
		referenceFeature.SetProperty("section_uuid", section.uuid.String())
		referenceFeature.SetProperty("kind", "reference_line")
		fc.AddFeature(referenceFeature)
		for _, lane := range section.Lanes() {
			if lane.side == SIDE_CENTER {
				continue
			}
			outline, err := LaneOutline(lane, section, resolver, tessellator)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't export lane %d of section %d", lane.id, section.id)
			}
			if geographic {
				outline = orb.Polygon{ringToGeo(outline[0])}
			}
			feature := geojson.NewPolygonFeature(polygonCoordinates(outline))
			feature.SetProperty("section_id", section.id)
			feature.SetProperty("section_uuid", section.uuid.String())
			feature.SetProperty("kind", "lane")
			feature.SetProperty("lane_id", lane.id)
			feature.SetProperty("side", lane.side.String())
			feature.SetProperty("type", lane.laneType.String())
			feature.SetProperty("direction", lane.direction.String())
			fc.AddFeature(feature)
		}
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal feature collection")
	}
	return b, nil
}

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) string {
	b, err := geojson.NewLineStringGeometry(lineCoordinates(line)).MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

func polygonCoordinates(poly orb.Polygon) [][][]float64 {
	coords := make([][][]float64, len(poly))
	for i, ring := range poly {
		coords[i] = make([][]float64, len(ring))
		for j, pt := range ring {
			coords[i][j] = []float64{pt.X(), pt.Y()}
		}
	}
	return coords
}

func lineCoordinates(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	return pts2d
}
