package lanegeom

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ExportLanesToCSV writes one ';'-separated row per non-center lane with its outline as WKT
func ExportLanesToCSV(fname string, network *LaneNetwork, resolver CoordinateResolver, tessellator *Tessellator, geographic bool) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"section_id", "section_uuid", "s", "end_s", "lane_id", "side", "lane_type", "direction", "level", "width_start", "width_end", "road_mark", "predecessor", "successor", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, section := range network.Sections() {
		for _, lane := range section.Lanes() {
			if lane.side == SIDE_CENTER {
				continue
			}
			outline, err := LaneOutline(lane, section, resolver, tessellator)
			if err != nil {
				return errors.Wrapf(err, "Can't prepare outline for lane %d of section %d", lane.id, section.id)
			}
			if geographic {
				outline = orb.Polygon{ringToGeo(outline[0])}
			}
			predecessor, successor := "", ""
			if handle, ok := lane.Predecessor(); ok {
				predecessor = handle.String()
			}
			if handle, ok := lane.Successor(); ok {
				successor = handle.String()
			}
			err = writer.Write([]string{
				fmt.Sprintf("%d", section.id),
				section.uuid.String(),
				fmt.Sprintf("%f", section.s),
				fmt.Sprintf("%f", section.endS),
				fmt.Sprintf("%d", lane.id),
				lane.side.String(),
				lane.laneType.String(),
				lane.direction.String(),
				fmt.Sprintf("%t", lane.level),
				fmt.Sprintf("%f", lane.Width(0)),
				fmt.Sprintf("%f", lane.Width(section.Length())),
				lane.RoadMarkAt(0).Type.String(),
				predecessor,
				successor,
				PrepareWKTPolygon(outline),
			})
			if err != nil {
				return errors.Wrap(err, "Can't write lane")
			}
		}
	}
	return nil
}
