package lanegeom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Pose is a point on the road centerline with the tangent heading (radians, counter-clockwise from +X)
type Pose struct {
	X       float64
	Y       float64
	Heading float64
}

// String returns pretty printed value for Pose
func (pose Pose) String() string {
	return fmt.Sprintf("X: %f | Y: %f | Heading: %f", pose.X, pose.Y, pose.Heading)
}

// Point returns position part of the pose
func (pose Pose) Point() orb.Point {
	return orb.Point{pose.X, pose.Y}
}

// CoordinateResolver supplies centerline position and heading for absolute arc-length s.
// Implementations may be backed by lines, arcs, spirals or any composite curve
type CoordinateResolver interface {
	PositionAt(s float64) Pose
}

// LateralOffset shifts pose perpendicular to its heading by signed t (positive is left)
func LateralOffset(pose Pose, t float64) orb.Point {
	side := math.Pi / 2.0
	if t < 0 {
		side = -side
		t = -t
	}
	return orb.Point{
		pose.X + t*math.Cos(pose.Heading+side),
		pose.Y + t*math.Sin(pose.Heading+side),
	}
}

// LineResolver is a straight centerline
type LineResolver struct {
	Start   orb.Point
	Heading float64
}

func (line LineResolver) PositionAt(s float64) Pose {
	return Pose{
		X:       line.Start.X() + s*math.Cos(line.Heading),
		Y:       line.Start.Y() + s*math.Sin(line.Heading),
		Heading: line.Heading,
	}
}

// ArcResolver is a centerline of constant curvature (positive turns left)
type ArcResolver struct {
	Start     orb.Point
	Heading   float64
	Curvature float64
}

func (arc ArcResolver) PositionAt(s float64) Pose {
	if arc.Curvature == 0 {
		return LineResolver{Start: arc.Start, Heading: arc.Heading}.PositionAt(s)
	}
	k := arc.Curvature
	heading := arc.Heading + k*s
	return Pose{
		X:       arc.Start.X() + (math.Sin(heading)-math.Sin(arc.Heading))/k,
		Y:       arc.Start.Y() - (math.Cos(heading)-math.Cos(arc.Heading))/k,
		Heading: normalizeAngle(heading),
	}
}

// PolylineResolver walks a planar polyline. Queries outside [0; Length] are clamped
type PolylineResolver struct {
	line    orb.LineString
	lengths []float64 // cumulative length at every vertex
}

// NewPolylineResolver prepares resolver for a planar line (X/Y in meters)
func NewPolylineResolver(line orb.LineString) (*PolylineResolver, error) {
	if len(line) < 2 {
		return nil, errors.Errorf("Polyline needs at least 2 points, got %d", len(line))
	}
	resolver := &PolylineResolver{
		line:    make(orb.LineString, 0, len(line)),
		lengths: make([]float64, 0, len(line)),
	}
	total := 0.0
	for i, pt := range line {
		if i > 0 {
			segmentLength := planar.Distance(resolver.line[len(resolver.line)-1], pt)
			if segmentLength == 0 {
				// duplicate vertex gives no heading
				continue
			}
			total += segmentLength
		}
		resolver.line = append(resolver.line, pt)
		resolver.lengths = append(resolver.lengths, total)
	}
	if len(resolver.line) < 2 {
		return nil, errors.New("Polyline is degenerate: all points coincide")
	}
	return resolver, nil
}

// NewGeoPolylineResolver prepares resolver for a line in EPSG:4326 (lon/lat) by projecting it to EPSG:3857
func NewGeoPolylineResolver(line orb.LineString) (*PolylineResolver, error) {
	return NewPolylineResolver(lineToEuclidean(line))
}

// Length returns total polyline length
func (resolver *PolylineResolver) Length() float64 {
	return resolver.lengths[len(resolver.lengths)-1]
}

// Line returns the underlying (deduplicated) polyline
func (resolver *PolylineResolver) Line() orb.LineString {
	return resolver.line.Clone()
}

func (resolver *PolylineResolver) PositionAt(s float64) Pose {
	s = math.Max(0, math.Min(s, resolver.Length()))
	i := 1
	for i < len(resolver.lengths)-1 && resolver.lengths[i] < s {
		i++
	}
	p, q := resolver.line[i-1], resolver.line[i]
	segmentLength := resolver.lengths[i] - resolver.lengths[i-1]
	pt := pointOnSegmentByFraction(p, q, (s-resolver.lengths[i-1])/segmentLength)
	return Pose{
		X:       pt.X(),
		Y:       pt.Y(),
		Heading: math.Atan2(q.Y()-p.Y(), q.X()-p.X()),
	}
}
