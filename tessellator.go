package lanegeom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultStep         = 1.0
	DefaultJunctionStep = 0.25
	// DefaultClosingEpsilon is how far before the section end the closing sample is taken.
	// It is a length and has nothing to do with DefaultWidthSyncEpsilon
	DefaultClosingEpsilon = 1e-3
	DefaultRoadMarkLift   = 0.005
	DefaultDashLength     = 3.0
	DefaultGapLength      = 6.0
)

// Tessellator samples lanes of a lane section along a centerline and emits mesh buffers
type Tessellator struct {
	step           float64
	junctionStep   float64
	closingEpsilon float64
	roadMarkLift   float64
	dashLength     float64
	gapLength      float64
}

// NewTessellator returns tessellator with default sampling parameters overridden by options
func NewTessellator(options ...func(*Tessellator)) *Tessellator {
	tessellator := &Tessellator{
		step:           DefaultStep,
		junctionStep:   DefaultJunctionStep,
		closingEpsilon: DefaultClosingEpsilon,
		roadMarkLift:   DefaultRoadMarkLift,
		dashLength:     DefaultDashLength,
		gapLength:      DefaultGapLength,
	}
	for _, option := range options {
		option(tessellator)
	}
	return tessellator
}

// WithStep sets sampling step for plain roads
func WithStep(step float64) func(*Tessellator) {
	return func(tessellator *Tessellator) {
		if step > 0 {
			tessellator.step = step
		}
	}
}

// WithJunctionStep sets sampling step for junction connecting roads
func WithJunctionStep(step float64) func(*Tessellator) {
	return func(tessellator *Tessellator) {
		if step > 0 {
			tessellator.junctionStep = step
		}
	}
}

func WithClosingEpsilon(eps float64) func(*Tessellator) {
	return func(tessellator *Tessellator) {
		if eps >= 0 {
			tessellator.closingEpsilon = eps
		}
	}
}

// WithRoadMarkLift sets how high above the lane surface road marks are placed
func WithRoadMarkLift(lift float64) func(*Tessellator) {
	return func(tessellator *Tessellator) {
		tessellator.roadMarkLift = lift
	}
}

// WithDashPattern sets dash and gap lengths for broken road marks
func WithDashPattern(dash, gap float64) func(*Tessellator) {
	return func(tessellator *Tessellator) {
		if dash > 0 && gap >= 0 {
			tessellator.dashLength = dash
			tessellator.gapLength = gap
		}
	}
}

// StepFor returns sampling step used for given section
func (tessellator *Tessellator) StepFor(section *LaneSection) float64 {
	if section.network != nil && section.network.junction {
		return tessellator.junctionStep
	}
	return tessellator.step
}

// Stations returns section-local stations the section is sampled at
func (tessellator *Tessellator) Stations(section *LaneSection) []float64 {
	return sampleStations(section.Length(), tessellator.StepFor(section), tessellator.closingEpsilon)
}

// laneSample is the cross-section of a lane at one station
type laneSample struct {
	localS float64
	inner  orb.Point
	outer  orb.Point
	height HeightSample
}

func (tessellator *Tessellator) checkLane(lane *Lane, section *LaneSection) error {
	owned, err := section.Lane(lane.id)
	if err != nil {
		return err
	}
	if owned != lane {
		return &LaneNotFoundError{ID: lane.id}
	}
	if section.Length() <= 0 {
		return errors.Wrapf(ErrInvalidSectionRange, "section %d has no length, coordinates were not recomputed", section.id)
	}
	return nil
}

func (tessellator *Tessellator) sampleLane(lane *Lane, section *LaneSection, resolver CoordinateResolver) ([]laneSample, error) {
	stations := tessellator.Stations(section)
	samples := make([]laneSample, 0, len(stations))
	sign := lane.side.Sign()
	for _, localS := range stations {
		cumulative, err := section.WidthUpTo(lane, localS, EDGE_START)
		if err != nil {
			return nil, err
		}
		width := lane.Width(localS)
		offset := section.LaneOffset(localS)
		pose := resolver.PositionAt(section.s + localS)
		inner := LateralOffset(pose, offset+sign*cumulative)
		outer := LateralOffset(pose, offset+sign*(cumulative+width))
		samples = append(samples, laneSample{
			localS: localS,
			inner:  inner,
			outer:  outer,
			height: lane.Height(localS),
		})
	}
	return samples, nil
}

// Tessellate builds surface mesh of a lane. Every station gives an inner and an outer border
// vertex, plus a ground vertex below each border which is lifted anywhere along the lane
// (curbs, raised sidewalks). Stations are connected with two triangles per quad; left lanes
// use mirrored winding so every face normal points up (or outward for walls).
// The center lane has no surface and yields empty buffers
func (tessellator *Tessellator) Tessellate(lane *Lane, section *LaneSection, resolver CoordinateResolver) (*MeshBuffers, error) {
	if err := tessellator.checkLane(lane, section); err != nil {
		return nil, errors.Wrap(err, "Can't tessellate lane")
	}
	if lane.side == SIDE_CENTER {
		return &MeshBuffers{}, nil
	}
	samples, err := tessellator.sampleLane(lane, section, resolver)
	if err != nil {
		return nil, errors.Wrap(err, "Can't sample lane")
	}

	hasInner, hasOuter := false, false
	for _, sample := range samples {
		hasInner = hasInner || sample.height.Inner > 0
		hasOuter = hasOuter || sample.height.Outer > 0
	}
	perStation := 2
	if hasInner {
		perStation++
	}
	if hasOuter {
		perStation++
	}

	writer := &meshWriter{}
	for _, sample := range samples {
		column := make([]r3.Vec, 0, perStation)
		if hasInner {
			column = append(column, r3.Vec{X: sample.inner.X(), Y: sample.inner.Y()})
		}
		column = append(column,
			r3.Vec{X: sample.inner.X(), Y: sample.inner.Y(), Z: sample.height.Inner},
			r3.Vec{X: sample.outer.X(), Y: sample.outer.Y(), Z: sample.height.Outer},
		)
		if hasOuter {
			column = append(column, r3.Vec{X: sample.outer.X(), Y: sample.outer.Y()})
		}
		for j, pos := range column {
			writer.addVertex(pos, float64(j)/float64(perStation-1), sample.localS)
		}
	}

	flip := lane.side == SIDE_LEFT
	for k := 0; k+1 < len(samples); k++ {
		row := uint32(k * perStation)
		next := uint32((k + 1) * perStation)
		for j := uint32(0); j+1 < uint32(perStation); j++ {
			writer.addQuad(row+j, row+j+1, next+j, next+j+1, flip)
		}
	}
	return writer.buffers(), nil
}

// markStrip is a single painted line of a road mark at one station
type markStrip struct {
	left, right r3.Vec
}

// TessellateRoadMarks builds flat quads for road marks painted on the outer border of the lane
// (on the lane reference line for the center lane). Solid strips are continuous, broken ones
// follow the dash pattern, double marks give two strips separated by the mark width
func (tessellator *Tessellator) TessellateRoadMarks(lane *Lane, section *LaneSection, resolver CoordinateResolver) (*MeshBuffers, error) {
	if err := tessellator.checkLane(lane, section); err != nil {
		return nil, errors.Wrap(err, "Can't tessellate road marks")
	}
	stations := tessellator.Stations(section)
	sign := lane.side.Sign()
	writer := &meshWriter{}
	for k := 0; k+1 < len(stations); k++ {
		s0, s1 := stations[k], stations[k+1]
		mark := lane.RoadMarkAt(s0)
		strips := mark.Type.strips()
		if len(strips) == 0 {
			continue
		}
		dashVisible := tessellator.dashVisible(section.s + (s0+s1)/2.0)
		for stripIdx, dashed := range strips {
			if dashed && !dashVisible {
				continue
			}
			a, err := tessellator.markStripAt(lane, section, resolver, s0, mark, stripIdx, len(strips), sign)
			if err != nil {
				return nil, err
			}
			b, err := tessellator.markStripAt(lane, section, resolver, s1, mark, stripIdx, len(strips), sign)
			if err != nil {
				return nil, err
			}
			i0 := writer.addVertex(a.right, 0, s0)
			i1 := writer.addVertex(a.left, 1, s0)
			i2 := writer.addVertex(b.right, 0, s1)
			i3 := writer.addVertex(b.left, 1, s1)
			writer.addQuad(i0, i1, i2, i3, true)
		}
	}
	return writer.buffers(), nil
}

func (tessellator *Tessellator) dashVisible(absS float64) bool {
	period := tessellator.dashLength + tessellator.gapLength
	if period <= 0 {
		return true
	}
	return math.Mod(absS, period) < tessellator.dashLength
}

// markStripAt returns lateral edges of strip stripIdx (out of count) of the mark at local s
func (tessellator *Tessellator) markStripAt(lane *Lane, section *LaneSection, resolver CoordinateResolver, localS float64, mark RoadMark, stripIdx, count int, sign float64) (markStrip, error) {
	t := section.LaneOffset(localS)
	z := tessellator.roadMarkLift
	if lane.side != SIDE_CENTER {
		border, err := section.WidthUpTo(lane, localS, EDGE_END)
		if err != nil {
			return markStrip{}, err
		}
		t += sign * border
		z += lane.Height(localS).Outer
	}
	if count == 2 {
		// the first strip is the inner one: toward the reference line, or to the right for the center lane
		direction := -sign
		if sign == 0 {
			direction = -1
		}
		if stripIdx == 1 {
			direction = -direction
		}
		t += direction * mark.Width
	}
	pose := resolver.PositionAt(section.s + localS)
	right := LateralOffset(pose, t-mark.Width/2.0)
	left := LateralOffset(pose, t+mark.Width/2.0)
	return markStrip{
		left:  r3.Vec{X: left.X(), Y: left.Y(), Z: z},
		right: r3.Vec{X: right.X(), Y: right.Y(), Z: z},
	}, nil
}
