package lanegeom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLateralOffset(t *testing.T) {
	pose := Pose{X: 1, Y: 1, Heading: 0}
	left := LateralOffset(pose, 2)
	assert.InDelta(t, 1.0, left.X(), 1e-12)
	assert.InDelta(t, 3.0, left.Y(), 1e-12)
	right := LateralOffset(pose, -2)
	assert.InDelta(t, 1.0, right.X(), 1e-12)
	assert.InDelta(t, -1.0, right.Y(), 1e-12)
	assert.Equal(t, pose.Point(), LateralOffset(pose, 0))

	north := Pose{Heading: math.Pi / 2}
	left = LateralOffset(north, 1)
	assert.InDelta(t, -1.0, left.X(), 1e-12)
	assert.InDelta(t, 0.0, left.Y(), 1e-12)
}

func TestLineResolver(t *testing.T) {
	resolver := LineResolver{Start: orb.Point{1, 2}, Heading: math.Pi / 2}
	pose := resolver.PositionAt(3)
	assert.InDelta(t, 1.0, pose.X, 1e-12)
	assert.InDelta(t, 5.0, pose.Y, 1e-12)
	assert.Equal(t, math.Pi/2, pose.Heading)
}

func TestArcResolver(t *testing.T) {
	resolver := ArcResolver{Curvature: 0.1}
	quarter := 10 * math.Pi / 2
	pose := resolver.PositionAt(quarter)
	assert.InDelta(t, 10.0, pose.X, 1e-9)
	assert.InDelta(t, 10.0, pose.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, pose.Heading, 1e-12)

	half := resolver.PositionAt(2 * quarter)
	assert.InDelta(t, 0.0, half.X, 1e-9)
	assert.InDelta(t, 20.0, half.Y, 1e-9)
	assert.InDelta(t, math.Pi, half.Heading, 1e-12)

	straight := ArcResolver{Start: orb.Point{5, 5}}
	assert.Equal(t, LineResolver{Start: orb.Point{5, 5}}.PositionAt(7), straight.PositionAt(7))
}

func TestPolylineResolver(t *testing.T) {
	resolver, err := NewPolylineResolver(orb.LineString{{0, 0}, {10, 0}, {10, 0}, {10, 10}})
	require.NoError(t, err)
	assert.Equal(t, 20.0, resolver.Length())
	assert.Len(t, resolver.Line(), 3, "duplicate vertices are dropped")

	tests := []struct {
		s       float64
		x, y    float64
		heading float64
	}{
		{s: -5, x: 0, y: 0, heading: 0},
		{s: 0, x: 0, y: 0, heading: 0},
		{s: 4, x: 4, y: 0, heading: 0},
		{s: 15, x: 10, y: 5, heading: math.Pi / 2},
		{s: 100, x: 10, y: 10, heading: math.Pi / 2},
	}
	for _, test := range tests {
		pose := resolver.PositionAt(test.s)
		assert.InDelta(t, test.x, pose.X, 1e-9, "s=%f", test.s)
		assert.InDelta(t, test.y, pose.Y, 1e-9, "s=%f", test.s)
		assert.InDelta(t, test.heading, pose.Heading, 1e-12, "s=%f", test.s)
	}

	_, err = NewPolylineResolver(orb.LineString{{0, 0}})
	assert.Error(t, err)
	_, err = NewPolylineResolver(orb.LineString{{1, 1}, {1, 1}})
	assert.Error(t, err)
}

func TestGeoPolylineResolver(t *testing.T) {
	resolver, err := NewGeoPolylineResolver(orb.LineString{{37.6417350769043, 55.751849391735284}, {37.668514251708984, 55.73261980350401}})
	require.NoError(t, err)
	// Web Mercator stretches distances by 1/cos(lat)
	assert.InDelta(t, 4831.92, resolver.Length(), 0.01)
	start := pointToGeo(resolver.PositionAt(0).Point())
	assert.InDelta(t, 37.6417350769043, start.Lon(), 1e-9)
	assert.InDelta(t, 55.751849391735284, start.Lat(), 1e-9)
}
