package lanegeom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoLaneNetwork prepares road of given length with one section holding lanes 1 and -1 of constant width
func twoLaneNetwork(t *testing.T, length, width float64) (*LaneNetwork, *LaneSection) {
	t.Helper()
	network := NewLaneNetwork(length)
	section, err := network.AddSection(0)
	require.NoError(t, err)
	for _, id := range []int32{1, -1} {
		lane, err := section.CreateLane(id, LANE_DRIVING)
		require.NoError(t, err)
		require.NoError(t, lane.AddWidthRecord(ConstantPolynomial(0, width)))
	}
	require.NoError(t, network.RecomputeCoordinates())
	return network, section
}

func TestWidthUpTo(t *testing.T) {
	_, section := twoLaneNetwork(t, 100, 3.5)
	left, err := section.Lane(1)
	require.NoError(t, err)

	for _, s := range []float64{0, 25, 50, 99.9} {
		start, err := section.WidthUpTo(left, s, EDGE_START)
		require.NoError(t, err)
		end, err := section.WidthUpTo(left, s, EDGE_END)
		require.NoError(t, err)
		middle, err := section.WidthUpTo(left, s, EDGE_CENTER)
		require.NoError(t, err)
		assert.Equal(t, 0.0, start)
		assert.Equal(t, 3.5, end)
		assert.Equal(t, 1.75, middle)
	}

	centerWidth, err := section.WidthUpTo(section.CenterLane(), 10, EDGE_END)
	require.NoError(t, err)
	assert.Equal(t, 0.0, centerWidth)

	_, err = section.WidthUpTo(NewLane(-5, LANE_DRIVING), 0, EDGE_END)
	assert.True(t, errors.Is(err, ErrLaneNotFound))
}

func TestWidthAdditivity(t *testing.T) {
	section := NewLaneSection(0, 0)
	widths := map[int32]Polynomial{
		1:  NewPolynomial(0, 3.0, 0.01, 0, 0),
		2:  NewPolynomial(0, 2.5, 0, 0.001, 0),
		3:  ConstantPolynomial(0, 1.5),
		-1: NewPolynomial(0, 3.25, -0.01, 0, 0),
		-2: NewPolynomial(0, 3.0, 0, 0, 0.0001),
	}
	for _, id := range []int32{1, 2, 3, -1, -2} {
		lane, err := section.CreateLane(id, LANE_DRIVING)
		require.NoError(t, err)
		require.NoError(t, lane.AddWidthRecord(widths[id]))
	}
	for _, lane := range section.Lanes() {
		for s := 0.0; s <= 50; s += 2.5 {
			start, err := section.WidthUpTo(lane, s, EDGE_START)
			require.NoError(t, err)
			end, err := section.WidthUpTo(lane, s, EDGE_END)
			require.NoError(t, err)
			assert.InDelta(t, end, start+lane.Width(s), 1e-9, "lane %d, s=%f", lane.ID(), s)
		}
	}

	// left lanes are walked from the center outward even though they are stored farthest first
	outer, err := section.Lane(3)
	require.NoError(t, err)
	start, err := section.WidthUpTo(outer, 0, EDGE_START)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, start, 1e-12)
	assert.InDelta(t, 7.0, section.TotalWidth(SIDE_LEFT, 0), 1e-12)
	assert.InDelta(t, 6.25, section.TotalWidth(SIDE_RIGHT, 0), 1e-12)
}

func TestLaneOrder(t *testing.T) {
	section := NewLaneSection(0, 0)
	for _, id := range []int32{-1, 1, 2, -2} {
		_, err := section.CreateLane(id, LANE_DRIVING)
		require.NoError(t, err)
	}
	if diff := cmp.Diff([]int32{2, 1, 0, -1, -2}, section.LaneIDs()); diff != "" {
		t.Errorf("LaneIDs() mismatch (-want +got):\n%s", diff)
	}
	ids := func(lanes []*Lane) []int32 {
		out := []int32{}
		for _, lane := range lanes {
			out = append(out, lane.ID())
		}
		return out
	}
	assert.Equal(t, []int32{1, 2}, ids(section.LeftLanes()))
	assert.Equal(t, []int32{-1, -2}, ids(section.RightLanes()))
	assert.Equal(t, 5, section.LanesCount())
}

func TestInsertShiftsOuterLanes(t *testing.T) {
	section := NewLaneSection(0, 0)
	for _, id := range []int32{-1, -3} {
		_, err := section.CreateLane(id, LANE_DRIVING)
		require.NoError(t, err)
	}
	far, err := section.Lane(-3)
	require.NoError(t, err)
	before := section.LanesCount()

	inserted, err := section.CreateLane(-2, LANE_SHOULDER)
	require.NoError(t, err)
	assert.Equal(t, before+1, section.LanesCount())
	assert.Equal(t, int32(-2), inserted.ID())
	assert.Equal(t, int32(-4), far.ID())
	if diff := cmp.Diff([]int32{0, -1, -2, -4}, section.LaneIDs()); diff != "" {
		t.Errorf("LaneIDs() mismatch (-want +got):\n%s", diff)
	}
	shifted, err := section.Lane(-4)
	require.NoError(t, err)
	assert.Same(t, far, shifted)
	assert.False(t, section.HasLane(-3))
}

func TestAddLaneUnsorted(t *testing.T) {
	network, section := twoLaneNetwork(t, 100, 3)
	outer, err := section.CreateLane(-2, LANE_DRIVING)
	require.NoError(t, err)
	require.NoError(t, outer.AddWidthRecord(ConstantPolynomial(0, 3)))

	inner := NewLane(-1, LANE_DRIVING)
	require.NoError(t, inner.AddWidthRecord(ConstantPolynomial(0, 2)))
	require.NoError(t, section.AddLane(inner, false))
	if diff := cmp.Diff([]int32{1, 0, -2, -3, -1}, section.LaneIDs()); diff != "" {
		t.Errorf("LaneIDs() mismatch (-want +got):\n%s", diff)
	}

	ids := []int32{}
	for _, lane := range section.RightLanes() {
		ids = append(ids, lane.ID())
	}
	assert.Equal(t, []int32{-1, -2, -3}, ids)

	start, err := section.WidthUpTo(inner, 10, EDGE_START)
	require.NoError(t, err)
	assert.Equal(t, 0.0, start)
	start, err = section.WidthUpTo(outer, 10, EDGE_START)
	require.NoError(t, err)
	assert.Equal(t, 5.0, start)
	for _, lane := range section.RightLanes() {
		start, err := section.WidthUpTo(lane, 10, EDGE_START)
		require.NoError(t, err)
		end, err := section.WidthUpTo(lane, 10, EDGE_END)
		require.NoError(t, err)
		assert.InDelta(t, end, start+lane.Width(10), 1e-12)
	}

	found, ok, err := network.LaneAt(10, -1.0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, inner, found)
	found, ok, err = network.LaneAt(10, -6.0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, outer, found)
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	section := NewLaneSection(0, 0)
	original := map[int32]*Lane{}
	for _, id := range []int32{1, 2, 3, -1} {
		lane, err := section.CreateLane(id, LANE_DRIVING)
		require.NoError(t, err)
		original[id] = lane
	}
	idsBefore := section.LaneIDs()

	inserted, err := section.CreateLane(2, LANE_BIKING)
	require.NoError(t, err)
	if diff := cmp.Diff([]int32{4, 3, 2, 1, 0, -1}, section.LaneIDs()); diff != "" {
		t.Errorf("LaneIDs() after insert mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int32(3), original[2].ID())

	require.NoError(t, section.RemoveLane(inserted))
	if diff := cmp.Diff(idsBefore, section.LaneIDs()); diff != "" {
		t.Errorf("LaneIDs() after round trip mismatch (-want +got):\n%s", diff)
	}
	for id, lane := range original {
		assert.Equal(t, id, lane.ID())
		found, err := section.Lane(id)
		require.NoError(t, err)
		assert.Same(t, lane, found)
	}
	assert.Nil(t, inserted.Section())
}

func TestStructuralEditErrors(t *testing.T) {
	section := NewLaneSection(0, 0)
	_, err := section.CreateLane(0, LANE_DRIVING)
	assert.True(t, errors.Is(err, ErrCenterLane))
	assert.True(t, errors.Is(section.RemoveLane(section.CenterLane()), ErrCenterLane))

	_, err = section.Lane(7)
	assert.True(t, errors.Is(err, ErrLaneNotFound))
	var notFound *LaneNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int32(7), notFound.ID)

	stranger := NewLane(-1, LANE_DRIVING)
	assert.True(t, errors.Is(section.RemoveLane(stranger), ErrLaneNotFound))

	lane, err := section.CreateLane(-1, LANE_DRIVING)
	require.NoError(t, err)
	assert.Error(t, NewLaneSection(1, 0).AddLane(lane, true), "lane can't belong to two sections")

	assert.True(t, errors.Is(section.SetEndS(0), ErrInvalidSectionRange))
	require.NoError(t, section.SetEndS(20))
	assert.Equal(t, 20.0, section.Length())
}

func TestLinkSuccessorSyncsWidth(t *testing.T) {
	network := NewLaneNetwork(100)
	a, err := network.AddSection(0)
	require.NoError(t, err)
	b, err := network.AddSection(50)
	require.NoError(t, err)
	aLane, err := a.CreateLane(-1, LANE_DRIVING)
	require.NoError(t, err)
	require.NoError(t, aLane.AddWidthRecord(ConstantPolynomial(0, 3.6)))
	bLane, err := b.CreateLane(-1, LANE_DRIVING)
	require.NoError(t, err)
	require.NoError(t, bLane.AddWidthRecord(ConstantPolynomial(0, 3.0)))
	require.NoError(t, network.RecomputeCoordinates())

	linked := a.LinkSuccessor(b, CONTACT_START)
	assert.Equal(t, 1, linked)
	assert.InDelta(t, 3.6, bLane.Width(0), 1e-12)
	assert.InDelta(t, 3.0, bLane.Width(b.Length()), 1e-9, "correction blends back into the original width")

	succ, ok := network.Successor(aLane)
	require.True(t, ok)
	assert.Same(t, bLane, succ)
	pred, ok := network.Predecessor(bLane)
	require.True(t, ok)
	assert.Same(t, aLane, pred)
}

func TestLinkPredecessorSyncsWidth(t *testing.T) {
	network := NewLaneNetwork(60)
	a, err := network.AddSection(0)
	require.NoError(t, err)
	b, err := network.AddSection(30)
	require.NoError(t, err)
	aLane, err := a.CreateLane(2, LANE_DRIVING)
	require.NoError(t, err)
	require.NoError(t, aLane.AddWidthRecord(NewPolynomial(0, 3.0, 0.02, 0, 0)))
	bLane, err := b.CreateLane(2, LANE_DRIVING)
	require.NoError(t, err)
	require.NoError(t, bLane.AddWidthRecord(ConstantPolynomial(0, 3.0)))
	require.NoError(t, bLane.AddWidthRecord(ConstantPolynomial(10, 2.0)))
	require.NoError(t, network.RecomputeCoordinates())

	assert.Equal(t, 1, b.LinkPredecessor(a, CONTACT_END))
	assert.InDelta(t, aLane.Width(a.Length()), bLane.Width(0), 1e-9)
	assert.InDelta(t, 2.0, bLane.Width(10), 1e-9, "correction ends at the next breakpoint")
	assert.Equal(t, 2.0, bLane.Width(20))
}

func TestLinkContinuity(t *testing.T) {
	network := NewLaneNetwork(90)
	widths := [][]float64{{3.6, 3.0, 1.5}, {3.0, 3.5, 2.0}, {3.25, 3.25, 1.0}}
	for i, s := range []float64{0, 30, 60} {
		section, err := network.AddSection(s)
		require.NoError(t, err)
		for j, id := range []int32{-1, -2, 1} {
			lane, err := section.CreateLane(id, LANE_DRIVING)
			require.NoError(t, err)
			require.NoError(t, lane.AddWidthRecord(NewPolynomial(0, widths[i][j], 0.01*float64(j), 0, 0)))
		}
	}
	require.NoError(t, network.RecomputeCoordinates())
	assert.Equal(t, 6, network.LinkAll())

	sections := network.Sections()
	for i := 0; i+1 < len(sections); i++ {
		for _, lane := range sections[i].Lanes() {
			if lane.Side() == SIDE_CENTER {
				continue
			}
			next, ok := network.Successor(lane)
			require.True(t, ok, "lane %d of section %d", lane.ID(), i)
			gap := math.Abs(lane.Width(sections[i].Length()) - next.Width(0))
			assert.Less(t, gap, 1e-5, "lane %d of section %d", lane.ID(), i)
		}
	}
}

func TestLinkSuccessorEndContact(t *testing.T) {
	network := NewLaneNetwork(40)
	a, err := network.AddSection(0)
	require.NoError(t, err)
	b, err := network.AddSection(20)
	require.NoError(t, err)
	aLane, err := a.CreateLane(-1, LANE_DRIVING)
	require.NoError(t, err)
	require.NoError(t, aLane.AddWidthRecord(ConstantPolynomial(0, 3.5)))
	bLane, err := b.CreateLane(1, LANE_DRIVING)
	require.NoError(t, err)
	require.NoError(t, bLane.AddWidthRecord(ConstantPolynomial(0, 3.0)))
	require.NoError(t, network.RecomputeCoordinates())

	assert.Equal(t, 1, a.LinkSuccessor(b, CONTACT_END))
	handle, ok := aLane.Successor()
	require.True(t, ok)
	assert.Equal(t, bLane.Handle(), handle)
	handle, ok = bLane.Successor()
	require.True(t, ok)
	assert.Equal(t, aLane.Handle(), handle)
	assert.InDelta(t, 3.5, bLane.Width(b.Length()), 1e-12)
}

func TestLaneSectionClone(t *testing.T) {
	_, section := twoLaneNetwork(t, 50, 3.0)
	section.CenterLane().AddRoadMark(NewRoadMark(0, ROADMARK_SOLID))
	cp := section.Clone()
	assert.NotEqual(t, section.UUID(), cp.UUID())
	assert.Equal(t, section.LaneIDs(), cp.LaneIDs())
	assert.Equal(t, section.EndS(), cp.EndS())
	assert.Equal(t, ROADMARK_SOLID, cp.CenterLane().RoadMarkAt(10).Type)
	lane, err := cp.Lane(1)
	require.NoError(t, err)
	assert.Same(t, cp, lane.Section())
	assert.Equal(t, 3.0, lane.Width(10))
}
