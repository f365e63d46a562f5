package dragsort

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustedSlotHeight(t *testing.T) {
	d := NewDragList()
	d.SetGap(1)

	sliding := dragSession{
		sourceIndex:    4,
		firstExpanded:  2,
		secondExpanded: 3,
		slideFraction:  0.5,
		floatingHeight: 3,
	}
	assert.Equal(t, 1, d.adjustedSlotHeight(4, 2, sliding), "source collapses")
	assert.Equal(t, 4, d.adjustedSlotHeight(2, 2, sliding), "first slot carries its share")
	assert.Equal(t, 5, d.adjustedSlotHeight(3, 2, sliding), "second slot carries the rest")
	assert.Equal(t, 2, d.adjustedSlotHeight(0, 2, sliding), "uninvolved rows keep their height")

	settled := dragSession{
		sourceIndex:    4,
		firstExpanded:  2,
		secondExpanded: 2,
		floatingHeight: 3,
	}
	assert.Equal(t, 6, d.adjustedSlotHeight(2, 2, settled), "single slot carries the full float")
	assert.Equal(t, 1, d.adjustedSlotHeight(4, 2, settled))

	atSource := dragSession{
		sourceIndex:    2,
		firstExpanded:  2,
		secondExpanded: 2,
		floatingHeight: 3,
	}
	assert.Equal(t, 3, d.adjustedSlotHeight(2, 5, atSource), "source slot holds the floating height")

	slidingOffSource := dragSession{
		sourceIndex:    2,
		firstExpanded:  2,
		secondExpanded: 3,
		slideFraction:  0.25,
		floatingHeight: 8,
	}
	assert.Equal(t, 2, d.adjustedSlotHeight(2, 5, slidingOffSource), "source keeps only its share")

	slidingOntoSource := dragSession{
		sourceIndex:    3,
		firstExpanded:  2,
		secondExpanded: 3,
		slideFraction:  0.25,
		floatingHeight: 8,
	}
	assert.Equal(t, 6, d.adjustedSlotHeight(3, 2, slidingOntoSource), "source as second slot")

	// Without animation the first slot always takes the full float.
	options := DefaultOptions()
	options.SlideRegionFraction = 0
	still := NewDragList().SetOptions(options)
	assert.Equal(t, 5, still.adjustedSlotHeight(2, 2, sliding))
}

func TestShuffleEdgeFamilies(t *testing.T) {
	screen := newTestScreen(20, 12)
	adapter := uniformRows(6, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetRect(0, 0, 20, 12)

	pickUp(t, screen, d, 0, 4)
	base := d.session
	require.Equal(t, 2, base.sourceIndex)

	// Expansion on or above the source slot.
	above := base
	above.firstExpanded = 1
	above.secondExpanded = 1
	assert.Equal(t, 2, d.shuffleEdge(1, 2, above), "above the expansion")
	assert.Equal(t, 3, d.shuffleEdge(2, 4, above), "into the collapsed source")
	assert.Equal(t, 6, d.shuffleEdge(3, 6, above), "below the source")

	slidingAbove := base
	slidingAbove.firstExpanded = 1
	slidingAbove.secondExpanded = 2
	slidingAbove.slideFraction = 0.5
	assert.Equal(t, 4, d.shuffleEdge(2, 4, slidingAbove), "into the sliding source")

	detachedAbove := dragSession{sourceIndex: 3, firstExpanded: 1, secondExpanded: 2, slideFraction: 0.5, floatingHeight: 2}
	assert.Equal(t, 3, d.shuffleEdge(2, 4, detachedAbove), "into the second slot above the source")

	betweenAbove := dragSession{sourceIndex: 4, firstExpanded: 1, secondExpanded: 1, floatingHeight: 2}
	assert.Equal(t, 4, d.shuffleEdge(3, 6, betweenAbove), "between the expansion and the source")

	// Expansion on or below the source slot.
	below := base
	below.firstExpanded = 3
	below.secondExpanded = 3
	assert.Equal(t, 4, d.shuffleEdge(2, 4, below), "above the source")
	assert.Equal(t, 7, d.shuffleEdge(3, 6, below), "out of the collapsed source")
	assert.Equal(t, 8, d.shuffleEdge(4, 8, below), "below the expansion")

	slidingBelow := base
	slidingBelow.firstExpanded = 3
	slidingBelow.secondExpanded = 4
	slidingBelow.slideFraction = 0.5
	assert.Equal(t, 10, d.shuffleEdge(4, 8, slidingBelow), "into the second slot below the source")

	slidingOffBelow := dragSession{sourceIndex: 3, firstExpanded: 3, secondExpanded: 4, slideFraction: 0.5, floatingHeight: 2}
	assert.Equal(t, 8, d.shuffleEdge(4, 8, slidingOffBelow), "out of the sliding source")

	// No edges outside the draggable partition.
	assert.Equal(t, 99, d.shuffleEdge(0, 99, base))
	assert.Equal(t, 99, d.shuffleEdge(6, 99, base))
}

func TestResolveShuffleWalk(t *testing.T) {
	screen := newTestScreen(20, 12)
	adapter := uniformRows(6, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetRect(0, 0, 20, 12)

	pickUp(t, screen, d, 0, 4)
	require.Equal(t, 2, d.session.sourceIndex)

	// Against the pickup layout, edges sit between the uniform slots, so the
	// float center maps straight to its slot. Both scan directions run: the
	// anchor starts on slot 2.
	for y := 0; y < 12; y++ {
		s := d.session
		s.floatingY = y
		out, _ := d.resolveShuffle(s)

		assert.Equal(t, min(y/2, 5), out.targetIndex, "floatingY=%d", y)
		assert.LessOrEqual(t, out.firstExpanded, out.secondExpanded, "floatingY=%d", y)
		assert.LessOrEqual(t, out.secondExpanded, out.firstExpanded+1, "floatingY=%d", y)
		assert.Contains(t, []int{out.firstExpanded, out.secondExpanded}, out.targetIndex, "floatingY=%d", y)
	}

	// A resolve that lands where it started reports no change.
	_, changed := d.resolveShuffle(d.session)
	assert.False(t, changed)
}

func TestDragShuffleConvergesWhileHovering(t *testing.T) {
	screen := newTestScreen(20, 12)
	adapter := uniformRows(6, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetRect(0, 0, 20, 12)

	pickUp(t, screen, d, 0, 4)
	d.MouseHandler(MouseMove, mouseEv(0, 9, tcell.ButtonNone))

	// Each draw resolves against the previous layout and then lays out for
	// the new session; a stationary pointer must settle within a few passes.
	settled := false
	for range 6 {
		render(screen, d)
		if _, changed := d.resolveShuffle(d.session); !changed {
			settled = true
			break
		}
	}
	require.True(t, settled, "shuffle did not settle while hovering")

	s := d.session
	assert.Equal(t, 4, s.targetIndex)
	assert.Equal(t, 4, s.firstExpanded)
	assert.Equal(t, 4, s.secondExpanded)

	// The settled layout: source collapsed to one cell, landing slot expanded
	// by the floating height.
	heights := make([]int, 0, len(d.lastDraw))
	rows := make([]int, 0, len(d.lastDraw))
	for _, child := range d.lastDraw {
		heights = append(heights, child.height)
		rows = append(rows, child.row)
	}
	assert.Equal(t, []int{2, 2, 1, 2, 4, 2}, heights)
	assert.Equal(t, []int{0, 2, 4, 5, 7, 11}, rows)
}

func TestResolveShuffleSlideFraction(t *testing.T) {
	screen := newTestScreen(20, 30)
	adapter := uniformRows(5, 6)
	options := DefaultOptions()
	options.SlideRegionFraction = 0.5
	d := NewDragList().SetAdapter(adapter).SetOptions(options)
	d.SetRect(0, 0, 20, 30)

	pickUp(t, screen, d, 0, 12)
	require.Equal(t, 2, d.session.sourceIndex)

	resolveAt := func(floatingY int) dragSession {
		s := d.session
		s.floatingY = floatingY
		out, _ := d.resolveShuffle(s)
		return out
	}

	// The raw edge between slots 1 and 2 sits at y=12; the slide band extends
	// one cell to each side of it.
	at := resolveAt(12)
	assert.Equal(t, 1, at.firstExpanded)
	assert.Equal(t, 2, at.secondExpanded)
	assert.InDelta(t, 0.5, at.slideFraction, 1e-9, "exactly half at the raw edge")
	assert.Equal(t, 2, at.targetIndex)

	mid := resolveAt(13)
	assert.Equal(t, 2, mid.firstExpanded)
	assert.Equal(t, 2, mid.secondExpanded, "dead middle of the slot")

	low := resolveAt(17)
	assert.Equal(t, 2, low.firstExpanded)
	assert.Equal(t, 3, low.secondExpanded)
	assert.InDelta(t, 1.0, low.slideFraction, 1e-9, "full share at the band edge")

	past := resolveAt(18)
	assert.Equal(t, 2, past.firstExpanded)
	assert.Equal(t, 3, past.secondExpanded)
	assert.InDelta(t, 0.5, past.slideFraction, 1e-9, "continuous across the edge")
	assert.Equal(t, 3, past.targetIndex)
}

func TestResolveShuffleClampsToDraggablePartition(t *testing.T) {
	screen := newTestScreen(20, 12)
	adapter := uniformRows(4, 2)
	head := newTestItem()
	head.label = "head"
	head.height = 2
	foot := newTestItem()
	foot.label = "foot"
	foot.height = 2

	d := NewDragList().SetAdapter(adapter)
	d.AddHeaderRow(head)
	d.AddFooterRow(foot)
	d.SetRect(0, 0, 20, 12)

	pickUp(t, screen, d, 0, 4)
	require.Equal(t, 2, d.session.sourceIndex)

	resolveAt := func(floatingY int) dragSession {
		s := d.session
		s.floatingY = floatingY
		out, _ := d.resolveShuffle(s)
		return out
	}

	top := resolveAt(0)
	assert.Equal(t, 1, top.targetIndex, "clamped below the header")
	assert.Equal(t, 1, top.firstExpanded)
	assert.Equal(t, 1, top.secondExpanded)

	bottom := resolveAt(11)
	assert.Equal(t, 4, bottom.targetIndex, "clamped above the footer")
	assert.Equal(t, 4, bottom.firstExpanded)
	assert.Equal(t, 4, bottom.secondExpanded)
}

func TestResolveShuffleReseedsOffWindowAnchor(t *testing.T) {
	screen := newTestScreen(20, 10)
	adapter := uniformRows(12, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetRect(0, 0, 20, 10)

	pickUp(t, screen, d, 0, 4)

	s := d.session
	s.floatingY = 7
	want, _ := d.resolveShuffle(s)

	// An anchor that scrolled out of the window restarts from its middle.
	s.firstExpanded = 11
	s.secondExpanded = 11
	got, _ := d.resolveShuffle(s)

	assert.Equal(t, want.targetIndex, got.targetIndex)
	assert.Equal(t, want.firstExpanded, got.firstExpanded)
	assert.Equal(t, want.secondExpanded, got.secondExpanded)

	// Without a realized window there is nothing to resolve against.
	bare := NewDragList().SetAdapter(uniformRows(3, 1))
	out, changed := bare.resolveShuffle(dragSession{floatingY: 1})
	assert.False(t, changed)
	assert.Zero(t, out.targetIndex)
}

func TestSlotHeightAcrossWindowEdge(t *testing.T) {
	screen := newTestScreen(20, 10)
	adapter := uniformRows(12, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetRect(0, 0, 20, 10)

	pickUp(t, screen, d, 0, 4)
	require.Equal(t, 2, d.session.sourceIndex)

	s := d.session
	assert.Equal(t, 2, d.slotHeightAt(0, s), "realized row reads the drawn height")
	assert.Equal(t, 2, d.slotHeightAt(9, s), "plain off-window row probes its content")

	s.firstExpanded = 9
	s.secondExpanded = 9
	assert.Equal(t, 4, d.slotHeightAt(9, s), "off-window rows honor the session adjustment")
}

func TestContentHeightAt(t *testing.T) {
	screen := newTestScreen(20, 12)
	adapter := uniformRows(3, 2)
	head := newTestItem()
	head.height = 3
	foot := newTestItem()
	foot.height = 4

	d := NewDragList().SetAdapter(adapter)
	d.AddHeaderRow(head)
	d.AddFooterRow(foot)
	d.SetRect(0, 0, 20, 12)
	render(screen, d)

	assert.Equal(t, 3, d.contentHeightAt(0), "header")
	assert.Equal(t, 2, d.contentHeightAt(1), "realized adapter row")
	assert.Equal(t, 4, d.contentHeightAt(4), "footer")
}

func TestProbeCacheMeasure(t *testing.T) {
	adapter := newStubAdapter(
		testRow{label: "a", height: 2},
		testRow{label: "b", height: 5},
	)
	cache := &probeCache{}

	assert.Equal(t, 2, cache.measure(adapter, 0, 10))
	assert.Equal(t, 5, cache.measure(adapter, 1, 10))
	assert.Equal(t, 2, adapter.renders)
	assert.Equal(t, 1, adapter.reused, "one prototype per type")
	assert.Len(t, cache.samples, 1)

	// Changing the type count rebuilds the prototypes.
	adapter.typeCount = 3
	assert.Equal(t, 2, cache.measure(adapter, 0, 10))
	assert.Len(t, cache.samples, 3)

	// Out-of-range types measure with a throwaway item.
	adapter.typeOf = func(int) int { return 7 }
	before := adapter.renders
	assert.Equal(t, 5, cache.measure(adapter, 1, 10))
	assert.Equal(t, before+1, adapter.renders)
	assert.Len(t, cache.samples, 3)

	cache.reset()
	assert.Nil(t, cache.samples)
}
