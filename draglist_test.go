package dragsort

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textAdapter renders TextRow items, covering the handle hit path the plain
// stub adapter bypasses.
type textAdapter struct {
	labels    []string
	noHandles bool
}

func newTextAdapter(labels ...string) *textAdapter {
	return &textAdapter{labels: labels}
}

func (a *textAdapter) RowCount() int {
	return len(a.labels)
}

func (a *textAdapter) RowType(int) int {
	return 0
}

func (a *textAdapter) RowTypeCount() int {
	return 1
}

func (a *textAdapter) Render(index int, reuse ListItem) ListItem {
	row, ok := reuse.(*TextRow)
	if !ok {
		row = NewTextRow("")
	}
	return row.SetText(a.labels[index]).SetHandleVisible(!a.noHandles)
}

func TestDragReorderDeliversDrop(t *testing.T) {
	screen := newTestScreen(20, 20)
	adapter := uniformRows(8, 2)
	d := NewDragList().SetAdapter(adapter).SetDropFunc(adapter.move)
	d.SetRect(0, 0, 20, 20)

	pickUp(t, screen, d, 0, 0)
	require.Equal(t, 0, d.session.sourceIndex)

	d.MouseHandler(MouseMove, mouseEv(0, 6, tcell.ButtonNone))
	render(screen, d)

	// The float center at row 7 lands in slot 3; the source is collapsed to a
	// blank cell and slot 3 holds the expansion gap below its content.
	require.NotNil(t, d.float)
	assert.Equal(t, 3, d.session.targetIndex)
	assert.Equal(t, "", screen.rowText(0))
	assert.Equal(t, "row3", screen.rowText(5))
	assert.Equal(t, "row0", screen.rowText(6), "floating row drawn over the gap")

	p, cmd := d.MouseHandler(MouseLeftUp, mouseEv(0, 6, tcell.ButtonNone))
	assert.Nil(t, p)
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.False(t, d.IsDragging())
	assert.Equal(t, [][2]int{{0, 3}}, adapter.drops)

	render(screen, d)
	assert.Equal(t, "row1", screen.rowText(0))
	assert.Equal(t, "row0", screen.rowText(6))
}

func TestDropOnSamePositionStillReported(t *testing.T) {
	screen := newTestScreen(20, 20)
	adapter := uniformRows(8, 2)
	d := NewDragList().SetAdapter(adapter).SetDropFunc(adapter.move)
	d.SetRect(0, 0, 20, 20)

	pickUp(t, screen, d, 0, 4)
	require.Equal(t, 2, d.session.sourceIndex)

	d.MouseHandler(MouseLeftUp, mouseEv(0, 4, tcell.ButtonNone))

	assert.Equal(t, [][2]int{{2, 2}}, adapter.drops)
	assert.Equal(t, []string{"row0", "row1", "row2", "row3", "row4", "row5", "row6", "row7"}, adapter.labels())
}

func TestFlingRemovesRow(t *testing.T) {
	screen := newTestScreen(20, 20)
	adapter := uniformRows(8, 2)
	options := DefaultOptions()
	options.RemoveEnabled = true
	options.RemoveMode = RemoveFling
	d := NewDragList().SetAdapter(adapter).SetOptions(options).
		SetDropFunc(adapter.move).SetRemoveFunc(adapter.removeAt)
	clock := newFakeClock()
	d.gesture.now = clock.Now
	d.SetRect(0, 0, 20, 20)

	pickUp(t, screen, d, 2, 4)
	require.Equal(t, 2, d.session.sourceIndex)

	clock.Advance(50 * time.Millisecond)
	d.MouseHandler(MouseMove, mouseEv(12, 4, tcell.Button1))
	assert.Equal(t, 10, d.session.floatX, "fling mode lets the float leave the column")
	assert.InDelta(t, 1.0, d.session.alpha, 1e-9, "no fade outside the slide modes")
	render(screen, d)

	// 16 cells rightward in 100ms is 160 cells/s, past the fling threshold,
	// and the release lands beyond two thirds of the width.
	clock.Advance(50 * time.Millisecond)
	d.MouseHandler(MouseLeftUp, mouseEv(18, 4, tcell.ButtonNone))

	assert.Equal(t, []int{2}, adapter.removed)
	assert.Empty(t, adapter.drops)
	assert.False(t, d.IsDragging())
	assert.Equal(t, []string{"row0", "row1", "row3", "row4", "row5", "row6", "row7"}, adapter.labels())
}

func TestFlingBelowThresholdDrops(t *testing.T) {
	screen := newTestScreen(20, 20)
	adapter := uniformRows(8, 2)
	options := DefaultOptions()
	options.RemoveEnabled = true
	options.RemoveMode = RemoveFling
	d := NewDragList().SetAdapter(adapter).SetOptions(options).
		SetDropFunc(adapter.move).SetRemoveFunc(adapter.removeAt)
	clock := newFakeClock()
	d.gesture.now = clock.Now
	d.SetRect(0, 0, 20, 20)

	pickUp(t, screen, d, 2, 4)
	clock.Advance(50 * time.Millisecond)
	d.MouseHandler(MouseMove, mouseEv(12, 4, tcell.Button1))
	render(screen, d)

	// Holding still before letting go leaves no recent movement, so the
	// release is not a fling no matter where it happens.
	clock.Advance(300 * time.Millisecond)
	d.MouseHandler(MouseLeftUp, mouseEv(18, 4, tcell.ButtonNone))

	assert.Empty(t, adapter.removed)
	assert.Equal(t, [][2]int{{2, 2}}, adapter.drops)
}

func TestSlideRightRemoveThresholds(t *testing.T) {
	newList := func() (*testScreen, *stubAdapter, *DragList) {
		screen := newTestScreen(20, 20)
		adapter := uniformRows(8, 2)
		options := DefaultOptions()
		options.RemoveEnabled = true
		options.RemoveMode = RemoveSlideRight
		d := NewDragList().SetAdapter(adapter).SetOptions(options).
			SetDropFunc(adapter.move).SetRemoveFunc(adapter.removeAt)
		d.SetRect(0, 0, 20, 20)
		return screen, adapter, d
	}

	t.Run("slides off", func(t *testing.T) {
		screen, adapter, d := newList()
		pickUp(t, screen, d, 0, 4)

		d.MouseHandler(MouseMove, mouseEv(16, 4, tcell.Button1))
		assert.InDelta(t, 0.4, d.session.alpha, 1e-9, "fades toward the right edge")
		assert.Equal(t, 0, d.session.floatX, "slide modes keep the float in its column")
		render(screen, d)

		d.MouseHandler(MouseLeftUp, mouseEv(16, 4, tcell.ButtonNone))
		assert.Equal(t, []int{2}, adapter.removed)
		assert.Empty(t, adapter.drops)
	})

	t.Run("snaps back short of the edge", func(t *testing.T) {
		screen, adapter, d := newList()
		pickUp(t, screen, d, 0, 4)

		d.MouseHandler(MouseMove, mouseEv(14, 4, tcell.Button1))
		assert.InDelta(t, 0.6, d.session.alpha, 1e-9)
		render(screen, d)

		d.MouseHandler(MouseLeftUp, mouseEv(14, 4, tcell.ButtonNone))
		assert.Empty(t, adapter.removed)
		assert.Equal(t, [][2]int{{2, 2}}, adapter.drops)
	})
}

func TestSlideLeftRemoveThresholds(t *testing.T) {
	newList := func() (*testScreen, *stubAdapter, *DragList) {
		screen := newTestScreen(20, 20)
		adapter := uniformRows(8, 2)
		options := DefaultOptions()
		options.RemoveEnabled = true
		options.RemoveMode = RemoveSlideLeft
		d := NewDragList().SetAdapter(adapter).SetOptions(options).
			SetDropFunc(adapter.move).SetRemoveFunc(adapter.removeAt)
		d.SetRect(0, 0, 20, 20)
		return screen, adapter, d
	}

	t.Run("slides off", func(t *testing.T) {
		screen, adapter, d := newList()
		pickUp(t, screen, d, 6, 4)

		d.MouseHandler(MouseMove, mouseEv(4, 4, tcell.Button1))
		assert.InDelta(t, 0.4, d.session.alpha, 1e-9, "fades toward the left edge")
		render(screen, d)

		d.MouseHandler(MouseLeftUp, mouseEv(4, 4, tcell.ButtonNone))
		assert.Equal(t, []int{2}, adapter.removed)
		assert.Empty(t, adapter.drops)
	})

	t.Run("snaps back short of the edge", func(t *testing.T) {
		screen, adapter, d := newList()
		pickUp(t, screen, d, 6, 4)

		d.MouseHandler(MouseMove, mouseEv(6, 4, tcell.Button1))
		render(screen, d)

		d.MouseHandler(MouseLeftUp, mouseEv(6, 4, tcell.ButtonNone))
		assert.Empty(t, adapter.removed)
		assert.Equal(t, [][2]int{{2, 2}}, adapter.drops)
	})
}

func TestRemoveWithoutHandlers(t *testing.T) {
	t.Run("remove delivers nothing without a handler", func(t *testing.T) {
		screen := newTestScreen(20, 20)
		adapter := uniformRows(8, 2)
		options := DefaultOptions()
		options.RemoveEnabled = true
		options.RemoveMode = RemoveSlideRight
		d := NewDragList().SetAdapter(adapter).SetOptions(options).SetDropFunc(adapter.move)
		d.SetRect(0, 0, 20, 20)

		pickUp(t, screen, d, 0, 4)
		d.MouseHandler(MouseMove, mouseEv(16, 4, tcell.Button1))
		render(screen, d)
		d.MouseHandler(MouseLeftUp, mouseEv(16, 4, tcell.ButtonNone))

		// The release past the slide threshold is still a removal, so the drop
		// handler stays quiet; with no remove handler the row simply snaps
		// back.
		assert.Empty(t, adapter.removed)
		assert.Empty(t, adapter.drops)
		assert.False(t, d.IsDragging())
		assert.Equal(t, []string{"row0", "row1", "row2", "row3", "row4", "row5", "row6", "row7"}, adapter.labels())
	})

	t.Run("visual only without any handler", func(t *testing.T) {
		screen := newTestScreen(20, 20)
		adapter := uniformRows(8, 2)
		d := NewDragList().SetAdapter(adapter)
		d.SetRect(0, 0, 20, 20)

		pickUp(t, screen, d, 0, 4)
		d.MouseHandler(MouseMove, mouseEv(0, 8, tcell.Button1))
		render(screen, d)
		d.MouseHandler(MouseLeftUp, mouseEv(0, 8, tcell.ButtonNone))

		assert.False(t, d.IsDragging())
		assert.Equal(t, dragSession{}, d.session)
		assert.Empty(t, adapter.drops)
		assert.Empty(t, adapter.removed)
		assert.Equal(t, []string{"row0", "row1", "row2", "row3", "row4", "row5", "row6", "row7"}, adapter.labels())
	})
}

func TestEscapeCancelsDrag(t *testing.T) {
	screen := newTestScreen(20, 10)
	adapter := uniformRows(12, 2)
	sched := &manualScheduler{}
	d := NewDragList().SetAdapter(adapter).SetDropFunc(adapter.move).SetScheduler(sched)
	d.SetRect(0, 0, 20, 10)

	pickUp(t, screen, d, 0, 0)
	d.MouseHandler(MouseMove, mouseEv(0, 9, tcell.Button1))
	render(screen, d)
	require.Equal(t, scrollDown, d.scroller.direction())

	// Other keys are swallowed while the drag is in flight.
	assert.Nil(t, d.InputHandler(keyEv(tcell.KeyRune, "x", 0)))
	assert.True(t, d.IsDragging())

	cmd := d.InputHandler(keyEv(tcell.KeyEscape, "", 0))
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.False(t, d.IsDragging())
	assert.Equal(t, dragSession{}, d.session)
	assert.Nil(t, d.float)
	assert.Empty(t, adapter.drops)
	assert.Equal(t, scrollStopped, d.scroller.direction())
	assert.Equal(t, 0, sched.pending(), "edge scrolling stops with the drag")

	render(screen, d)
	assert.Equal(t, "row0", screen.rowText(0))
	for _, child := range d.lastDraw {
		assert.Equal(t, 2, child.height)
	}
}

func TestKeyboardReorder(t *testing.T) {
	screen := newTestScreen(20, 12)
	adapter := uniformRows(4, 2)
	head := newTestItem()
	head.label = "head"
	d := NewDragList().SetAdapter(adapter).SetDropFunc(adapter.move)
	d.AddHeaderRow(head)
	d.SetRect(0, 0, 20, 12)
	render(screen, d)

	require.Len(t, d.Keybinds(), 2)

	d.SetCursor(2)
	require.Equal(t, 1, d.CursorRow())

	cmd := d.InputHandler(keyEv(tcell.KeyUp, "", tcell.ModShift))
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.Equal(t, [][2]int{{1, 0}}, adapter.drops)
	assert.Equal(t, 1, d.Cursor(), "cursor follows the row")
	assert.Equal(t, 0, d.CursorRow())

	cmd = d.InputHandler(keyEv(tcell.KeyDown, "", tcell.ModShift))
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.Equal(t, [][2]int{{1, 0}, {0, 1}}, adapter.drops)
	assert.Equal(t, 2, d.Cursor())

	// The last row cannot move further down.
	d.SetCursor(4)
	assert.Nil(t, d.InputHandler(keyEv(tcell.KeyDown, "", tcell.ModShift)))
	assert.Len(t, adapter.drops, 2)

	// The header is not a draggable row.
	d.SetCursor(0)
	assert.Equal(t, -1, d.CursorRow())
	assert.Nil(t, d.InputHandler(keyEv(tcell.KeyUp, "", tcell.ModShift)))

	options := DefaultOptions()
	options.SortEnabled = false
	d.SetOptions(options)
	d.SetCursor(2)
	assert.Nil(t, d.InputHandler(keyEv(tcell.KeyUp, "", tcell.ModShift)), "sorting disabled")
	assert.Len(t, adapter.drops, 2)
}

func TestHandleHitGatesPickup(t *testing.T) {
	t.Run("handle column", func(t *testing.T) {
		screen := newTestScreen(20, 12)
		d := NewDragList().SetAdapter(newTextAdapter("alpha", "beta", "gamma", "delta"))
		d.SetRect(0, 0, 20, 12)
		render(screen, d)

		// Off the handle the press is an ordinary click.
		p, cmd := d.MouseHandler(MouseLeftDown, mouseEv(5, 0, tcell.Button1))
		assert.Nil(t, p)
		assert.Equal(t, BatchCommand{SetFocusCommand{Target: d}, ConsumeEventCommand{}}, cmd)
		assert.False(t, d.IsDragging())

		p, cmd = d.MouseHandler(MouseLeftDown, mouseEv(1, 0, tcell.Button1))
		assert.Same(t, d, p)
		assert.Equal(t, BatchCommand{SetFocusCommand{Target: d}, RedrawCommand{}}, cmd)
		assert.True(t, d.IsDragging())
	})

	t.Run("hidden handle", func(t *testing.T) {
		screen := newTestScreen(20, 12)
		adapter := newTextAdapter("alpha", "beta")
		adapter.noHandles = true
		d := NewDragList().SetAdapter(adapter)
		d.SetRect(0, 0, 20, 12)
		render(screen, d)

		_, cmd := d.MouseHandler(MouseLeftDown, mouseEv(1, 0, tcell.Button1))
		assert.Equal(t, BatchCommand{SetFocusCommand{Target: d}, ConsumeEventCommand{}}, cmd)
		assert.False(t, d.IsDragging())
	})

	t.Run("dragging disabled", func(t *testing.T) {
		screen := newTestScreen(20, 12)
		options := DefaultOptions()
		options.DragEnabled = false
		d := NewDragList().SetAdapter(newTextAdapter("alpha", "beta")).SetOptions(options)
		d.SetRect(0, 0, 20, 12)
		render(screen, d)

		_, cmd := d.MouseHandler(MouseLeftDown, mouseEv(1, 0, tcell.Button1))
		assert.Equal(t, BatchCommand{SetFocusCommand{Target: d}, ConsumeEventCommand{}}, cmd)
		assert.False(t, d.IsDragging())
	})
}

func TestClickMovesCursor(t *testing.T) {
	screen := newTestScreen(20, 12)
	d := NewDragList().SetAdapter(uniformRows(4, 2))
	d.SetRect(0, 0, 20, 12)
	render(screen, d)

	p, cmd := d.MouseHandler(MouseLeftClick, mouseEv(3, 5, tcell.Button1))
	assert.Nil(t, p)
	assert.Equal(t, BatchCommand{SetFocusCommand{Target: d}, RedrawCommand{}}, cmd)
	assert.Equal(t, 2, d.Cursor())

	// Clicks below the last row leave the cursor alone.
	d.MouseHandler(MouseLeftClick, mouseEv(3, 11, tcell.Button1))
	assert.Equal(t, 2, d.Cursor())
}

func TestHeaderFooterBounds(t *testing.T) {
	newList := func() (*testScreen, *stubAdapter, *DragList) {
		screen := newTestScreen(20, 12)
		adapter := uniformRows(4, 2)
		top0 := newTestItem()
		top0.label = "title"
		top1 := newTestItem()
		top1.label = "subtitle"
		foot := newTestItem()
		foot.label = "footer"
		d := NewDragList().SetAdapter(adapter).SetDropFunc(adapter.move)
		d.AddHeaderRow(top0)
		d.AddHeaderRow(top1)
		d.AddFooterRow(foot)
		d.SetRect(0, 0, 20, 12)
		return screen, adapter, d
	}

	t.Run("float clamps to the partition", func(t *testing.T) {
		screen, adapter, d := newList()
		pickUp(t, screen, d, 0, 2)
		require.Equal(t, 2, d.session.sourceIndex)

		d.MouseHandler(MouseMove, mouseEv(0, 0, tcell.Button1))
		assert.Equal(t, 2, d.session.floatTop, "held below the headers")

		d.MouseHandler(MouseMove, mouseEv(0, 50, tcell.Button1))
		assert.Equal(t, 8, d.session.floatTop, "held above the footer")

		render(screen, d)
		d.MouseHandler(MouseLeftUp, mouseEv(0, 50, tcell.ButtonNone))
		assert.Equal(t, [][2]int{{0, 3}}, adapter.drops, "drop reported in adapter rows")
	})

	t.Run("drop above maps to adapter rows", func(t *testing.T) {
		screen, adapter, d := newList()
		pickUp(t, screen, d, 0, 4)
		require.Equal(t, 3, d.session.sourceIndex)

		d.MouseHandler(MouseMove, mouseEv(0, 0, tcell.Button1))
		render(screen, d)
		d.MouseHandler(MouseLeftUp, mouseEv(0, 0, tcell.ButtonNone))
		assert.Equal(t, [][2]int{{1, 0}}, adapter.drops)
	})

	t.Run("headers and footers are not draggable", func(t *testing.T) {
		screen, _, d := newList()
		render(screen, d)

		_, cmd := d.MouseHandler(MouseLeftDown, mouseEv(0, 0, tcell.Button1))
		assert.Equal(t, BatchCommand{SetFocusCommand{Target: d}, ConsumeEventCommand{}}, cmd)
		assert.False(t, d.IsDragging())

		_, cmd = d.MouseHandler(MouseLeftDown, mouseEv(0, 10, tcell.Button1))
		assert.Equal(t, BatchCommand{SetFocusCommand{Target: d}, ConsumeEventCommand{}}, cmd)
		assert.False(t, d.IsDragging())
	})
}

func TestWheelWhileDragging(t *testing.T) {
	screen := newTestScreen(20, 10)
	d := NewDragList().SetAdapter(uniformRows(12, 2))
	d.SetRect(0, 0, 20, 10)

	pickUp(t, screen, d, 0, 0)

	p, cmd := d.MouseHandler(MouseScrollDown, mouseEv(0, 5, tcell.ButtonNone))
	assert.Same(t, d, p, "wheel stays captured")
	assert.Equal(t, ConsumeEventCommand{}, cmd)
	assert.Equal(t, 0, d.scroll.pending)

	d.CancelDrag()

	p, cmd = d.MouseHandler(MouseScrollDown, mouseEv(0, 5, tcell.ButtonNone))
	assert.Nil(t, p)
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.Equal(t, 3, d.scroll.pending)

	d.MouseHandler(MouseScrollUp, mouseEv(0, 5, tcell.ButtonNone))
	assert.Equal(t, 0, d.scroll.pending)
}

func TestDropAfterScrollRestoresViewport(t *testing.T) {
	screen := newTestScreen(20, 10)
	adapter := uniformRows(12, 2)
	d := NewDragList().SetAdapter(adapter).SetDropFunc(adapter.move)
	d.SetRect(0, 0, 20, 10)

	pickUp(t, screen, d, 0, 0)
	d.MouseHandler(MouseMove, mouseEv(0, 9, tcell.Button1))
	render(screen, d)

	// Feed the draw a pending scroll the way a scroller tick would.
	d.dragScrollY = -4
	render(screen, d)

	pre := d.lastDraw[0]
	require.Equal(t, 2, pre.index)
	require.Equal(t, -1, pre.row)
	require.Equal(t, 6, d.session.targetIndex)

	// The source scrolled off above the window, so dropping re-anchors the
	// viewport one row up to absorb the collapsed slot disappearing.
	d.MouseHandler(MouseLeftUp, mouseEv(0, 9, tcell.ButtonNone))
	assert.Equal(t, [][2]int{{0, 6}}, adapter.drops)
	assert.Equal(t, 1, d.scroll.top)
	assert.Equal(t, 1, d.scroll.offset)
	assert.Equal(t, 0, d.scroll.pending)
	assert.False(t, d.IsDragging())
}

func TestExpansionDividers(t *testing.T) {
	newList := func() (*testScreen, *DragList) {
		screen := newTestScreen(20, 20)
		adapter := uniformRows(6, 2)
		d := NewDragList().SetAdapter(adapter).SetDropFunc(adapter.move)
		d.SetGap(1)
		d.SetRect(0, 0, 20, 20)
		return screen, d
	}
	divider := strings.Repeat(GlyphDivider, 20)

	t.Run("below the landing content dragging down", func(t *testing.T) {
		screen, d := newList()
		pickUp(t, screen, d, 0, 0)
		require.Equal(t, 0, d.session.sourceIndex)

		// While the expansion sits on the source slot nothing is marked.
		for row := 0; row < 20; row++ {
			assert.NotContains(t, screen.rowText(row), GlyphDivider)
		}

		d.MouseHandler(MouseMove, mouseEv(0, 7, tcell.Button1))
		render(screen, d)
		require.Equal(t, 4, d.session.firstExpanded)
		require.Equal(t, 4, d.session.secondExpanded)

		// Below the source the landing slot keeps its content at the slot top
		// and the divider marks the gap under it. The collapsed source row
		// stays bare.
		assert.Equal(t, "row4", screen.rowText(11))
		assert.Equal(t, divider, screen.rowText(13))
		assert.Equal(t, "", screen.rowText(14))
		assert.Equal(t, "", screen.rowText(0))
		assert.Equal(t, "", screen.rowText(1))

		marked := 0
		for row := 0; row < 20; row++ {
			if strings.Contains(screen.rowText(row), GlyphDivider) {
				marked++
			}
		}
		assert.Equal(t, 1, marked, "a single-slot expansion draws one divider")
	})

	t.Run("above the landing content dragging up", func(t *testing.T) {
		screen, d := newList()
		pickUp(t, screen, d, 0, 9)
		require.Equal(t, 3, d.session.sourceIndex)

		d.MouseHandler(MouseMove, mouseEv(0, 4, tcell.Button1))
		render(screen, d)
		require.Equal(t, 1, d.session.firstExpanded)
		require.Equal(t, 1, d.session.secondExpanded)

		// Above the source the landing slot pins its content to the slot
		// bottom, so the gap and its divider sit over the content.
		child, ok := d.drawnAt(1)
		require.True(t, ok)
		assert.Equal(t, 5, child.height)
		assert.Equal(t, "row1", screen.rowText(6))

		src, ok := d.drawnAt(3)
		require.True(t, ok)
		assert.Equal(t, 1, src.height)

		// The float hovers over the landing gap here, so check the divider
		// layer on its own.
		overlay := newTestScreen(20, 20)
		d.drawDividers(overlay)
		assert.Equal(t, divider, overlay.rowText(5))
		assert.Equal(t, "", overlay.rowText(4))
		assert.Equal(t, "", overlay.rowText(6))
	})
}

func TestSlotRecycling(t *testing.T) {
	screen := newTestScreen(20, 10)
	adapter := uniformRows(30, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetRect(0, 0, 20, 10)

	render(screen, d)
	assert.Equal(t, 5, adapter.renders)
	assert.Len(t, d.slots, 5)

	// Jumping to a disjoint window recycles the old slots into the bin; the
	// bin is still empty while this window builds.
	d.scroll.top = 10
	render(screen, d)
	assert.Equal(t, 10, adapter.renders)
	assert.Equal(t, 0, adapter.reused)
	assert.Len(t, d.slots, 5)

	// The next window builds its rows out of the recycled items, then parks
	// its own predecessors for the jump after that.
	d.scroll.top = 20
	render(screen, d)
	assert.Equal(t, 15, adapter.renders)
	assert.Equal(t, 5, adapter.reused)
	assert.Len(t, d.recycle[0], 5)
	for position := range d.slots {
		assert.GreaterOrEqual(t, position, 20)
		assert.LessOrEqual(t, position, 24)
	}
}

func TestScrollBarFeedStaysWindowed(t *testing.T) {
	screen := newTestScreen(20, 10)
	adapter := uniformRows(500, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetScrollBar(NewScrollBar())
	d.SetRect(0, 0, 20, 10)

	// The bar needs the total row count every frame; that count comes from
	// the adapter, so feeding it must not build rows beyond the window.
	render(screen, d)
	assert.Equal(t, 5, adapter.renders)
	bar := d.GetScrollBar()
	assert.Equal(t, 500, bar.contentLen)
	assert.Equal(t, 5, bar.viewportLen)
	assert.Equal(t, 0, bar.offset)

	render(screen, d)
	render(screen, d)
	assert.Equal(t, 5, adapter.renders, "steady frames build nothing")

	// A wheel notch scrolls three lines; only the rows entering the window
	// get built.
	d.MouseHandler(MouseScrollDown, mouseEv(0, 5, tcell.ButtonNone))
	render(screen, d)
	assert.Equal(t, 7, adapter.renders)
	assert.Equal(t, 1, bar.offset)

	// Jumping to the end realizes one window from the tail, not the list.
	d.InputHandler(keyEv(tcell.KeyEnd, "", 0))
	render(screen, d)
	assert.Equal(t, 13, adapter.renders)
	assert.Equal(t, 495, bar.offset)
	assert.True(t, d.atEnd)

	render(screen, d)
	assert.Equal(t, 13, adapter.renders)
}

func TestRefreshRebuildsRows(t *testing.T) {
	screen := newTestScreen(20, 10)
	adapter := uniformRows(3, 2)
	d := NewDragList().SetAdapter(adapter)
	d.SetRect(0, 0, 20, 10)

	render(screen, d)
	require.Equal(t, "row0", screen.rowText(0))

	// Rendered rows are cached; data edits only show after a refresh.
	adapter.rows[0].label = "edited"
	render(screen, d)
	assert.Equal(t, "row0", screen.rowText(0))

	d.Refresh()
	render(screen, d)
	assert.Equal(t, "edited", screen.rowText(0))
}

func TestSelectionFollowsCursor(t *testing.T) {
	screen := newTestScreen(20, 12)
	d := NewDragList().SetAdapter(newTextAdapter("alpha", "beta", "gamma", "delta"))
	d.SetRect(0, 0, 20, 12)

	d.SetCursor(2)
	render(screen, d)

	assert.Equal(t, GlyphDragHandle, screen.cellText(0, 0))
	assert.True(t, d.slots[2].content.(*TextRow).selected)
	assert.False(t, d.slots[0].content.(*TextRow).selected)

	style, ok := screen.styleAt(5, 2)
	require.True(t, ok)
	assert.Equal(t, Styles.ContrastBackgroundColor, style.GetBackground())

	d.SetCursor(1)
	render(screen, d)
	assert.True(t, d.slots[1].content.(*TextRow).selected)
	assert.False(t, d.slots[2].content.(*TextRow).selected)
}
