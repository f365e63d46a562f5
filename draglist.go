package dragsort

import (
	"time"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/dragsort/keybind"
)

// Adapter supplies the draggable rows of a DragList. Row indexes are dense,
// from 0 to RowCount()-1, and must stay stable for the duration of a drag;
// mutate the backing data from the drop and remove handlers, not underneath a
// running drag.
type Adapter interface {
	// RowCount returns the number of rows.
	RowCount() int
	// RowType returns the reuse type of the row at index, in
	// [0, RowTypeCount()).
	RowType(index int) int
	// RowTypeCount returns the number of distinct row types.
	RowTypeCount() int
	// Render returns the item showing the row at index. reuse, when non-nil,
	// is a previously rendered item of the same type which may be updated and
	// returned instead of building a new one.
	Render(index int, reuse ListItem) ListItem
}

// HandleHitter is implemented by row items which define their own drag handle
// region. x and y are relative to the row's top-left corner. Rows without it
// use the handle width from Options, measured from the row's left edge.
type HandleHitter interface {
	HandleHit(x, y int) bool
}

// Selectable is implemented by row items which render a cursor highlight. The
// list calls SetSelected on every build pass, so rows without it simply never
// show the cursor.
type Selectable interface {
	SetSelected(selected bool)
}

// dragSession is the state of a single drag, alive from pickup until the row
// is dropped, removed, or the drag is cancelled. All coordinates are local to
// the list's inner rectangle.
type dragSession struct {
	// List position the row was picked up from.
	sourceIndex int
	// List position the row lands on if dropped now.
	targetIndex int

	// The slot gap for the floating row spans up to two adjacent slots;
	// firstExpanded <= secondExpanded <= firstExpanded+1. While they differ,
	// slideFraction in [0, 1] is the share of the floating height carried by
	// the first slot.
	firstExpanded  int
	secondExpanded int
	slideFraction  float64

	floatingHeight int
	// Center of the floating row, the coordinate the resolver works with.
	floatingY int

	// Pointer offset inside the grabbed row.
	grabX int
	grabY int

	// Current position of the floating row's top-left corner.
	floatX   int
	floatTop int
	alpha    float64
}

// rowSlot wraps an adapter row so the slot's height can deviate from the
// content height while a drag is in flight. The content keeps its natural
// height inside the slot; the leftover blank space sits above the content for
// rows below the drag source and below it for rows above, so the gap always
// faces the slot the floating row came out of.
type rowSlot struct {
	*Box
	list    *DragList
	index   int
	content ListItem
}

func (r *rowSlot) Height(width int) int {
	content := max(r.content.Height(width), 1)
	if !r.list.dragging {
		return content
	}
	return r.list.adjustedSlotHeight(r.index, content, r.list.session)
}

func (r *rowSlot) Draw(screen tcell.Screen) {
	d := r.list
	if d.dragging && d.srcHidden && r.index == d.session.sourceIndex {
		return
	}

	x, y, width, height := r.GetRect()
	content := max(r.content.Height(width), 1)
	if content > height {
		content = height
	}

	cy := y
	if d.dragging && content < height && r.index < d.session.sourceIndex {
		cy = y + height - content
	}
	r.content.SetRect(x, cy, width, content)
	r.content.Draw(screen)
}

func (r *rowSlot) IsDirty() bool {
	return r.Box.IsDirty() || r.content.IsDirty()
}

func (r *rowSlot) MarkClean() {
	r.Box.MarkClean()
	r.content.MarkClean()
}

var _ ListItem = &rowSlot{}

// DragList is a List whose rows can be reordered by dragging them with the
// mouse. Rows are supplied by an Adapter and may be framed by fixed header
// and footer rows which never move. Picking a row up by its drag handle lifts
// it out of the list; while it floats, the remaining rows shuffle around the
// gap it would drop into, the list scrolls when the pointer lingers near an
// edge, and releasing the row reports the reorder through the drop handler.
type DragList struct {
	*List

	adapter Adapter
	headers []ListItem
	footers []ListItem

	options         Options
	collapsedHeight int
	slideRegionFrac float64
	animate         bool

	drop   func(from, to int)
	remove func(index int)

	scheduler     Scheduler
	scroller      *dragScroller
	scrollProfile ScrollProfile
	gesture       *gestureClassifier

	dragging  bool
	session   dragSession
	float     *rowSnapshot
	srcHidden bool

	slots   map[int]*rowSlot
	recycle map[int][]ListItem
	probes  probeCache

	// Pending drag scroll in cells; positive shifts content down.
	dragScrollY int
	lastY       int
	downY       int

	upScrollStartY       int
	downScrollStartY     int
	upScrollStartYF      float64
	downScrollStartYF    float64
	dragUpScrollHeight   float64
	dragDownScrollHeight float64

	moveUp   keybind.Keybind
	moveDown keybind.Keybind
}

// NewDragList returns a new drag list with default options.
func NewDragList() *DragList {
	d := &DragList{
		List:    NewList(),
		slots:   map[int]*rowSlot{},
		recycle: map[int][]ListItem{},
		moveUp: keybind.NewKeybind(
			keybind.WithKeys("shift+up"),
			keybind.WithHelp("shift+↑", "move row up"),
		),
		moveDown: keybind.NewKeybind(
			keybind.WithKeys("shift+down"),
			keybind.WithHelp("shift+↓", "move row down"),
		),
	}
	d.applyOptions(DefaultOptions())
	d.scroller = newDragScroller(d)
	d.scrollProfile = func(penetration float64, _ time.Duration) float64 {
		return d.options.MaxScrollSpeed * penetration
	}
	d.SetCenterCursor(false)
	d.SetBuilder(d.buildRow)
	// Feed counts from the adapter so the scroll bar never walks the builder,
	// which would realize every row.
	d.SetCountFunc(d.rowCount)
	return d
}

// SetAdapter sets the adapter supplying the draggable rows. Previously
// rendered rows are discarded.
func (d *DragList) SetAdapter(adapter Adapter) *DragList {
	d.adapter = adapter
	d.Refresh()
	return d
}

// AddHeaderRow appends a fixed row above the draggable rows. Headers neither
// move nor accept drops.
func (d *DragList) AddHeaderRow(item ListItem) *DragList {
	if item == nil {
		return d
	}
	d.headers = append(d.headers, item)
	d.Refresh()
	return d
}

// AddFooterRow appends a fixed row below the draggable rows.
func (d *DragList) AddFooterRow(item ListItem) *DragList {
	if item == nil {
		return d
	}
	d.footers = append(d.footers, item)
	d.Refresh()
	return d
}

// SetOptions replaces the list's options. Values outside their documented
// ranges are clamped.
func (d *DragList) SetOptions(options Options) *DragList {
	d.applyOptions(options)
	d.MarkDirty()
	return d
}

// GetOptions returns the current options.
func (d *DragList) GetOptions() Options {
	return d.options
}

func (d *DragList) applyOptions(options Options) {
	options.normalize()
	d.options = options
	d.collapsedHeight = options.CollapsedHeight
	d.slideRegionFrac = options.SlideRegionFraction
	d.animate = options.SlideRegionFraction > 0
	d.gesture = newGestureClassifier(options.FlingVelocity)
}

// SetDropFunc sets the handler called when a floating row is dropped. from
// and to are adapter row indexes; the handler is expected to reorder the
// backing data. It is called even when from equals to.
func (d *DragList) SetDropFunc(handler func(from, to int)) *DragList {
	d.drop = handler
	return d
}

// SetRemoveFunc sets the handler called when a floating row is flung or slid
// off the list. index is an adapter row index; the handler is expected to
// delete the row from the backing data.
func (d *DragList) SetRemoveFunc(handler func(index int)) *DragList {
	d.remove = handler
	return d
}

// SetScheduler sets the scheduler driving edge scrolling while a drag hovers
// near the top or bottom of the list. Without one, dragging still works but
// the list never scrolls on its own.
func (d *DragList) SetScheduler(scheduler Scheduler) *DragList {
	d.scheduler = scheduler
	return d
}

// SetScrollProfile sets the speed profile for drag scrolling. Passing nil
// restores the default linear profile capped at the configured maximum
// speed.
func (d *DragList) SetScrollProfile(profile ScrollProfile) *DragList {
	if profile == nil {
		profile = func(penetration float64, _ time.Duration) float64 {
			return d.options.MaxScrollSpeed * penetration
		}
	}
	d.scrollProfile = profile
	return d
}

// Refresh discards all rendered rows so the next draw rebuilds them from the
// adapter. Call it after mutating the backing data outside of the drop and
// remove handlers.
func (d *DragList) Refresh() *DragList {
	d.invalidateRows()
	d.MarkDirty()
	return d
}

// IsDragging reports whether a drag is in flight.
func (d *DragList) IsDragging() bool {
	return d.dragging
}

// CursorRow returns the adapter row index under the cursor, or -1 when the
// cursor is not on an adapter row.
func (d *DragList) CursorRow() int {
	cursor := d.Cursor()
	if cursor < 0 || !d.isAdapterRow(cursor) {
		return -1
	}
	return cursor - len(d.headers)
}

// Keybinds returns the list's reorder keybinds for display in a help view.
func (d *DragList) Keybinds() []keybind.Keybind {
	return []keybind.Keybind{d.moveUp, d.moveDown}
}

// CancelDrag abandons a drag in flight. The floating row snaps back to its
// source slot and no handler is called.
func (d *DragList) CancelDrag() {
	if !d.dragging {
		return
	}
	d.scroller.stopScrolling(true)
	d.clearSession()
	d.MarkDirty()
}

// Draw draws this primitive onto the screen.
func (d *DragList) Draw(screen tcell.Screen) {
	if d.dragging {
		if d.float == nil {
			if slot, ok := d.slots[d.session.sourceIndex]; ok {
				_, _, width, _ := d.GetInnerRect()
				d.float = captureRowSnapshot(screen, slot.content, d.contentWidth(width))
			}
		}

		oldFirstExpanded := d.session.firstExpanded
		if d.options.SortEnabled {
			d.session, _ = d.resolveShuffle(d.session)
		}
		if d.dragScrollY != 0 {
			d.applyDragScroll(oldFirstExpanded)
		}
	}

	d.List.Draw(screen)
	d.updateScrollStarts()
	d.pruneSlots()

	if d.dragging {
		d.drawDividers(screen)
		if d.float != nil {
			clipped := newClippedScreen(screen, d.lastRect.x, d.lastRect.y, d.lastRect.width, d.lastRect.height)
			d.float.drawAt(clipped, d.lastRect.x+d.session.floatX, d.lastRect.y+d.session.floatTop, d.session.alpha, d.backdropColor())
		}
	}
}

// InputHandler handles key events for this primitive.
func (d *DragList) InputHandler(event *tcell.EventKey) Command {
	if d.dragging {
		if event.Key() == tcell.KeyEscape {
			d.CancelDrag()
			return RedrawCommand{}
		}
		return nil
	}

	switch {
	case keybind.Matches(event, d.moveUp):
		if d.moveCursorRow(-1) {
			return RedrawCommand{}
		}
		return nil
	case keybind.Matches(event, d.moveDown):
		if d.moveCursorRow(1) {
			return RedrawCommand{}
		}
		return nil
	}

	return d.List.InputHandler(event)
}

// MouseHandler handles mouse events for this primitive. While a drag is in
// flight the handler keeps the mouse captured so the drag survives the
// pointer leaving the list.
func (d *DragList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()

	if d.dragging {
		switch action {
		case MouseMove, MouseLeftDown:
			d.dragMove(x, y)
			return d, RedrawCommand{}
		case MouseLeftUp:
			d.finishDrag(x, y)
			return nil, RedrawCommand{}
		case MouseScrollUp, MouseScrollDown:
			// The wheel is gobbled while dragging; edge scrolling owns the
			// viewport.
			return d, ConsumeEventCommand{}
		}
		return d, nil
	}

	if !d.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		if d.startDrag(x, y) {
			return d, BatchCommand{SetFocusCommand{Target: d}, RedrawCommand{}}
		}
		return nil, BatchCommand{SetFocusCommand{Target: d}, ConsumeEventCommand{}}
	case MouseLeftClick:
		index := d.indexAtPoint(x, y)
		if index >= 0 {
			d.SetCursor(index)
		}
		return nil, BatchCommand{SetFocusCommand{Target: d}, RedrawCommand{}}
	case MouseScrollUp:
		d.scroll.pending -= 3
		d.MarkDirty()
		return nil, RedrawCommand{}
	case MouseScrollDown:
		d.scroll.pending += 3
		d.MarkDirty()
		return nil, RedrawCommand{}
	}

	return nil, nil
}

// startDrag attempts to pick up the row under the pointer. It returns false
// when the press misses a drag handle and should be treated as an ordinary
// click.
func (d *DragList) startDrag(x, y int) bool {
	if !d.options.DragEnabled || d.adapter == nil {
		return false
	}

	index := d.indexAtPoint(x, y)
	if index < 0 || !d.isAdapterRow(index) {
		return false
	}
	child, ok := d.drawnAt(index)
	if !ok {
		return false
	}

	localX := x - d.lastRect.x
	localY := y - d.lastRect.y
	rowX := localX
	rowY := localY - child.row
	if !d.handleHit(index, rowX, rowY) {
		return false
	}

	d.dragging = true
	d.float = nil
	d.srcHidden = false
	d.session = dragSession{
		sourceIndex:    index,
		targetIndex:    index,
		firstExpanded:  index,
		secondExpanded: index,
		floatingHeight: child.height,
		grabX:          rowX,
		grabY:          rowY,
	}
	d.downY = localY
	d.lastY = localY
	d.dragScrollY = 0
	d.gesture.Begin(localX, localY)
	d.positionFloat(localX, localY)
	d.MarkDirty()
	return true
}

func (d *DragList) handleHit(index, rowX, rowY int) bool {
	slot, ok := d.slots[index]
	if !ok {
		return false
	}
	if hitter, ok := slot.content.(HandleHitter); ok {
		return hitter.HandleHit(rowX, rowY)
	}
	return rowX >= 0 && rowX < d.options.HandleWidth
}

func (d *DragList) dragMove(x, y int) {
	localX := x - d.lastRect.x
	localY := y - d.lastRect.y

	if d.lastY == d.downY {
		// First movement after the pickup; the source slot stops drawing its
		// content and only its collapsed remainder stays behind.
		d.srcHidden = true
	}

	d.gesture.Move(localX, localY)
	d.positionFloat(localX, localY)

	switch {
	case localY > d.lastY && localY > d.downScrollStartY && d.scroller.direction() != scrollDown:
		if d.scroller.direction() != scrollStopped {
			d.scroller.stopScrolling(true)
		}
		d.scroller.startScrolling(scrollDown)
	case localY < d.lastY && localY < d.upScrollStartY && d.scroller.direction() != scrollUp:
		if d.scroller.direction() != scrollStopped {
			d.scroller.stopScrolling(true)
		}
		d.scroller.startScrolling(scrollUp)
	case localY >= d.upScrollStartY && localY <= d.downScrollStartY && d.scroller.direction() != scrollStopped:
		d.scroller.stopScrolling(true)
	}

	d.lastY = localY
	d.MarkDirty()
}

// positionFloat moves the floating row to follow the pointer, clamped so it
// never leaves the draggable partition, and updates its fade for the slide
// remove modes.
func (d *DragList) positionFloat(x, y int) {
	s := &d.session
	width := d.lastRect.width

	alpha := d.options.FloatAlpha
	switch d.removeMode() {
	case RemoveSlideRight:
		if x > width/2 {
			alpha = alpha * float64(width-x) / float64(width/2)
		}
	case RemoveSlideLeft:
		if x < width/2 {
			alpha = alpha * float64(x) / float64(width/2)
		}
	}
	s.alpha = alpha

	if d.removeMode() == RemoveFling {
		s.floatX = x - s.grabX
	} else {
		s.floatX = 0
	}

	topLimit := 0
	if len(d.headers) > 0 {
		if header, ok := d.drawnAt(len(d.headers) - 1); ok {
			topLimit = header.row + header.height
		}
	}
	bottomLimit := d.lastRect.height
	if last, ok := d.drawnAt(d.rowCount() - len(d.footers) - 1); ok {
		bottomLimit = last.row + last.height
	}

	floatTop := y - s.grabY
	if floatTop < topLimit {
		floatTop = topLimit
	} else if floatTop+s.floatingHeight > bottomLimit {
		floatTop = bottomLimit - s.floatingHeight
	}
	s.floatTop = floatTop
	s.floatingY = floatTop + s.floatingHeight/2
	d.MarkDirty()
}

func (d *DragList) finishDrag(x, y int) {
	localX := x - d.lastRect.x
	localY := y - d.lastRect.y
	release := d.gesture.Release(localX, localY)

	width := d.lastRect.width
	removeRow := false
	switch d.removeMode() {
	case RemoveSlideRight:
		removeRow = localX > width*3/4
	case RemoveSlideLeft:
		removeRow = localX < width/4
	case RemoveFling:
		removeRow = release.kind == gestureFling && localX > width*2/3
	}

	d.dropFloat(removeRow)
}

// dropFloat ends the drag, delivering either the remove or the drop to the
// respective handler, and re-anchors the viewport so rows don't appear to
// jump when the collapsed source slot above it disappears.
func (d *DragList) dropFloat(removeSource bool) {
	d.scroller.stopScrolling(true)

	s := d.session
	numHeaders := len(d.headers)

	if removeSource {
		if d.remove != nil {
			d.remove(s.sourceIndex - numHeaders)
		}
	} else if d.drop != nil && s.targetIndex >= 0 && s.targetIndex < d.rowCount() {
		d.drop(s.sourceIndex-numHeaders, s.targetIndex-numHeaders)
	}

	oldSource := s.sourceIndex
	d.clearSession()
	d.invalidateRows()

	if !removeSource && len(d.lastDraw) > 0 && oldSource < d.lastDraw[0].index {
		first := d.lastDraw[0]
		d.scroll.top = max(first.index-1, 0)
		d.scroll.offset = -first.row
		d.scroll.pending = 0
		d.scroll.wantsCursor = false
	}

	d.MarkDirty()
}

func (d *DragList) clearSession() {
	d.dragging = false
	d.float = nil
	d.srcHidden = false
	d.session = dragSession{}
	d.dragScrollY = 0
}

// applyDragScroll consumes the pending drag scroll by re-anchoring the
// viewport on the first visible row when scrolling up, or the last when
// scrolling down. When the anchor row's slot height changes in the same
// layout, the anchor is compensated so the row stays put on screen.
func (d *DragList) applyDragScroll(oldFirstExpanded int) {
	scrollY := d.dragScrollY
	d.dragScrollY = 0
	if scrollY == 0 || len(d.lastDraw) == 0 {
		return
	}

	height := d.lastRect.height
	if scrollY > height {
		scrollY = height
	} else if scrollY < -height {
		scrollY = -height
	}

	if scrollY < 0 {
		// Don't overshoot past the bottom of the last row.
		last := d.lastDraw[len(d.lastDraw)-1]
		if last.index == d.rowCount()-1 {
			bottom := last.row + last.height
			if bottom >= height && bottom+scrollY < height {
				scrollY = height - bottom
			}
		}
	}

	var move listDrawnItem
	if scrollY >= 0 {
		move = d.lastDraw[0]
	} else {
		move = d.lastDraw[len(d.lastDraw)-1]
	}
	movePos := move.index

	top := move.row + scrollY
	if movePos == 0 && top > 0 {
		top = 0
	}

	heightBefore := move.height
	heightAfter := d.freshSlotHeight(movePos)
	if heightBefore != heightAfter && (movePos > oldFirstExpanded || movePos > d.session.firstExpanded) {
		top += heightBefore - heightAfter
	}

	d.scroll.top = movePos
	d.scroll.offset = -top
	d.scroll.pending = 0
	d.scroll.wantsCursor = false
	d.atEnd = false
	d.MarkDirty()
}

// freshSlotHeight returns the slot height the row would get if laid out right
// now, bypassing the realized height from the last draw.
func (d *DragList) freshSlotHeight(position int) int {
	content := d.contentHeightAt(position)
	if d.dragging && d.isAdapterRow(position) {
		return d.adjustedSlotHeight(position, content, d.session)
	}
	return content
}

// drawDividers draws the configured divider glyph across the expansion gap of
// the slots flanking the floating row, marking where the row would land.
func (d *DragList) drawDividers(screen tcell.Screen) {
	if d.options.Divider == "" || d.gap <= 0 {
		return
	}

	s := d.session
	if s.secondExpanded != s.firstExpanded && s.secondExpanded != s.sourceIndex {
		d.drawDivider(screen, s.secondExpanded)
	}
	if s.firstExpanded != s.sourceIndex {
		d.drawDivider(screen, s.firstExpanded)
	}
}

func (d *DragList) drawDivider(screen tcell.Screen, position int) {
	child, ok := d.drawnAt(position)
	if !ok {
		return
	}
	content := d.contentHeightAt(position)

	var top int
	if position > d.session.sourceIndex {
		top = child.row + content
	} else {
		top = child.row + child.height - content - d.gap
	}

	style := tcell.StyleDefault.
		Foreground(Styles.GraphicsColor).
		Background(d.GetBackgroundColor())
	for row := top; row < top+d.gap; row++ {
		if row < 0 || row >= d.lastRect.height {
			continue
		}
		for col := 0; col < d.lastRect.width; col++ {
			screen.Put(d.lastRect.x+col, d.lastRect.y+row, d.options.Divider, style)
		}
	}
}

func (d *DragList) backdropColor() tcell.Color {
	if color, ok := d.options.FloatBackgroundColor(); ok {
		return color
	}
	return Styles.FloatBackgroundColor
}

// removeMode returns the effective remove mode; disabling removal turns the
// mode off entirely, fades included.
func (d *DragList) removeMode() RemoveMode {
	if !d.options.RemoveEnabled {
		return RemoveNone
	}
	return d.options.RemoveMode
}

// moveCursorRow reorders the adapter row under the cursor by delta through
// the drop handler, then follows it with the cursor.
func (d *DragList) moveCursorRow(delta int) bool {
	if !d.options.SortEnabled || d.adapter == nil || d.drop == nil {
		return false
	}
	from := d.CursorRow()
	if from < 0 {
		return false
	}
	to := from + delta
	if to < 0 || to >= d.adapter.RowCount() {
		return false
	}

	d.drop(from, to)
	d.invalidateRows()
	d.SetCursor(d.Cursor() + delta)
	d.MarkDirty()
	return true
}

// buildRow is the list builder mapping list positions to header rows, adapter
// row slots, and footer rows.
func (d *DragList) buildRow(index, cursor int) ListItem {
	if index < 0 {
		return nil
	}
	numHeaders := len(d.headers)
	if index < numHeaders {
		return d.headers[index]
	}
	if d.adapter != nil {
		if row := index - numHeaders; row < d.adapter.RowCount() {
			return d.slotAt(index, row, index == cursor)
		}
	}
	footer := index - numHeaders
	if d.adapter != nil {
		footer -= d.adapter.RowCount()
	}
	if footer >= 0 && footer < len(d.footers) {
		return d.footers[footer]
	}
	return nil
}

func (d *DragList) slotAt(position, row int, selected bool) ListItem {
	slot, ok := d.slots[position]
	if !ok {
		var reuse ListItem
		rowType := d.adapter.RowType(row)
		if bin := d.recycle[rowType]; len(bin) > 0 {
			reuse = bin[len(bin)-1]
			d.recycle[rowType] = bin[:len(bin)-1]
		}

		slot = &rowSlot{
			Box:     NewBox(),
			list:    d,
			index:   position,
			content: d.adapter.Render(row, reuse),
		}
		bindDirtyParent(slot.content, slot.Box)
		d.slots[position] = slot
	}
	if sel, ok := slot.content.(Selectable); ok {
		sel.SetSelected(selected)
	}
	return slot
}

// pruneSlots recycles slots which fell out of the realized window.
func (d *DragList) pruneSlots() {
	if len(d.lastDraw) == 0 {
		return
	}
	first := d.lastDraw[0].index
	last := d.lastDraw[len(d.lastDraw)-1].index
	numHeaders := len(d.headers)

	for position, slot := range d.slots {
		if position >= first && position <= last {
			continue
		}
		if d.dragging && position == d.session.sourceIndex {
			continue
		}
		delete(d.slots, position)
		unbindDirtyParent(slot.content, slot.Box)
		if row := position - numHeaders; d.adapter != nil && row >= 0 && row < d.adapter.RowCount() {
			rowType := d.adapter.RowType(row)
			d.recycle[rowType] = append(d.recycle[rowType], slot.content)
		}
	}
}

// invalidateRows discards every rendered row and probe so the next draw
// rebuilds the window from the adapter.
func (d *DragList) invalidateRows() {
	for position, slot := range d.slots {
		unbindDirtyParent(slot.content, slot.Box)
		delete(d.slots, position)
	}
	d.recycle = map[int][]ListItem{}
	d.probes.reset()
}

var _ Primitive = &DragList{}
