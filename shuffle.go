package dragsort

// probeCache holds one prototype row item per adapter row type. Off-screen
// rows are measured by rendering into the prototype for their type instead of
// building a fresh item per query. The cache is rebuilt whenever the adapter's
// type count changes.
type probeCache struct {
	samples []ListItem
}

// measure returns the natural content height, in cells, of the adapter row at
// index for the given width.
func (c *probeCache) measure(adapter Adapter, index int, width int) int {
	if count := adapter.RowTypeCount(); count != len(c.samples) {
		c.samples = make([]ListItem, count)
	}

	rowType := adapter.RowType(index)
	if rowType < 0 || rowType >= len(c.samples) {
		item := adapter.Render(index, nil)
		return max(item.Height(width), 1)
	}

	item := adapter.Render(index, c.samples[rowType])
	c.samples[rowType] = item
	return max(item.Height(width), 1)
}

func (c *probeCache) reset() {
	c.samples = nil
}

// drawnAt returns the row drawn at the given list position in the last draw
// pass, if it is inside the realized window.
func (d *DragList) drawnAt(position int) (listDrawnItem, bool) {
	if len(d.lastDraw) == 0 {
		return listDrawnItem{}, false
	}
	i := position - d.lastDraw[0].index
	if i < 0 || i >= len(d.lastDraw) {
		return listDrawnItem{}, false
	}
	return d.lastDraw[i], true
}

// rowCount returns the total number of list positions: headers, adapter rows,
// footers.
func (d *DragList) rowCount() int {
	count := len(d.headers) + len(d.footers)
	if d.adapter != nil {
		count += d.adapter.RowCount()
	}
	return count
}

// isAdapterRow reports whether the list position belongs to the draggable
// adapter partition.
func (d *DragList) isAdapterRow(position int) bool {
	if d.adapter == nil {
		return false
	}
	return position >= len(d.headers) && position < d.rowCount()-len(d.footers)
}

// contentHeightAt returns the natural height of the row content at a list
// position: realized rows read their live content, off-screen adapter rows go
// through the probe cache, headers and footers measure their fixed items.
func (d *DragList) contentHeightAt(position int) int {
	width := d.contentWidth(d.lastRect.width)
	numHeaders := len(d.headers)

	if position < numHeaders {
		return max(d.headers[position].Height(width), 1)
	}
	if !d.isAdapterRow(position) {
		footer := position - (d.rowCount() - len(d.footers))
		if footer >= 0 && footer < len(d.footers) {
			return max(d.footers[footer].Height(width), 1)
		}
		return 1
	}

	if slot, ok := d.slots[position]; ok {
		return max(slot.content.Height(width), 1)
	}
	return d.probes.measure(d.adapter, position-numHeaders, width)
}

// slotHeightAt returns the laid-out height of the whole row slot at a list
// position, including any in-session height adjustment. Realized rows read
// the height from the last draw; off-screen adapter rows apply the session
// adjustment to their probed content height so resolver walks crossing the
// window edge see consistent geometry.
func (d *DragList) slotHeightAt(position int, s dragSession) int {
	if child, ok := d.drawnAt(position); ok {
		return child.height
	}
	content := d.contentHeightAt(position)
	if d.isAdapterRow(position) {
		return d.adjustedSlotHeight(position, content, s)
	}
	return content
}

// adjustedSlotHeight maps the session state to the effective slot height for
// an adapter row with the given natural content height. The source slot
// shrinks toward the collapsed height, the expansion slots grow by their
// share of the floating height, everything else keeps its content height.
func (d *DragList) adjustedSlotHeight(position, contentHeight int, s dragSession) int {
	div := d.gap
	sliding := d.animate && s.firstExpanded != s.secondExpanded

	switch {
	case position == s.sourceIndex:
		if s.sourceIndex == s.firstExpanded {
			if sliding {
				return max(int(s.slideFraction*float64(s.floatingHeight)), d.collapsedHeight)
			}
			return s.floatingHeight
		}
		if s.sourceIndex == s.secondExpanded {
			// The source can only be the second slot while a slide is on.
			return max(s.floatingHeight-int(s.slideFraction*float64(s.floatingHeight)), d.collapsedHeight)
		}
		return d.collapsedHeight
	case position == s.firstExpanded:
		if sliding {
			return contentHeight + div + int(s.slideFraction*float64(s.floatingHeight))
		}
		return contentHeight + div + s.floatingHeight
	case position == s.secondExpanded:
		return contentHeight + div + (s.floatingHeight - int(s.slideFraction*float64(s.floatingHeight)))
	}
	return contentHeight
}

// shuffleEdge returns the y-coordinate of the shuffle line between position-1
// and position, for the layout where the top of the slot at position is at
// top. A floating row centered immediately above the line lands in
// position-1; immediately below it lands in position.
//
// The arithmetic is asymmetric between the expansion sitting on/above the
// source slot and sitting below it; the two branch families are deliberately
// kept separate.
func (d *DragList) shuffleEdge(position, top int, s dragSession) int {
	numHeaders := len(d.headers)
	numFooters := len(d.footers)
	count := d.rowCount()

	// Shuffle edges only exist between draggable rows; there are N-1 of them
	// for N draggable rows.
	if position <= numHeaders || position >= count-numFooters {
		return top
	}

	div := d.gap

	var edge int
	if s.secondExpanded <= s.sourceIndex {
		// Rows are expanded on and/or above the source slot.
		switch {
		case position <= s.firstExpanded:
			edge = top + (s.floatingHeight-div-d.slotHeightAt(position-1, s))/2
		case position == s.secondExpanded:
			if position == s.sourceIndex {
				edge = top + d.slotHeightAt(position, s) - (2*div+d.contentHeightAt(position-1)+s.floatingHeight)/2
			} else {
				blank := d.slotHeightAt(position, s) - d.contentHeightAt(position) - div
				edge = top + (blank-d.slotHeightAt(position-1, s))/2
			}
		case position < s.sourceIndex:
			edge = top - (d.contentHeightAt(position-1)+2*div+s.floatingHeight)/2
		case position == s.sourceIndex:
			edge = top + d.collapsedHeight - (2*div+d.contentHeightAt(position-1)+s.floatingHeight)/2
		default:
			edge = top + (d.slotHeightAt(position, s)-s.floatingHeight)/2
		}
	} else {
		// Rows are expanded on and/or below the source slot.
		switch {
		case position <= s.sourceIndex:
			edge = top + (s.floatingHeight-d.slotHeightAt(position-1, s)-div)/2
		case position <= s.firstExpanded:
			edge = top + (d.contentHeightAt(position)+div+s.floatingHeight)/2
			if position-1 == s.sourceIndex {
				edge -= d.collapsedHeight + div
			}
		case position == s.secondExpanded:
			var blankAbove int
			if position-1 == s.sourceIndex {
				blankAbove = d.slotHeightAt(position-1, s)
			} else {
				blankAbove = d.slotHeightAt(position-1, s) - d.contentHeightAt(position-1) - div
			}
			edge = top - blankAbove - div + (d.contentHeightAt(position)+div+s.floatingHeight)/2
		default:
			edge = top + (d.slotHeightAt(position, s)-s.floatingHeight)/2
		}
	}

	return edge
}

// resolveShuffle re-resolves the landing slot for the session's current
// floating center. It resumes from the previous resolution and walks one slot
// at a time, so the cost is proportional to how far the float moved, not to
// the list size. The second return is false when nothing changed and callers
// can skip relayout.
func (d *DragList) resolveShuffle(s dragSession) (dragSession, bool) {
	if len(d.lastDraw) == 0 || d.adapter == nil {
		return s, false
	}

	first := d.lastDraw[0].index
	startPos := s.firstExpanded
	start, ok := d.drawnAt(startPos)
	if !ok {
		// The previous slot scrolled out of the window; reseed from its
		// middle.
		startPos = first + len(d.lastDraw)/2
		start, ok = d.drawnAt(startPos)
		if !ok {
			return s, false
		}
	}
	startTop := start.row + d.dragScrollY

	edge := d.shuffleEdge(startPos, startTop, s)
	lastEdge := edge

	itemPos := startPos
	itemTop := startTop
	count := d.rowCount()
	if s.floatingY < edge {
		// Scanning up for the float slot.
		for itemPos >= 0 {
			itemPos--

			if itemPos == 0 {
				edge = itemTop - d.slotHeightAt(itemPos, s)
				break
			}

			itemTop -= d.slotHeightAt(itemPos, s)
			edge = d.shuffleEdge(itemPos, itemTop, s)

			if s.floatingY >= edge {
				break
			}

			lastEdge = edge
		}
	} else {
		// Scanning down for the float slot.
		for itemPos < count {
			if itemPos == count-1 {
				edge = itemTop + d.slotHeightAt(itemPos, s)
				break
			}

			itemTop += d.slotHeightAt(itemPos, s)
			edge = d.shuffleEdge(itemPos+1, itemTop, s)

			if s.floatingY < edge {
				break
			}

			lastEdge = edge
			itemPos++
		}
	}

	numHeaders := len(d.headers)
	numFooters := len(d.footers)

	oldFirst := s.firstExpanded
	oldSecond := s.secondExpanded
	oldFraction := s.slideFraction

	if d.animate {
		edgeToEdge := edge - lastEdge
		if edgeToEdge < 0 {
			edgeToEdge = -edgeToEdge
		}

		var edgeTop, edgeBottom int
		if s.floatingY < edge {
			edgeBottom = edge
			edgeTop = lastEdge
		} else {
			edgeTop = edge
			edgeBottom = lastEdge
		}

		slideRegion := int(0.5 * d.slideRegionFrac * float64(edgeToEdge))
		slideRegionF := float64(slideRegion)
		slideEdgeTop := edgeTop + slideRegion
		slideEdgeBottom := edgeBottom - slideRegion

		// Three regions: slide into the slot above, dead middle, slide into
		// the slot below. The fraction hits 0.5 exactly at a raw edge.
		switch {
		case s.floatingY < slideEdgeTop:
			s.firstExpanded = itemPos - 1
			s.secondExpanded = itemPos
			s.slideFraction = 0.5 * float64(slideEdgeTop-s.floatingY) / slideRegionF
		case s.floatingY < slideEdgeBottom:
			s.firstExpanded = itemPos
			s.secondExpanded = itemPos
		default:
			s.firstExpanded = itemPos
			s.secondExpanded = itemPos + 1
			s.slideFraction = 0.5 * (1.0 + float64(edgeBottom-s.floatingY)/slideRegionF)
		}
	} else {
		s.firstExpanded = itemPos
		s.secondExpanded = itemPos
	}

	// Clamp into the draggable partition.
	if s.firstExpanded < numHeaders {
		itemPos = numHeaders
		s.firstExpanded = itemPos
		s.secondExpanded = itemPos
	} else if s.secondExpanded >= count-numFooters {
		itemPos = count - numFooters - 1
		s.firstExpanded = itemPos
		s.secondExpanded = itemPos
	}

	changed := s.firstExpanded != oldFirst || s.secondExpanded != oldSecond || s.slideFraction != oldFraction
	if itemPos != s.targetIndex {
		s.targetIndex = itemPos
		changed = true
	}

	return s, changed
}
