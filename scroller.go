package dragsort

import (
	"math"
	"time"
)

// ScrollProfile maps the normalized penetration into a scroll band to a
// scroll speed in cells per millisecond. Penetration is 0 at the band's inner
// edge and 1 at the list edge; it can exceed 1 when the pointer leaves the
// list. elapsed is the time since hover scrolling last started.
type ScrollProfile func(penetration float64, elapsed time.Duration) float64

// Hover-scroll directions.
const (
	scrollStopped = -1
	scrollUp      = 0
	scrollDown    = 1
)

// scrollTick is the cadence at which the scroller advances the list while the
// pointer lingers in a scroll band.
const scrollTick = 16 * time.Millisecond

// dragScroller scrolls the list while a drag hovers near its top or bottom
// edge. Each tick converts the profile speed into a cell delta, accumulates
// it on the pending drag scroll, and re-posts itself until the pointer leaves
// the band or the list hits an end.
type dragScroller struct {
	list *DragList

	scrolling bool
	abort     bool
	dir       int

	startTime time.Time
	prevTime  time.Time

	cancel func()
	now    func() time.Time
}

func newDragScroller(list *DragList) *dragScroller {
	return &dragScroller{
		list: list,
		dir:  scrollStopped,
		now:  time.Now,
	}
}

// direction returns the active scroll direction, or scrollStopped when the
// scroller is idle.
func (s *dragScroller) direction() int {
	if !s.scrolling {
		return scrollStopped
	}
	return s.dir
}

func (s *dragScroller) startScrolling(dir int) {
	if s.scrolling {
		return
	}
	scheduler := s.list.scheduler
	if scheduler == nil {
		// Without a scheduler there is nothing to drive the ticks; dragging
		// still works, the list just never scrolls on its own.
		return
	}

	now := s.now()
	s.abort = false
	s.scrolling = true
	s.startTime = now
	s.prevTime = now
	s.dir = dir
	s.cancel = scheduler.PostDelayed(0, s.run)
}

// stopScrolling stops the scroller. With now set the pending tick is
// cancelled immediately; otherwise the next tick sees the abort flag and
// winds down without scrolling.
func (s *dragScroller) stopScrolling(now bool) {
	if now {
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		s.scrolling = false
	} else {
		s.abort = true
	}
}

func (s *dragScroller) run() {
	if s.abort {
		s.scrolling = false
		return
	}

	d := s.list

	var speed float64
	switch s.dir {
	case scrollUp:
		if len(d.lastDraw) == 0 {
			s.scrolling = false
			return
		}
		top := d.lastDraw[0]
		if top.index == 0 && top.row == 0 {
			s.scrolling = false
			return
		}
		speed = d.scrollProfile(
			(d.upScrollStartYF-float64(d.lastY))/d.dragUpScrollHeight,
			s.now().Sub(s.startTime),
		)
	case scrollDown:
		if len(d.lastDraw) == 0 {
			s.scrolling = false
			return
		}
		bottom := d.lastDraw[len(d.lastDraw)-1]
		if bottom.index == d.rowCount()-1 && bottom.row+bottom.height <= d.lastRect.height {
			s.scrolling = false
			return
		}
		speed = -d.scrollProfile(
			(float64(d.lastY)-d.downScrollStartYF)/d.dragDownScrollHeight,
			s.now().Sub(s.startTime),
		)
	default:
		s.scrolling = false
		return
	}

	now := s.now()
	dt := now.Sub(s.prevTime)

	// Positive deltas shift content down, scrolling the view up.
	d.dragScrollY += int(math.Round(speed * float64(dt.Milliseconds())))
	d.MarkDirty()

	s.prevTime = now
	s.cancel = d.scheduler.PostDelayed(scrollTick, s.run)
}

// updateScrollStarts recomputes the scroll band boundaries from the list's
// inner height. Coordinates are local to the inner rect, row 0 at its top.
// The up band spans the top upScrollFraction of the list, the down band the
// bottom downScrollFraction.
func (d *DragList) updateScrollStarts() {
	height := float64(d.lastRect.height)

	d.upScrollStartYF = d.options.UpScrollFraction * height
	d.downScrollStartYF = (1 - d.options.DownScrollFraction) * height
	d.upScrollStartY = int(d.upScrollStartYF)
	d.downScrollStartY = int(d.downScrollStartYF)

	d.dragUpScrollHeight = d.upScrollStartYF
	d.dragDownScrollHeight = height - d.downScrollStartYF
}
