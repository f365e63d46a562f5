package dragsort

import "time"

// gestureKind labels the events a gestureClassifier emits.
type gestureKind int

const (
	// gestureDragMove reports pointer movement while the button is held.
	gestureDragMove gestureKind = iota
	// gestureFling reports a release whose recent horizontal velocity toward
	// the right edge met the fling threshold.
	gestureFling
	// gestureRelease reports an ordinary release.
	gestureRelease
)

type gestureEvent struct {
	kind gestureKind
	x, y int
	// velocityX is the estimated horizontal speed at release, in cells per
	// second. Positive values move toward the right edge.
	velocityX float64
}

type pointerSample struct {
	x, y int
	t    time.Time
}

// velocityWindow bounds how far back samples count toward the release
// velocity. Older movement reflects where the drag has been, not how it ends.
const velocityWindow = 100 * time.Millisecond

const gestureSampleCap = 16

// gestureClassifier turns a raw pointer stream into drag gestures. It keeps a
// short ring of timestamped samples and estimates the release velocity from
// the samples inside velocityWindow.
type gestureClassifier struct {
	samples [gestureSampleCap]pointerSample
	head    int
	size    int

	// flingVelocity is the rightward speed, in cells per second, at or above
	// which a release becomes a fling. Zero or negative disables flings.
	flingVelocity float64

	now func() time.Time
}

func newGestureClassifier(flingVelocity float64) *gestureClassifier {
	return &gestureClassifier{
		flingVelocity: flingVelocity,
		now:           time.Now,
	}
}

// Begin resets the classifier and records the pickup position.
func (g *gestureClassifier) Begin(x, y int) {
	g.head = 0
	g.size = 0
	g.push(x, y)
}

// Move records a pointer position and reports it as a drag move.
func (g *gestureClassifier) Move(x, y int) gestureEvent {
	g.push(x, y)
	return gestureEvent{kind: gestureDragMove, x: x, y: y}
}

// Release records the final position and classifies the gesture.
func (g *gestureClassifier) Release(x, y int) gestureEvent {
	g.push(x, y)
	velocity := g.velocityX()
	kind := gestureRelease
	if g.flingVelocity > 0 && velocity >= g.flingVelocity {
		kind = gestureFling
	}
	return gestureEvent{kind: kind, x: x, y: y, velocityX: velocity}
}

func (g *gestureClassifier) push(x, y int) {
	index := (g.head + g.size) % gestureSampleCap
	if g.size == gestureSampleCap {
		g.head = (g.head + 1) % gestureSampleCap
		g.size--
	}
	g.samples[index] = pointerSample{x: x, y: y, t: g.now()}
	g.size++
}

// velocityX estimates the horizontal velocity, in cells per second, across
// the samples inside velocityWindow ending at the newest sample.
func (g *gestureClassifier) velocityX() float64 {
	if g.size < 2 {
		return 0
	}
	newest := g.samples[(g.head+g.size-1)%gestureSampleCap]
	oldest := newest
	for i := g.size - 2; i >= 0; i-- {
		sample := g.samples[(g.head+i)%gestureSampleCap]
		if newest.t.Sub(sample.t) > velocityWindow {
			break
		}
		oldest = sample
	}
	dt := newest.t.Sub(oldest.t).Seconds()
	if dt <= 0 {
		return 0
	}
	return float64(newest.x-oldest.x) / dt
}
