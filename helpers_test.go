package dragsort

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/require"
)

// testScreen is an off-screen render target. It records cells into a frame
// the same way float snapshots do and reports a fixed size, which covers
// everything the drawing paths ask of a screen.
type testScreen struct {
	*captureScreen
}

func newTestScreen(width, height int) *testScreen {
	f := newFrame(width, height)
	f.beginFrame()
	return &testScreen{captureScreen: &captureScreen{frame: f}}
}

func (s *testScreen) Size() (int, int) {
	return s.frame.width, s.frame.height
}

// rowText returns the visible text of screen row y, trailing blanks trimmed.
// Cells never written in the current frame read as spaces.
func (s *testScreen) rowText(y int) string {
	var b strings.Builder
	for x := 0; x < s.frame.width; x++ {
		c, ok := s.frame.cellAt(x, y)
		if ok && c.cont {
			continue
		}
		if !ok || c.text == "" {
			b.WriteString(" ")
			continue
		}
		b.WriteString(c.text)
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *testScreen) cellText(x, y int) string {
	c, ok := s.frame.cellAt(x, y)
	if !ok {
		return ""
	}
	return c.text
}

func (s *testScreen) styleAt(x, y int) (tcell.Style, bool) {
	c, ok := s.frame.cellAt(x, y)
	if !ok {
		return tcell.StyleDefault, false
	}
	return c.style, true
}

// render clears the screen frame and draws the primitive, like one pass of the
// application draw loop.
func render(screen *testScreen, p Primitive) {
	screen.Clear()
	p.Draw(screen)
}

// pickUp draws the list, presses the left button at (x, y), and draws again so
// the drag layout is realized.
func pickUp(t *testing.T, screen *testScreen, d *DragList, x, y int) {
	t.Helper()
	render(screen, d)
	_, cmd := d.MouseHandler(MouseLeftDown, mouseEv(x, y, tcell.Button1))
	require.NotNil(t, cmd)
	require.True(t, d.IsDragging(), "press at (%d,%d) should pick up a row", x, y)
	render(screen, d)
}

// Event constructors, centralized so the tests stay terse.

func keyEv(key tcell.Key, str string, mods tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(key, str, mods)
}

func mouseEv(x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, 0)
}

// fakeClock is a manually advanced time source for the classifier and
// scroller.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// manualScheduler implements Scheduler with an explicit task queue so tests
// can run hover-scroll ticks deterministically.
type manualScheduler struct {
	tasks []*manualTask
}

type manualTask struct {
	delay     time.Duration
	run       func()
	cancelled bool
}

func (s *manualScheduler) PostDelayed(delay time.Duration, f func()) func() {
	task := &manualTask{delay: delay, run: f}
	s.tasks = append(s.tasks, task)
	return func() { task.cancelled = true }
}

// runNext pops tasks in post order until one that is not cancelled runs. It
// reports whether any task ran.
func (s *manualScheduler) runNext() bool {
	for len(s.tasks) > 0 {
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		if task.cancelled {
			continue
		}
		task.run()
		return true
	}
	return false
}

func (s *manualScheduler) pending() int {
	n := 0
	for _, task := range s.tasks {
		if !task.cancelled {
			n++
		}
	}
	return n
}

// testItem is a fixed-height row whose entire surface acts as the drag
// handle.
type testItem struct {
	*Box
	label  string
	height int
}

func newTestItem() *testItem {
	return &testItem{Box: NewBox(), height: 1}
}

func (t *testItem) Height(width int) int {
	return max(t.height, 1)
}

func (t *testItem) HandleHit(x, y int) bool {
	return true
}

func (t *testItem) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)
	x, y, width, _ := t.GetInnerRect()
	PrintWithStyle(screen, t.label, x, y, width, AlignmentLeft, tcell.StyleDefault)
}

type testRow struct {
	label  string
	height int
}

// stubAdapter backs a list with a slice of fixed-height rows and records how
// Render recycles items.
type stubAdapter struct {
	rows      []testRow
	typeCount int
	typeOf    func(index int) int

	renders int
	reused  int

	drops   [][2]int
	removed []int
}

func newStubAdapter(rows ...testRow) *stubAdapter {
	return &stubAdapter{rows: rows, typeCount: 1}
}

// uniformRows builds an adapter of n rows labelled row0..row(n-1), each height
// cells tall.
func uniformRows(n, height int) *stubAdapter {
	rows := make([]testRow, n)
	for i := range rows {
		rows[i] = testRow{label: fmt.Sprintf("row%d", i), height: height}
	}
	return newStubAdapter(rows...)
}

func (a *stubAdapter) RowCount() int {
	return len(a.rows)
}

func (a *stubAdapter) RowType(index int) int {
	if a.typeOf != nil {
		return a.typeOf(index)
	}
	return 0
}

func (a *stubAdapter) RowTypeCount() int {
	return a.typeCount
}

func (a *stubAdapter) Render(index int, reuse ListItem) ListItem {
	a.renders++
	item, ok := reuse.(*testItem)
	if ok {
		a.reused++
	} else {
		item = newTestItem()
	}
	item.label = a.rows[index].label
	item.height = a.rows[index].height
	return item
}

// move records and applies a drop.
func (a *stubAdapter) move(from, to int) {
	a.drops = append(a.drops, [2]int{from, to})
	if from == to || from < 0 || to < 0 || from >= len(a.rows) || to >= len(a.rows) {
		return
	}
	row := a.rows[from]
	a.rows = append(a.rows[:from], a.rows[from+1:]...)
	a.rows = append(a.rows[:to], append([]testRow{row}, a.rows[to:]...)...)
}

// removeAt records and applies a removal.
func (a *stubAdapter) removeAt(index int) {
	a.removed = append(a.removed, index)
	if index < 0 || index >= len(a.rows) {
		return
	}
	a.rows = append(a.rows[:index], a.rows[index+1:]...)
}

func (a *stubAdapter) labels() []string {
	out := make([]string, len(a.rows))
	for i, r := range a.rows {
		out[i] = r.label
	}
	return out
}
