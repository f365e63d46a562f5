package dragsort

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

func normalizeFrameSize(width, height int) (int, int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return width, height
}

type cell struct {
	text  string
	style tcell.Style
	dw    uint8
	cont  bool
	gen   uint32
}

// frame stores one logical render frame.
//
// Cells are generation-tagged, so a new frame can start without physically
// clearing the entire backing slice. A cell is considered present only when its
// generation matches the frame generation.
type frame struct {
	width  int
	height int

	gen   uint32
	cells []cell

	rowGen   []uint32
	rowStart []int
	rowEnd   []int
}

func newFrame(width, height int) *frame {
	width, height = normalizeFrameSize(width, height)
	return &frame{
		width:    width,
		height:   height,
		cells:    make([]cell, width*height),
		rowGen:   make([]uint32, height),
		rowStart: make([]int, height),
		rowEnd:   make([]int, height),
	}
}

func (f *frame) resize(width, height int) {
	width, height = normalizeFrameSize(width, height)
	if f.width == width && f.height == height {
		return
	}
	f.width, f.height = width, height
	f.cells = make([]cell, width*height)
	f.rowGen = make([]uint32, height)
	f.rowStart = make([]int, height)
	f.rowEnd = make([]int, height)
	f.gen = 0
}

func (f *frame) beginFrame() {
	f.gen++
	if f.gen != 0 {
		return
	}
	for i := range f.cells {
		f.cells[i].gen = 0
	}
	for i := range f.rowGen {
		f.rowGen[i] = 0
	}
	f.gen = 1
}

// Clear resets the current logical frame. This matches primitive expectations
// that calling Screen.Clear() removes prior content before subsequent
// SetContent() calls.
func (f *frame) Clear() {
	f.beginFrame()
}

func (f *frame) markSpan(y, start, end int) {
	if y < 0 || y >= f.height || start >= end {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > f.width {
		end = f.width
	}
	if start >= end {
		return
	}
	if f.rowGen[y] != f.gen {
		f.rowGen[y] = f.gen
		f.rowStart[y] = start
		f.rowEnd[y] = end
		return
	}
	if start < f.rowStart[y] {
		f.rowStart[y] = start
	}
	if end > f.rowEnd[y] {
		f.rowEnd[y] = end
	}
}

func (f *frame) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	text := string(primary)
	if len(combining) > 0 {
		text += string(combining)
	}
	width := uniseg.StringWidth(text)
	if width <= 0 {
		width = 1
	}
	// Match terminal clipping behavior for wide graphemes at the right edge.
	if width > 1 && x == f.width-1 {
		text = " "
		width = 1
	}

	f.putCellText(x, y, text, style, widthToCellDW(width), false)
	// Mark trailing columns as continuation cells so replays can reason about
	// the full occupied width of wide graphemes.
	for i := 1; i < width; i++ {
		f.putCellText(x+i, y, "", style, 0, true)
	}
}

func widthToCellDW(width int) uint8 {
	if width <= 0 {
		return 1
	}
	if width > 255 {
		return 255
	}
	return uint8(width)
}

func (f *frame) putCellText(x int, y int, text string, style tcell.Style, dw uint8, cont bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}

	// If this coordinate already contains a wide lead written earlier in the
	// same frame, clear its old tail now. This preserves "last write wins"
	// semantics when primitives overwrite a wide grapheme with narrow content.
	index := y*f.width + x
	prev := f.cells[index]
	if prev.gen == f.gen && !prev.cont && prev.dw > 1 {
		oldEnd := x + int(prev.dw)
		if oldEnd > f.width {
			oldEnd = f.width
		}
		if x+1 < oldEnd {
			f.markSpan(y, x+1, oldEnd)
			for i := x + 1; i < oldEnd; i++ {
				f.cells[y*f.width+i] = cell{}
			}
		}
	}

	f.markSpan(y, x, x+1)
	cell := &f.cells[index]
	cell.text = text
	cell.style = style
	cell.dw = dw
	cell.cont = cont
	cell.gen = f.gen
}

func (f *frame) rowSpan(y int) (start int, end int, ok bool) {
	if y < 0 || y >= f.height {
		return 0, 0, false
	}
	if f.rowGen[y] != f.gen {
		return 0, 0, false
	}
	return f.rowStart[y], f.rowEnd[y], true
}

func (f *frame) cellAt(x, y int) (c cell, ok bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return cell{}, false
	}
	c = f.cells[y*f.width+x]
	if c.gen != f.gen {
		return cell{}, false
	}
	return c, true
}

// captureScreen redirects all content mutations into a frame while passing
// everything else through to the wrapped screen. Drawing a primitive against it
// records the primitive's cells without touching the real screen.
type captureScreen struct {
	tcell.Screen
	frame        *frame
	defaultStyle tcell.Style
}

func (s *captureScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.frame.SetContent(x, y, primary, combining, style)
}

func (s *captureScreen) Clear() {
	s.frame.Clear()
}

func (s *captureScreen) Fill(r rune, style tcell.Style) {
	for y := 0; y < s.frame.height; y++ {
		for x := 0; x < s.frame.width; x++ {
			s.frame.SetContent(x, y, r, nil, style)
		}
	}
}

func (s *captureScreen) SetStyle(style tcell.Style) {
	s.defaultStyle = style
}

func (s *captureScreen) Get(x, y int) (str string, style tcell.Style, width int) {
	if c, ok := s.frame.cellAt(x, y); ok {
		w := uniseg.StringWidth(c.text)
		if w <= 0 {
			w = 1
		}
		return c.text, c.style, w
	}
	return "", tcell.StyleDefault, 1
}

func (s *captureScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster = string(r)
		remain = str[size:]
		width = 1
	}
	if width <= 0 {
		return remain, 0
	}

	// Match terminal clipping behavior for wide graphemes at the right edge.
	if width > 1 && x == s.frame.width-1 {
		cluster = " "
		width = 1
	}

	s.frame.putCellText(x, y, cluster, style, widthToCellDW(width), false)
	// Mark trailing columns as continuation cells so replacing a wide grapheme
	// still touches the right-half columns.
	for i := 1; i < width; i++ {
		s.frame.putCellText(x+i, y, "", style, 0, true)
	}

	return remain, width
}

func (s *captureScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.defaultStyle)
}

func (s *captureScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.frame.width {
		remain, width := s.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

func (s *captureScreen) ShowCursor(x, y int) {}

func (s *captureScreen) HideCursor() {}

// rowSnapshot holds the rendered cells of a single list item so the item can be
// replayed anywhere on screen, independent of the live list layout.
type rowSnapshot struct {
	width  int
	height int
	frame  *frame
}

// captureRowSnapshot renders item into an off-screen frame and returns the
// captured cells. The item's rectangle is temporarily moved to the frame
// origin; callers are expected to restore it on their next layout pass.
func captureRowSnapshot(screen tcell.Screen, item ListItem, width int) *rowSnapshot {
	if item == nil || width <= 0 {
		return nil
	}
	height := max(item.Height(width), 1)
	f := newFrame(width, height)
	f.beginFrame()
	capture := &captureScreen{Screen: screen, frame: f}
	item.SetRect(0, 0, width, height)
	item.Draw(capture)
	return &rowSnapshot{
		width:  width,
		height: height,
		frame:  f,
	}
}

// drawAt replays the snapshot with its origin at (x, y). An alpha below 1
// blends every cell's colors toward blendTo, fading the snapshot into the
// background it floats over.
func (s *rowSnapshot) drawAt(screen tcell.Screen, x, y int, alpha float64, blendTo tcell.Color) {
	if s == nil {
		return
	}
	for row := 0; row < s.height; row++ {
		start, end, ok := s.frame.rowSpan(row)
		if !ok {
			continue
		}
		for col := start; col < end; col++ {
			c, ok := s.frame.cellAt(col, row)
			if !ok || c.cont {
				continue
			}
			style := c.style
			if alpha < 1 {
				t := 1 - alpha
				style = style.
					Foreground(blendColor(style.GetForeground(), blendTo, t)).
					Background(blendColor(style.GetBackground(), blendTo, t))
			}
			screen.Put(x+col, y+row, c.text, style)
		}
	}
}

// blendColor mixes from toward to by t in [0, 1]. Colors without a concrete
// RGB value (terminal defaults) are returned unchanged since there is nothing
// to interpolate.
func blendColor(from, to tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return from
	}
	if from.Hex() < 0 || to.Hex() < 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	fr, fg, fb := from.RGB()
	tr, tg, tb := to.RGB()
	a := colorful.Color{R: float64(fr) / 255, G: float64(fg) / 255, B: float64(fb) / 255}
	b := colorful.Color{R: float64(tr) / 255, G: float64(tg) / 255, B: float64(tb) / 255}
	mixed := a.BlendRgb(b, t).Clamped()
	return tcell.NewRGBColor(int32(mixed.R*255+0.5), int32(mixed.G*255+0.5), int32(mixed.B*255+0.5))
}
