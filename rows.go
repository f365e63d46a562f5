package dragsort

import (
	"github.com/gdamore/tcell/v3"
)

// TextRow is a list row showing a line of text behind a drag handle, with an
// optional secondary line underneath. It implements the height, handle, and
// selection contracts of DragList, so it serves both as an adapter row and as
// a fixed header or footer.
type TextRow struct {
	*Box

	// The row's primary text.
	text string

	// An optional second line shown below the primary text.
	secondary string

	// If set to true, the primary text wraps across as many lines as it
	// needs instead of being cut off at the row's right edge.
	wrap bool

	// If set to true, the drag handle column is drawn and reported to the
	// list. Fixed header and footer rows turn this off.
	handle bool

	// The width of the handle column in cells.
	handleWidth int

	// The row's style.
	style tcell.Style

	// The style of the secondary line.
	secondaryStyle tcell.Style

	// The style of the whole row while it is under the cursor.
	selectedStyle tcell.Style

	// The style of the handle column.
	handleStyle tcell.Style

	// Whether the row is under the cursor.
	selected bool
}

// NewTextRow returns a new text row with a drag handle.
func NewTextRow(text string) *TextRow {
	return &TextRow{
		Box:            NewBox(),
		text:           text,
		handle:         true,
		handleWidth:    DefaultOptions().HandleWidth,
		style:          tcell.StyleDefault.Background(Styles.PrimitiveBackgroundColor).Foreground(Styles.PrimaryTextColor),
		secondaryStyle: tcell.StyleDefault.Background(Styles.PrimitiveBackgroundColor).Foreground(Styles.SecondaryTextColor),
		selectedStyle:  tcell.StyleDefault.Background(Styles.ContrastBackgroundColor).Foreground(Styles.PrimaryTextColor),
		handleStyle:    tcell.StyleDefault.Background(Styles.PrimitiveBackgroundColor).Foreground(Styles.GraphicsColor),
	}
}

// SetText sets the row's primary text.
func (t *TextRow) SetText(text string) *TextRow {
	if t.text != text {
		t.text = text
		t.MarkDirty()
	}
	return t
}

// GetText returns the row's primary text.
func (t *TextRow) GetText() string {
	return t.text
}

// SetSecondaryText sets the second line shown below the primary text. An
// empty string removes the line.
func (t *TextRow) SetSecondaryText(text string) *TextRow {
	if t.secondary != text {
		t.secondary = text
		t.MarkDirty()
	}
	return t
}

// GetSecondaryText returns the second line shown below the primary text.
func (t *TextRow) GetSecondaryText() string {
	return t.secondary
}

// SetWrap sets whether the primary text wraps across multiple lines. Wrapped
// rows report a height matching their wrapped line count.
func (t *TextRow) SetWrap(wrap bool) *TextRow {
	if t.wrap != wrap {
		t.wrap = wrap
		t.MarkDirty()
	}
	return t
}

// SetHandleVisible sets whether the drag handle column is drawn. Without it
// the row reports no handle, so it cannot be picked up by the mouse.
func (t *TextRow) SetHandleVisible(visible bool) *TextRow {
	if t.handle != visible {
		t.handle = visible
		t.MarkDirty()
	}
	return t
}

// SetHandleWidth sets the width of the handle column in cells.
func (t *TextRow) SetHandleWidth(width int) *TextRow {
	if width < 1 {
		width = 1
	}
	if t.handleWidth != width {
		t.handleWidth = width
		t.MarkDirty()
	}
	return t
}

// SetStyle sets the style of the row.
func (t *TextRow) SetStyle(style tcell.Style) *TextRow {
	if t.style != style {
		t.style = style
		t.MarkDirty()
	}
	return t
}

// SetSecondaryStyle sets the style of the secondary line.
func (t *TextRow) SetSecondaryStyle(style tcell.Style) *TextRow {
	if t.secondaryStyle != style {
		t.secondaryStyle = style
		t.MarkDirty()
	}
	return t
}

// SetSelectedStyle sets the style of the row while it is under the cursor.
func (t *TextRow) SetSelectedStyle(style tcell.Style) *TextRow {
	if t.selectedStyle != style {
		t.selectedStyle = style
		t.MarkDirty()
	}
	return t
}

// SetHandleStyle sets the style of the handle column.
func (t *TextRow) SetHandleStyle(style tcell.Style) *TextRow {
	if t.handleStyle != style {
		t.handleStyle = style
		t.MarkDirty()
	}
	return t
}

// SetSelected sets whether the row renders its cursor highlight. The list
// calls this on every build pass.
func (t *TextRow) SetSelected(selected bool) {
	if t.selected != selected {
		t.selected = selected
		t.MarkDirty()
	}
}

// HandleHit reports whether the given row-local position falls on the drag
// handle column.
func (t *TextRow) HandleHit(x, y int) bool {
	return t.handle && x >= 0 && x < t.handleWidth
}

// Height returns the number of lines the row needs at the given width.
func (t *TextRow) Height(width int) int {
	textWidth := width
	if t.handle {
		textWidth -= t.handleWidth
	}
	height := 1
	if t.wrap && textWidth > 0 {
		if lines := len(WordWrap(t.text, textWidth)); lines > height {
			height = lines
		}
	}
	if t.secondary != "" {
		height++
	}
	return height
}

// Draw draws this primitive onto the screen.
func (t *TextRow) Draw(screen tcell.Screen) {
	style := t.style
	if t.selected {
		style = t.selectedStyle
	}
	t.SetBackgroundColor(style.GetBackground())
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	textX := x
	textWidth := width
	if t.handle {
		handleStyle := t.handleStyle
		if t.selected {
			handleStyle = handleStyle.Background(style.GetBackground())
		}
		screen.Put(x, y+(height-1)/2, GlyphDragHandle, handleStyle)
		textX += t.handleWidth
		textWidth -= t.handleWidth
	}
	if textWidth <= 0 {
		return
	}

	row := y
	if t.wrap {
		for _, line := range WordWrap(t.text, textWidth) {
			if row >= y+height {
				return
			}
			PrintWithStyle(screen, line, textX, row, textWidth, AlignmentLeft, style)
			row++
		}
	} else {
		PrintWithStyle(screen, t.text, textX, row, textWidth, AlignmentLeft, style)
		row++
	}

	if t.secondary != "" && row < y+height {
		secondaryStyle := t.secondaryStyle
		if t.selected {
			secondaryStyle = secondaryStyle.Background(style.GetBackground())
		}
		PrintWithStyle(screen, t.secondary, textX, row, textWidth, AlignmentLeft, secondaryStyle)
	}
}

var (
	_ ListItem     = &TextRow{}
	_ HandleHitter = &TextRow{}
	_ Selectable   = &TextRow{}
)
