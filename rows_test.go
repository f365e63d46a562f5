package dragsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRowHeight(t *testing.T) {
	tests := []struct {
		name  string
		row   *TextRow
		width int
		want  int
	}{
		{
			name:  "single line",
			row:   NewTextRow("abc"),
			width: 12,
			want:  1,
		},
		{
			name:  "secondary line",
			row:   NewTextRow("abc").SetSecondaryText("sub"),
			width: 12,
			want:  2,
		},
		{
			name:  "wraps behind the handle",
			row:   NewTextRow("one two three").SetWrap(true),
			width: 7,
			want:  3,
		},
		{
			name:  "wrapped with secondary line",
			row:   NewTextRow("one two three").SetWrap(true).SetSecondaryText("sub"),
			width: 7,
			want:  4,
		},
		{
			name:  "hidden handle frees its columns",
			row:   NewTextRow("one two three").SetWrap(true).SetHandleVisible(false),
			width: 13,
			want:  1,
		},
		{
			name:  "no room for text",
			row:   NewTextRow("one two three").SetWrap(true),
			width: 2,
			want:  1,
		},
		{
			name:  "empty text",
			row:   NewTextRow("").SetWrap(true),
			width: 12,
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.Height(tt.width))
		})
	}
}

func TestTextRowHandleHit(t *testing.T) {
	row := NewTextRow("abc")
	assert.True(t, row.HandleHit(0, 0))
	assert.True(t, row.HandleHit(1, 5), "any line of the row counts")
	assert.False(t, row.HandleHit(2, 0))
	assert.False(t, row.HandleHit(-1, 0))

	row.SetHandleWidth(4)
	assert.True(t, row.HandleHit(3, 0))

	// The column never collapses entirely.
	row.SetHandleWidth(0)
	assert.True(t, row.HandleHit(0, 0))
	assert.False(t, row.HandleHit(1, 0))

	row.SetHandleVisible(false)
	assert.False(t, row.HandleHit(0, 0))
}

func TestTextRowDraw(t *testing.T) {
	t.Run("handle and text", func(t *testing.T) {
		screen := newTestScreen(12, 1)
		row := NewTextRow("abc")
		row.SetRect(0, 0, 12, 1)
		render(screen, row)
		assert.Equal(t, GlyphDragHandle, screen.cellText(0, 0))
		assert.Equal(t, GlyphDragHandle+" abc", screen.rowText(0))
	})

	t.Run("handle centers vertically", func(t *testing.T) {
		screen := newTestScreen(12, 3)
		row := NewTextRow("abc")
		row.SetRect(0, 0, 12, 3)
		render(screen, row)
		assert.Equal(t, " ", screen.cellText(0, 0))
		assert.Equal(t, GlyphDragHandle, screen.cellText(0, 1))
		assert.Equal(t, "  abc", screen.rowText(0))
	})

	t.Run("secondary line", func(t *testing.T) {
		screen := newTestScreen(12, 2)
		row := NewTextRow("abc").SetSecondaryText("sub")
		row.SetRect(0, 0, 12, 2)
		render(screen, row)
		assert.Equal(t, GlyphDragHandle+" abc", screen.rowText(0))
		assert.Equal(t, "  sub", screen.rowText(1))
	})

	t.Run("wrapped lines", func(t *testing.T) {
		screen := newTestScreen(7, 3)
		row := NewTextRow("one two three").SetWrap(true)
		row.SetRect(0, 0, 7, 3)
		render(screen, row)
		assert.Equal(t, "  one", screen.rowText(0))
		assert.Equal(t, GlyphDragHandle+" two", screen.rowText(1))
		assert.Equal(t, "  three", screen.rowText(2))
	})

	t.Run("no handle", func(t *testing.T) {
		screen := newTestScreen(12, 1)
		row := NewTextRow("plain").SetHandleVisible(false)
		row.SetRect(0, 0, 12, 1)
		render(screen, row)
		assert.Equal(t, "plain", screen.rowText(0))
	})

	t.Run("too narrow for text", func(t *testing.T) {
		screen := newTestScreen(2, 1)
		row := NewTextRow("abc")
		row.SetRect(0, 0, 2, 1)
		render(screen, row)
		assert.Equal(t, GlyphDragHandle, screen.rowText(0))
	})
}

func TestTextRowSelection(t *testing.T) {
	screen := newTestScreen(12, 2)
	row := NewTextRow("abc").SetSecondaryText("sub")
	row.SetRect(0, 0, 12, 2)

	row.SetSelected(true)
	render(screen, row)

	// The highlight covers the fill, the handle column, and the secondary
	// line.
	for _, pos := range [][2]int{{5, 0}, {0, 0}, {5, 1}, {11, 1}} {
		style, ok := screen.styleAt(pos[0], pos[1])
		assert.True(t, ok)
		assert.Equal(t, Styles.ContrastBackgroundColor, style.GetBackground())
	}

	row.SetSelected(false)
	render(screen, row)
	style, ok := screen.styleAt(5, 0)
	assert.True(t, ok)
	assert.Equal(t, Styles.PrimitiveBackgroundColor, style.GetBackground())
}

func TestTextRowSetters(t *testing.T) {
	row := NewTextRow("abc")
	assert.Equal(t, "abc", row.GetText())

	row.MarkClean()
	row.SetText("xyz")
	assert.Equal(t, "xyz", row.GetText())
	assert.True(t, row.IsDirty())

	row.MarkClean()
	row.SetText("xyz")
	assert.False(t, row.IsDirty(), "unchanged text does not dirty the row")

	row.SetSecondaryText("sub")
	assert.Equal(t, "sub", row.GetSecondaryText())
	assert.True(t, row.IsDirty())

	row.MarkClean()
	row.SetSelected(true)
	assert.True(t, row.IsDirty())

	row.MarkClean()
	row.SetSelected(true)
	assert.False(t, row.IsDirty(), "selection state is change-gated")
}
