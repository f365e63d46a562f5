// Demo of a plain draggable list: pick a row up by its handle and drop it
// somewhere else, or reorder with shift+up/down.
package main

import (
	"slices"

	"github.com/gdamore/tcell/v3"
	"go.uber.org/zap"

	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/help"
	"github.com/xqrs/dragsort/keybind"
)

var artists = []string{
	"Miles Davis",
	"John Coltrane",
	"Charles Mingus",
	"Thelonious Monk",
	"Ornette Coleman",
	"Art Blakey",
	"Sonny Rollins",
	"Dizzy Gillespie",
	"Max Roach",
	"Cannonball Adderley",
	"Wayne Shorter",
	"Herbie Hancock",
	"Bill Evans",
	"Dexter Gordon",
	"Lee Morgan",
	"Freddie Hubbard",
}

// artistAdapter feeds the drag list from a plain string slice.
type artistAdapter struct {
	rows []string
}

func (a *artistAdapter) RowCount() int     { return len(a.rows) }
func (a *artistAdapter) RowType(int) int   { return 0 }
func (a *artistAdapter) RowTypeCount() int { return 1 }

func (a *artistAdapter) Render(index int, reuse dragsort.ListItem) dragsort.ListItem {
	row, ok := reuse.(*dragsort.TextRow)
	if !ok {
		row = dragsort.NewTextRow("")
	}
	return row.SetText(a.rows[index])
}

func (a *artistAdapter) move(from, to int) {
	if from == to || from < 0 || from >= len(a.rows) || to < 0 || to >= len(a.rows) {
		return
	}
	row := a.rows[from]
	a.rows = slices.Delete(a.rows, from, from+1)
	a.rows = slices.Insert(a.rows, to, row)
}

type keys struct {
	quit keybind.Keybind
	nav  keybind.Keybind
	drag keybind.Keybind
}

func defaultKeys() keys {
	return keys{
		quit: keybind.NewKeybind(
			keybind.WithKeys("q", "ctrl+c"),
			keybind.WithHelp("q", "quit"),
		),
		// Display-only entries; the list itself handles these.
		nav: keybind.NewKeybind(
			keybind.WithHelp("↑/↓", "move cursor"),
		),
		drag: keybind.NewKeybind(
			keybind.WithHelp("drag "+dragsort.GlyphDragHandle, "reorder"),
		),
	}
}

type keyMap struct {
	binds []keybind.Keybind
}

func (k keyMap) ShortHelp() []keybind.Keybind  { return k.binds }
func (k keyMap) FullHelp() [][]keybind.Keybind { return [][]keybind.Keybind{k.binds} }

// mainView stacks the list above a one-line help bar.
type mainView struct {
	*dragsort.Box
	list *dragsort.DragList
	bar  *help.Help
	keys keys
}

func newMainView(list *dragsort.DragList, keys keys) *mainView {
	binds := []keybind.Keybind{keys.nav, keys.drag}
	binds = append(binds, list.Keybinds()...)
	binds = append(binds, keys.quit)
	return &mainView{
		Box:  dragsort.NewBox(),
		list: list,
		bar:  help.New().SetKeyMap(keyMap{binds: binds}),
		keys: keys,
	}
}

func (v *mainView) Draw(screen tcell.Screen) {
	v.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	bar := 0
	if height > 2 {
		bar = 1
	}
	v.list.SetRect(x, y, width, height-bar)
	v.list.Draw(screen)
	if bar > 0 {
		v.bar.SetRect(x, y+height-1, width, 1)
		v.bar.Draw(screen)
	}
}

func (v *mainView) InputHandler(event *tcell.EventKey) dragsort.Command {
	if keybind.Matches(event, v.keys.quit) && !v.list.IsDragging() {
		return dragsort.QuitCommand{}
	}
	return v.list.InputHandler(event)
}

func (v *mainView) MouseHandler(action dragsort.MouseAction, event *tcell.EventMouse) (dragsort.Primitive, dragsort.Command) {
	return v.list.MouseHandler(action, event)
}

func (v *mainView) Focus(delegate func(p dragsort.Primitive)) {
	if delegate != nil {
		delegate(v.list)
		return
	}
	v.Box.Focus(delegate)
}

func (v *mainView) HasFocus() bool {
	return v.list.HasFocus() || v.Box.HasFocus()
}

func (v *mainView) IsDirty() bool {
	return v.Box.IsDirty() || v.list.IsDirty() || v.bar.IsDirty()
}

func (v *mainView) MarkClean() {
	v.Box.MarkClean()
	v.list.MarkClean()
	v.bar.MarkClean()
}

func main() {
	logger := newLogger("dragsort-basic.log")
	defer func() { _ = logger.Sync() }()

	adapter := &artistAdapter{rows: slices.Clone(artists)}

	list := dragsort.NewDragList().SetAdapter(adapter)
	list.SetScrollBar(dragsort.NewScrollBar())
	list.SetCursor(0)
	list.SetDropFunc(func(from, to int) {
		adapter.move(from, to)
		logger.Info("row moved", zap.Int("from", from), zap.Int("to", to))
	})

	app := dragsort.NewApplication()
	list.SetScheduler(app)

	if err := app.SetRoot(newMainView(list, defaultKeys())).Run(); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func newLogger(path string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
