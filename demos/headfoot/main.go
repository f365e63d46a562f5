// Demo of a drag list framed by fixed header and footer rows. The set list
// between them can be reordered by dragging; sliding a row far enough to the
// right removes it. Rows carry a second line and wrap, so their heights vary.
package main

import (
	"slices"

	"github.com/gdamore/tcell/v3"
	"go.uber.org/zap"

	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/help"
	"github.com/xqrs/dragsort/keybind"
)

type track struct {
	title string
	note  string
}

var setList = []track{
	{"So What", "Modal opener, keep the intro loose"},
	{"Freddie Freeloader", "Wynton Kelly takes the first solo"},
	{"Blue in Green", "Ballad, trumpet with harmon mute"},
	{"All Blues", "6/8, let the vamp breathe before the head"},
	{"Flamenco Sketches", "Five scales in sequence, no fixed bar counts"},
	{"Milestones", "Up-tempo modal, tight unison on the head"},
	{"Straight, No Chaser", "Monk tune, trade fours with the drums"},
	{"On Green Dolphin Street", "Latin feel on the A sections"},
	{"Bye Bye Blackbird", "Medium swing, stretch the solos if time allows"},
	{"Walkin'", "Closer, everybody blows"},
}

type setListAdapter struct {
	tracks []track
}

func (a *setListAdapter) RowCount() int     { return len(a.tracks) }
func (a *setListAdapter) RowType(int) int   { return 0 }
func (a *setListAdapter) RowTypeCount() int { return 1 }

func (a *setListAdapter) Render(index int, reuse dragsort.ListItem) dragsort.ListItem {
	row, ok := reuse.(*dragsort.TextRow)
	if !ok {
		row = dragsort.NewTextRow("").SetWrap(true)
	}
	t := a.tracks[index]
	return row.SetText(t.title).SetSecondaryText(t.note)
}

func (a *setListAdapter) move(from, to int) {
	if from == to || from < 0 || from >= len(a.tracks) || to < 0 || to >= len(a.tracks) {
		return
	}
	t := a.tracks[from]
	a.tracks = slices.Delete(a.tracks, from, from+1)
	a.tracks = slices.Insert(a.tracks, to, t)
}

func (a *setListAdapter) remove(index int) {
	if index < 0 || index >= len(a.tracks) {
		return
	}
	a.tracks = slices.Delete(a.tracks, index, index+1)
}

func headerRow(text string, style tcell.Style) *dragsort.TextRow {
	return dragsort.NewTextRow(text).
		SetHandleVisible(false).
		SetStyle(style)
}

type keys struct {
	quit   keybind.Keybind
	drag   keybind.Keybind
	remove keybind.Keybind
}

func defaultKeys() keys {
	return keys{
		quit: keybind.NewKeybind(
			keybind.WithKeys("q", "ctrl+c"),
			keybind.WithHelp("q", "quit"),
		),
		drag: keybind.NewKeybind(
			keybind.WithHelp("drag "+dragsort.GlyphDragHandle, "reorder"),
		),
		remove: keybind.NewKeybind(
			keybind.WithHelp("slide right", "cut track"),
		),
	}
}

type keyMap struct {
	binds []keybind.Keybind
}

func (k keyMap) ShortHelp() []keybind.Keybind  { return k.binds }
func (k keyMap) FullHelp() [][]keybind.Keybind { return [][]keybind.Keybind{k.binds} }

type mainView struct {
	*dragsort.Box
	list *dragsort.DragList
	bar  *help.Help
	keys keys
}

func newMainView(list *dragsort.DragList, keys keys) *mainView {
	binds := []keybind.Keybind{keys.drag, keys.remove}
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
	logger := newLogger("dragsort-headfoot.log")
	defer func() { _ = logger.Sync() }()

	adapter := &setListAdapter{tracks: slices.Clone(setList)}

	options := dragsort.DefaultOptions()
	options.RemoveEnabled = true
	options.RemoveMode = dragsort.RemoveSlideRight

	titleStyle := tcell.StyleDefault.
		Foreground(dragsort.Styles.TitleColor).
		Bold(true)
	footStyle := tcell.StyleDefault.
		Foreground(dragsort.Styles.SecondaryTextColor).
		Italic(true)

	list := dragsort.NewDragList().
		SetAdapter(adapter).
		SetOptions(options).
		AddHeaderRow(headerRow("Miles Davis Quintet", titleStyle)).
		AddHeaderRow(headerRow("Village Vanguard, second set", titleStyle)).
		AddFooterRow(headerRow("encore: 'Round Midnight", footStyle))
	list.SetCursor(0)
	list.SetDropFunc(func(from, to int) {
		adapter.move(from, to)
		logger.Info("track moved", zap.Int("from", from), zap.Int("to", to))
	})
	list.SetRemoveFunc(func(index int) {
		logger.Info("track cut", zap.Int("index", index), zap.String("title", adapter.tracks[index].title))
		adapter.remove(index)
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
