// Demo of a short list with fling-to-remove and a help overlay on its own
// layer. Behavior is read from dragsort.toml next to the binary; the file is
// written with this demo's settings on first run, so edit it and restart to
// experiment. Press '?' for the key reference.
package main

import (
	"os"
	"slices"

	"github.com/gdamore/tcell/v3"
	"go.uber.org/zap"

	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/help"
	"github.com/xqrs/dragsort/keybind"
	"github.com/xqrs/dragsort/layers"
)

const optionsPath = "dragsort.toml"

var errands = []string{
	"Pick up dry cleaning",
	"Return library books",
	"Water the plants",
}

type errandAdapter struct {
	rows []string
}

func (a *errandAdapter) RowCount() int     { return len(a.rows) }
func (a *errandAdapter) RowType(int) int   { return 0 }
func (a *errandAdapter) RowTypeCount() int { return 1 }

func (a *errandAdapter) Render(index int, reuse dragsort.ListItem) dragsort.ListItem {
	row, ok := reuse.(*dragsort.TextRow)
	if !ok {
		row = dragsort.NewTextRow("")
	}
	return row.SetText(a.rows[index])
}

func (a *errandAdapter) move(from, to int) {
	if from == to || from < 0 || from >= len(a.rows) || to < 0 || to >= len(a.rows) {
		return
	}
	row := a.rows[from]
	a.rows = slices.Delete(a.rows, from, from+1)
	a.rows = slices.Insert(a.rows, to, row)
}

func (a *errandAdapter) remove(index int) {
	if index < 0 || index >= len(a.rows) {
		return
	}
	a.rows = slices.Delete(a.rows, index, index+1)
}

type keys struct {
	quit  keybind.Keybind
	help  keybind.Keybind
	close keybind.Keybind
	drag  keybind.Keybind
	fling keybind.Keybind
	nav   keybind.Keybind
}

func defaultKeys() keys {
	return keys{
		quit: keybind.NewKeybind(
			keybind.WithKeys("q", "ctrl+c"),
			keybind.WithHelp("q", "quit"),
		),
		help: keybind.NewKeybind(
			keybind.WithKeys("?"),
			keybind.WithHelp("?", "help"),
		),
		close: keybind.NewKeybind(
			keybind.WithKeys("esc"),
			keybind.WithHelp("esc", "close help / cancel drag"),
		),
		// Mouse gestures, listed for the help views only.
		drag: keybind.NewKeybind(
			keybind.WithHelp("drag "+dragsort.GlyphDragHandle, "reorder"),
		),
		fling: keybind.NewKeybind(
			keybind.WithHelp("fling right", "remove"),
		),
		nav: keybind.NewKeybind(
			keybind.WithHelp("↑/↓", "move cursor"),
		),
	}
}

type keyMap struct {
	short []keybind.Keybind
	full  [][]keybind.Keybind
}

func (k keyMap) ShortHelp() []keybind.Keybind  { return k.short }
func (k keyMap) FullHelp() [][]keybind.Keybind { return k.full }

func newKeyMap(keys keys, list *dragsort.DragList) keyMap {
	moving := append([]keybind.Keybind{keys.nav}, list.Keybinds()...)
	moving = append(moving, keys.drag)
	return keyMap{
		short: []keybind.Keybind{keys.drag, keys.fling, keys.help, keys.quit},
		full: [][]keybind.Keybind{
			moving,
			{keys.fling, keys.help, keys.close, keys.quit},
		},
	}
}

// mainView stacks the list above a one-line help bar.
type mainView struct {
	*dragsort.Box
	list *dragsort.DragList
	bar  *help.Help
}

func newMainView(list *dragsort.DragList, km keyMap) *mainView {
	return &mainView{
		Box:  dragsort.NewBox(),
		list: list,
		bar:  help.New().SetKeyMap(km),
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

// helpPanel is a centered key reference. Only the frame is drawn, so the
// layers behind it stay visible around the modal.
type helpPanel struct {
	*dragsort.Box
	frame   *dragsort.Box
	content *help.Help
	keyMap  keyMap
}

func newHelpPanel(km keyMap) *helpPanel {
	return &helpPanel{
		Box: dragsort.NewBox(),
		frame: dragsort.NewBox().
			SetBorders(dragsort.BordersAll).
			SetBorderSet(dragsort.BorderSetRound()).
			SetTitle(" keys "),
		content: help.New().SetKeyMap(km).SetShowAll(true),
		keyMap:  km,
	}
}

func (p *helpPanel) Draw(screen tcell.Screen) {
	x, y, width, height := p.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	lines := p.content.FullHelpLines(p.keyMap.FullHelp(), max(width-6, 0))
	contentWidth := 0
	for _, line := range lines {
		if w := dragsort.TaggedStringWidth(line); w > contentWidth {
			contentWidth = w
		}
	}
	frameWidth := min(contentWidth+6, width)
	frameHeight := min(len(lines)+2, height)

	p.frame.SetRect(x+(width-frameWidth)/2, y+(height-frameHeight)/2, frameWidth, frameHeight)
	p.frame.Draw(screen)

	ix, iy, iw, ih := p.frame.GetInnerRect()
	p.content.SetRect(ix+2, iy, max(iw-4, 0), ih)
	p.content.Draw(screen)
}

func (p *helpPanel) IsDirty() bool {
	return p.Box.IsDirty() || p.frame.IsDirty() || p.content.IsDirty()
}

func (p *helpPanel) MarkClean() {
	p.Box.MarkClean()
	p.frame.MarkClean()
	p.content.MarkClean()
}

// rootView layers the help panel over the list and owns the global keys.
type rootView struct {
	*layers.Layers
	list *dragsort.DragList
	keys keys
}

func newRootView(main *mainView, panel *helpPanel, keys keys) *rootView {
	root := &rootView{
		Layers: layers.New(),
		list:   main.list,
		keys:   keys,
	}
	root.AddLayer(main, layers.WithName("main"), layers.WithResize(true))
	root.AddLayer(panel,
		layers.WithName("help"),
		layers.WithResize(true),
		layers.WithVisible(false),
		layers.WithOverlay(),
	)
	root.SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true))
	return root
}

func (v *rootView) InputHandler(event *tcell.EventKey) dragsort.Command {
	helpShown := v.GetVisible("help")
	switch {
	case keybind.Matches(event, v.keys.help):
		if helpShown {
			v.HideLayer("help")
		} else {
			v.ShowLayer("help")
		}
		return dragsort.RedrawCommand{}
	case helpShown && keybind.Matches(event, v.keys.close):
		v.HideLayer("help")
		return dragsort.RedrawCommand{}
	case keybind.Matches(event, v.keys.quit) && !v.list.IsDragging():
		return dragsort.QuitCommand{}
	}
	return v.Layers.InputHandler(event)
}

func main() {
	logger := newLogger("dragsort-shortlist.log")
	defer func() { _ = logger.Sync() }()

	options, err := dragsort.LoadOptions(optionsPath)
	if err != nil {
		logger.Warn("options load failed", zap.Error(err))
	}
	if _, err := os.Stat(optionsPath); os.IsNotExist(err) {
		options.RemoveEnabled = true
		options.RemoveMode = dragsort.RemoveFling
		options.SlideRegionFraction = 0.5
		if err := dragsort.SaveOptions(optionsPath, options); err != nil {
			logger.Warn("options save failed", zap.Error(err))
		}
	}

	adapter := &errandAdapter{rows: slices.Clone(errands)}

	list := dragsort.NewDragList().
		SetAdapter(adapter).
		SetOptions(options)
	list.SetCursor(0)
	list.SetDropFunc(func(from, to int) {
		adapter.move(from, to)
		logger.Info("errand moved", zap.Int("from", from), zap.Int("to", to))
	})
	list.SetRemoveFunc(func(index int) {
		logger.Info("errand done", zap.Int("index", index), zap.String("text", adapter.rows[index]))
		adapter.remove(index)
	})

	keys := defaultKeys()
	km := newKeyMap(keys, list)
	root := newRootView(newMainView(list, km), newHelpPanel(km), keys)

	app := dragsort.NewApplication()
	list.SetScheduler(app)

	if err := app.SetRoot(root).Run(); err != nil {
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
