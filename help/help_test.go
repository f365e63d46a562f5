package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xqrs/dragsort/keybind"
)

func segmentsText(segments []segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.text)
	}
	return b.String()
}

func demoGroups() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{
			keybind.NewKeybind(keybind.WithKeys("shift+up"), keybind.WithHelp("S-↑", "move up")),
			keybind.NewKeybind(keybind.WithKeys("shift+down"), keybind.WithHelp("S-↓", "move down")),
		},
		{
			keybind.NewKeybind(keybind.WithKeys("esc"), keybind.WithHelp("esc", "cancel drag")),
			keybind.NewKeybind(keybind.WithKeys("q"), keybind.WithHelp("q", "quit"), keybind.WithDisabled()),
			keybind.NewKeybind(keybind.WithKeys("x"), keybind.WithHelp("x", "delete")),
			keybind.NewKeybind(keybind.WithKeys("p"), keybind.WithHelp("p", "pause")),
		},
	}
}

func TestFullHelpLines(t *testing.T) {
	h := New()

	lines := h.FullHelpLines(demoGroups(), 40)
	assert.Equal(t, []string{
		"S-↑ move up      esc cancel drag",
		"S-↓ move down    x   delete",
		"                 p   pause",
	}, lines)
}

func TestFullHelpTruncatesColumns(t *testing.T) {
	h := New()

	// Only the first column fits; the first line carries the ellipsis.
	lines := h.FullHelpLines(demoGroups(), 20)
	assert.Equal(t, []string{
		"S-↑ move up …",
		"S-↓ move down",
	}, lines)
}

func TestFullHelpCollapsesToEllipsis(t *testing.T) {
	h := New()
	lines := h.FullHelpLines(demoGroups(), 5)
	assert.Equal(t, []string{"…"}, lines)
}

func TestFullHelpSkipsEmptyGroups(t *testing.T) {
	h := New()

	assert.Empty(t, h.FullHelpLines(nil, 40))

	disabled := [][]keybind.Keybind{{
		keybind.NewKeybind(keybind.WithKeys("q"), keybind.WithHelp("q", "quit"), keybind.WithDisabled()),
		keybind.NewKeybind(keybind.WithKeys("x")),
	}}
	assert.Empty(t, h.FullHelpLines(disabled, 40))
}

func TestShortHelp(t *testing.T) {
	h := New()
	up := keybind.NewKeybind(keybind.WithKeys("shift+up"), keybind.WithHelp("S-↑", "up"))
	down := keybind.NewKeybind(keybind.WithKeys("shift+down"), keybind.WithHelp("S-↓", "down"))

	segs := h.shortHelpSegments([]keybind.Keybind{up, down}, 17)
	assert.Equal(t, "S-↑ up • S-↓ down", segmentsText(segs))

	// Items that no longer fit are dropped in favor of an ellipsis.
	segs = h.shortHelpSegments([]keybind.Keybind{up, down}, 12)
	assert.Equal(t, "S-↑ up …", segmentsText(segs))

	disabled := keybind.NewKeybind(keybind.WithKeys("q"), keybind.WithHelp("q", "quit"), keybind.WithDisabled())
	segs = h.shortHelpSegments([]keybind.Keybind{up, disabled}, 40)
	assert.Equal(t, "S-↑ up", segmentsText(segs))

	assert.Nil(t, h.shortHelpSegments(nil, 40))
	assert.Nil(t, h.shortHelpSegments([]keybind.Keybind{up}, 4), "even a single item must fit")
}

func TestShowAll(t *testing.T) {
	h := New()
	assert.False(t, h.ShowAll())
	h.SetShowAll(true)
	assert.True(t, h.ShowAll())
}
