package dragsort

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/pelletier/go-toml/v2"
)

// RemoveMode selects the gesture that removes a row during a drag.
type RemoveMode int

const (
	// RemoveNone disables removal.
	RemoveNone RemoveMode = iota
	// RemoveFling removes the row on a fast horizontal fling toward the
	// right edge.
	RemoveFling
	// RemoveSlideRight removes the row when it is released past the right
	// three quarters of the list width.
	RemoveSlideRight
	// RemoveSlideLeft removes the row when it is released past the left
	// quarter of the list width.
	RemoveSlideLeft
)

func (m RemoveMode) String() string {
	switch m {
	case RemoveNone:
		return "none"
	case RemoveFling:
		return "fling"
	case RemoveSlideRight:
		return "slide_right"
	case RemoveSlideLeft:
		return "slide_left"
	}
	return "none"
}

// MarshalText implements encoding.TextMarshaler so the mode round-trips
// through TOML as a name rather than a bare integer.
func (m RemoveMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RemoveMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*m = RemoveNone
	case "fling":
		*m = RemoveFling
	case "slide_right":
		*m = RemoveSlideRight
	case "slide_left":
		*m = RemoveSlideLeft
	default:
		return fmt.Errorf("unknown remove mode %q", string(text))
	}
	return nil
}

// Options collects the tunable behavior of a [DragList]. The zero value is not
// useful; start from [DefaultOptions].
type Options struct {
	// DragEnabled allows rows to be picked up at all.
	DragEnabled bool `toml:"drag_enabled"`
	// SortEnabled allows a picked-up row to be dropped into a new slot.
	SortEnabled bool `toml:"sort_enabled"`
	// RemoveEnabled allows the remove gesture selected by RemoveMode.
	RemoveEnabled bool `toml:"remove_enabled"`

	// CollapsedHeight is the slot height, in cells, the source row shrinks to
	// while it floats. Minimum 1.
	CollapsedHeight int `toml:"collapsed_height"`
	// HandleWidth is the width, in cells from the row's left edge, of the
	// default drag handle for rows that do not implement their own hit test.
	HandleWidth int `toml:"handle_width"`
	// Divider is the glyph drawn inside the expansion gap. Empty disables it.
	Divider string `toml:"divider"`

	// FloatBackground is the color, as "#rrggbb", the floating row blends
	// toward. Empty uses the theme's float background.
	FloatBackground string `toml:"float_background"`
	// FloatAlpha is the floating row's opacity in (0, 1]; 1 is opaque.
	FloatAlpha float64 `toml:"float_alpha"`

	// SlideRegionFraction sizes the band around a shuffle edge within which
	// neighbor rows share the vacated space. 0 disables sliding; capped at
	// 0.5.
	SlideRegionFraction float64 `toml:"slide_region_fraction"`

	// RemoveMode selects the removal gesture.
	RemoveMode RemoveMode `toml:"remove_mode"`
	// FlingVelocity is the minimum horizontal speed, in cells per second,
	// that counts as a fling in RemoveFling mode.
	FlingVelocity float64 `toml:"fling_velocity"`

	// UpScrollFraction and DownScrollFraction size the auto-scroll trigger
	// bands as a fraction of the viewport height, each capped at 0.5.
	UpScrollFraction   float64 `toml:"up_scroll_fraction"`
	DownScrollFraction float64 `toml:"down_scroll_fraction"`
	// MaxScrollSpeed is the auto-scroll ceiling in cells per millisecond.
	MaxScrollSpeed float64 `toml:"max_scroll_speed"`
}

// DefaultOptions returns the default drag list behavior: drag and sort on,
// removal off, third-of-viewport scroll bands.
func DefaultOptions() Options {
	return Options{
		DragEnabled:         true,
		SortEnabled:         true,
		RemoveEnabled:       false,
		CollapsedHeight:     1,
		HandleWidth:         2,
		Divider:             GlyphDivider,
		FloatAlpha:          1.0,
		SlideRegionFraction: 0.25,
		RemoveMode:          RemoveNone,
		FlingVelocity:       20,
		UpScrollFraction:    1.0 / 3.0,
		DownScrollFraction:  1.0 / 3.0,
		MaxScrollSpeed:      0.3,
	}
}

// normalize clamps out-of-range values to their nearest legal setting.
func (o *Options) normalize() {
	if o.CollapsedHeight < 1 {
		o.CollapsedHeight = 1
	}
	if o.HandleWidth < 0 {
		o.HandleWidth = 0
	}
	if o.FloatAlpha <= 0 || o.FloatAlpha > 1 {
		o.FloatAlpha = 1
	}
	if o.SlideRegionFraction < 0 {
		o.SlideRegionFraction = 0
	}
	if o.SlideRegionFraction > 0.5 {
		o.SlideRegionFraction = 0.5
	}
	if o.FlingVelocity < 0 {
		o.FlingVelocity = 0
	}
	o.UpScrollFraction = clampFraction(o.UpScrollFraction)
	o.DownScrollFraction = clampFraction(o.DownScrollFraction)
	if o.MaxScrollSpeed < 0 {
		o.MaxScrollSpeed = 0
	}
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 0.5 {
		return 0.5
	}
	return f
}

// FloatBackgroundColor resolves the configured float background. The second
// return is false when the option is unset or not a parseable "#rrggbb".
func (o Options) FloatBackgroundColor() (tcell.Color, bool) {
	hex := strings.TrimSpace(o.FloatBackground)
	if !strings.HasPrefix(hex, "#") || len(hex) != 7 {
		return 0, false
	}
	v, err := strconv.ParseInt(hex[1:], 16, 32)
	if err != nil {
		return 0, false
	}
	return tcell.NewRGBColor(int32(v>>16&0xff), int32(v>>8&0xff), int32(v&0xff)), true
}

// LoadOptions reads options from a TOML file. A missing file is not an error;
// it yields [DefaultOptions]. Loaded values are clamped to their legal ranges.
func LoadOptions(path string) (Options, error) {
	options := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return options, nil
		}
		return options, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &options); err != nil {
		return options, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	options.normalize()
	return options, nil
}

// SaveOptions writes options to a TOML file.
func SaveOptions(path string, options Options) error {
	data, err := toml.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
