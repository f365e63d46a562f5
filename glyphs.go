package dragsort

// Unicode characters used when drawing. Strings with \u escapes keep the
// source ASCII-safe.
const (
	GlyphEllipsis = "\u2026" // …

	// Drag affordances.
	GlyphDragHandle = "\u2261" // ≡
	GlyphDivider    = "\u2500" // ─

	// Box Drawing U+2500-U+257F
	BoxDrawingsLightHorizontal        = "\u2500" // ─
	BoxDrawingsHeavyHorizontal        = "\u2501" // ━
	BoxDrawingsLightVertical          = "\u2502" // │
	BoxDrawingsHeavyVertical          = "\u2503" // ┃
	BoxDrawingsLightDownAndRight      = "\u250c" // ┌
	BoxDrawingsHeavyDownAndRight      = "\u250f" // ┏
	BoxDrawingsLightDownAndLeft       = "\u2510" // ┐
	BoxDrawingsHeavyDownAndLeft       = "\u2513" // ┓
	BoxDrawingsLightUpAndRight        = "\u2514" // └
	BoxDrawingsHeavyUpAndRight        = "\u2517" // ┗
	BoxDrawingsLightUpAndLeft         = "\u2518" // ┘
	BoxDrawingsHeavyUpAndLeft         = "\u251b" // ┛
	BoxDrawingsLightVerticalAndRight  = "\u251c" // ├
	BoxDrawingsHeavyVerticalAndRight  = "\u2523" // ┣
	BoxDrawingsLightVerticalAndLeft   = "\u2524" // ┤
	BoxDrawingsHeavyVerticalAndLeft   = "\u252b" // ┫
	BoxDrawingsLightDownAndHorizontal = "\u252c" // ┬
	BoxDrawingsHeavyDownAndHorizontal = "\u2533" // ┳
	BoxDrawingsLightUpAndHorizontal   = "\u2534" // ┴
	BoxDrawingsHeavyUpAndHorizontal   = "\u253b" // ┻

	BoxDrawingsDoubleHorizontal        = "\u2550" // ═
	BoxDrawingsDoubleVertical          = "\u2551" // ║
	BoxDrawingsDoubleDownAndRight      = "\u2554" // ╔
	BoxDrawingsDoubleDownAndLeft       = "\u2557" // ╗
	BoxDrawingsDoubleUpAndRight        = "\u255a" // ╚
	BoxDrawingsDoubleUpAndLeft         = "\u255d" // ╝
	BoxDrawingsDoubleVerticalAndRight  = "\u2560" // ╠
	BoxDrawingsDoubleVerticalAndLeft   = "\u2563" // ╣
	BoxDrawingsDoubleDownAndHorizontal = "\u2566" // ╦
	BoxDrawingsDoubleUpAndHorizontal   = "\u2569" // ╩

	BoxDrawingsLightArcDownAndRight = "\u256d" // ╭
	BoxDrawingsLightArcDownAndLeft  = "\u256e" // ╮
	BoxDrawingsLightArcUpAndLeft    = "\u256f" // ╯
	BoxDrawingsLightArcUpAndRight   = "\u2570" // ╰
)
