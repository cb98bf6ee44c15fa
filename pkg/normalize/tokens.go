package normalize

import "github.com/slidesmith/slidesmith/pkg/deck"

// Token defaults applied when the input omits them.
const (
	MinGutter = 12
	MinMargin = 16

	DefaultColumns = 12
	DefaultUnit    = "px"

	DefaultFontFamily  = "Calibri"
	DefaultBodySize    = 18
	DefaultHeadingSize = 28
	DefaultTitleSize   = 44
	DefaultMinBodySize = 14
)

// defaultColors is the fallback palette installed when color tokens are
// missing entirely.
func defaultColors() map[string]string {
	return map[string]string{
		"text":  "#111827",
		"muted": "#6B7280",
		"bg":    "#FFFFFF",
	}
}

// normalizeTokens fills missing token values with documented defaults.
func normalizeTokens(t *deck.Tokens, warnings *[]Warning) {
	if t.Spacing.Gutter <= 0 {
		t.Spacing.Gutter = MinGutter
		warnf(warnings, "tokens.spacing", "gutter missing; set to %dpx", MinGutter)
	}
	if t.Spacing.Margin <= 0 {
		t.Spacing.Margin = MinMargin
		warnf(warnings, "tokens.spacing", "margin missing; set to %dpx", MinMargin)
	}
	if t.Grid.Columns <= 0 {
		t.Grid.Columns = DefaultColumns
		warnf(warnings, "tokens.grid", "columns missing; set to %d", DefaultColumns)
	}
	if t.Grid.Unit == "" {
		t.Grid.Unit = DefaultUnit
	}

	if t.Font.BodyFamily == "" {
		t.Font.BodyFamily = DefaultFontFamily
	}
	if t.Font.TitleFamily == "" {
		t.Font.TitleFamily = DefaultFontFamily
	}
	if t.Font.BodySize <= 0 {
		t.Font.BodySize = DefaultBodySize
	}
	if t.Font.HeadingSize <= 0 {
		t.Font.HeadingSize = DefaultHeadingSize
	}
	if t.Font.TitleSize <= 0 {
		t.Font.TitleSize = DefaultTitleSize
	}
	if t.Font.MinBodySize <= 0 {
		t.Font.MinBodySize = DefaultMinBodySize
	}

	if len(t.Color) == 0 {
		t.Color = defaultColors()
		warnf(warnings, "tokens.color", "missing color tokens; set basic defaults")
	}
}
