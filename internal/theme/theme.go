// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/inkwell/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to terminal styles. Names are UI elements ("StatusBar"),
// document elements ("strong", "link") or syntax captures ("keyword.control").
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// lookup tries the exact name, then the part before the first dot.
func (t *Theme) lookup(name string) (tcell.Style, bool) {
	if style, ok := t.Styles[name]; ok {
		return style, true
	}
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style, true
		}
	}
	return tcell.StyleDefault, false
}

// GetStyle returns the style for name, falling back to its base name and then
// to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.lookup(name); ok {
		return style
	}
	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Overlay layers the named style over base: its foreground replaces base's
// (unless unset) and its attributes are added. Unknown names leave base as is.
func (t *Theme) Overlay(base tcell.Style, name string) tcell.Style {
	style, ok := t.lookup(name)
	if !ok {
		return base
	}
	fg, _, attrs := style.Decompose()
	_, _, baseAttrs := base.Decompose()
	if fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	return base.Attributes(baseAttrs | attrs)
}

// ClassStyle returns the style name for a highlight class such as "hl-keyword".
func ClassStyle(class string) (string, bool) {
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, "hl-") {
			return strings.TrimPrefix(c, "hl-"), true
		}
	}
	return "", false
}

// Built-in themes.
var (
	InkwellDark  Theme
	InkwellLight Theme
)

// palette holds the colors a built-in theme is derived from.
type palette struct {
	background, foreground, muted tcell.Color
	orange, yellow, green         tcell.Color
	cyan, blue, magenta           tcell.Color
}

func newBuiltin(name string, isDark bool, p palette) Theme {
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(p.foreground)
	bar := tcell.StyleDefault.Background(p.background).Foreground(p.foreground)

	return Theme{
		Name:   name,
		IsDark: isDark,
		Styles: map[string]tcell.Style{
			// UI
			"Default":           baseStyle,
			"Selection":         baseStyle.Reverse(true),
			"Prefix":            baseStyle.Foreground(p.muted),
			"StatusBar":         bar,
			"StatusBarModified": bar.Foreground(p.yellow),
			"StatusBarActive":   bar.Foreground(p.green).Bold(true),
			"StatusBarMessage":  bar.Bold(true),
			"StatusBarCommand":  bar.Foreground(p.cyan).Bold(true),

			// Document
			"strong":   baseStyle.Bold(true),
			"em":       baseStyle.Italic(true),
			"strike":   baseStyle.StrikeThrough(true),
			"code":     baseStyle.Foreground(p.orange),
			"link":     baseStyle.Foreground(p.blue).Underline(true),
			"quote":    baseStyle.Foreground(p.muted).Italic(true),
			"heading":  baseStyle.Foreground(p.magenta).Bold(true),
			"rule":     baseStyle.Foreground(p.muted),
			"th":       baseStyle.Bold(true),
			"checkbox": baseStyle.Foreground(p.green),

			// Syntax
			"keyword":     baseStyle.Foreground(p.blue).Bold(true),
			"string":      baseStyle.Foreground(p.green),
			"comment":     baseStyle.Foreground(p.muted).Italic(true),
			"number":      baseStyle.Foreground(p.orange),
			"constant":    baseStyle.Foreground(p.orange),
			"boolean":     baseStyle.Foreground(p.orange),
			"type":        baseStyle.Foreground(p.cyan),
			"function":    baseStyle.Foreground(p.yellow),
			"method":      baseStyle.Foreground(p.yellow),
			"constructor": baseStyle.Foreground(p.yellow).Bold(true),
			"namespace":   baseStyle.Foreground(p.cyan),
			"module":      baseStyle.Foreground(p.green),
			"attribute":   baseStyle.Foreground(p.magenta),
			"property":    baseStyle.Foreground(p.foreground),
			"variable":    baseStyle.Foreground(p.foreground),
			"operator":    baseStyle.Foreground(p.foreground),
			"punctuation": baseStyle.Foreground(p.muted),
			"escape":      baseStyle.Foreground(p.magenta),
			"label":       baseStyle.Foreground(p.foreground),
		},
	}
}

func init() {
	InkwellDark = newBuiltin("Inkwell Dark", true, palette{
		background: tcell.NewHexColor(0x2a2f38),
		foreground: tcell.NewHexColor(0xc5cdd9),
		muted:      tcell.NewHexColor(0x5c6370),
		orange:     tcell.NewHexColor(0xd19a66),
		yellow:     tcell.NewHexColor(0xe5c07b),
		green:      tcell.NewHexColor(0x98c379),
		cyan:       tcell.NewHexColor(0x56b6c2),
		blue:       tcell.NewHexColor(0x61afef),
		magenta:    tcell.NewHexColor(0xc678dd),
	})
	InkwellLight = newBuiltin("Inkwell Light", false, palette{
		background: tcell.NewHexColor(0xe5e5e6),
		foreground: tcell.NewHexColor(0x383a42),
		muted:      tcell.NewHexColor(0xa0a1a7),
		orange:     tcell.NewHexColor(0x986801),
		yellow:     tcell.NewHexColor(0xc18401),
		green:      tcell.NewHexColor(0x50a14f),
		cyan:       tcell.NewHexColor(0x0184bc),
		blue:       tcell.NewHexColor(0x4078f2),
		magenta:    tcell.NewHexColor(0xa626a4),
	})
}
