package tui

import (
	"clipdeck/internal/theme"
)

// UITheme mirrors theme.PaletteResolved so a resolved palette converts
// directly.
type UITheme theme.PaletteResolved

func defaultUITheme() UITheme {
	return UITheme(theme.ResolveForTerminal(theme.DefaultPaletteHex(), theme.DetectTrueColor()))
}

func ThemeFromPalette(p theme.PaletteHex, trueColor bool) UITheme {
	return UITheme(theme.ResolveForTerminal(p, trueColor))
}

func (t UITheme) withDefaults() UITheme {
	if t == (UITheme{}) {
		return defaultUITheme()
	}
	return t
}
