package theme

import (
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// DetectTrueColor reports whether palette hex values can be passed to
// lipgloss unchanged. COLORTERM and TERM are checked as well because
// termenv does not see through some multiplexers.
func DetectTrueColor() bool {
	if termenv.EnvColorProfile() == termenv.TrueColor {
		return true
	}
	ct := strings.ToLower(os.Getenv("COLORTERM"))
	if strings.Contains(ct, "truecolor") || strings.Contains(ct, "24bit") {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "direct") || strings.Contains(term, "truecolor")
}

func ResolveForTerminal(p PaletteHex, trueColor bool) PaletteResolved {
	profile := termenv.ANSI256
	if trueColor {
		profile = termenv.TrueColor
	}
	var out PaletteResolved
	for _, f := range p.fields(&out) {
		*f.out = resolveColor(*f.hex, profile)
	}
	return out
}

// resolveColor maps a palette entry onto the profile. Unparseable entries
// become plain white (7) on reduced palettes.
func resolveColor(h Hex, profile termenv.Profile) string {
	if profile == termenv.TrueColor {
		return string(h)
	}
	if !validHex(h) {
		return "7"
	}
	switch c := profile.Color(string(h)).(type) {
	case termenv.ANSI256Color:
		return strconv.Itoa(int(c))
	case termenv.ANSIColor:
		return strconv.Itoa(int(c))
	}
	return "7"
}

// validHex accepts only the six digit #rrggbb form theme files use.
// colorful.Hex alone stops at the first non-hex digit without an error.
func validHex(h Hex) bool {
	if len(h) != 7 || h[0] != '#' {
		return false
	}
	for _, c := range h[1:] {
		if !isHexDigit(c) {
			return false
		}
	}
	_, err := colorful.Hex(string(h))
	return err == nil
}

func isHexDigit(c rune) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
