package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas turns a rendered frame into a width x height grid of plain runes.
func canvas(frame string, width, height int) [][]rune {
	rows := strings.Split(stripANSI(frame), "\n")
	width = max(width, 1)
	if height < 1 {
		height = max(len(rows), 1)
	}
	grid := make([][]rune, height)
	for y := range grid {
		var r []rune
		if y < len(rows) {
			r = []rune(rows[y])
		}
		if len(r) > width {
			r = r[:width]
		}
		for len(r) < width {
			r = append(r, ' ')
		}
		grid[y] = r
	}
	return grid
}

func joinCanvas(grid [][]rune) string {
	rows := make([]string, len(grid))
	for i, r := range grid {
		rows[i] = string(r)
	}
	return strings.Join(rows, "\n")
}

// overlayCentered draws a styled modal over a flattened copy of base. Only
// the modal keeps its colors.
func overlayCentered(base, overlay string, width, height int) string {
	grid := canvas(base, width, height)
	modal := strings.Split(overlay, "\n")
	modalW := 0
	for _, l := range modal {
		modalW = max(modalW, ansi.StringWidth(l))
	}
	top := max((len(grid)-len(modal))/2, 0)
	left := max((len(grid[0])-modalW)/2, 0)

	rows := make([]string, len(grid))
	for y, r := range grid {
		i := y - top
		if i < 0 || i >= len(modal) {
			rows[y] = string(r)
			continue
		}
		w := min(ansi.StringWidth(modal[i]), max(len(r)-left, 0))
		rows[y] = string(r[:left]) + modal[i] + string(r[min(left+w, len(r)):])
	}
	return strings.Join(rows, "\n")
}

// applyBackdrop flattens base and swaps box drawing for dashed variants so
// the panels behind a modal read as inactive.
func applyBackdrop(base string, width, height int) string {
	grid := canvas(base, width, height)
	for _, r := range grid {
		for x := range r {
			r[x] = softenRune(r[x])
		}
	}
	return joinCanvas(grid)
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}

var softened = map[rune]rune{
	'│': '┆', '┃': '┆',
	'─': '┄', '━': '┄',
	'┬': '┼', '┴': '┼', '┼': '┼',
	'├': '┝', '┤': '┥',
	'┌': '┍', '┐': '┑', '└': '┕', '┘': '┙',
}

func softenRune(r rune) rune {
	if s, ok := softened[r]; ok {
		return s
	}
	return r
}

// innerHeight and panelInnerWidth subtract a rounded border and padding.
func innerHeight(totalHeight int) int {
	return max(totalHeight-2, 1)
}

func panelInnerWidth(totalWidth int) int {
	return max(totalWidth-4, 1)
}

// fitLines pads or cuts lines to exactly maxLines, marking a cut with "~".
func fitLines(lines []string, maxLines int) []string {
	switch {
	case maxLines <= 0:
		return []string{}
	case len(lines) == 0:
		lines = []string{""}
	}
	if len(lines) > maxLines {
		if maxLines == 1 {
			return []string{truncate(lines[0], 20)}
		}
		out := append([]string(nil), lines[:maxLines-1]...)
		return append(out, "~")
	}
	out := append(make([]string, 0, maxLines), lines...)
	for len(out) < maxLines {
		out = append(out, "")
	}
	return out
}

func clampLine(s string, maxWidth int) string {
	if len([]rune(s)) <= maxWidth {
		return s
	}
	return truncate(s, max(maxWidth, 1))
}

func formatVersionLabel(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return "vdev"
	case strings.HasPrefix(v, "v"):
		return v
	}
	return "v" + v
}

func fitAndWrapLines(lines []string, maxLines, maxWidth int) []string {
	return fitLines(wrapLines(lines, maxWidth), maxLines)
}

func wrapLines(lines []string, width int) []string {
	if width <= 0 {
		return []string{}
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

// wrapLine breaks s into rows of at most width runes, preferring the last
// space. Indentation is kept so clipboard text keeps its shape.
func wrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	r := []rune(strings.TrimRight(strings.ReplaceAll(s, "\t", "    "), " \r"))
	if len(r) == 0 {
		return []string{""}
	}
	var out []string
	for len(r) > width {
		cut := width
		for i := width; i > 0; i-- {
			if r[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(r[:cut]), " "))
		r = r[cut:]
		for len(r) > 0 && r[0] == ' ' {
			r = r[1:]
		}
	}
	if len(r) > 0 || len(out) == 0 {
		out = append(out, string(r))
	}
	return out
}

// truncateRaw cuts plain text to max cells with a "~" marker.
func truncateRaw(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return ansi.Truncate(s, max, "~")
}

// windowedText returns the slice of s visible from offset, with ellipses on
// the clipped sides, plus the clamped offset and the largest valid one.
func windowedText(s string, offset, width int) (string, int, int) {
	if width <= 0 {
		return "", 0, 0
	}
	r := []rune(s)
	if len(r) <= width {
		return s, 0, 0
	}
	maxOffset := len(r) - width
	offset = clampInt(offset, 0, maxOffset)
	end := offset + width
	out := append([]rune(nil), r[offset:end]...)
	if offset > 0 {
		out[0] = '…'
	}
	if end < len(r) {
		out[len(out)-1] = '…'
	}
	return string(out), offset, maxOffset
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
