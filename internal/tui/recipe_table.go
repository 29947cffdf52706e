package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"clipdeck/internal/recipe"
)

type columnSpec struct {
	title  string
	min    int
	max    int
	weight int
}

var noRecipe = recipe.Recipe{Label: "(no recipe)"}

type recipeTable struct {
	catalog recipe.Catalog
	rows    []recipe.Recipe
	cursor  int
	scroll  int
	filter  string
	height  int
}

func newRecipeTable(c recipe.Catalog, currentID string) recipeTable {
	t := recipeTable{catalog: c, height: 12}
	t.recompute()
	for i, r := range t.rows {
		if r.ID == currentID {
			t.cursor = i
		}
	}
	t.ensureVisible()
	return t
}

func (t *recipeTable) setHeight(h int) {
	t.height = h
	t.ensureVisible()
}

func (t *recipeTable) moveCursor(delta int) {
	if len(t.rows) == 0 {
		return
	}
	t.cursor = clampInt(t.cursor+delta, 0, len(t.rows)-1)
	t.ensureVisible()
}

func (t *recipeTable) pageMove(delta int) {
	t.moveCursor(delta * t.bodyRows())
}

func (t *recipeTable) backspaceFilter() {
	if len(t.filter) == 0 {
		return
	}
	r := []rune(t.filter)
	t.filter = string(r[:len(r)-1])
	t.recompute()
}

func (t *recipeTable) appendFilterChar(ch string) {
	if !isPrintableKey(ch) {
		return
	}
	t.filter += ch
	t.recompute()
}

// recompute ranks by the fuzzy filter. The "no recipe" row is offered only
// while the filter is blank.
func (t *recipeTable) recompute() {
	rows := make([]recipe.Recipe, 0, t.catalog.Len()+1)
	if strings.TrimSpace(t.filter) == "" {
		rows = append(rows, noRecipe)
	}
	rows = append(rows, t.catalog.Filter(t.filter)...)
	t.rows = rows
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureVisible()
}

func (t *recipeTable) current() (recipe.Recipe, bool) {
	if len(t.rows) == 0 || t.cursor < 0 || t.cursor >= len(t.rows) {
		return recipe.Recipe{}, false
	}
	return t.rows[t.cursor], true
}

func (t *recipeTable) ensureVisible() {
	if len(t.rows) == 0 {
		t.cursor = 0
		t.scroll = 0
		return
	}
	rows := t.bodyRows()
	if t.cursor < t.scroll {
		t.scroll = t.cursor
	}
	if t.cursor >= t.scroll+rows {
		t.scroll = t.cursor - rows + 1
	}
	t.scroll = clampInt(t.scroll, 0, max(len(t.rows)-rows, 0))
}

// bodyRows excludes the top border, header, separator and bottom border.
func (t recipeTable) bodyRows() int {
	height := t.height
	if height <= 0 {
		height = 12
	}
	rows := height - 4
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (t recipeTable) render(totalWidth int, theme UITheme) string {
	cols := []columnSpec{
		{title: "ID", min: 10, max: 20, weight: 2},
		{title: "Label", min: 12, max: 30, weight: 3},
		{title: "Args", min: 12, max: 60, weight: 5},
	}
	widths := allocateColumnWidths(totalWidth-2, cols)
	rowLimit := t.bodyRows()
	start := t.scroll
	end := min(start+rowLimit, len(t.rows))

	lines := make([]string, 0, rowLimit+4)
	lines = append(lines, drawBorder("┌", "┬", "┐", widths))
	lines = append(lines, drawRow([]string{"ID", "Label", "Args"}, widths, false, theme, true))
	lines = append(lines, drawBorder("├", "┼", "┤", widths))
	for i := start; i < end; i++ {
		r := t.rows[i]
		lines = append(lines, drawRow([]string{r.ID, r.Label, strings.Join(r.Args, " ")}, widths, i == t.cursor, theme, false))
	}
	for i := end; i < start+rowLimit; i++ {
		lines = append(lines, drawRow([]string{"", "", ""}, widths, false, theme, false))
	}
	lines = append(lines, drawBorder("└", "┴", "┘", widths))
	return strings.Join(lines, "\n")
}

func drawBorder(left, mid, right string, widths []int) string {
	parts := make([]string, 0, len(widths)+2)
	parts = append(parts, left)
	for i, w := range widths {
		parts = append(parts, strings.Repeat("─", w))
		if i != len(widths)-1 {
			parts = append(parts, mid)
		}
	}
	parts = append(parts, right)
	return strings.Join(parts, "")
}

func drawRow(values []string, widths []int, selected bool, theme UITheme, isHeader bool) string {
	parts := make([]string, 0, len(widths)+2)
	parts = append(parts, "│")
	columnColors := []string{theme.FieldLabel, theme.FieldValue, theme.CommandText}
	for i := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cell := pad(truncate(v, widths[i]), widths[i])
		cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(columnColors[i%len(columnColors)]))
		if isHeader {
			cellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TableHeader)).Bold(true)
		}
		if selected {
			cellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.SelectionFg)).
				Background(lipgloss.Color(theme.SelectionBg))
		}
		parts = append(parts, cellStyle.Render(cell))
		if i != len(widths)-1 {
			parts = append(parts, "│")
		}
	}
	parts = append(parts, "│")
	return strings.Join(parts, "")
}

func allocateColumnWidths(total int, cols []columnSpec) []int {
	if total < 10 {
		total = 10
	}
	available := total - (len(cols) - 1)
	widths := make([]int, len(cols))
	used := 0
	for i, c := range cols {
		widths[i] = c.min
		used += c.min
	}
	remaining := available - used
	for remaining > 0 {
		changed := false
		for i, c := range cols {
			if remaining == 0 {
				break
			}
			if widths[i] >= c.max || c.weight == 0 {
				continue
			}
			widths[i]++
			remaining--
			changed = true
		}
		if !changed {
			break
		}
	}
	return widths
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "~"
	}
	return string(r[:max-1]) + "~"
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
