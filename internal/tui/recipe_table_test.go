package tui

import (
	"strings"
	"testing"
)

func TestRecipeTableStartsOnCurrentRecipe(t *testing.T) {
	tbl := newRecipeTable(testCatalog(t), "photo-jpeg")
	r, ok := tbl.current()
	if !ok || r.ID != "photo-jpeg" {
		t.Fatalf("cursor should start on current recipe, got %+v", r)
	}
	if tbl.rows[0].ID != "" {
		t.Fatalf("blank filter should offer the no-recipe row first")
	}
}

func TestRecipeTableFilterHidesNoRecipeRow(t *testing.T) {
	tbl := newRecipeTable(testCatalog(t), "")
	tbl.appendFilterChar("p")
	tbl.appendFilterChar("n")
	tbl.appendFilterChar("g")
	if len(tbl.rows) != 1 || tbl.rows[0].ID != "screenshot-png" {
		t.Fatalf("unexpected rows %+v", tbl.rows)
	}
	tbl.backspaceFilter()
	tbl.backspaceFilter()
	tbl.backspaceFilter()
	if tbl.filter != "" || tbl.rows[0].ID != "" {
		t.Fatalf("clearing the filter should restore the no-recipe row")
	}
}

func TestRecipeTableCursorClamps(t *testing.T) {
	tbl := newRecipeTable(testCatalog(t), "")
	tbl.moveCursor(-5)
	if tbl.cursor != 0 {
		t.Fatalf("cursor below zero: %d", tbl.cursor)
	}
	tbl.moveCursor(50)
	if tbl.cursor != len(tbl.rows)-1 {
		t.Fatalf("cursor past end: %d", tbl.cursor)
	}
}

func TestRecipeTableRender(t *testing.T) {
	tbl := newRecipeTable(testCatalog(t), "")
	out := tbl.render(80, defaultUITheme())
	for _, want := range []string{"ID", "Label", "Args", "(no recipe)", "screenshot-png", "--format jpeg"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}
