package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"clipdeck/internal/formstate"
)

func browserFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, d := range []string{"shots", ".hidden"} {
		if err := os.Mkdir(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"b.txt", "a.png"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBrowserListsDirsFirstAndTagsImages(t *testing.T) {
	dir := browserFixture(t)
	m := newTestModel(t, AppCallbacks{})
	m.browser = browserState{rowKey: "file", dir: dir}
	m.loadBrowserItems()

	var labels []string
	for _, it := range m.browser.items {
		labels = append(labels, it.label)
	}
	want := []string{"..", "shots/", "a.png [image]", "b.txt"}
	if len(labels) != len(want) {
		t.Fatalf("labels %v want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels %v want %v", labels, want)
		}
	}
}

func TestBrowserDirOnlyOffersUseThisFolder(t *testing.T) {
	dir := browserFixture(t)
	m := newTestModel(t, AppCallbacks{DefaultOutputDir: dir})
	m.cursor = rowIndex(t, m.values, "output")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := updated.(appModel)
	if m2.modalKind != modalPathBrowser {
		t.Fatalf("expected path browser")
	}
	if m2.browser.dir != dir {
		t.Fatalf("browser should start at default output dir, got %s", m2.browser.dir)
	}
	for _, it := range m2.browser.items {
		if !it.isDir && !it.selectHere {
			t.Fatalf("files must be hidden when choosing a folder: %+v", it)
		}
	}
	updated, _ = m2.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m3 := updated.(appModel)
	if m3.modalActive || m3.values.Output != dir {
		t.Fatalf("expected output %s, got %q", dir, m3.values.Output)
	}
}

func TestBrowserSelectsFileForCopy(t *testing.T) {
	dir := browserFixture(t)
	v := formstate.Default()
	v.Mode = formstate.ModeCopy
	v.Files = []string{filepath.Join(dir, "b.txt")}
	m := newTestModel(t, AppCallbacks{Values: v})
	m.cursor = rowIndex(t, m.values, "file")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m2 := updated.(appModel)
	if m2.browser.dir != dir {
		t.Fatalf("browser should open next to the current file, got %s", m2.browser.dir)
	}
	for m2.browser.items[m2.browser.cursor].label != "a.png [image]" {
		updated, _ = m2.Update(key("j"))
		m2 = updated.(appModel)
	}
	updated, _ = m2.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m3 := updated.(appModel)
	want := filepath.Join(dir, "a.png")
	if len(m3.values.Files) != 1 || m3.values.Files[0] != want {
		t.Fatalf("expected file %s, got %v", want, m3.values.Files)
	}
}

func TestBrowserBackspaceGoesToParent(t *testing.T) {
	dir := browserFixture(t)
	m := newTestModel(t, AppCallbacks{})
	m.browser = browserState{rowKey: "file", dir: filepath.Join(dir, "shots")}
	m.loadBrowserItems()
	m.openModal(modalPathBrowser)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m2 := updated.(appModel)
	if m2.browser.dir != dir {
		t.Fatalf("expected parent %s, got %s", dir, m2.browser.dir)
	}
	updated, _ = m2.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m3 := updated.(appModel)
	if m3.modalActive || m3.status != "Selection canceled" {
		t.Fatalf("esc should cancel the browser")
	}
}
