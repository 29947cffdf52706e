package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"clipdeck/internal/app"
	"clipdeck/internal/clipview"
)

type browserState struct {
	rowKey  string
	dirOnly bool

	dir     string
	cursor  int
	items   []browserItem
	hScroll int
}

type browserItem struct {
	label      string
	path       string
	isDir      bool
	selectHere bool
}

// startBrowser opens the picker for a path row, starting next to the current
// value when it still exists.
func (m *appModel) startBrowser(row formRow) tea.Cmd {
	start := strings.TrimSpace(app.ExpandHome(rowValue(m.values, row.key)))
	if start != "" && !row.dirOnly {
		start = filepath.Dir(start)
	}
	if start == "" && row.dirOnly {
		start = strings.TrimSpace(m.callbacks.DefaultOutputDir)
	}
	if start == "" {
		start = userHomeDirOr(".")
	}
	if st, err := os.Stat(start); err != nil || !st.IsDir() {
		start = "."
	}
	abs, err := filepath.Abs(start)
	if err == nil {
		start = abs
	}
	m.browser = browserState{rowKey: row.key, dirOnly: row.dirOnly, dir: start}
	m.loadBrowserItems()
	if row.dirOnly {
		m.status = "Choose output folder"
	} else {
		m.status = "Choose file to copy"
	}
	m.openModal(modalPathBrowser)
	return nil
}

func userHomeDirOr(fallback string) string {
	h, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(h) == "" {
		return fallback
	}
	return h
}

func (m *appModel) loadBrowserItems() {
	dir := m.browser.dir
	items := make([]browserItem, 0, 64)
	if m.browser.dirOnly {
		items = append(items, browserItem{label: "[Use this folder]", path: dir, selectHere: true})
	}
	parent := filepath.Dir(dir)
	if parent != dir {
		items = append(items, browserItem{label: "..", path: parent, isDir: true})
	}
	ents, err := os.ReadDir(dir)
	if err == nil {
		entries := make([]browserItem, 0, len(ents))
		for _, ent := range ents {
			if strings.HasPrefix(ent.Name(), ".") {
				continue
			}
			p := filepath.Join(dir, ent.Name())
			if ent.IsDir() {
				entries = append(entries, browserItem{label: ent.Name() + "/", path: p, isDir: true})
				continue
			}
			if m.browser.dirOnly {
				continue
			}
			label := ent.Name()
			if clipview.IsImagePath(p) {
				label += " [image]"
			}
			entries = append(entries, browserItem{label: label, path: p})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].isDir != entries[j].isDir {
				return entries[i].isDir
			}
			return strings.ToLower(entries[i].label) < strings.ToLower(entries[j].label)
		})
		items = append(items, entries...)
	}
	m.browser.items = items
	m.browser.cursor = clampInt(m.browser.cursor, 0, max(len(items)-1, 0))
}

func (m appModel) updateBrowser(key string) (tea.Model, tea.Cmd) {
	s := m.browser
	switch key {
	case "esc":
		m.browser = browserState{}
		m.closeModal()
		m.status = "Selection canceled"
		return m, nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case "left", "h":
		if s.hScroll > 0 {
			s.hScroll--
		}
	case "right", "l":
		s.hScroll++
	case "backspace":
		s.dir = filepath.Dir(s.dir)
		s.cursor = 0
		m.browser = s
		m.loadBrowserItems()
		return m, nil
	case "enter":
		if len(s.items) == 0 {
			m.status = "Nothing to select"
			return m, nil
		}
		it := s.items[s.cursor]
		if it.selectHere || (!it.isDir && !s.dirOnly) {
			m.browser = browserState{}
			m.closeModal()
			m.status = "Selected " + it.path
			cmd := m.setValues(setRowValue(m.values, s.rowKey, it.path))
			return m, cmd
		}
		if it.isDir {
			s.dir = it.path
			s.cursor = 0
			m.browser = s
			m.loadBrowserItems()
			return m, nil
		}
	}
	m.browser = s
	return m, nil
}

func isPrintableKey(k string) bool {
	return len(k) == 1 && k[0] >= 32 && k[0] <= 126
}
