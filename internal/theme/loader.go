package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LoadActivePaletteHex reads <dir>/<active>.json. Any problem falls back to
// the default palette and is returned so the caller can warn.
func LoadActivePaletteHex(dir, active string) (PaletteHex, string, error) {
	if active == "" || active == "default" {
		return DefaultPaletteHex(), "default", nil
	}
	b, err := os.ReadFile(filepath.Join(dir, active+".json"))
	if err != nil {
		return DefaultPaletteHex(), "default", err
	}
	themeFile, err := ParseThemeFile(b)
	if err != nil {
		return DefaultPaletteHex(), "default", err
	}
	if themeFile.ID != active {
		return DefaultPaletteHex(), "default", fmt.Errorf("theme id mismatch: expected %q got %q", active, themeFile.ID)
	}
	return themeFile.Colors, themeFile.ID, nil
}

func ListLocalThemeIDs(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(ents))
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, name[:len(name)-5])
	}
	sort.Strings(ids)
	return ids, nil
}
