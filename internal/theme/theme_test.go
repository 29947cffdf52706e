package theme

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestDefaultPaletteIsValid(t *testing.T) {
	p := DefaultPaletteHex()
	if err := p.Validate(); err != nil {
		t.Fatalf("default palette: %v", err)
	}
	for _, bad := range []Hex{"red", "#fff", "#12345g", "#g12345", "#1234567", "112233", "#12 345"} {
		q := p
		q.CommandText = bad
		if err := q.Validate(); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestResolveForTerminal(t *testing.T) {
	p := DefaultPaletteHex()
	full := ResolveForTerminal(p, true)
	if full.CommandText != string(p.CommandText) || full.ClipText != string(p.ClipText) {
		t.Fatalf("truecolor should keep hex values: %+v", full)
	}
	reduced := ResolveForTerminal(p, false)
	for _, v := range []string{reduced.Danger, reduced.CommandText, reduced.LogoLine3, reduced.FieldLabel} {
		if _, err := strconv.Atoi(v); err != nil {
			t.Fatalf("expected a 256 color index, got %q", v)
		}
	}
	p.Danger = "#ff0000"
	if got := ResolveForTerminal(p, false).Danger; got != "196" && got != "9" {
		t.Fatalf("pure red resolved to %q", got)
	}
	p.Danger = "#ff00zz"
	if got := ResolveForTerminal(p, false).Danger; got != "7" {
		t.Fatalf("partial hex should fall back to 7, got %q", got)
	}
	p.Danger = "oops"
	if got := ResolveForTerminal(p, false).Danger; got != "7" {
		t.Fatalf("bad hex should fall back to 7, got %q", got)
	}
}

func TestParseThemeFileBackwardCompatibleDefaults(t *testing.T) {
	raw := []byte(`{
		"id":"legacy",
		"name":"Legacy",
		"version":1,
		"colors":{
			"pane_border_active":"#89b4fa",
			"pane_border_inactive":"#585b70",
			"popup_border":"#89b4fa",
			"popup_outer_border":"#11111b",
			"danger":"#f38ba8",
			"text_primary":"#cdd6f4",
			"text_muted":"#a6adc8",
			"selection_bg":"#89b4fa",
			"selection_fg":"#11111b"
		}
	}`)
	tf, err := ParseThemeFile(raw)
	if err != nil {
		t.Fatalf("expected legacy theme to parse: %v", err)
	}
	if tf.Colors.CommandText == "" || tf.Colors.LogoLine1 == "" {
		t.Fatalf("expected missing extended fields to be default-filled")
	}
}

func TestParseThemeFileWithVars(t *testing.T) {
	raw := []byte(`{
		"id":"vars-theme",
		"name":"Vars Theme",
		"version":1,
		"vars":{
			"blue":"#112233",
			"accent":"var(--blue)"
		},
		"colors":{
			"pane_border_active":"var(--accent)",
			"text_primary":"#abcdef"
		}
	}`)
	tf, err := ParseThemeFile(raw)
	if err != nil {
		t.Fatalf("expected vars theme to parse: %v", err)
	}
	if got := string(tf.Colors.PaneBorderActive); got != "#112233" {
		t.Fatalf("unexpected resolved pane_border_active: %s", got)
	}
	if got := string(tf.Colors.TextPrimary); got != "#abcdef" {
		t.Fatalf("unexpected text_primary: %s", got)
	}
}

func TestParseThemeFileUnknownVarFails(t *testing.T) {
	raw := []byte(`{
		"id":"bad-vars",
		"name":"Bad Vars",
		"version":1,
		"colors":{"pane_border_active":"var(--missing)"}
	}`)
	_, err := ParseThemeFile(raw)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "unknown color variable") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseThemeFileVarCycleFails(t *testing.T) {
	raw := []byte(`{
		"id":"cycle-vars",
		"name":"Cycle Vars",
		"version":1,
		"vars":{
			"a":"var(--b)",
			"b":"var(--a)"
		},
		"colors":{"pane_border_active":"var(--a)"}
	}`)
	_, err := ParseThemeFile(raw)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "circular variable reference") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseThemeFileInvalidVarFormatFails(t *testing.T) {
	raw := []byte(`{
		"id":"invalid-ref",
		"name":"Invalid Ref",
		"version":1,
		"colors":{"pane_border_active":"var(blue)"}
	}`)
	_, err := ParseThemeFile(raw)
	if err == nil {
		t.Fatalf("expected invalid var format error")
	}
}

func TestLoadActivePaletteHex(t *testing.T) {
	dir := t.TempDir()
	if _, id, err := LoadActivePaletteHex(dir, "default"); err != nil || id != "default" {
		t.Fatalf("default theme: %s %v", id, err)
	}
	body := `{"id":"night","name":"Night","colors":{"command_text":"#010203"}}`
	if err := os.WriteFile(filepath.Join(dir, "night.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	p, id, err := LoadActivePaletteHex(dir, "night")
	if err != nil || id != "night" || p.CommandText != "#010203" {
		t.Fatalf("night theme: %s %v %+v", id, err, p)
	}
	_ = os.WriteFile(filepath.Join(dir, "wrong.json"), []byte(`{"id":"other"}`), 0o644)
	if _, id, err := LoadActivePaletteHex(dir, "wrong"); err == nil || id != "default" {
		t.Fatalf("id mismatch should fall back: %s %v", id, err)
	}
	ids, err := ListLocalThemeIDs(dir)
	if err != nil || len(ids) != 2 || ids[0] != "night" || ids[1] != "wrong" {
		t.Fatalf("list: %v %v", ids, err)
	}
	if ids, err := ListLocalThemeIDs(filepath.Join(dir, "missing")); err != nil || len(ids) != 0 {
		t.Fatalf("missing dir: %v %v", ids, err)
	}
}
