package theme

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type Hex string

type PaletteHex struct {
	PaneBorderActive   Hex `json:"pane_border_active"`
	PaneBorderInactive Hex `json:"pane_border_inactive"`
	PopupBorder        Hex `json:"popup_border"`
	PopupOuterBorder   Hex `json:"popup_outer_border"`
	Danger             Hex `json:"danger"`
	Success            Hex `json:"success"`
	TextPrimary        Hex `json:"text_primary"`
	TextMuted          Hex `json:"text_muted"`
	SelectionBg        Hex `json:"selection_bg"`
	SelectionFg        Hex `json:"selection_fg"`
	LogoLine1          Hex `json:"logo_line_1"`
	LogoLine2          Hex `json:"logo_line_2"`
	LogoLine3          Hex `json:"logo_line_3"`
	HeaderText         Hex `json:"header_text"`
	HelpText           Hex `json:"help_text"`
	StatusText         Hex `json:"status_text"`
	TableHeader        Hex `json:"table_header"`
	FieldLabel         Hex `json:"field_label"`
	FieldValue         Hex `json:"field_value"`
	CommandText        Hex `json:"command_text"`
	ClipText           Hex `json:"clip_text"`
}

type ThemeFile struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Version int               `json:"version"`
	Vars    map[string]string `json:"vars,omitempty"`
	Colors  PaletteHex        `json:"colors"`
}

// PaletteResolved holds lipgloss color strings: hex on truecolor terminals,
// xterm-256 indexes otherwise.
type PaletteResolved struct {
	PaneBorderActive   string
	PaneBorderInactive string
	PopupBorder        string
	PopupOuterBorder   string
	Danger             string
	Success            string
	TextPrimary        string
	TextMuted          string
	SelectionBg        string
	SelectionFg        string
	LogoLine1          string
	LogoLine2          string
	LogoLine3          string
	HeaderText         string
	HelpText           string
	StatusText         string
	TableHeader        string
	FieldLabel         string
	FieldValue         string
	CommandText        string
	ClipText           string
}

type colorField struct {
	key string
	hex *Hex
	out *string
}

func (p *PaletteHex) fields(r *PaletteResolved) []colorField {
	if r == nil {
		r = &PaletteResolved{}
	}
	return []colorField{
		{"pane_border_active", &p.PaneBorderActive, &r.PaneBorderActive},
		{"pane_border_inactive", &p.PaneBorderInactive, &r.PaneBorderInactive},
		{"popup_border", &p.PopupBorder, &r.PopupBorder},
		{"popup_outer_border", &p.PopupOuterBorder, &r.PopupOuterBorder},
		{"danger", &p.Danger, &r.Danger},
		{"success", &p.Success, &r.Success},
		{"text_primary", &p.TextPrimary, &r.TextPrimary},
		{"text_muted", &p.TextMuted, &r.TextMuted},
		{"selection_bg", &p.SelectionBg, &r.SelectionBg},
		{"selection_fg", &p.SelectionFg, &r.SelectionFg},
		{"logo_line_1", &p.LogoLine1, &r.LogoLine1},
		{"logo_line_2", &p.LogoLine2, &r.LogoLine2},
		{"logo_line_3", &p.LogoLine3, &r.LogoLine3},
		{"header_text", &p.HeaderText, &r.HeaderText},
		{"help_text", &p.HelpText, &r.HelpText},
		{"status_text", &p.StatusText, &r.StatusText},
		{"table_header", &p.TableHeader, &r.TableHeader},
		{"field_label", &p.FieldLabel, &r.FieldLabel},
		{"field_value", &p.FieldValue, &r.FieldValue},
		{"command_text", &p.CommandText, &r.CommandText},
		{"clip_text", &p.ClipText, &r.ClipText},
	}
}

func (p PaletteHex) Validate() error {
	for _, f := range p.fields(nil) {
		if !validHex(*f.hex) {
			return fmt.Errorf("invalid hex color for %s: %q", f.key, string(*f.hex))
		}
	}
	return nil
}

var varRefRe = regexp.MustCompile(`^var\(--([a-zA-Z0-9_-]+)\)$`)

// ParseThemeFile fills colors the file omits from the default palette and
// resolves var(--name) references against the file's vars.
func ParseThemeFile(b []byte) (ThemeFile, error) {
	t := ThemeFile{
		Version: 1,
		Colors:  DefaultPaletteHex(),
	}
	if err := json.Unmarshal(b, &t); err != nil {
		return ThemeFile{}, err
	}
	if t.ID == "" {
		return ThemeFile{}, fmt.Errorf("theme id is required")
	}
	if t.Version == 0 {
		t.Version = 1
	}
	for _, f := range t.Colors.fields(nil) {
		v, err := resolveVar(string(*f.hex), t.Vars, map[string]bool{})
		if err != nil {
			return ThemeFile{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.hex = Hex(v)
	}
	if err := t.Colors.Validate(); err != nil {
		return ThemeFile{}, err
	}
	return t, nil
}

func resolveVar(val string, vars map[string]string, seen map[string]bool) (string, error) {
	val = strings.TrimSpace(val)
	if !strings.HasPrefix(val, "var(") {
		return val, nil
	}
	m := varRefRe.FindStringSubmatch(val)
	if m == nil {
		return "", fmt.Errorf("invalid variable reference %q", val)
	}
	name := m[1]
	if seen[name] {
		return "", fmt.Errorf("circular variable reference: %s", name)
	}
	next, ok := vars[name]
	if !ok {
		return "", fmt.Errorf("unknown color variable: %s", name)
	}
	seen[name] = true
	return resolveVar(next, vars, seen)
}

func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		PaneBorderActive:   "#7dd3fc",
		PaneBorderInactive: "#585858",
		PopupBorder:        "#7dd3fc",
		PopupOuterBorder:   "#000000",
		Danger:             "#e06c75",
		Success:            "#98c379",
		TextPrimary:        "#d7dae0",
		TextMuted:          "#8b929e",
		SelectionBg:        "#7dd3fc",
		SelectionFg:        "#000000",
		LogoLine1:          "#7dd3fc",
		LogoLine2:          "#60b8e0",
		LogoLine3:          "#4a9cc4",
		HeaderText:         "#e6edf3",
		HelpText:           "#b6c2cf",
		StatusText:         "#7dd3fc",
		TableHeader:        "#a5e3ff",
		FieldLabel:         "#9fb4c7",
		FieldValue:         "#e6edf3",
		CommandText:        "#f5d67b",
		ClipText:           "#c8d3a8",
	}
}
