// Package clipview reads the clipboard at a history offset and renders a
// short preview of it.
package clipview

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	TextPreviewRunes = 300
	HTMLPreviewRunes = 200
	Empty            = "(no clipboard data)"
)

type Snapshot struct {
	Text string
	File string
	HTML string
}

func (s Snapshot) IsEmpty() bool {
	return s.Text == "" && s.File == "" && s.HTML == ""
}

type Rendered struct {
	Text        string
	File        string
	FileIsImage bool
	HTML        string
	Empty       bool
}

// String joins the non-empty parts the way the form panel shows them.
func (r Rendered) String() string {
	if r.Empty {
		return Empty
	}
	parts := make([]string, 0, 3)
	if r.Text != "" {
		parts = append(parts, r.Text)
	}
	if r.File != "" {
		parts = append(parts, "File: "+r.File)
	}
	if r.HTML != "" {
		parts = append(parts, "HTML: "+r.HTML)
	}
	return strings.Join(parts, "\n\n")
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

func Render(s Snapshot) Rendered {
	if s.IsEmpty() {
		return Rendered{Empty: true}
	}
	out := Rendered{
		Text:        truncateRunes(s.Text, TextPreviewRunes),
		File:        s.File,
		FileIsImage: IsImagePath(s.File),
	}
	if s.HTML != "" {
		out.HTML = truncateRunes(StripTags(s.HTML), HTMLPreviewRunes)
	}
	return out
}

func StripTags(html string) string {
	return htmlTag.ReplaceAllString(html, "")
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true}

func IsImagePath(path string) bool {
	if path == "" {
		return false
	}
	return imageExts[strings.ToLower(filepath.Ext(path))]
}
