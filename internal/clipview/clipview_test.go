package clipview

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderTruncatesText(t *testing.T) {
	long := strings.Repeat("é", 301)
	r := Render(Snapshot{Text: long})
	if got := []rune(r.Text); len(got) != 301 || got[300] != '…' {
		t.Fatalf("expected 300 runes plus ellipsis, got %d runes", len(got))
	}
	exact := strings.Repeat("a", 300)
	if Render(Snapshot{Text: exact}).Text != exact {
		t.Fatalf("300 runes must not be truncated")
	}
}

func TestRenderStripsAndTruncatesHTML(t *testing.T) {
	r := Render(Snapshot{HTML: "<p>hello <b>world</b></p>"})
	if r.HTML != "hello world" {
		t.Fatalf("html: %q", r.HTML)
	}
	long := "<div>" + strings.Repeat("x", 250) + "</div>"
	r = Render(Snapshot{HTML: long})
	if r.HTML != strings.Repeat("x", 200)+"…" {
		t.Fatalf("html not truncated to 200 runes: %d", len([]rune(r.HTML)))
	}
}

func TestRenderFileAndEmpty(t *testing.T) {
	r := Render(Snapshot{File: "/tmp/Shot.PNG"})
	if !r.FileIsImage || r.String() != "File: /tmp/Shot.PNG" {
		t.Fatalf("unexpected render: %+v %q", r, r.String())
	}
	if Render(Snapshot{File: "/tmp/notes.txt"}).FileIsImage {
		t.Fatalf("txt is not an image")
	}
	if got := Render(Snapshot{}).String(); got != Empty {
		t.Fatalf("empty: %q", got)
	}
	both := Render(Snapshot{Text: "a", HTML: "<i>b</i>"}).String()
	if both != "a\n\nHTML: b" {
		t.Fatalf("joined: %q", both)
	}
}

func TestIsImagePath(t *testing.T) {
	for _, p := range []string{"a.png", "a.jpg", "a.JPEG", "a.webp", "a.gif"} {
		if !IsImagePath(p) {
			t.Fatalf("%s should be an image", p)
		}
	}
	for _, p := range []string{"", "a.bmp", "png"} {
		if IsImagePath(p) {
			t.Fatalf("%s should not be an image", p)
		}
	}
}

func TestDescribePNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.png")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	info, err := Describe(p)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if info.Format != "png" || info.Width != 4 || info.Height != 3 || info.Bytes == 0 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if _, err := Describe(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestHistoryKeepsDistinctNewestFirst(t *testing.T) {
	h := NewHistory(2)
	h.Push(Snapshot{Text: "a"})
	h.Push(Snapshot{Text: "a"})
	h.Push(Snapshot{})
	h.Push(Snapshot{Text: "b"})
	h.Push(Snapshot{Text: "c"})
	if h.Len() != 2 {
		t.Fatalf("len: %d", h.Len())
	}
	if s, _ := h.At(0); s.Text != "c" {
		t.Fatalf("newest: %+v", s)
	}
	if s, _ := h.At(1); s.Text != "b" {
		t.Fatalf("older: %+v", s)
	}
	if _, ok := h.At(2); ok {
		t.Fatalf("out of range offset should miss")
	}
}

type fakeRunner struct {
	out []byte
	err error
}

func (f fakeRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return f.out, f.err
}

func TestSystemReaderOffsetsAndHTML(t *testing.T) {
	texts := []string{"first", "second"}
	i := 0
	r := &SystemReader{
		Runner:   fakeRunner{out: []byte("<b>x</b>\n")},
		LookPath: func(string) (string, error) { return "/usr/bin/xclip", nil },
		ReadText: func() (string, error) { return texts[i], nil },
		History:  NewHistory(6),
	}
	s, err := r.Read(context.Background(), 0)
	if err != nil || s.Text != "first" || s.HTML != "<b>x</b>" {
		t.Fatalf("first read: %+v %v", s, err)
	}
	i = 1
	s, _ = r.Read(context.Background(), 1)
	if s.Text != "first" {
		t.Fatalf("offset 1 should be the previous snapshot: %+v", s)
	}
	s, _ = r.Read(context.Background(), 4)
	if !s.IsEmpty() {
		t.Fatalf("unknown history depth should be empty: %+v", s)
	}
}

func TestSystemReaderDetectsFilePath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "shot.png")
	_ = os.WriteFile(p, []byte("x"), 0o644)
	r := &SystemReader{
		ReadText: func() (string, error) { return p + "\n", nil },
		LookPath: func(string) (string, error) { return "", errors.New("missing") },
		History:  NewHistory(2),
	}
	s, err := r.Read(context.Background(), 0)
	if err != nil || s.File != p || s.Text != "" || s.HTML != "" {
		t.Fatalf("file snapshot: %+v %v", s, err)
	}
}

type countingReader struct{ n int }

func (c *countingReader) Read(_ context.Context, offset int) (Snapshot, error) {
	c.n++
	return Snapshot{Text: strings.Repeat("x", offset+1)}, nil
}

func TestAdapterDropsStaleTokens(t *testing.T) {
	a := NewAdapter(&countingReader{})
	first := a.Request()
	second := a.Request()
	old := a.Fetch(context.Background(), first, 0)
	cur := a.Fetch(context.Background(), second, 2)
	if a.Accept(old.Token) {
		t.Fatalf("stale token accepted")
	}
	if !a.Accept(cur.Token) || cur.Snapshot.Text != "xxx" || cur.Offset != 2 {
		t.Fatalf("current fetch: %+v", cur)
	}
}
