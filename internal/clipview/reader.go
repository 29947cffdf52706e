package clipview

import (
	"context"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"clipdeck/internal/app"
	"clipdeck/internal/formstate"
)

type Reader interface {
	Read(ctx context.Context, offset int) (Snapshot, error)
}

// SystemReader reads the live clipboard. Offsets above zero are served from
// snapshots this process has already seen.
type SystemReader struct {
	Runner   app.CommandRunner
	LookPath func(string) (string, error)
	ReadText func() (string, error)
	History  *History
}

func NewSystemReader(runner app.CommandRunner) *SystemReader {
	return &SystemReader{
		Runner:   runner,
		LookPath: app.LookPath,
		ReadText: clipboard.ReadAll,
		History:  NewHistory(formstate.MaxClipOffset + 1),
	}
}

func (r *SystemReader) Read(ctx context.Context, offset int) (Snapshot, error) {
	cur, err := r.current(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	r.History.Push(cur)
	if offset <= 0 {
		return cur, nil
	}
	s, _ := r.History.At(offset)
	return s, nil
}

func (r *SystemReader) current(ctx context.Context) (Snapshot, error) {
	text, err := r.ReadText()
	if err != nil && !clipboard.Unsupported {
		return Snapshot{}, err
	}
	s := Snapshot{Text: text}
	if p := strings.TrimSpace(text); p != "" && !strings.Contains(p, "\n") {
		if st, statErr := os.Stat(app.ExpandHome(p)); statErr == nil && !st.IsDir() {
			s.File = app.ExpandHome(p)
			s.Text = ""
		}
	}
	s.HTML = r.html(ctx)
	return s, nil
}

func (r *SystemReader) html(ctx context.Context) string {
	if r.Runner == nil || r.LookPath == nil {
		return ""
	}
	if _, err := r.LookPath("xclip"); err != nil {
		return ""
	}
	out, err := r.Runner.Run(ctx, "xclip", "-selection", "clipboard", "-t", "text/html", "-o")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
