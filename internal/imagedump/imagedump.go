// Package imagedump saves the clipboard image to a temporary PNG with an
// external helper (pngpaste by default) so it can be previewed.
package imagedump

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"clipdeck/internal/app"
)

const (
	SentinelNotAvailable = "__NOPNGPASTE__"
	SentinelError        = "__ERROR__"
	DefaultBinary        = "pngpaste"
	InstallHint          = "brew install pngpaste"
)

type Kind int

const (
	NotAvailable Kind = iota
	Failed
	OK
)

func (k Kind) String() string {
	switch k {
	case NotAvailable:
		return "not available"
	case Failed:
		return "failed"
	case OK:
		return "ok"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Kind    Kind
	Binary  string
	Path    string
	Message string
}

// ParseSentinel maps one line of helper output to an Outcome. Any other
// non-blank line is taken as the saved path, unchanged apart from trimming.
func ParseSentinel(bin, line string) Outcome {
	out := strings.TrimSpace(line)
	switch out {
	case SentinelNotAvailable:
		return Outcome{
			Kind:    NotAvailable,
			Binary:  bin,
			Message: fmt.Sprintf("%s not found. Install with: %s", bin, InstallHint),
		}
	case SentinelError, "":
		return Outcome{
			Kind:    Failed,
			Binary:  bin,
			Message: fmt.Sprintf("could not dump clipboard image via %s; make sure the clipboard holds an image", bin),
		}
	default:
		return Outcome{Kind: OK, Binary: bin, Path: out}
	}
}

type Dumper interface {
	Dump(ctx context.Context, bin string) Outcome
}

// DirectDumper probes for the helper and runs it without a shell.
type DirectDumper struct {
	Runner   app.CommandRunner
	LookPath func(string) (string, error)
	TempDir  string
}

func NewDirectDumper(runner app.CommandRunner) DirectDumper {
	return DirectDumper{Runner: runner, LookPath: app.LookPath}
}

func (d DirectDumper) Dump(ctx context.Context, bin string) Outcome {
	if strings.TrimSpace(bin) == "" {
		bin = DefaultBinary
	}
	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = app.LookPath
	}
	if _, err := lookPath(bin); err != nil {
		return ParseSentinel(bin, SentinelNotAvailable)
	}
	runner := d.Runner
	if runner == nil {
		runner = app.ExecRunner{}
	}
	target := d.target()
	line := SentinelError
	if _, err := runner.Run(ctx, bin, target); err == nil {
		if st, statErr := os.Stat(target); statErr == nil && st.Size() > 0 {
			line = target
		}
	}
	return ParseSentinel(bin, line)
}

func (d DirectDumper) target() string {
	dir := d.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, app.Name+"-preview-"+uuid.NewString()+".png")
}

// dumpScript takes the helper as $1 so it is never spliced into shell text.
const dumpScript = `bin="$1"; if ! command -v "$bin" >/dev/null 2>&1; then echo "` + SentinelNotAvailable + `"; exit 127; fi; ` +
	`TMP="$(mktemp -t ` + app.Name + `-preview.XXXXXX)"; OUT="${TMP}.png"; ` +
	`if "$bin" "$OUT"; then echo "$OUT"; else echo "` + SentinelError + `"; fi`

// ScriptDumper runs the probe and the dump as one login-shell script and
// reads the sentinel from its stdout.
type ScriptDumper struct {
	Runner app.CommandRunner
	Shell  string
}

func (d ScriptDumper) Dump(ctx context.Context, bin string) Outcome {
	if strings.TrimSpace(bin) == "" {
		bin = DefaultBinary
	}
	runner := d.Runner
	if runner == nil {
		runner = app.ExecRunner{}
	}
	shell := d.Shell
	if shell == "" {
		shell = "bash"
	}
	out, _ := runner.Run(ctx, shell, "-lc", dumpScript, shell, bin)
	return ParseSentinel(bin, lastLine(string(out)))
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

// ForMode picks the dumper for the fallback_mode preference.
func ForMode(mode string, runner app.CommandRunner) Dumper {
	if mode == "script" {
		return ScriptDumper{Runner: runner}
	}
	return NewDirectDumper(runner)
}
