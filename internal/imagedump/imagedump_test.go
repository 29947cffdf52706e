package imagedump

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls [][]string
	run   func(name string, args ...string) ([]byte, error)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.run == nil {
		return nil, nil
	}
	return f.run(name, args...)
}

func TestParseSentinel(t *testing.T) {
	cases := []struct {
		line string
		kind Kind
		path string
	}{
		{SentinelNotAvailable, NotAvailable, ""},
		{SentinelError, Failed, ""},
		{"", Failed, ""},
		{"  \n", Failed, ""},
		{"/tmp/x.png\n", OK, "/tmp/x.png"},
	}
	for _, tc := range cases {
		got := ParseSentinel("pngpaste", tc.line)
		if got.Kind != tc.kind || got.Path != tc.path {
			t.Fatalf("ParseSentinel(%q) = %+v", tc.line, got)
		}
	}
	if !strings.Contains(ParseSentinel("pngpaste", SentinelNotAvailable).Message, InstallHint) {
		t.Fatalf("missing install hint")
	}
}

func TestDirectDumperProbeMissingStartsNothing(t *testing.T) {
	r := &fakeRunner{}
	d := DirectDumper{Runner: r, LookPath: func(string) (string, error) { return "", errors.New("not found") }}
	got := d.Dump(context.Background(), "")
	if got.Kind != NotAvailable || got.Binary != DefaultBinary {
		t.Fatalf("unexpected outcome: %+v", got)
	}
	if len(r.calls) != 0 {
		t.Fatalf("no process may start when the helper is missing: %v", r.calls)
	}
}

func TestDirectDumperFailure(t *testing.T) {
	r := &fakeRunner{run: func(string, ...string) ([]byte, error) { return nil, errors.New("exit status 1") }}
	d := DirectDumper{Runner: r, LookPath: func(string) (string, error) { return "/usr/local/bin/pngpaste", nil }, TempDir: t.TempDir()}
	if got := d.Dump(context.Background(), "pngpaste"); got.Kind != Failed {
		t.Fatalf("unexpected outcome: %+v", got)
	}
}

func TestDirectDumperEmptyFileIsFailure(t *testing.T) {
	r := &fakeRunner{run: func(_ string, args ...string) ([]byte, error) {
		return nil, os.WriteFile(args[0], nil, 0o644)
	}}
	d := DirectDumper{Runner: r, LookPath: func(string) (string, error) { return "x", nil }, TempDir: t.TempDir()}
	if got := d.Dump(context.Background(), "pngpaste"); got.Kind != Failed {
		t.Fatalf("unexpected outcome: %+v", got)
	}
}

func TestDirectDumperSuccess(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{run: func(_ string, args ...string) ([]byte, error) {
		return nil, os.WriteFile(args[0], []byte("png"), 0o644)
	}}
	d := DirectDumper{Runner: r, LookPath: func(string) (string, error) { return "x", nil }, TempDir: dir}
	got := d.Dump(context.Background(), "pngpaste")
	if got.Kind != OK || filepath.Dir(got.Path) != dir {
		t.Fatalf("unexpected outcome: %+v", got)
	}
	if !strings.HasPrefix(filepath.Base(got.Path), "clipdeck-preview-") || filepath.Ext(got.Path) != ".png" {
		t.Fatalf("unexpected target name: %s", got.Path)
	}
	if len(r.calls) != 1 || r.calls[0][0] != "pngpaste" {
		t.Fatalf("unexpected calls: %v", r.calls)
	}
}

func TestScriptDumperParsesStdoutEvenOnExitError(t *testing.T) {
	r := &fakeRunner{run: func(string, ...string) ([]byte, error) {
		return []byte(SentinelNotAvailable + "\n"), errors.New("exit status 127")
	}}
	got := ScriptDumper{Runner: r}.Dump(context.Background(), "pngpaste")
	if got.Kind != NotAvailable {
		t.Fatalf("unexpected outcome: %+v", got)
	}
	call := r.calls[0]
	if call[0] != "bash" || call[1] != "-lc" || call[len(call)-1] != "pngpaste" {
		t.Fatalf("helper must be passed as an argument: %v", call)
	}
}

func TestScriptDumperWithShellStub(t *testing.T) {
	dir := t.TempDir()
	helper := filepath.Join(dir, "fakepaste")
	script := "#!/bin/sh\nprintf png > \"$1\"\n"
	if err := os.WriteFile(helper, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	got := ScriptDumper{Shell: "sh"}.Dump(context.Background(), helper)
	if got.Kind != OK || !strings.HasSuffix(got.Path, ".png") {
		t.Fatalf("unexpected outcome: %+v", got)
	}
	_ = os.Remove(got.Path)
}

func TestForMode(t *testing.T) {
	if _, ok := ForMode("script", nil).(ScriptDumper); !ok {
		t.Fatalf("script mode should use the script dumper")
	}
	if _, ok := ForMode("direct", nil).(DirectDumper); !ok {
		t.Fatalf("direct mode should use the direct dumper")
	}
}
