package app

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExecRunnerReturnsStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	out, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(out) != "hello" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestExecRunnerExitErrorKeepsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	out, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "printf partial; printf boom >&2; exit 3")
	if err == nil {
		t.Fatalf("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CommandError, got %T", err)
	}
	if ce.ExitCode != 3 || !ce.Started() {
		t.Fatalf("unexpected exit info: code=%d started=%t", ce.ExitCode, ce.Started())
	}
	if string(out) != "partial" || string(ce.Stdout) != "partial" {
		t.Fatalf("stdout not kept: %q", out)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("stderr missing from message: %v", err)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := ExecRunner{}.Run(context.Background(), missing)
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if ce.Started() {
		t.Fatalf("missing binary must not count as started")
	}
	if ce.ExitCode != -1 {
		t.Fatalf("unexpected exit code: %d", ce.ExitCode)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("did not expect an exit error")
	}
}

func TestStateDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	got, err := StateDir()
	if err != nil {
		t.Fatalf("state dir: %v", err)
	}
	if got != filepath.Join(dir, Name) {
		t.Fatalf("unexpected state dir: %s", got)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := ExpandHome("~/Downloads"); got != filepath.Join(home, "Downloads") {
		t.Fatalf("unexpected expansion: %s", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Fatalf("absolute path changed: %s", got)
	}
}
