package doctor

import (
	"context"
	"errors"
	"testing"
)

type fakeRunner struct {
	out []byte
	err error
	n   int
}

func (f *fakeRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	f.n++
	return f.out, f.err
}

func found(name string) (string, error) { return "/usr/local/bin/" + name, nil }

func TestRunAllPresent(t *testing.T) {
	r := &fakeRunner{out: []byte("clipaste 1.4.0\n")}
	checks := Run(context.Background(), r, Options{FallbackEnabled: true, LookPath: found})
	if len(checks) != 2 {
		t.Fatalf("expected two checks, got %d", len(checks))
	}
	if checks[0].Version != "clipaste 1.4.0" || checks[0].Path != "/usr/local/bin/clipaste" {
		t.Fatalf("unexpected clipaste check: %+v", checks[0])
	}
	if checks[1].Binary != "pngpaste" || !checks[1].Optional || !checks[1].OK() {
		t.Fatalf("unexpected helper check: %+v", checks[1])
	}
	if r.n != 1 {
		t.Fatalf("only clipaste should be run, got %d calls", r.n)
	}
	if err := Err(checks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunMissingClipaste(t *testing.T) {
	missing := func(string) (string, error) { return "", errors.New("not found") }
	checks := Run(context.Background(), &fakeRunner{}, Options{Executable: "/opt/clipaste", LookPath: missing})
	if len(checks) != 1 || checks[0].OK() {
		t.Fatalf("expected failing check: %+v", checks)
	}
	if Err(checks) == nil {
		t.Fatalf("missing clipaste must be an error")
	}
}

func TestOptionalHelperDoesNotFail(t *testing.T) {
	lookPath := func(name string) (string, error) {
		if name == "pngpaste" {
			return "", errors.New("not found")
		}
		return "/bin/" + name, nil
	}
	checks := Run(context.Background(), &fakeRunner{out: []byte("1.0")}, Options{FallbackEnabled: true, LookPath: lookPath})
	if checks[1].OK() {
		t.Fatalf("helper should be reported missing")
	}
	if err := Err(checks); err != nil {
		t.Fatalf("optional helper must not fail doctor: %v", err)
	}
}

func TestVersionFailure(t *testing.T) {
	checks := Run(context.Background(), &fakeRunner{err: errors.New("exit status 2")}, Options{LookPath: found})
	if checks[0].OK() || Err(checks) == nil {
		t.Fatalf("version failure should fail: %+v", checks[0])
	}
}
