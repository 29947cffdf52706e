package doctor

import (
	"context"
	"fmt"
	"strings"

	"clipdeck/internal/app"
)

type Check struct {
	Name     string
	Binary   string
	Path     string
	Version  string
	Optional bool
	Err      error
}

func (c Check) OK() bool { return c.Err == nil }

type Options struct {
	Executable      string
	FallbackPath    string
	FallbackEnabled bool
	LookPath        func(string) (string, error)
}

// Run checks that clipaste resolves and answers --version. The image dump
// helper is only checked when the fallback preview is enabled, and its
// absence is reported as optional.
func Run(ctx context.Context, runner app.CommandRunner, opts Options) []Check {
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = app.LookPath
	}
	exe := strings.TrimSpace(opts.Executable)
	if exe == "" {
		exe = "clipaste"
	}
	checks := []Check{probe(ctx, runner, lookPath, "clipaste", exe, false, "--version")}
	if opts.FallbackEnabled {
		bin := strings.TrimSpace(opts.FallbackPath)
		if bin == "" {
			bin = "pngpaste"
		}
		checks = append(checks, probe(ctx, nil, lookPath, "image dump helper", bin, true))
	}
	return checks
}

func probe(ctx context.Context, runner app.CommandRunner, lookPath func(string) (string, error), name, bin string, optional bool, versionArgs ...string) Check {
	c := Check{Name: name, Binary: bin, Optional: optional}
	path, err := lookPath(bin)
	if err != nil {
		c.Err = fmt.Errorf("missing dependency %q in PATH", bin)
		return c
	}
	c.Path = path
	if runner == nil || len(versionArgs) == 0 {
		return c
	}
	out, err := runner.Run(ctx, bin, versionArgs...)
	if err != nil {
		c.Err = fmt.Errorf("%s %s failed: %w", bin, strings.Join(versionArgs, " "), err)
		return c
	}
	c.Version = strings.TrimSpace(string(out))
	return c
}

// Err returns the first failing required check.
func Err(checks []Check) error {
	for _, c := range checks {
		if !c.OK() && !c.Optional {
			return c.Err
		}
	}
	return nil
}
