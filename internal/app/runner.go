package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandError is returned by ExecRunner when a process could not be started or
// exited unsuccessfully. Stdout is kept so callers can still show partial output.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Err      error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(string(e.Stderr))
	if msg != "" {
		return fmt.Sprintf("%v: %s", e.Err, msg)
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error { return e.Err }

// Started reports whether the process ran at all. Lookup and permission
// failures never produce an exit code.
func (e *CommandError) Started() bool {
	var exitErr *exec.ExitError
	return errors.As(e.Err, &exitErr)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		ce := &CommandError{
			Name:     name,
			Args:     append([]string(nil), args...),
			ExitCode: -1,
			Stdout:   stdout.Bytes(),
			Stderr:   stderr.Bytes(),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ce.ExitCode = exitErr.ExitCode()
		}
		return stdout.Bytes(), ce
	}
	return stdout.Bytes(), nil
}

// LookPath resolves name against PATH, or checks it directly when it contains a
// path separator.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
