// Package executor runs a synthesized clipaste invocation and tracks which
// run is current.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"clipdeck/internal/app"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

type FailureKind string

const (
	FailureNone     FailureKind = ""
	FailureNotFound FailureKind = "not_found"
	FailureSpawn    FailureKind = "spawn"
	FailureExit     FailureKind = "exit"
)

const (
	NoOutput = "(no output)"
)

type Result struct {
	Generation uint64
	Status     Status
	Executable string
	Argv       []string
	Raw        []byte
	Output     string
	Binary     bool
	ExitCode   int
	Failure    FailureKind
	Message    string
	StartedAt  time.Time
	Duration   time.Duration
}

// Line is the command as shown in the result header.
func (r Result) Line() string {
	return strings.TrimSpace(r.Executable + " " + strings.Join(r.Argv, " "))
}

// Run is a started invocation. It is handed from Begin to Execute.
type Run struct {
	Generation uint64
	Executable string
	Argv       []string
}

type Notifier interface {
	RunSucceeded(summary string)
	RunFailed(message string)
}

// Pipeline allows one current run. Begin supersedes whatever was running;
// results of superseded runs are dropped by Complete.
type Pipeline struct {
	Runner   app.CommandRunner
	Notifier Notifier
	Now      func() time.Time

	mu         sync.Mutex
	generation uint64
	state      Result
	notifying  sync.WaitGroup
}

func New(runner app.CommandRunner, notifier Notifier) *Pipeline {
	return &Pipeline{Runner: runner, Notifier: notifier}
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Begin allocates a new generation and moves to Running.
func (p *Pipeline) Begin(executable string, argv []string) Run {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	run := Run{Generation: p.generation, Executable: executable, Argv: append([]string(nil), argv...)}
	p.state = Result{
		Generation: run.Generation,
		Status:     StatusRunning,
		Executable: executable,
		Argv:       run.Argv,
		StartedAt:  p.now(),
	}
	return run
}

// Execute blocks until the process exits. It never touches pipeline state.
func (p *Pipeline) Execute(ctx context.Context, run Run) Result {
	runner := p.Runner
	if runner == nil {
		runner = app.ExecRunner{}
	}
	started := p.now()
	out, err := runner.Run(ctx, run.Executable, run.Argv...)
	res := Result{
		Generation: run.Generation,
		Executable: run.Executable,
		Argv:       run.Argv,
		Raw:        out,
		StartedAt:  started,
		Duration:   p.now().Sub(started),
	}
	if err != nil {
		return classifyFailure(res, err)
	}
	res.Status = StatusSucceeded
	res.Output, res.Binary = decodeOutput(out)
	return res
}

// Complete stores res when its generation is still current and reports
// whether it did. Notifications are sent for accepted results only, in the
// background so a slow notification daemon never delays the caller.
func (p *Pipeline) Complete(res Result) bool {
	p.mu.Lock()
	if res.Generation != p.generation || p.state.Status.Terminal() {
		p.mu.Unlock()
		return false
	}
	p.state = res
	p.mu.Unlock()

	n := p.Notifier
	if n == nil {
		return true
	}
	p.notifying.Add(1)
	go func() {
		defer p.notifying.Done()
		if res.Status == StatusSucceeded {
			n.RunSucceeded(summarize(res.Output))
		} else {
			n.RunFailed(res.Message)
		}
	}()
	return true
}

// Wait blocks until notifications for completed runs have been handed off.
func (p *Pipeline) Wait() {
	p.notifying.Wait()
}

// Run is Begin, Execute and Complete in one call. It returns once the
// notification for the run has been sent.
func (p *Pipeline) Run(ctx context.Context, executable string, argv []string) Result {
	run := p.Begin(executable, argv)
	res := p.Execute(ctx, run)
	p.Complete(res)
	p.Wait()
	return res
}

// Current returns the state of the latest run, or an Idle result.
func (p *Pipeline) Current() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation == 0 {
		return Result{Status: StatusIdle}
	}
	return p.state
}

func decodeOutput(out []byte) (string, bool) {
	if !utf8.Valid(out) {
		return fmt.Sprintf("(binary output, %d bytes)", len(out)), true
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return NoOutput, false
	}
	return text, false
}

func classifyFailure(res Result, err error) Result {
	res.Status = StatusFailed
	res.ExitCode = -1
	var ce *app.CommandError
	if errors.As(err, &ce) && ce.Started() {
		res.Failure = FailureExit
		res.ExitCode = ce.ExitCode
		res.Message = exitMessage(ce)
		return res
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		res.Failure = FailureNotFound
		res.Message = fmt.Sprintf("%s not found: install clipaste or set executable_path", res.Executable)
		return res
	}
	res.Failure = FailureSpawn
	res.Message = fmt.Sprintf("failed to start %s: %v", res.Executable, unwrapCommand(err))
	return res
}

func exitMessage(ce *app.CommandError) string {
	parts := []string{fmt.Sprintf("exit status %d", ce.ExitCode)}
	if s := strings.TrimSpace(string(ce.Stdout)); s != "" && utf8.ValidString(s) {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(string(ce.Stderr)); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

func unwrapCommand(err error) error {
	var ce *app.CommandError
	if errors.As(err, &ce) && ce.Err != nil {
		return ce.Err
	}
	return err
}

func summarize(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	if r := []rune(line); len(r) > 80 {
		return string(r[:80]) + "…"
	}
	return line
}
