package executor

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"clipdeck/internal/app"
)

type fakeRunner struct {
	out   []byte
	err   error
	calls int
}

func (f *fakeRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	f.calls++
	return f.out, f.err
}

type recordingNotifier struct {
	mu    sync.Mutex
	ok    []string
	fail  []string
	delay time.Duration
}

func (n *recordingNotifier) RunSucceeded(s string) {
	time.Sleep(n.delay)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ok = append(n.ok, s)
}

func (n *recordingNotifier) RunFailed(s string) {
	time.Sleep(n.delay)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fail = append(n.fail, s)
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.ok), len(n.fail)
}

func TestRunSucceedsWithShellStub(t *testing.T) {
	n := &recordingNotifier{}
	p := New(app.ExecRunner{}, n)
	res := p.Run(context.Background(), "sh", []string{"-c", "printf 'saved /tmp/x.png\\n'"})
	if res.Status != StatusSucceeded || res.Output != "saved /tmp/x.png" || res.Binary {
		t.Fatalf("unexpected result: %+v", res)
	}
	if p.Current().Status != StatusSucceeded {
		t.Fatalf("current state not updated: %+v", p.Current())
	}
	if len(n.ok) != 1 || n.ok[0] != "saved /tmp/x.png" || len(n.fail) != 0 {
		t.Fatalf("notifications: %+v", n)
	}
}

func TestRunExitFailureKeepsOutputAndStderr(t *testing.T) {
	n := &recordingNotifier{}
	p := New(app.ExecRunner{}, n)
	res := p.Run(context.Background(), "sh", []string{"-c", "echo partial; echo 'no image in clipboard' >&2; exit 3"})
	if res.Status != StatusFailed || res.Failure != FailureExit || res.ExitCode != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(res.Message, "partial") || !strings.Contains(res.Message, "no image in clipboard") {
		t.Fatalf("message should carry stdout and stderr: %q", res.Message)
	}
	if len(n.fail) != 1 {
		t.Fatalf("expected failure notification: %+v", n)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	p := New(app.ExecRunner{}, nil)
	res := p.Run(context.Background(), "clipdeck-definitely-missing-binary", []string{"status"})
	if res.Status != StatusFailed || res.Failure != FailureNotFound {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Message == "" || res.ExitCode != -1 {
		t.Fatalf("missing binary should produce a message and no exit code: %+v", res)
	}
}

func TestRunMissingAbsolutePath(t *testing.T) {
	p := New(app.ExecRunner{}, nil)
	res := p.Run(context.Background(), "/nonexistent/dir/clipaste", nil)
	if res.Failure != FailureNotFound {
		t.Fatalf("expected not found, got %+v", res)
	}
}

func TestBinaryAndEmptyOutput(t *testing.T) {
	p := New(&fakeRunner{out: []byte{0xff, 0xfe, 0x00, 0x01}}, nil)
	res := p.Run(context.Background(), "clipaste", []string{"get"})
	if !res.Binary || res.Output != "(binary output, 4 bytes)" || len(res.Raw) != 4 {
		t.Fatalf("unexpected binary result: %+v", res)
	}

	p = New(&fakeRunner{out: []byte("  \n")}, nil)
	res = p.Run(context.Background(), "clipaste", []string{"clear", "--confirm"})
	if res.Output != NoOutput || res.Binary {
		t.Fatalf("unexpected empty result: %+v", res)
	}
}

func TestStaleGenerationIsDropped(t *testing.T) {
	n := &recordingNotifier{}
	p := New(&fakeRunner{out: []byte("ok")}, n)
	first := p.Begin("clipaste", []string{"status"})
	second := p.Begin("clipaste", []string{"get"})
	if second.Generation <= first.Generation {
		t.Fatalf("generations must increase: %d %d", first.Generation, second.Generation)
	}
	late := p.Execute(context.Background(), first)
	if p.Complete(late) {
		t.Fatalf("superseded result must be dropped")
	}
	if cur := p.Current(); cur.Status != StatusRunning || cur.Generation != second.Generation {
		t.Fatalf("stale result leaked into state: %+v", cur)
	}
	if !p.Complete(p.Execute(context.Background(), second)) {
		t.Fatalf("current result should be accepted")
	}
	if p.Complete(p.Execute(context.Background(), second)) {
		t.Fatalf("a terminal run cannot complete twice")
	}
	p.Wait()
	if ok, _ := n.counts(); ok != 1 {
		t.Fatalf("only the accepted result notifies: %+v", n)
	}
}

func TestCompleteDoesNotWaitForNotifier(t *testing.T) {
	n := &recordingNotifier{delay: 300 * time.Millisecond}
	p := New(&fakeRunner{out: []byte("saved")}, n)
	run := p.Begin("clipaste", []string{"paste"})
	res := p.Execute(context.Background(), run)

	start := time.Now()
	if !p.Complete(res) {
		t.Fatalf("current result should be accepted")
	}
	if took := time.Since(start); took > 100*time.Millisecond {
		t.Fatalf("Complete blocked on the notifier for %s", took)
	}
	if p.Current().Status != StatusSucceeded {
		t.Fatalf("state should be final before the notice is out: %+v", p.Current())
	}
	p.Wait()
	if ok, fail := n.counts(); ok != 1 || fail != 0 {
		t.Fatalf("notification not delivered: ok=%d fail=%d", ok, fail)
	}
}

func TestRunAgainStartsNewGeneration(t *testing.T) {
	r := &fakeRunner{out: []byte("done")}
	p := New(r, nil)
	a := p.Run(context.Background(), "clipaste", []string{"status"})
	b := p.Run(context.Background(), a.Executable, a.Argv)
	if b.Generation != a.Generation+1 || r.calls != 2 {
		t.Fatalf("run again: %+v %+v calls=%d", a, b, r.calls)
	}
}

func TestIdleAndDuration(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	p := New(&fakeRunner{out: []byte("x")}, nil)
	p.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	if p.Current().Status != StatusIdle {
		t.Fatalf("new pipeline should be idle")
	}
	res := p.Run(context.Background(), "clipaste", nil)
	if res.Duration != time.Second {
		t.Fatalf("duration: %v", res.Duration)
	}
	if res.Line() != "clipaste" {
		t.Fatalf("line: %q", res.Line())
	}
}
