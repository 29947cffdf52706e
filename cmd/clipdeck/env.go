package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/viper"

	"clipdeck/internal/app"
	"clipdeck/internal/command"
	configpkg "clipdeck/internal/config"
	"clipdeck/internal/executor"
	"clipdeck/internal/formstate"
	"clipdeck/internal/imagedump"
	"clipdeck/internal/notify"
	"clipdeck/internal/recipe"
	themepkg "clipdeck/internal/theme"
	"clipdeck/internal/tui"
)

const projectURL = "https://github.com/markomanninen/clipaste"

// env carries process-wide dependencies so tests can swap the runner.
type env struct {
	ctx      context.Context
	runner   app.CommandRunner
	lookPath func(string) (string, error)
	v        *viper.Viper
}

// session is everything a subcommand needs after config is resolved.
type session struct {
	cfg      configpkg.Config
	form     *formstate.Session
	synth    command.Synthesizer
	notifier *notify.Notifier
	pipeline *executor.Pipeline
	notices  sync.WaitGroup
}

func (e *env) viper() *viper.Viper {
	if e.v == nil {
		e.v = viper.New()
	}
	return e.v
}

// open loads config, recipes and the stored form. Recipe and form problems
// only warn; the builtin catalog and default form are used instead.
func (e *env) open(warn io.Writer) (*session, error) {
	cfg, err := configpkg.LoadWith(e.viper())
	if err != nil {
		return nil, err
	}
	recipesPath, err := configpkg.RecipesPath()
	if err != nil {
		return nil, err
	}
	catalog, err := recipe.Load(recipesPath)
	if err != nil {
		fmt.Fprintf(warn, "warning: loading recipes failed, using builtin recipes: %v\n", err)
	}
	store, err := formstate.NewFileStore()
	if err != nil {
		return nil, err
	}
	form, err := formstate.OpenSession(store, formstate.Key)
	if err != nil {
		fmt.Fprintf(warn, "warning: stored form could not be read, starting fresh: %v\n", err)
	}
	prefs := notify.DefaultPreferences()
	prefs.Timeout = time.Duration(cfg.NotificationTimeoutMS) * time.Millisecond
	notifier := notify.New(prefs, cfg.Notifications)
	return &session{
		cfg:      cfg,
		form:     form,
		synth:    command.Synthesizer{Catalog: catalog, Executable: cfg.ExecutablePath},
		notifier: notifier,
		pipeline: executor.New(e.runner, notifier),
	}, nil
}

func (s *session) dumper(runner app.CommandRunner, lookPath func(string) (string, error)) imagedump.Dumper {
	d := imagedump.ForMode(s.cfg.FallbackMode, runner)
	if direct, ok := d.(imagedump.DirectDumper); ok && lookPath != nil {
		direct.LookPath = lookPath
		return direct
	}
	return d
}

func (s *session) dumpImage(ctx context.Context, d imagedump.Dumper) imagedump.Outcome {
	out := d.Dump(ctx, s.cfg.FallbackPath)
	if out.Kind == imagedump.OK {
		s.notifier.ImageDumped(out.Path)
	}
	return out
}

func (s *session) copyText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	s.notices.Add(1)
	go func() {
		defer s.notices.Done()
		s.notifier.Copied(shorten(text, 60))
	}()
	return nil
}

// waitNotifications lets notices that are still in flight reach the
// notification daemon before the process exits.
func (s *session) waitNotifications() {
	s.notices.Wait()
	s.pipeline.Wait()
}

func shorten(s string, max int) string {
	s = strings.TrimSpace(s)
	if line, _, ok := strings.Cut(s, "\n"); ok {
		s = line
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func resolveUITheme(cfg configpkg.Config, w io.Writer) tui.UITheme {
	dir, err := configpkg.ThemesDir()
	if err != nil {
		fmt.Fprintf(w, "warning: locating themes failed, using default theme: %v\n", err)
		return tui.UITheme{}
	}
	palette, _, err := themepkg.LoadActivePaletteHex(dir, cfg.Theme.Active)
	if err != nil {
		fmt.Fprintf(w, "warning: loading theme %q failed, using default: %v\n", cfg.Theme.Active, err)
	}
	return tui.ThemeFromPalette(palette, themepkg.DetectTrueColor())
}

// logToFile points the standard logger at the state log. The returned
// closer restores nothing; the process exits right after the TUI does.
func logToFile() (io.Closer, error) {
	p, err := app.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}
