package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clipdeck/internal/app"
	"clipdeck/internal/clipview"
	"clipdeck/internal/command"
	configpkg "clipdeck/internal/config"
	"clipdeck/internal/doctor"
	"clipdeck/internal/executor"
	"clipdeck/internal/formstate"
	"clipdeck/internal/imagedump"
	themepkg "clipdeck/internal/theme"
	"clipdeck/internal/tui"
	"clipdeck/internal/version"
)

// errRunFailed makes main exit 1 without printing anything further; the
// failure was already reported.
var errRunFailed = errors.New("clipaste failed")

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "clipdeck",
		Short:         "Terminal launcher for the clipaste clipboard CLI",
		Long:          "Runs the interactive TUI when no command is provided.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetOutput(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, e)
		},
	}
	pf := root.PersistentFlags()
	pf.String("clipaste", "", "clipaste executable (config: executable_path)")
	pf.String("output-dir", "", "default paste output directory (config: default_output_dir)")
	pf.String("pngpaste", "", "image dump helper (config: fallback_path)")
	pf.Bool("fallback", false, "enable the image dump preview (config: enable_fallback_preview)")
	v := e.viper()
	_ = v.BindPFlag("executable_path", pf.Lookup("clipaste"))
	_ = v.BindPFlag("default_output_dir", pf.Lookup("output-dir"))
	_ = v.BindPFlag("fallback_path", pf.Lookup("pngpaste"))
	_ = v.BindPFlag("enable_fallback_preview", pf.Lookup("fallback"))

	root.AddCommand(
		newPreviewCmd(e),
		newRunCmd(e),
		newRecipesCmd(e),
		newClipCmd(e),
		newDumpImageCmd(e),
		newDoctorCmd(e),
		newConfigCmd(e),
		newThemeCmd(e),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.Value)
			},
		},
	)
	return root
}

func runTUI(cmd *cobra.Command, e *env) error {
	if f, err := logToFile(); err == nil {
		defer f.Close()
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
	}
	s, err := e.open(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var dumpFn func(context.Context) imagedump.Outcome
	if s.cfg.EnableFallbackPreview {
		d := s.dumper(e.runner, e.lookPath)
		dumpFn = func(ctx context.Context) imagedump.Outcome { return s.dumpImage(ctx, d) }
	}
	log.Printf("starting tui: clipaste=%s fallback=%t", s.synth.Executable, s.cfg.EnableFallbackPreview)
	defer s.waitNotifications()
	return tui.RunApp(tui.AppCallbacks{
		Values:           s.form.Values(),
		Save:             s.form.Replace,
		Synthesizer:      s.synth,
		DefaultOutputDir: s.cfg.DefaultOutputDir,
		Pipeline:         s.pipeline,
		Clipboard:        clipview.NewAdapter(clipview.NewSystemReader(e.runner)),
		DumpImage:        dumpFn,
		CopyText:         s.copyText,
		Describe:         clipview.Describe,
		Context:          ctx,
		Version:          version.Value,
		ProjectURL:       projectURL,
		Theme:            resolveUITheme(s.cfg, cmd.ErrOrStderr()),
	})
}

func newPreviewCmd(e *env) *cobra.Command {
	var ff formFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the command line for the stored form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			v, err := ff.apply(cmd.Flags(), s.form.Values())
			if err != nil {
				return err
			}
			if ff.save {
				if err := s.form.Replace(v); err != nil {
					return fmt.Errorf("save form: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.synth.Synthesize(v).Preview)
			return nil
		},
	}
	ff.register(cmd.Flags())
	return cmd
}

func newRunCmd(e *env) *cobra.Command {
	var ff formFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run clipaste with the stored form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			v, err := ff.apply(cmd.Flags(), s.form.Values())
			if err != nil {
				return err
			}
			if ff.save {
				if err := s.form.Replace(v); err != nil {
					return fmt.Errorf("save form: %w", err)
				}
			}
			return runOnce(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), s, v)
		},
	}
	ff.register(cmd.Flags())
	return cmd
}

func newRecipesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes [query]",
		Short: "List recipes, optionally fuzzy filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tARGS")
			for _, r := range s.synth.Catalog.Filter(query) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Label, strings.Join(r.Args, " "))
			}
			return tw.Flush()
		},
	}
}

func newClipCmd(e *env) *cobra.Command {
	var offset int
	var full bool
	cmd := &cobra.Command{
		Use:   "clip",
		Short: "Show the clipboard preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if offset < 0 {
				return fmt.Errorf("offset must not be negative")
			}
			if offset > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: clipboard history is only kept while the TUI runs")
			}
			snap, err := clipview.NewSystemReader(e.runner).Read(cmd.Context(), offset)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, full)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "clipboard history offset")
	cmd.Flags().BoolVar(&full, "full", false, "print the full text and raw HTML")
	return cmd
}

func printSnapshot(w io.Writer, snap clipview.Snapshot, full bool) error {
	if !full {
		_, err := fmt.Fprintln(w, clipview.Render(snap).String())
		return err
	}
	if snap.IsEmpty() {
		_, err := fmt.Fprintln(w, clipview.Empty)
		return err
	}
	if snap.Text != "" {
		fmt.Fprintln(w, snap.Text)
	}
	if snap.File != "" {
		fmt.Fprintln(w, "File: "+snap.File)
		if clipview.IsImagePath(snap.File) {
			if info, err := clipview.Describe(snap.File); err == nil {
				fmt.Fprintln(w, "Image: "+info.String())
			}
		}
	}
	if snap.HTML != "" {
		fmt.Fprintln(w, "HTML: "+snap.HTML)
	}
	return nil
}

func newDumpImageCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-image",
		Short: "Save the clipboard image to a temporary PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := e.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := s.dumpImage(cmd.Context(), s.dumper(e.runner, e.lookPath))
			switch out.Kind {
			case imagedump.NotAvailable:
				return fmt.Errorf("%s is not installed (%s)", out.Binary, imagedump.InstallHint)
			case imagedump.Failed:
				return fmt.Errorf("image dump failed: %s", out.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Path)
			if info, err := clipview.Describe(out.Path); err == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), info.String())
			}
			return nil
		},
	}
}

func newDoctorCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that clipaste and helpers are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configpkg.LoadWith(e.viper())
			if err != nil {
				return err
			}
			checks := doctor.Run(cmd.Context(), e.runner, doctor.Options{
				Executable:      cfg.ExecutablePath,
				FallbackPath:    cfg.FallbackPath,
				FallbackEnabled: cfg.EnableFallbackPreview,
				LookPath:        e.lookPath,
			})
			printChecks(cmd.OutOrStdout(), checks)
			if err := doctor.Err(checks); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "doctor: ok")
			return nil
		},
	}
}

func printChecks(w io.Writer, checks []doctor.Check) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range checks {
		state := "ok"
		detail := strings.TrimSpace(c.Path + " " + c.Version)
		if !c.OK() {
			state = "FAIL"
			if c.Optional {
				state = "missing (optional)"
			}
			detail = c.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, state, detail)
	}
	_ = tw.Flush()
}

func newConfigCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print resolved preferences and file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configpkg.LoadWith(e.viper())
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, string(b))
			paths := []struct {
				label string
				fn    func() (string, error)
			}{
				{"config", configpkg.Path},
				{"recipes", configpkg.RecipesPath},
				{"themes", configpkg.ThemesDir},
				{"state", app.StateDir},
				{"log", app.LogPath},
			}
			for _, p := range paths {
				v, err := p.fn()
				if err != nil {
					v = "(" + err.Error() + ")"
				}
				fmt.Fprintf(out, "%s: %s\n", p.label, v)
			}
			return nil
		},
	}
}

func newThemeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List or switch local color themes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List installed themes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := configpkg.LoadWith(e.viper())
				if err != nil {
					return err
				}
				dir, err := configpkg.ThemesDir()
				if err != nil {
					return err
				}
				ids, err := themepkg.ListLocalThemeIDs(dir)
				if err != nil {
					return err
				}
				ids = append([]string{"default"}, ids...)
				for _, id := range ids {
					marker := "  "
					if id == cfg.Theme.Active {
						marker = "* "
					}
					fmt.Fprintln(cmd.OutOrStdout(), marker+id)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "apply <id>",
			Short: "Make a theme active",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := configpkg.LoadWith(e.viper())
				if err != nil {
					return err
				}
				dir, err := configpkg.ThemesDir()
				if err != nil {
					return err
				}
				id := strings.TrimSpace(args[0])
				if _, _, err := themepkg.LoadActivePaletteHex(dir, id); err != nil {
					return fmt.Errorf("theme %q: %w", id, err)
				}
				cfg.Theme.Active = id
				if err := configpkg.Save(cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "theme applied: %s\n", id)
				return nil
			},
		},
	)
	return cmd
}

// runOnce submits v and reports the result. Output goes to out, the command
// line and failures to errOut.
func runOnce(ctx context.Context, out, errOut io.Writer, s *session, v formstate.FormValues) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c := s.synth.Synthesize(command.ForSubmit(v, s.cfg.DefaultOutputDir))
	fmt.Fprintln(errOut, c.Display())
	res := s.pipeline.Run(ctx, c.Executable, c.Argv)
	if res.Status == executor.StatusSucceeded {
		fmt.Fprintln(out, res.Output)
		return nil
	}
	fmt.Fprintln(errOut, "error: "+res.Message)
	return errRunFailed
}
