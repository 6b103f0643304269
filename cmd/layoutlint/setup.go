package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"layoutlint/internal/config"
	"layoutlint/internal/diag"
	"layoutlint/internal/diagfmt"
	"layoutlint/internal/driver"
	"layoutlint/internal/lint"
	"layoutlint/internal/observ"
	"layoutlint/internal/rules"
	"layoutlint/internal/version"
)

// session is what every file-processing command resolves from its flags.
type session struct {
	cfg      *config.Config
	registry *lint.Registry
	enabled  []lint.Enabled
	color    bool
	pathMode diagfmt.PathMode
	jobs     int
	quiet    bool
	timer    *observ.Timer
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	pathModeStr, err := flags.GetString("path-mode")
	if err != nil {
		return nil, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return nil, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, err
	}

	s := &session{registry: rules.Registry(), jobs: jobs, quiet: quiet}
	if s.color, err = resolveColor(colorMode); err != nil {
		return nil, err
	}
	if s.pathMode, err = diagfmt.ParsePathMode(pathModeStr); err != nil {
		return nil, err
	}
	if timings {
		s.timer = observ.NewTimer()
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if s.cfg, err = config.LoadOrDiscover(cfgPath, wd); err != nil {
		return nil, err
	}
	settings, err := s.cfg.Settings(s.registry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.cfg.Path, err)
	}
	if s.enabled, err = s.registry.Resolve(settings); err != nil {
		return nil, err
	}
	return s, nil
}

func resolveColor(mode string) (bool, error) {
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		return isTerminal(os.Stdout) && !color.NoColor, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

func (s *session) driverOptions(mode driver.Mode) driver.Options {
	return driver.Options{
		Mode:         mode,
		Rules:        s.enabled,
		Jobs:         s.jobs,
		ConfigDigest: s.cfg.Digest(),
		Version:      version.CacheKey(),
		Timer:        s.timer,
	}
}

func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		PathMode:  s.pathMode,
		ShowNotes: true,
	}
}

// collect resolves the command arguments; no argument means ".".
func (s *session) collect(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	return driver.Collect(args, s.cfg)
}

func (s *session) printTimings(cmd *cobra.Command) {
	if s.timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
	}
}

// printReport writes the diagnostics of every result in the chosen format.
func (s *session) printReport(cmd *cobra.Command, report *driver.Report, format diagfmt.Format, maxDiags int) error {
	out := cmd.OutOrStdout()
	if format == diagfmt.FormatJSON {
		rep := diagfmt.NewReportJSON()
		opts := diagfmt.JSONOpts{PathMode: s.pathMode, IncludeFixes: true, Max: maxDiags}
		for i := range report.Results {
			res := &report.Results[i]
			rep.Add(res.Files, res.Diagnostics, opts)
		}
		rep.FilesChanged = report.Changed()
		return rep.Encode(out)
	}

	printed := 0
	for i := range report.Results {
		res := &report.Results[i]
		diags := res.Diagnostics
		if maxDiags > 0 && printed+len(diags) > maxDiags {
			diags = diags[:max(maxDiags-printed, 0)]
		}
		printed += len(diags)
		var err error
		if format == diagfmt.FormatShort {
			err = diagfmt.Short(out, res.Files, diags, s.prettyOpts())
		} else {
			err = diagfmt.Pretty(out, res.Files, diags, s.prettyOpts())
		}
		if err != nil {
			return err
		}
	}
	if !s.quiet {
		s.printSummary(cmd, report)
	}
	return nil
}

func (s *session) printSummary(cmd *cobra.Command, report *driver.Report) {
	errs := report.Count(diag.SevError)
	warnings := report.Count(diag.SevWarning) - errs
	fixable := 0
	for i := range report.Results {
		for _, d := range report.Results[i].Diagnostics {
			if len(d.Fixes) > 0 {
				fixable++
			}
		}
	}
	line := fmt.Sprintf("%d files, %d errors, %d warnings", len(report.Results), errs, warnings)
	if fixable > 0 {
		line += fmt.Sprintf(", %d fixable with `layoutlint fix`", fixable)
	}
	if changed := report.Changed(); changed > 0 {
		line += fmt.Sprintf(", %d files fixed", changed)
	}
	style := color.New(color.Bold)
	if s.color {
		style.EnableColor()
	} else {
		style.DisableColor()
	}
	fmt.Fprintln(cmd.ErrOrStderr(), style.Sprint(line))
}
