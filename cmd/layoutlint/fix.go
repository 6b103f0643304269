package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"layoutlint/internal/diagfmt"
	"layoutlint/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [files or directories]",
	Short: "Apply layout fixes in place",
	Long:  "Apply every available fix, re-linting until the text stops changing (at most 10 passes), then report what is left.",
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("diff", false, "print unified diffs instead of writing files")
	fixCmd.Flags().String("format", "pretty", "format of the remaining diagnostics (pretty|short|json)")
	fixCmd.Flags().Bool("stdin", false, "read source from stdin and write the fixed text to stdout")
	fixCmd.Flags().String("stdin-filename", "stdin.ts", "file name used for stdin input; picks the grammar")
	fixCmd.Flags().String("ui", "off", "progress view (auto|on|off)")
}

func runFix(cmd *cobra.Command, args []string) (err error) {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil && !errors.Is(err, errDiagnostics)) }()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	opts := s.driverOptions(driver.ModeFix)

	if useStdin, _ := cmd.Flags().GetBool("stdin"); useStdin {
		return fixStdin(cmd, s, opts, showDiff)
	}

	files, err := s.collect(args)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	report, err := runFiles(cmd.Context(), "fix", files, opts, shouldUseTUI(mode, len(files)))
	if err != nil {
		return err
	}

	if showDiff {
		if err := printDiffs(cmd, s, report); err != nil {
			return err
		}
	} else {
		stop := s.timer.Track("write")
		err := driver.Write(report, nil)
		stop()
		if err != nil {
			return err
		}
	}

	if err := s.printReport(cmd, report, format, 0); err != nil {
		return err
	}
	s.printTimings(cmd)
	if report.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func fixStdin(cmd *cobra.Command, s *session, opts driver.Options, showDiff bool) error {
	name, err := cmd.Flags().GetString("stdin-filename")
	if err != nil {
		return err
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	res, err := driver.Source(cmd.Context(), name, content, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case showDiff && res.Changed():
		d, err := diagfmt.UnifiedDiff(name, res.Original.Content, res.Output)
		if err != nil {
			return err
		}
		if err := diagfmt.WriteDiff(out, d, s.color); err != nil {
			return err
		}
	case showDiff:
	default:
		if _, err := out.Write(res.File.Encoded()); err != nil {
			return err
		}
	}

	// оставшиеся диагностики в stderr, stdout занят текстом
	if err := diagfmt.Short(cmd.ErrOrStderr(), res.Files, res.Diagnostics, s.prettyOpts()); err != nil {
		return err
	}
	report := driver.Report{Results: []driver.FileResult{*res}}
	if report.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func printDiffs(cmd *cobra.Command, s *session, report *driver.Report) error {
	for i := range report.Results {
		res := &report.Results[i]
		if !res.Changed() {
			continue
		}
		d, err := diagfmt.UnifiedDiff(res.Original.Path, res.Original.Content, res.Output)
		if err != nil {
			return fmt.Errorf("%s: %w", res.Path, err)
		}
		if err := diagfmt.WriteDiff(cmd.OutOrStdout(), d, s.color); err != nil {
			return err
		}
	}
	return nil
}
