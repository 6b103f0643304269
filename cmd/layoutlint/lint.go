package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"layoutlint/internal/diagfmt"
	"layoutlint/internal/driver"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [files or directories]",
	Short: "Report layout inconsistencies",
	Long:  "Lint JavaScript and TypeScript files. Directories are walked; node_modules and hidden directories are skipped.",
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	lintCmd.Flags().Bool("cache", false, "reuse results of unchanged files")
	lintCmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/layoutlint)")
	lintCmd.Flags().Int("max-diagnostics", 0, "stop printing after this many diagnostics (0 = all)")
	lintCmd.Flags().Bool("stdin", false, "read source from stdin")
	lintCmd.Flags().String("stdin-filename", "stdin.ts", "file name used for stdin input; picks the grammar")
	lintCmd.Flags().String("ui", "off", "progress view (auto|on|off)")
}

func runLint(cmd *cobra.Command, args []string) (err error) {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil && !errors.Is(err, errDiagnostics)) }()

	s, err := newSession(cmd)
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
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	opts := s.driverOptions(driver.ModeLint)
	var report *driver.Report
	if useStdin, _ := cmd.Flags().GetBool("stdin"); useStdin {
		report, err = lintStdin(cmd, opts)
	} else {
		report, err = lintFiles(cmd, s, args, opts)
	}
	if err != nil {
		return err
	}

	if err := s.printReport(cmd, report, format, maxDiags); err != nil {
		return err
	}
	s.printTimings(cmd)
	if report.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func lintStdin(cmd *cobra.Command, opts driver.Options) (*driver.Report, error) {
	name, err := cmd.Flags().GetString("stdin-filename")
	if err != nil {
		return nil, err
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	res, err := driver.Source(cmd.Context(), name, content, opts)
	if err != nil {
		return nil, err
	}
	return &driver.Report{Results: []driver.FileResult{*res}}, nil
}

func lintFiles(cmd *cobra.Command, s *session, args []string, opts driver.Options) (*driver.Report, error) {
	files, err := s.collect(args)
	if err != nil {
		return nil, err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, err
	}
	if useCache {
		dir, err := cmd.Flags().GetString("cache-dir")
		if err != nil {
			return nil, err
		}
		if dir != "" {
			opts.Cache, err = driver.OpenCacheDir(dir)
		} else {
			opts.Cache, err = driver.OpenCache("layoutlint")
		}
		if err != nil {
			return nil, err
		}
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, err
	}
	return runFiles(cmd.Context(), "lint", files, opts, shouldUseTUI(mode, len(files)))
}
