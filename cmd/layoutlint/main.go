package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"layoutlint/internal/version"
)

// Exit statuses.
const (
	exitOK          = 0
	exitDiagnostics = 1 // error-severity diagnostics were reported
	exitFailure     = 2 // bad flags, unreadable config, I/O
)

// errDiagnostics signals exitDiagnostics; the diagnostics are already printed.
var errDiagnostics = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:           "layoutlint",
	Short:         "Layout-consistency linter for JavaScript and TypeScript",
	Long:          `layoutlint checks and fixes list line breaks, chaining, operator indentation, braces and template indentation in JS/TS sources.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		stop, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopProfiling = stop
		return nil
	},
}

// stopProfiling is replaced once the profiling flags are parsed.
var stopProfiling = func() {}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: discover layoutlint.toml/.yaml upward)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	flags.IntP("jobs", "j", 0, "parallel files (0 = GOMAXPROCS)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.Bool("quiet", false, "suppress the summary line")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	os.Exit(run())
}

func run() int {
	err := rootCmd.Execute()
	stopProfiling()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errDiagnostics):
		return exitDiagnostics
	default:
		fmt.Fprintf(os.Stderr, "layoutlint: %v\n", err)
		return exitFailure
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
