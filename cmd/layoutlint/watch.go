package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"layoutlint/internal/diagfmt"
	"layoutlint/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [directories]",
	Short: "Lint files again whenever they change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Bool("fix", false, "apply fixes to changed files")
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "quiet period before a batch is linted")
	watchCmd.Flags().String("format", "pretty", "output format (pretty|short)")
}

func runWatch(cmd *cobra.Command, args []string) (err error) {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	applyFixes, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
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
	if format == diagfmt.FormatJSON {
		return fmt.Errorf("watch does not support --format json")
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	mode := driver.ModeLint
	if applyFixes {
		mode = driver.ModeFix
	}
	opts := s.driverOptions(mode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := driver.NewWatcher(args, s.cfg, debounce)
	if err != nil {
		return err
	}

	// первый прогон по всему дереву
	files, err := s.collect(args)
	if err != nil {
		return err
	}
	if err := s.watchBatch(ctx, cmd, files, opts, format); err != nil {
		return err
	}
	banner := color.New(color.FgCyan)
	if !s.color {
		banner.DisableColor()
	}
	fmt.Fprintln(cmd.ErrOrStderr(), banner.Sprint("watching for changes, ctrl+c to stop"))

	return w.Run(ctx, func(ctx context.Context, files []string) error {
		fmt.Fprintln(cmd.ErrOrStderr(), banner.Sprintf("[%s] %d changed", time.Now().Format("15:04:05"), len(files)))
		return s.watchBatch(ctx, cmd, files, opts, format)
	})
}

func (s *session) watchBatch(ctx context.Context, cmd *cobra.Command, files []string, opts driver.Options, format diagfmt.Format) error {
	report, err := driver.Run(ctx, files, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if opts.Mode == driver.ModeFix {
		if err := driver.Write(report, nil); err != nil {
			// ошибка записи не останавливает наблюдение
			fmt.Fprintf(cmd.ErrOrStderr(), "layoutlint: %v\n", err)
		}
	}
	return s.printReport(cmd, report, format, 0)
}
