package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"layoutlint/internal/driver"
	"layoutlint/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI: auto shows progress only for several files on a terminal.
func shouldUseTUI(mode uiMode, files int) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return files > 1 && isTerminal(os.Stdout) && isTerminal(os.Stderr)
	}
}

type runOutcome struct {
	report *driver.Report
	err    error
}

// runFiles runs the driver, with the progress view when useUI is set.
func runFiles(ctx context.Context, title string, files []string, opts driver.Options, useUI bool) (*driver.Report, error) {
	if !useUI {
		return driver.Run(ctx, files, opts)
	}
	// каждый файл даёт не больше шести событий
	events := make(chan driver.Event, 6*len(files)+16)
	outcomeCh := make(chan runOutcome, 1)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink(events)
		report, err := driver.Run(ctx, files, runOpts)
		outcomeCh <- runOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		cancel()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
