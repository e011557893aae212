package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rnorm/internal/driver"
	"rnorm/internal/source"
	"rnorm/internal/ui"
)

type batchOutcome struct {
	fs      *source.FileSet
	results []driver.Result
	err     error
}

// runBatchWithUI runs NormalizeDir while a Bubble Tea view renders its progress events.
func runBatchWithUI(ctx context.Context, title string, files []string, dir string, opts driver.BatchOptions) (*source.FileSet, []driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.NormalizeDir(ctx, dir, optsCopy)
		outcomeCh <- batchOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы воркеры не заблокировались
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

// resolveUI decides whether batch progress is drawn with the TUI.
// auto draws only on a terminal; --quiet never draws.
func resolveUI(value string, quiet bool) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return !quiet && isTerminal(os.Stdout), nil
	case "on":
		return !quiet, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}
