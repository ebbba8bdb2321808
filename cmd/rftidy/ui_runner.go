package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rftidy/internal/driver"
	"rftidy/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFormatWithUI runs the formatting in the background while a Bubble Tea
// program renders per-file progress from driver events.
func runFormatWithUI(ctx context.Context, paths []string, opts driver.Options) ([]driver.FormatResult, error) {
	files, err := driver.CollectFiles(paths)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)
	opts.Events = events // FormatPaths closes the channel when done

	go func() {
		results, err := driver.FormatPaths(ctx, paths, opts)
		outcomeCh <- formatOutcome{results: results, err: err}
	}()

	model := ui.NewProgressModel("formatting", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := awaitOutcome(events, outcomeCh)
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// awaitOutcome waits for the formatting goroutine. The UI stops consuming
// events once its program returns; without the drain an early quit could
// leave the driver blocked sending progress and the outcome never arriving.
func awaitOutcome(events <-chan driver.Event, outcome <-chan formatOutcome) formatOutcome {
	go func() {
		for range events {
		}
	}()
	return <-outcome
}
