package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"myton/internal/driver"
	"myton/internal/ui"
)

type suiteOutcome struct {
	result *driver.SuiteResult
	err    error
}

// runSuiteWithUI drives the suite in the background and renders progress
// until the last event arrives.
func runSuiteWithUI(ctx context.Context, title string, opts driver.SuiteOptions) (*driver.SuiteResult, error) {
	scripts, err := driver.ListScripts(opts.Dir)
	if err != nil {
		return nil, err
	}
	rel := make([]string, len(scripts))
	for i, path := range scripts {
		r, relErr := filepath.Rel(opts.Dir, path)
		if relErr != nil {
			r = path
		}
		rel[i] = filepath.ToSlash(r)
	}

	events := make(chan driver.SuiteEvent, 256)
	outcomeCh := make(chan suiteOutcome, 1)
	go func() {
		optsCopy := opts
		optsCopy.OnEvent = func(ev driver.SuiteEvent) { events <- ev }
		res, err := driver.RunSuite(ctx, optsCopy)
		outcomeCh <- suiteOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewSuiteModel(title, rel, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the model may quit early (ctrl+c); keep draining so the runner never blocks
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
