// Package app wires configuration, the registry client, the reachability
// watcher, and the UI into a runnable program.
package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/djmattyg007/docker-registry-tui/internal/backend"
	"github.com/djmattyg007/docker-registry-tui/internal/registry"
	"github.com/djmattyg007/docker-registry-tui/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Registry          registry.Config
	PreferredPlatform string
	CacheBudget       int
	Width             int
	Height            int
	ShowFooter        bool
	Verbose           bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	client, err := registry.New(cfg.Registry)
	if err != nil {
		return fmt.Errorf("configure registry client: %w", err)
	}
	watcher := backend.NewWatcher(client, 15*time.Second)
	defer watcher.Stop()
	model := ui.NewModel(client, watcher, ui.Options{
		Width:             cfg.Width,
		Height:            cfg.Height,
		ShowFooter:        cfg.ShowFooter,
		Verbose:           cfg.Verbose,
		PreferredPlatform: cfg.PreferredPlatform,
		CacheBudget:       cfg.CacheBudget,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
