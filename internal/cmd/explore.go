package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ofsconsole/internal/config"
	"ofsconsole/internal/logging"
)

// ExploreCmd starts the interactive explorer
type ExploreCmd struct {
	Dev             bool `help:"Enable development mode (shows version info in dialogs)"`
	ErrorClearDelay int  `help:"Seconds before error messages auto-clear" default:"10"`
}

// Run executes the explorer
func (e *ExploreCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting explorer", "address", cli.Address)

	model, cleanup := cli.Container.NewExplorer(
		cli.Address,
		cli.explorerReadTimeout(),
		time.Duration(e.ErrorClearDelay)*time.Second,
		e.Dev,
	)
	defer cleanup()

	p := tea.NewProgram(model, tea.WithAltScreen())

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}

// explorerReadTimeout bounds explorer exchanges. An explicit --read-timeout
// wins; otherwise the explorer setting or its default applies so the UI never
// waits forever.
func (c *CLI) explorerReadTimeout() time.Duration {
	if c.ReadTimeout > 0 {
		return c.readTimeout()
	}
	seconds := config.DefaultExplorerReadTimeoutSeconds
	if c.settings != nil && c.settings.ExplorerReadTimeoutSeconds != nil {
		seconds = *c.settings.ExplorerReadTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}
