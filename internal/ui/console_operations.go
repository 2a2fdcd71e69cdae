package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/services"
)

// ConsoleOperations turns console calls into tea.Cmds.
// Each command blocks off the UI goroutine and reports back as a message.
type ConsoleOperations struct {
	address string
	console *services.ConsoleService
}

// NewConsoleOperations creates a new ConsoleOperations component.
func NewConsoleOperations(console *services.ConsoleService, address string) *ConsoleOperations {
	return &ConsoleOperations{
		address: address,
		console: console,
	}
}

// Address returns the server address used by Connect
func (co *ConsoleOperations) Address() string {
	return co.address
}

// State returns the current connection state
func (co *ConsoleOperations) State() domain.ConnState {
	return co.console.State()
}

// Connect dials the server
func (co *ConsoleOperations) Connect() tea.Cmd {
	address := co.address
	return func() tea.Msg {
		logging.Logger.Info("Connecting from explorer", "address", address)
		err := co.console.Connect(context.Background(), address)
		return connectResultMsg{address: address, err: err}
	}
}

// Disconnect sends QUIT and closes the connection
func (co *ConsoleOperations) Disconnect() tea.Cmd {
	return func() tea.Msg {
		logging.Logger.Info("Disconnecting from explorer")
		return disconnectResultMsg{err: co.console.Disconnect()}
	}
}

// Run executes fn and reports its outcome for verb
func (co *ConsoleOperations) Run(verb domain.Verb, fn ExchangeFunc) tea.Cmd {
	return func() tea.Msg {
		outcome, err := fn(context.Background(), co.console)
		return exchangeResultMsg{err: err, outcome: outcome, verb: verb}
	}
}

// ReadFile fetches a file opened from the tree
func (co *ConsoleOperations) ReadFile(path string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := co.console.ReadFile(context.Background(), path)
		return exchangeResultMsg{err: err, outcome: outcome, path: path, verb: domain.VerbReadFile}
	}
}

// RefreshTree fetches and parses the directory tree
func (co *ConsoleOperations) RefreshTree() tea.Cmd {
	return func() tea.Msg {
		forest, outcome, err := co.console.ShowTree(context.Background())
		return exchangeResultMsg{err: err, forest: forest, outcome: outcome, verb: domain.VerbShowTree}
	}
}

// simpleExchange returns the call for a command without arguments
func simpleExchange(verb domain.Verb) ExchangeFunc {
	return func(ctx context.Context, console *services.ConsoleService) (domain.Outcome, error) {
		switch verb {
		case domain.VerbFormat:
			return console.Format(ctx)
		case domain.VerbLoad:
			return console.Load(ctx)
		case domain.VerbLogout:
			return console.Logout(ctx)
		case domain.VerbStats:
			return console.Stats(ctx)
		case domain.VerbShowChangeLog:
			return console.ShowChangeLog(ctx)
		case domain.VerbListUsers:
			return console.ListUsers(ctx)
		case domain.VerbListMyFiles:
			return console.ListMyFiles(ctx)
		case domain.VerbListAllFiles:
			return console.ListAllFiles(ctx)
		default:
			return domain.Outcome{}, fmt.Errorf("%w: %s takes arguments", domain.ErrInvalidArgument, verb)
		}
	}
}

// describeCommand renders a command for the log with secrets redacted
func describeCommand(cmd domain.Command) string {
	fields := append([]string{string(cmd.Name())}, cmd.Redacted()...)
	return strings.Join(fields, "|")
}
