package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"ofsconsole/internal/domain"
)

// ExecCmd sends a single command
type ExecCmd struct {
	Verb string   `arg:"" help:"Command verb (e.g. STATS, CREATE_DIR)"`
	Args []string `arg:"" optional:"" help:"Command arguments"`
}

// Run executes the exec command
func (e *ExecCmd) Run(cli *CLI) error {
	verb := domain.Verb(strings.ToUpper(strings.TrimSpace(e.Verb)))

	ctx := context.Background()
	console, err := cli.openConsole(ctx)
	if err != nil {
		return err
	}
	defer console.Close()

	outcome, err := console.Console.Raw(ctx, verb, e.Args...)
	if err != nil {
		return err
	}

	return printOutcome(os.Stdout, outcome)
}

// openConsole connects a new console to the configured address and logs in
// when credentials are configured. The caller must Close the console.
func (c *CLI) openConsole(ctx context.Context) (*Console, error) {
	console := c.Container.NewConsole(c.readTimeout())
	if err := console.Console.Connect(ctx, c.Address); err != nil {
		console.Close()
		return nil, err
	}

	if c.hasCredentials() {
		if err := c.login(ctx, console.Console); err != nil {
			console.Close()
			return nil, err
		}
	}
	return console, nil
}

// printOutcome writes the outcome line and turns a refusal into an error
func printOutcome(w io.Writer, outcome domain.Outcome) error {
	fmt.Fprintln(w, outcome.String())
	if outcome.IsError() {
		return fmt.Errorf("%w: %s", domain.ErrRefused, outcome.Message)
	}
	return nil
}
