package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/treeparse"
)

// TreeCmd fetches the remote directory tree
type TreeCmd struct {
	Format string `help:"Output format: text or json" enum:"text,json" default:"text"`
}

// Run executes the tree command
func (t *TreeCmd) Run(cli *CLI) error {
	ctx := context.Background()
	console, err := cli.openConsole(ctx)
	if err != nil {
		return err
	}
	defer console.Close()

	forest, outcome, err := console.Console.ShowTree(ctx)
	if err != nil {
		return err
	}
	if forest == nil {
		return printOutcome(os.Stdout, outcome)
	}

	return writeForest(os.Stdout, os.Stderr, forest, t.Format)
}

// ParseTreeCmd parses a saved SHOW_TREE dump offline
type ParseTreeCmd struct {
	File   string `arg:"" optional:"" help:"Dump file to parse ('-' or empty reads stdin)" default:"-"`
	Format string `help:"Output format: text or json" enum:"text,json" default:"text"`
}

// Run executes the parse-tree command
func (p *ParseTreeCmd) Run(cli *CLI) error {
	var (
		data []byte
		err  error
	)
	if p.File == "" || p.File == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(p.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read tree dump: %w", err)
	}

	return writeForest(os.Stdout, os.Stderr, treeparse.Parse(string(data)), p.Format)
}

// writeForest prints the forest as an indented listing or as JSON.
// Skipped non-blank lines go to errW in text mode.
func writeForest(w, errW io.Writer, forest *domain.Forest, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(forest, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(forest.Roots) == 0 {
		fmt.Fprintln(w, "(empty tree)")
	} else {
		fmt.Fprint(w, treeparse.Render(forest, treeparse.DefaultIndent))
	}
	for _, skipped := range forest.Skipped {
		if strings.TrimSpace(skipped.Text) == "" {
			continue
		}
		fmt.Fprintf(errW, "Skipped line %d (%s): %s\n", skipped.LineNo, skipped.Reason, skipped.Text)
	}
	return nil
}
