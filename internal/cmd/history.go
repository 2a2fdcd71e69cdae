package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"ofsconsole/internal/domain"
)

// HistoryCmd manages the exchange journal
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"list" help:"List journaled exchanges, newest first" default:"1"`
	Clear HistoryClearCmd `cmd:"clear" help:"Delete every journaled exchange"`
}

// HistoryListCmd prints journal entries
type HistoryListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of entries to show" short:"n" default:"50"`
	Verb   string `help:"Only show exchanges with this verb"`
}

// Run executes the history list command
func (h *HistoryListCmd) Run(cli *CLI) error {
	records, err := cli.Container.HistoryService.List(context.Background(), domain.HistoryFilter{
		Limit: h.Limit,
		Verb:  domain.Verb(strings.ToUpper(h.Verb)),
	})
	if err != nil {
		return err
	}

	if h.Format == "json" {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	return writeHistoryTable(os.Stdout, records)
}

func writeHistoryTable(out io.Writer, records []domain.ExchangeRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(out, "No exchanges recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tADDRESS\tCOMMAND\tRESULT\tDURATION")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime),
			r.Address,
			strings.Join(append([]string{string(r.Verb)}, r.Args...), " "),
			historyResult(r),
			r.Duration.Round(time.Millisecond))
	}
	return w.Flush()
}

// historyResult condenses an entry's outcome into one table cell
func historyResult(r domain.ExchangeRecord) string {
	if r.Error != "" {
		return "error: " + r.Error
	}
	msg := r.Message
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i] + " ..."
	}
	if len(msg) > 60 {
		msg = msg[:57] + "..."
	}
	if msg == "" {
		return string(r.Kind)
	}
	return fmt.Sprintf("%s: %s", r.Kind, msg)
}

// HistoryClearCmd empties the journal
type HistoryClearCmd struct{}

// Run executes the history clear command
func (h *HistoryClearCmd) Run(cli *CLI) error {
	removed, err := cli.Container.HistoryService.Clear(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d exchange(s) from history\n", removed)
	return nil
}
