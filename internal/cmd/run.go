package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ofsconsole/internal/config"
	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/services"
	"ofsconsole/internal/treeparse"
)

// RunCmd runs a batch script
type RunCmd struct {
	Script   string `arg:"" help:"Path to the TOML script" type:"path"`
	Schedule string `help:"Cron spec to repeat the run until interrupted (e.g. '@every 5m')"`
}

// Run executes the run command
func (r *RunCmd) Run(cli *CLI) error {
	script, err := config.LoadScript(r.Script)
	if err != nil {
		return err
	}

	console := cli.Container.NewConsole(cli.readTimeout())
	defer console.Close()

	schedule := r.Schedule
	if schedule == "" {
		schedule = script.Schedule
	}

	if schedule == "" {
		report, err := console.Batch.Run(context.Background(), script, cli.batchOptions(), func(step services.BatchStep) {
			printStep(os.Stdout, step)
		})
		if err != nil {
			return err
		}
		printSummary(os.Stdout, report)
		if report.Stopped {
			return fmt.Errorf("%w: run stopped after a refused step", domain.ErrRefused)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Running %s on schedule '%s'. Press Ctrl+C to stop.\n", r.Script, schedule)
	err = console.Batch.RunScheduled(ctx, script, schedule, cli.batchOptions(), func(report *services.BatchReport, err error) {
		fmt.Printf("--- run at %s ---\n", time.Now().Format(time.RFC3339))
		if report != nil {
			for _, step := range report.Steps {
				printStep(os.Stdout, step)
			}
			printSummary(os.Stdout, report)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logging.Logger.Info("Scheduled run stopped", "script", r.Script)
	return nil
}

// printStep writes one step header followed by its result
func printStep(w io.Writer, step services.BatchStep) {
	label := "login"
	if step.Index > 0 {
		label = fmt.Sprintf("%d", step.Index)
	}
	fmt.Fprintf(w, "[%s] %s\n", label, describeCommand(step.Command))

	switch {
	case step.Err != nil:
		fmt.Fprintf(w, "ERROR: %v\n", step.Err)
	case step.Forest != nil:
		fmt.Fprint(w, treeparse.Render(step.Forest, treeparse.DefaultIndent))
	default:
		fmt.Fprintln(w, step.Outcome.String())
	}
}

func printSummary(w io.Writer, report *services.BatchReport) {
	status := "completed"
	if report.Stopped {
		status = "stopped"
	}
	fmt.Fprintf(w, "Run %s: %d step(s), %d refused\n", status, len(report.Steps), report.Refused)
}

// describeCommand renders the command with secrets masked
func describeCommand(cmd domain.Command) string {
	parts := append([]string{string(cmd.Name())}, cmd.Redacted()...)
	return strings.Join(parts, " ")
}
