package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"ofsconsole/internal/config"
	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
)

// BatchOptions carries connection details not found in the script itself
type BatchOptions struct {
	Address  string
	Password string
	User     string
}

// BatchStep is the result of one script step
type BatchStep struct {
	Command domain.Command
	Err     error
	Forest  *domain.Forest // set for SHOW_TREE steps the server answered
	Index   int            // 0 for the automatic login, otherwise 1-based
	Outcome domain.Outcome
}

// BatchReport summarizes one run of a script
type BatchReport struct {
	Refused int
	Stopped bool
	Steps   []BatchStep
}

// BatchService runs scripts of commands against a server
type BatchService struct {
	console *ConsoleService
}

// NewBatchService creates a new BatchService
func NewBatchService(console *ConsoleService) *BatchService {
	return &BatchService{console: console}
}

// Run connects, executes every step in order and disconnects. A refused step
// stops the run when the script asks for it; a transport failure always does.
func (s *BatchService) Run(
	ctx context.Context,
	script *config.Script,
	opts BatchOptions,
	report func(BatchStep),
) (*BatchReport, error) {
	address := opts.Address
	if script.Address != "" {
		address = script.Address
	}

	logging.Logger.Info("Starting batch run", "address", address, "steps", len(script.Steps))

	if s.console.State() != domain.StateConnected {
		if err := s.console.Connect(ctx, address); err != nil {
			return nil, err
		}
		defer func() {
			if err := s.console.Disconnect(); err != nil {
				logging.Logger.Warn("Disconnect after batch failed", "error", err)
			}
		}()
	}

	result := &BatchReport{}
	record := func(step BatchStep) {
		result.Steps = append(result.Steps, step)
		if report != nil {
			report(step)
		}
	}

	if opts.User != "" && opts.Password != "" && !script.HasLogin() {
		outcome, err := s.console.Login(ctx, opts.User, opts.Password)
		record(BatchStep{Command: domain.NewCommand(domain.VerbLogin, opts.User, opts.Password), Err: err, Outcome: outcome})
		if err != nil {
			return result, fmt.Errorf("automatic login failed: %w", err)
		}
		if outcome.IsError() {
			result.Refused++
			result.Stopped = true
			logging.Logger.Warn("Automatic login refused", "user", opts.User, "message", outcome.Message)
			return result, nil
		}
	}

	for i, cmd := range script.Commands() {
		step := BatchStep{Command: cmd, Index: i + 1}
		step.Outcome, step.Err = s.console.Raw(ctx, cmd.Name(), cmd.Args()...)
		if step.Err == nil && cmd.Name() == domain.VerbShowTree {
			step.Forest = ForestFromOutcome(step.Outcome)
		}
		record(step)

		if step.Err != nil {
			logging.Logger.Error("Batch step failed", "step", step.Index, "verb", cmd.Name(), "error", step.Err)
			return result, fmt.Errorf("step %d: %w", step.Index, step.Err)
		}
		if step.Outcome.IsError() {
			result.Refused++
			if script.ShouldStopOnError() {
				result.Stopped = true
				logging.Logger.Info("Batch stopped on refused step", "step", step.Index, "verb", cmd.Name())
				break
			}
		}
	}

	logging.Logger.Info("Batch run finished",
		"steps", len(result.Steps),
		"refused", result.Refused,
		"stopped", result.Stopped)
	return result, nil
}

// RunScheduled runs the script once immediately and then on every tick of
// the cron spec until ctx is cancelled. A tick that fires while a run is
// still in progress is skipped. Failed runs are logged and do not end the
// schedule.
func (s *BatchService) RunScheduled(
	ctx context.Context,
	script *config.Script,
	spec string,
	opts BatchOptions,
	report func(*BatchReport, error),
) error {
	if spec == "" {
		spec = script.Schedule
	}
	if spec == "" {
		return fmt.Errorf("%w: no schedule given", domain.ErrInvalidArgument)
	}

	triggers := make(chan struct{}, 1)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(spec, func() {
		select {
		case triggers <- struct{}{}:
		default:
			logging.Logger.Warn("Previous batch run still in progress, skipping tick", "schedule", spec)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule '%s': %w", spec, err)
	}

	logging.Logger.Info("Scheduled batch run", "schedule", spec)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		<-scheduler.Stop().Done()
		return nil
	})

	g.Go(func() error {
		runOnce := func() {
			result, err := s.Run(gctx, script, opts, nil)
			if err != nil {
				logging.Logger.Error("Scheduled batch run failed", "error", err)
			}
			if report != nil {
				report(result, err)
			}
		}

		runOnce()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-triggers:
				runOnce()
			}
		}
	})

	return g.Wait()
}
