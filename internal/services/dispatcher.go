package services

import (
	"context"
	"sync"
	"time"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/ports"
)

// DefaultQueueSize is the number of exchanges that may wait behind the running one
const DefaultQueueSize = 16

// Result is the completion of one dispatched exchange
type Result struct {
	Command   domain.Command
	Duration  time.Duration
	Err       error
	Outcome   domain.Outcome
	StartedAt time.Time
}

type job struct {
	cmd     domain.Command
	ctx     context.Context
	deliver func(Result)
}

// Dispatcher runs exchanges against one session on a single worker
// goroutine, so at most one exchange is ever outstanding. Results are
// handed back through callbacks on the worker goroutine.
type Dispatcher struct {
	exchanger ports.Exchanger
	jobs      chan job
	observers []func(Result)

	mu     sync.Mutex
	closed bool
	quit   chan struct{}
	done   chan struct{}
}

// Compile-time interface verification
var _ ports.Exchanger = (*Dispatcher)(nil)

// NewDispatcher starts the worker. Observers see every result before its
// deliver callback does.
func NewDispatcher(exchanger ports.Exchanger, queueSize int, observers ...func(Result)) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		exchanger: exchanger,
		jobs:      make(chan job, queueSize),
		observers: observers,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Submit queues cmd. deliver may be nil when the caller only needs observers.
func (d *Dispatcher) Submit(ctx context.Context, cmd domain.Command, deliver func(Result)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return domain.ErrDispatcherClosed
	}

	select {
	case d.jobs <- job{cmd: cmd, ctx: ctx, deliver: deliver}:
		logging.Logger.Debug("Exchange queued", "verb", cmd.Name(), "queued", len(d.jobs))
		return nil
	default:
		logging.Logger.Warn("Exchange queue full", "verb", cmd.Name(), "capacity", cap(d.jobs))
		return domain.ErrQueueFull
	}
}

// Do queues cmd and waits for its result
func (d *Dispatcher) Do(ctx context.Context, cmd domain.Command) (domain.Outcome, error) {
	results := make(chan Result, 1)
	if err := d.Submit(ctx, cmd, func(r Result) { results <- r }); err != nil {
		return domain.Outcome{}, err
	}

	select {
	case r := <-results:
		return r.Outcome, r.Err
	case <-ctx.Done():
		return domain.Outcome{}, ctx.Err()
	}
}

// Exchange is Do, letting the dispatcher stand in for a session
func (d *Dispatcher) Exchange(ctx context.Context, cmd domain.Command) (domain.Outcome, error) {
	return d.Do(ctx, cmd)
}

// Close stops accepting work, lets the running exchange finish, and fails
// whatever is still queued with ErrDispatcherClosed
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.quit)
	d.mu.Unlock()

	<-d.done
	logging.Logger.Debug("Dispatcher closed")
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for {
		// Quit takes priority over queued work
		select {
		case <-d.quit:
			d.drain()
			return
		default:
		}

		select {
		case <-d.quit:
			d.drain()
			return
		case j := <-d.jobs:
			d.execute(j)
		}
	}
}

func (d *Dispatcher) execute(j job) {
	result := Result{Command: j.cmd, StartedAt: time.Now()}

	if err := j.ctx.Err(); err != nil {
		result.Err = err
		logging.Logger.Debug("Skipping cancelled exchange", "verb", j.cmd.Name())
		d.finish(j, result)
		return
	}

	result.Outcome, result.Err = d.exchanger.Exchange(j.ctx, j.cmd)
	result.Duration = time.Since(result.StartedAt)
	d.finish(j, result)
}

func (d *Dispatcher) drain() {
	for {
		select {
		case j := <-d.jobs:
			d.finish(j, Result{Command: j.cmd, Err: domain.ErrDispatcherClosed, StartedAt: time.Now()})
		default:
			return
		}
	}
}

func (d *Dispatcher) finish(j job, result Result) {
	for _, observe := range d.observers {
		observe(result)
	}
	if j.deliver != nil {
		j.deliver(result)
	}
}
