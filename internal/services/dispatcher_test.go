package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ofsconsole/internal/domain"
)

// gatedExchanger tracks overlapping exchanges and optionally blocks until released
type gatedExchanger struct {
	gate     chan struct{}
	started  chan domain.Verb
	inFlight atomic.Int32
	maxSeen  atomic.Int32

	mu    sync.Mutex
	order []domain.Verb
}

func newGatedExchanger(gated bool) *gatedExchanger {
	e := &gatedExchanger{started: make(chan domain.Verb, 64)}
	if gated {
		e.gate = make(chan struct{})
	}
	return e
}

func (e *gatedExchanger) Exchange(_ context.Context, cmd domain.Command) (domain.Outcome, error) {
	n := e.inFlight.Add(1)
	defer e.inFlight.Add(-1)
	for {
		seen := e.maxSeen.Load()
		if n <= seen || e.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	e.mu.Lock()
	e.order = append(e.order, cmd.Name())
	e.mu.Unlock()
	e.started <- cmd.Name()

	if e.gate != nil {
		<-e.gate
	} else {
		time.Sleep(time.Millisecond)
	}
	return domain.Success(string(cmd.Name())), nil
}

func TestDispatcher_SerializesExchanges(t *testing.T) {
	exchanger := newGatedExchanger(false)
	d := NewDispatcher(exchanger, 64)
	defer d.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Do(context.Background(), domain.NewCommand(domain.VerbStats))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), exchanger.maxSeen.Load())
}

func TestDispatcher_PreservesSubmissionOrder(t *testing.T) {
	exchanger := newGatedExchanger(false)
	d := NewDispatcher(exchanger, 8)
	defer d.Close()

	verbs := []domain.Verb{domain.VerbLogin, domain.VerbStats, domain.VerbShowTree, domain.VerbLogout}
	results := make(chan Result, len(verbs))
	for _, verb := range verbs {
		require.NoError(t, d.Submit(context.Background(), domain.NewCommand(verb), func(r Result) { results <- r }))
	}

	for _, verb := range verbs {
		r := <-results
		assert.Equal(t, verb, r.Command.Name())
		assert.Equal(t, domain.Success(string(verb)), r.Outcome)
	}
}

func TestDispatcher_QueueFull(t *testing.T) {
	exchanger := newGatedExchanger(true)
	d := NewDispatcher(exchanger, 1)

	require.NoError(t, d.Submit(context.Background(), domain.NewCommand(domain.VerbStats), nil))
	<-exchanger.started
	require.NoError(t, d.Submit(context.Background(), domain.NewCommand(domain.VerbLoad), nil))

	err := d.Submit(context.Background(), domain.NewCommand(domain.VerbFormat), nil)
	assert.ErrorIs(t, err, domain.ErrQueueFull)

	close(exchanger.gate)
	d.Close()
}

func TestDispatcher_CloseFailsQueuedJobs(t *testing.T) {
	exchanger := newGatedExchanger(true)
	d := NewDispatcher(exchanger, 4)

	running := make(chan Result, 1)
	queued := make(chan Result, 1)
	require.NoError(t, d.Submit(context.Background(), domain.NewCommand(domain.VerbStats), func(r Result) { running <- r }))
	<-exchanger.started
	require.NoError(t, d.Submit(context.Background(), domain.NewCommand(domain.VerbLoad), func(r Result) { queued <- r }))

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()
	assert.Eventually(t, func() bool {
		return d.Submit(context.Background(), domain.NewCommand(domain.VerbStats), nil) == domain.ErrDispatcherClosed
	}, time.Second, time.Millisecond)

	close(exchanger.gate)
	<-closed

	assert.NoError(t, (<-running).Err)
	assert.ErrorIs(t, (<-queued).Err, domain.ErrDispatcherClosed)
	assert.Equal(t, []domain.Verb{domain.VerbStats}, exchanger.order)
}

func TestDispatcher_SkipsCancelledJobs(t *testing.T) {
	exchanger := newGatedExchanger(true)
	d := NewDispatcher(exchanger, 4)
	defer d.Close()

	require.NoError(t, d.Submit(context.Background(), domain.NewCommand(domain.VerbStats), nil))
	<-exchanger.started

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan Result, 1)
	require.NoError(t, d.Submit(ctx, domain.NewCommand(domain.VerbFormat), func(r Result) { results <- r }))
	cancel()
	close(exchanger.gate)

	assert.ErrorIs(t, (<-results).Err, context.Canceled)
	exchanger.mu.Lock()
	defer exchanger.mu.Unlock()
	assert.Equal(t, []domain.Verb{domain.VerbStats}, exchanger.order)
}

func TestDispatcher_ObserversSeeResultsFirst(t *testing.T) {
	exchanger := newGatedExchanger(false)

	var mu sync.Mutex
	var events []string
	d := NewDispatcher(exchanger, 4, func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, "observe:"+string(r.Command.Name()))
	})
	defer d.Close()

	done := make(chan struct{})
	require.NoError(t, d.Submit(context.Background(), domain.NewCommand(domain.VerbStats), func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, "deliver:"+string(r.Command.Name()))
		close(done)
	}))
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"observe:STATS", "deliver:STATS"}, events)
}

func TestDispatcher_DoAsExchanger(t *testing.T) {
	d := NewDispatcher(newGatedExchanger(false), 0)
	defer d.Close()

	outcome, err := d.Exchange(context.Background(), domain.NewCommand(domain.VerbListUsers))

	require.NoError(t, err)
	assert.Equal(t, domain.Success("LIST_USERS"), outcome)

	d.Close()
	_, err = d.Do(context.Background(), domain.NewCommand(domain.VerbStats))
	assert.ErrorIs(t, err, domain.ErrDispatcherClosed)
}
