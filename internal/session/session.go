// Package session owns the single TCP connection to an OFS server and runs
// request/response exchanges over it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/ports"
	"ofsconsole/internal/protocol"
)

const (
	// DefaultMaxResponseBytes is the size of the single read per exchange
	DefaultMaxResponseBytes = 8192

	quitWriteTimeout = 2 * time.Second
)

// Options configures a Session
type Options struct {
	// MaxResponseBytes bounds the single read performed per exchange
	MaxResponseBytes int
	// OnStateChange is called after every state transition, outside the lock
	OnStateChange func(domain.ConnState)
	// ReadTimeout bounds each exchange; zero waits indefinitely
	ReadTimeout time.Duration
}

// Session is a connection to one server. Callers run exchanges one at a time
// (see services.Dispatcher); wire additionally keeps QUIT from landing on the
// connection while an exchange is waiting for its response.
type Session struct {
	dialer ports.Dialer
	opts   Options

	// wire is held for the whole write and read of one exchange, and by
	// Disconnect while it sends QUIT
	wire sync.Mutex

	mu       sync.Mutex
	address  string
	conn     net.Conn
	observer func(domain.ConnState)
	state    domain.ConnState
}

// Compile-time interface verification
var _ ports.ConsoleSession = (*Session)(nil)

// New creates a disconnected Session
func New(dialer ports.Dialer, opts Options) *Session {
	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = DefaultMaxResponseBytes
	}
	return &Session{
		dialer:   dialer,
		observer: opts.OnStateChange,
		opts:     opts,
		state:    domain.StateDisconnected,
	}
}

// SetStateObserver replaces the state change callback
func (s *Session) SetStateObserver(fn func(domain.ConnState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// State returns the current connection state
func (s *Session) State() domain.ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Address returns the address of the current or last connection attempt
func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// Connect dials the server. Only one connection attempt may run at a time.
func (s *Session) Connect(ctx context.Context, address string) error {
	s.mu.Lock()
	switch s.state {
	case domain.StateConnected:
		s.mu.Unlock()
		return domain.ErrAlreadyConnected
	case domain.StateConnecting, domain.StateDisconnecting:
		s.mu.Unlock()
		return domain.ErrConnectInProgress
	}
	s.address = address
	s.state = domain.StateConnecting
	s.mu.Unlock()
	s.notify(domain.StateConnecting)

	logging.Logger.Info("Connecting", "address", address)

	conn, err := s.dialer.Dial(ctx, address)
	if err != nil {
		s.setState(domain.StateDisconnected, nil)
		logging.Logger.Error("Connect failed", "address", address, "error", err)
		return &domain.ConnectError{Address: address, Err: err}
	}

	s.setState(domain.StateConnected, conn)
	logging.Logger.Info("Connected", "address", address)
	return nil
}

// Exchange sends one command and classifies the single response read back.
// A transport failure or timeout tears the connection down.
func (s *Session) Exchange(ctx context.Context, cmd domain.Command) (domain.Outcome, error) {
	s.wire.Lock()
	defer s.wire.Unlock()

	s.mu.Lock()
	conn := s.conn
	connected := s.state == domain.StateConnected
	s.mu.Unlock()

	if !connected || conn == nil {
		return domain.Outcome{}, domain.ErrNotConnected
	}

	payload, err := protocol.Encode(cmd)
	if err != nil {
		return domain.Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, err
	}

	deadline := s.deadline(ctx)
	if err := conn.SetDeadline(deadline); err != nil {
		return domain.Outcome{}, s.fail(conn, cmd, "send", err)
	}

	logging.Logger.Debug("Sending command", "verb", cmd.Name(), "args", cmd.Redacted())

	if _, err := conn.Write(payload); err != nil {
		return domain.Outcome{}, s.fail(conn, cmd, "send", err)
	}

	buf := make([]byte, s.opts.MaxResponseBytes)
	n, err := conn.Read(buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			err = fmt.Errorf("server closed connection: %w", io.EOF)
		}
		return domain.Outcome{}, s.fail(conn, cmd, "receive", err)
	}

	outcome := protocol.Classify(string(buf[:n]))
	logging.Logger.Debug("Received response",
		"verb", cmd.Name(),
		"bytes", n,
		"kind", outcome.Kind)

	// The response arrived but the connection is gone
	if err != nil {
		logging.Logger.Warn("Connection lost after response, closing",
			"verb", cmd.Name(),
			"error", err)
		s.drop(conn)
	}
	return outcome, nil
}

// Disconnect sends QUIT on a best-effort basis and closes the connection.
// An exchange in flight finishes first; exchanges that start afterwards see
// ErrNotConnected. Calling it while disconnected is a no-op.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	if s.state != domain.StateConnected || s.conn == nil {
		s.mu.Unlock()
		return nil
	}
	s.state = domain.StateDisconnecting
	s.mu.Unlock()
	s.notify(domain.StateDisconnecting)

	logging.Logger.Info("Disconnecting", "address", s.Address())

	s.wire.Lock()
	defer s.wire.Unlock()

	// The in-flight exchange may have failed and dropped the connection
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		s.setState(domain.StateDisconnected, nil)
		return nil
	}

	if payload, err := protocol.Encode(domain.NewCommand(domain.VerbQuit)); err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(quitWriteTimeout))
		if _, err := conn.Write(payload); err != nil {
			logging.Logger.Warn("Failed to send QUIT", "error", err)
		}
	}

	err := conn.Close()
	s.setState(domain.StateDisconnected, nil)
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// deadline picks the earlier of the configured read timeout and ctx's deadline
func (s *Session) deadline(ctx context.Context) time.Time {
	var deadline time.Time
	if s.opts.ReadTimeout > 0 {
		deadline = time.Now().Add(s.opts.ReadTimeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	return deadline
}

// fail tears the connection down and wraps err as a TransportError
func (s *Session) fail(conn net.Conn, cmd domain.Command, op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		err = fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}

	logging.Logger.Error("Exchange failed, closing connection",
		"verb", cmd.Name(),
		"op", op,
		"error", err)

	s.drop(conn)
	return &domain.TransportError{Err: err, Op: op}
}

// drop closes conn and forgets it if it is still the live connection.
// While a Disconnect is pending, that Disconnect reports the final state.
func (s *Session) drop(conn net.Conn) {
	s.mu.Lock()
	owned := false
	if s.conn == conn {
		s.conn = nil
		if s.state == domain.StateConnected {
			s.state = domain.StateDisconnected
			owned = true
		}
	}
	s.mu.Unlock()

	_ = conn.Close()
	if owned {
		s.notify(domain.StateDisconnected)
	}
}

func (s *Session) setState(state domain.ConnState, conn net.Conn) {
	s.mu.Lock()
	s.state = state
	s.conn = conn
	s.mu.Unlock()
	s.notify(state)
}

func (s *Session) notify(state domain.ConnState) {
	s.mu.Lock()
	fn := s.observer
	s.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}
