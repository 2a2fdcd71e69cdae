package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ofsconsole/internal/domain"
)

// pipeDialer hands out in-memory connections served by handler
type pipeDialer struct {
	mu      sync.Mutex
	calls   int
	err     error
	handler func(conn net.Conn)
}

func (d *pipeDialer) Dial(_ context.Context, _ string) (net.Conn, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	client, server := net.Pipe()
	go d.handler(server)
	return client, nil
}

func (d *pipeDialer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// replyServer answers each request line with the next canned reply and
// reports every line it received
func replyServer(lines chan<- string, replies ...string) func(net.Conn) {
	return func(conn net.Conn) {
		defer conn.Close()
		r := bufio.NewReader(conn)
		for i := 0; ; i++ {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if lines != nil {
				lines <- line
			}
			if i < len(replies) {
				if _, err := conn.Write([]byte(replies[i])); err != nil {
					return
				}
			}
		}
	}
}

func connected(t *testing.T, d *pipeDialer, opts Options) *Session {
	t.Helper()
	s := New(d, opts)
	require.NoError(t, s.Connect(context.Background(), "127.0.0.1:9090"))
	require.Equal(t, domain.StateConnected, s.State())
	return s
}

func TestExchange_NotConnectedPerformsNoIO(t *testing.T) {
	d := &pipeDialer{handler: replyServer(nil)}
	s := New(d, Options{})

	_, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbStats))

	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Equal(t, 0, d.Calls())
	assert.Equal(t, domain.StateDisconnected, s.State())
}

func TestExchange_ClassifiesResponse(t *testing.T) {
	lines := make(chan string, 4)
	d := &pipeDialer{handler: replyServer(lines, "OK|5 files\n", "ERR|no such path\n")}
	s := connected(t, d, Options{})
	defer s.Disconnect()

	outcome, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbStats))
	require.NoError(t, err)
	assert.Equal(t, domain.Success("5 files"), outcome)
	assert.Equal(t, "STATS\n", <-lines)

	outcome, err = s.Exchange(context.Background(), domain.NewCommand(domain.VerbReadFile, "/x"))
	require.NoError(t, err)
	assert.Equal(t, domain.Failure("no such path"), outcome)
	assert.Equal(t, "READ_FILE|/x\n", <-lines)
}

func TestExchange_ResponseIsBoundedToSingleRead(t *testing.T) {
	d := &pipeDialer{handler: replyServer(nil, "0123456789")}
	s := connected(t, d, Options{MaxResponseBytes: 4})

	outcome, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbShowTree))

	require.NoError(t, err)
	assert.Equal(t, domain.Raw("0123"), outcome)
}

func TestExchange_EncodingErrorKeepsSession(t *testing.T) {
	d := &pipeDialer{handler: replyServer(nil)}
	s := connected(t, d, Options{})
	defer s.Disconnect()

	_, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbWriteFile, "/a", "x|y"))

	assert.ErrorIs(t, err, domain.ErrEncoding)
	assert.Equal(t, domain.StateConnected, s.State())
}

func TestExchange_ServerCloseTearsDownSession(t *testing.T) {
	d := &pipeDialer{handler: func(conn net.Conn) {
		r := bufio.NewReader(conn)
		_, _ = r.ReadString('\n')
		conn.Close()
	}}
	s := connected(t, d, Options{})

	_, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbStats))

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, "receive", transportErr.Op)
	assert.False(t, transportErr.Timeout())
	assert.Equal(t, domain.StateDisconnected, s.State())

	_, err = s.Exchange(context.Background(), domain.NewCommand(domain.VerbStats))
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestExchange_ReadTimeoutTearsDownSession(t *testing.T) {
	d := &pipeDialer{handler: replyServer(nil)}
	s := connected(t, d, Options{ReadTimeout: 50 * time.Millisecond})

	_, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbStats))

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, transportErr.Timeout())
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, domain.StateDisconnected, s.State())
}

func TestExchange_ContextDeadlineBoundsRead(t *testing.T) {
	d := &pipeDialer{handler: replyServer(nil)}
	s := connected(t, d, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Exchange(ctx, domain.NewCommand(domain.VerbStats))

	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, domain.StateDisconnected, s.State())
}

func TestConnect_Failure(t *testing.T) {
	dialErr := errors.New("connection refused")
	s := New(&pipeDialer{err: dialErr}, Options{})

	err := s.Connect(context.Background(), "127.0.0.1:1")

	var connectErr *domain.ConnectError
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, "127.0.0.1:1", connectErr.Address)
	assert.ErrorIs(t, err, domain.ErrConnect)
	assert.ErrorIs(t, err, dialErr)
	assert.Equal(t, domain.StateDisconnected, s.State())
}

func TestConnect_RefusesWhenAlreadyConnected(t *testing.T) {
	d := &pipeDialer{handler: replyServer(nil)}
	s := connected(t, d, Options{})
	defer s.Disconnect()

	err := s.Connect(context.Background(), "127.0.0.1:9090")

	assert.ErrorIs(t, err, domain.ErrAlreadyConnected)
	assert.Equal(t, 1, d.Calls())
}

func TestDisconnect_SendsQuit(t *testing.T) {
	lines := make(chan string, 1)
	d := &pipeDialer{handler: replyServer(lines)}
	s := connected(t, d, Options{})

	require.NoError(t, s.Disconnect())

	assert.Equal(t, "QUIT\n", <-lines)
	assert.Equal(t, domain.StateDisconnected, s.State())
	assert.NoError(t, s.Disconnect())
}

func TestDisconnect_ClosesEvenWhenQuitFails(t *testing.T) {
	d := &pipeDialer{handler: func(conn net.Conn) { conn.Close() }}
	s := connected(t, d, Options{})

	require.NoError(t, s.Disconnect())

	assert.Equal(t, domain.StateDisconnected, s.State())
}

func TestStateObserver_SeesEveryTransition(t *testing.T) {
	var mu sync.Mutex
	var states []domain.ConnState
	d := &pipeDialer{handler: replyServer(nil)}
	s := New(d, Options{OnStateChange: func(state domain.ConnState) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, state)
	}})

	require.NoError(t, s.Connect(context.Background(), "srv:9090"))
	require.NoError(t, s.Disconnect())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.ConnState{
		domain.StateConnecting,
		domain.StateConnected,
		domain.StateDisconnecting,
		domain.StateDisconnected,
	}, states)
	assert.Equal(t, "srv:9090", s.Address())
}

// eofConn delivers its reply together with io.EOF, like a server that
// answers and hangs up in the same segment
type eofConn struct {
	net.Conn
	reply string
}

func (c *eofConn) Read(b []byte) (int, error) {
	return copy(b, c.reply), io.EOF
}

type connDialer struct {
	conn net.Conn
}

func (d connDialer) Dial(_ context.Context, _ string) (net.Conn, error) {
	return d.conn, nil
}

func TestExchange_ResponseWithEOFTearsDownSession(t *testing.T) {
	client, server := net.Pipe()
	go replyServer(nil)(server)

	s := New(connDialer{conn: &eofConn{Conn: client, reply: "OK|BYE\n"}}, Options{})
	require.NoError(t, s.Connect(context.Background(), "127.0.0.1:9090"))

	outcome, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbStats))

	require.NoError(t, err)
	assert.Equal(t, domain.Success("BYE"), outcome)
	assert.Equal(t, domain.StateDisconnected, s.State())

	_, err = s.Exchange(context.Background(), domain.NewCommand(domain.VerbStats))
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestDisconnect_WaitsForExchangeInFlight(t *testing.T) {
	lines := make(chan string, 4)
	release := make(chan struct{})
	d := &pipeDialer{handler: func(conn net.Conn) {
		defer conn.Close()
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			lines <- line
			if strings.HasPrefix(line, string(domain.VerbShowTree)) {
				<-release
				if _, err := conn.Write([]byte("root/\n  a.txt\n")); err != nil {
					return
				}
			}
		}
	}}
	s := connected(t, d, Options{})

	type result struct {
		outcome domain.Outcome
		err     error
	}
	exchanged := make(chan result, 1)
	go func() {
		outcome, err := s.Exchange(context.Background(), domain.NewCommand(domain.VerbShowTree))
		exchanged <- result{outcome, err}
	}()
	require.Equal(t, "SHOW_TREE\n", <-lines)

	disconnected := make(chan error, 1)
	go func() { disconnected <- s.Disconnect() }()

	select {
	case line := <-lines:
		t.Fatalf("server received %q before SHOW_TREE was answered", line)
	case <-time.After(100 * time.Millisecond):
	}
	close(release)

	res := <-exchanged
	require.NoError(t, res.err)
	assert.Equal(t, domain.OutcomeRaw, res.outcome.Kind)

	require.NoError(t, <-disconnected)
	assert.Equal(t, "QUIT\n", <-lines)
	assert.Equal(t, domain.StateDisconnected, s.State())
}
