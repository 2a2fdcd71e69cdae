package tcp

import (
	"context"
	"net"
	"time"

	"ofsconsole/internal/logging"
	"ofsconsole/internal/ports"
)

// DefaultDialTimeout bounds connection establishment
const DefaultDialTimeout = 10 * time.Second

// NetDialer implements Dialer over TCP
type NetDialer struct {
	dialer net.Dialer
}

// Compile-time interface verification
var _ ports.Dialer = (*NetDialer)(nil)

// NewNetDialer creates a TCP dialer. A zero timeout uses DefaultDialTimeout.
func NewNetDialer(timeout time.Duration) *NetDialer {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return &NetDialer{dialer: net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}}
}

// Dial connects to address, honoring ctx cancellation while connecting
func (d *NetDialer) Dial(ctx context.Context, address string) (net.Conn, error) {
	logging.Logger.Debug("Dialing server", "address", address, "timeout", d.dialer.Timeout)
	conn, err := d.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		// Commands are small single lines
		_ = tcpConn.SetNoDelay(true)
	}
	logging.Logger.Debug("Dialed server", "address", address, "local", conn.LocalAddr().String())
	return conn, nil
}
