package ports

import (
	"context"
	"net"
)

// Dialer opens the byte stream a session runs over
type Dialer interface {
	Dial(ctx context.Context, address string) (net.Conn, error)
}
