package ports

import (
	"context"

	"ofsconsole/internal/domain"
)

// Exchanger performs one request/response exchange
type Exchanger interface {
	Exchange(ctx context.Context, cmd domain.Command) (domain.Outcome, error)
}

// Connector manages the connection lifecycle
type Connector interface {
	Address() string
	Connect(ctx context.Context, address string) error
	Disconnect() error
	State() domain.ConnState
}

// ConsoleSession is the composite interface
type ConsoleSession interface {
	Connector
	Exchanger
}
