package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyConnected  = errors.New("already connected")
	ErrConnect           = errors.New("connect failed")
	ErrConnectInProgress = errors.New("connect already in progress")
	ErrDispatcherClosed  = errors.New("dispatcher closed")
	ErrEncoding          = errors.New("invalid command encoding")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotConnected      = errors.New("not connected to server")
	ErrQueueFull         = errors.New("exchange queue full")
	ErrRefused           = errors.New("refused by server")
	ErrTimeout           = errors.New("timed out waiting for server response")
	ErrTransport         = errors.New("transport failure")
)

// ConnectError reports a failed dial. The session stays disconnected.
type ConnectError struct {
	Address string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Address, e.Err)
}

func (e *ConnectError) Unwrap() []error {
	return []error{ErrConnect, e.Err}
}

// TransportError reports a socket failure in the middle of an exchange.
// The session has already been torn down when this is returned.
type TransportError struct {
	Err error
	Op  string // "send" or "receive"
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Timeout reports whether the failure was a read deadline expiring
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, ErrTimeout)
}

// EncodingError reports a command that cannot be put on the wire.
// Field is -1 for the verb, otherwise the argument index.
type EncodingError struct {
	Field  int
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("invalid command name: %s", e.Reason)
	}
	return fmt.Sprintf("invalid argument %d: %s", e.Field, e.Reason)
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}
