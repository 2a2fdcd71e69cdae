package domain

// ConnState is the lifecycle state of a session's connection
type ConnState string

const (
	StateConnected     ConnState = "connected"
	StateConnecting    ConnState = "connecting"
	StateDisconnected  ConnState = "disconnected"
	StateDisconnecting ConnState = "disconnecting"
)

// Label returns the status-bar text for the state
func (s ConnState) Label() string {
	switch s {
	case StateConnected:
		return "Connected"
	case StateConnecting:
		return "Connecting..."
	case StateDisconnecting:
		return "Disconnecting..."
	default:
		return "Disconnected"
	}
}
