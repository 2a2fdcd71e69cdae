package ui

import (
	"ofsconsole/internal/domain"
)

// Action messages. Each key in AllKeyDefinitions with a Msg dispatches one
// of these; the model handles them in updateExplorer().

// OpenNodeMsg requests reading the selected file or selecting the directory
type OpenNodeMsg struct{}

// QuitMsg requests disconnecting and quitting the application
type QuitMsg struct{}

// RefreshTreeMsg requests a SHOW_TREE exchange
type RefreshTreeMsg struct{}

// SendCommandMsg requests an argument-less command
type SendCommandMsg struct {
	Verb domain.Verb
}

// ShowCommandFormMsg requests the dialog that collects arguments for Verb
type ShowCommandFormMsg struct {
	Verb domain.Verb
}

// ShowHelpMsg requests showing the help screen
type ShowHelpMsg struct{}

// ToggleConnectionMsg requests connecting, or disconnecting when connected
type ToggleConnectionMsg struct{}

// Result messages, produced by commands running off the UI goroutine.

// connectResultMsg reports the end of a connect attempt
type connectResultMsg struct {
	address string
	err     error
}

// disconnectResultMsg reports the end of a disconnect
type disconnectResultMsg struct {
	err error
}

// exchangeResultMsg reports the end of one exchange
type exchangeResultMsg struct {
	err     error
	forest  *domain.Forest // Set for SHOW_TREE
	outcome domain.Outcome
	path    string // Set for READ_FILE opened from the tree
	verb    domain.Verb
}

// stateChangedMsg reports a connection state transition
type stateChangedMsg struct {
	state domain.ConnState
}
