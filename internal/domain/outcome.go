package domain

import "fmt"

// OutcomeKind tags the classified result of a response line
type OutcomeKind string

const (
	OutcomeAccessDenied OutcomeKind = "access_denied"
	OutcomeFailure      OutcomeKind = "failure"
	OutcomeRaw          OutcomeKind = "raw"
	OutcomeSuccess      OutcomeKind = "success"
)

// Outcome is the classified result of one exchange.
// For Success and Failure, Message holds the text after the marker;
// for AccessDenied and Raw it holds the full response text.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

// Success builds a Success outcome
func Success(message string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Message: message}
}

// Failure builds a Failure outcome
func Failure(message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: message}
}

// AccessDenied builds an AccessDenied outcome
func AccessDenied(message string) Outcome {
	return Outcome{Kind: OutcomeAccessDenied, Message: message}
}

// Raw builds a Raw outcome
func Raw(text string) Outcome {
	return Outcome{Kind: OutcomeRaw, Message: text}
}

// IsError reports whether the outcome represents a refusal by the service
func (o Outcome) IsError() bool {
	return o.Kind == OutcomeFailure || o.Kind == OutcomeAccessDenied
}

// String renders the outcome the way the command log shows it
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("OK: %s", o.Message)
	case OutcomeFailure:
		return fmt.Sprintf("ERROR: %s", o.Message)
	case OutcomeAccessDenied:
		return fmt.Sprintf("ERROR (access/permission issue): %s", o.Message)
	default:
		return o.Message
	}
}
