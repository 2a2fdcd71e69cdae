package domain

import "time"

// ExchangeRecord is one journal entry describing a completed exchange
type ExchangeRecord struct {
	Address   string
	Args      []string // redacted
	Duration  time.Duration
	Error     string
	ID        string
	Kind      OutcomeKind // empty when the exchange failed before classification
	Message   string
	StartedAt time.Time
	Verb      Verb
}

// HistoryFilter narrows a journal listing
type HistoryFilter struct {
	Limit int
	Verb  Verb
}
