package ports

import (
	"context"

	"ofsconsole/internal/domain"
)

// HistoryReader reads journal entries
type HistoryReader interface {
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRecord, error)
}

// HistoryWriter appends and clears journal entries
type HistoryWriter interface {
	Append(ctx context.Context, record domain.ExchangeRecord) error
	Clear(ctx context.Context) (int64, error)
}

// HistoryRepository is the composite interface
type HistoryRepository interface {
	HistoryReader
	HistoryWriter
	Close() error
}
