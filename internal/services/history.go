package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/ports"
)

// HistoryService keeps the exchange journal
type HistoryService struct {
	connector ports.Connector
	repo      ports.HistoryRepository
}

// NewHistoryService creates a new HistoryService. connector supplies the
// server address recorded with each entry and may be nil.
func NewHistoryService(repo ports.HistoryRepository, connector ports.Connector) *HistoryService {
	return &HistoryService{
		connector: connector,
		repo:      repo,
	}
}

// Record journals one dispatched exchange. Secrets in the arguments are masked.
func (s *HistoryService) Record(ctx context.Context, result Result) error {
	record := domain.ExchangeRecord{
		Args:      result.Command.Redacted(),
		Duration:  result.Duration,
		ID:        uuid.New().String(),
		StartedAt: result.StartedAt,
		Verb:      result.Command.Name(),
	}
	if s.connector != nil {
		record.Address = s.connector.Address()
	}
	if result.Err != nil {
		record.Error = result.Err.Error()
	} else {
		record.Kind = result.Outcome.Kind
		record.Message = result.Outcome.Message
	}

	if err := s.repo.Append(ctx, record); err != nil {
		logging.Logger.Error("Failed to record exchange", "verb", record.Verb, "error", err)
		return fmt.Errorf("failed to record exchange: %w", err)
	}

	logging.Logger.Debug("Exchange recorded", "id", record.ID, "verb", record.Verb)
	return nil
}

// Observe is a Dispatcher observer. Jobs dropped at shutdown never reached
// the server and are not journaled.
func (s *HistoryService) Observe(result Result) {
	if errors.Is(result.Err, domain.ErrDispatcherClosed) {
		return
	}
	_ = s.Record(context.Background(), result)
}

// List returns journal entries, newest first
func (s *HistoryService) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

// Clear deletes every journal entry and returns how many were removed
func (s *HistoryService) Clear(ctx context.Context) (int64, error) {
	removed, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	logging.Logger.Info("History cleared", "removed", removed)
	return removed, nil
}
