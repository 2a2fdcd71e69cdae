package storage

import (
	"time"

	"ofsconsole/internal/domain"
)

// exchangeModelToDomain converts an ExchangeModel (GORM) to domain.ExchangeRecord
func exchangeModelToDomain(m ExchangeModel) domain.ExchangeRecord {
	return domain.ExchangeRecord{
		Address:   m.Address,
		Args:      m.Args,
		Duration:  time.Duration(m.DurationMS) * time.Millisecond,
		Error:     m.Error,
		ID:        m.ID,
		Kind:      domain.OutcomeKind(m.Kind),
		Message:   m.Message,
		StartedAt: m.StartedAt,
		Verb:      domain.Verb(m.Verb),
	}
}

// domainToExchangeModel converts a domain.ExchangeRecord to ExchangeModel (GORM)
func domainToExchangeModel(r domain.ExchangeRecord) ExchangeModel {
	return ExchangeModel{
		Address:    r.Address,
		Args:       r.Args,
		DurationMS: r.Duration.Milliseconds(),
		Error:      r.Error,
		ID:         r.ID,
		Kind:       string(r.Kind),
		Message:    r.Message,
		StartedAt:  r.StartedAt.UTC(),
		Verb:       string(r.Verb),
	}
}
