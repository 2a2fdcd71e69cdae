package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/ports"
)

// MockHistoryRepository is a testify double for ports.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

var _ ports.HistoryRepository = (*MockHistoryRepository)(nil)

// NewMockHistoryRepository creates a MockHistoryRepository that asserts its expectations on cleanup
func NewMockHistoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockHistoryRepository {
	m := &MockHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHistoryRepository) Append(ctx context.Context, record domain.ExchangeRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockHistoryRepository) Clear(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) Close() error {
	return m.Called().Error(0)
}

func (m *MockHistoryRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.ExchangeRecord, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]domain.ExchangeRecord)
	return records, args.Error(1)
}
