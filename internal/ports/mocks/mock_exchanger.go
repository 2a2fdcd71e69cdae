// Package mocks holds testify doubles for the ports interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/ports"
)

// MockExchanger is a testify double for ports.Exchanger
type MockExchanger struct {
	mock.Mock
}

var _ ports.Exchanger = (*MockExchanger)(nil)

// NewMockExchanger creates a MockExchanger that asserts its expectations on cleanup
func NewMockExchanger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExchanger {
	m := &MockExchanger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Exchange records the call and returns the configured outcome
func (m *MockExchanger) Exchange(ctx context.Context, cmd domain.Command) (domain.Outcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(domain.Outcome), args.Error(1)
}
